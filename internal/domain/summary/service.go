package summary

import (
	"context"
	"sort"
	"strings"
	"sync"
	"time"

	"patient-summary/internal/platform/logger"
	"patient-summary/internal/platform/metrics"

	"github.com/google/uuid"
)

type Options struct {
	Definitions     []Definition
	Logger          logger.Logger
	Observer        LoadObserver
	DefaultPageSize int

	// IdleTimeout: una instancia sin uso por más de esto se desmonta sola.
	// <= 0 => DefaultIdleTimeout.
	IdleTimeout time.Duration
}

const DefaultIdleTimeout = 30 * time.Minute

// Service maneja el ciclo de vida de las instancias de widgets (mount/unmount).
type Service struct {
	defs     map[string]Definition
	order    []string
	log      logger.Logger
	obs      LoadObserver
	pageSize int
	newID    func() string
	now      func() time.Time
	idle     time.Duration

	mu        sync.RWMutex
	instances map[string]*Widget

	stopJanitor context.CancelFunc
	closeOnce   sync.Once
}

func NewService(opts Options) *Service {
	log := opts.Logger
	if log == nil {
		log = logger.Nop()
	}
	pageSize := opts.DefaultPageSize
	if pageSize <= 0 {
		pageSize = DefaultPageSize
	}

	idle := opts.IdleTimeout
	if idle <= 0 {
		idle = DefaultIdleTimeout
	}

	s := &Service{
		defs:      make(map[string]Definition, len(opts.Definitions)),
		log:       log,
		obs:       opts.Observer,
		pageSize:  pageSize,
		newID:     uuid.NewString,
		now:       time.Now,
		idle:      idle,
		instances: make(map[string]*Widget),
	}
	for _, d := range opts.Definitions {
		if _, dup := s.defs[d.Name]; !dup {
			s.order = append(s.order, d.Name)
		}
		s.defs[d.Name] = d
	}

	ctx, stop := context.WithCancel(context.Background())
	s.stopJanitor = stop
	go s.janitor(ctx, max(idle/2, time.Second))
	return s
}

// janitor desmonta periódicamente las instancias que nadie volvió a consultar.
func (s *Service) janitor(ctx context.Context, every time.Duration) {
	t := time.NewTicker(every)
	defer t.Stop()
	for {
		select {
		case <-ctx.Done():
			return
		case <-t.C:
			s.evictIdle()
		}
	}
}

// evictIdle desmonta las instancias sin uso desde hace más de s.idle.
// Su carga en vuelo, si la hay, se descarta como stale.
func (s *Service) evictIdle() int {
	cutoff := s.now().Add(-s.idle)

	s.mu.RLock()
	var idle []string
	for id, w := range s.instances {
		if w.lastUsed().Before(cutoff) {
			idle = append(idle, id)
		}
	}
	s.mu.RUnlock()

	n := 0
	for _, id := range idle {
		if err := s.Unmount(id); err == nil {
			n++
			s.log.Info("idle widget unmounted", map[string]any{"instance_id": id})
		}
	}
	return n
}

// Definitions devuelve los widgets registrados en orden de registro.
func (s *Service) Definitions() []Definition {
	out := make([]Definition, 0, len(s.order))
	for _, name := range s.order {
		out = append(out, s.defs[name])
	}
	return out
}

func (s *Service) Definition(name string) (Definition, error) {
	d, ok := s.defs[strings.TrimSpace(name)]
	if !ok {
		return Definition{}, ErrUnknownWidget
	}
	return d, nil
}

// Mount crea una instancia y arranca la primera carga.
func (s *Service) Mount(ctx context.Context, name, patientUUID string) (*Widget, error) {
	def, err := s.Definition(name)
	if err != nil {
		return nil, err
	}
	if strings.TrimSpace(patientUUID) == "" {
		return nil, ErrInvalidInput
	}

	w := newWidget(s.newID(), def, s.pageSize, s.log, s.obs)
	w.touch(s.now())
	if _, err := w.SetPatient(ctx, patientUUID); err != nil {
		w.Unmount()
		return nil, err
	}

	s.mu.Lock()
	s.instances[w.ID()] = w
	s.mu.Unlock()

	metrics.WidgetMounted(def.Name)
	s.log.Debug("widget mounted", map[string]any{"widget": def.Name, "instance_id": w.ID()})
	return w, nil
}

// Instance busca una instancia montada y la marca como usada.
func (s *Service) Instance(id string) (*Widget, error) {
	s.mu.RLock()
	w, ok := s.instances[strings.TrimSpace(id)]
	s.mu.RUnlock()

	if !ok {
		return nil, ErrInstanceNotFound
	}
	w.touch(s.now())
	return w, nil
}

// Unmount cancela la carga en vuelo y olvida la instancia.
func (s *Service) Unmount(id string) error {
	s.mu.Lock()
	w, ok := s.instances[strings.TrimSpace(id)]
	if ok {
		delete(s.instances, w.ID())
	}
	s.mu.Unlock()

	if !ok {
		return ErrInstanceNotFound
	}
	w.Unmount()
	metrics.WidgetUnmounted(w.Definition().Name)
	s.log.Debug("widget unmounted", map[string]any{"widget": w.Definition().Name, "instance_id": w.ID()})
	return nil
}

// Mounted devuelve los IDs de instancias montadas (ordenados, para salida estable).
func (s *Service) Mounted() []string {
	s.mu.RLock()
	defer s.mu.RUnlock()

	ids := make([]string, 0, len(s.instances))
	for id := range s.instances {
		ids = append(ids, id)
	}
	sort.Strings(ids)
	return ids
}

// Render es un mount efímero: carga, espera, pagina y desmonta.
// pageSize <= 0 usa el default del servicio.
func (s *Service) Render(ctx context.Context, name, patientUUID string, page, pageSize int) (View, error) {
	def, err := s.Definition(name)
	if err != nil {
		return View{}, err
	}
	if page < 1 {
		return View{}, ErrInvalidPage
	}
	if pageSize <= 0 {
		pageSize = s.pageSize
	}

	w := newWidget("", def, pageSize, s.log, s.obs)
	defer w.Unmount()

	if _, err := w.SetPatient(ctx, patientUUID); err != nil {
		return View{}, err
	}
	if err := w.Wait(ctx); err != nil {
		return View{}, err
	}
	if err := w.SetPage(page); err != nil {
		return View{}, err
	}
	return w.View(), nil
}

// Close frena el janitor y desmonta todas las instancias (shutdown).
func (s *Service) Close() {
	s.closeOnce.Do(s.stopJanitor)
	for _, id := range s.Mounted() {
		_ = s.Unmount(id)
	}
}
