package summary

import (
	"context"
	"strings"
	"sync"
	"time"

	"patient-summary/internal/platform/logger"
	"patient-summary/internal/platform/metrics"
)

type Outcome string

const (
	OutcomeSuccess Outcome = "success"
	OutcomeEmpty   Outcome = "empty"
	OutcomeError   Outcome = "error"
	// OutcomeStale: el resultado llegó cuando ya había una carga más nueva (o el
	// widget fue desmontado) y se descartó.
	OutcomeStale Outcome = "stale"
)

// LoadEvent se emite una vez por carga, aplicada o descartada.
type LoadEvent struct {
	Widget      string
	InstanceID  string
	PatientUUID string
	Outcome     Outcome
	Rows        int
	Err         error
	Duration    time.Duration
}

// LoadObserver recibe cada LoadEvent (access log, etc). Evita importar accesslog.
type LoadObserver interface {
	ObserveLoad(ctx context.Context, ev LoadEvent)
}

// Widget es una instancia montada de un Definition para un paciente.
// Cada carga lleva un token creciente; solo la carga con el token vigente puede
// escribir el estado.
type Widget struct {
	id  string
	def Definition
	log logger.Logger
	obs LoadObserver

	base context.Context
	stop context.CancelFunc

	mu          sync.Mutex
	token       uint64
	cancel      context.CancelFunc
	settled     chan struct{}
	patientUUID string
	status      State
	data        Dataset
	err         error
	pager       Pager
	unmounted   bool
	used        time.Time
}

func newWidget(id string, def Definition, pageSize int, log logger.Logger, obs LoadObserver) *Widget {
	if log == nil {
		log = logger.Nop()
	}
	base, stop := context.WithCancel(context.Background())
	return &Widget{
		id:     id,
		def:    def,
		log:    log.With(map[string]any{"widget": def.Name, "instance_id": id}),
		obs:    obs,
		base:   base,
		stop:   stop,
		status: StateLoading,
		pager:  NewPager(pageSize),
	}
}

func (w *Widget) ID() string              { return w.id }
func (w *Widget) Definition() Definition { return w.def }

// SetPatient arranca una carga para patientUUID (mount o cambio de identificador).
// Cancela la carga anterior si seguía en vuelo. El canal se cierra cuando esta
// carga termina, haya sido aplicada o descartada.
// De ctx solo se toman los values (p.ej. credenciales reenviadas): la carga vive
// hasta que termina, la reemplaza otra o se desmonta el widget.
func (w *Widget) SetPatient(ctx context.Context, patientUUID string) (<-chan struct{}, error) {
	patientUUID = strings.TrimSpace(patientUUID)
	if patientUUID == "" {
		return nil, ErrInvalidInput
	}

	w.mu.Lock()
	if w.unmounted {
		w.mu.Unlock()
		return nil, ErrUnmounted
	}
	if w.cancel != nil {
		w.cancel()
	}
	w.token++
	tok := w.token
	loadCtx, cancel := context.WithCancel(context.WithoutCancel(ctx))
	stopAfter := context.AfterFunc(w.base, cancel)
	done := make(chan struct{})

	w.cancel = cancel
	w.settled = done
	w.patientUUID = patientUUID
	w.status = StateLoading
	w.data = Dataset{}
	w.err = nil
	w.pager.page = 1
	w.mu.Unlock()

	go func() {
		defer stopAfter()
		w.load(loadCtx, cancel, tok, patientUUID, done)
	}()
	return done, nil
}

func (w *Widget) load(ctx context.Context, cancel context.CancelFunc, tok uint64, patientUUID string, done chan struct{}) {
	defer close(done)
	defer cancel()

	start := time.Now()
	data, err := w.def.Load(ctx, patientUUID)

	ev := LoadEvent{
		Widget:      w.def.Name,
		InstanceID:  w.id,
		PatientUUID: patientUUID,
		Rows:        len(data.Rows),
		Err:         err,
		Duration:    time.Since(start),
	}

	switch {
	case !w.apply(tok, data, err):
		ev.Outcome = OutcomeStale
		w.log.Debug("stale load discarded", map[string]any{"patient_uuid": patientUUID, "token": tok})
	case err != nil:
		ev.Outcome = OutcomeError
		w.log.Warn("load failed", map[string]any{"patient_uuid": patientUUID, "error": err})
	case len(data.Rows) == 0:
		ev.Outcome = OutcomeEmpty
	default:
		ev.Outcome = OutcomeSuccess
	}

	metrics.RecordWidgetLoad(w.def.Name, string(ev.Outcome))
	if w.obs != nil {
		w.obs.ObserveLoad(context.WithoutCancel(ctx), ev)
	}
}

// apply escribe el resultado solo si tok sigue siendo la carga vigente.
func (w *Widget) apply(tok uint64, data Dataset, err error) bool {
	w.mu.Lock()
	defer w.mu.Unlock()

	if tok != w.token || w.unmounted {
		return false
	}
	if err != nil {
		w.status = StateError
		w.err = err
		w.data = Dataset{}
		return true
	}
	w.status = StateSuccess
	w.err = nil
	w.data = data
	return true
}

// Wait bloquea hasta que la carga vigente al momento de la llamada termine.
func (w *Widget) Wait(ctx context.Context) error {
	w.mu.Lock()
	done := w.settled
	w.mu.Unlock()

	if done == nil {
		return nil
	}
	select {
	case <-done:
		return nil
	case <-ctx.Done():
		return ctx.Err()
	}
}

func (w *Widget) SetPage(page int) error {
	w.mu.Lock()
	defer w.mu.Unlock()
	return w.pager.SetPage(page)
}

// SetPageSize cambia el tamaño de página y vuelve a la página 1.
func (w *Widget) SetPageSize(size int) error {
	w.mu.Lock()
	defer w.mu.Unlock()
	return w.pager.SetPageSize(size)
}

func (w *Widget) Pager() Pager {
	w.mu.Lock()
	defer w.mu.Unlock()
	return w.pager
}

func (w *Widget) View() View {
	w.mu.Lock()
	defer w.mu.Unlock()

	v := buildView(w.def, w.patientUUID, w.status, w.data, w.err, w.pager)
	v.InstanceID = w.id
	return v
}

func (w *Widget) touch(t time.Time) {
	w.mu.Lock()
	w.used = t
	w.mu.Unlock()
}

func (w *Widget) lastUsed() time.Time {
	w.mu.Lock()
	defer w.mu.Unlock()
	return w.used
}

// Unmount cancela cualquier carga en vuelo y descarta el estado.
func (w *Widget) Unmount() {
	w.mu.Lock()
	if w.unmounted {
		w.mu.Unlock()
		return
	}
	w.unmounted = true
	w.data = Dataset{}
	w.mu.Unlock()

	w.stop()
}
