package memory

import (
	"context"
	"errors"
	"sort"
	"sync"

	"patient-summary/internal/domain/accesslog"
)

// accessLogRepo guarda entradas en memoria, acotado a maxEntries (se descartan
// las más viejas).
type accessLogRepo struct {
	mu         sync.RWMutex
	entries    []accesslog.Entry
	ids        map[string]bool
	maxEntries int
}

const defaultMaxEntries = 10000

func NewAccessLogRepo(maxEntries int) accesslog.Repository {
	if maxEntries <= 0 {
		maxEntries = defaultMaxEntries
	}
	return &accessLogRepo{
		ids:        make(map[string]bool),
		maxEntries: maxEntries,
	}
}

func (r *accessLogRepo) Create(ctx context.Context, e accesslog.Entry) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if e.ID == "" {
		return errors.New("entry id required")
	}
	if r.ids[e.ID] {
		return errors.New("entry already exists")
	}

	r.entries = append(r.entries, e)
	r.ids[e.ID] = true

	if over := len(r.entries) - r.maxEntries; over > 0 {
		for _, old := range r.entries[:over] {
			delete(r.ids, old.ID)
		}
		r.entries = append([]accesslog.Entry(nil), r.entries[over:]...)
	}
	return nil
}

func (r *accessLogRepo) ListByPatient(ctx context.Context, patientUUID string, filter accesslog.ListFilter) ([]accesslog.Entry, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	limit := filter.Limit
	if limit <= 0 {
		limit = accesslog.DefaultLimit
	}

	// se recorre de atrás hacia adelante: a igual timestamp, el último insertado primero
	out := make([]accesslog.Entry, 0)
	for i := len(r.entries) - 1; i >= 0; i-- {
		e := r.entries[i]
		if e.PatientUUID != patientUUID {
			continue
		}
		if filter.Widget != "" && e.Widget != filter.Widget {
			continue
		}
		if filter.Outcome != "" && e.Outcome != filter.Outcome {
			continue
		}
		out = append(out, e)
	}

	sort.SliceStable(out, func(i, j int) bool {
		return out[i].RecordedAt.After(out[j].RecordedAt)
	})

	if len(out) > limit {
		out = out[:limit]
	}
	return out, nil
}
