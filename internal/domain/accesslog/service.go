package accesslog

import (
	"context"
	"errors"
	"strings"
	"time"

	"patient-summary/internal/domain/summary"
	"patient-summary/internal/platform/logger"

	"github.com/google/uuid"
)

const (
	DefaultLimit = 50
	MaxLimit     = 200
)

var ErrInvalidInput = errors.New("invalid input")

type Service struct {
	repo Repository
	log  logger.Logger
	now  func() time.Time
}

func NewService(repo Repository, log logger.Logger) *Service {
	if log == nil {
		log = logger.Nop()
	}
	return &Service{
		repo: repo,
		log:  log,
		now:  time.Now,
	}
}

func (s *Service) Record(ctx context.Context, e Entry) (Entry, error) {
	if strings.TrimSpace(e.PatientUUID) == "" || strings.TrimSpace(e.Widget) == "" {
		return Entry{}, ErrInvalidInput
	}
	if e.ID == "" {
		e.ID = uuid.NewString()
	}
	if e.RecordedAt.IsZero() {
		e.RecordedAt = s.now().UTC()
	}
	if err := s.repo.Create(ctx, e); err != nil {
		return Entry{}, err
	}
	return e, nil
}

// List devuelve las entradas del paciente, más recientes primero.
func (s *Service) List(ctx context.Context, patientUUID string, filter ListFilter) ([]Entry, error) {
	patientUUID = strings.TrimSpace(patientUUID)
	if patientUUID == "" {
		return nil, ErrInvalidInput
	}
	switch {
	case filter.Limit <= 0:
		filter.Limit = DefaultLimit
	case filter.Limit > MaxLimit:
		filter.Limit = MaxLimit
	}
	filter.Widget = strings.TrimSpace(filter.Widget)
	filter.Outcome = strings.TrimSpace(filter.Outcome)
	return s.repo.ListByPatient(ctx, patientUUID, filter)
}

// ObserveLoad implementa summary.LoadObserver. Un error de escritura no afecta al
// widget: solo se loguea.
func (s *Service) ObserveLoad(ctx context.Context, ev summary.LoadEvent) {
	_, err := s.Record(ctx, Entry{
		PatientUUID: ev.PatientUUID,
		Widget:      ev.Widget,
		InstanceID:  ev.InstanceID,
		Outcome:     string(ev.Outcome),
		Rows:        ev.Rows,
		Reason:      summary.FailureReason(ev.Err),
		Duration:    ev.Duration,
		RecordedAt:  s.now().UTC(),
	})
	if err != nil {
		s.log.Error("access log write failed", map[string]any{
			"widget":       ev.Widget,
			"patient_uuid": ev.PatientUUID,
			"error":        err,
		})
	}
}
