package summary

import (
	"errors"
	"strings"
)

// Fallback es el token que se muestra para cualquier campo ausente.
const Fallback = "--"

var (
	ErrInvalidInput     = errors.New("invalid input")
	ErrUnknownWidget    = errors.New("unknown widget")
	ErrInstanceNotFound = errors.New("widget instance not found")
	ErrUnmounted        = errors.New("widget unmounted")
	ErrInvalidPage      = errors.New("page and page size must be positive")

	// Fallas de fetch. Los adapters envuelven sus errores con estos sentinels.
	ErrNetworkFailure  = errors.New("network failure")
	ErrMalformedResult = errors.New("empty or malformed result")
)

// ConditionRecord es un registro plano de /patientcondition.
type ConditionRecord struct {
	ID        string
	UUID      string
	Name      string
	OnSetDate string // ISO, tal como viene del backend
	Status    string
}

// MedicationRecord es un registro plano de /medication.
type MedicationRecord struct {
	ID         string
	UUID       string
	Regimen    string
	DateActive string
}

// HistoryRecord es un registro plano de /patienthistory.
type HistoryRecord struct {
	ID          string
	UUID        string
	Observation string
	Value       string
	VisitDate   string
}

// OrFallback devuelve Fallback si s está vacío (o solo espacios).
func OrFallback(s string) string {
	s = strings.TrimSpace(s)
	if s == "" {
		return Fallback
	}
	return s
}

// Normalized aplica los defaults de campos opcionales.
// El status ausente se considera activo.
func (r ConditionRecord) Normalized() ConditionRecord {
	status := strings.TrimSpace(r.Status)
	if status == "" {
		status = "Active"
	}
	return ConditionRecord{
		ID:        strings.TrimSpace(r.ID),
		UUID:      strings.TrimSpace(r.UUID),
		Name:      OrFallback(r.Name),
		OnSetDate: OrFallback(r.OnSetDate),
		Status:    status,
	}
}

func (r MedicationRecord) Normalized() MedicationRecord {
	return MedicationRecord{
		ID:         strings.TrimSpace(r.ID),
		UUID:       strings.TrimSpace(r.UUID),
		Regimen:    OrFallback(r.Regimen),
		DateActive: OrFallback(r.DateActive),
	}
}

func (r HistoryRecord) Normalized() HistoryRecord {
	return HistoryRecord{
		ID:          strings.TrimSpace(r.ID),
		UUID:        strings.TrimSpace(r.UUID),
		Observation: OrFallback(r.Observation),
		Value:       OrFallback(r.Value),
		VisitDate:   OrFallback(r.VisitDate),
	}
}
