package openmrs

import (
	"bytes"
	"encoding/json"
	"strings"

	"patient-summary/internal/domain/patients"
	"patient-summary/internal/domain/summary"
)

// flexString acepta string, número, bool, null u objeto con display/name.
// El backend no es consistente con el tipo de id y de algunos campos.
type flexString string

func (f *flexString) UnmarshalJSON(b []byte) error {
	b = bytes.TrimSpace(b)
	if len(b) == 0 || bytes.Equal(b, []byte("null")) {
		*f = ""
		return nil
	}

	switch b[0] {
	case '"':
		var s string
		if err := json.Unmarshal(b, &s); err != nil {
			return err
		}
		*f = flexString(s)
	case '{':
		var obj struct {
			Display string `json:"display"`
			Name    any    `json:"name"`
		}
		if err := json.Unmarshal(b, &obj); err != nil {
			return err
		}
		if obj.Display != "" {
			*f = flexString(obj.Display)
			return nil
		}
		// name puede ser string u objeto {name: "..."} (conceptos)
		switch n := obj.Name.(type) {
		case string:
			*f = flexString(n)
		case map[string]any:
			if s, ok := n["name"].(string); ok {
				*f = flexString(s)
			}
		}
	case '[':
		*f = ""
	default:
		// número o bool: texto literal
		*f = flexString(string(b))
	}
	return nil
}

func (f flexString) String() string { return strings.TrimSpace(string(f)) }

type conditionDTO struct {
	ID        flexString `json:"id"`
	UUID      flexString `json:"uuid"`
	Name      flexString `json:"name"`
	OnSetDate flexString `json:"onSetDate"`
	Status    flexString `json:"status"`
}

func (d conditionDTO) toRecord() summary.ConditionRecord {
	return summary.ConditionRecord{
		ID:        d.ID.String(),
		UUID:      d.UUID.String(),
		Name:      d.Name.String(),
		OnSetDate: d.OnSetDate.String(),
		Status:    d.Status.String(),
	}.Normalized()
}

type medicationDTO struct {
	ID         flexString `json:"id"`
	UUID       flexString `json:"uuid"`
	Regimen    flexString `json:"regimen"`
	DateActive flexString `json:"dateActive"`
}

func (d medicationDTO) toRecord() summary.MedicationRecord {
	return summary.MedicationRecord{
		ID:         d.ID.String(),
		UUID:       d.UUID.String(),
		Regimen:    d.Regimen.String(),
		DateActive: d.DateActive.String(),
	}.Normalized()
}

type historyDTO struct {
	ID          flexString `json:"id"`
	UUID        flexString `json:"uuid"`
	Observation flexString `json:"observation"`
	Value       flexString `json:"value"`
	VisitDate   flexString `json:"visitDate"`
}

func (d historyDTO) toRecord() summary.HistoryRecord {
	return summary.HistoryRecord{
		ID:          d.ID.String(),
		UUID:        d.UUID.String(),
		Observation: d.Observation.String(),
		Value:       d.Value.String(),
		VisitDate:   d.VisitDate.String(),
	}.Normalized()
}

// Location es la forma reducida de /location?v=default.
type Location = patients.Location

// EncounterRef es el encounter tal como lo devuelve el backend; no se reinterpreta.
type EncounterRef = json.RawMessage

// resultsEnvelope es el formato de listados REST: {"results": [...]}
type resultsEnvelope[T any] struct {
	Results []T `json:"results"`
}
