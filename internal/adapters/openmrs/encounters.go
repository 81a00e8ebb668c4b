package openmrs

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"

	"patient-summary/internal/platform/metrics"
)

const DefaultEncounterLimit = 5

var ErrUUIDRequired = errors.New("openmrs: uuid required")

// ListEncounters trae los últimos encounters del tipo dado (v=full).
// encounterType vacío => sin filtro de tipo. limit <= 0 => DefaultEncounterLimit.
func (c *Client) ListEncounters(ctx context.Context, patientUUID, encounterType string, limit int) ([]EncounterRef, error) {
	patientUUID = strings.TrimSpace(patientUUID)
	if patientUUID == "" {
		return nil, ErrUUIDRequired
	}
	if limit <= 0 {
		limit = DefaultEncounterLimit
	}

	q := encounterQuery(patientUUID, encounterType)
	q.Set("v", "full")
	q.Set("limit", strconv.Itoa(limit))

	var env resultsEnvelope[json.RawMessage]
	if err := c.do(ctx, "encounter_list", http.MethodGet, "/encounter?"+q.Encode(), nil, &env); err != nil {
		return nil, err
	}
	if env.Results == nil {
		return []EncounterRef{}, nil
	}
	return env.Results, nil
}

// LastEncounter devuelve el último encounter de la lista (orden del backend) o nil.
func (c *Client) LastEncounter(ctx context.Context, patientUUID, encounterType string) (EncounterRef, error) {
	patientUUID = strings.TrimSpace(patientUUID)
	if patientUUID == "" {
		return nil, ErrUUIDRequired
	}

	q := encounterQuery(patientUUID, encounterType)
	q.Set("v", c.repr)

	var env resultsEnvelope[json.RawMessage]
	if err := c.do(ctx, "encounter_last", http.MethodGet, "/encounter?"+q.Encode(), nil, &env); err != nil {
		return nil, err
	}
	if len(env.Results) == 0 {
		return nil, nil
	}
	return env.Results[len(env.Results)-1], nil
}

// GetPatientInfo devuelve el paciente tal cual (v=full).
func (c *Client) GetPatientInfo(ctx context.Context, patientUUID string) (json.RawMessage, error) {
	patientUUID = strings.TrimSpace(patientUUID)
	if patientUUID == "" {
		return nil, ErrUUIDRequired
	}

	var raw json.RawMessage
	if err := c.do(ctx, "patient", http.MethodGet, "/patient/"+url.PathEscape(patientUUID)+"?v=full", nil, &raw); err != nil {
		return nil, err
	}
	return raw, nil
}

func (c *Client) ListLocations(ctx context.Context) ([]Location, error) {
	var env resultsEnvelope[Location]
	if err := c.do(ctx, "location", http.MethodGet, "/location?q=&v=default", nil, &env); err != nil {
		return nil, err
	}
	if env.Results == nil {
		return []Location{}, nil
	}
	return env.Results, nil
}

// SaveEncounter crea (encounterUUID vacío) o actualiza un encounter.
// Ambos casos son POST; OpenMRS no usa PUT para update.
func (c *Client) SaveEncounter(ctx context.Context, payload json.RawMessage, encounterUUID string) (EncounterRef, error) {
	if len(payload) == 0 {
		return nil, errors.New("openmrs: empty encounter payload")
	}

	path := "/encounter"
	if id := strings.TrimSpace(encounterUUID); id != "" {
		path += "/" + url.PathEscape(id)
	}
	path += "?v=" + url.QueryEscape(c.repr)

	var out json.RawMessage
	if err := c.do(ctx, "encounter_save", http.MethodPost, path, payload, &out); err != nil {
		c.log.Error("error saving encounter", map[string]any{"encounter_uuid": encounterUUID, "error": err})
		return nil, err
	}
	return out, nil
}

func (c *Client) DeleteEncounter(ctx context.Context, encounterUUID string) error {
	encounterUUID = strings.TrimSpace(encounterUUID)
	if encounterUUID == "" {
		return ErrUUIDRequired
	}
	if err := c.do(ctx, "encounter_delete", http.MethodDelete, "/encounter/"+url.PathEscape(encounterUUID), nil, nil); err != nil {
		c.log.Error("error deleting encounter", map[string]any{"encounter_uuid": encounterUUID, "error": err})
		return err
	}
	return nil
}

// do es DoJSON + métrica por endpoint. Los errores vuelven sin reclasificar:
// el caller decide (502, status del backend, etc).
func (c *Client) do(ctx context.Context, endpoint, method, path string, in, out any) error {
	start := time.Now()
	err := c.http.DoJSON(ctx, method, path, nil, in, out)

	outcome := "ok"
	if err != nil {
		outcome = outcomeOf(classify(err))
	}
	metrics.RecordUpstreamRequest(endpoint, outcome, time.Since(start))
	return err
}

func encounterQuery(patientUUID, encounterType string) url.Values {
	q := url.Values{}
	if t := strings.TrimSpace(encounterType); t != "" {
		q.Set("encounterType", t)
	}
	q.Set("patient", patientUUID)
	return q
}
