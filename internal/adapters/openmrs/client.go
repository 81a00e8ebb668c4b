package openmrs

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"net/url"
	"strings"
	"time"

	"patient-summary/internal/domain/summary"
	"patient-summary/internal/platform/httpclient"
	"patient-summary/internal/platform/logger"
	"patient-summary/internal/platform/metrics"
)

type Config struct {
	BaseURL  string // incluye /ws/rest/v1
	Username string
	Password string
	Timeout  time.Duration

	RateLimitRPS   float64
	RateLimitBurst int

	// Representación usada en /encounter (last encounter y save).
	EncounterRepresentation string
}

// Client implementa los fetchers contra el REST de OpenMRS.
type Client struct {
	http *httpclient.Client
	repr string
	log  logger.Logger
}

func NewClient(cfg Config, log logger.Logger) (*Client, error) {
	if strings.TrimSpace(cfg.BaseURL) == "" {
		return nil, errors.New("openmrs: base url required")
	}
	hc, err := httpclient.NewWithBaseURL(cfg.BaseURL, cfg.Timeout)
	if err != nil {
		return nil, err
	}
	hc.SetBasicAuth(cfg.Username, cfg.Password)
	hc.SetRateLimit(cfg.RateLimitRPS, cfg.RateLimitBurst)
	return newClient(hc, cfg.EncounterRepresentation, log), nil
}

func newClient(hc *httpclient.Client, repr string, log logger.Logger) *Client {
	if log == nil {
		log = logger.Nop()
	}
	repr = strings.TrimSpace(repr)
	if repr == "" {
		repr = "default"
	}
	return &Client{
		http: hc,
		repr: repr,
		log:  log.With(map[string]any{"component": "openmrs"}),
	}
}

func (c *Client) FetchConditions(ctx context.Context, patientUUID string) ([]summary.ConditionRecord, error) {
	dtos, err := fetchList[conditionDTO](ctx, c, "patientcondition", patientUUID)
	if err != nil {
		return nil, err
	}
	out := make([]summary.ConditionRecord, 0, len(dtos))
	for _, d := range dtos {
		out = append(out, d.toRecord())
	}
	return out, nil
}

func (c *Client) FetchMedications(ctx context.Context, patientUUID string) ([]summary.MedicationRecord, error) {
	dtos, err := fetchList[medicationDTO](ctx, c, "medication", patientUUID)
	if err != nil {
		return nil, err
	}
	out := make([]summary.MedicationRecord, 0, len(dtos))
	for _, d := range dtos {
		out = append(out, d.toRecord())
	}
	return out, nil
}

func (c *Client) FetchHistory(ctx context.Context, patientUUID string) ([]summary.HistoryRecord, error) {
	dtos, err := fetchList[historyDTO](ctx, c, "patienthistory", patientUUID)
	if err != nil {
		return nil, err
	}
	out := make([]summary.HistoryRecord, 0, len(dtos))
	for _, d := range dtos {
		out = append(out, d.toRecord())
	}
	return out, nil
}

// fetchList hace GET /<resource>/<patientUUID> y exige un array JSON.
// Cualquier otra cosa (null, objeto, body vacío) es ErrMalformedResult.
func fetchList[T any](ctx context.Context, c *Client, resource, patientUUID string) ([]T, error) {
	patientUUID = strings.TrimSpace(patientUUID)
	if patientUUID == "" {
		return nil, summary.ErrInvalidInput
	}

	start := time.Now()
	var raw json.RawMessage
	err := c.http.DoJSON(ctx, http.MethodGet, "/"+resource+"/"+url.PathEscape(patientUUID), nil, nil, &raw)

	var items []T
	if err == nil {
		items, err = decodeArray[T](raw)
	} else {
		err = classify(err)
	}

	metrics.RecordUpstreamRequest(resource, outcomeOf(err), time.Since(start))
	if err != nil {
		c.log.Warn("fetch failed", map[string]any{
			"resource":     resource,
			"patient_uuid": patientUUID,
			"error":        err,
		})
		return nil, err
	}
	return items, nil
}

func decodeArray[T any](raw json.RawMessage) ([]T, error) {
	raw = bytes.TrimSpace(raw)
	if len(raw) == 0 || raw[0] != '[' {
		return nil, summary.ErrMalformedResult
	}
	var items []T
	if err := json.Unmarshal(raw, &items); err != nil {
		return nil, fmt.Errorf("%w: %w", summary.ErrMalformedResult, err)
	}
	return items, nil
}

// classify traduce errores de transporte a la taxonomía de fetch.
// El error original queda envuelto (errors.Is sigue viendo context.Canceled).
func classify(err error) error {
	switch {
	case err == nil:
		return nil
	case errors.Is(err, httpclient.ErrDecode):
		return fmt.Errorf("%w: %w", summary.ErrMalformedResult, err)
	case httpclient.StatusCode(err) == http.StatusNotFound:
		return fmt.Errorf("%w: %w", summary.ErrMalformedResult, err)
	default:
		return fmt.Errorf("%w: %w", summary.ErrNetworkFailure, err)
	}
}

func outcomeOf(err error) string {
	switch {
	case err == nil:
		return "ok"
	case errors.Is(err, context.Canceled):
		return "canceled"
	case errors.Is(err, summary.ErrMalformedResult):
		return "malformed"
	case errors.Is(err, httpclient.ErrTooLarge):
		return "too_large"
	default:
		return "network"
	}
}
