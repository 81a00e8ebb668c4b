package accesslog

import (
	"encoding/json"
	"errors"
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/go-chi/chi/v5"
)

func RegisterRoutes(r chi.Router, svc *Service) {
	r.Get("/patients/{patientUUID}/access-log", listHandler(svc))
}

type entryResponse struct {
	ID          string    `json:"id"`
	PatientUUID string    `json:"patient_uuid"`
	Widget      string    `json:"widget"`
	InstanceID  string    `json:"instance_id,omitempty"`
	Outcome     string    `json:"outcome"`
	Rows        int       `json:"rows"`
	Reason      string    `json:"reason,omitempty"`
	DurationMS  int64     `json:"duration_ms"`
	RecordedAt  time.Time `json:"recorded_at"`
}

func toEntryResponse(e Entry) entryResponse {
	return entryResponse{
		ID:          e.ID,
		PatientUUID: e.PatientUUID,
		Widget:      e.Widget,
		InstanceID:  e.InstanceID,
		Outcome:     e.Outcome,
		Rows:        e.Rows,
		Reason:      e.Reason,
		DurationMS:  e.Duration.Milliseconds(),
		RecordedAt:  e.RecordedAt,
	}
}

// listHandler godoc
// @Summary Cargas de widgets de un paciente
// @Description Una entrada por carga (success, empty, error, stale). No incluye datos clínicos.
// @Tags access-log
// @Produce json
// @Param patientUUID path string true "UUID del paciente"
// @Param widget query string false "Filtrar por widget"
// @Param outcome query string false "Filtrar por resultado"
// @Param limit query int false "Máximo de entradas (default 50, max 200)"
// @Success 200 {array} entryResponse
// @Failure 400 {string} string "invalid input"
// @Router /patients/{patientUUID}/access-log [get]
func listHandler(svc *Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		q := r.URL.Query()

		limit := 0
		if v := strings.TrimSpace(q.Get("limit")); v != "" {
			n, err := strconv.Atoi(v)
			if err != nil || n < 0 {
				http.Error(w, "limit must be a positive integer", http.StatusBadRequest)
				return
			}
			limit = n
		}

		list, err := svc.List(r.Context(), chi.URLParam(r, "patientUUID"), ListFilter{
			Widget:  q.Get("widget"),
			Outcome: q.Get("outcome"),
			Limit:   limit,
		})
		if err != nil {
			if errors.Is(err, ErrInvalidInput) {
				http.Error(w, err.Error(), http.StatusBadRequest)
				return
			}
			http.Error(w, "internal error", http.StatusInternalServerError)
			return
		}

		out := make([]entryResponse, 0, len(list))
		for _, e := range list {
			out = append(out, toEntryResponse(e))
		}
		writeJSON(w, http.StatusOK, out)
	}
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}
