package encounters

import (
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"strconv"
	"strings"

	"patient-summary/internal/platform/httpclient"

	"github.com/go-chi/chi/v5"
)

const maxPayload = 1 << 20

func RegisterRoutes(r chi.Router, svc *Service) {
	r.Get("/patients/{patientUUID}/encounters", listHandler(svc))
	r.Get("/patients/{patientUUID}/encounters/last", lastHandler(svc))

	r.Route("/encounters", func(er chi.Router) {
		er.Post("/", saveHandler(svc))
		er.Post("/{encounterUUID}", saveHandler(svc))
		er.Delete("/{encounterUUID}", deleteHandler(svc))
	})
}

// listHandler godoc
// @Summary Encounters recientes de un paciente
// @Tags encounters
// @Produce json
// @Param patientUUID path string true "UUID del paciente"
// @Param encounterType query string false "UUID del tipo (default: seguimiento)"
// @Param limit query int false "Máximo de resultados (default 5)"
// @Success 200 {array} object
// @Failure 400 {string} string "invalid input"
// @Failure 502 {string} string "upstream error"
// @Router /patients/{patientUUID}/encounters [get]
func listHandler(svc *Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		limit := 0
		if v := strings.TrimSpace(r.URL.Query().Get("limit")); v != "" {
			n, err := strconv.Atoi(v)
			if err != nil {
				http.Error(w, "limit must be an integer", http.StatusBadRequest)
				return
			}
			limit = n
		}

		out, err := svc.List(r.Context(), chi.URLParam(r, "patientUUID"), r.URL.Query().Get("encounterType"), limit)
		if err != nil {
			writeError(w, err)
			return
		}
		writeJSON(w, http.StatusOK, out)
	}
}

// lastHandler godoc
// @Summary Último encounter de un paciente
// @Tags encounters
// @Produce json
// @Param patientUUID path string true "UUID del paciente"
// @Param encounterType query string false "UUID del tipo (default: seguimiento)"
// @Success 200 {object} object
// @Failure 404 {string} string "encounter not found"
// @Failure 502 {string} string "upstream error"
// @Router /patients/{patientUUID}/encounters/last [get]
func lastHandler(svc *Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		enc, err := svc.Last(r.Context(), chi.URLParam(r, "patientUUID"), r.URL.Query().Get("encounterType"))
		if err != nil {
			writeError(w, err)
			return
		}
		writeJSON(w, http.StatusOK, enc)
	}
}

// saveHandler godoc
// @Summary Crear o actualizar un encounter
// @Description Sin encounterUUID crea; con encounterUUID actualiza. El body se reenvía tal cual al backend.
// @Tags encounters
// @Accept json
// @Produce json
// @Param encounterUUID path string false "UUID del encounter (solo update)"
// @Param payload body object true "Encounter en formato REST"
// @Success 200 {object} object
// @Failure 400 {string} string "invalid input"
// @Failure 502 {string} string "upstream error"
// @Router /encounters [post]
// @Router /encounters/{encounterUUID} [post]
func saveHandler(svc *Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		body, err := io.ReadAll(io.LimitReader(r.Body, maxPayload))
		if err != nil {
			http.Error(w, "invalid body", http.StatusBadRequest)
			return
		}

		out, err := svc.Save(r.Context(), json.RawMessage(body), chi.URLParam(r, "encounterUUID"))
		if err != nil {
			writeError(w, err)
			return
		}
		writeJSON(w, http.StatusOK, out)
	}
}

// deleteHandler godoc
// @Summary Borrar un encounter
// @Tags encounters
// @Param encounterUUID path string true "UUID del encounter"
// @Success 204
// @Failure 404 {string} string "backend 404"
// @Failure 502 {string} string "upstream error"
// @Router /encounters/{encounterUUID} [delete]
func deleteHandler(svc *Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if err := svc.Delete(r.Context(), chi.URLParam(r, "encounterUUID")); err != nil {
			writeError(w, err)
			return
		}
		w.WriteHeader(http.StatusNoContent)
	}
}

func writeError(w http.ResponseWriter, err error) {
	switch {
	case errors.Is(err, ErrInvalidInput):
		http.Error(w, err.Error(), http.StatusBadRequest)
	case errors.Is(err, ErrNotFound):
		http.Error(w, err.Error(), http.StatusNotFound)
	default:
		code := httpclient.ProxyStatus(err)
		http.Error(w, "upstream error", code)
	}
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}
