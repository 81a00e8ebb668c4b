package patients

import (
	"encoding/json"
	"errors"
	"net/http"

	"patient-summary/internal/platform/httpclient"

	"github.com/go-chi/chi/v5"
)

func RegisterRoutes(r chi.Router, svc *Service) {
	r.Get("/patients/{patientUUID}", getPatientHandler(svc))
	r.Get("/locations", listLocationsHandler(svc))
}

// getPatientHandler godoc
// @Summary Datos del paciente
// @Description Paciente completo (representación full) tal como lo devuelve el backend.
// @Tags patients
// @Produce json
// @Param patientUUID path string true "UUID del paciente"
// @Success 200 {object} object
// @Failure 404 {string} string "patient not found"
// @Failure 502 {string} string "upstream error"
// @Router /patients/{patientUUID} [get]
func getPatientHandler(svc *Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		p, err := svc.Get(r.Context(), chi.URLParam(r, "patientUUID"))
		if err != nil {
			writeError(w, err)
			return
		}
		writeJSON(w, http.StatusOK, p)
	}
}

// listLocationsHandler godoc
// @Summary Listar locations
// @Tags patients
// @Produce json
// @Success 200 {array} Location
// @Failure 502 {string} string "upstream error"
// @Router /locations [get]
func listLocationsHandler(svc *Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		locs, err := svc.Locations(r.Context())
		if err != nil {
			writeError(w, err)
			return
		}
		writeJSON(w, http.StatusOK, locs)
	}
}

func writeError(w http.ResponseWriter, err error) {
	switch {
	case errors.Is(err, ErrInvalidInput):
		http.Error(w, err.Error(), http.StatusBadRequest)
	case errors.Is(err, ErrNotFound), httpclient.StatusCode(err) == http.StatusNotFound:
		http.Error(w, ErrNotFound.Error(), http.StatusNotFound)
	default:
		http.Error(w, "upstream error", httpclient.ProxyStatus(err))
	}
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}
