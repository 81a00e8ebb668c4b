package summary

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"strconv"
	"strings"

	"github.com/go-chi/chi/v5"
)

func RegisterRoutes(r chi.Router, svc *Service) {
	r.Get("/widgets", listWidgetsHandler(svc))
	r.Post("/widgets/{widget}/instances", mountHandler(svc))

	r.Route("/widgets/instances/{instanceID}", func(ir chi.Router) {
		ir.Get("/", getInstanceHandler(svc))
		ir.Put("/patient", setPatientHandler(svc))
		ir.Put("/page", setPageHandler(svc))
		ir.Delete("/", unmountHandler(svc))
	})

	r.Get("/patients/{patientUUID}/summaries/{widget}", renderHandler(svc))
}

type widgetResponse struct {
	Name         string   `json:"name"`
	Title        string   `json:"title"`
	Extension    string   `json:"extension"`
	Columns      []Column `json:"columns"`
	EmptyMessage string   `json:"empty_message"`
}

// mountRequest es el cuerpo para montar un widget sobre un paciente.
type mountRequest struct {
	PatientUUID string `json:"patient_uuid"`
	PageSize    int    `json:"page_size"` // opcional
}

type setPatientRequest struct {
	PatientUUID string `json:"patient_uuid"`
}

// setPageRequest: si page_size cambia, la página vuelve a 1 y page se ignora.
type setPageRequest struct {
	Page     *int `json:"page"`
	PageSize *int `json:"page_size"`
}

// listWidgetsHandler godoc
// @Summary Listar widgets disponibles
// @Description Devuelve los widgets de resumen registrados (conditions, medications, history) con sus columnas.
// @Tags widgets
// @Produce json
// @Success 200 {array} widgetResponse
// @Router /widgets [get]
func listWidgetsHandler(svc *Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		defs := svc.Definitions()
		out := make([]widgetResponse, 0, len(defs))
		for _, d := range defs {
			out = append(out, widgetResponse{
				Name:         d.Name,
				Title:        d.Title,
				Extension:    d.Extension,
				Columns:      d.Columns,
				EmptyMessage: d.EmptyMessage,
			})
		}
		writeJSON(w, http.StatusOK, out)
	}
}

// mountHandler godoc
// @Summary Montar un widget
// @Description Crea una instancia del widget para el paciente y arranca la carga. Con `wait=true` responde cuando la carga terminó.
// @Tags widgets
// @Accept json
// @Produce json
// @Param widget path string true "Nombre del widget (conditions, medications, history)"
// @Param wait query bool false "Esperar a que termine la carga"
// @Param payload body mountRequest true "Paciente y tamaño de página opcional"
// @Success 201 {object} View
// @Failure 400 {string} string "invalid json / invalid input"
// @Failure 404 {string} string "unknown widget"
// @Router /widgets/{widget}/instances [post]
func mountHandler(svc *Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var req mountRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			http.Error(w, "invalid json", http.StatusBadRequest)
			return
		}
		if req.PageSize < 0 {
			http.Error(w, ErrInvalidPage.Error(), http.StatusBadRequest)
			return
		}

		inst, err := svc.Mount(r.Context(), chi.URLParam(r, "widget"), req.PatientUUID)
		if err != nil {
			writeError(w, err)
			return
		}
		if req.PageSize > 0 {
			_ = inst.SetPageSize(req.PageSize)
		}

		if wantWait(r) {
			if err := inst.Wait(r.Context()); err != nil {
				writeError(w, err)
				return
			}
		}
		writeJSON(w, http.StatusCreated, inst.View())
	}
}

// getInstanceHandler godoc
// @Summary Ver una instancia de widget
// @Description Devuelve el estado actual (loading, success, empty, error) y la página visible.
// @Tags widgets
// @Produce json
// @Param instanceID path string true "ID de la instancia"
// @Param wait query bool false "Esperar a que termine la carga en curso"
// @Success 200 {object} View
// @Failure 404 {string} string "widget instance not found"
// @Router /widgets/instances/{instanceID} [get]
func getInstanceHandler(svc *Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		inst, err := svc.Instance(chi.URLParam(r, "instanceID"))
		if err != nil {
			writeError(w, err)
			return
		}
		if wantWait(r) {
			if err := inst.Wait(r.Context()); err != nil {
				writeError(w, err)
				return
			}
		}
		writeJSON(w, http.StatusOK, inst.View())
	}
}

// setPatientHandler godoc
// @Summary Cambiar el paciente de una instancia
// @Description Descarta la carga anterior (aunque siga en vuelo) y arranca una nueva; la vista vuelve a loading.
// @Tags widgets
// @Accept json
// @Produce json
// @Param instanceID path string true "ID de la instancia"
// @Param wait query bool false "Esperar a que termine la carga"
// @Param payload body setPatientRequest true "Nuevo paciente"
// @Success 202 {object} View
// @Failure 400 {string} string "invalid json / invalid input"
// @Failure 404 {string} string "widget instance not found"
// @Router /widgets/instances/{instanceID}/patient [put]
func setPatientHandler(svc *Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		inst, err := svc.Instance(chi.URLParam(r, "instanceID"))
		if err != nil {
			writeError(w, err)
			return
		}

		var req setPatientRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			http.Error(w, "invalid json", http.StatusBadRequest)
			return
		}

		if _, err := inst.SetPatient(r.Context(), req.PatientUUID); err != nil {
			writeError(w, err)
			return
		}

		status := http.StatusAccepted
		if wantWait(r) {
			if err := inst.Wait(r.Context()); err != nil {
				writeError(w, err)
				return
			}
			status = http.StatusOK
		}
		writeJSON(w, status, inst.View())
	}
}

// setPageHandler godoc
// @Summary Cambiar página o tamaño de página
// @Description Si `page_size` cambia, la página vuelve a 1. Una página fuera de rango devuelve cero filas.
// @Tags widgets
// @Accept json
// @Produce json
// @Param instanceID path string true "ID de la instancia"
// @Param payload body setPageRequest true "page y/o page_size"
// @Success 200 {object} View
// @Failure 400 {string} string "page and page size must be positive"
// @Failure 404 {string} string "widget instance not found"
// @Router /widgets/instances/{instanceID}/page [put]
func setPageHandler(svc *Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		inst, err := svc.Instance(chi.URLParam(r, "instanceID"))
		if err != nil {
			writeError(w, err)
			return
		}

		var req setPageRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			http.Error(w, "invalid json", http.StatusBadRequest)
			return
		}

		switch {
		case req.PageSize != nil && *req.PageSize != inst.Pager().PageSize():
			err = inst.SetPageSize(*req.PageSize)
		case req.Page != nil:
			err = inst.SetPage(*req.Page)
		}
		if err != nil {
			writeError(w, err)
			return
		}
		writeJSON(w, http.StatusOK, inst.View())
	}
}

// unmountHandler godoc
// @Summary Desmontar una instancia
// @Description Cancela la carga en vuelo y descarta el estado.
// @Tags widgets
// @Param instanceID path string true "ID de la instancia"
// @Success 204
// @Failure 404 {string} string "widget instance not found"
// @Router /widgets/instances/{instanceID} [delete]
func unmountHandler(svc *Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if err := svc.Unmount(chi.URLParam(r, "instanceID")); err != nil {
			writeError(w, err)
			return
		}
		w.WriteHeader(http.StatusNoContent)
	}
}

// renderHandler godoc
// @Summary Resumen paginado de un paciente
// @Description Carga el widget para el paciente y devuelve la página pedida, en JSON o como fragmento HTML.
// @Tags summaries
// @Produce json
// @Produce html
// @Param patientUUID path string true "UUID del paciente"
// @Param widget path string true "Nombre del widget (conditions, medications, history)"
// @Param page query int false "Página (desde 1). Por defecto 1"
// @Param page_size query int false "Filas por página. Por defecto 10"
// @Param format query string false "json (default) o html"
// @Success 200 {object} View
// @Failure 400 {string} string "parámetros inválidos"
// @Failure 404 {string} string "unknown widget"
// @Router /patients/{patientUUID}/summaries/{widget} [get]
func renderHandler(svc *Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		page, err := intQuery(r, "page", 1)
		if err != nil {
			http.Error(w, "page must be an integer", http.StatusBadRequest)
			return
		}
		pageSize, err := intQuery(r, "page_size", 0)
		if err != nil || pageSize < 0 {
			http.Error(w, "page_size must be a positive integer", http.StatusBadRequest)
			return
		}

		v, err := svc.Render(r.Context(), chi.URLParam(r, "widget"), chi.URLParam(r, "patientUUID"), page, pageSize)
		if err != nil {
			writeError(w, err)
			return
		}

		if strings.EqualFold(r.URL.Query().Get("format"), "html") {
			w.Header().Set("Content-Type", "text/html; charset=utf-8")
			w.WriteHeader(http.StatusOK)
			_ = RenderHTML(w, v)
			return
		}
		writeJSON(w, http.StatusOK, v)
	}
}

func wantWait(r *http.Request) bool {
	b, _ := strconv.ParseBool(r.URL.Query().Get("wait"))
	return b
}

func intQuery(r *http.Request, key string, def int) (int, error) {
	v := strings.TrimSpace(r.URL.Query().Get(key))
	if v == "" {
		return def, nil
	}
	return strconv.Atoi(v)
}

func writeError(w http.ResponseWriter, err error) {
	switch {
	case errors.Is(err, ErrUnknownWidget), errors.Is(err, ErrInstanceNotFound):
		http.Error(w, err.Error(), http.StatusNotFound)
	case errors.Is(err, ErrInvalidInput), errors.Is(err, ErrInvalidPage):
		http.Error(w, err.Error(), http.StatusBadRequest)
	case errors.Is(err, ErrUnmounted):
		http.Error(w, err.Error(), http.StatusConflict)
	case errors.Is(err, context.Canceled), errors.Is(err, context.DeadlineExceeded):
		http.Error(w, "request canceled", http.StatusGatewayTimeout)
	default:
		http.Error(w, "internal error", http.StatusInternalServerError)
	}
}

// writeJSON está duplicado intencionalmente en handlers de distintos módulos
// (mismo criterio que el resto del repo).
func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}
