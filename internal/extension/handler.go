package extension

import (
	"encoding/json"
	"net/http"

	"github.com/go-chi/chi/v5"
)

func RegisterRoutes(r chi.Router, m Manifest) {
	r.Get("/manifest", manifestHandler(m))
}

// manifestHandler godoc
// @Summary Manifest del módulo
// @Description Nombre del módulo, schema de configuración, link del dashboard y lifecycles.
// @Tags extension
// @Produce json
// @Success 200 {object} Manifest
// @Router /manifest [get]
func manifestHandler(m Manifest) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusOK)
		_ = json.NewEncoder(w).Encode(m)
	}
}
