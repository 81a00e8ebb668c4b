package middleware

import (
	"net/http"
	"strings"

	"patient-summary/internal/platform/httpclient"
)

// forwardedHeaders son los headers de sesión que se reenvían al backend.
var forwardedHeaders = []string{"Authorization", "Cookie"}

// ForwardCredentials copia la sesión del caller (Authorization / Cookie) al
// context para que las llamadas salientes la usen en lugar de la cuenta de
// servicio. No valida nada: si no hay headers, el request sigue igual.
func ForwardCredentials(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		h := map[string]string{}
		for _, name := range forwardedHeaders {
			if v := strings.TrimSpace(r.Header.Get(name)); v != "" {
				h[name] = v
			}
		}
		if len(h) == 0 {
			next.ServeHTTP(w, r)
			return
		}
		ctx := httpclient.WithForwardedHeaders(r.Context(), h)
		next.ServeHTTP(w, r.WithContext(ctx))
	})
}
