package httpclient

import "context"

type ctxKey string

const forwardedKey ctxKey = "forwarded-headers"

// WithForwardedHeaders guarda en ctx headers que DoJSON debe reenviar al upstream
// (Authorization, Cookie de sesión). No valida nada: el backend decide.
func WithForwardedHeaders(ctx context.Context, h map[string]string) context.Context {
	if len(h) == 0 {
		return ctx
	}
	cp := make(map[string]string, len(h))
	for k, v := range h {
		cp[k] = v
	}
	return context.WithValue(ctx, forwardedKey, cp)
}

func ForwardedHeaders(ctx context.Context) map[string]string {
	if ctx == nil {
		return nil
	}
	h, _ := ctx.Value(forwardedKey).(map[string]string)
	return h
}
