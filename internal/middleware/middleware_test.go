package middleware

import (
	"net/http"
	"net/http/httptest"
	"sync"
	"testing"

	"patient-summary/internal/platform/httpclient"
	"patient-summary/internal/platform/logger"

	chimw "github.com/go-chi/chi/v5/middleware"
)

func TestForwardCredentials(t *testing.T) {
	var got map[string]string
	h := ForwardCredentials(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		got = httpclient.ForwardedHeaders(r.Context())
	}))

	req := httptest.NewRequest(http.MethodGet, "/", nil)
	req.Header.Set("Authorization", "Basic dXNlcjpwYXNz")
	req.Header.Set("Cookie", "JSESSIONID=abc")
	req.Header.Set("X-Other", "ignored")
	h.ServeHTTP(httptest.NewRecorder(), req)

	if got["Authorization"] != "Basic dXNlcjpwYXNz" || got["Cookie"] != "JSESSIONID=abc" || len(got) != 2 {
		t.Fatalf("unexpected forwarded headers: %v", got)
	}

	got = nil
	h.ServeHTTP(httptest.NewRecorder(), httptest.NewRequest(http.MethodGet, "/", nil))
	if len(got) != 0 {
		t.Fatalf("expected no forwarded headers, got %v", got)
	}
}

type entry struct {
	level  string
	msg    string
	fields map[string]any
}

type testLogger struct {
	mu      sync.Mutex
	entries []entry
}

func (l *testLogger) add(level, msg string, f map[string]any) {
	l.mu.Lock()
	defer l.mu.Unlock()
	l.entries = append(l.entries, entry{level, msg, f})
}

func (l *testLogger) With(map[string]any) logger.Logger  { return l }
func (l *testLogger) Debug(msg string, f map[string]any) { l.add("debug", msg, f) }
func (l *testLogger) Info(msg string, f map[string]any)  { l.add("info", msg, f) }
func (l *testLogger) Warn(msg string, f map[string]any)  { l.add("warn", msg, f) }
func (l *testLogger) Error(msg string, f map[string]any) { l.add("error", msg, f) }

func TestRequestLogger_LevelsAndRequestID(t *testing.T) {
	log := &testLogger{}
	h := chimw.RequestID(RequestLogger(log)(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		switch r.URL.Path {
		case "/missing":
			http.Error(w, "not found", http.StatusNotFound)
		case "/boom":
			w.WriteHeader(http.StatusBadGateway)
		default:
			_, _ = w.Write([]byte("ok"))
		}
	})))

	for _, p := range []string{"/ok", "/missing", "/boom"} {
		h.ServeHTTP(httptest.NewRecorder(), httptest.NewRequest(http.MethodGet, p, nil))
	}

	if len(log.entries) != 3 {
		t.Fatalf("expected 3 log lines, got %d", len(log.entries))
	}
	wantLevels := []string{"info", "warn", "error"}
	for i, e := range log.entries {
		if e.level != wantLevels[i] {
			t.Fatalf("entry %d: expected %s, got %s", i, wantLevels[i], e.level)
		}
		if id, _ := e.fields["request_id"].(string); id == "" {
			t.Fatalf("entry %d: missing request id", i)
		}
	}
	if log.entries[0].fields["status"] != http.StatusOK {
		t.Fatalf("expected status 200, got %v", log.entries[0].fields["status"])
	}
}
