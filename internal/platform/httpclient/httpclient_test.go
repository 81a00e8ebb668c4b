package httpclient

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync/atomic"
	"testing"
	"time"
)

func TestDoJSON_GET_DecodesAndSetsHeaders(t *testing.T) {
	var gotAccept, gotAuth, gotCT string
	ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotAccept = r.Header.Get("Accept")
		gotAuth = r.Header.Get("Authorization")
		gotCT = r.Header.Get("Content-Type")
		_, _ = w.Write([]byte(`[{"uuid":"a"},{"uuid":"b"}]`))
	}))
	defer ts.Close()

	c, err := NewWithBaseURL(ts.URL, time.Second)
	if err != nil {
		t.Fatalf("NewWithBaseURL: %v", err)
	}
	c.SetBasicAuth("admin", "Admin123")

	var out []map[string]string
	if err := c.DoJSON(context.Background(), http.MethodGet, "/x?v=full", nil, nil, &out); err != nil {
		t.Fatalf("DoJSON: %v", err)
	}
	if len(out) != 2 || out[0]["uuid"] != "a" || out[1]["uuid"] != "b" {
		t.Fatalf("unexpected decode: %#v", out)
	}
	if gotAccept != "application/json" {
		t.Fatalf("expected Accept json, got %q", gotAccept)
	}
	if gotAuth != "Basic YWRtaW46QWRtaW4xMjM=" {
		t.Fatalf("expected basic auth, got %q", gotAuth)
	}
	if gotCT != "" {
		t.Fatalf("GET must not send Content-Type, got %q", gotCT)
	}
}

func TestDoJSON_POST_SendsJSONBody(t *testing.T) {
	var gotCT string
	var gotBody map[string]any
	ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotCT = r.Header.Get("Content-Type")
		b, _ := io.ReadAll(r.Body)
		_ = json.Unmarshal(b, &gotBody)
		w.WriteHeader(http.StatusCreated)
		_, _ = w.Write([]byte(`{"uuid":"enc-1"}`))
	}))
	defer ts.Close()

	c, _ := NewWithBaseURL(ts.URL, time.Second)

	var out struct {
		UUID string `json:"uuid"`
	}
	in := json.RawMessage(`{"patient":"p-1"}`)
	if err := c.DoJSON(context.Background(), http.MethodPost, "/encounter", nil, in, &out); err != nil {
		t.Fatalf("DoJSON: %v", err)
	}
	if gotCT != "application/json" {
		t.Fatalf("expected json content type, got %q", gotCT)
	}
	if gotBody["patient"] != "p-1" {
		t.Fatalf("unexpected body: %#v", gotBody)
	}
	if out.UUID != "enc-1" {
		t.Fatalf("unexpected out: %#v", out)
	}
}

func TestDoJSON_ForwardedHeadersOverrideDefaults(t *testing.T) {
	var gotAuth string
	ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotAuth = r.Header.Get("Authorization")
		w.WriteHeader(http.StatusNoContent)
	}))
	defer ts.Close()

	c, _ := NewWithBaseURL(ts.URL, time.Second)
	c.SetBasicAuth("svc", "svc")

	ctx := WithForwardedHeaders(context.Background(), map[string]string{"Authorization": "Bearer caller"})
	if err := c.DoJSON(ctx, http.MethodGet, "/x", nil, nil, nil); err != nil {
		t.Fatalf("DoJSON: %v", err)
	}
	if gotAuth != "Bearer caller" {
		t.Fatalf("expected forwarded auth, got %q", gotAuth)
	}
}

func TestDoJSON_ErrorClasses(t *testing.T) {
	ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		switch r.URL.Path {
		case "/bad-json":
			_, _ = w.Write([]byte(`{not json`))
		case "/boom":
			http.Error(w, "boom", http.StatusInternalServerError)
		}
	}))
	defer ts.Close()

	c, _ := NewWithBaseURL(ts.URL, time.Second)

	var out any
	err := c.DoJSON(context.Background(), http.MethodGet, "/bad-json", nil, nil, &out)
	if !errors.Is(err, ErrDecode) {
		t.Fatalf("expected ErrDecode, got %v", err)
	}

	err = c.DoJSON(context.Background(), http.MethodGet, "/boom", nil, nil, &out)
	if StatusCode(err) != http.StatusInternalServerError {
		t.Fatalf("expected HTTPError 500, got %v", err)
	}

	dead, _ := NewWithBaseURL("http://127.0.0.1:1", time.Second)
	err = dead.DoJSON(context.Background(), http.MethodGet, "/x", nil, nil, &out)
	if !errors.Is(err, ErrTransport) {
		t.Fatalf("expected ErrTransport, got %v", err)
	}
}

func TestDoJSON_CanceledContext(t *testing.T) {
	ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		<-r.Context().Done()
	}))
	defer ts.Close()

	c, _ := NewWithBaseURL(ts.URL, 5*time.Second)

	ctx, cancel := context.WithCancel(context.Background())
	go func() {
		time.Sleep(20 * time.Millisecond)
		cancel()
	}()

	err := c.DoJSON(ctx, http.MethodGet, "/slow", nil, nil, nil)
	if !errors.Is(err, context.Canceled) {
		t.Fatalf("expected context.Canceled, got %v", err)
	}
}

func TestResolveURL_RelativeRequiresBaseURL(t *testing.T) {
	c := New(0)
	if err := c.DoJSON(context.Background(), http.MethodGet, "/x", nil, nil, nil); err == nil {
		t.Fatalf("expected error without BaseURL")
	}
}

func TestProxyStatus(t *testing.T) {
	cases := []struct {
		name string
		err  error
		want int
	}{
		{"backend 404", &HTTPError{StatusCode: http.StatusNotFound}, http.StatusNotFound},
		{"backend 400", &HTTPError{StatusCode: http.StatusBadRequest}, http.StatusBadRequest},
		{"backend 500", &HTTPError{StatusCode: http.StatusInternalServerError}, http.StatusBadGateway},
		{"transport", fmt.Errorf("%w: dial", ErrTransport), http.StatusBadGateway},
		{"decode", fmt.Errorf("%w: eof", ErrDecode), http.StatusBadGateway},
		{"too large", fmt.Errorf("%w: limit 1 bytes", ErrTooLarge), http.StatusBadGateway},
		{"deadline", fmt.Errorf("%w: %w", ErrTransport, context.DeadlineExceeded), http.StatusGatewayTimeout},
		{"other", errors.New("boom"), http.StatusInternalServerError},
	}
	for _, tc := range cases {
		if got := ProxyStatus(tc.err); got != tc.want {
			t.Fatalf("%s: expected %d, got %d", tc.name, tc.want, got)
		}
	}
}

func TestDoJSON_RateLimitHonorsContext(t *testing.T) {
	var calls atomic.Int32
	ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		calls.Add(1)
		_, _ = w.Write([]byte(`{}`))
	}))
	defer ts.Close()

	c, _ := NewWithBaseURL(ts.URL, time.Second)
	c.SetRateLimit(0.001, 1)

	if err := c.DoJSON(context.Background(), http.MethodGet, "/a", nil, nil, nil); err != nil {
		t.Fatalf("first request within burst: %v", err)
	}

	ctx, cancel := context.WithTimeout(context.Background(), 50*time.Millisecond)
	defer cancel()
	err := c.DoJSON(ctx, http.MethodGet, "/b", nil, nil, nil)
	if err == nil {
		t.Fatalf("expected the limiter to reject the second request")
	}
	if n := calls.Load(); n != 1 {
		t.Fatalf("limited request must not reach the backend, got %d calls", n)
	}

	c.SetRateLimit(0, 0)
	if err := c.DoJSON(context.Background(), http.MethodGet, "/c", nil, nil, nil); err != nil {
		t.Fatalf("unlimited request: %v", err)
	}
}

func TestDoJSON_BodyLimit(t *testing.T) {
	body := `[` + strings.Repeat(`{"uuid":"a"},`, 999) + `{"uuid":"a"}]`
	ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte(body))
	}))
	defer ts.Close()

	c, _ := NewWithBaseURL(ts.URL, time.Second)

	c.MaxBodyBytes = int64(len(body))
	var out []map[string]string
	if err := c.DoJSON(context.Background(), http.MethodGet, "/list", nil, nil, &out); err != nil {
		t.Fatalf("body exactly at the limit: %v", err)
	}
	if len(out) != 1000 {
		t.Fatalf("expected 1000 items, got %d", len(out))
	}

	c.MaxBodyBytes = int64(len(body)) - 1
	err := c.DoJSON(context.Background(), http.MethodGet, "/list", nil, nil, &out)
	if !errors.Is(err, ErrTooLarge) {
		t.Fatalf("expected ErrTooLarge, got %v", err)
	}
	if errors.Is(err, ErrDecode) {
		t.Fatalf("an oversized body must not be reported as a decode error: %v", err)
	}
}
