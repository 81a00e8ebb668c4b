package patients

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"patient-summary/internal/platform/httpclient"

	"github.com/go-chi/chi/v5"
)

type testGateway struct {
	patients  map[string]json.RawMessage
	locations []Location
	err       error
}

func (g *testGateway) GetPatientInfo(_ context.Context, patientUUID string) (json.RawMessage, error) {
	if g.err != nil {
		return nil, g.err
	}
	p, ok := g.patients[patientUUID]
	if !ok {
		return nil, &httpclient.HTTPError{StatusCode: http.StatusNotFound}
	}
	return p, nil
}

func (g *testGateway) ListLocations(_ context.Context) ([]Location, error) {
	if g.err != nil {
		return nil, g.err
	}
	return g.locations, nil
}

func TestService_Get(t *testing.T) {
	svc := NewService(&testGateway{patients: map[string]json.RawMessage{
		"pat-1": json.RawMessage(`{"uuid":"pat-1"}`),
		"pat-2": json.RawMessage(`null`),
	}})

	if _, err := svc.Get(context.Background(), "pat-1"); err != nil {
		t.Fatalf("Get: %v", err)
	}
	if _, err := svc.Get(context.Background(), "pat-2"); !errors.Is(err, ErrNotFound) {
		t.Fatalf("expected ErrNotFound for null, got %v", err)
	}
	if _, err := svc.Get(context.Background(), " "); !errors.Is(err, ErrInvalidInput) {
		t.Fatalf("expected ErrInvalidInput, got %v", err)
	}
}

func TestService_LocationsSkipsEmptyUUID(t *testing.T) {
	svc := NewService(&testGateway{locations: []Location{
		{UUID: "loc-1", Display: "Outpatient"},
		{UUID: "", Display: "broken"},
		{UUID: "loc-2", Display: "Inpatient"},
	}})

	locs, err := svc.Locations(context.Background())
	if err != nil {
		t.Fatalf("Locations: %v", err)
	}
	if len(locs) != 2 || locs[0].UUID != "loc-1" || locs[1].UUID != "loc-2" {
		t.Fatalf("unexpected locations: %#v", locs)
	}
}

func TestHandlers(t *testing.T) {
	gw := &testGateway{
		patients:  map[string]json.RawMessage{"pat-1": json.RawMessage(`{"uuid":"pat-1","display":"Abebe"}`)},
		locations: []Location{{UUID: "loc-1", Display: "Outpatient"}},
	}
	r := chi.NewRouter()
	RegisterRoutes(r, NewService(gw))
	ts := httptest.NewServer(r)
	defer ts.Close()

	cases := []struct {
		path string
		want int
	}{
		{"/patients/pat-1", http.StatusOK},
		{"/patients/missing", http.StatusNotFound},
		{"/locations", http.StatusOK},
	}
	for _, tc := range cases {
		resp, err := http.Get(ts.URL + tc.path)
		if err != nil {
			t.Fatalf("GET %s: %v", tc.path, err)
		}
		resp.Body.Close()
		if resp.StatusCode != tc.want {
			t.Fatalf("GET %s: expected %d, got %d", tc.path, tc.want, resp.StatusCode)
		}
	}

	gw.err = httpclient.ErrTransport
	resp, err := http.Get(ts.URL + "/locations")
	if err != nil {
		t.Fatalf("GET /locations: %v", err)
	}
	resp.Body.Close()
	if resp.StatusCode != http.StatusBadGateway {
		t.Fatalf("expected 502, got %d", resp.StatusCode)
	}
}
