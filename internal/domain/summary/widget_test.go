package summary

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"
)

// testFetcher devuelve registros por paciente; gate bloquea la respuesta de un
// paciente hasta que se cierre (ignora ctx para simular una respuesta tardía).
type testFetcher struct {
	mu      sync.Mutex
	records map[string][]ConditionRecord
	errs    map[string]error
	gate    map[string]chan struct{}
	calls   []string
}

func newTestFetcher() *testFetcher {
	return &testFetcher{
		records: map[string][]ConditionRecord{},
		errs:    map[string]error{},
		gate:    map[string]chan struct{}{},
	}
}

func (f *testFetcher) fetch(ctx context.Context, patientUUID string) ([]ConditionRecord, error) {
	f.mu.Lock()
	f.calls = append(f.calls, patientUUID)
	gate := f.gate[patientUUID]
	f.mu.Unlock()

	if gate != nil {
		<-gate
	}

	f.mu.Lock()
	defer f.mu.Unlock()
	if err := f.errs[patientUUID]; err != nil {
		return nil, err
	}
	return f.records[patientUUID], nil
}

type testObserver struct {
	mu     sync.Mutex
	events []LoadEvent
}

func (o *testObserver) ObserveLoad(_ context.Context, ev LoadEvent) {
	o.mu.Lock()
	defer o.mu.Unlock()
	o.events = append(o.events, ev)
}

func (o *testObserver) outcomes(patientUUID string) []Outcome {
	o.mu.Lock()
	defer o.mu.Unlock()
	var out []Outcome
	for _, ev := range o.events {
		if ev.PatientUUID == patientUUID {
			out = append(out, ev.Outcome)
		}
	}
	return out
}

func waitDone(t *testing.T, done <-chan struct{}) {
	t.Helper()
	select {
	case <-done:
	case <-time.After(2 * time.Second):
		t.Fatalf("load did not settle")
	}
}

func mountTestWidget(t *testing.T, f *testFetcher, obs LoadObserver) *Widget {
	t.Helper()
	w := newWidget("w-1", ConditionsWidget(f.fetch), DefaultPageSize, nil, obs)
	t.Cleanup(w.Unmount)
	return w
}

func TestWidget_InitialStateIsLoading(t *testing.T) {
	f := newTestFetcher()
	f.gate["pat-1"] = make(chan struct{})
	w := mountTestWidget(t, f, nil)

	done, err := w.SetPatient(context.Background(), "pat-1")
	if err != nil {
		t.Fatalf("SetPatient: %v", err)
	}
	if v := w.View(); v.State != StateLoading || len(v.Rows) != 0 {
		t.Fatalf("expected loading with no rows, got %s/%d", v.State, len(v.Rows))
	}
	close(f.gate["pat-1"])
	waitDone(t, done)
}

func TestWidget_PaginatesBackendRows(t *testing.T) {
	f := newTestFetcher()
	f.records["pat-1"] = conditionRecords(25, "p1")
	w := mountTestWidget(t, f, nil)

	done, _ := w.SetPatient(context.Background(), "pat-1")
	waitDone(t, done)

	v := w.View()
	if v.State != StateSuccess {
		t.Fatalf("expected success, got %s", v.State)
	}
	if len(v.Rows) != 10 || v.Rows[0].ID != "p1-0" {
		t.Fatalf("page 1: %d rows, first %q", len(v.Rows), v.Rows[0].ID)
	}
	if v.Pagination == nil || !v.Pagination.ShowControl || v.Pagination.TotalItems != 25 || v.Pagination.TotalPages != 3 {
		t.Fatalf("unexpected pagination: %#v", v.Pagination)
	}

	_ = w.SetPage(3)
	if v := w.View(); len(v.Rows) != 5 || v.Rows[0].ID != "p1-20" {
		t.Fatalf("page 3: %d rows", len(v.Rows))
	}
	_ = w.SetPage(4)
	if v := w.View(); len(v.Rows) != 0 || v.State != StateSuccess {
		t.Fatalf("page 4: expected empty page in success, got %s/%d", v.State, len(v.Rows))
	}

	_ = w.SetPage(2)
	_ = w.SetPageSize(20)
	v = w.View()
	if v.Pagination.Page != 1 || len(v.Rows) != 20 {
		t.Fatalf("page size change: page %d, %d rows", v.Pagination.Page, len(v.Rows))
	}
}

func TestWidget_ControlHiddenWhenFitsOnePage(t *testing.T) {
	f := newTestFetcher()
	f.records["pat-1"] = conditionRecords(10, "p1")
	w := mountTestWidget(t, f, nil)

	done, _ := w.SetPatient(context.Background(), "pat-1")
	waitDone(t, done)

	if v := w.View(); v.Pagination == nil || v.Pagination.ShowControl {
		t.Fatalf("expected hidden pagination control, got %#v", v.Pagination)
	}
}

func TestWidget_EmptyIsNotError(t *testing.T) {
	f := newTestFetcher()
	f.records["pat-1"] = []ConditionRecord{}
	obs := &testObserver{}
	w := mountTestWidget(t, f, obs)

	done, _ := w.SetPatient(context.Background(), "pat-1")
	waitDone(t, done)

	v := w.View()
	if v.State != StateEmpty || v.Error != "" {
		t.Fatalf("expected empty state, got %s (%q)", v.State, v.Error)
	}
	if v.EmptyMessage == "" || v.Pagination != nil {
		t.Fatalf("expected empty message and no table, got %#v", v)
	}
	if got := obs.outcomes("pat-1"); len(got) != 1 || got[0] != OutcomeEmpty {
		t.Fatalf("unexpected outcomes: %v", got)
	}
}

func TestWidget_FailedFetchShowsReason(t *testing.T) {
	f := newTestFetcher()
	f.errs["pat-1"] = ErrNetworkFailure
	w := mountTestWidget(t, f, nil)

	done, _ := w.SetPatient(context.Background(), "pat-1")
	waitDone(t, done)

	v := w.View()
	if v.State != StateError || v.Error != ErrNetworkFailure.Error() {
		t.Fatalf("expected error state with reason, got %s (%q)", v.State, v.Error)
	}
	w.mu.Lock()
	err := w.err
	w.mu.Unlock()
	if !errors.Is(err, ErrNetworkFailure) {
		t.Fatalf("expected ErrNetworkFailure, got %v", err)
	}
}

func TestWidget_ErrorThenIdentifierChangeRecovers(t *testing.T) {
	f := newTestFetcher()
	f.errs["pat-1"] = ErrMalformedResult
	f.records["pat-2"] = conditionRecords(3, "p2")
	w := mountTestWidget(t, f, nil)

	done, _ := w.SetPatient(context.Background(), "pat-1")
	waitDone(t, done)
	if w.View().State != StateError {
		t.Fatalf("expected error state")
	}

	done, _ = w.SetPatient(context.Background(), "pat-2")
	waitDone(t, done)
	v := w.View()
	if v.State != StateSuccess || len(v.Rows) != 3 || v.Error != "" {
		t.Fatalf("expected recovery to success, got %s/%d/%q", v.State, len(v.Rows), v.Error)
	}
}

func TestWidget_StaleResultIsDiscarded(t *testing.T) {
	f := newTestFetcher()
	f.records["slow"] = conditionRecords(4, "slow")
	f.records["fast"] = conditionRecords(2, "fast")
	f.gate["slow"] = make(chan struct{})
	obs := &testObserver{}
	w := mountTestWidget(t, f, obs)

	slowDone, _ := w.SetPatient(context.Background(), "slow")
	fastDone, _ := w.SetPatient(context.Background(), "fast")
	waitDone(t, fastDone)

	// la respuesta de "slow" llega después
	close(f.gate["slow"])
	waitDone(t, slowDone)

	v := w.View()
	if v.PatientUUID != "fast" || len(v.Rows) != 2 || v.Rows[0].ID != "fast-0" {
		t.Fatalf("expected rows from fast, got %s/%d", v.PatientUUID, len(v.Rows))
	}
	if got := obs.outcomes("slow"); len(got) != 1 || got[0] != OutcomeStale {
		t.Fatalf("expected slow load to be stale, got %v", got)
	}
	if got := obs.outcomes("fast"); len(got) != 1 || got[0] != OutcomeSuccess {
		t.Fatalf("expected fast load success, got %v", got)
	}
}

func TestWidget_IdentifierChangeResetsPage(t *testing.T) {
	f := newTestFetcher()
	f.records["pat-1"] = conditionRecords(30, "p1")
	f.records["pat-2"] = conditionRecords(30, "p2")
	w := mountTestWidget(t, f, nil)

	done, _ := w.SetPatient(context.Background(), "pat-1")
	waitDone(t, done)
	_ = w.SetPage(3)

	done, _ = w.SetPatient(context.Background(), "pat-2")
	waitDone(t, done)
	if v := w.View(); v.Pagination.Page != 1 || v.Rows[0].ID != "p2-0" {
		t.Fatalf("expected page 1 of pat-2, got page %d", v.Pagination.Page)
	}
}

func TestWidget_UnmountDiscardsInFlightLoad(t *testing.T) {
	f := newTestFetcher()
	f.records["pat-1"] = conditionRecords(3, "p1")
	f.gate["pat-1"] = make(chan struct{})
	obs := &testObserver{}
	w := newWidget("w-1", ConditionsWidget(f.fetch), DefaultPageSize, nil, obs)

	done, _ := w.SetPatient(context.Background(), "pat-1")
	w.Unmount()
	close(f.gate["pat-1"])
	waitDone(t, done)

	if got := obs.outcomes("pat-1"); len(got) != 1 || got[0] != OutcomeStale {
		t.Fatalf("expected stale after unmount, got %v", got)
	}
	if _, err := w.SetPatient(context.Background(), "pat-2"); !errors.Is(err, ErrUnmounted) {
		t.Fatalf("expected ErrUnmounted, got %v", err)
	}
}

func TestWidget_UnmountCancelsLoadContext(t *testing.T) {
	canceled := make(chan struct{})
	def := Definition{
		Name: "blocking",
		Load: func(ctx context.Context, _ string) (Dataset, error) {
			<-ctx.Done()
			close(canceled)
			return Dataset{}, ctx.Err()
		},
	}
	w := newWidget("w-1", def, DefaultPageSize, nil, nil)

	done, _ := w.SetPatient(context.Background(), "pat-1")
	w.Unmount()

	select {
	case <-canceled:
	case <-time.After(2 * time.Second):
		t.Fatalf("unmount did not cancel the load")
	}
	waitDone(t, done)
}

func TestWidget_LoadKeepsContextValues(t *testing.T) {
	type key struct{}
	got := make(chan any, 1)
	def := Definition{
		Name: "values",
		Load: func(ctx context.Context, _ string) (Dataset, error) {
			got <- ctx.Value(key{})
			return Dataset{}, nil
		},
	}
	w := newWidget("w-1", def, DefaultPageSize, nil, nil)
	defer w.Unmount()

	ctx, cancel := context.WithCancel(context.WithValue(context.Background(), key{}, "token"))
	done, _ := w.SetPatient(ctx, "pat-1")
	cancel() // el request que montó el widget ya terminó

	waitDone(t, done)
	if v := <-got; v != "token" {
		t.Fatalf("expected context value to reach the load, got %v", v)
	}
	if w.View().State != StateEmpty {
		t.Fatalf("canceling the caller ctx must not cancel the load")
	}
}

func TestWidget_RejectsEmptyPatient(t *testing.T) {
	w := mountTestWidget(t, newTestFetcher(), nil)
	if _, err := w.SetPatient(context.Background(), " "); !errors.Is(err, ErrInvalidInput) {
		t.Fatalf("expected ErrInvalidInput, got %v", err)
	}
}
