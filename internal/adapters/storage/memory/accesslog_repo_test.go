package memory

import (
	"context"
	"testing"
	"time"

	"patient-summary/internal/domain/accesslog"
)

func TestAccessLogRepo_ListFiltersAndOrders(t *testing.T) {
	repo := NewAccessLogRepo(0)
	ctx := context.Background()
	t0 := time.Date(2026, 1, 1, 8, 0, 0, 0, time.UTC)

	entries := []accesslog.Entry{
		{ID: "1", PatientUUID: "pat-1", Widget: "conditions", Outcome: "success", RecordedAt: t0},
		{ID: "2", PatientUUID: "pat-1", Widget: "history", Outcome: "error", RecordedAt: t0.Add(time.Minute)},
		{ID: "3", PatientUUID: "pat-2", Widget: "conditions", Outcome: "success", RecordedAt: t0.Add(2 * time.Minute)},
		{ID: "4", PatientUUID: "pat-1", Widget: "conditions", Outcome: "stale", RecordedAt: t0.Add(time.Minute)},
	}
	for _, e := range entries {
		if err := repo.Create(ctx, e); err != nil {
			t.Fatalf("Create: %v", err)
		}
	}
	if err := repo.Create(ctx, entries[0]); err == nil {
		t.Fatalf("expected duplicate id error")
	}

	got, _ := repo.ListByPatient(ctx, "pat-1", accesslog.ListFilter{})
	if len(got) != 3 || got[0].ID != "4" || got[1].ID != "2" || got[2].ID != "1" {
		t.Fatalf("unexpected order: %v", ids(got))
	}

	got, _ = repo.ListByPatient(ctx, "pat-1", accesslog.ListFilter{Widget: "conditions", Limit: 1})
	if len(got) != 1 || got[0].ID != "4" {
		t.Fatalf("unexpected filtered result: %v", ids(got))
	}

	got, _ = repo.ListByPatient(ctx, "pat-1", accesslog.ListFilter{Outcome: "error"})
	if len(got) != 1 || got[0].ID != "2" {
		t.Fatalf("unexpected outcome filter: %v", ids(got))
	}
}

func TestAccessLogRepo_DropsOldest(t *testing.T) {
	repo := NewAccessLogRepo(2)
	ctx := context.Background()
	t0 := time.Now()
	for i, id := range []string{"a", "b", "c"} {
		_ = repo.Create(ctx, accesslog.Entry{ID: id, PatientUUID: "pat-1", Widget: "conditions", RecordedAt: t0.Add(time.Duration(i) * time.Second)})
	}

	got, _ := repo.ListByPatient(ctx, "pat-1", accesslog.ListFilter{})
	if len(got) != 2 || got[0].ID != "c" || got[1].ID != "b" {
		t.Fatalf("expected only the two newest, got %v", ids(got))
	}
	// el id descartado se puede volver a usar
	if err := repo.Create(ctx, accesslog.Entry{ID: "a", PatientUUID: "pat-1", Widget: "conditions", RecordedAt: t0}); err != nil {
		t.Fatalf("expected dropped id to be reusable: %v", err)
	}
}

func ids(es []accesslog.Entry) []string {
	out := make([]string, 0, len(es))
	for _, e := range es {
		out = append(out, e.ID)
	}
	return out
}
