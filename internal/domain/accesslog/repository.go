package accesslog

import "context"

type Repository interface {
	Create(ctx context.Context, e Entry) error
	ListByPatient(ctx context.Context, patientUUID string, filter ListFilter) ([]Entry, error)
}

type ListFilter struct {
	Widget  string
	Outcome string
	Limit   int
}
