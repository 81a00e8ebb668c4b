package summary

import "context"

// LoadFunc hace el fetch para un paciente y deriva las filas.
type LoadFunc func(ctx context.Context, patientUUID string) (Dataset, error)

// Definition describe un tipo de widget (conditions, medications, history).
type Definition struct {
	Name         string
	Title        string
	Columns      []Column
	EmptyMessage string

	// Extension es el nombre con que el host registra el widget.
	Extension string

	Load LoadFunc
}

const (
	WidgetConditions  = "conditions"
	WidgetMedications = "medications"
	WidgetHistory     = "history"
)

func ConditionsWidget(fetch func(ctx context.Context, patientUUID string) ([]ConditionRecord, error)) Definition {
	return Definition{
		Name:  WidgetConditions,
		Title: "Conditions summary",
		Columns: []Column{
			{Key: "name", Header: "Condition"},
			{Key: "onSetDate", Header: "Onset Date"},
			{Key: "status", Header: "Status"},
		},
		EmptyMessage: "There are no conditions to display for this patient",
		Extension:    "ethioSummary",
		Load:         loader(fetch, ConditionRows),
	}
}

func MedicationsWidget(fetch func(ctx context.Context, patientUUID string) ([]MedicationRecord, error)) Definition {
	return Definition{
		Name:  WidgetMedications,
		Title: "Medication summary",
		Columns: []Column{
			{Key: "regimen", Header: "Regimen"},
			{Key: "dateActive", Header: "Date Active"},
		},
		EmptyMessage: "There are no medications to display for this patient",
		Extension:    "medicationSummary",
		Load:         loader(fetch, MedicationRows),
	}
}

func HistoryWidget(fetch func(ctx context.Context, patientUUID string) ([]HistoryRecord, error)) Definition {
	return Definition{
		Name:  WidgetHistory,
		Title: "Patient History",
		Columns: []Column{
			{Key: "observation", Header: "Observation"},
			{Key: "value", Header: "Value"},
		},
		EmptyMessage: "There is no patient history to display for this patient",
		Extension:    "patientHistorySummary",
		Load:         loader(fetch, HistoryRows),
	}
}

func loader[T any](fetch func(context.Context, string) ([]T, error), derive func([]T) Dataset) LoadFunc {
	return func(ctx context.Context, patientUUID string) (Dataset, error) {
		records, err := fetch(ctx, patientUUID)
		if err != nil {
			return Dataset{}, err
		}
		return derive(records), nil
	}
}
