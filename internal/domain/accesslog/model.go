package accesslog

import "time"

// Entry registra una carga de widget: quién/qué se pidió y cómo terminó.
// Nunca guarda los registros clínicos, solo el conteo de filas.
type Entry struct {
	ID          string
	PatientUUID string
	Widget      string
	InstanceID  string // vacío para renders efímeros

	Outcome  string
	Rows     int
	Reason   string // texto corto de falla, sin body del upstream
	Duration time.Duration

	RecordedAt time.Time
}
