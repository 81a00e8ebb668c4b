package postgres

import (
	"context"
	"database/sql"
	"fmt"
	"strings"
	"time"

	"patient-summary/internal/domain/accesslog"
)

type AccessLogRepo struct {
	db *sql.DB
}

func NewAccessLogRepo(db *sql.DB) *AccessLogRepo {
	return &AccessLogRepo{db: db}
}

func (r *AccessLogRepo) Create(ctx context.Context, e accesslog.Entry) error {
	_, err := r.db.ExecContext(ctx, `
		INSERT INTO widget_access_log (
			id, patient_uuid, widget, instance_id,
			outcome, row_count, reason, duration_ms,
			recorded_at
		) VALUES ($1,$2,$3,$4,$5,$6,$7,$8,$9)
	`,
		e.ID,
		e.PatientUUID,
		e.Widget,
		e.InstanceID,
		e.Outcome,
		e.Rows,
		e.Reason,
		e.Duration.Milliseconds(),
		e.RecordedAt,
	)
	return err
}

func (r *AccessLogRepo) ListByPatient(ctx context.Context, patientUUID string, filter accesslog.ListFilter) ([]accesslog.Entry, error) {
	patientUUID = strings.TrimSpace(patientUUID)
	if patientUUID == "" {
		return nil, nil
	}

	sb := strings.Builder{}
	sb.WriteString(`
		SELECT
			id, patient_uuid, widget, instance_id,
			outcome, row_count, reason, duration_ms,
			recorded_at
		FROM widget_access_log
		WHERE patient_uuid = $1
	`)

	args := []any{patientUUID}
	argN := 2

	if filter.Widget != "" {
		sb.WriteString(fmt.Sprintf(" AND widget = $%d", argN))
		args = append(args, filter.Widget)
		argN++
	}
	if filter.Outcome != "" {
		sb.WriteString(fmt.Sprintf(" AND outcome = $%d", argN))
		args = append(args, filter.Outcome)
		argN++
	}

	limit := filter.Limit
	if limit <= 0 {
		limit = accesslog.DefaultLimit
	}
	if limit > accesslog.MaxLimit {
		limit = accesslog.MaxLimit
	}

	sb.WriteString(" ORDER BY recorded_at DESC")
	sb.WriteString(fmt.Sprintf(" LIMIT $%d", argN))
	args = append(args, limit)

	rows, err := r.db.QueryContext(ctx, sb.String(), args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out := make([]accesslog.Entry, 0)
	for rows.Next() {
		var e accesslog.Entry
		var durationMS int64
		if err := rows.Scan(
			&e.ID,
			&e.PatientUUID,
			&e.Widget,
			&e.InstanceID,
			&e.Outcome,
			&e.Rows,
			&e.Reason,
			&durationMS,
			&e.RecordedAt,
		); err != nil {
			return nil, err
		}
		e.Duration = time.Duration(durationMS) * time.Millisecond
		out = append(out, e)
	}

	return out, rows.Err()
}
