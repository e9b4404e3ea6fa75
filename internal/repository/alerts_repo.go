package repository

import (
	"context"
	"database/sql"
	"strings"
	"time"

	"patient_monitoring/internal/models"

	"github.com/google/uuid"
)

type AlertSQLite struct {
	db *sql.DB
}

func NewAlertSQLite(db *sql.DB) *AlertSQLite { return &AlertSQLite{db: db} }

var _ Alerts = (*AlertSQLite)(nil)

// Append inserts a new alert. If ID or OccurredAt are empty, they're set.
func (r *AlertSQLite) Append(ctx context.Context, a models.Alert) error {
	if a.ID == "" {
		a.ID = uuid.NewString()
	}
	if a.OccurredAt.IsZero() {
		a.OccurredAt = time.Now().UTC()
	} else {
		a.OccurredAt = a.OccurredAt.UTC()
	}

	_, err := r.db.ExecContext(ctx, `
		INSERT INTO alerts (id, room_id, patient_id, type, message, occurred_at, viewed)
		VALUES (?, ?, ?, ?, ?, ?, ?)
	`,
		a.ID,
		a.RoomID,
		a.PatientID,
		strings.ToUpper(strings.TrimSpace(a.Type)),
		a.Message,
		a.OccurredAt.Format("2006-01-02 15:04:05"),
		a.Viewed,
	)
	return err
}

// List returns alerts filtered by [from, to] (inclusive) and/or type, ordered ASC.
func (r *AlertSQLite) List(ctx context.Context, from, to time.Time, typ string) ([]models.Alert, error) {
	var (
		conds []string
		args  []any
	)

	if !from.IsZero() {
		conds = append(conds, "occurred_at >= ?")
		args = append(args, from.UTC())
	}
	if !to.IsZero() {
		conds = append(conds, "occurred_at <= ?")
		args = append(args, to.UTC())
	}
	if typ = strings.ToUpper(strings.TrimSpace(typ)); typ != "" {
		conds = append(conds, "type = ?")
		args = append(args, typ)
	}

	q := `SELECT id, room_id, patient_id, type, message, occurred_at, viewed FROM alerts`
	if len(conds) > 0 {
		q += " WHERE " + strings.Join(conds, " AND ")
	}
	q += " ORDER BY occurred_at ASC"

	rows, err := r.db.QueryContext(ctx, q, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out := make([]models.Alert, 0, 64)
	for rows.Next() {
		var (
			a         models.Alert
			patientID sql.NullInt64
		)
		if err := rows.Scan(&a.ID, &a.RoomID, &patientID, &a.Type, &a.Message, &a.OccurredAt, &a.Viewed); err != nil {
			return nil, err
		}
		a.PatientID = int(patientID.Int64)
		a.OccurredAt = a.OccurredAt.UTC()
		out = append(out, a)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return out, nil
}

func (r *AlertSQLite) MarkViewed(ctx context.Context, id string) error {
	res, err := r.db.ExecContext(ctx, `UPDATE alerts SET viewed=1 WHERE id=?`, id)
	if err != nil {
		return err
	}
	n, err := res.RowsAffected()
	if err != nil {
		return err
	}
	if n == 0 {
		return ErrNotFound
	}
	return nil
}
