package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"patient_monitoring/internal/models"
)

// ErrNotFound is returned when a row lookup matches nothing.
var ErrNotFound = errors.New("not found")

type PatientSQLite struct {
	db *sql.DB
}

func NewPatientSQLite(db *sql.DB) *PatientSQLite { return &PatientSQLite{db: db} }

var _ Patients = (*PatientSQLite)(nil)

const (
	insertPatientSQL = `
		INSERT INTO patients (name, cpf, birth_date, age, diagnosis, min_heart_rate, max_heart_rate, created_at, updated_at)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?)
	`

	// room_id is derived from the rooms table: occupancy lives on rooms.patient_id.
	selectPatientSQL = `
		SELECT p.id, p.name, p.cpf, p.birth_date, p.age, p.diagnosis,
		       p.min_heart_rate, p.max_heart_rate, r.id, p.created_at, p.updated_at
		FROM patients p
		LEFT JOIN rooms r ON r.patient_id = p.id
	`

	updatePatientSQL = `
		UPDATE patients
		SET name=?, cpf=?, birth_date=?, age=?, diagnosis=?, min_heart_rate=?, max_heart_rate=?, updated_at=?
		WHERE id=?
	`

	updateLimitsSQL = `UPDATE patients SET min_heart_rate=?, max_heart_rate=?, updated_at=? WHERE id=?`

	deletePatientSQL = `DELETE FROM patients WHERE id=?`
)

func (r *PatientSQLite) Create(ctx context.Context, p models.Patient) (int, error) {
	now := time.Now().UTC()
	res, err := r.db.ExecContext(ctx, insertPatientSQL,
		p.Name, p.CPF, p.BirthDate, p.Age, p.Diagnosis,
		p.MinHeartRate, p.MaxHeartRate, now, now,
	)
	if err != nil {
		return 0, fmt.Errorf("insert patient %q: %w", p.Name, err)
	}
	id, err := res.LastInsertId()
	if err != nil {
		return 0, fmt.Errorf("get last insert id for patient %q: %w", p.Name, err)
	}
	return int(id), nil
}

func (r *PatientSQLite) GetByID(ctx context.Context, id int) (models.Patient, error) {
	row := r.db.QueryRowContext(ctx, selectPatientSQL+` WHERE p.id=?`, id)
	p, err := scanPatient(row)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return models.Patient{}, fmt.Errorf("patient %d: %w", id, ErrNotFound)
		}
		return models.Patient{}, err
	}
	return p, nil
}

func (r *PatientSQLite) List(ctx context.Context) ([]models.Patient, error) {
	rows, err := r.db.QueryContext(ctx, selectPatientSQL+` ORDER BY p.name ASC`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out := make([]models.Patient, 0, 32)
	for rows.Next() {
		p, err := scanPatient(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, p)
	}
	return out, rows.Err()
}

func (r *PatientSQLite) Update(ctx context.Context, p models.Patient) error {
	res, err := r.db.ExecContext(ctx, updatePatientSQL,
		p.Name, p.CPF, p.BirthDate, p.Age, p.Diagnosis,
		p.MinHeartRate, p.MaxHeartRate, time.Now().UTC(), p.ID,
	)
	if err != nil {
		return fmt.Errorf("update patient %d: %w", p.ID, err)
	}
	return requireRowAffected(res, p.ID)
}

func (r *PatientSQLite) UpdateLimits(ctx context.Context, id int, min, max float64) error {
	res, err := r.db.ExecContext(ctx, updateLimitsSQL, min, max, time.Now().UTC(), id)
	if err != nil {
		return fmt.Errorf("update limits for patient %d: %w", id, err)
	}
	return requireRowAffected(res, id)
}

// Delete removes the patient; any room occupancy is released first so no
// room keeps a dangling reference.
func (r *PatientSQLite) Delete(ctx context.Context, id int) error {
	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return err
	}
	defer func() { _ = tx.Rollback() }()

	if _, err := tx.ExecContext(ctx, `UPDATE rooms SET patient_id=NULL, updated_at=? WHERE patient_id=?`,
		time.Now().UTC(), id); err != nil {
		return fmt.Errorf("release rooms for patient %d: %w", id, err)
	}
	res, err := tx.ExecContext(ctx, deletePatientSQL, id)
	if err != nil {
		return fmt.Errorf("delete patient %d: %w", id, err)
	}
	if err := requireRowAffected(res, id); err != nil {
		return err
	}
	return tx.Commit()
}

type rowScanner interface {
	Scan(dest ...any) error
}

func scanPatient(row rowScanner) (models.Patient, error) {
	var (
		p      models.Patient
		cpf    sql.NullString
		birth  sql.NullString
		age    sql.NullInt64
		diag   sql.NullString
		roomID sql.NullInt64
	)
	if err := row.Scan(&p.ID, &p.Name, &cpf, &birth, &age, &diag,
		&p.MinHeartRate, &p.MaxHeartRate, &roomID, &p.CreatedAt, &p.UpdatedAt); err != nil {
		return models.Patient{}, err
	}
	p.CPF = cpf.String
	p.BirthDate = birth.String
	p.Age = int(age.Int64)
	p.Diagnosis = diag.String
	if roomID.Valid {
		id := int(roomID.Int64)
		p.RoomID = &id
	}
	p.CreatedAt = p.CreatedAt.UTC()
	p.UpdatedAt = p.UpdatedAt.UTC()
	return p, nil
}

func requireRowAffected(res sql.Result, id int) error {
	n, err := res.RowsAffected()
	if err != nil {
		return err
	}
	if n == 0 {
		return fmt.Errorf("id %d: %w", id, ErrNotFound)
	}
	return nil
}
