package repository

import (
	"context"
	"database/sql"
	"errors"
	"regexp"
	"testing"
	"time"

	"patient_monitoring/internal/models"

	"github.com/DATA-DOG/go-sqlmock"
)

func ctx(t *testing.T) context.Context {
	t.Helper()
	c, cancel := context.WithTimeout(context.Background(), 3*time.Second)
	t.Cleanup(cancel)
	return c
}

func newMockDB(t *testing.T) (*sql.DB, sqlmock.Sqlmock) {
	t.Helper()
	db, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("sqlmock new: %v", err)
	}
	t.Cleanup(func() { _ = db.Close() })
	return db, mock
}

func patientColumns() []string {
	return []string{"id", "name", "cpf", "birth_date", "age", "diagnosis",
		"min_heart_rate", "max_heart_rate", "room_id", "created_at", "updated_at"}
}

func TestPatientCreate_Success(t *testing.T) {
	t.Parallel()

	db, mock := newMockDB(t)
	repo := NewPatientSQLite(db)

	mock.ExpectExec(regexp.QuoteMeta(`INSERT INTO patients`)).
		WithArgs("Maria Silva", "123.456.789-00", "1960-04-12", 66, "arritmia",
			60.0, 110.0, sqlmock.AnyArg(), sqlmock.AnyArg()).
		WillReturnResult(sqlmock.NewResult(5, 1))

	id, err := repo.Create(ctx(t), models.Patient{
		Name:         "Maria Silva",
		CPF:          "123.456.789-00",
		BirthDate:    "1960-04-12",
		Age:          66,
		Diagnosis:    "arritmia",
		MinHeartRate: 60,
		MaxHeartRate: 110,
	})
	if err != nil {
		t.Fatalf("Create: %v", err)
	}
	if id != 5 {
		t.Fatalf("expected id=5, got %d", id)
	}
	if err := mock.ExpectationsWereMet(); err != nil {
		t.Fatalf("mock expectations: %v", err)
	}
}

func TestPatientGetByID_JoinsRoom(t *testing.T) {
	t.Parallel()

	db, mock := newMockDB(t)
	repo := NewPatientSQLite(db)

	now := time.Date(2026, 8, 1, 12, 0, 0, 0, time.UTC)
	rows := sqlmock.NewRows(patientColumns()).
		AddRow(5, "Maria Silva", "123.456.789-00", "1960-04-12", 66, "arritmia",
			60.0, 110.0, 3, now, now)

	mock.ExpectQuery("SELECT p.id, p.name").
		WithArgs(5).
		WillReturnRows(rows)

	p, err := repo.GetByID(ctx(t), 5)
	if err != nil {
		t.Fatalf("GetByID: %v", err)
	}
	if p.Name != "Maria Silva" {
		t.Fatalf("unexpected name %q", p.Name)
	}
	if p.RoomID == nil || *p.RoomID != 3 {
		t.Fatalf("expected room_id=3, got %v", p.RoomID)
	}
	if err := mock.ExpectationsWereMet(); err != nil {
		t.Fatalf("mock expectations: %v", err)
	}
}

func TestPatientGetByID_NotFound(t *testing.T) {
	t.Parallel()

	db, mock := newMockDB(t)
	repo := NewPatientSQLite(db)

	mock.ExpectQuery("SELECT p.id, p.name").
		WithArgs(99).
		WillReturnRows(sqlmock.NewRows(patientColumns()))

	_, err := repo.GetByID(ctx(t), 99)
	if !errors.Is(err, ErrNotFound) {
		t.Fatalf("expected ErrNotFound, got %v", err)
	}
}

func TestPatientList_UnassignedHasNilRoom(t *testing.T) {
	t.Parallel()

	db, mock := newMockDB(t)
	repo := NewPatientSQLite(db)

	now := time.Date(2026, 8, 1, 12, 0, 0, 0, time.UTC)
	rows := sqlmock.NewRows(patientColumns()).
		AddRow(1, "Ana", nil, nil, 0, nil, 0.0, 0.0, nil, now, now).
		AddRow(2, "Bruno", nil, nil, 0, nil, 55.0, 120.0, 7, now, now)

	mock.ExpectQuery("SELECT p.id, p.name").WillReturnRows(rows)

	list, err := repo.List(ctx(t))
	if err != nil {
		t.Fatalf("List: %v", err)
	}
	if len(list) != 2 {
		t.Fatalf("expected 2 patients, got %d", len(list))
	}
	if list[0].RoomID != nil {
		t.Fatalf("expected nil room for unassigned patient, got %v", *list[0].RoomID)
	}
	if list[1].RoomID == nil || *list[1].RoomID != 7 {
		t.Fatalf("expected room_id=7, got %v", list[1].RoomID)
	}
	if list[0].HasBounds() {
		t.Fatal("patient without limits must report no bounds")
	}
	if !list[1].HasBounds() {
		t.Fatal("patient with limits must report bounds")
	}
}

func TestPatientUpdateLimits_NotFound(t *testing.T) {
	t.Parallel()

	db, mock := newMockDB(t)
	repo := NewPatientSQLite(db)

	mock.ExpectExec(regexp.QuoteMeta(`UPDATE patients SET min_heart_rate=?, max_heart_rate=?, updated_at=? WHERE id=?`)).
		WithArgs(55.0, 120.0, sqlmock.AnyArg(), 99).
		WillReturnResult(sqlmock.NewResult(0, 0))

	err := repo.UpdateLimits(ctx(t), 99, 55, 120)
	if !errors.Is(err, ErrNotFound) {
		t.Fatalf("expected ErrNotFound, got %v", err)
	}
}

func TestPatientDelete_ReleasesRoomFirst(t *testing.T) {
	t.Parallel()

	db, mock := newMockDB(t)
	repo := NewPatientSQLite(db)

	mock.ExpectBegin()
	mock.ExpectExec(regexp.QuoteMeta(`UPDATE rooms SET patient_id=NULL, updated_at=? WHERE patient_id=?`)).
		WithArgs(sqlmock.AnyArg(), 5).
		WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectExec(regexp.QuoteMeta(`DELETE FROM patients WHERE id=?`)).
		WithArgs(5).
		WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectCommit()

	if err := repo.Delete(ctx(t), 5); err != nil {
		t.Fatalf("Delete: %v", err)
	}
	if err := mock.ExpectationsWereMet(); err != nil {
		t.Fatalf("mock expectations: %v", err)
	}
}

func TestPatientDelete_NotFoundRollsBack(t *testing.T) {
	t.Parallel()

	db, mock := newMockDB(t)
	repo := NewPatientSQLite(db)

	mock.ExpectBegin()
	mock.ExpectExec(regexp.QuoteMeta(`UPDATE rooms SET patient_id=NULL`)).
		WithArgs(sqlmock.AnyArg(), 99).
		WillReturnResult(sqlmock.NewResult(0, 0))
	mock.ExpectExec(regexp.QuoteMeta(`DELETE FROM patients WHERE id=?`)).
		WithArgs(99).
		WillReturnResult(sqlmock.NewResult(0, 0))
	mock.ExpectRollback()

	err := repo.Delete(ctx(t), 99)
	if !errors.Is(err, ErrNotFound) {
		t.Fatalf("expected ErrNotFound, got %v", err)
	}
}
