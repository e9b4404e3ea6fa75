package repository

import (
	"errors"
	"regexp"
	"testing"
	"time"

	"patient_monitoring/internal/models"

	"github.com/DATA-DOG/go-sqlmock"
)

func roomColumns() []string {
	return []string{"id", "number", "sector", "floor", "active", "has_bathroom",
		"equipment", "patient_id", "updated_at"}
}

func TestRoomCreate_MarshalsEquipment(t *testing.T) {
	t.Parallel()

	db, mock := newMockDB(t)
	repo := NewRoomSQLite(db)

	mock.ExpectExec(regexp.QuoteMeta(`INSERT INTO rooms`)).
		WithArgs("101A", "UTI", 1, true, true, `["monitor","oxigênio"]`, nil, sqlmock.AnyArg()).
		WillReturnResult(sqlmock.NewResult(3, 1))

	id, err := repo.Create(ctx(t), models.Room{
		Number:      "101A",
		Sector:      "UTI",
		Floor:       1,
		Active:      true,
		HasBathroom: true,
		Equipment:   []string{"monitor", "oxigênio"},
	})
	if err != nil {
		t.Fatalf("Create: %v", err)
	}
	if id != 3 {
		t.Fatalf("expected id=3, got %d", id)
	}
}

func TestRoomGetByID_ParsesOccupancy(t *testing.T) {
	t.Parallel()

	db, mock := newMockDB(t)
	repo := NewRoomSQLite(db)

	now := time.Date(2026, 8, 1, 12, 0, 0, 0, time.UTC)
	rows := sqlmock.NewRows(roomColumns()).
		AddRow(3, "101A", "UTI", 1, true, true, `["monitor"]`, 5, now)

	mock.ExpectQuery("SELECT id, number, sector").
		WithArgs(3).
		WillReturnRows(rows)

	room, err := repo.GetByID(ctx(t), 3)
	if err != nil {
		t.Fatalf("GetByID: %v", err)
	}
	if !room.Occupied() {
		t.Fatal("expected room to be occupied")
	}
	if *room.PatientID != 5 {
		t.Fatalf("expected patient_id=5, got %d", *room.PatientID)
	}
	if len(room.Equipment) != 1 || room.Equipment[0] != "monitor" {
		t.Fatalf("unexpected equipment %v", room.Equipment)
	}
}

func TestRoomGetByID_NotFound(t *testing.T) {
	t.Parallel()

	db, mock := newMockDB(t)
	repo := NewRoomSQLite(db)

	mock.ExpectQuery("SELECT id, number, sector").
		WithArgs(99).
		WillReturnRows(sqlmock.NewRows(roomColumns()))

	_, err := repo.GetByID(ctx(t), 99)
	if !errors.Is(err, ErrNotFound) {
		t.Fatalf("expected ErrNotFound, got %v", err)
	}
}

func TestRoomAssign_ClearsPriorAssignment(t *testing.T) {
	t.Parallel()

	db, mock := newMockDB(t)
	repo := NewRoomSQLite(db)

	mock.ExpectBegin()
	mock.ExpectExec(regexp.QuoteMeta(`UPDATE rooms SET patient_id=NULL, updated_at=? WHERE patient_id=?`)).
		WithArgs(sqlmock.AnyArg(), 5).
		WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectExec(regexp.QuoteMeta(`UPDATE rooms SET patient_id=?, updated_at=? WHERE id=?`)).
		WithArgs(5, sqlmock.AnyArg(), 3).
		WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectCommit()

	if err := repo.Assign(ctx(t), 3, 5); err != nil {
		t.Fatalf("Assign: %v", err)
	}
	if err := mock.ExpectationsWereMet(); err != nil {
		t.Fatalf("mock expectations: %v", err)
	}
}

func TestRoomAssign_UnknownRoom(t *testing.T) {
	t.Parallel()

	db, mock := newMockDB(t)
	repo := NewRoomSQLite(db)

	mock.ExpectBegin()
	mock.ExpectExec(regexp.QuoteMeta(`UPDATE rooms SET patient_id=NULL`)).
		WillReturnResult(sqlmock.NewResult(0, 0))
	mock.ExpectExec(regexp.QuoteMeta(`UPDATE rooms SET patient_id=?, updated_at=? WHERE id=?`)).
		WithArgs(5, sqlmock.AnyArg(), 99).
		WillReturnResult(sqlmock.NewResult(0, 0))
	mock.ExpectRollback()

	err := repo.Assign(ctx(t), 99, 5)
	if !errors.Is(err, ErrNotFound) {
		t.Fatalf("expected ErrNotFound, got %v", err)
	}
}

func TestRoomByPatient_NoneIsNil(t *testing.T) {
	t.Parallel()

	db, mock := newMockDB(t)
	repo := NewRoomSQLite(db)

	mock.ExpectQuery("SELECT id, number, sector").
		WithArgs(5).
		WillReturnRows(sqlmock.NewRows(roomColumns()))

	room, err := repo.RoomByPatient(ctx(t), 5)
	if err != nil {
		t.Fatalf("RoomByPatient: %v", err)
	}
	if room != nil {
		t.Fatalf("expected nil room, got %+v", room)
	}
}

func TestRoomSetActive(t *testing.T) {
	t.Parallel()

	db, mock := newMockDB(t)
	repo := NewRoomSQLite(db)

	mock.ExpectExec(regexp.QuoteMeta(`UPDATE rooms SET active=?, updated_at=? WHERE id=?`)).
		WithArgs(false, sqlmock.AnyArg(), 3).
		WillReturnResult(sqlmock.NewResult(0, 1))

	if err := repo.SetActive(ctx(t), 3, false); err != nil {
		t.Fatalf("SetActive: %v", err)
	}
}
