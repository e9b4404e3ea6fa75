package repository

import (
	"context"
	"database/sql"
	"time"

	"patient_monitoring/internal/models"
	"patient_monitoring/internal/repository/db"
)

type Authorization interface {
	Create(username, hash string) (int, error)
	GetByUsername(username string) (*models.User, error)
}

type Patients interface {
	List(ctx context.Context) ([]models.Patient, error)
	GetByID(ctx context.Context, id int) (models.Patient, error)
	Create(ctx context.Context, p models.Patient) (int, error)
	Update(ctx context.Context, p models.Patient) error
	Delete(ctx context.Context, id int) error
	UpdateLimits(ctx context.Context, id int, min, max float64) error
}

type Rooms interface {
	List(ctx context.Context) ([]models.Room, error)
	GetByID(ctx context.Context, id int) (models.Room, error)
	Create(ctx context.Context, r models.Room) (int, error)
	Update(ctx context.Context, r models.Room) error
	Assign(ctx context.Context, roomID, patientID int) error
	Release(ctx context.Context, roomID int) error
	SetActive(ctx context.Context, roomID int, active bool) error
	RoomByPatient(ctx context.Context, patientID int) (*models.Room, error)
}

type Devices interface {
	List(ctx context.Context) ([]models.Device, error)
	Create(ctx context.Context, d models.Device) (int, error)
	Update(ctx context.Context, d models.Device) error
	Delete(ctx context.Context, id int) error
	GetByMac(ctx context.Context, mac string) (*models.Device, error)
}

type Alerts interface {
	Append(ctx context.Context, a models.Alert) error
	List(ctx context.Context, from, to time.Time, typ string) ([]models.Alert, error)
	MarkViewed(ctx context.Context, id string) error
}

type Repository struct {
	Patients Patients
	Rooms    Rooms
	Devices  Devices
	Alerts   Alerts
	Auth     Authorization
}

func NewRepository(sqlDB *sql.DB) *Repository {
	return &Repository{
		Patients: NewPatientSQLite(sqlDB),
		Rooms:    NewRoomSQLite(sqlDB),
		Devices:  NewDeviceSQLite(sqlDB),
		Alerts:   NewAlertSQLite(sqlDB),
		Auth:     NewUserRepository(sqlDB),
	}
}

// InitDB opens the SQLite database and bootstraps the schema.
func InitDB(path string) (*sql.DB, error) {
	return db.InitDB(path)
}
