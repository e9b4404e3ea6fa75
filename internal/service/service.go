package service

import (
	"context"
	"time"

	"patient_monitoring/internal/logger"
	"patient_monitoring/internal/models"
	"patient_monitoring/internal/repository"
	"patient_monitoring/internal/vitals"
)

type Authorization interface {
	SignUp(username, password string) (int, error)
	GenerateToken(username, password string) (string, error)
	ParseToken(accessToken string) (int, error)
}

// Patients exposes the patient registry, including heart-rate limit
// management.
type Patients interface {
	List(ctx context.Context) ([]models.Patient, error)
	GetByID(ctx context.Context, id int) (models.Patient, error)
	Create(ctx context.Context, in PatientInput) (int, error)
	Update(ctx context.Context, id int, in PatientInput) error
	Delete(ctx context.Context, id int) error
	UpdateLimits(ctx context.Context, id int, min, max float64) error
}

// Rooms exposes the room registry and patient assignment. Releasing or
// deactivating an occupied room also tears down its live monitoring
// state so no alarm outlives the assignment.
type Rooms interface {
	List(ctx context.Context) ([]models.Room, error)
	GetByID(ctx context.Context, id int) (models.Room, error)
	Create(ctx context.Context, in RoomInput) (int, error)
	Update(ctx context.Context, id int, in RoomInput) error
	Assign(ctx context.Context, roomID, patientID int) error
	Release(ctx context.Context, roomID int) error
	ToggleActive(ctx context.Context, roomID int) (bool, error)
}

// Devices exposes the sensor registry (mac address to room binding).
type Devices interface {
	List(ctx context.Context) ([]models.Device, error)
	Create(ctx context.Context, in DeviceInput) (int, error)
	Update(ctx context.Context, id int, in DeviceInput) error
	Delete(ctx context.Context, id int) error
}

// Alerts exposes the append-only notification log with filtering access.
type Alerts interface {
	List(ctx context.Context, f AlertFilter) ([]models.Alert, error)
	MarkViewed(ctx context.Context, id string) error
}

// Monitoring is the read side of the live classification engine: current
// per-room statuses plus a subscription channel for pushes. Implemented
// by vitals.Monitor.
type Monitoring interface {
	Rooms() []models.RoomStatus
	Room(roomID int) (models.RoomStatus, bool)
	Subscribe() (<-chan models.RoomStatus, func())
}

// Simulator runs the built-in vitals source for demo/dev deployments
// without a real sensor feed. Stop via context cancellation.
type Simulator interface {
	Run(ctx context.Context, tick time.Duration)
}

type Service struct {
	Patients
	Rooms
	Devices
	Alerts
	Monitoring
	Simulator
	Authorization
}

// NewService wires the repository layer and the live monitor into
// concrete services.
func NewService(repos *repository.Repository, monitor *vitals.Monitor, log *logger.Logger) *Service {
	return &Service{
		Patients:      NewPatientsService(repos.Patients, repos.Rooms, monitor),
		Rooms:         NewRoomsService(repos.Rooms, repos.Patients, monitor),
		Devices:       NewDevicesService(repos.Devices),
		Alerts:        NewAlertsService(repos.Alerts),
		Monitoring:    monitor,
		Simulator:     NewSimulatorService(repos.Rooms, repos.Patients, monitor, log),
		Authorization: NewAuthService(repos.Auth),
	}
}
