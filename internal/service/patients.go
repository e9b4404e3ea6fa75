package service

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"patient_monitoring/internal/models"
	"patient_monitoring/internal/repository"
)

var (
	errNameRequired  = errors.New("patient name is required")
	errInvalidBounds = errors.New("invalid heart-rate bounds: 0 < min < max is required")
)

// LiveReleaser tears down a room's live monitoring state (classification
// record and any active alarm). Implemented by vitals.Monitor.
type LiveReleaser interface {
	ReleaseRoom(ctx context.Context, roomID int)
}

type PatientsService struct {
	patients repository.Patients
	rooms    repository.Rooms
	live     LiveReleaser
}

func NewPatientsService(patients repository.Patients, rooms repository.Rooms, live LiveReleaser) *PatientsService {
	return &PatientsService{patients: patients, rooms: rooms, live: live}
}

func (s *PatientsService) List(ctx context.Context) ([]models.Patient, error) {
	return s.patients.List(ctx)
}

func (s *PatientsService) GetByID(ctx context.Context, id int) (models.Patient, error) {
	return s.patients.GetByID(ctx, id)
}

func (s *PatientsService) Create(ctx context.Context, in PatientInput) (int, error) {
	p, err := patientFromInput(in)
	if err != nil {
		return 0, err
	}
	return s.patients.Create(ctx, p)
}

func (s *PatientsService) Update(ctx context.Context, id int, in PatientInput) error {
	p, err := patientFromInput(in)
	if err != nil {
		return err
	}
	p.ID = id
	return s.patients.Update(ctx, p)
}

// UpdateLimits sets explicit heart-rate bounds. Unlike registration,
// both bounds are required here: this is the RoomDetail limits dialog.
func (s *PatientsService) UpdateLimits(ctx context.Context, id int, min, max float64) error {
	if min <= 0 || max <= min {
		return errInvalidBounds
	}
	return s.patients.UpdateLimits(ctx, id, min, max)
}

// Delete removes the patient and tears down any room they occupied.
func (s *PatientsService) Delete(ctx context.Context, id int) error {
	room, err := s.rooms.RoomByPatient(ctx, id)
	if err != nil {
		return err
	}
	if err := s.patients.Delete(ctx, id); err != nil {
		return err
	}
	if room != nil {
		s.live.ReleaseRoom(ctx, room.ID)
	}
	return nil
}

func patientFromInput(in PatientInput) (models.Patient, error) {
	name := strings.TrimSpace(in.Name)
	if name == "" {
		return models.Patient{}, errNameRequired
	}
	// Bounds are optional, but when given must form a valid interval.
	if in.MinHeartRate != 0 || in.MaxHeartRate != 0 {
		if in.MinHeartRate <= 0 || in.MaxHeartRate <= in.MinHeartRate {
			return models.Patient{}, fmt.Errorf("%w (got min=%.0f max=%.0f)", errInvalidBounds, in.MinHeartRate, in.MaxHeartRate)
		}
	}
	return models.Patient{
		Name:         name,
		CPF:          strings.TrimSpace(in.CPF),
		BirthDate:    in.BirthDate,
		Age:          in.Age,
		Diagnosis:    in.Diagnosis,
		MinHeartRate: in.MinHeartRate,
		MaxHeartRate: in.MaxHeartRate,
	}, nil
}
