package service

import (
	"context"
	"fmt"
	"time"

	"patient_monitoring/internal/models"
	"patient_monitoring/internal/repository"
)

// ---- Repository Stubs ----

type stubPatients struct {
	byID     map[int]models.Patient
	created  []models.Patient
	updated  []models.Patient
	deleted  []int
	limitIDs []int
	err      error
}

func (s *stubPatients) List(ctx context.Context) ([]models.Patient, error) {
	out := make([]models.Patient, 0, len(s.byID))
	for _, p := range s.byID {
		out = append(out, p)
	}
	return out, s.err
}

func (s *stubPatients) GetByID(ctx context.Context, id int) (models.Patient, error) {
	if s.err != nil {
		return models.Patient{}, s.err
	}
	p, ok := s.byID[id]
	if !ok {
		return models.Patient{}, fmt.Errorf("patient %d: %w", id, repository.ErrNotFound)
	}
	return p, nil
}

func (s *stubPatients) Create(ctx context.Context, p models.Patient) (int, error) {
	s.created = append(s.created, p)
	return len(s.created), s.err
}

func (s *stubPatients) Update(ctx context.Context, p models.Patient) error {
	s.updated = append(s.updated, p)
	return s.err
}

func (s *stubPatients) Delete(ctx context.Context, id int) error {
	if _, ok := s.byID[id]; !ok && s.byID != nil {
		return repository.ErrNotFound
	}
	s.deleted = append(s.deleted, id)
	return s.err
}

func (s *stubPatients) UpdateLimits(ctx context.Context, id int, min, max float64) error {
	s.limitIDs = append(s.limitIDs, id)
	return s.err
}

type stubRooms struct {
	byID      map[int]models.Room
	byPatient map[int]models.Room
	assigned  [][2]int // {roomID, patientID}
	released  []int
	setActive map[int]bool
	err       error
}

func (s *stubRooms) List(ctx context.Context) ([]models.Room, error) {
	out := make([]models.Room, 0, len(s.byID))
	for _, r := range s.byID {
		out = append(out, r)
	}
	return out, s.err
}

func (s *stubRooms) GetByID(ctx context.Context, id int) (models.Room, error) {
	if s.err != nil {
		return models.Room{}, s.err
	}
	r, ok := s.byID[id]
	if !ok {
		return models.Room{}, fmt.Errorf("room %d: %w", id, repository.ErrNotFound)
	}
	return r, nil
}

func (s *stubRooms) Create(ctx context.Context, r models.Room) (int, error) {
	return 1, s.err
}

func (s *stubRooms) Update(ctx context.Context, r models.Room) error {
	return s.err
}

func (s *stubRooms) Assign(ctx context.Context, roomID, patientID int) error {
	s.assigned = append(s.assigned, [2]int{roomID, patientID})
	return s.err
}

func (s *stubRooms) Release(ctx context.Context, roomID int) error {
	s.released = append(s.released, roomID)
	return s.err
}

func (s *stubRooms) SetActive(ctx context.Context, roomID int, active bool) error {
	if s.setActive == nil {
		s.setActive = make(map[int]bool)
	}
	s.setActive[roomID] = active
	return s.err
}

func (s *stubRooms) RoomByPatient(ctx context.Context, patientID int) (*models.Room, error) {
	if s.err != nil {
		return nil, s.err
	}
	r, ok := s.byPatient[patientID]
	if !ok {
		return nil, nil
	}
	return &r, nil
}

type stubReleaser struct {
	released []int
}

func (s *stubReleaser) ReleaseRoom(ctx context.Context, roomID int) {
	s.released = append(s.released, roomID)
}

type stubAlerts struct {
	appended []models.Alert
	listed   []models.Alert
	lastFrom time.Time
	lastTo   time.Time
	lastType string
	viewed   []string
	err      error
}

func (s *stubAlerts) Append(ctx context.Context, a models.Alert) error {
	s.appended = append(s.appended, a)
	return s.err
}

func (s *stubAlerts) List(ctx context.Context, from, to time.Time, typ string) ([]models.Alert, error) {
	s.lastFrom, s.lastTo, s.lastType = from, to, typ
	return s.listed, s.err
}

func (s *stubAlerts) MarkViewed(ctx context.Context, id string) error {
	s.viewed = append(s.viewed, id)
	return s.err
}

// intPtr is a small helper for occupancy fixtures.
func intPtr(v int) *int { return &v }
