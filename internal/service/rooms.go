package service

import (
	"context"
	"errors"
	"strings"

	"patient_monitoring/internal/models"
	"patient_monitoring/internal/repository"
)

var (
	errRoomNumberRequired = errors.New("room number is required")
	errRoomInactive       = errors.New("room is inactive")
	errRoomOccupied       = errors.New("room already has a patient assigned")
)

type RoomsService struct {
	rooms    repository.Rooms
	patients repository.Patients
	live     LiveReleaser
}

func NewRoomsService(rooms repository.Rooms, patients repository.Patients, live LiveReleaser) *RoomsService {
	return &RoomsService{rooms: rooms, patients: patients, live: live}
}

func (s *RoomsService) List(ctx context.Context) ([]models.Room, error) {
	return s.rooms.List(ctx)
}

func (s *RoomsService) GetByID(ctx context.Context, id int) (models.Room, error) {
	return s.rooms.GetByID(ctx, id)
}

func (s *RoomsService) Create(ctx context.Context, in RoomInput) (int, error) {
	if strings.TrimSpace(in.Number) == "" {
		return 0, errRoomNumberRequired
	}
	return s.rooms.Create(ctx, models.Room{
		Number:      strings.TrimSpace(in.Number),
		Sector:      in.Sector,
		Floor:       in.Floor,
		Active:      true,
		HasBathroom: in.HasBathroom,
		Equipment:   in.Equipment,
	})
}

func (s *RoomsService) Update(ctx context.Context, id int, in RoomInput) error {
	if strings.TrimSpace(in.Number) == "" {
		return errRoomNumberRequired
	}
	return s.rooms.Update(ctx, models.Room{
		ID:          id,
		Number:      strings.TrimSpace(in.Number),
		Sector:      in.Sector,
		Floor:       in.Floor,
		HasBathroom: in.HasBathroom,
		Equipment:   in.Equipment,
	})
}

// Assign binds a patient to a room. The room must exist, be active and
// vacant; the patient must exist. A previous assignment of the same
// patient elsewhere is moved, and that room's live state is torn down.
func (s *RoomsService) Assign(ctx context.Context, roomID, patientID int) error {
	room, err := s.rooms.GetByID(ctx, roomID)
	if err != nil {
		return err
	}
	if !room.Active {
		return errRoomInactive
	}
	if room.Occupied() {
		return errRoomOccupied
	}
	if _, err := s.patients.GetByID(ctx, patientID); err != nil {
		return err
	}

	prev, err := s.rooms.RoomByPatient(ctx, patientID)
	if err != nil {
		return err
	}
	if err := s.rooms.Assign(ctx, roomID, patientID); err != nil {
		return err
	}
	if prev != nil && prev.ID != roomID {
		s.live.ReleaseRoom(ctx, prev.ID)
	}
	return nil
}

// Release unassigns the room's patient and tears down its live state:
// classification reverts to empty and any active alarm stops.
func (s *RoomsService) Release(ctx context.Context, roomID int) error {
	room, err := s.rooms.GetByID(ctx, roomID)
	if err != nil {
		return err
	}
	if !room.Occupied() {
		return nil // already vacant
	}
	if err := s.rooms.Release(ctx, roomID); err != nil {
		return err
	}
	s.live.ReleaseRoom(ctx, roomID)
	return nil
}

// ToggleActive flips the room's active flag and returns the new value.
// Deactivating an occupied room releases its patient first.
func (s *RoomsService) ToggleActive(ctx context.Context, roomID int) (bool, error) {
	room, err := s.rooms.GetByID(ctx, roomID)
	if err != nil {
		return false, err
	}
	next := !room.Active
	if !next && room.Occupied() {
		if err := s.rooms.Release(ctx, roomID); err != nil {
			return false, err
		}
		s.live.ReleaseRoom(ctx, roomID)
	}
	if err := s.rooms.SetActive(ctx, roomID, next); err != nil {
		return false, err
	}
	return next, nil
}
