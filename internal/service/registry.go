package service

import (
	"context"
	"errors"

	"patient_monitoring/internal/repository"
	"patient_monitoring/internal/vitals"
)

// RegistryService adapts the rooms/patients repositories to the
// monitor's read-only occupancy lookup.
type RegistryService struct {
	rooms    repository.Rooms
	patients repository.Patients
}

func NewRegistryService(rooms repository.Rooms, patients repository.Patients) *RegistryService {
	return &RegistryService{rooms: rooms, patients: patients}
}

var _ vitals.Registry = (*RegistryService)(nil)

// Occupant returns the room's current patient snapshot, or nil when the
// room is vacant, inactive or unknown. Unknown rooms are treated as
// vacant rather than erroring: the feed may reference rooms that were
// deleted between event emission and delivery.
func (s *RegistryService) Occupant(ctx context.Context, roomID int) (*vitals.Occupant, error) {
	room, err := s.rooms.GetByID(ctx, roomID)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, nil
		}
		return nil, err
	}
	if !room.Active || !room.Occupied() {
		return nil, nil
	}

	p, err := s.patients.GetByID(ctx, *room.PatientID)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, nil
		}
		return nil, err
	}

	occ := &vitals.Occupant{PatientID: p.ID, Name: p.Name}
	if p.HasBounds() {
		occ.Bounds = &vitals.Bounds{Min: p.MinHeartRate, Max: p.MaxHeartRate}
	}
	return occ, nil
}
