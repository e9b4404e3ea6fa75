package service

import (
	"context"
	"math/rand"
	"time"

	"patient_monitoring/internal/logger"
	"patient_monitoring/internal/repository"
	"patient_monitoring/internal/vitals"
)

// ----------- Simulation constants -----------
const (
	WalkStepBPM      = 3.0  // max random-walk step per tick
	SpikeProbability = 0.04 // chance per tick of an out-of-range excursion
	DropProbability  = 0.02 // chance per tick of a missing reading
	SpikeMarginBPM   = 15.0 // how far beyond the limit a spike lands
)

// SimulatorService feeds synthetic heart-rate samples into the monitor
// for every active occupied room. It replaces the hardware feed in
// development setups.
type SimulatorService struct {
	rooms    repository.Rooms
	patients repository.Patients
	sink     vitals.Ingestor
	log      *logger.Logger

	rng *rand.Rand
	// last generated bpm per room, so readings walk instead of jump
	current map[int]float64
}

// NewSimulatorService returns a simulator with defaults.
func NewSimulatorService(rooms repository.Rooms, patients repository.Patients, sink vitals.Ingestor, log *logger.Logger) *SimulatorService {
	return &SimulatorService{
		rooms:    rooms,
		patients: patients,
		sink:     sink,
		log:      log,
		rng:      rand.New(rand.NewSource(time.Now().UnixNano())),
		current:  make(map[int]float64),
	}
}

// Run ticks at the given interval until ctx is canceled.
func (s *SimulatorService) Run(ctx context.Context, tick time.Duration) {
	t := time.NewTicker(tick)
	defer t.Stop()
	for {
		select {
		case <-ctx.Done():
			return
		case now := <-t.C:
			s.step(ctx, now)
		}
	}
}

func (s *SimulatorService) step(ctx context.Context, now time.Time) {
	rooms, err := s.rooms.List(ctx)
	if err != nil {
		if s.log != nil {
			s.log.Warnw("simulator: list rooms failed", "error", err)
		}
		return
	}

	seen := make(map[int]bool, len(rooms))
	for _, room := range rooms {
		if !room.Active || !room.Occupied() {
			continue
		}
		seen[room.ID] = true

		p, err := s.patients.GetByID(ctx, *room.PatientID)
		if err != nil {
			continue
		}

		min, max := vitals.DefaultMinHeartRate, vitals.DefaultMaxHeartRate
		if p.HasBounds() {
			min, max = p.MinHeartRate, p.MaxHeartRate
		}

		sample := vitals.VitalSample{
			RoomID:    room.ID,
			PatientID: p.ID,
			Timestamp: now.UTC(),
		}
		if s.rng.Float64() >= DropProbability {
			bpm := s.nextBPM(room.ID, min, max)
			sample.HeartRate = &bpm
		}

		if err := s.sink.Ingest(ctx, sample); err != nil && s.log != nil {
			s.log.Warnw("simulator: ingest failed", "room_id", room.ID, "error", err)
		}
	}

	// Forget rooms that were released so a re-admission starts fresh.
	for id := range s.current {
		if !seen[id] {
			delete(s.current, id)
		}
	}
}

// nextBPM advances the room's random walk. Most readings stay around the
// midpoint of the patient's range; occasionally a spike lands past a
// limit so alarms get exercised end to end.
func (s *SimulatorService) nextBPM(roomID int, min, max float64) float64 {
	mid := (min + max) / 2

	bpm, ok := s.current[roomID]
	if !ok {
		bpm = mid
	}

	if s.rng.Float64() < SpikeProbability {
		if s.rng.Float64() < 0.5 {
			bpm = max + SpikeMarginBPM*s.rng.Float64()
		} else {
			bpm = min - SpikeMarginBPM*s.rng.Float64()
		}
	} else {
		bpm += (s.rng.Float64()*2 - 1) * WalkStepBPM
		// pull drifting values back toward the midpoint
		bpm += (mid - bpm) * 0.05
	}

	if bpm < 20 {
		bpm = 20
	}
	s.current[roomID] = bpm
	return bpm
}
