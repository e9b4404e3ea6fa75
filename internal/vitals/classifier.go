package vitals

import (
	"errors"
	"fmt"
	"time"

	"patient_monitoring/internal/models"
)

// Default heart-rate bounds applied when an occupied room's patient has
// no configured limits yet. Fresh assignments commonly arrive without
// explicit bounds, so the classifier degrades to these instead of failing.
const (
	DefaultMinHeartRate = 55.0
	DefaultMaxHeartRate = 120.0
)

// guardBandRatio is the proportional margin inside the hard min/max
// bounds that raises the warning tier before a hard bound is crossed.
// Fixed at 10%; not configurable per patient.
const guardBandRatio = 0.10

// Display reasons carried on classification records, in the product's
// original wording.
const (
	ReasonConnectionLost     = "Perda de Conexão"
	ReasonSensorDisconnected = "Sensor desconectado"
	ReasonNoSignal           = "PACIENTE SEM SINAL"
)

// ErrInvalidEvent marks an inbound event that cannot be attributed to a
// room. Callers drop and log it; it never propagates into display state.
var ErrInvalidEvent = errors.New("invalid vitals event")

// Bounds are a patient's configured heart-rate limits, Min < Max.
type Bounds struct {
	Min float64
	Max float64
}

// Occupant is a snapshot of a room's current patient. Bounds is nil when
// the patient has no configured limits.
type Occupant struct {
	PatientID int
	Name      string
	Bounds    *Bounds
}

// Classify computes the severity tier for one feed event against the
// room's occupant. Rules apply in strict priority order, first match
// wins:
//
//  1. vacant room -> empty, regardless of event content
//  2. sensor status -> disconnected (never falls through to numerics)
//  3. nil/zero heart rate -> no_signal (channel open, nothing detected;
//     treated as more severe than ordinary disconnection)
//  4. numeric comparison against the bounds with 10% guard bands
//
// Comparisons are strict, so a reading exactly equal to min or max
// classifies as normal.
func Classify(ev Event, occ *Occupant) (models.ClassificationRecord, error) {
	if ev == nil {
		return models.ClassificationRecord{}, fmt.Errorf("%w: nil event", ErrInvalidEvent)
	}
	roomID := ev.eventRoomID()
	if roomID <= 0 {
		return models.ClassificationRecord{}, fmt.Errorf("%w: missing room id", ErrInvalidEvent)
	}

	rec := models.ClassificationRecord{
		RoomID:    roomID,
		UpdatedAt: eventTimeOrNow(ev),
	}

	if occ == nil {
		rec.Tier = models.TierEmpty
		return rec, nil
	}

	switch e := ev.(type) {
	case SensorStatus:
		rec.Tier = models.TierDisconnected
		if e.Status == StatusTimeout {
			rec.Reason = ReasonConnectionLost
		} else {
			rec.Reason = ReasonSensorDisconnected
		}
		return rec, nil

	case VitalSample:
		if e.HeartRate == nil || *e.HeartRate == 0 {
			rec.Tier = models.TierNoSignal
			rec.Reason = ReasonNoSignal
			return rec, nil
		}
		hr := *e.HeartRate
		rec.HeartRate = e.HeartRate

		min, max := DefaultMinHeartRate, DefaultMaxHeartRate
		if occ.Bounds != nil {
			min, max = occ.Bounds.Min, occ.Bounds.Max
		}

		switch {
		case hr > max:
			rec.Tier = models.TierUrgent
			rec.Reason = fmt.Sprintf("Frequência cardíaca acima do limite estabelecido: %.0f bpm", hr)
		case hr < min:
			rec.Tier = models.TierUrgent
			rec.Reason = fmt.Sprintf("Frequência cardíaca abaixo do limite estabelecido: %.0f bpm", hr)
		case hr > max-guardBandRatio*max || hr < min+guardBandRatio*min:
			rec.Tier = models.TierWarning
			rec.Reason = fmt.Sprintf("Frequência cardíaca próxima do limite estabelecido: %.0f bpm", hr)
		default:
			rec.Tier = models.TierNormal
		}
		return rec, nil

	default:
		return models.ClassificationRecord{}, fmt.Errorf("%w: unsupported event type %T", ErrInvalidEvent, ev)
	}
}

func eventTimeOrNow(ev Event) time.Time {
	if ts := ev.eventTime(); !ts.IsZero() {
		return ts.UTC()
	}
	return time.Now().UTC()
}
