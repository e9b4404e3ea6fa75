package vitals

import "time"

// Sensor status values carried by the feed. "timeout" means a previously
// established connection was lost; anything else is an ordinary disconnect.
const StatusTimeout = "timeout"

// Event is one inbound feed item, always scoped to a single room:
// either a VitalSample or a SensorStatus.
type Event interface {
	eventRoomID() int
	eventTime() time.Time
}

// VitalSample is one heart-rate reading for a room. HeartRate is nil
// when the sensor channel is open but producing no reading. A newer
// sample for the same room supersedes this one, never queues behind it.
type VitalSample struct {
	RoomID    int
	PatientID int
	HeartRate *float64
	Timestamp time.Time
}

func (s VitalSample) eventRoomID() int     { return s.RoomID }
func (s VitalSample) eventTime() time.Time { return s.Timestamp }

// SensorStatus signals loss of device connectivity for a room, distinct
// from a physiological reading. It supersedes any prior classification
// for the room until a fresh sample arrives.
type SensorStatus struct {
	RoomID     int
	MacAddress string
	Status     string
	Timestamp  time.Time
}

func (s SensorStatus) eventRoomID() int     { return s.RoomID }
func (s SensorStatus) eventTime() time.Time { return s.Timestamp }
