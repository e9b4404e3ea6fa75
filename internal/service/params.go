package service

import "time"

// PatientInput carries patient registration/update fields. Heart-rate
// bounds are optional at registration; when both are zero the monitoring
// core substitutes its defaults.
type PatientInput struct {
	Name         string
	CPF          string
	BirthDate    string // YYYY-MM-DD
	Age          int
	Diagnosis    string
	MinHeartRate float64
	MaxHeartRate float64
}

type RoomInput struct {
	Number      string
	Sector      string
	Floor       int
	HasBathroom bool
	Equipment   []string
}

type DeviceInput struct {
	MacAddress string
	Name       string
	RoomID     *int
}

// AlertFilter supports notification filtering by time range and type.
type AlertFilter struct {
	From time.Time // inclusive; zero means no lower bound
	To   time.Time // inclusive; zero means no upper bound
	Type string    // "", "WARNING", "URGENT", "NO_SIGNAL", "DISCONNECTED"
}
