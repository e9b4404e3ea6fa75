package models

import "time"

// Patient is a registered patient with configured heart-rate bounds.
// MinHeartRate < MaxHeartRate is enforced at data entry; the monitoring
// core assumes the pair is valid and substitutes defaults when both are zero.
type Patient struct {
	ID           int        `json:"id"`
	Name         string     `json:"name"`
	CPF          string     `json:"cpf,omitempty"`
	BirthDate    string     `json:"birth_date,omitempty"` // YYYY-MM-DD
	Age          int        `json:"age,omitempty"`
	Diagnosis    string     `json:"diagnosis,omitempty"`
	MinHeartRate float64    `json:"min_heart_rate"` // bpm
	MaxHeartRate float64    `json:"max_heart_rate"` // bpm
	RoomID       *int       `json:"room_id,omitempty"`
	CreatedAt    time.Time  `json:"created_at"`
	UpdatedAt    time.Time  `json:"updated_at"`
	DeletedAt    *time.Time `json:"-"`
}

// HasBounds reports whether explicit heart-rate limits were configured.
// Freshly registered patients commonly have none yet.
func (p Patient) HasBounds() bool {
	return p.MinHeartRate > 0 || p.MaxHeartRate > 0
}
