package models

import "time"

// Room is a hospital room. PatientID is nil while the room is vacant;
// a vacant room is never classified and can never hold an active alarm.
type Room struct {
	ID          int       `json:"id"`
	Number      string    `json:"number"`
	Sector      string    `json:"sector"`
	Floor       int       `json:"floor"`
	Active      bool      `json:"active"`
	HasBathroom bool      `json:"has_bathroom"`
	Equipment   []string  `json:"equipment,omitempty"` // e.g. ["Monitor cardíaco", "Respirador"]
	PatientID   *int      `json:"patient_id,omitempty"`
	UpdatedAt   time.Time `json:"updated_at"`
}

// Occupied reports whether a patient is currently assigned.
func (r Room) Occupied() bool {
	return r.PatientID != nil
}
