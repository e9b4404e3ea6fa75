package models

import "time"

// Alert types mirror the alarm-relevant tiers.
const (
	AlertWarning      = "WARNING"
	AlertUrgent       = "URGENT"
	AlertNoSignal     = "NO_SIGNAL"
	AlertDisconnected = "DISCONNECTED"
)

// Alert is a single notification entry, appended whenever a room's
// classification crosses into an alert-relevant tier. Append-only;
// Viewed is the only mutable field.
type Alert struct {
	ID         string    `json:"id"` // uuid
	RoomID     int       `json:"room_id"`
	PatientID  int       `json:"patient_id,omitempty"`
	Type       string    `json:"type"` // WARNING | URGENT | NO_SIGNAL | DISCONNECTED
	Message    string    `json:"message"`
	OccurredAt time.Time `json:"occurred_at"`
	Viewed     bool      `json:"viewed"`
}
