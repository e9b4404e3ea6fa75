package models

import "time"

// Tier is the discrete severity classification of a room's current
// vital-sign state. The numeric tiers (normal < warning < urgent) are
// ordered; the connectivity tiers (disconnected, no_signal) are not
// comparable to them — a room is classified either by reading value or
// by connectivity state, never both at once.
type Tier string

const (
	TierEmpty        Tier = "empty"
	TierNormal       Tier = "normal"
	TierWarning      Tier = "warning"
	TierUrgent       Tier = "urgent"
	TierDisconnected Tier = "disconnected" // sensor connectivity lost
	TierNoSignal     Tier = "no_signal"    // channel open, no physiological signal
)

// AlarmBearing reports whether the tier must keep the audible alarm active.
// Only urgent readings and the flatline proxy sound the alarm; plain
// connectivity loss does not.
func (t Tier) AlarmBearing() bool {
	return t == TierUrgent || t == TierNoSignal
}

// ClassificationRecord is the monitoring core's output: the latest
// severity classification for one room. Exactly one live record exists
// per tracked room and is overwritten on every event (last-write-wins);
// the core keeps no history.
type ClassificationRecord struct {
	RoomID    int       `json:"room_id"`
	Tier      Tier      `json:"tier"`
	HeartRate *float64  `json:"heart_rate,omitempty"`
	Reason    string    `json:"reason,omitempty"`
	UpdatedAt time.Time `json:"updated_at"`
}

// RoomStatus is the outbound, display-ready view of a room's
// classification.
type RoomStatus struct {
	RoomID      int      `json:"room_id"`
	Tier        Tier     `json:"tier"`
	DisplayBPM  *float64 `json:"display_bpm"`
	Label       string   `json:"label"`
	Color       string   `json:"color"`
	AlarmActive bool     `json:"alarm_active"`
}
