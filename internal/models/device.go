package models

import "time"

// Device is a heart-rate sensor registered in the ward. RoomID binds the
// sensor to the room whose readings it produces; nil while the sensor is
// in stock.
type Device struct {
	ID         int       `json:"id"`
	MacAddress string    `json:"mac_address"`
	Name       string    `json:"name,omitempty"`
	RoomID     *int      `json:"room_id,omitempty"`
	UpdatedAt  time.Time `json:"updated_at"`
}
