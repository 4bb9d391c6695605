package events

import "time"

// Topics for trip lifecycle events on the fleet bus.
const (
	TopicTripCreated  = "fleet/trips/created"
	TopicTripDeleted  = "fleet/trips/deleted"
	TopicTripRestored = "fleet/trips/restored"
)

// TripEvent describes one trip lifecycle transition.
type TripEvent struct {
	Type     string    `json:"type"`
	TripID   string    `json:"trip_id"`
	DriverID string    `json:"driver_id,omitempty"`
	Actor    string    `json:"actor"`
	At       time.Time `json:"at"`
}
