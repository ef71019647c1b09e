package domain

import "time"

const (
	EventDonationCreated    = "donation.created"
	EventRouteAssigned      = "route.assigned"
	EventRouteStatusChanged = "route.status_changed"
)

// Lifecycle notification emitted after a state change is committed.
type Event struct {
	Type       string    `json:"type"`
	DonationID int64     `json:"donation_id"`
	RouteID    int64     `json:"route_id,omitempty"`
	Status     string    `json:"status,omitempty"`
	At         time.Time `json:"at"`
}
