package domain

import (
	"strings"
	"time"
)

// One turn-by-turn step with human readable distance and duration labels.
type Instruction struct {
	Text     string
	Distance string
	Duration string
}

// Represents the estimated cost of travelling a route.
// Source names the strategy that produced it (ors, google, local, default).
// Approach, when set, is the driver's leg to the pickup and is not
// included in the totals.
type RouteEstimate struct {
	DurationMinutes float64
	DistanceMiles   float64
	Instructions    []Instruction
	Source          string
	Approach        *RouteEstimate
}

type RouteStatus string

const (
	RouteAssigned   RouteStatus = "assigned"
	RouteInProgress RouteStatus = "in_progress"
	RouteCompleted  RouteStatus = "completed"
	RouteCancelled  RouteStatus = "cancelled"
)

var routeTransitions = map[RouteStatus][]RouteStatus{
	RouteAssigned:   {RouteInProgress, RouteCompleted, RouteCancelled},
	RouteInProgress: {RouteCompleted, RouteCancelled},
}

func ParseRouteStatus(s string) (RouteStatus, bool) {
	switch st := RouteStatus(strings.ToLower(strings.TrimSpace(s))); st {
	case RouteAssigned, RouteInProgress, RouteCompleted, RouteCancelled:
		return st, true
	}
	return "", false
}

func (s RouteStatus) CanTransitionTo(next RouteStatus) bool {
	for _, allowed := range routeTransitions[s] {
		if allowed == next {
			return true
		}
	}
	return false
}

// Active reports whether a driver is currently committed to the route.
func (s RouteStatus) Active() bool {
	return s == RouteAssigned || s == RouteInProgress
}

// DonationStatus returns the donation status implied by a route entering s.
func (s RouteStatus) DonationStatus() DonationStatus {
	switch s {
	case RouteInProgress:
		return DonationInTransit
	case RouteCompleted:
		return DonationCompleted
	case RouteCancelled:
		return DonationPending
	default:
		return DonationAssigned
	}
}

// A delivery assignment of one donation to one driver and recipient.
type Route struct {
	ID               int64
	DonationID       int64
	DriverID         int64
	RecipientID      int64
	Status           RouteStatus
	EstimatedMinutes float64
	EstimatedMiles   float64
	Instructions     []Instruction
	StartedAt        *time.Time
	CompletedAt      *time.Time
	CreatedAt        time.Time
}
