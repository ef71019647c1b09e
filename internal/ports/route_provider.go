package ports

import (
	"context"
	"food-rescue-service/internal/domain"
)

// One endpoint of a route request. Coords is nil when geocoding failed;
// providers that can route on text addresses may still use Address.
type Waypoint struct {
	Address string
	Coords  *domain.Coordinates
}

// A single maneuver reported by a routing provider.
// DistanceText/DurationText carry provider-formatted labels when available.
type RouteStep struct {
	Instruction     string
	DistanceMeters  float64
	DurationSeconds float64
	DistanceText    string
	DurationText    string
}

// Raw driving route returned by a provider.
type RouteResult struct {
	DistanceMeters  float64
	DurationSeconds float64
	Steps           []RouteStep
	// SegmentCount is the number of route segments the provider reported;
	// zero means no usable turn-by-turn data.
	SegmentCount int
}

// Contract for retrieving a driving route between two locations.
type RouteProvider interface {
	Route(ctx context.Context, origin, destination Waypoint) (RouteResult, error)
}
