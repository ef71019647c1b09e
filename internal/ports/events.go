package ports

import (
	"context"
	"food-rescue-service/internal/domain"
)

// Contract for emitting lifecycle events to downstream consumers.
type EventPublisher interface {
	Publish(ctx context.Context, e domain.Event) error
}

// Port: live driver positions for proximity search.
type DriverLocator interface {
	UpdateDriverLocation(ctx context.Context, driverID int64, c domain.Coordinates) error
	RemoveDriver(ctx context.Context, driverID int64) error
	// Return driver ids within radiusMiles, nearest first.
	NearbyDrivers(ctx context.Context, c domain.Coordinates, radiusMiles float64) ([]NearbyDriver, error)
}

type NearbyDriver struct {
	DriverID      int64
	DistanceMiles float64
}
