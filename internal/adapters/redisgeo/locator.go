package redisgeo

import (
	"context"
	"errors"
	"fmt"
	"food-rescue-service/internal/domain"
	"food-rescue-service/internal/platform/obs"
	"food-rescue-service/internal/ports"
	"strconv"

	"github.com/redis/go-redis/v9"
)

const DefaultKey = "food-rescue:drivers"

// Locator keeps live driver positions in a Redis GEO set.
type Locator struct {
	redis *redis.Client
	key   string
}

func NewLocator(client *redis.Client, key string) *Locator {
	if key == "" {
		key = DefaultKey
	}
	return &Locator{redis: client, key: key}
}

func (l *Locator) UpdateDriverLocation(ctx context.Context, driverID int64, c domain.Coordinates) (err error) {
	defer obs.Time(ctx, "redisgeo.UpdateDriverLocation")(&err)

	if !c.Valid() {
		return fmt.Errorf("%w: coordinates out of range", domain.ErrInvalidInput)
	}
	return l.redis.GeoAdd(ctx, l.key, &redis.GeoLocation{
		Name:      strconv.FormatInt(driverID, 10),
		Longitude: c.Lon,
		Latitude:  c.Lat,
	}).Err()
}

func (l *Locator) RemoveDriver(ctx context.Context, driverID int64) error {
	return l.redis.ZRem(ctx, l.key, strconv.FormatInt(driverID, 10)).Err()
}

func (l *Locator) NearbyDrivers(ctx context.Context, c domain.Coordinates, radiusMiles float64) (_ []ports.NearbyDriver, err error) {
	defer obs.Time(ctx, "redisgeo.NearbyDrivers")(&err)

	if radiusMiles <= 0 {
		return nil, fmt.Errorf("%w: radius must be positive", domain.ErrInvalidInput)
	}

	results, err := l.redis.GeoRadius(ctx, l.key, c.Lon, c.Lat, &redis.GeoRadiusQuery{
		Radius:   radiusMiles,
		Unit:     "mi",
		WithDist: true,
		Sort:     "ASC",
	}).Result()
	if errors.Is(err, redis.Nil) {
		return []ports.NearbyDriver{}, nil
	}
	if err != nil {
		return nil, fmt.Errorf("georadius %s: %w", l.key, err)
	}

	out := make([]ports.NearbyDriver, 0, len(results))
	for _, r := range results {
		id, err := strconv.ParseInt(r.Name, 10, 64)
		if err != nil {
			continue
		}
		out = append(out, ports.NearbyDriver{DriverID: id, DistanceMiles: r.Dist})
	}
	return out, nil
}
