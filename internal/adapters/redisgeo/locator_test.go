package redisgeo

import (
	"context"
	"errors"
	"food-rescue-service/internal/domain"
	"testing"

	"github.com/alicebob/miniredis/v2"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestLocator(t *testing.T) *Locator {
	t.Helper()
	mr := miniredis.RunT(t)
	client := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	t.Cleanup(func() { _ = client.Close() })
	return NewLocator(client, "")
}

func TestNearbyDriversSortedByDistance(t *testing.T) {
	ctx := context.Background()
	l := newTestLocator(t)

	timesSquare := domain.Coordinates{Lat: 40.7580, Lon: -73.9855}
	require.NoError(t, l.UpdateDriverLocation(ctx, 1, domain.Coordinates{Lat: 40.7128, Lon: -74.0060}))
	require.NoError(t, l.UpdateDriverLocation(ctx, 2, domain.Coordinates{Lat: 40.7505, Lon: -73.9776}))
	require.NoError(t, l.UpdateDriverLocation(ctx, 3, domain.Coordinates{Lat: 39.9526, Lon: -75.1652}))

	got, err := l.NearbyDrivers(ctx, timesSquare, 5)
	require.NoError(t, err)
	require.Len(t, got, 2)
	assert.Equal(t, int64(2), got[0].DriverID)
	assert.Equal(t, int64(1), got[1].DriverID)
	assert.Less(t, got[0].DistanceMiles, got[1].DistanceMiles)
	assert.InDelta(t, timesSquare.MilesTo(domain.Coordinates{Lat: 40.7128, Lon: -74.0060}), got[1].DistanceMiles, 0.05)
}

func TestUpdateMovesDriver(t *testing.T) {
	ctx := context.Background()
	l := newTestLocator(t)
	center := domain.Coordinates{Lat: 40.7580, Lon: -73.9855}

	require.NoError(t, l.UpdateDriverLocation(ctx, 7, domain.Coordinates{Lat: 39.9526, Lon: -75.1652}))
	got, err := l.NearbyDrivers(ctx, center, 2)
	require.NoError(t, err)
	assert.Empty(t, got)

	require.NoError(t, l.UpdateDriverLocation(ctx, 7, domain.Coordinates{Lat: 40.7590, Lon: -73.9845}))
	got, err = l.NearbyDrivers(ctx, center, 2)
	require.NoError(t, err)
	require.Len(t, got, 1)
	assert.Equal(t, int64(7), got[0].DriverID)
}

func TestRemoveDriver(t *testing.T) {
	ctx := context.Background()
	l := newTestLocator(t)
	c := domain.Coordinates{Lat: 40.7580, Lon: -73.9855}

	require.NoError(t, l.UpdateDriverLocation(ctx, 4, c))
	require.NoError(t, l.RemoveDriver(ctx, 4))

	got, err := l.NearbyDrivers(ctx, c, 1)
	require.NoError(t, err)
	assert.Empty(t, got)
}

func TestLocatorRejectsBadInput(t *testing.T) {
	ctx := context.Background()
	l := newTestLocator(t)

	err := l.UpdateDriverLocation(ctx, 1, domain.Coordinates{Lat: 91, Lon: 0})
	assert.True(t, errors.Is(err, domain.ErrInvalidInput))

	_, err = l.NearbyDrivers(ctx, domain.Coordinates{}, 0)
	assert.True(t, errors.Is(err, domain.ErrInvalidInput))
}
