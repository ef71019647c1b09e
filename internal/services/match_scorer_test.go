package services

import (
	"context"
	"food-rescue-service/internal/domain"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

var (
	midtown      = domain.Coordinates{Lat: 40.7549, Lon: -73.9840}
	philadelphia = domain.Coordinates{Lat: 39.9526, Lon: -75.1652}
)

func TestCapacityFit(t *testing.T) {
	assert.InDelta(t, 1.0, CapacityFit(25, ptr(5000.0)), 1e-9)
	assert.InDelta(t, 1.0, CapacityFit(100, ptr(100.0)), 1e-9)
	assert.InDelta(t, 0.5, CapacityFit(150, ptr(100.0)), 1e-9)
	assert.InDelta(t, 0.0, CapacityFit(300, ptr(100.0)), 1e-9)
	assert.InDelta(t, 0.0, CapacityFit(10, nil), 1e-9)
	assert.InDelta(t, 0.0, CapacityFit(10, ptr(0.0)), 1e-9)
}

func TestDistanceFit(t *testing.T) {
	assert.InDelta(t, 1.0, DistanceFit(0), 1e-9)
	assert.InDelta(t, 0.5, DistanceFit(10), 1e-9)
	assert.InDelta(t, 0.875, DistanceFit(2.5), 1e-9)
	assert.InDelta(t, 0.0, DistanceFit(20), 1e-9)
	assert.InDelta(t, 0.0, DistanceFit(45), 1e-9)
}

func TestCategoryFit(t *testing.T) {
	assert.Equal(t, 1.0, CategoryFit(domain.CategoryProduce, domain.Recipient{CategoriesNeeded: []string{"produce"}}))
	assert.Equal(t, 0.8, CategoryFit(domain.CategoryProduce, domain.Recipient{CategoriesNeeded: []string{"all"}}))
	assert.Equal(t, 0.8, CategoryFit(domain.CategoryProduce, domain.Recipient{CategoriesNeeded: []string{"bakery", "any"}}))
	assert.Equal(t, 0.0, CategoryFit(domain.CategoryProduce, domain.Recipient{CategoriesNeeded: []string{"bakery"}}))
	assert.Equal(t, 0.0, CategoryFit(domain.CategoryProduce, domain.Recipient{}))
}

func TestMatchScorerScore(t *testing.T) {
	ctx := context.Background()
	scorer := NewMatchScorer(NewGeoResolver(nil, time.Second))

	donation := domain.Donation{Category: domain.CategoryProduce, QuantityLbs: 25, Coords: &midtown}

	t.Run("perfect match", func(t *testing.T) {
		r := domain.Recipient{ID: 7, Name: "Pantry", CategoriesNeeded: []string{"produce"}, StorageCapacityLbs: ptr(5000.0), Coords: &midtown}
		got := scorer.Score(ctx, donation, r)
		assert.InDelta(t, 1.0, got.Score, 1e-9)
		assert.InDelta(t, 0.0, got.DistanceMiles, 1e-9)
		assert.Equal(t, int64(7), got.RecipientID)
		assert.Equal(t, "Pantry", got.RecipientName)
	})

	t.Run("unmet category far away without capacity", func(t *testing.T) {
		r := domain.Recipient{CategoriesNeeded: []string{"bakery"}, Coords: &philadelphia}
		got := scorer.Score(ctx, donation, r)
		assert.LessOrEqual(t, got.Score, 0.3)
		assert.InDelta(t, 0.0, got.Score, 1e-9)
		assert.Greater(t, got.DistanceMiles, 20.0)
	})

	t.Run("over capacity", func(t *testing.T) {
		d := donation
		d.QuantityLbs = 150
		r := domain.Recipient{CategoriesNeeded: []string{"produce"}, StorageCapacityLbs: ptr(100.0), Coords: &midtown}
		assert.InDelta(t, 0.5+0.3*0.5+0.2, scorer.Score(ctx, d, r).Score, 1e-9)
	})

	t.Run("wildcard", func(t *testing.T) {
		r := domain.Recipient{CategoriesNeeded: []string{"any"}, StorageCapacityLbs: ptr(100.0), Coords: &midtown}
		assert.InDelta(t, 0.9, scorer.Score(ctx, donation, r).Score, 1e-9)
	})
}

func TestMatchScorerUnresolvedAddressUsesFallbackDistance(t *testing.T) {
	ctx := context.Background()
	geo := newFakeGeocoder(map[string]domain.Coordinates{"known": midtown})
	scorer := NewMatchScorer(NewGeoResolver(geo, time.Second))

	d := domain.Donation{Category: domain.CategoryBakery, QuantityLbs: 5, Address: "known"}
	r := domain.Recipient{CategoriesNeeded: []string{"bakery"}, Address: "nowhere"}

	got := scorer.Score(ctx, d, r)
	assert.InDelta(t, FallbackDistanceMiles, got.DistanceMiles, 1e-9)
	assert.InDelta(t, 0.5+0.2*0.875, got.Score, 1e-9)
}

func TestMatchScorerResolvesAddressesWithoutStoredCoordinates(t *testing.T) {
	ctx := context.Background()
	geo := newFakeGeocoder(map[string]domain.Coordinates{"a": midtown, "b": philadelphia})
	scorer := NewMatchScorer(NewGeoResolver(geo, time.Second))

	got := scorer.Distance(ctx, domain.Donation{Address: "a"}, domain.Recipient{Address: "b"})
	assert.InDelta(t, midtown.MilesTo(philadelphia), got, 1e-9)
	assert.Equal(t, int64(2), geo.calls.Load())
}
