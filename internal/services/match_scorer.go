package services

import (
	"context"
	"food-rescue-service/internal/domain"
	"math"
)

const (
	categoryWeight = 0.5
	capacityWeight = 0.3
	distanceWeight = 0.2

	wildcardCategoryFit = 0.8

	// FallbackDistanceMiles stands in for an unresolvable address so that
	// missing geocoding never disqualifies a recipient.
	FallbackDistanceMiles = 2.5
)

// CategoryFit is 1 for an explicit category match, 0.8 for a wildcard, else 0.
func CategoryFit(c domain.FoodCategory, r domain.Recipient) float64 {
	switch {
	case r.Needs(c):
		return 1
	case r.AcceptsAny():
		return wildcardCategoryFit
	default:
		return 0
	}
}

// CapacityFit is 1 within capacity and decays linearly past it, floored at 0.
// An unknown capacity scores 0.
func CapacityFit(quantityLbs float64, capacityLbs *float64) float64 {
	if capacityLbs == nil || *capacityLbs <= 0 {
		return 0
	}
	capacity := *capacityLbs
	if quantityLbs <= capacity {
		return 1
	}
	return math.Max(0, 1-(quantityLbs/capacity-1))
}

// DistanceFit maps miles onto [0, 1], reaching 0 at 20 miles.
func DistanceFit(miles float64) float64 {
	distanceScore := math.Max(0, 10-miles/2)
	return distanceScore / 10
}

// MatchScorer rates donation/recipient compatibility on [0, 1].
type MatchScorer struct {
	geo *GeoResolver
}

func NewMatchScorer(geo *GeoResolver) *MatchScorer {
	return &MatchScorer{geo: geo}
}

// Distance is the great-circle distance in miles between donation and recipient.
// Stored coordinates are used when present; otherwise the address is resolved.
func (m *MatchScorer) Distance(ctx context.Context, d domain.Donation, r domain.Recipient) float64 {
	from, ok := m.locate(ctx, d.Coords, d.Address)
	if !ok {
		return FallbackDistanceMiles
	}
	to, ok := m.locate(ctx, r.Coords, r.Address)
	if !ok {
		return FallbackDistanceMiles
	}
	return from.MilesTo(to)
}

func (m *MatchScorer) locate(ctx context.Context, stored *domain.Coordinates, address string) (domain.Coordinates, bool) {
	if stored != nil {
		return *stored, true
	}
	return m.geo.Resolve(ctx, address)
}

// Score returns the weighted compatibility along with the distance used.
func (m *MatchScorer) Score(ctx context.Context, d domain.Donation, r domain.Recipient) domain.MatchResult {
	miles := m.Distance(ctx, d, r)

	score := categoryWeight*CategoryFit(d.Category, r) +
		capacityWeight*CapacityFit(d.QuantityLbs, r.StorageCapacityLbs) +
		distanceWeight*DistanceFit(miles)

	return domain.MatchResult{
		RecipientID:   r.ID,
		RecipientName: r.Name,
		Score:         math.Max(0, math.Min(1, score)),
		DistanceMiles: miles,
	}
}
