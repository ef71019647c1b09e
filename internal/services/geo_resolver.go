package services

import (
	"context"
	"errors"
	"fmt"
	"food-rescue-service/internal/domain"
	"food-rescue-service/internal/ports"
	"log"
	"strings"
	"time"
)

const (
	DefaultProviderTimeout = 10 * time.Second
	DefaultSuggestionLimit = 5
	MaxSuggestionLimit     = 20
)

var ErrSuggestionsUnavailable = errors.New("address suggestions unavailable")

// GeoResolver turns addresses into coordinates through a single geocoder.
// It never caches, never retries and reports failure as ok=false.
type GeoResolver struct {
	geocoder  ports.Geocoder
	suggester ports.AddressSuggester
	timeout   time.Duration
}

// NewGeoResolver accepts a nil geocoder; every lookup is then unresolved.
func NewGeoResolver(geocoder ports.Geocoder, timeout time.Duration) *GeoResolver {
	if timeout <= 0 {
		timeout = DefaultProviderTimeout
	}
	g := &GeoResolver{geocoder: geocoder, timeout: timeout}
	if s, ok := geocoder.(ports.AddressSuggester); ok {
		g.suggester = s
	}
	return g
}

// Resolve looks up address, bounded by the resolver timeout.
func (g *GeoResolver) Resolve(ctx context.Context, address string) (domain.Coordinates, bool) {
	address = strings.Join(strings.Fields(address), " ")
	if g == nil || g.geocoder == nil || address == "" {
		return domain.Coordinates{}, false
	}

	ctx, cancel := context.WithTimeout(ctx, g.timeout)
	defer cancel()

	c, err := g.geocoder.Geocode(ctx, address)
	if err != nil {
		log.Printf("geocode unresolved address=%q err=%v", address, err)
		return domain.Coordinates{}, false
	}
	if !c.Valid() {
		log.Printf("geocode unresolved address=%q err=coordinates out of range", address)
		return domain.Coordinates{}, false
	}
	return c, true
}

// ResolvePtr is Resolve for entity fields that store optional coordinates.
func (g *GeoResolver) ResolvePtr(ctx context.Context, address string) *domain.Coordinates {
	c, ok := g.Resolve(ctx, address)
	if !ok {
		return nil
	}
	return &c
}

// Suggest returns up to limit candidate addresses for a partial query.
// limit <= 0 means DefaultSuggestionLimit; larger values are capped at
// MaxSuggestionLimit. Suggestions outside the WGS84 range are dropped.
func (g *GeoResolver) Suggest(ctx context.Context, query string, limit int) ([]domain.AddressSuggestion, error) {
	query = strings.Join(strings.Fields(query), " ")
	if query == "" {
		return nil, fmt.Errorf("%w: query is required", domain.ErrInvalidInput)
	}
	if limit <= 0 {
		limit = DefaultSuggestionLimit
	}
	limit = min(limit, MaxSuggestionLimit)

	if g == nil || g.suggester == nil {
		return nil, ErrSuggestionsUnavailable
	}

	ctx, cancel := context.WithTimeout(ctx, g.timeout)
	defer cancel()

	found, err := g.suggester.Suggest(ctx, query, limit)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrSuggestionsUnavailable, err)
	}

	out := make([]domain.AddressSuggestion, 0, len(found))
	for _, s := range found {
		if !s.Coords.Valid() {
			continue
		}
		out = append(out, s)
		if len(out) == limit {
			break
		}
	}
	return out, nil
}
