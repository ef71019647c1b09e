package ports

import (
	"context"
	"food-rescue-service/internal/domain"
)

// Contract for resolving a free-text address to coordinates.
type Geocoder interface {
	// Return the best match for address, or an error when nothing usable was found.
	Geocode(ctx context.Context, address string) (domain.Coordinates, error)
}

// Contract for geocoders that can return several candidate matches for a
// partial address, best first.
type AddressSuggester interface {
	Suggest(ctx context.Context, query string, limit int) ([]domain.AddressSuggestion, error)
}
