package ors

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"food-rescue-service/internal/domain"
	"food-rescue-service/internal/platform/obs"
	"net/http"
	"strconv"
)

type geocodeFeature struct {
	Geometry struct {
		Coordinates []float64 `json:"coordinates"`
	} `json:"geometry"`
	Properties struct {
		Label string `json:"label"`
	} `json:"properties"`
}

type geocodeResponse struct {
	Features []geocodeFeature `json:"features"`
}

// coords reads the [lon, lat] geometry of a feature.
func (f geocodeFeature) coords() (domain.Coordinates, bool) {
	c := f.Geometry.Coordinates
	if len(c) != 2 {
		return domain.Coordinates{}, false
	}
	return domain.Coordinates{Lon: c[0], Lat: c[1]}, true
}

// Geocode resolves a single address using OpenRouteService (/geocode/search).
func (c *Client) Geocode(ctx context.Context, address string) (_ domain.Coordinates, err error) {
	defer obs.Time(ctx, "ors.Geocode")(&err)

	norm := normalize(address)
	if norm == "" {
		return domain.Coordinates{}, errors.New("address must be non-empty")
	}

	features, err := c.search(ctx, "/geocode/search", norm, 1)
	if err != nil {
		return domain.Coordinates{}, err
	}
	if len(features) == 0 {
		return domain.Coordinates{}, fmt.Errorf("no geocode results for %q", norm)
	}

	coords, ok := features[0].coords()
	if !ok {
		return domain.Coordinates{}, fmt.Errorf("invalid coordinate format for %q", norm)
	}
	return coords, nil
}

// Suggest returns up to limit completions for a partial address using
// OpenRouteService (/geocode/autocomplete).
func (c *Client) Suggest(ctx context.Context, query string, limit int) (_ []domain.AddressSuggestion, err error) {
	defer obs.Time(ctx, "ors.Suggest")(&err)

	norm := normalize(query)
	if norm == "" {
		return nil, errors.New("query must be non-empty")
	}
	if limit < 1 {
		return nil, fmt.Errorf("limit must be positive, got %d", limit)
	}

	features, err := c.search(ctx, "/geocode/autocomplete", norm, limit)
	if err != nil {
		return nil, err
	}

	out := make([]domain.AddressSuggestion, 0, len(features))
	for _, f := range features {
		coords, ok := f.coords()
		if !ok {
			continue
		}
		out = append(out, domain.AddressSuggestion{DisplayName: f.Properties.Label, Address: f.Properties.Label, Coords: coords})
	}
	return out, nil
}

func (c *Client) search(ctx context.Context, path, text string, size int) ([]geocodeFeature, error) {
	req, err := c.newRequest(ctx, http.MethodGet, c.baseURL+path, nil)
	if err != nil {
		return nil, fmt.Errorf("get geocode request: %w", err)
	}

	q := req.URL.Query()
	q.Set("text", text)
	if c.country != "" {
		q.Set("boundary.country", c.country)
	}
	q.Set("size", strconv.Itoa(size))
	req.URL.RawQuery = q.Encode()

	resp, err := c.do(req)
	if err != nil {
		return nil, fmt.Errorf("execute request: %w", err)
	}
	defer resp.Body.Close()

	var decoded geocodeResponse
	if err := json.NewDecoder(resp.Body).Decode(&decoded); err != nil {
		return nil, fmt.Errorf("decode geocode response: %w", err)
	}
	return decoded.Features, nil
}
