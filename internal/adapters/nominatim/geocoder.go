package nominatim

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"food-rescue-service/internal/domain"
	"food-rescue-service/internal/platform/obs"
	"io"
	"net/http"
	"strconv"
	"strings"
	"time"

	"golang.org/x/time/rate"
)

const (
	DefaultBaseURL   = "https://nominatim.openstreetmap.org"
	DefaultUserAgent = "food_rescue_route_ai"
)

// Geocoder resolves addresses against an OpenStreetMap Nominatim instance.
// Requests are throttled client-side; the public instance allows one per second.
type Geocoder struct {
	session   *http.Client
	baseURL   string
	userAgent string
	limiter   *rate.Limiter
}

func NewGeocoder(baseURL, userAgent string, rps float64) *Geocoder {
	if strings.TrimSpace(baseURL) == "" {
		baseURL = DefaultBaseURL
	}
	if strings.TrimSpace(userAgent) == "" {
		userAgent = DefaultUserAgent
	}
	if rps <= 0 {
		rps = 1
	}

	return &Geocoder{
		session:   &http.Client{Timeout: 10 * time.Second},
		baseURL:   strings.TrimRight(baseURL, "/"),
		userAgent: userAgent,
		limiter:   rate.NewLimiter(rate.Limit(rps), 1),
	}
}

type httpStatusError struct {
	Code int
	Body string
}

func (e *httpStatusError) Error() string {
	return fmt.Sprintf("Code %d: %s", e.Code, e.Body)
}

type place struct {
	Lat         string `json:"lat"`
	Lon         string `json:"lon"`
	DisplayName string `json:"display_name"`
}

func (p place) coords() (domain.Coordinates, error) {
	lat, err := strconv.ParseFloat(p.Lat, 64)
	if err != nil {
		return domain.Coordinates{}, fmt.Errorf("parse lat %q: %w", p.Lat, err)
	}
	lon, err := strconv.ParseFloat(p.Lon, 64)
	if err != nil {
		return domain.Coordinates{}, fmt.Errorf("parse lon %q: %w", p.Lon, err)
	}
	return domain.Coordinates{Lat: lat, Lon: lon}, nil
}

func (g *Geocoder) Geocode(ctx context.Context, address string) (_ domain.Coordinates, err error) {
	defer obs.Time(ctx, "nominatim.Geocode")(&err)

	q := strings.Join(strings.Fields(address), " ")
	places, err := g.search(ctx, q, 1)
	if err != nil {
		return domain.Coordinates{}, err
	}
	if len(places) == 0 {
		return domain.Coordinates{}, fmt.Errorf("no geocode results for %q", q)
	}
	return places[0].coords()
}

// Suggest returns up to limit candidate addresses for a partial query.
// Results with unparsable coordinates are skipped.
func (g *Geocoder) Suggest(ctx context.Context, query string, limit int) (_ []domain.AddressSuggestion, err error) {
	defer obs.Time(ctx, "nominatim.Suggest")(&err)

	if limit < 1 {
		return nil, fmt.Errorf("limit must be positive, got %d", limit)
	}
	places, err := g.search(ctx, strings.Join(strings.Fields(query), " "), limit)
	if err != nil {
		return nil, err
	}

	out := make([]domain.AddressSuggestion, 0, len(places))
	for _, p := range places {
		c, err := p.coords()
		if err != nil {
			continue
		}
		out = append(out, domain.AddressSuggestion{DisplayName: p.DisplayName, Address: p.DisplayName, Coords: c})
	}
	return out, nil
}

func (g *Geocoder) search(ctx context.Context, q string, limit int) ([]place, error) {
	if q == "" {
		return nil, errors.New("address must be non-empty")
	}

	if err := g.limiter.Wait(ctx); err != nil {
		return nil, fmt.Errorf("rate limit wait: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, g.baseURL+"/search", nil)
	if err != nil {
		return nil, fmt.Errorf("create request: %w", err)
	}
	req.Header.Set("User-Agent", g.userAgent)
	req.Header.Set("Accept", "application/json")

	params := req.URL.Query()
	params.Set("q", q)
	params.Set("format", "json")
	params.Set("limit", strconv.Itoa(limit))
	req.URL.RawQuery = params.Encode()

	resp, err := g.session.Do(req)
	if err != nil {
		return nil, fmt.Errorf("execute request: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode >= 400 {
		b, _ := io.ReadAll(io.LimitReader(resp.Body, 4096))
		return nil, &httpStatusError{Code: resp.StatusCode, Body: strings.TrimSpace(string(b))}
	}

	var places []place
	if err := json.NewDecoder(resp.Body).Decode(&places); err != nil {
		return nil, fmt.Errorf("decode search response: %w", err)
	}
	return places, nil
}
