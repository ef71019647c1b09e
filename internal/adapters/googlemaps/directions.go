package googlemaps

import (
	"context"
	"errors"
	"fmt"
	"food-rescue-service/internal/platform/obs"
	"food-rescue-service/internal/ports"
	"math"
	"strconv"
	"strings"

	"googlemaps.github.io/maps"
)

// Directions is a ports.RouteProvider backed by the Google Maps Directions API.
type Directions struct {
	client *maps.Client
}

func NewDirections(apiKey string) (*Directions, error) {
	client, err := maps.NewClient(maps.WithAPIKey(apiKey))
	if err != nil {
		return nil, fmt.Errorf("create maps client: %w", err)
	}
	return &Directions{client: client}, nil
}

func (d *Directions) Route(ctx context.Context, origin, destination ports.Waypoint) (_ ports.RouteResult, err error) {
	defer obs.Time(ctx, "googlemaps.Route")(&err)

	o, dst := location(origin), location(destination)
	if o == "" || dst == "" {
		return ports.RouteResult{}, errors.New("directions need an address or coordinates for both waypoints")
	}

	routes, _, err := d.client.Directions(ctx, &maps.DirectionsRequest{
		Origin:      o,
		Destination: dst,
		Mode:        maps.TravelModeDriving,
	})
	if err != nil {
		return ports.RouteResult{}, fmt.Errorf("maps api error: %w", err)
	}

	if len(routes) == 0 || len(routes[0].Legs) == 0 {
		return ports.RouteResult{}, errors.New("no route found")
	}
	return legResult(routes[0].Legs[0]), nil
}

// location prefers the address text and falls back to "lat,lng".
func location(w ports.Waypoint) string {
	if a := strings.TrimSpace(w.Address); a != "" {
		return a
	}
	if w.Coords != nil {
		return strconv.FormatFloat(w.Coords.Lat, 'f', -1, 64) + "," + strconv.FormatFloat(w.Coords.Lon, 'f', -1, 64)
	}
	return ""
}

func legResult(leg *maps.Leg) ports.RouteResult {
	out := ports.RouteResult{
		DistanceMeters:  float64(leg.Distance.Meters),
		DurationSeconds: leg.Duration.Seconds(),
		SegmentCount:    len(leg.Steps),
		Steps:           make([]ports.RouteStep, 0, len(leg.Steps)),
	}
	for _, s := range leg.Steps {
		if s == nil {
			continue
		}
		out.Steps = append(out.Steps, ports.RouteStep{
			Instruction:     s.HTMLInstructions,
			DistanceMeters:  float64(s.Distance.Meters),
			DurationSeconds: s.Duration.Seconds(),
			DistanceText:    s.Distance.HumanReadable,
			DurationText:    durationText(s.Duration.Minutes()),
		})
	}
	return out
}

func durationText(minutes float64) string {
	m := int(math.Max(1, math.Round(minutes)))
	if m == 1 {
		return "1 min"
	}
	return fmt.Sprintf("%d mins", m)
}
