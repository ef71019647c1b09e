package googlemaps

import (
	"food-rescue-service/internal/domain"
	"food-rescue-service/internal/ports"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"googlemaps.github.io/maps"
)

func TestLegResult(t *testing.T) {
	leg := &maps.Leg{
		Distance: maps.Distance{HumanReadable: "2.0 mi", Meters: 3219},
		Duration: 9 * time.Minute,
		Steps: []*maps.Step{
			{
				HTMLInstructions: "Head <b>north</b> on Broadway",
				Distance:         maps.Distance{HumanReadable: "0.5 mi", Meters: 805},
				Duration:         2 * time.Minute,
			},
			nil,
			{
				HTMLInstructions: "Turn <b>right</b>",
				Distance:         maps.Distance{HumanReadable: "1.5 mi", Meters: 2414},
				Duration:         20 * time.Second,
			},
		},
	}

	got := legResult(leg)
	assert.InDelta(t, 3219, got.DistanceMeters, 1e-9)
	assert.InDelta(t, 540, got.DurationSeconds, 1e-9)
	assert.Equal(t, 3, got.SegmentCount)
	require.Len(t, got.Steps, 2)
	assert.Equal(t, ports.RouteStep{
		Instruction:     "Head <b>north</b> on Broadway",
		DistanceMeters:  805,
		DurationSeconds: 120,
		DistanceText:    "0.5 mi",
		DurationText:    "2 mins",
	}, got.Steps[0])
	assert.Equal(t, "1 min", got.Steps[1].DurationText)
}

func TestLocation(t *testing.T) {
	tests := []struct {
		name string
		in   ports.Waypoint
		want string
	}{
		{"address wins", ports.Waypoint{Address: " 1 Main St ", Coords: &domain.Coordinates{Lat: 1, Lon: 2}}, "1 Main St"},
		{"coordinates", ports.Waypoint{Coords: &domain.Coordinates{Lat: 40.75, Lon: -73.5}}, "40.75,-73.5"},
		{"nothing", ports.Waypoint{}, ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, location(tt.in))
		})
	}
}
