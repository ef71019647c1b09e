package domain

import (
	"math"
	"testing"
)

func TestCoordinatesMilesTo(t *testing.T) {
	tests := []struct {
		name string
		a, b Coordinates
		want float64
		tol  float64
	}{
		{
			name: "same point",
			a:    Coordinates{Lat: 40.7128, Lon: -74.0060},
			b:    Coordinates{Lat: 40.7128, Lon: -74.0060},
			want: 0,
			tol:  1e-9,
		},
		{
			name: "new york to los angeles",
			a:    Coordinates{Lat: 40.7128, Lon: -74.0060},
			b:    Coordinates{Lat: 34.0522, Lon: -118.2437},
			want: 2445,
			tol:  10,
		},
		{
			name: "one degree of latitude",
			a:    Coordinates{Lat: 0, Lon: 0},
			b:    Coordinates{Lat: 1, Lon: 0},
			want: 69.09,
			tol:  0.1,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := tt.a.MilesTo(tt.b)
			if math.Abs(got-tt.want) > tt.tol {
				t.Fatalf("MilesTo = %.3f, want %.3f (+/- %.3f)", got, tt.want, tt.tol)
			}
			if back := tt.b.MilesTo(tt.a); math.Abs(back-got) > 1e-9 {
				t.Fatalf("distance not symmetric: %.6f vs %.6f", got, back)
			}
		})
	}
}

func TestCoordinatesToListIsLonLat(t *testing.T) {
	got := Coordinates{Lat: 40.7, Lon: -74}.CoordsToList()
	if got[0] != -74 || got[1] != 40.7 {
		t.Fatalf("CoordsToList = %v, want [lon lat]", got)
	}
}
