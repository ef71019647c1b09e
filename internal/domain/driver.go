package domain

import (
	"strings"
	"time"
)

type DriverType string

const (
	DriverVolunteer DriverType = "volunteer"
	DriverCourier   DriverType = "courier"
)

func ParseDriverType(s string) (DriverType, bool) {
	switch t := DriverType(strings.ToLower(strings.TrimSpace(s))); t {
	case DriverVolunteer, DriverCourier:
		return t, true
	}
	return "", false
}

type Driver struct {
	ID              int64
	Name            string
	Email           string
	Phone           string
	CurrentLocation string
	Coords          *Coordinates
	Type            DriverType
	Available       bool
	CompletionRate  float64
	VolunteerPoints int
	CreatedAt       time.Time
}

// Outcome of the volunteer-versus-courier decision for one donation.
type DriverAssignment struct {
	Type   DriverType
	Reason string
}
