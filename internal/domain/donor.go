package domain

import "time"

// Business that posts surplus food.
type Donor struct {
	ID           int64
	Name         string
	Email        string
	Phone        string
	Address      string
	Coords       *Coordinates
	BusinessType string
	CreatedAt    time.Time
}
