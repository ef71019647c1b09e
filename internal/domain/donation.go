package domain

import (
	"fmt"
	"strings"
	"time"
)

type DonationStatus string

const (
	DonationPending   DonationStatus = "pending"
	DonationMatched   DonationStatus = "matched"
	DonationAssigned  DonationStatus = "assigned"
	DonationInTransit DonationStatus = "in_transit"
	DonationCompleted DonationStatus = "completed"
	DonationExpired   DonationStatus = "expired"
)

var donationTransitions = map[DonationStatus][]DonationStatus{
	DonationPending:   {DonationMatched, DonationAssigned, DonationExpired},
	DonationMatched:   {DonationAssigned, DonationExpired},
	DonationAssigned:  {DonationInTransit, DonationCompleted, DonationPending},
	DonationInTransit: {DonationCompleted, DonationPending},
}

func ParseDonationStatus(s string) (DonationStatus, bool) {
	st := DonationStatus(strings.ToLower(strings.TrimSpace(s)))
	switch st {
	case DonationPending, DonationMatched, DonationAssigned, DonationInTransit, DonationCompleted, DonationExpired:
		return st, true
	}
	return "", false
}

// Terminal reports whether no further transitions are allowed.
func (s DonationStatus) Terminal() bool {
	return s == DonationCompleted || s == DonationExpired
}

func (s DonationStatus) CanTransitionTo(next DonationStatus) bool {
	for _, allowed := range donationTransitions[s] {
		if allowed == next {
			return true
		}
	}
	return false
}

// Represents a surplus-food offer posted by a donor.
// Core services treat a Donation as an immutable snapshot; status changes
// go through Transition so CompletedAt stays set iff the donation is completed.
type Donation struct {
	ID                 int64
	DonorID            int64
	FoodType           string
	Category           FoodCategory
	QuantityLbs        float64
	PickupStart        time.Time
	PickupEnd          time.Time
	Address            string
	Coords             *Coordinates
	Storage            StorageRequirement
	PerishabilityScore float64
	Status             DonationStatus
	PostedAt           time.Time
	CompletedAt        *time.Time
}

// Validate checks the fields a caller must supply before the donation is stored.
func (d *Donation) Validate() error {
	if strings.TrimSpace(d.FoodType) == "" {
		return fmt.Errorf("%w: food_type is required", ErrInvalidInput)
	}
	if !(d.QuantityLbs > 0) {
		return fmt.Errorf("%w: quantity_lbs must be greater than 0", ErrInvalidInput)
	}
	if d.PickupStart.IsZero() || d.PickupEnd.IsZero() || !d.PickupStart.Before(d.PickupEnd) {
		return fmt.Errorf("%w: pickup window start must be before end", ErrInvalidInput)
	}
	if strings.TrimSpace(d.Address) == "" {
		return fmt.Errorf("%w: address is required", ErrInvalidInput)
	}
	return nil
}

// Transition moves the donation to next, maintaining CompletedAt.
func (d *Donation) Transition(next DonationStatus, at time.Time) error {
	if !d.Status.CanTransitionTo(next) {
		return fmt.Errorf("%w: donation %d %s -> %s", ErrInvalidTransition, d.ID, d.Status, next)
	}
	d.Status = next
	if next == DonationCompleted {
		t := at
		d.CompletedAt = &t
	} else {
		d.CompletedAt = nil
	}
	return nil
}
