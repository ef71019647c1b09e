package dto

import "time"

type DonationRequest struct {
	DonorID            int64     `json:"donor_id"`
	FoodType           string    `json:"food_type"`
	FoodCategory       string    `json:"food_category"`
	QuantityLbs        float64   `json:"quantity_lbs"`
	PickupWindowStart  time.Time `json:"pickup_window_start"`
	PickupWindowEnd    time.Time `json:"pickup_window_end"`
	Address            string    `json:"address"`
	StorageRequirement string    `json:"storage_requirement"`
}

type DonationResponse struct {
	ID                 int64      `json:"id"`
	DonorID            int64      `json:"donor_id"`
	FoodType           string     `json:"food_type"`
	FoodCategory       string     `json:"food_category"`
	QuantityLbs        float64    `json:"quantity_lbs"`
	PickupWindowStart  time.Time  `json:"pickup_window_start"`
	PickupWindowEnd    time.Time  `json:"pickup_window_end"`
	Address            string     `json:"address"`
	Latitude           *float64   `json:"latitude"`
	Longitude          *float64   `json:"longitude"`
	StorageRequirement string     `json:"storage_requirement"`
	PerishabilityScore float64    `json:"perishability_score"`
	Status             string     `json:"status"`
	PostedAt           time.Time  `json:"posted_at"`
	CompletedAt        *time.Time `json:"completed_at"`
}

type ListDonationsResponse struct {
	Donations []DonationResponse `json:"donations"`
}

type PerishabilityResponse struct {
	Deterministic  float64 `json:"deterministic"`
	External       float64 `json:"external"`
	ExternalSource string  `json:"external_source"`
	Final          float64 `json:"final"`
}

type MatchResponse struct {
	RecipientID   int64   `json:"recipient_id"`
	RecipientName string  `json:"recipient_name"`
	Score         float64 `json:"score"`
	DistanceMiles float64 `json:"distance_miles"`
}

type CreateDonationResponse struct {
	Donation      DonationResponse      `json:"donation"`
	Perishability PerishabilityResponse `json:"perishability"`
	Matches       []MatchResponse       `json:"matches"`
}

type ListMatchesResponse struct {
	DonationID int64           `json:"donation_id"`
	Matches    []MatchResponse `json:"matches"`
}
