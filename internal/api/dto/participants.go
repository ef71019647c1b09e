package dto

import "time"

type DonorRequest struct {
	Name         string   `json:"name"`
	Email        string   `json:"email"`
	Phone        string   `json:"phone"`
	Address      string   `json:"address"`
	Latitude     *float64 `json:"latitude"`
	Longitude    *float64 `json:"longitude"`
	BusinessType string   `json:"business_type"`
}

type DonorResponse struct {
	ID           int64     `json:"id"`
	Name         string    `json:"name"`
	Email        string    `json:"email"`
	Phone        string    `json:"phone"`
	Address      string    `json:"address"`
	Latitude     *float64  `json:"latitude"`
	Longitude    *float64  `json:"longitude"`
	BusinessType string    `json:"business_type"`
	CreatedAt    time.Time `json:"created_at"`
}

type RecipientRequest struct {
	Name               string   `json:"name"`
	Email              string   `json:"email"`
	Phone              string   `json:"phone"`
	Address            string   `json:"address"`
	Latitude           *float64 `json:"latitude"`
	Longitude          *float64 `json:"longitude"`
	OrganizationType   string   `json:"organization_type"`
	CategoriesNeeded   []string `json:"categories_needed"`
	StorageCapacityLbs *float64 `json:"storage_capacity_lbs"`
}

type RecipientResponse struct {
	ID                 int64     `json:"id"`
	Name               string    `json:"name"`
	Email              string    `json:"email"`
	Phone              string    `json:"phone"`
	Address            string    `json:"address"`
	Latitude           *float64  `json:"latitude"`
	Longitude          *float64  `json:"longitude"`
	OrganizationType   string    `json:"organization_type"`
	CategoriesNeeded   []string  `json:"categories_needed"`
	StorageCapacityLbs *float64  `json:"storage_capacity_lbs"`
	CreatedAt          time.Time `json:"created_at"`
}

type ListRecipientsResponse struct {
	Recipients []RecipientResponse `json:"recipients"`
}

type DriverRequest struct {
	Name            string   `json:"name"`
	Email           string   `json:"email"`
	Phone           string   `json:"phone"`
	CurrentLocation string   `json:"current_location"`
	Latitude        *float64 `json:"latitude"`
	Longitude       *float64 `json:"longitude"`
	DriverType      string   `json:"driver_type"`
	Available       *bool    `json:"available"`
}

type DriverResponse struct {
	ID              int64     `json:"id"`
	Name            string    `json:"name"`
	Email           string    `json:"email"`
	Phone           string    `json:"phone"`
	CurrentLocation string    `json:"current_location"`
	Latitude        *float64  `json:"latitude"`
	Longitude       *float64  `json:"longitude"`
	DriverType      string    `json:"driver_type"`
	Available       bool      `json:"available"`
	CompletionRate  float64   `json:"completion_rate"`
	VolunteerPoints int       `json:"volunteer_points"`
	CreatedAt       time.Time `json:"created_at"`
}

type ListDriversResponse struct {
	Drivers []DriverResponse `json:"drivers"`
}

type NearbyDriverResponse struct {
	Driver        DriverResponse `json:"driver"`
	DistanceMiles float64        `json:"distance_miles"`
}

type ListNearbyDriversResponse struct {
	Drivers []NearbyDriverResponse `json:"drivers"`
}

type DriverLocationRequest struct {
	CurrentLocation string   `json:"current_location"`
	Latitude        *float64 `json:"latitude"`
	Longitude       *float64 `json:"longitude"`
}

type DriverRecommendationResponse struct {
	DonationID     int64  `json:"donation_id"`
	AssignmentType string `json:"assignment_type"`
	Reason         string `json:"reason"`
}

type GeocodeResponse struct {
	Address   string  `json:"address"`
	Latitude  float64 `json:"latitude"`
	Longitude float64 `json:"longitude"`
}

type AddressSuggestionResponse struct {
	DisplayName string  `json:"display_name"`
	Address     string  `json:"address"`
	Latitude    float64 `json:"latitude"`
	Longitude   float64 `json:"longitude"`
}

type AutocompleteResponse struct {
	Query       string                      `json:"query"`
	Suggestions []AddressSuggestionResponse `json:"suggestions"`
	Count       int                         `json:"count"`
	Error       string                      `json:"error,omitempty"`
}
