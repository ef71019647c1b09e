package dto

import "time"

type AssignRouteRequest struct {
	DonationID  int64 `json:"donation_id"`
	DriverID    int64 `json:"driver_id"`
	RecipientID int64 `json:"recipient_id"`
}

type InstructionResponse struct {
	Instruction string `json:"instruction"`
	Distance    string `json:"distance"`
	Duration    string `json:"duration"`
}

type EstimateResponse struct {
	DurationMinutes float64               `json:"duration_minutes"`
	DistanceMiles   float64               `json:"distance_miles"`
	Instructions    []InstructionResponse `json:"instructions"`
	Source          string                `json:"source"`
	Approach        *EstimateResponse     `json:"approach,omitempty"`
}

type RouteResponse struct {
	ID                       int64                 `json:"id"`
	DonationID               int64                 `json:"donation_id"`
	DriverID                 int64                 `json:"driver_id"`
	RecipientID              int64                 `json:"recipient_id"`
	Status                   string                `json:"status"`
	EstimatedDurationMinutes float64               `json:"estimated_duration_minutes"`
	EstimatedDistanceMiles   float64               `json:"estimated_distance_miles"`
	Instructions             []InstructionResponse `json:"instructions"`
	StartedAt                *time.Time            `json:"started_at"`
	CompletedAt              *time.Time            `json:"completed_at"`
	CreatedAt                time.Time             `json:"created_at"`
}

type AssignRouteResponse struct {
	Route    RouteResponse    `json:"route"`
	Estimate EstimateResponse `json:"estimate"`
}

type ListRoutesResponse struct {
	Routes []RouteResponse `json:"routes"`
}

type RouteStatusRequest struct {
	Status string `json:"status"`
}

type MapPoint struct {
	Address   string   `json:"address"`
	Latitude  *float64 `json:"latitude"`
	Longitude *float64 `json:"longitude"`
}

type RouteMapResponse struct {
	RouteID         int64                 `json:"route_id"`
	Status          string                `json:"status"`
	Start           MapPoint              `json:"start"`
	End             MapPoint              `json:"end"`
	DistanceMiles   float64               `json:"distance_miles"`
	DurationMinutes float64               `json:"duration_minutes"`
	Instructions    []InstructionResponse `json:"instructions"`
}

type MultiStopRequest struct {
	Start string   `json:"start"`
	Stops []string `json:"stops"`
}
