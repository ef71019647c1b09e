package dto

type ImpactResponse struct {
	LbsRescued         float64 `json:"lbs_rescued"`
	Meals              float64 `json:"meals"`
	CO2eAvoided        float64 `json:"co2e_avoided"`
	CH4AvoidedTons     float64 `json:"ch4_avoided_tons"`
	LandfillSpaceSaved float64 `json:"landfill_space_saved"`
}

type RealtimeImpactResponse struct {
	Impact              ImpactResponse `json:"impact"`
	PotentialImpact     ImpactResponse `json:"potential_impact"`
	PendingDonations    int            `json:"pending_donations"`
	ActiveRoutes        int            `json:"active_routes"`
	TotalDonations      int            `json:"total_donations"`
	AIInsight           string         `json:"ai_insight"`
	SustainabilityScore float64        `json:"sustainability_score"`
}
