package domain

// Derived sustainability metrics for a quantity of rescued food.
type ImpactMetrics struct {
	PoundsRescued      float64
	Meals              float64
	CO2eAvoidedLbs     float64
	CH4AvoidedTons     float64
	LandfillCubicYards float64
}

// Operational snapshot combining realized and pending impact.
type RealtimeImpact struct {
	Impact              ImpactMetrics
	Potential           ImpactMetrics
	PendingDonations    int
	ActiveRoutes        int
	TotalDonations      int
	Insight             string
	SustainabilityScore float64
}
