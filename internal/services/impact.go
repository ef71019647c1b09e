package services

import (
	"fmt"
	"food-rescue-service/internal/domain"
	"math"

	"github.com/shopspring/decimal"
)

// WARM-model conversion ratios (EPA / USDA).
var (
	poundsPerMeal       = decimal.NewFromFloat(1.2)
	co2ePerPound        = decimal.NewFromFloat(2.5)
	ch4TonsPerTon       = decimal.NewFromFloat(0.45)
	poundsPerTon        = decimal.NewFromInt(2000)
	poundsPerCubicYard  = decimal.NewFromInt(450)
	sustainabilityScale = decimal.NewFromFloat(0.01) // 10 points per 1000 lbs
	maxSustainability   = decimal.NewFromInt(100)
)

// ImpactCalculator converts pounds rescued into sustainability metrics.
type ImpactCalculator struct{}

// Compute is linear in pounds; negative or non-finite input is rejected.
func (ImpactCalculator) Compute(pounds float64) (domain.ImpactMetrics, error) {
	if math.IsNaN(pounds) || math.IsInf(pounds, 0) || pounds < 0 {
		return domain.ImpactMetrics{}, fmt.Errorf("%w: pounds rescued must be a non-negative number, got %v", domain.ErrInvalidInput, pounds)
	}

	lbs := decimal.NewFromFloat(pounds)
	return domain.ImpactMetrics{
		PoundsRescued:      pounds,
		Meals:              round(lbs.Div(poundsPerMeal), 2),
		CO2eAvoidedLbs:     round(lbs.Mul(co2ePerPound), 2),
		CH4AvoidedTons:     round(lbs.Div(poundsPerTon).Mul(ch4TonsPerTon), 4),
		LandfillCubicYards: round(lbs.Div(poundsPerCubicYard), 2),
	}, nil
}

// SustainabilityScore awards 10 points per 1000 lbs rescued, capped at 100.
func (ImpactCalculator) SustainabilityScore(pounds float64) float64 {
	if !(pounds > 0) {
		return 0
	}
	return round(decimal.Min(maxSustainability, decimal.NewFromFloat(pounds).Mul(sustainabilityScale)), 2)
}

func round(d decimal.Decimal, places int32) float64 {
	f, _ := d.Round(places).Float64()
	return f
}
