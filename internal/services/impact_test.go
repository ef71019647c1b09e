package services

import (
	"food-rescue-service/internal/domain"
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestImpactCompute(t *testing.T) {
	var calc ImpactCalculator

	got, err := calc.Compute(1000)
	require.NoError(t, err)
	assert.Equal(t, domain.ImpactMetrics{
		PoundsRescued:      1000,
		Meals:              833.33,
		CO2eAvoidedLbs:     2500,
		CH4AvoidedTons:     0.225,
		LandfillCubicYards: 2.22,
	}, got)

	zero, err := calc.Compute(0)
	require.NoError(t, err)
	assert.Equal(t, domain.ImpactMetrics{}, zero)
}

func TestImpactComputeIsLinear(t *testing.T) {
	var calc ImpactCalculator
	for _, p := range []float64{1, 12.5, 480, 2200, 12345.6} {
		one, err := calc.Compute(p)
		require.NoError(t, err)
		three, err := calc.Compute(3 * p)
		require.NoError(t, err)

		assert.InDelta(t, 3*one.Meals, three.Meals, 0.021, "pounds=%v", p)
		assert.InDelta(t, 3*one.CO2eAvoidedLbs, three.CO2eAvoidedLbs, 0.021, "pounds=%v", p)
		assert.InDelta(t, 3*one.CH4AvoidedTons, three.CH4AvoidedTons, 0.00021, "pounds=%v", p)
		assert.InDelta(t, 3*one.LandfillCubicYards, three.LandfillCubicYards, 0.021, "pounds=%v", p)
	}
}

func TestImpactComputeRejectsInvalidInput(t *testing.T) {
	var calc ImpactCalculator
	for _, p := range []float64{-0.01, math.NaN(), math.Inf(1)} {
		_, err := calc.Compute(p)
		assert.ErrorIs(t, err, domain.ErrInvalidInput, "pounds=%v", p)
	}
}

func TestSustainabilityScore(t *testing.T) {
	var calc ImpactCalculator
	assert.Equal(t, 0.0, calc.SustainabilityScore(0))
	assert.Equal(t, 5.0, calc.SustainabilityScore(500))
	assert.Equal(t, 12.35, calc.SustainabilityScore(1234.5))
	assert.Equal(t, 100.0, calc.SustainabilityScore(25000))
}
