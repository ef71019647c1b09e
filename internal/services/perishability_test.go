package services

import (
	"context"
	"food-rescue-service/internal/domain"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestDecayScore(t *testing.T) {
	posted := time.Date(2026, 1, 1, 8, 0, 0, 0, time.UTC)

	tests := []struct {
		name     string
		category domain.FoodCategory
		elapsed  time.Duration
		want     float64
	}{
		{"prepared saturates", domain.CategoryPrepared, 10 * time.Hour, 10},
		{"produce one hour", domain.CategoryProduce, time.Hour, 1.4},
		{"frozen five hours", domain.CategoryFrozen, 5 * time.Hour, 1.0},
		{"dairy half hour", domain.CategoryDairy, 30 * time.Minute, 0.8},
		{"unknown category", domain.FoodCategory("mystery"), 2 * time.Hour, 2.0},
		{"just posted", domain.CategoryBakery, 0, 0},
		{"clock skew", domain.CategoryBakery, -time.Hour, 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := DecayScore(tt.category, posted, posted.Add(tt.elapsed))
			assert.InDelta(t, tt.want, got, 1e-9)
		})
	}
}

func TestDecayScoreMonotonicAndCapped(t *testing.T) {
	posted := time.Date(2026, 1, 1, 8, 0, 0, 0, time.UTC)
	for _, c := range domain.FoodCategories {
		prev := -1.0
		for h := 0; h <= 200; h++ {
			got := DecayScore(c, posted, posted.Add(time.Duration(h)*time.Hour))
			assert.GreaterOrEqual(t, got, prev, "category=%s hour=%d", c, h)
			assert.LessOrEqual(t, got, MaxPerishability)
			prev = got
		}
	}
}

func TestKeywordCategory(t *testing.T) {
	tests := map[string]domain.FoodCategory{
		"Fresh apples":      domain.CategoryProduce,
		"sourdough bread":   domain.CategoryBakery,
		"cooked rice meals": domain.CategoryPrepared,
		"frozen peas":       domain.CategoryFrozen,
		"ice cream":         domain.CategoryFrozen,
		"cheddar cheese":    domain.CategoryDairy,
		"canned beans":      domain.CategoryPackaged,
		"":                  domain.CategoryPackaged,
	}
	for in, want := range tests {
		assert.Equal(t, want, KeywordCategory(in), "input %q", in)
	}
}

func TestParseScore(t *testing.T) {
	tests := []struct {
		in   string
		want float64
		ok   bool
	}{
		{"7", 7, true},
		{" 8\n", 8, true},
		{"Score: 12 out of 10", 10, true},
		{"about 7.5", 7, true},
		{"-3", 3, true},
		{"0", 0, true},
		{"not sure", 0, false},
		{"", 0, false},
	}
	for _, tt := range tests {
		got, ok := ParseScore(tt.in)
		assert.Equal(t, tt.ok, ok, "input %q", tt.in)
		assert.InDelta(t, tt.want, got, 1e-9, "input %q", tt.in)
	}
}

func TestClassifyFallsBackOnInvalidOutput(t *testing.T) {
	ctx := context.Background()

	valid := NewPerishabilityEstimator(fakeClassifier{category: " Bakery\n"}, 0.5, time.Second)
	assert.Equal(t, domain.CategoryBakery, valid.Classify(ctx, "canned soup"))

	invalid := NewPerishabilityEstimator(fakeClassifier{category: "snacks"}, 0.5, time.Second)
	assert.Equal(t, domain.CategoryDairy, invalid.Classify(ctx, "whole milk"))

	failing := NewPerishabilityEstimator(fakeClassifier{err: errUnavailable}, 0.5, time.Second)
	assert.Equal(t, domain.CategoryProduce, failing.Classify(ctx, "fresh kale"))

	none := NewPerishabilityEstimator(nil, 0.5, time.Second)
	assert.Equal(t, domain.CategoryPackaged, none.Classify(ctx, "granola bars"))
}

func TestAssessBlendsScores(t *testing.T) {
	ctx := context.Background()
	posted := time.Date(2026, 1, 1, 8, 0, 0, 0, time.UTC)
	now := posted.Add(2 * time.Hour)

	t.Run("classifier estimate averaged with decay", func(t *testing.T) {
		p := NewPerishabilityEstimator(fakeClassifier{score: "9"}, 0.5, time.Second)
		got := p.Assess(ctx, "salad", domain.CategoryProduce, posted, now)
		assert.InDelta(t, 2.8, got.Deterministic, 1e-9)
		assert.InDelta(t, 9, got.External, 1e-9)
		assert.Equal(t, "classifier", got.ExternalSource)
		assert.InDelta(t, 5.9, got.Final, 1e-9)
	})

	t.Run("unparseable estimate uses category base score", func(t *testing.T) {
		p := NewPerishabilityEstimator(fakeClassifier{score: "n/a"}, 0.5, time.Second)
		got := p.Assess(ctx, "salad", domain.CategoryProduce, posted, now)
		assert.InDelta(t, 7, got.External, 1e-9)
		assert.Equal(t, "category", got.ExternalSource)
	})

	t.Run("no classifier", func(t *testing.T) {
		p := NewPerishabilityEstimator(nil, 0.5, time.Second)
		got := p.Assess(ctx, "lasagna", domain.CategoryPrepared, posted, posted)
		assert.InDelta(t, 0, got.Deterministic, 1e-9)
		assert.InDelta(t, 8.5, got.External, 1e-9)
		assert.InDelta(t, 4.25, got.Final, 1e-9)
	})

	t.Run("weight is configurable and clamped", func(t *testing.T) {
		onlyExternal := NewPerishabilityEstimator(nil, 1, time.Second)
		assert.InDelta(t, 7, onlyExternal.Assess(ctx, "x", domain.CategoryProduce, posted, now).Final, 1e-9)

		onlyDecay := NewPerishabilityEstimator(nil, -4, time.Second)
		assert.InDelta(t, 2.8, onlyDecay.Assess(ctx, "x", domain.CategoryProduce, posted, now).Final, 1e-9)
	})
}
