package services

import (
	"context"
	"food-rescue-service/internal/domain"
	"food-rescue-service/internal/ports"
	"log"
	"math"
	"strconv"
	"strings"
	"time"
)

const (
	MaxPerishability = 10.0

	unknownDecayFactor = 0.5
	unknownBaseScore   = 5.0
)

// decayFactor is the per-hour urgency growth of a category.
func decayFactor(c domain.FoodCategory) float64 {
	switch c {
	case domain.CategoryProduce:
		return 0.7
	case domain.CategoryPrepared:
		return 1.2
	case domain.CategoryBakery:
		return 0.9
	case domain.CategoryPackaged:
		return 0.3
	case domain.CategoryFrozen:
		return 0.1
	case domain.CategoryDairy:
		return 0.8
	default:
		return unknownDecayFactor
	}
}

// baseScore is the category urgency used when no external estimate is available.
func baseScore(c domain.FoodCategory) float64 {
	switch c {
	case domain.CategoryProduce:
		return 7.0
	case domain.CategoryPrepared:
		return 8.5
	case domain.CategoryBakery:
		return 6.0
	case domain.CategoryDairy:
		return 7.5
	case domain.CategoryFrozen:
		return 2.0
	case domain.CategoryPackaged:
		return 3.0
	default:
		return unknownBaseScore
	}
}

// Keyword lists are checked in order; the first hit wins.
var categoryKeywords = []struct {
	category domain.FoodCategory
	words    []string
}{
	{domain.CategoryProduce, []string{"produce", "vegetable", "fruit", "fresh"}},
	{domain.CategoryBakery, []string{"bread", "pastry", "bakery", "baked"}},
	{domain.CategoryPrepared, []string{"prepared", "meal", "cooked", "hot"}},
	{domain.CategoryFrozen, []string{"frozen", "ice"}},
	{domain.CategoryDairy, []string{"milk", "cheese", "dairy", "yogurt"}},
}

// KeywordCategory classifies a food description by substring match,
// defaulting to packaged.
func KeywordCategory(foodType string) domain.FoodCategory {
	lower := strings.ToLower(foodType)
	for _, kw := range categoryKeywords {
		for _, w := range kw.words {
			if strings.Contains(lower, w) {
				return kw.category
			}
		}
	}
	return domain.CategoryPackaged
}

// DecayScore is the deterministic urgency after the time elapsed since posting.
// Non-decreasing in now and capped at MaxPerishability.
func DecayScore(c domain.FoodCategory, postedAt, now time.Time) float64 {
	hours := now.Sub(postedAt).Hours()
	if hours < 0 {
		hours = 0
	}
	return math.Min(MaxPerishability, decayFactor(c)*hours*2)
}

// ParseScore extracts the first run of digits from classifier output and clamps it to [0, 10].
func ParseScore(text string) (float64, bool) {
	start := strings.IndexFunc(text, isDigit)
	if start < 0 {
		return 0, false
	}
	end := start
	for end < len(text) && isDigit(rune(text[end])) {
		end++
	}
	v, err := strconv.ParseFloat(text[start:end], 64)
	if err != nil {
		return 0, false
	}
	return math.Max(0, math.Min(MaxPerishability, v)), true
}

// PerishabilityAssessment carries both scores and their blend.
type PerishabilityAssessment struct {
	Deterministic float64
	External      float64
	// ExternalSource is "classifier" when the external model produced the
	// estimate and "category" when the per-category base score was used.
	ExternalSource string
	Final          float64
}

// PerishabilityEstimator scores donation urgency on a 0-10 scale.
type PerishabilityEstimator struct {
	classifier     ports.FoodClassifier
	externalWeight float64
	timeout        time.Duration
}

// NewPerishabilityEstimator accepts a nil classifier; keyword and
// category fallbacks are used instead. externalWeight is clamped to [0, 1].
func NewPerishabilityEstimator(classifier ports.FoodClassifier, externalWeight float64, timeout time.Duration) *PerishabilityEstimator {
	if math.IsNaN(externalWeight) {
		externalWeight = 0.5
	}
	if timeout <= 0 {
		timeout = DefaultProviderTimeout
	}
	return &PerishabilityEstimator{
		classifier:     classifier,
		externalWeight: math.Max(0, math.Min(1, externalWeight)),
		timeout:        timeout,
	}
}

// Estimate is the deterministic decay model.
func (p *PerishabilityEstimator) Estimate(category domain.FoodCategory, postedAt, now time.Time) float64 {
	return DecayScore(category, postedAt, now)
}

// Classify maps a food description to a category. Classifier output outside
// the closed category set falls back to keyword heuristics.
func (p *PerishabilityEstimator) Classify(ctx context.Context, foodType string) domain.FoodCategory {
	if p.classifier == nil {
		return KeywordCategory(foodType)
	}

	ctx, cancel := context.WithTimeout(ctx, p.timeout)
	defer cancel()

	out, err := p.classifier.ClassifyFood(ctx, foodType)
	if err != nil {
		log.Printf("classifier unavailable op=classify err=%v", err)
		return KeywordCategory(foodType)
	}
	if c, ok := domain.ParseFoodCategory(out); ok {
		return c
	}
	log.Printf("classifier output rejected op=classify output=%q", out)
	return KeywordCategory(foodType)
}

// ExternalEstimate asks the classifier for a score, falling back to the category base score.
func (p *PerishabilityEstimator) ExternalEstimate(ctx context.Context, foodType string, category domain.FoodCategory, postedAt time.Time) (float64, string) {
	if p.classifier == nil {
		return baseScore(category), "category"
	}

	ctx, cancel := context.WithTimeout(ctx, p.timeout)
	defer cancel()

	out, err := p.classifier.EstimatePerishability(ctx, foodType, category, postedAt)
	if err != nil {
		log.Printf("classifier unavailable op=estimate err=%v", err)
		return baseScore(category), "category"
	}
	score, ok := ParseScore(out)
	if !ok {
		log.Printf("classifier output rejected op=estimate output=%q", out)
		return baseScore(category), "category"
	}
	return score, "classifier"
}

// Assess computes both paths and blends them with the configured external weight.
func (p *PerishabilityEstimator) Assess(ctx context.Context, foodType string, category domain.FoodCategory, postedAt, now time.Time) PerishabilityAssessment {
	det := p.Estimate(category, postedAt, now)
	ext, src := p.ExternalEstimate(ctx, foodType, category, postedAt)
	final := (1-p.externalWeight)*det + p.externalWeight*ext

	return PerishabilityAssessment{
		Deterministic:  det,
		External:       ext,
		ExternalSource: src,
		Final:          math.Max(0, math.Min(MaxPerishability, final)),
	}
}

func isDigit(r rune) bool { return r >= '0' && r <= '9' }
