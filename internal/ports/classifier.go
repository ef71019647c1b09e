package ports

import (
	"context"
	"food-rescue-service/internal/domain"
	"time"
)

// Port: external text classification for food descriptions.
// Implementations return the raw model text; validation and fallback
// belong to the caller.
type FoodClassifier interface {
	ClassifyFood(ctx context.Context, foodType string) (string, error)
	EstimatePerishability(ctx context.Context, foodType string, category domain.FoodCategory, postedAt time.Time) (string, error)
}

// Port: external advice on volunteer versus courier dispatch.
type DriverAdvisor interface {
	AdviseDriverType(ctx context.Context, perishability float64, volunteerAvailable bool, minutesSincePosted int) (string, error)
}
