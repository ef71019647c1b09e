package gemini

import (
	"context"
	"fmt"
	"food-rescue-service/internal/domain"
	"food-rescue-service/internal/platform/obs"
	"strings"
	"time"
)

func (c *Client) ClassifyFood(ctx context.Context, foodType string) (_ string, err error) {
	defer obs.Time(ctx, "gemini.ClassifyFood")(&err)
	return c.generate(ctx, classifyPrompt(foodType))
}

func (c *Client) EstimatePerishability(ctx context.Context, foodType string, category domain.FoodCategory, postedAt time.Time) (_ string, err error) {
	defer obs.Time(ctx, "gemini.EstimatePerishability")(&err)
	return c.generate(ctx, perishabilityPrompt(foodType, category, postedAt))
}

func (c *Client) AdviseDriverType(ctx context.Context, perishability float64, volunteerAvailable bool, minutesSincePosted int) (_ string, err error) {
	defer obs.Time(ctx, "gemini.AdviseDriverType")(&err)
	return c.generate(ctx, assignmentPrompt(perishability, volunteerAvailable, minutesSincePosted))
}

func classifyPrompt(foodType string) string {
	names := make([]string, 0, len(domain.FoodCategories))
	for _, c := range domain.FoodCategories {
		names = append(names, string(c))
	}

	return fmt.Sprintf(`You are a food classification system. Classify this food into one of these categories: %s.

Food: %s

Return only the category name, nothing else.`, strings.Join(names, ", "), foodType)
}

func perishabilityPrompt(foodType string, category domain.FoodCategory, postedAt time.Time) string {
	return fmt.Sprintf(`You are a food safety expert. Estimate perishability on a scale of 0-10, where 10 is highly perishable (needs immediate pickup) and 0 is shelf-stable.

Food: %s
Category: %s
Posted: %s

Return only a number between 0 and 10, nothing else.`, foodType, category, postedAt.UTC().Format(time.RFC3339))
}

func assignmentPrompt(perishability float64, volunteerAvailable bool, minutesSincePosted int) string {
	return fmt.Sprintf(`You are a food rescue logistics coordinator. Decide driver assignment for food rescue:

- Perishability score: %.1f/10
- Volunteer available: %t
- Time since posted: %d minutes

Return JSON format: {"assignment_type": "volunteer" or "courier", "reason": "brief explanation"}

Return only valid JSON, nothing else.`, perishability, volunteerAvailable, minutesSincePosted)
}
