// Package nutrition implements the tiered nutrition estimator: caller
// hint first, external database lookup second, keyword classification as
// the guaranteed fallback.
package nutrition

import (
	"context"
	"errors"
	"strings"

	"go.uber.org/zap"

	"github.com/hungryjack/backend/internal/domain/nutrition"
	"github.com/hungryjack/backend/internal/ports/outbound"
)

// bucket is one coarse food class with its fixed representative profile.
// Check order is fixed: the first bucket with a matching keyword wins.
type bucket struct {
	keywords []string
	facts    nutrition.Facts
}

var buckets = []bucket{
	{[]string{"chicken", "beef", "fish", "meat", "turkey", "pork"},
		nutrition.Facts{Calories: 250, ProteinGrams: 25, CarbsGrams: 0, FatGrams: 15}},
	{[]string{"salad", "vegetable", "broccoli", "spinach", "kale"},
		nutrition.Facts{Calories: 50, ProteinGrams: 2, CarbsGrams: 10, FatGrams: 0}},
	{[]string{"rice", "pasta", "bread", "potato", "grain"},
		nutrition.Facts{Calories: 200, ProteinGrams: 5, CarbsGrams: 40, FatGrams: 1}},
	{[]string{"fruit", "apple", "banana", "berry", "orange"},
		nutrition.Facts{Calories: 100, ProteinGrams: 1, CarbsGrams: 25, FatGrams: 0}},
	{[]string{"yogurt", "milk", "cheese", "dairy"},
		nutrition.Facts{Calories: 150, ProteinGrams: 10, CarbsGrams: 12, FatGrams: 8}},
	{[]string{"nut", "seed", "almond", "walnut", "peanut"},
		nutrition.Facts{Calories: 180, ProteinGrams: 6, CarbsGrams: 6, FatGrams: 16}},
	{[]string{"oil", "butter", "fat"},
		nutrition.Facts{Calories: 120, ProteinGrams: 0, CarbsGrams: 0, FatGrams: 14}},
}

var defaultFacts = nutrition.Facts{Calories: 200, ProteinGrams: 10, CarbsGrams: 20, FatGrams: 10}

// Service estimates calorie and macro values for foods and meals
type Service struct {
	lookup outbound.NutritionLookup
	logger *zap.Logger
}

// NewService creates an estimator. lookup may be nil when no external
// nutrition database is configured; the keyword tier then serves directly.
func NewService(lookup outbound.NutritionLookup, logger *zap.Logger) *Service {
	return &Service{
		lookup: lookup,
		logger: logger,
	}
}

// EstimateFood returns nutrition facts for a single food name. External
// lookup errors are swallowed and downgrade to the keyword estimate: this
// method never fails for a well-formed name.
func (s *Service) EstimateFood(ctx context.Context, foodName, quantity string) (nutrition.Facts, error) {
	if s.lookup != nil {
		facts, err := s.lookup.Lookup(ctx, foodName)
		if err == nil {
			return *facts, nil
		}
		if !errors.Is(err, outbound.ErrNoMatch) {
			s.logger.Warn("nutrition lookup failed, using keyword estimate",
				zap.String("food", foodName),
				zap.Error(err),
			)
		}
	}
	return KeywordEstimate(foodName), nil
}

// CalculateMeal returns the caller hint verbatim when present (the highest
// priority source), otherwise sums per-ingredient keyword estimates.
func (s *Service) CalculateMeal(_ context.Context, ingredients []string, hint *nutrition.Facts) (nutrition.Facts, error) {
	if hint != nil {
		return *hint, nil
	}

	var total nutrition.Facts
	for _, ingredient := range ingredients {
		total.Add(KeywordEstimate(ingredient))
	}
	return total, nil
}

// KeywordEstimate classifies a food name into one of the coarse buckets by
// keyword membership. Deterministic and total.
func KeywordEstimate(foodName string) nutrition.Facts {
	lower := strings.ToLower(foodName)
	for _, b := range buckets {
		for _, keyword := range b.keywords {
			if strings.Contains(lower, keyword) {
				return b.facts
			}
		}
	}
	return defaultFacts
}
