// Package testutils provides test data factories for consistent test data generation
package testutils

import (
	"fmt"
	"time"

	"github.com/brianvoe/gofakeit/v6"
	"github.com/google/uuid"

	"github.com/hungryjack/backend/internal/domain/mealplan"
	"github.com/hungryjack/backend/internal/domain/profile"
)

// ProfileFactory builds dietary profiles with seeded fake data
type ProfileFactory struct {
	faker *gofakeit.Faker
}

// NewProfileFactory creates a profile factory with a seeded faker
func NewProfileFactory(seed int64) *ProfileFactory {
	return &ProfileFactory{faker: gofakeit.New(seed)}
}

// Build returns a valid dietary profile with randomized preferences
func (f *ProfileFactory) Build() *profile.DietaryProfile {
	target := 1500 + f.faker.IntRange(0, 10)*200
	prep := 15 + f.faker.IntRange(0, 7)*15

	return &profile.DietaryProfile{
		ID:                 uuid.New().String(),
		UserID:             uuid.New().String(),
		GoalType:           profile.GoalMaintenance,
		DietaryStyles:      []string{"mediterranean"},
		Allergies:          []string{"peanuts"},
		PreferredCuisines:  []string{"italian", "mexican"},
		DailyCalorieTarget: &target,
		MealPrepTimeLimit:  &prep,
		IsActive:           true,
		CreatedAt:          time.Now().UTC(),
	}
}

// BuildPlan returns a persisted-shaped meal plan with the given day count,
// one meal per day, owned by the given user
func BuildPlan(userID, profileID string, days int) *mealplan.MealPlan {
	start := time.Date(2026, 3, 2, 0, 0, 0, 0, time.UTC)
	plan := mealplan.New(userID, profileID, start, days)
	plan.ID = uuid.New().String()

	for n := 1; n <= days; n++ {
		plan.Days = append(plan.Days, mealplan.DayPlan{
			ID:         uuid.New().String(),
			MealPlanID: plan.ID,
			DayNumber:  n,
			Meals: []mealplan.Meal{
				{
					ID:          uuid.New().String(),
					Name:        fmt.Sprintf("Dinner %d", n),
					MealType:    mealplan.MealTypeDinner,
					Calories:    mealplan.IntPtr(600),
					Ingredients: mealplan.IngredientList{"1 cup rice", "2 chicken breasts"},
					Recipe:      "Cook and serve",
				},
			},
		})
	}
	plan.AssignDayDates()
	plan.RecomputeTotals()
	return plan
}
