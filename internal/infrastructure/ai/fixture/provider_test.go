package fixture

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/hungryjack/backend/internal/domain/profile"
)

func TestGenerateMealPlanIsDeterministic(t *testing.T) {
	provider := NewProvider()
	p := &profile.DietaryProfile{ID: "profile-1", UserID: "user-1", GoalType: profile.GoalMaintenance}
	start := time.Date(2026, 3, 2, 0, 0, 0, 0, time.UTC)

	first, err := provider.GenerateMealPlan(context.Background(), p, 3, start)
	require.NoError(t, err)
	second, err := provider.GenerateMealPlan(context.Background(), p, 3, start)
	require.NoError(t, err)

	assert.Equal(t, first, second)
}

func TestGenerateMealPlanShape(t *testing.T) {
	provider := NewProvider()
	p := &profile.DietaryProfile{ID: "profile-1", UserID: "user-1", GoalType: profile.GoalWeightLoss}
	start := time.Date(2026, 3, 2, 0, 0, 0, 0, time.UTC)

	plan, err := provider.GenerateMealPlan(context.Background(), p, 5, start)

	require.NoError(t, err)
	assert.Equal(t, "user-1", plan.UserID)
	assert.Equal(t, "profile-1", plan.DietaryProfileID)
	assert.Equal(t, "2026-03-02", plan.StartDate)
	assert.Equal(t, "2026-03-06", plan.EndDate)
	require.Len(t, plan.Days, 5)

	for i, day := range plan.Days {
		assert.Equal(t, i+1, day.DayNumber)
		require.Len(t, day.Meals, 3, "breakfast, lunch, and dinner each day")
		assert.Positive(t, day.TotalCalories)
		for _, meal := range day.Meals {
			assert.NotEmpty(t, meal.Name)
			assert.NotEmpty(t, meal.Ingredients)
			assert.NotEmpty(t, meal.Recipe)
		}
	}

	// Menus rotate with a period of three, so day 4 repeats day 1
	assert.Equal(t, plan.Days[0].Meals[0].Name, plan.Days[3].Meals[0].Name)
	assert.NotEqual(t, plan.Days[0].Meals[0].Name, plan.Days[1].Meals[0].Name)
}

func TestCategorizeIngredientsUsesLocalStrategy(t *testing.T) {
	provider := NewProvider()

	items, err := provider.CategorizeIngredients(context.Background(), []string{
		"1 cup rice",
		"2 cups spinach",
	})

	require.NoError(t, err)
	require.Len(t, items, 2)
	assert.Equal(t, "Produce", items[0].Category)
	assert.Equal(t, "Grains & Pasta", items[1].Category)
}
