package mealplan

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewPlanDateRange(t *testing.T) {
	start := time.Date(2026, 3, 2, 0, 0, 0, 0, time.UTC)

	plan := New("user-1", "profile-1", start, 3)

	assert.Equal(t, "2026-03-02", plan.StartDate)
	assert.Equal(t, "2026-03-04", plan.EndDate, "a 3-day plan spans exactly 3 dates")
}

func TestNewPlanSingleDay(t *testing.T) {
	start := time.Date(2026, 3, 2, 0, 0, 0, 0, time.UTC)

	plan := New("user-1", "profile-1", start, 1)

	assert.Equal(t, plan.StartDate, plan.EndDate)
}

func TestAssignDayDates(t *testing.T) {
	start := time.Date(2026, 2, 27, 0, 0, 0, 0, time.UTC)
	plan := New("user-1", "profile-1", start, 3)
	plan.Days = []DayPlan{
		{DayNumber: 7}, // generator numbering is discarded
		{DayNumber: 2},
		{DayNumber: 2},
	}

	require.NoError(t, plan.AssignDayDates())

	assert.Equal(t, 1, plan.Days[0].DayNumber)
	assert.Equal(t, 2, plan.Days[1].DayNumber)
	assert.Equal(t, 3, plan.Days[2].DayNumber)
	assert.Equal(t, "2026-02-27", plan.Days[0].Date)
	assert.Equal(t, "2026-02-28", plan.Days[1].Date)
	assert.Equal(t, "2026-03-01", plan.Days[2].Date, "dates cross the month boundary")
}

func TestAssignDayDatesInvalidStart(t *testing.T) {
	plan := &MealPlan{StartDate: "02/27/2026", Days: []DayPlan{{}}}
	assert.Error(t, plan.AssignDayDates())
}

func TestDayPlanRecomputeTotals(t *testing.T) {
	day := DayPlan{
		Meals: []Meal{
			{Calories: IntPtr(500), ProteinGrams: IntPtr(30), CarbsGrams: IntPtr(40), FatGrams: IntPtr(20)},
			{Calories: IntPtr(700), ProteinGrams: IntPtr(45)}, // missing macros count as zero
			{},
		},
		TotalCalories: 9999, // stale value is discarded
	}

	day.RecomputeTotals()

	assert.Equal(t, 1200, day.TotalCalories)
	assert.Equal(t, 75, day.TotalProteinGrams)
	assert.Equal(t, 40, day.TotalCarbsGrams)
	assert.Equal(t, 20, day.TotalFatGrams)
}

func TestAllIngredientsPreservesOrder(t *testing.T) {
	plan := &MealPlan{
		Days: []DayPlan{
			{Meals: []Meal{
				{Ingredients: IngredientList{"1 cup oats", "1 tbsp honey"}},
				{Ingredients: IngredientList{"2 eggs"}},
			}},
			{Meals: []Meal{
				{Ingredients: IngredientList{"1 cup rice"}},
			}},
		},
	}

	assert.Equal(t,
		[]string{"1 cup oats", "1 tbsp honey", "2 eggs", "1 cup rice"},
		plan.AllIngredients(),
	)
}

func TestValidate(t *testing.T) {
	start := time.Date(2026, 3, 2, 0, 0, 0, 0, time.UTC)

	t.Run("valid", func(t *testing.T) {
		plan := New("u", "p", start, 2)
		plan.Days = []DayPlan{{DayNumber: 1}, {DayNumber: 2}}
		assert.NoError(t, plan.Validate())
	})

	t.Run("end before start", func(t *testing.T) {
		plan := &MealPlan{StartDate: "2026-03-02", EndDate: "2026-03-01"}
		assert.Error(t, plan.Validate())
	})

	t.Run("day numbering gap", func(t *testing.T) {
		plan := New("u", "p", start, 2)
		plan.Days = []DayPlan{{DayNumber: 1}, {DayNumber: 3}}
		assert.Error(t, plan.Validate())
	})
}

func TestNormalizeMealType(t *testing.T) {
	assert.Equal(t, MealTypeBreakfast, NormalizeMealType("breakfast"))
	assert.Equal(t, MealTypeSnack, NormalizeMealType("snack"))
	assert.Equal(t, MealTypeDinner, NormalizeMealType("brunch"), "unknown types default to dinner")
	assert.Equal(t, MealTypeDinner, NormalizeMealType(""))
}
