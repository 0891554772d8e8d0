// Package mealplan contains the core domain model for generated meal plans:
// a plan owns ordered day plans, a day plan owns ordered meals. Day-level
// macro totals are denormalized and must be recomputed from meals whenever
// meal nutrition changes; generator-reported totals are never trusted.
package mealplan

import (
	"fmt"
	"time"
)

// DateLayout is the calendar date format used across plan rows and prompts
const DateLayout = "2006-01-02"

// MealType enumerates the supported meal slots
type MealType string

const (
	MealTypeBreakfast MealType = "breakfast"
	MealTypeLunch     MealType = "lunch"
	MealTypeDinner    MealType = "dinner"
	MealTypeSnack     MealType = "snack"
)

// NormalizeMealType maps arbitrary generator output onto the enumerated set,
// defaulting to dinner
func NormalizeMealType(s string) MealType {
	switch MealType(s) {
	case MealTypeBreakfast, MealTypeLunch, MealTypeDinner, MealTypeSnack:
		return MealType(s)
	default:
		return MealTypeDinner
	}
}

// Micronutrients is the optional detailed nutrient block on a meal.
// Every field is optional: generators rarely report all of them.
type Micronutrients struct {
	FiberGrams        *float64 `json:"fiber_grams,omitempty"`
	SugarGrams        *float64 `json:"sugar_grams,omitempty"`
	SodiumMg          *float64 `json:"sodium_mg,omitempty"`
	CholesterolMg     *float64 `json:"cholesterol_mg,omitempty"`
	SaturatedFatGrams *float64 `json:"saturated_fat_grams,omitempty"`
	TransFatGrams     *float64 `json:"trans_fat_grams,omitempty"`
	VitaminAPercent   *float64 `json:"vitamin_a_percent,omitempty"`
	VitaminCPercent   *float64 `json:"vitamin_c_percent,omitempty"`
	CalciumPercent    *float64 `json:"calcium_percent,omitempty"`
	IronPercent       *float64 `json:"iron_percent,omitempty"`
}

// Meal is a single meal within a day plan. Ingredients are opaque
// quantity+name strings ("1 cup oats"), not structured triples.
type Meal struct {
	ID                 string          `json:"id,omitempty"`
	DayID              string          `json:"day_id,omitempty"`
	Name               string          `json:"name"`
	Description        string          `json:"description"`
	MealType           MealType        `json:"meal_type"`
	Calories           *int            `json:"calories,omitempty"`
	ProteinGrams       *int            `json:"protein_grams,omitempty"`
	CarbsGrams         *int            `json:"carbs_grams,omitempty"`
	FatGrams           *int            `json:"fat_grams,omitempty"`
	Ingredients        IngredientList  `json:"ingredients"`
	Recipe             string          `json:"recipe"`
	PrepTimeMinutes    *int            `json:"preparation_time_minutes,omitempty"`
	CookTimeMinutes    *int            `json:"cooking_time_minutes,omitempty"`
	Micronutrients     *Micronutrients `json:"micronutrients,omitempty"`
}

// DayPlan is one day of a meal plan. Totals are the sum of the meals'
// macro fields, meals without a value counting as zero.
type DayPlan struct {
	ID                string `json:"id,omitempty"`
	MealPlanID        string `json:"meal_plan_id,omitempty"`
	DayNumber         int    `json:"day_number"`
	Date              string `json:"date,omitempty"`
	Meals             []Meal `json:"meals"`
	TotalCalories     int    `json:"total_calories"`
	TotalProteinGrams int    `json:"total_protein_grams"`
	TotalCarbsGrams   int    `json:"total_carbs_grams"`
	TotalFatGrams     int    `json:"total_fat_grams"`
}

// RecomputeTotals recalculates the denormalized day totals from the meals
func (d *DayPlan) RecomputeTotals() {
	d.TotalCalories = 0
	d.TotalProteinGrams = 0
	d.TotalCarbsGrams = 0
	d.TotalFatGrams = 0
	for _, m := range d.Meals {
		d.TotalCalories += intOrZero(m.Calories)
		d.TotalProteinGrams += intOrZero(m.ProteinGrams)
		d.TotalCarbsGrams += intOrZero(m.CarbsGrams)
		d.TotalFatGrams += intOrZero(m.FatGrams)
	}
}

// MealPlan is the aggregate root for a generated multi-day plan
type MealPlan struct {
	ID               string    `json:"id,omitempty"`
	UserID           string    `json:"user_id"`
	DietaryProfileID string    `json:"dietary_profile_id"`
	StartDate        string    `json:"start_date"`
	EndDate          string    `json:"end_date"`
	Days             []DayPlan `json:"days"`
	CreatedAt        time.Time `json:"created_at,omitempty"`
}

// New creates a plan skeleton for the given date range. End date is
// start + (days - 1): a 3-day plan spans exactly 3 calendar dates.
func New(userID, profileID string, start time.Time, days int) *MealPlan {
	return &MealPlan{
		UserID:           userID,
		DietaryProfileID: profileID,
		StartDate:        start.Format(DateLayout),
		EndDate:          start.AddDate(0, 0, days-1).Format(DateLayout),
	}
}

// AssignDayDates renumbers the days 1..n with no gaps and derives each
// day's date as start_date + (day_number - 1)
func (p *MealPlan) AssignDayDates() error {
	start, err := time.Parse(DateLayout, p.StartDate)
	if err != nil {
		return fmt.Errorf("invalid start date %q: %w", p.StartDate, err)
	}
	for i := range p.Days {
		p.Days[i].DayNumber = i + 1
		p.Days[i].Date = start.AddDate(0, 0, i).Format(DateLayout)
	}
	return nil
}

// RecomputeTotals recalculates every day's totals from its meals
func (p *MealPlan) RecomputeTotals() {
	for i := range p.Days {
		p.Days[i].RecomputeTotals()
	}
}

// AllIngredients flattens every ingredient string across every meal of
// every day, preserving order
func (p *MealPlan) AllIngredients() []string {
	var out []string
	for _, d := range p.Days {
		for _, m := range d.Meals {
			out = append(out, m.Ingredients...)
		}
	}
	return out
}

// Validate checks the date range and day sequence invariants
func (p *MealPlan) Validate() error {
	start, err := time.Parse(DateLayout, p.StartDate)
	if err != nil {
		return fmt.Errorf("invalid start date %q: %w", p.StartDate, err)
	}
	end, err := time.Parse(DateLayout, p.EndDate)
	if err != nil {
		return fmt.Errorf("invalid end date %q: %w", p.EndDate, err)
	}
	if end.Before(start) {
		return fmt.Errorf("end date %s before start date %s", p.EndDate, p.StartDate)
	}
	for i, d := range p.Days {
		if d.DayNumber != i+1 {
			return fmt.Errorf("day %d has day_number %d, want %d", i, d.DayNumber, i+1)
		}
	}
	return nil
}

func intOrZero(v *int) int {
	if v == nil {
		return 0
	}
	return *v
}

// IntPtr is a convenience for the optional macro fields
func IntPtr(v int) *int {
	return &v
}
