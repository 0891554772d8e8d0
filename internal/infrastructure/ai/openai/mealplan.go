package openai

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"
	"time"

	"go.uber.org/zap"

	"github.com/hungryjack/backend/internal/domain/mealplan"
	"github.com/hungryjack/backend/internal/domain/profile"
)

const mealPlanSystemPrompt = `You are a professional nutritionist and meal-planning expert. Your task is to create a detailed, personalized meal plan based on the user's dietary preferences and goals.

The meal plan should:
1. Be realistic and practical for home cooking
2. Include breakfast, lunch, and dinner for each day
3. Match the user's caloric and macronutrient targets
4. Avoid any foods the user is allergic to or has excluded
5. Provide detailed ingredients and simple cooking instructions
6. Be varied and interesting across the days

Provide your response as a structured JSON object following this format:
{
  "days": [
    {
      "day_number": 1,
      "meals": [
        {
          "meal_type": "breakfast",
          "name": "Meal name",
          "description": "Brief description",
          "calories": 500,
          "protein_grams": 30,
          "carbs_grams": 40,
          "fat_grams": 20,
          "ingredients": ["1 cup oats", "1 tbsp honey"],
          "recipe": "Step-by-step instructions...",
          "preparation_time_minutes": 10,
          "cooking_time_minutes": 15
        }
      ]
    }
  ]
}

Only return the JSON object, no other text.`

// buildMealPlanPrompt renders the dietary profile into the user prompt
func buildMealPlanPrompt(p *profile.DietaryProfile, days int) string {
	var b strings.Builder

	fmt.Fprintf(&b, "Create a %d-day meal plan for someone with the following dietary profile:\n\n", days)
	fmt.Fprintf(&b, "Goal: %s\n", p.GoalType.DisplayName())

	if len(p.DietaryStyles) > 0 {
		fmt.Fprintf(&b, "Dietary Styles: %s\n", strings.Join(p.DietaryStyles, ", "))
	}
	if len(p.Allergies) > 0 {
		fmt.Fprintf(&b, "Allergies (must avoid): %s\n", strings.Join(p.Allergies, ", "))
	}
	if len(p.PreferredCuisines) > 0 {
		fmt.Fprintf(&b, "Preferred Cuisines: %s\n", strings.Join(p.PreferredCuisines, ", "))
	}
	if p.DailyCalorieTarget != nil {
		fmt.Fprintf(&b, "Daily Calorie Target: %d calories\n", *p.DailyCalorieTarget)
	}
	if p.MealPrepTimeLimit != nil {
		fmt.Fprintf(&b, "Meal Preparation Time Limit: %d minutes\n", *p.MealPrepTimeLimit)
	}

	b.WriteString("\nPlease include breakfast, lunch, and dinner for each day.\n")
	b.WriteString("Ensure all meals comply with the dietary restrictions and preferences.\n")

	return b.String()
}

// generatedMeal is the wire shape of one meal in the generation response.
// Some generator variants emit a "recipe" string, others an "instructions"
// step array; both are accepted.
type generatedMeal struct {
	Name            string                  `json:"name"`
	Description     string                  `json:"description"`
	MealType        string                  `json:"meal_type"`
	Calories        *int                    `json:"calories"`
	ProteinGrams    *int                    `json:"protein_grams"`
	CarbsGrams      *int                    `json:"carbs_grams"`
	FatGrams        *int                    `json:"fat_grams"`
	Ingredients     mealplan.IngredientList `json:"ingredients"`
	Recipe          string                  `json:"recipe"`
	Instructions    []string                `json:"instructions"`
	PrepTimeMinutes *int                    `json:"preparation_time_minutes"`
	CookTimeMinutes *int                    `json:"cooking_time_minutes"`
}

type generatedDay struct {
	DayNumber int             `json:"day_number"`
	Meals     []generatedMeal `json:"meals"`
}

type generatedPlan struct {
	Days []generatedDay `json:"days"`
}

// GenerateMealPlan builds the prompt from the profile, submits it, and
// normalizes the reply into the domain shape. Any transport or parse
// failure degrades to the deterministic placeholder plan: this path never
// returns an error for a well-formed request.
func (c *Client) GenerateMealPlan(ctx context.Context, p *profile.DietaryProfile, days int, start time.Time) (*mealplan.MealPlan, error) {
	userPrompt := buildMealPlanPrompt(p, days)

	content, err := c.callChatCompletion(ctx, mealPlanSystemPrompt, userPrompt, c.temperature, c.maxTokens)
	if err != nil {
		c.logger.Error("meal plan generation call failed, using placeholder plan",
			zap.String("profile_id", p.ID),
			zap.Error(err),
		)
		return FallbackPlan(p, days, start), nil
	}

	parsed, err := parseMealPlanResponse(content)
	if err != nil {
		c.logger.Error("meal plan response unparseable, using placeholder plan",
			zap.String("profile_id", p.ID),
			zap.Error(err),
		)
		return FallbackPlan(p, days, start), nil
	}

	plan := normalizePlan(parsed, p, days, start)
	return plan, nil
}

// parseMealPlanResponse decodes the model reply, strict-first with the
// substring scan as the degraded path
func parseMealPlanResponse(content string) (*generatedPlan, error) {
	var parsed generatedPlan
	if err := json.Unmarshal([]byte(content), &parsed); err == nil && len(parsed.Days) > 0 {
		return &parsed, nil
	}

	jsonStr, err := extractJSON(content)
	if err != nil {
		return nil, err
	}
	parsed = generatedPlan{}
	if err := json.Unmarshal([]byte(jsonStr), &parsed); err != nil {
		return nil, fmt.Errorf("failed to parse meal plan JSON: %w", err)
	}
	if len(parsed.Days) == 0 {
		return nil, fmt.Errorf("meal plan response contains no days")
	}
	return &parsed, nil
}

// normalizePlan maps the wire shape to the domain shape, filling defaults
// for missing fields and recomputing day totals from meal macros
func normalizePlan(parsed *generatedPlan, p *profile.DietaryProfile, days int, start time.Time) *mealplan.MealPlan {
	plan := mealplan.New(p.UserID, p.ID, start, days)

	limit := len(parsed.Days)
	if limit > days {
		limit = days
	}
	for _, gd := range parsed.Days[:limit] {
		day := mealplan.DayPlan{}
		for _, gm := range gd.Meals {
			day.Meals = append(day.Meals, normalizeMeal(gm))
		}
		plan.Days = append(plan.Days, day)
	}

	// Pad short responses so the plan covers the requested day count
	for len(plan.Days) < days {
		plan.Days = append(plan.Days, placeholderDay(len(plan.Days)+1))
	}

	plan.AssignDayDates()
	plan.RecomputeTotals()
	return plan
}

func normalizeMeal(gm generatedMeal) mealplan.Meal {
	name := gm.Name
	if name == "" {
		name = "Untitled Meal"
	}

	recipe := gm.Recipe
	if recipe == "" && len(gm.Instructions) > 0 {
		recipe = strings.Join(gm.Instructions, "\n")
	}

	ingredients := gm.Ingredients
	if ingredients == nil {
		ingredients = mealplan.IngredientList{}
	}

	return mealplan.Meal{
		Name:            name,
		Description:     gm.Description,
		MealType:        mealplan.NormalizeMealType(gm.MealType),
		Calories:        gm.Calories,
		ProteinGrams:    gm.ProteinGrams,
		CarbsGrams:      gm.CarbsGrams,
		FatGrams:        gm.FatGrams,
		Ingredients:     ingredients,
		Recipe:          recipe,
		PrepTimeMinutes: gm.PrepTimeMinutes,
		CookTimeMinutes: gm.CookTimeMinutes,
	}
}

// FallbackPlan is the deterministic placeholder covering the requested day
// count with fixed generic meals. Downstream persistence never sees a nil
// plan.
func FallbackPlan(p *profile.DietaryProfile, days int, start time.Time) *mealplan.MealPlan {
	plan := mealplan.New(p.UserID, p.ID, start, days)
	for n := 1; n <= days; n++ {
		plan.Days = append(plan.Days, placeholderDay(n))
	}
	plan.AssignDayDates()
	plan.RecomputeTotals()
	return plan
}

func placeholderDay(dayNumber int) mealplan.DayPlan {
	mealTypes := []mealplan.MealType{
		mealplan.MealTypeBreakfast,
		mealplan.MealTypeLunch,
		mealplan.MealTypeDinner,
	}

	day := mealplan.DayPlan{DayNumber: dayNumber}
	for _, mt := range mealTypes {
		day.Meals = append(day.Meals, mealplan.Meal{
			Name:            fmt.Sprintf("Default %s for Day %d", strings.Title(string(mt)), dayNumber),
			Description:     "A balanced meal",
			MealType:        mt,
			Calories:        mealplan.IntPtr(500),
			Ingredients:     mealplan.IngredientList{"Ingredient 1", "Ingredient 2", "Ingredient 3"},
			Recipe:          "Step 1\nStep 2\nStep 3",
			PrepTimeMinutes: mealplan.IntPtr(30),
		})
	}
	return day
}
