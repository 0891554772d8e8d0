// Package fixture provides a deterministic generation provider for demos
// and tests. It implements the same ports as the live OpenAI client and is
// selected through configuration (ai.provider = fixture), keeping canned
// data out of the live code path.
package fixture

import (
	"context"
	"time"

	"github.com/hungryjack/backend/internal/domain/mealplan"
	"github.com/hungryjack/backend/internal/domain/profile"
	"github.com/hungryjack/backend/internal/domain/shopping"
)

// Provider generates fixed meal plans and locally categorized shopping
// lists with no outbound calls
type Provider struct{}

// NewProvider creates a fixture provider
func NewProvider() *Provider {
	return &Provider{}
}

type fixtureMeal struct {
	name        string
	description string
	mealType    mealplan.MealType
	calories    int
	protein     int
	carbs       int
	fat         int
	ingredients []string
	recipe      string
	prepMinutes int
}

// Three rotating day menus keep multi-day plans varied but reproducible
var fixtureMenus = [][]fixtureMeal{
	{
		{"Overnight Oats with Berries", "Creamy oats soaked overnight with mixed berries", mealplan.MealTypeBreakfast,
			420, 18, 60, 12, []string{"1 cup oats", "1 cup milk", "1/2 cup blueberries", "1 tbsp honey"},
			"Combine oats and milk in a jar.\nRefrigerate overnight.\nTop with berries and honey.", 10},
		{"Grilled Chicken Salad", "Mixed greens with grilled chicken breast", mealplan.MealTypeLunch,
			520, 42, 18, 28, []string{"6 oz chicken breast", "2 cups spinach", "1 tomato", "2 tbsp olive oil"},
			"Grill the chicken until cooked through.\nToss greens with oil.\nSlice chicken over the salad.", 25},
		{"Baked Salmon with Rice", "Oven-baked salmon fillet over brown rice", mealplan.MealTypeDinner,
			640, 38, 55, 24, []string{"6 oz salmon", "1 cup brown rice", "1 cup broccoli", "1 tsp salt"},
			"Bake salmon at 400F for 15 minutes.\nSteam the broccoli.\nServe over cooked rice.", 35},
	},
	{
		{"Veggie Scramble", "Eggs scrambled with peppers and onions", mealplan.MealTypeBreakfast,
			380, 22, 14, 26, []string{"3 eggs", "1 pepper", "1 onion", "1 tbsp butter"},
			"Saute the vegetables.\nAdd beaten eggs.\nScramble until set.", 15},
		{"Turkey Wrap", "Whole wheat tortilla with sliced turkey", mealplan.MealTypeLunch,
			480, 35, 42, 18, []string{"1 tortilla", "4 oz turkey", "2 slices cheese", "1 cup lettuce"},
			"Layer turkey and cheese on the tortilla.\nAdd lettuce.\nRoll tightly and halve.", 10},
		{"Beef Stir Fry", "Quick-seared beef with mixed vegetables", mealplan.MealTypeDinner,
			610, 40, 48, 26, []string{"6 oz beef", "2 cups frozen vegetables", "1 cup rice", "2 tbsp soy sauce"},
			"Sear the beef in a hot pan.\nAdd vegetables and sauce.\nServe over rice.", 30},
	},
	{
		{"Greek Yogurt Parfait", "Yogurt layered with granola and fruit", mealplan.MealTypeBreakfast,
			350, 20, 48, 8, []string{"1 cup yogurt", "1/2 cup granola", "1 banana"},
			"Layer yogurt, granola, and sliced banana in a glass.", 5},
		{"Lentil Soup", "Hearty lentil and vegetable soup", mealplan.MealTypeLunch,
			440, 24, 60, 10, []string{"1 cup lentils", "2 carrots", "1 onion", "4 cups broth"},
			"Saute the vegetables.\nAdd lentils and broth.\nSimmer for 30 minutes.", 40},
		{"Chicken Curry", "Mild coconut chicken curry", mealplan.MealTypeDinner,
			680, 36, 52, 34, []string{"6 oz chicken breast", "1 can coconut milk", "1 tbsp curry", "1 cup rice"},
			"Brown the chicken.\nAdd coconut milk and curry powder.\nSimmer and serve over rice.", 35},
	},
}

// GenerateMealPlan implements outbound.MealPlanGenerator
func (f *Provider) GenerateMealPlan(_ context.Context, p *profile.DietaryProfile, days int, start time.Time) (*mealplan.MealPlan, error) {
	plan := mealplan.New(p.UserID, p.ID, start, days)

	for n := 1; n <= days; n++ {
		menu := fixtureMenus[(n-1)%len(fixtureMenus)]
		day := mealplan.DayPlan{}
		for _, fm := range menu {
			day.Meals = append(day.Meals, mealplan.Meal{
				Name:            fm.name,
				Description:     fm.description,
				MealType:        fm.mealType,
				Calories:        mealplan.IntPtr(fm.calories),
				ProteinGrams:    mealplan.IntPtr(fm.protein),
				CarbsGrams:      mealplan.IntPtr(fm.carbs),
				FatGrams:        mealplan.IntPtr(fm.fat),
				Ingredients:     fm.ingredients,
				Recipe:          fm.recipe,
				PrepTimeMinutes: mealplan.IntPtr(fm.prepMinutes),
			})
		}
		plan.Days = append(plan.Days, day)
	}

	plan.AssignDayDates()
	plan.RecomputeTotals()
	return plan, nil
}

// CategorizeIngredients implements outbound.ShoppingListCategorizer using
// the local keyword strategy
func (f *Provider) CategorizeIngredients(_ context.Context, ingredients []string) ([]shopping.Item, error) {
	return shopping.BuildItems(ingredients), nil
}
