// Package inbound defines the interfaces for inbound ports (primary/driving adapters)
// These are the interfaces that the application exposes to HTTP handlers
package inbound

import (
	"context"

	"github.com/hungryjack/backend/internal/domain/mealplan"
	"github.com/hungryjack/backend/internal/domain/nutrition"
	"github.com/hungryjack/backend/internal/domain/profile"
	"github.com/hungryjack/backend/internal/domain/shopping"
)

// GeneratePlanCommand carries the inputs for plan generation
type GeneratePlanCommand struct {
	UserID              string
	DietaryProfileID    string
	Days                int
	IncludeShoppingList bool
}

// GeneratePlanResult is the outcome of a generate-and-persist run
type GeneratePlanResult struct {
	Plan           *mealplan.MealPlan
	ShoppingListID string
}

// BuildShoppingListCommand carries the inputs for shopping list generation
type BuildShoppingListCommand struct {
	UserID     string
	MealPlanID string
}

// PlannerService is the primary port for profiles, meal plans, and
// shopping lists
type PlannerService interface {
	// Dietary profiles
	CreateProfile(ctx context.Context, p *profile.DietaryProfile) (*profile.DietaryProfile, error)
	ListProfiles(ctx context.Context, userID string) ([]profile.DietaryProfile, error)
	GetProfile(ctx context.Context, id, userID string) (*profile.DietaryProfile, error)

	// Meal plans
	GeneratePlan(ctx context.Context, cmd GeneratePlanCommand) (*GeneratePlanResult, error)
	ListMealPlans(ctx context.Context, userID string) ([]mealplan.MealPlan, error)
	GetMealPlan(ctx context.Context, id string) (*mealplan.MealPlan, error)
	PlanIngredients(ctx context.Context, id string) ([]string, error)

	// Shopping lists
	BuildShoppingList(ctx context.Context, cmd BuildShoppingListCommand) (*shopping.List, error)
	GetShoppingList(ctx context.Context, id string) (*shopping.List, error)
	MarkItemPurchased(ctx context.Context, listID, itemID string, purchased bool) (*shopping.Item, error)
}

// NutritionService is the primary port for nutrition estimates
type NutritionService interface {
	// EstimateFood never fails for a well-formed food name: lookup errors
	// downgrade to the keyword estimate.
	EstimateFood(ctx context.Context, foodName, quantity string) (nutrition.Facts, error)
	// CalculateMeal returns the hint verbatim when present, otherwise sums
	// per-ingredient estimates.
	CalculateMeal(ctx context.Context, ingredients []string, hint *nutrition.Facts) (nutrition.Facts, error)
}
