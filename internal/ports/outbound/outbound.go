// Package outbound defines the interfaces for outbound ports (secondary/driven adapters)
// These are the interfaces that the application uses to interact with external systems
package outbound

import (
	"context"
	"errors"
	"time"

	"github.com/hungryjack/backend/internal/domain/mealplan"
	"github.com/hungryjack/backend/internal/domain/nutrition"
	"github.com/hungryjack/backend/internal/domain/profile"
	"github.com/hungryjack/backend/internal/domain/shopping"
)

// ErrNoMatch signals a lookup that completed but found nothing. The
// nutrition estimator downgrades it to the keyword tier.
var ErrNoMatch = errors.New("no match found")

// MealPlanGenerator produces a multi-day meal plan for a dietary profile.
// Implementations must degrade to a deterministic placeholder plan on
// transport or parse failure: callers never receive a nil plan for a
// well-formed request.
type MealPlanGenerator interface {
	GenerateMealPlan(ctx context.Context, p *profile.DietaryProfile, days int, start time.Time) (*mealplan.MealPlan, error)
}

// ShoppingListCategorizer buckets a flattened ingredient sequence into
// categorized shopping items. Implementations may consolidate duplicates
// and standardize units.
type ShoppingListCategorizer interface {
	CategorizeIngredients(ctx context.Context, ingredients []string) ([]shopping.Item, error)
}

// NutritionLookup queries an external nutrition database by food name.
// Returns ErrNoMatch when the search yields no result.
type NutritionLookup interface {
	Lookup(ctx context.Context, foodName string) (*nutrition.Facts, error)
}

// ProfileRepository persists dietary profiles
type ProfileRepository interface {
	Create(ctx context.Context, p *profile.DietaryProfile) (*profile.DietaryProfile, error)
	FindByUser(ctx context.Context, userID string) ([]profile.DietaryProfile, error)
	// FindByID scopes by owner: a profile that exists but belongs to a
	// different user reads as not found.
	FindByID(ctx context.Context, id, userID string) (*profile.DietaryProfile, error)
}

// MealPlanRepository persists the plan/day/meal graph
type MealPlanRepository interface {
	// Save writes the plan row, then one row per day, then one row per
	// meal, and returns the generated plan id. Partial failures are
	// compensated with best-effort deletes of the rows already written.
	Save(ctx context.Context, plan *mealplan.MealPlan) (string, error)
	FindByID(ctx context.Context, id string) (*mealplan.MealPlan, error)
	FindByUser(ctx context.Context, userID string) ([]mealplan.MealPlan, error)
}

// ShoppingListRepository persists shopping lists and their items
type ShoppingListRepository interface {
	Save(ctx context.Context, list *shopping.List) (string, error)
	FindByID(ctx context.Context, id string) (*shopping.List, error)
	// UpdateItemPurchased patches a single item scoped by both item id and
	// parent list id, guarding against cross-list id collisions.
	UpdateItemPurchased(ctx context.Context, listID, itemID string, purchased bool) (*shopping.Item, error)
}
