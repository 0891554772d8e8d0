// Package planner implements the meal planning application service:
// profile management, plan generation, and shopping list building on top
// of the outbound ports.
package planner

import (
	"context"
	"time"

	"go.uber.org/zap"

	"github.com/hungryjack/backend/internal/domain/mealplan"
	"github.com/hungryjack/backend/internal/domain/profile"
	"github.com/hungryjack/backend/internal/domain/shopping"
	"github.com/hungryjack/backend/internal/infrastructure/config"
	"github.com/hungryjack/backend/internal/ports/inbound"
	"github.com/hungryjack/backend/internal/ports/outbound"
	apperrors "github.com/hungryjack/backend/pkg/errors"
)

const (
	defaultPlanDays = 3
	maxPlanDays     = 7
)

// Service orchestrates plan generation and persistence. All collaborators
// are injected; the service holds no global state.
type Service struct {
	generator    outbound.MealPlanGenerator
	categorizer  outbound.ShoppingListCategorizer
	profiles     outbound.ProfileRepository
	plans        outbound.MealPlanRepository
	lists        outbound.ShoppingListRepository
	shoppingCfg  config.ShoppingConfig
	logger       *zap.Logger
	now          func() time.Time
}

var _ inbound.PlannerService = (*Service)(nil)

// NewService creates a planner service
func NewService(
	generator outbound.MealPlanGenerator,
	categorizer outbound.ShoppingListCategorizer,
	profiles outbound.ProfileRepository,
	plans outbound.MealPlanRepository,
	lists outbound.ShoppingListRepository,
	shoppingCfg config.ShoppingConfig,
	logger *zap.Logger,
) *Service {
	return &Service{
		generator:   generator,
		categorizer: categorizer,
		profiles:    profiles,
		plans:       plans,
		lists:       lists,
		shoppingCfg: shoppingCfg,
		logger:      logger,
		now:         time.Now,
	}
}

// CreateProfile validates and persists a dietary profile
func (s *Service) CreateProfile(ctx context.Context, p *profile.DietaryProfile) (*profile.DietaryProfile, error) {
	if p.UserID == "" {
		return nil, apperrors.NewBadRequestError("user_id is required")
	}
	if err := p.Validate(); err != nil {
		return nil, apperrors.NewValidationError(err.Error())
	}
	return s.profiles.Create(ctx, p)
}

// ListProfiles returns the user's profiles, newest first
func (s *Service) ListProfiles(ctx context.Context, userID string) ([]profile.DietaryProfile, error) {
	if userID == "" {
		return nil, apperrors.NewBadRequestError("user_id is required")
	}
	return s.profiles.FindByUser(ctx, userID)
}

// GetProfile returns one profile scoped to its owner
func (s *Service) GetProfile(ctx context.Context, id, userID string) (*profile.DietaryProfile, error) {
	if userID == "" {
		return nil, apperrors.NewBadRequestError("user_id is required")
	}
	return s.profiles.FindByID(ctx, id, userID)
}

// GeneratePlan produces a plan for the profile, persists it, and
// optionally builds its shopping list in the same run. Day counts outside
// 1..7 are rejected; zero means the 3-day default.
func (s *Service) GeneratePlan(ctx context.Context, cmd inbound.GeneratePlanCommand) (*inbound.GeneratePlanResult, error) {
	if cmd.UserID == "" {
		return nil, apperrors.NewBadRequestError("user_id is required")
	}

	days := cmd.Days
	if days == 0 {
		days = defaultPlanDays
	}
	if days < 1 || days > maxPlanDays {
		return nil, apperrors.NewValidationError("days must be between 1 and 7")
	}

	prof, err := s.profiles.FindByID(ctx, cmd.DietaryProfileID, cmd.UserID)
	if err != nil {
		return nil, err
	}

	start := s.now().UTC()
	plan, err := s.generator.GenerateMealPlan(ctx, prof, days, start)
	if err != nil {
		// Generators degrade to a placeholder plan instead of failing, so
		// an error here is a programming bug in the adapter.
		return nil, apperrors.NewGenerationError("meal plan generation failed", err)
	}

	plan.UserID = cmd.UserID
	plan.DietaryProfileID = prof.ID
	plan.RecomputeTotals()
	if err := plan.Validate(); err != nil {
		return nil, apperrors.NewGenerationError("generated plan is inconsistent", err)
	}

	planID, err := s.plans.Save(ctx, plan)
	if err != nil {
		return nil, err
	}
	plan.ID = planID

	s.logger.Info("meal plan generated",
		zap.String("plan_id", planID),
		zap.String("user_id", cmd.UserID),
		zap.Int("days", len(plan.Days)),
	)

	result := &inbound.GeneratePlanResult{Plan: plan}
	if cmd.IncludeShoppingList {
		list, err := s.BuildShoppingList(ctx, inbound.BuildShoppingListCommand{
			UserID:     cmd.UserID,
			MealPlanID: planID,
		})
		if err != nil {
			// The plan is already saved; a failed list is reported, not
			// allowed to undo the generation.
			s.logger.Warn("shopping list build failed after plan save",
				zap.String("plan_id", planID), zap.Error(err))
		} else {
			result.ShoppingListID = list.ID
		}
	}
	return result, nil
}

// ListMealPlans returns the user's plans without their day graphs
func (s *Service) ListMealPlans(ctx context.Context, userID string) ([]mealplan.MealPlan, error) {
	if userID == "" {
		return nil, apperrors.NewBadRequestError("user_id is required")
	}
	return s.plans.FindByUser(ctx, userID)
}

// GetMealPlan returns a plan with its full day and meal graph
func (s *Service) GetMealPlan(ctx context.Context, id string) (*mealplan.MealPlan, error) {
	return s.plans.FindByID(ctx, id)
}

// PlanIngredients returns the flattened ingredient strings of a plan
func (s *Service) PlanIngredients(ctx context.Context, id string) ([]string, error) {
	plan, err := s.plans.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	return plan.AllIngredients(), nil
}

// BuildShoppingList derives a categorized shopping list from a saved plan
// and persists it. The model strategy's failure mode is configurable:
// fall back to the local keyword strategy, or save an empty list.
func (s *Service) BuildShoppingList(ctx context.Context, cmd inbound.BuildShoppingListCommand) (*shopping.List, error) {
	if cmd.UserID == "" {
		return nil, apperrors.NewBadRequestError("user_id is required")
	}

	plan, err := s.plans.FindByID(ctx, cmd.MealPlanID)
	if err != nil {
		return nil, err
	}
	if plan.UserID != cmd.UserID {
		return nil, apperrors.NewMealPlanNotFoundError(cmd.MealPlanID)
	}

	ingredients := plan.AllIngredients()
	items := s.categorize(ctx, ingredients)

	list := &shopping.List{
		UserID:     cmd.UserID,
		MealPlanID: plan.ID,
		Items:      items,
	}
	if _, err := s.lists.Save(ctx, list); err != nil {
		return nil, err
	}

	s.logger.Info("shopping list built",
		zap.String("shopping_list_id", list.ID),
		zap.String("plan_id", plan.ID),
		zap.Int("items", len(list.Items)),
	)
	return list, nil
}

func (s *Service) categorize(ctx context.Context, ingredients []string) []shopping.Item {
	if s.shoppingCfg.Strategy != config.ShoppingStrategyModel || s.categorizer == nil {
		return shopping.BuildItems(ingredients)
	}

	items, err := s.categorizer.CategorizeIngredients(ctx, ingredients)
	if err == nil {
		return items
	}
	s.logger.Warn("model categorization failed", zap.Error(err))
	if s.shoppingCfg.FallbackToLocal {
		return shopping.BuildItems(ingredients)
	}
	return []shopping.Item{}
}

// GetShoppingList returns a list with its items
func (s *Service) GetShoppingList(ctx context.Context, id string) (*shopping.List, error) {
	return s.lists.FindByID(ctx, id)
}

// MarkItemPurchased toggles one item's purchased flag
func (s *Service) MarkItemPurchased(ctx context.Context, listID, itemID string, purchased bool) (*shopping.Item, error) {
	return s.lists.UpdateItemPurchased(ctx, listID, itemID, purchased)
}
