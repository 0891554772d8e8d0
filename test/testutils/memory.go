package testutils

import (
	"context"

	"github.com/google/uuid"

	"github.com/hungryjack/backend/internal/domain/mealplan"
	"github.com/hungryjack/backend/internal/domain/profile"
	"github.com/hungryjack/backend/internal/domain/shopping"
	apperrors "github.com/hungryjack/backend/pkg/errors"
)

// In-memory repository implementations for service and handler tests.
// They mirror the store's ownership scoping and not-found semantics.

// MemoryProfileRepo is an in-memory outbound.ProfileRepository
type MemoryProfileRepo struct {
	Profiles map[string]*profile.DietaryProfile
}

// NewMemoryProfileRepo creates an empty profile repo
func NewMemoryProfileRepo() *MemoryProfileRepo {
	return &MemoryProfileRepo{Profiles: make(map[string]*profile.DietaryProfile)}
}

func (r *MemoryProfileRepo) Create(_ context.Context, p *profile.DietaryProfile) (*profile.DietaryProfile, error) {
	stored := *p
	if stored.ID == "" {
		stored.ID = uuid.New().String()
	}
	r.Profiles[stored.ID] = &stored
	return &stored, nil
}

func (r *MemoryProfileRepo) FindByUser(_ context.Context, userID string) ([]profile.DietaryProfile, error) {
	var out []profile.DietaryProfile
	for _, p := range r.Profiles {
		if p.UserID == userID {
			out = append(out, *p)
		}
	}
	return out, nil
}

func (r *MemoryProfileRepo) FindByID(_ context.Context, id, userID string) (*profile.DietaryProfile, error) {
	p, ok := r.Profiles[id]
	if !ok || p.UserID != userID {
		return nil, apperrors.NewProfileNotFoundError(id)
	}
	return p, nil
}

// MemoryPlanRepo is an in-memory outbound.MealPlanRepository
type MemoryPlanRepo struct {
	Plans   map[string]*mealplan.MealPlan
	SaveErr error
}

// NewMemoryPlanRepo creates an empty plan repo
func NewMemoryPlanRepo() *MemoryPlanRepo {
	return &MemoryPlanRepo{Plans: make(map[string]*mealplan.MealPlan)}
}

// Seed stores a pre-built plan under its existing id
func (r *MemoryPlanRepo) Seed(plan *mealplan.MealPlan) {
	r.Plans[plan.ID] = plan
}

func (r *MemoryPlanRepo) Save(_ context.Context, plan *mealplan.MealPlan) (string, error) {
	if r.SaveErr != nil {
		return "", r.SaveErr
	}
	id := uuid.New().String()
	stored := *plan
	stored.ID = id
	r.Plans[id] = &stored
	return id, nil
}

func (r *MemoryPlanRepo) FindByID(_ context.Context, id string) (*mealplan.MealPlan, error) {
	plan, ok := r.Plans[id]
	if !ok {
		return nil, apperrors.NewMealPlanNotFoundError(id)
	}
	return plan, nil
}

func (r *MemoryPlanRepo) FindByUser(_ context.Context, userID string) ([]mealplan.MealPlan, error) {
	var out []mealplan.MealPlan
	for _, p := range r.Plans {
		if p.UserID == userID {
			out = append(out, *p)
		}
	}
	return out, nil
}

// MemoryListRepo is an in-memory outbound.ShoppingListRepository
type MemoryListRepo struct {
	Lists   map[string]*shopping.List
	SaveErr error
}

// NewMemoryListRepo creates an empty shopping list repo
func NewMemoryListRepo() *MemoryListRepo {
	return &MemoryListRepo{Lists: make(map[string]*shopping.List)}
}

func (r *MemoryListRepo) Save(_ context.Context, list *shopping.List) (string, error) {
	if r.SaveErr != nil {
		return "", r.SaveErr
	}
	list.ID = uuid.New().String()
	for i := range list.Items {
		if list.Items[i].ID == "" {
			list.Items[i].ID = uuid.New().String()
		}
		list.Items[i].ShoppingListID = list.ID
	}
	stored := *list
	r.Lists[list.ID] = &stored
	return list.ID, nil
}

func (r *MemoryListRepo) FindByID(_ context.Context, id string) (*shopping.List, error) {
	list, ok := r.Lists[id]
	if !ok {
		return nil, apperrors.NewShoppingListNotFoundError(id)
	}
	return list, nil
}

func (r *MemoryListRepo) UpdateItemPurchased(_ context.Context, listID, itemID string, purchased bool) (*shopping.Item, error) {
	list, ok := r.Lists[listID]
	if !ok {
		return nil, apperrors.NewShoppingListNotFoundError(listID)
	}
	for i := range list.Items {
		if list.Items[i].ID == itemID {
			list.Items[i].IsPurchased = purchased
			return &list.Items[i], nil
		}
	}
	return nil, apperrors.NewShoppingItemNotFoundError(itemID)
}
