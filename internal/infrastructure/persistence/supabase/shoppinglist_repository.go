package supabase

import (
	"context"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/hungryjack/backend/internal/domain/shopping"
	apperrors "github.com/hungryjack/backend/pkg/errors"
)

const (
	shoppingListsTable = "shopping_lists"
	shoppingItemsTable = "shopping_list_items"
)

type shoppingListRow struct {
	ID         string    `json:"id"`
	UserID     string    `json:"user_id"`
	MealPlanID string    `json:"meal_plan_id"`
	CreatedAt  time.Time `json:"created_at"`
}

// ShoppingListRepository persists shopping lists and their items
type ShoppingListRepository struct {
	db     *Client
	logger *zap.Logger
}

// NewShoppingListRepository creates a shopping list repository
func NewShoppingListRepository(db *Client, logger *zap.Logger) *ShoppingListRepository {
	return &ShoppingListRepository{db: db, logger: logger}
}

// Save writes the list row then one row per item, compensating a partial
// failure with best-effort deletes
func (r *ShoppingListRepository) Save(ctx context.Context, list *shopping.List) (string, error) {
	listID := uuid.New().String()
	now := time.Now().UTC()
	row := shoppingListRow{
		ID:         listID,
		UserID:     list.UserID,
		MealPlanID: list.MealPlanID,
		CreatedAt:  now,
	}
	if err := r.db.Insert(ctx, shoppingListsTable, row, nil); err != nil {
		return "", apperrors.NewDatabaseError("create shopping list", err)
	}

	for i := range list.Items {
		item := &list.Items[i]
		item.ID = uuid.New().String()
		item.ShoppingListID = listID
		item.CreatedAt = now
		item.UpdatedAt = now
		if err := r.db.Insert(ctx, shoppingItemsTable, item, nil); err != nil {
			r.compensate(ctx, listID)
			return "", apperrors.NewDatabaseError("create shopping list item", err)
		}
	}

	list.ID = listID
	return listID, nil
}

func (r *ShoppingListRepository) compensate(ctx context.Context, listID string) {
	if err := r.db.Delete(ctx, shoppingItemsTable, []Filter{Eq("shopping_list_id", listID)}); err != nil {
		r.logger.Warn("cleanup of shopping list items failed", zap.String("shopping_list_id", listID), zap.Error(err))
	}
	if err := r.db.Delete(ctx, shoppingListsTable, []Filter{Eq("id", listID)}); err != nil {
		r.logger.Warn("cleanup of shopping list failed", zap.String("shopping_list_id", listID), zap.Error(err))
	}
}

// FindByID returns a list with its items ordered by category
func (r *ShoppingListRepository) FindByID(ctx context.Context, id string) (*shopping.List, error) {
	var rows []shoppingListRow
	if err := r.db.Select(ctx, shoppingListsTable, []Filter{Eq("id", id)}, "", &rows); err != nil {
		return nil, apperrors.NewDatabaseError("get shopping list", err)
	}
	if len(rows) == 0 {
		return nil, apperrors.NewShoppingListNotFoundError(id)
	}
	row := rows[0]

	var items []shopping.Item
	if err := r.db.Select(ctx, shoppingItemsTable, []Filter{Eq("shopping_list_id", id)}, "category.asc", &items); err != nil {
		return nil, apperrors.NewDatabaseError("get shopping list items", err)
	}

	return &shopping.List{
		ID:         row.ID,
		UserID:     row.UserID,
		MealPlanID: row.MealPlanID,
		Items:      items,
		CreatedAt:  row.CreatedAt,
	}, nil
}

// UpdateItemPurchased patches one item scoped by both item id and parent
// list id. An item id that exists under a different list reads as not
// found and the item is left untouched.
func (r *ShoppingListRepository) UpdateItemPurchased(ctx context.Context, listID, itemID string, purchased bool) (*shopping.Item, error) {
	payload := map[string]interface{}{
		"is_purchased": purchased,
		"updated_at":   time.Now().UTC(),
	}
	filters := []Filter{Eq("id", itemID), Eq("shopping_list_id", listID)}

	var updated []shopping.Item
	if err := r.db.Patch(ctx, shoppingItemsTable, filters, payload, &updated); err != nil {
		return nil, apperrors.NewDatabaseError("update shopping list item", err)
	}
	if len(updated) == 0 {
		return nil, apperrors.NewShoppingItemNotFoundError(itemID)
	}
	return &updated[0], nil
}
