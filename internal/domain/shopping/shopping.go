// Package shopping contains the shopping list domain model and the local
// ingredient categorization strategy.
package shopping

import "time"

// Item is a single purchasable line on a shopping list. Quantity is free
// text ("1/2 cup" is valid), not a typed number+unit pair. is_purchased is
// the only field mutated after creation.
type Item struct {
	ID             string    `json:"id,omitempty"`
	ShoppingListID string    `json:"shopping_list_id,omitempty"`
	ItemName       string    `json:"item_name"`
	Quantity       string    `json:"quantity"`
	Unit           string    `json:"unit,omitempty"`
	Category       string    `json:"category"`
	Note           string    `json:"note,omitempty"`
	IsPurchased    bool      `json:"is_purchased"`
	CreatedAt      time.Time `json:"created_at,omitempty"`
	UpdatedAt      time.Time `json:"updated_at,omitempty"`
}

// List aggregates categorized items for one meal plan
type List struct {
	ID         string    `json:"id,omitempty"`
	UserID     string    `json:"user_id"`
	MealPlanID string    `json:"meal_plan_id"`
	Items      []Item    `json:"items"`
	CreatedAt  time.Time `json:"created_at,omitempty"`
}
