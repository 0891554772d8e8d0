package openai

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"

	"github.com/hungryjack/backend/internal/domain/shopping"
	apperrors "github.com/hungryjack/backend/pkg/errors"
)

// The shopping list call runs cooler than plan generation: consolidation
// is a bookkeeping task, not a creative one.
const (
	shoppingListTemperature = 0.3
	shoppingListMaxTokens   = 2000
)

const shoppingListSystemPrompt = `You are a helpful assistant that organizes shopping lists. Your task is to take a list of ingredients from a meal plan and create a consolidated, categorized shopping list.

The shopping list should:
1. Combine duplicate ingredients and adjust quantities (e.g., "1 cup rice" and "2 cups rice" become "3 cups rice")
2. Organize ingredients by category using these standard grocery categories: Produce, Meat & Seafood, Dairy & Eggs, Bakery, Grains & Pasta, Canned Goods, Condiments & Sauces, Spices & Herbs, Nuts & Seeds, Beverages, Frozen Foods, Snacks, Other
3. Standardize units where possible (e.g., convert tablespoons to cups if there are many tablespoons)
4. Include a note field for any special instructions (e.g., "ripe for guacamole" for avocados)

Provide your response as a structured JSON object following this format:
{
  "categories": [
    {
      "name": "Produce",
      "items": [
        {
          "item_name": "Apples",
          "quantity": "4",
          "unit": "medium",
          "note": "Granny Smith preferred"
        }
      ]
    }
  ]
}

Only return the JSON object, no other text.`

type categorizedResponse struct {
	Categories []struct {
		Name  string `json:"name"`
		Items []struct {
			ItemName string `json:"item_name"`
			Quantity string `json:"quantity"`
			Unit     string `json:"unit"`
			Note     string `json:"note"`
		} `json:"items"`
	} `json:"categories"`
}

// CategorizeIngredients submits the flattened ingredient list for
// consolidation and flattens the nested category reply into shopping
// items. Errors are returned for the caller to apply its configured
// fallback; this adapter does not invent data.
func (c *Client) CategorizeIngredients(ctx context.Context, ingredients []string) ([]shopping.Item, error) {
	userPrompt := fmt.Sprintf(
		"Please create a shopping list for the following ingredients:\n\n%s\n\nPlease consolidate duplicate items, standardize units where appropriate, and organize them by category.",
		strings.Join(ingredients, "\n"),
	)

	content, err := c.callChatCompletion(ctx, shoppingListSystemPrompt, userPrompt, shoppingListTemperature, shoppingListMaxTokens)
	if err != nil {
		return nil, apperrors.NewGenerationError("shopping list call failed", err)
	}

	var parsed categorizedResponse
	if err := json.Unmarshal([]byte(content), &parsed); err != nil {
		jsonStr, exErr := extractJSON(content)
		if exErr != nil {
			return nil, apperrors.NewGenerationError("shopping list response unparseable", exErr)
		}
		if err := json.Unmarshal([]byte(jsonStr), &parsed); err != nil {
			return nil, apperrors.NewGenerationError("shopping list JSON invalid", err)
		}
	}

	var items []shopping.Item
	for _, category := range parsed.Categories {
		name := category.Name
		if name == "" {
			name = shopping.CategoryOther
		}
		for _, it := range category.Items {
			items = append(items, shopping.Item{
				ItemName:    it.ItemName,
				Quantity:    it.Quantity,
				Unit:        it.Unit,
				Category:    name,
				Note:        it.Note,
				IsPurchased: false,
			})
		}
	}

	return items, nil
}
