package openai

import (
	"context"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	apperrors "github.com/hungryjack/backend/pkg/errors"
)

const categorizedJSON = `{
  "categories": [
    {
      "name": "Produce",
      "items": [
        {"item_name": "Spinach", "quantity": "4", "unit": "cups"},
        {"item_name": "Tomatoes", "quantity": "2", "unit": "", "note": "ripe"}
      ]
    },
    {
      "name": "Grains & Pasta",
      "items": [
        {"item_name": "Rice", "quantity": "3", "unit": "cups"}
      ]
    },
    {
      "name": "",
      "items": [
        {"item_name": "Mystery item"}
      ]
    }
  ]
}`

func TestCategorizeIngredientsFlattensCategories(t *testing.T) {
	client := newTestClient(t, completionWith(t, categorizedJSON))

	items, err := client.CategorizeIngredients(context.Background(), []string{
		"2 cups spinach", "2 cups spinach", "1 cup rice", "2 cups rice", "2 tomatoes",
	})

	require.NoError(t, err)
	require.Len(t, items, 4)

	assert.Equal(t, "Spinach", items[0].ItemName)
	assert.Equal(t, "Produce", items[0].Category)
	assert.Equal(t, "cups", items[0].Unit)
	assert.Equal(t, "ripe", items[1].Note)
	assert.Equal(t, "Grains & Pasta", items[2].Category)
	assert.Equal(t, "Other", items[3].Category, "unnamed categories fall back to Other")

	for _, item := range items {
		assert.False(t, item.IsPurchased)
	}
}

func TestCategorizeIngredientsWrappedJSON(t *testing.T) {
	client := newTestClient(t, completionWith(t, "Sure!\n"+categorizedJSON+"\nDone."))

	items, err := client.CategorizeIngredients(context.Background(), []string{"1 cup rice"})

	require.NoError(t, err)
	assert.Len(t, items, 4)
}

func TestCategorizeIngredientsAPIErrorSurfaces(t *testing.T) {
	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "bad gateway", http.StatusBadGateway)
	})

	_, err := client.CategorizeIngredients(context.Background(), []string{"1 cup rice"})

	require.Error(t, err, "the caller applies the configured fallback, not the adapter")
	appErr, ok := apperrors.AsAppError(err)
	require.True(t, ok)
	assert.Equal(t, apperrors.CodeGenerationFailed, appErr.Code)
}

func TestCategorizeIngredientsGarbageContent(t *testing.T) {
	client := newTestClient(t, completionWith(t, "no json here"))

	_, err := client.CategorizeIngredients(context.Background(), []string{"1 cup rice"})

	require.Error(t, err)
	assert.Equal(t, apperrors.CodeGenerationFailed, err.(*apperrors.AppError).Code)
}
