package usda

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/hungryjack/backend/internal/infrastructure/config"
	"github.com/hungryjack/backend/internal/ports/outbound"
)

func newTestClient(t *testing.T, handler http.HandlerFunc) *Client {
	t.Helper()
	srv := httptest.NewServer(handler)
	t.Cleanup(srv.Close)

	client := NewClient(config.NutritionConfig{
		USDAAPIKey: "test-key",
		BaseURL:    srv.URL,
	}, zap.NewNop())
	require.NotNil(t, client)
	return client
}

func TestNewClientRequiresAPIKey(t *testing.T) {
	client := NewClient(config.NutritionConfig{}, zap.NewNop())
	assert.Nil(t, client, "no key means the lookup tier is unavailable")
}

func TestLookupMapsNutrients(t *testing.T) {
	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/foods/search", r.URL.Path)
		q := r.URL.Query()
		assert.Equal(t, "test-key", q.Get("api_key"))
		assert.Equal(t, "chicken breast", q.Get("query"))
		assert.Equal(t, []string{"Foundation", "SR Legacy"}, q["dataType"])
		assert.Equal(t, "1", q.Get("pageSize"))

		json.NewEncoder(w).Encode(map[string]interface{}{
			"foods": []map[string]interface{}{
				{
					"fdcId":       12345,
					"description": "Chicken, broiler, breast",
					"foodNutrients": []map[string]interface{}{
						{"nutrientId": 1008, "value": 165.0},
						{"nutrientId": 1003, "value": 31.0},
						{"nutrientId": 1005, "value": 0.0},
						{"nutrientId": 1004, "value": 3.6},
						{"nutrientId": 1093, "value": 74.0},
						{"nutrientId": 9999, "value": 42.0},
					},
				},
			},
		})
	})

	facts, err := client.Lookup(context.Background(), "chicken breast")

	require.NoError(t, err)
	assert.Equal(t, 165.0, facts.Calories)
	assert.Equal(t, 31.0, facts.ProteinGrams)
	assert.Equal(t, 3.6, facts.FatGrams)
	require.NotNil(t, facts.SodiumMg)
	assert.Equal(t, 74.0, *facts.SodiumMg)
	assert.Nil(t, facts.FiberGrams, "unreported nutrients stay nil")
}

func TestLookupNoMatch(t *testing.T) {
	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		json.NewEncoder(w).Encode(map[string]interface{}{"foods": []interface{}{}})
	})

	_, err := client.Lookup(context.Background(), "nonexistent food")

	assert.ErrorIs(t, err, outbound.ErrNoMatch)
}

func TestLookupAPIError(t *testing.T) {
	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "forbidden", http.StatusForbidden)
	})

	_, err := client.Lookup(context.Background(), "chicken")

	require.Error(t, err)
	assert.NotErrorIs(t, err, outbound.ErrNoMatch, "transport errors are not no-match")
}
