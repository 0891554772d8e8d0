package server

import (
	"bytes"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	appnutrition "github.com/hungryjack/backend/internal/application/nutrition"
	"github.com/hungryjack/backend/internal/application/planner"
	"github.com/hungryjack/backend/internal/infrastructure/ai/fixture"
	"github.com/hungryjack/backend/internal/infrastructure/config"
	"github.com/hungryjack/backend/internal/infrastructure/http/handlers"
	"github.com/hungryjack/backend/test/testutils"
)

type env struct {
	router   http.Handler
	profiles *testutils.MemoryProfileRepo
	plans    *testutils.MemoryPlanRepo
	lists    *testutils.MemoryListRepo
}

func newEnv(t *testing.T) *env {
	t.Helper()

	cfg := &config.Config{}
	cfg.App.Version = "test"
	cfg.Server.Port = 8080
	cfg.Server.RequestTimeout = 30 * time.Second
	cfg.Shopping = config.ShoppingConfig{Strategy: config.ShoppingStrategyLocal, FallbackToLocal: true}

	e := &env{
		profiles: testutils.NewMemoryProfileRepo(),
		plans:    testutils.NewMemoryPlanRepo(),
		lists:    testutils.NewMemoryListRepo(),
	}

	provider := fixture.NewProvider()
	plannerSvc := planner.NewService(provider, provider, e.profiles, e.plans, e.lists, cfg.Shopping, zap.NewNop())
	nutritionSvc := appnutrition.NewService(nil, zap.NewNop())

	h := handlers.NewHandlers(plannerSvc, nutritionSvc, cfg.App.Version, zap.NewNop())
	e.router = NewServer(cfg, h, zap.NewNop()).Router()
	return e
}

type apiEnvelope struct {
	Success bool            `json:"success"`
	Data    json.RawMessage `json:"data"`
	Error   string          `json:"error"`
	Message string          `json:"message"`
}

func (e *env) request(t *testing.T, method, path string, body interface{}) (*httptest.ResponseRecorder, apiEnvelope) {
	t.Helper()

	var reader *bytes.Buffer
	if body != nil {
		encoded, err := json.Marshal(body)
		require.NoError(t, err)
		reader = bytes.NewBuffer(encoded)
	} else {
		reader = bytes.NewBuffer(nil)
	}

	req := httptest.NewRequest(method, path, reader)
	req.Header.Set("Content-Type", "application/json")
	rec := httptest.NewRecorder()
	e.router.ServeHTTP(rec, req)

	var envelope apiEnvelope
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &envelope))
	return rec, envelope
}

func (e *env) seedProfile(t *testing.T) (userID, profileID string) {
	t.Helper()
	rec, envelope := e.request(t, http.MethodPost, "/api/dietary-profiles", map[string]interface{}{
		"user_id":   "user-1",
		"goal_type": "weight_loss",
	})
	require.Equal(t, http.StatusCreated, rec.Code)

	var created struct {
		ID     string `json:"id"`
		UserID string `json:"user_id"`
	}
	require.NoError(t, json.Unmarshal(envelope.Data, &created))
	return created.UserID, created.ID
}

func TestHealthCheck(t *testing.T) {
	e := newEnv(t)

	rec, envelope := e.request(t, http.MethodGet, "/health", nil)

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.True(t, envelope.Success)

	var data map[string]interface{}
	require.NoError(t, json.Unmarshal(envelope.Data, &data))
	assert.Equal(t, "healthy", data["status"])
}

func TestProfileEndpoints(t *testing.T) {
	e := newEnv(t)
	userID, profileID := e.seedProfile(t)

	t.Run("list", func(t *testing.T) {
		rec, envelope := e.request(t, http.MethodGet, "/api/dietary-profiles?user_id="+userID, nil)
		assert.Equal(t, http.StatusOK, rec.Code)
		assert.True(t, envelope.Success)
	})

	t.Run("get", func(t *testing.T) {
		rec, _ := e.request(t, http.MethodGet, fmt.Sprintf("/api/dietary-profiles/%s?user_id=%s", profileID, userID), nil)
		assert.Equal(t, http.StatusOK, rec.Code)
	})

	t.Run("get not owned", func(t *testing.T) {
		rec, envelope := e.request(t, http.MethodGet, fmt.Sprintf("/api/dietary-profiles/%s?user_id=intruder", profileID), nil)
		assert.Equal(t, http.StatusNotFound, rec.Code)
		assert.False(t, envelope.Success)
		assert.NotEmpty(t, envelope.Error)
	})

	t.Run("create invalid goal", func(t *testing.T) {
		rec, _ := e.request(t, http.MethodPost, "/api/dietary-profiles", map[string]interface{}{
			"user_id":   "user-1",
			"goal_type": "bulking",
		})
		assert.Equal(t, http.StatusBadRequest, rec.Code)
	})

	t.Run("create calorie target out of bounds", func(t *testing.T) {
		rec, _ := e.request(t, http.MethodPost, "/api/dietary-profiles", map[string]interface{}{
			"user_id":              "user-1",
			"goal_type":            "maintenance",
			"daily_calorie_target": 800,
		})
		assert.Equal(t, http.StatusBadRequest, rec.Code)
	})
}

func TestGenerateMealPlanEndpoint(t *testing.T) {
	e := newEnv(t)
	userID, profileID := e.seedProfile(t)

	rec, envelope := e.request(t, http.MethodPost, "/api/meal-plans/generate", map[string]interface{}{
		"user_id":            userID,
		"dietary_profile_id": profileID,
		"days":               3,
	})

	require.Equal(t, http.StatusCreated, rec.Code)
	require.True(t, envelope.Success)

	var data struct {
		MealPlan struct {
			ID   string `json:"id"`
			Days []struct {
				DayNumber int `json:"day_number"`
				Meals     []struct {
					Name string `json:"name"`
				} `json:"meals"`
			} `json:"days"`
		} `json:"meal_plan"`
		ShoppingListID string `json:"shopping_list_id"`
	}
	require.NoError(t, json.Unmarshal(envelope.Data, &data))

	assert.NotEmpty(t, data.MealPlan.ID)
	require.Len(t, data.MealPlan.Days, 3)
	for i, day := range data.MealPlan.Days {
		assert.Equal(t, i+1, day.DayNumber)
		assert.NotEmpty(t, day.Meals)
	}
	assert.NotEmpty(t, data.ShoppingListID, "include_shopping_list defaults to true")

	t.Run("plan is readable afterwards", func(t *testing.T) {
		rec, _ := e.request(t, http.MethodGet, "/api/meal-plans/"+data.MealPlan.ID, nil)
		assert.Equal(t, http.StatusOK, rec.Code)
	})

	t.Run("ingredients endpoint", func(t *testing.T) {
		rec, envelope := e.request(t, http.MethodGet, "/api/meal-plans/"+data.MealPlan.ID+"/ingredients", nil)
		assert.Equal(t, http.StatusOK, rec.Code)

		var payload struct {
			Ingredients []string `json:"ingredients"`
		}
		require.NoError(t, json.Unmarshal(envelope.Data, &payload))
		assert.NotEmpty(t, payload.Ingredients)
	})

	t.Run("list plans", func(t *testing.T) {
		rec, _ := e.request(t, http.MethodGet, "/api/meal-plans?user_id="+userID, nil)
		assert.Equal(t, http.StatusOK, rec.Code)
	})
}

func TestGenerateMealPlanValidation(t *testing.T) {
	e := newEnv(t)
	userID, profileID := e.seedProfile(t)

	t.Run("too many days", func(t *testing.T) {
		rec, _ := e.request(t, http.MethodPost, "/api/meal-plans/generate", map[string]interface{}{
			"user_id":            userID,
			"dietary_profile_id": profileID,
			"days":               14,
		})
		assert.Equal(t, http.StatusBadRequest, rec.Code)
	})

	t.Run("unknown profile", func(t *testing.T) {
		rec, _ := e.request(t, http.MethodPost, "/api/meal-plans/generate", map[string]interface{}{
			"user_id":            userID,
			"dietary_profile_id": "missing",
		})
		assert.Equal(t, http.StatusNotFound, rec.Code)
	})

	t.Run("malformed body", func(t *testing.T) {
		req := httptest.NewRequest(http.MethodPost, "/api/meal-plans/generate", bytes.NewBufferString("{not json"))
		rec := httptest.NewRecorder()
		e.router.ServeHTTP(rec, req)
		assert.Equal(t, http.StatusBadRequest, rec.Code)
	})
}

func TestMealPlanNotFound(t *testing.T) {
	e := newEnv(t)

	rec, envelope := e.request(t, http.MethodGet, "/api/meal-plans/unknown-id", nil)

	assert.Equal(t, http.StatusNotFound, rec.Code)
	assert.False(t, envelope.Success)
}

func TestShoppingListEndpoints(t *testing.T) {
	e := newEnv(t)
	plan := testutils.BuildPlan("user-1", "profile-1", 2)
	e.plans.Seed(plan)

	rec, envelope := e.request(t, http.MethodPost, "/api/shopping-lists/generate", map[string]interface{}{
		"user_id":      "user-1",
		"meal_plan_id": plan.ID,
	})
	require.Equal(t, http.StatusCreated, rec.Code)

	var list struct {
		ID    string `json:"id"`
		Items []struct {
			ID       string `json:"id"`
			Category string `json:"category"`
		} `json:"items"`
	}
	require.NoError(t, json.Unmarshal(envelope.Data, &list))
	require.NotEmpty(t, list.ID)
	require.NotEmpty(t, list.Items)

	t.Run("get list", func(t *testing.T) {
		rec, _ := e.request(t, http.MethodGet, "/api/shopping-lists/"+list.ID, nil)
		assert.Equal(t, http.StatusOK, rec.Code)
	})

	t.Run("mark item purchased", func(t *testing.T) {
		path := fmt.Sprintf("/api/shopping-lists/%s/items/%s", list.ID, list.Items[0].ID)
		rec, envelope := e.request(t, http.MethodPut, path, map[string]interface{}{"is_purchased": true})
		require.Equal(t, http.StatusOK, rec.Code)

		var item struct {
			IsPurchased bool `json:"is_purchased"`
		}
		require.NoError(t, json.Unmarshal(envelope.Data, &item))
		assert.True(t, item.IsPurchased)
	})

	t.Run("item under wrong list", func(t *testing.T) {
		path := fmt.Sprintf("/api/shopping-lists/%s/items/%s", "wrong-list", list.Items[0].ID)
		rec, _ := e.request(t, http.MethodPut, path, map[string]interface{}{"is_purchased": true})
		assert.Equal(t, http.StatusNotFound, rec.Code)
	})

	t.Run("generate for unknown plan", func(t *testing.T) {
		rec, _ := e.request(t, http.MethodPost, "/api/shopping-lists/generate", map[string]interface{}{
			"user_id":      "user-1",
			"meal_plan_id": "missing",
		})
		assert.Equal(t, http.StatusNotFound, rec.Code)
	})
}

func TestNutritionEndpoints(t *testing.T) {
	e := newEnv(t)

	t.Run("estimate single food", func(t *testing.T) {
		rec, envelope := e.request(t, http.MethodGet, "/api/nutrition/chicken%20breast", nil)
		require.Equal(t, http.StatusOK, rec.Code)

		var data struct {
			FoodName  string `json:"food_name"`
			Nutrition struct {
				Calories float64 `json:"calories"`
			} `json:"nutrition"`
		}
		require.NoError(t, json.Unmarshal(envelope.Data, &data))
		assert.Equal(t, "chicken breast", data.FoodName)
		assert.Equal(t, 250.0, data.Nutrition.Calories)
	})

	t.Run("calculate from ingredients", func(t *testing.T) {
		rec, envelope := e.request(t, http.MethodPost, "/api/nutrition/calculate", map[string]interface{}{
			"ingredients": []string{"grilled chicken", "spinach"},
		})
		require.Equal(t, http.StatusOK, rec.Code)

		var facts struct {
			Calories float64 `json:"calories"`
		}
		require.NoError(t, json.Unmarshal(envelope.Data, &facts))
		assert.Equal(t, 300.0, facts.Calories)
	})

	t.Run("hint wins", func(t *testing.T) {
		rec, envelope := e.request(t, http.MethodPost, "/api/nutrition/calculate", map[string]interface{}{
			"ingredients":    []string{"grilled chicken"},
			"nutrition_hint": map[string]float64{"calories": 777},
		})
		require.Equal(t, http.StatusOK, rec.Code)

		var facts struct {
			Calories float64 `json:"calories"`
		}
		require.NoError(t, json.Unmarshal(envelope.Data, &facts))
		assert.Equal(t, 777.0, facts.Calories)
	})

	t.Run("empty request rejected", func(t *testing.T) {
		rec, _ := e.request(t, http.MethodPost, "/api/nutrition/calculate", map[string]interface{}{})
		assert.Equal(t, http.StatusBadRequest, rec.Code)
	})
}
