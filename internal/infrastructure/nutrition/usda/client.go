// Package usda provides the optional nutrition lookup against the USDA
// FoodData Central API. The estimator consults it between the caller hint
// and the keyword fallback tiers.
package usda

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"go.uber.org/zap"

	"github.com/hungryjack/backend/internal/domain/nutrition"
	"github.com/hungryjack/backend/internal/infrastructure/config"
	"github.com/hungryjack/backend/internal/ports/outbound"
)

// FoodData Central nutrient ids for the fields we map
const (
	nutrientEnergy      = 1008
	nutrientProtein     = 1003
	nutrientCarbs       = 1005
	nutrientFat         = 1004
	nutrientFiber       = 1079
	nutrientSugar       = 2000
	nutrientSodium      = 1093
	nutrientCholesterol = 1253
)

// Client implements outbound.NutritionLookup against FoodData Central
type Client struct {
	apiKey  string
	baseURL string
	client  *http.Client
	logger  *zap.Logger
}

// NewClient creates a FoodData Central client. Returns nil when no API key
// is configured: the estimator treats a nil lookup as "tier not available".
func NewClient(cfg config.NutritionConfig, logger *zap.Logger) *Client {
	if cfg.USDAAPIKey == "" {
		return nil
	}
	timeout := cfg.Timeout
	if timeout == 0 {
		timeout = 10 * time.Second
	}
	return &Client{
		apiKey:  cfg.USDAAPIKey,
		baseURL: strings.TrimRight(cfg.BaseURL, "/"),
		client:  &http.Client{Timeout: timeout},
		logger:  logger,
	}
}

type searchResponse struct {
	Foods []struct {
		FdcID         int    `json:"fdcId"`
		Description   string `json:"description"`
		FoodNutrients []struct {
			NutrientID int     `json:"nutrientId"`
			Value      float64 `json:"value"`
		} `json:"foodNutrients"`
	} `json:"foods"`
}

// Lookup searches by food name and maps the first match's nutrients onto
// nutrition facts. Returns outbound.ErrNoMatch when the search is empty.
func (c *Client) Lookup(ctx context.Context, foodName string) (*nutrition.Facts, error) {
	params := url.Values{}
	params.Set("api_key", c.apiKey)
	params.Set("query", foodName)
	params.Add("dataType", "Foundation")
	params.Add("dataType", "SR Legacy")
	params.Set("pageSize", "1")

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.baseURL+"/foods/search?"+params.Encode(), nil)
	if err != nil {
		return nil, fmt.Errorf("failed to create request: %w", err)
	}

	resp, err := c.client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("USDA search failed: %w", err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("failed to read response: %w", err)
	}
	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("USDA API error %d: %s", resp.StatusCode, string(body))
	}

	var search searchResponse
	if err := json.Unmarshal(body, &search); err != nil {
		return nil, fmt.Errorf("failed to unmarshal search response: %w", err)
	}
	if len(search.Foods) == 0 {
		return nil, outbound.ErrNoMatch
	}

	food := search.Foods[0]
	c.logger.Debug("USDA match",
		zap.String("query", foodName),
		zap.Int("fdc_id", food.FdcID),
		zap.String("description", food.Description),
	)

	facts := &nutrition.Facts{}
	for _, n := range food.FoodNutrients {
		v := n.Value
		switch n.NutrientID {
		case nutrientEnergy:
			facts.Calories = v
		case nutrientProtein:
			facts.ProteinGrams = v
		case nutrientCarbs:
			facts.CarbsGrams = v
		case nutrientFat:
			facts.FatGrams = v
		case nutrientFiber:
			facts.FiberGrams = &v
		case nutrientSugar:
			facts.SugarGrams = &v
		case nutrientSodium:
			facts.SodiumMg = &v
		case nutrientCholesterol:
			facts.CholesterolMg = &v
		}
	}
	return facts, nil
}
