// Package supabase implements the persistence mapper against a Supabase
// REST table store. Each repository translates its object graph into
// per-row insert/select/patch calls; there is no server-side transaction,
// so multi-row writes compensate partial failures with best-effort deletes.
package supabase

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"go.uber.org/zap"

	"github.com/hungryjack/backend/internal/infrastructure/config"
)

// Filter is a single equality predicate on a table column
type Filter struct {
	Column string
	Value  string
}

// Eq builds an equality filter
func Eq(column, value string) Filter {
	return Filter{Column: column, Value: value}
}

// Client is a thin wrapper over the Supabase PostgREST interface
type Client struct {
	baseURL    string
	serviceKey string
	client     *http.Client
	logger     *zap.Logger
}

// NewClient creates a Supabase REST client
func NewClient(cfg config.SupabaseConfig, logger *zap.Logger) *Client {
	timeout := cfg.Timeout
	if timeout == 0 {
		timeout = 15 * time.Second
	}
	return &Client{
		baseURL:    strings.TrimRight(cfg.URL, "/"),
		serviceKey: cfg.ServiceKey,
		client:     &http.Client{Timeout: timeout},
		logger:     logger,
	}
}

func (c *Client) tableURL(table string, filters []Filter, order string) string {
	params := url.Values{}
	for _, f := range filters {
		params.Set(f.Column, "eq."+f.Value)
	}
	if order != "" {
		params.Set("order", order)
	}
	u := c.baseURL + "/rest/v1/" + table
	if len(params) > 0 {
		u += "?" + params.Encode()
	}
	return u
}

func (c *Client) do(ctx context.Context, method, rawURL string, payload interface{}) ([]byte, int, error) {
	var body io.Reader
	if payload != nil {
		jsonBody, err := json.Marshal(payload)
		if err != nil {
			return nil, 0, fmt.Errorf("failed to marshal payload: %w", err)
		}
		body = bytes.NewBuffer(jsonBody)
	}

	req, err := http.NewRequestWithContext(ctx, method, rawURL, body)
	if err != nil {
		return nil, 0, fmt.Errorf("failed to create request: %w", err)
	}
	req.Header.Set("apikey", c.serviceKey)
	req.Header.Set("Authorization", "Bearer "+c.serviceKey)
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Prefer", "return=representation")

	resp, err := c.client.Do(req)
	if err != nil {
		return nil, 0, fmt.Errorf("store request failed: %w", err)
	}
	defer resp.Body.Close()

	respBody, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, resp.StatusCode, fmt.Errorf("failed to read response: %w", err)
	}
	return respBody, resp.StatusCode, nil
}

// Insert creates one row and decodes the returned representation into out
// (a pointer to a slice) when out is non-nil
func (c *Client) Insert(ctx context.Context, table string, payload, out interface{}) error {
	body, status, err := c.do(ctx, http.MethodPost, c.tableURL(table, nil, ""), payload)
	if err != nil {
		return err
	}
	if status != http.StatusCreated && status != http.StatusOK {
		return fmt.Errorf("insert into %s returned %d: %s", table, status, string(body))
	}
	if out != nil {
		if err := json.Unmarshal(body, out); err != nil {
			return fmt.Errorf("failed to decode %s insert response: %w", table, err)
		}
	}
	return nil
}

// Select reads rows matching the filters into out (a pointer to a slice)
func (c *Client) Select(ctx context.Context, table string, filters []Filter, order string, out interface{}) error {
	body, status, err := c.do(ctx, http.MethodGet, c.tableURL(table, filters, order), nil)
	if err != nil {
		return err
	}
	if status != http.StatusOK {
		return fmt.Errorf("select from %s returned %d: %s", table, status, string(body))
	}
	if err := json.Unmarshal(body, out); err != nil {
		return fmt.Errorf("failed to decode %s rows: %w", table, err)
	}
	return nil
}

// Patch updates rows matching the filters and decodes the returned
// representation into out when out is non-nil
func (c *Client) Patch(ctx context.Context, table string, filters []Filter, payload, out interface{}) error {
	body, status, err := c.do(ctx, http.MethodPatch, c.tableURL(table, filters, ""), payload)
	if err != nil {
		return err
	}
	if status != http.StatusOK && status != http.StatusNoContent {
		return fmt.Errorf("patch on %s returned %d: %s", table, status, string(body))
	}
	if out != nil && status == http.StatusOK {
		if err := json.Unmarshal(body, out); err != nil {
			return fmt.Errorf("failed to decode %s patch response: %w", table, err)
		}
	}
	return nil
}

// Delete removes rows matching the filters. Used only for saga
// compensation; the modeled flows never hard-delete user data.
func (c *Client) Delete(ctx context.Context, table string, filters []Filter) error {
	body, status, err := c.do(ctx, http.MethodDelete, c.tableURL(table, filters, ""), nil)
	if err != nil {
		return err
	}
	if status != http.StatusOK && status != http.StatusNoContent {
		return fmt.Errorf("delete from %s returned %d: %s", table, status, string(body))
	}
	return nil
}
