package usda

import (
	"context"
	"encoding/json"
	"log/slog"
	"net/http"
	"net/url"
	"strings"

	"golang.org/x/text/cases"
	"golang.org/x/text/language"

	"github.com/vbonduro/mealai/internal/domain"
)

const DefaultBaseURL = "https://api.nal.usda.gov/fdc/v1"

type searchResponse struct {
	Foods []food `json:"foods"`
}

type food struct {
	Description   *string    `json:"description"`
	FoodNutrients []nutrient `json:"foodNutrients"`
}

type nutrient struct {
	NutrientName *string  `json:"nutrientName"`
	Value        *float64 `json:"value"`
	UnitName     string   `json:"unitName"`
}

// Client searches FoodData Central. It never fails: every problem degrades to
// a BaseInfo carrying only the query as its name.
type Client struct {
	apiKey  string
	baseURL string
	client  *http.Client
	logger  *slog.Logger
}

func NewClient(apiKey, baseURL string, logger *slog.Logger) *Client {
	if baseURL == "" {
		baseURL = DefaultBaseURL
	}
	return &Client{
		apiKey:  apiKey,
		baseURL: strings.TrimSuffix(baseURL, "/"),
		client:  &http.Client{},
		logger:  logger,
	}
}

// FetchByQuery returns the macros of the first search hit for query.
func (c *Client) FetchByQuery(ctx context.Context, query string) domain.BaseInfo {
	fallback := domain.BaseInfo{Source: domain.SourceUSDA, Name: query}

	if strings.TrimSpace(c.apiKey) == "" {
		c.logger.Debug("usda search skipped, no api key")
		return fallback
	}

	params := url.Values{}
	params.Set("api_key", c.apiKey)
	params.Set("query", query)
	params.Set("pageSize", "1")

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.baseURL+"/foods/search?"+params.Encode(), nil)
	if err != nil {
		c.logger.Warn("usda request build failed", "error", err)
		return fallback
	}

	resp, err := c.client.Do(req)
	if err != nil {
		c.logger.Warn("usda search failed", "error", err)
		return fallback
	}
	defer func() {
		if err := resp.Body.Close(); err != nil {
			c.logger.Error("failed to close usda response body", "error", err)
		}
	}()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		c.logger.Warn("usda search returned non-2xx", "status", resp.StatusCode)
		return fallback
	}

	var body searchResponse
	if err := json.NewDecoder(resp.Body).Decode(&body); err != nil {
		c.logger.Warn("usda response not decodable", "error", err)
		return fallback
	}
	if len(body.Foods) == 0 {
		return fallback
	}

	return toBaseInfo(body.Foods[0], query)
}

func toBaseInfo(f food, query string) domain.BaseInfo {
	name := query
	if f.Description != nil {
		name = *f.Description
	}
	return domain.BaseInfo{
		Source:  domain.SourceUSDA,
		Name:    cases.Title(language.Und).String(name),
		Carbs:   pick(f.FoodNutrients, "carbohydrate"),
		Protein: pick(f.FoodNutrients, "protein"),
		Fat:     pick(f.FoodNutrients, "fat"),
	}
}

// pick returns the value of the first nutrient whose name contains key.
func pick(nutrients []nutrient, key string) *float64 {
	for _, n := range nutrients {
		if n.NutrientName != nil && strings.Contains(strings.ToLower(*n.NutrientName), key) {
			return n.Value
		}
	}
	return nil
}
