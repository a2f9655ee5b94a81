package openfoodfacts

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"net/url"
	"strconv"
	"strings"

	"github.com/vbonduro/mealai/internal/domain"
)

const DefaultBaseURL = "https://world.openfoodfacts.org/api/v2"

// placeholderName is used when a product has neither a name nor a brand.
const placeholderName = "Product"

const userAgent = "mealai/1.0 (+https://github.com/vbonduro/mealai)"

type response struct {
	Product *product `json:"product"`
}

type product struct {
	ProductName *string     `json:"product_name"`
	Brands      *string     `json:"brands"`
	Nutriments  *nutriments `json:"nutriments"`
	ServingSize string      `json:"serving_size"`
	ImageURL    string      `json:"image_url"`
}

type nutriments struct {
	Carbohydrates100g    quantity `json:"carbohydrates_100g"`
	Proteins100g         quantity `json:"proteins_100g"`
	Fat100g              quantity `json:"fat_100g"`
	CarbohydratesServing quantity `json:"carbohydrates_serving"`
	ProteinsServing      quantity `json:"proteins_serving"`
	FatServing           quantity `json:"fat_serving"`
}

// quantity accepts a JSON number or a numeric string; the database serves
// both. Any other value, including empty or unparsable strings, counts as
// absent.
type quantity struct {
	value float64
	valid bool
}

func (q *quantity) UnmarshalJSON(b []byte) error {
	var v any
	if err := json.Unmarshal(b, &v); err != nil {
		return err
	}
	switch v := v.(type) {
	case float64:
		q.value, q.valid = v, true
	case string:
		if f, err := strconv.ParseFloat(strings.TrimSpace(v), 64); err == nil {
			q.value, q.valid = f, true
		}
	}
	return nil
}

// or returns q when set, otherwise fallback, as a pointer (nil when neither is set).
func (q quantity) or(fallback quantity) *float64 {
	switch {
	case q.valid:
		return domain.Float(q.value)
	case fallback.valid:
		return domain.Float(fallback.value)
	default:
		return nil
	}
}

type Client struct {
	client  *http.Client
	baseURL string
}

func NewClient(baseURL string) *Client {
	if baseURL == "" {
		baseURL = DefaultBaseURL
	}
	return &Client{
		client:  &http.Client{},
		baseURL: strings.TrimSuffix(baseURL, "/"),
	}
}

// FetchByBarcode looks a product up by barcode. Per-serving values win over
// per-100g values field by field.
func (c *Client) FetchByBarcode(ctx context.Context, code string) (domain.BaseInfo, error) {
	reqURL := fmt.Sprintf("%s/product/%s.json", c.baseURL, url.PathEscape(code))
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, reqURL, nil)
	if err != nil {
		return domain.BaseInfo{}, fmt.Errorf("failed to create request: %w", err)
	}
	req.Header.Set("User-Agent", userAgent)

	resp, err := c.client.Do(req)
	if err != nil {
		return domain.BaseInfo{}, fmt.Errorf("failed to call openfoodfacts: %w", err)
	}
	defer func() {
		if err := resp.Body.Close(); err != nil {
			slog.Error("failed to close openfoodfacts response body", "error", err)
		}
	}()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		errBody, _ := io.ReadAll(resp.Body)
		return domain.BaseInfo{}, &domain.RequestError{Service: "openfoodfacts", StatusCode: resp.StatusCode, Body: string(errBody)}
	}

	var respBody response
	if err := json.NewDecoder(resp.Body).Decode(&respBody); err != nil {
		return domain.BaseInfo{}, fmt.Errorf("failed to decode response: %w", err)
	}
	if respBody.Product == nil {
		return domain.BaseInfo{}, fmt.Errorf("%w: barcode %s", domain.ErrNotFound, code)
	}

	return toBaseInfo(respBody.Product), nil
}

func toBaseInfo(p *product) domain.BaseInfo {
	info := domain.BaseInfo{Source: domain.SourceOpenFoodFacts, Name: productName(p)}
	if n := p.Nutriments; n != nil {
		info.Carbs = n.CarbohydratesServing.or(n.Carbohydrates100g)
		info.Protein = n.ProteinsServing.or(n.Proteins100g)
		info.Fat = n.FatServing.or(n.Fat100g)
	}
	return info
}

// productName joins name and brand, trimmed, falling back to a placeholder.
func productName(p *product) string {
	var parts []string
	for _, s := range []*string{p.ProductName, p.Brands} {
		if s != nil {
			parts = append(parts, *s)
		}
	}
	name := strings.TrimSpace(strings.Join(parts, " "))
	if name == "" {
		return placeholderName
	}
	return name
}
