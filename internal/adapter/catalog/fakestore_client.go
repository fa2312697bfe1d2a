package catalog

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"strings"

	"github.com/shopspring/decimal"

	"github.com/rl1809/shopping-assistant/internal/core/domain"
)

const (
	DefaultBaseURL = "https://fakestoreapi.com"
	storeName      = "Fake Store"
)

type fakeStoreProduct struct {
	ID          int64           `json:"id"`
	Title       string          `json:"title"`
	Price       decimal.Decimal `json:"price"`
	Description string          `json:"description"`
	Image       string          `json:"image"`
	Rating      struct {
		Rate float64 `json:"rate"`
	} `json:"rating"`
}

// FakeStoreClient reads the product catalog from a fakestoreapi.com compatible API.
type FakeStoreClient struct {
	baseURL    string
	httpClient *http.Client
}

func NewFakeStoreClient(baseURL string, httpClient *http.Client) *FakeStoreClient {
	if baseURL == "" {
		baseURL = DefaultBaseURL
	}
	if httpClient == nil {
		httpClient = http.DefaultClient
	}
	return &FakeStoreClient{
		baseURL:    strings.TrimRight(baseURL, "/"),
		httpClient: httpClient,
	}
}

func (c *FakeStoreClient) FetchCatalog(ctx context.Context) ([]domain.Product, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.baseURL+"/products", nil)
	if err != nil {
		return nil, fmt.Errorf("build catalog request: %w", err)
	}
	req.Header.Set("Accept", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("fetch catalog: %w: %v", domain.ErrNetworkFailure, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("fetch catalog: %w: status %d", domain.ErrNetworkFailure, resp.StatusCode)
	}

	var items []fakeStoreProduct
	if err := json.NewDecoder(resp.Body).Decode(&items); err != nil {
		return nil, fmt.Errorf("decode catalog: %w: %v", domain.ErrNetworkFailure, err)
	}

	products := make([]domain.Product, 0, len(items))
	for _, item := range items {
		products = append(products, domain.Product{
			ID:          item.ID,
			Name:        item.Title,
			Price:       item.Price,
			Store:       storeName,
			Rating:      item.Rating.Rate,
			Image:       item.Image,
			Description: item.Description,
		})
	}
	return products, nil
}
