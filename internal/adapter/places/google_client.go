package places

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"strconv"

	"github.com/rl1809/shopping-assistant/internal/core/domain"
)

const (
	DefaultURL = "https://places.googleapis.com/v1/places:searchNearby"
	fieldMask  = "places.displayName,places.formattedAddress,places.rating"
)

var includedTypes = []string{"shopping_mall", "supermarket", "department_store"}

type latLng struct {
	Lat float64 `json:"lat"`
	Lng float64 `json:"lng"`
}

type searchNearbyRequest struct {
	LocationBias struct {
		Circle struct {
			Center latLng `json:"center"`
			Radius string `json:"radius"`
		} `json:"circle"`
	} `json:"locationBias"`
	IncludedTypes []string `json:"includedTypes"`
}

type searchNearbyResponse struct {
	Places []struct {
		DisplayName struct {
			Text string `json:"text"`
		} `json:"displayName"`
		FormattedAddress string   `json:"formattedAddress"`
		Rating           *float64 `json:"rating"`
	} `json:"places"`
}

// GoogleClient calls the Places API (New) nearby search endpoint.
type GoogleClient struct {
	url        string
	apiKey     string
	httpClient *http.Client
}

func NewGoogleClient(url, apiKey string, httpClient *http.Client) *GoogleClient {
	if url == "" {
		url = DefaultURL
	}
	if httpClient == nil {
		httpClient = http.DefaultClient
	}
	return &GoogleClient{url: url, apiKey: apiKey, httpClient: httpClient}
}

func (c *GoogleClient) SearchNearby(ctx context.Context, center domain.Coordinate, radiusMeters float64) ([]domain.Store, error) {
	var body searchNearbyRequest
	body.LocationBias.Circle.Center = latLng{Lat: center.Lat, Lng: center.Lng}
	body.LocationBias.Circle.Radius = strconv.FormatFloat(radiusMeters, 'f', -1, 64)
	body.IncludedTypes = includedTypes

	payload, err := json.Marshal(body)
	if err != nil {
		return nil, fmt.Errorf("encode nearby request: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.url, bytes.NewReader(payload))
	if err != nil {
		return nil, fmt.Errorf("build nearby request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("X-Goog-Api-Key", c.apiKey)
	req.Header.Set("X-Goog-FieldMask", fieldMask)

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("search nearby: %w: %v", domain.ErrNetworkFailure, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("search nearby: %w: status %d", domain.ErrNetworkFailure, resp.StatusCode)
	}

	var out searchNearbyResponse
	if err := json.NewDecoder(resp.Body).Decode(&out); err != nil {
		return nil, fmt.Errorf("decode nearby response: %w: %v", domain.ErrNetworkFailure, err)
	}

	stores := make([]domain.Store, 0, len(out.Places))
	for _, p := range out.Places {
		stores = append(stores, domain.Store{
			DisplayName: p.DisplayName.Text,
			Address:     p.FormattedAddress,
			Rating:      p.Rating,
		})
	}
	return stores, nil
}
