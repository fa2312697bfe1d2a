package handler

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/rl1809/shopping-assistant/internal/adapter/storage"
	"github.com/rl1809/shopping-assistant/internal/core/domain"
	"github.com/rl1809/shopping-assistant/internal/core/service"
)

type stubCatalog struct{ products []domain.Product }

func (s stubCatalog) FetchCatalog(ctx context.Context) ([]domain.Product, error) {
	return s.products, nil
}

type stubPlaces struct {
	stores []domain.Store
	err    error
}

func (s stubPlaces) SearchNearby(ctx context.Context, center domain.Coordinate, radiusMeters float64) ([]domain.Store, error) {
	return s.stores, s.err
}

func newTestSession(t *testing.T, places stubPlaces) *service.Session {
	t.Helper()
	catalog := stubCatalog{products: []domain.Product{
		{ID: 1, Name: "Backpack", Price: decimal.RequireFromString("10.00"), Store: "Fake Store", Rating: 3.9, Description: "bag"},
		{ID: 2, Name: "Shirt", Price: decimal.RequireFromString("22.30"), Store: "Fake Store", Rating: 4.1},
	}}
	s := service.NewSession(
		service.NewCatalogService(catalog, nil),
		service.NewListService(storage.NewMemoryStore(0), nil),
		service.NewAlertService(nil),
		service.NewStoreLocator(places, nil),
		nil,
	)
	s.Start(context.Background())
	return s
}

type apiResponse struct {
	Success  bool            `json:"success"`
	Message  string          `json:"message"`
	Data     json.RawMessage `json:"data"`
	Degraded bool            `json:"degraded"`
}

func do(t *testing.T, h http.Handler, method, path, body string) (*httptest.ResponseRecorder, apiResponse) {
	t.Helper()
	req := httptest.NewRequest(method, path, strings.NewReader(body))
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, req)

	var resp apiResponse
	if path != "/health" {
		require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	}
	return rec, resp
}

func TestHTTP_ListFlow(t *testing.T) {
	session := newTestSession(t, stubPlaces{})
	h := NewHTTPHandler(session, nil).Routes()

	rec, resp := do(t, h, http.MethodPost, "/api/lists/items", `{"product_id":1}`)
	assert.Equal(t, http.StatusConflict, rec.Code)
	assert.False(t, resp.Success)

	rec, _ = do(t, h, http.MethodPost, "/api/lists", `{"name":"   "}`)
	assert.Equal(t, http.StatusBadRequest, rec.Code)

	rec, resp = do(t, h, http.MethodPost, "/api/lists", `{"name":" Groceries "}`)
	require.Equal(t, http.StatusCreated, rec.Code)
	assert.True(t, resp.Success)

	do(t, h, http.MethodPost, "/api/lists/items", `{"product_id":1}`)
	do(t, h, http.MethodPost, "/api/lists/items", `{"product_id":99}`)

	_, resp = do(t, h, http.MethodGet, "/api/lists", "")
	var lists []listView
	require.NoError(t, json.Unmarshal(resp.Data, &lists))
	require.Len(t, lists, 1)
	assert.Equal(t, "Groceries", lists[0].Name)
	require.Len(t, lists[0].Items, 1, "unknown product ids are skipped")
	assert.Equal(t, "10.00", lists[0].Items[0].Price)

	raw := session.Lists.Lists()[0]
	assert.Equal(t, []int64{1, 99}, raw.Items)

	path := "/api/lists/" + itoa(raw.ID) + "/items/1"
	rec, resp = do(t, h, http.MethodDelete, path, "")
	assert.Equal(t, http.StatusOK, rec.Code)
	var after []listView
	require.NoError(t, json.Unmarshal(resp.Data, &after))
	assert.Empty(t, after[0].Items)

	rec, _ = do(t, h, http.MethodDelete, "/api/lists/abc/items/1", "")
	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestHTTP_AddItemToExplicitList(t *testing.T) {
	session := newTestSession(t, stubPlaces{})
	h := NewHTTPHandler(session, nil).Routes()

	do(t, h, http.MethodPost, "/api/lists", `{"name":"First"}`)
	do(t, h, http.MethodPost, "/api/lists", `{"name":"Second"}`)
	second := session.Lists.Lists()[1]

	rec, _ := do(t, h, http.MethodPost, "/api/lists/items", `{"product_id":2,"list_id":`+itoa(second.ID)+`}`)
	require.Equal(t, http.StatusOK, rec.Code)

	got, _ := session.Lists.Get(second.ID)
	assert.Equal(t, []int64{2}, got.Items)

	rec, _ = do(t, h, http.MethodPost, "/api/lists/items", `{"product_id":2,"list_id":1}`)
	assert.Equal(t, http.StatusNotFound, rec.Code)
}

func TestHTTP_Alerts(t *testing.T) {
	h := NewHTTPHandler(newTestSession(t, stubPlaces{}), nil).Routes()

	_, resp := do(t, h, http.MethodGet, "/api/alerts", "")
	var alerts []alertView
	require.NoError(t, json.Unmarshal(resp.Data, &alerts))
	require.Len(t, alerts, 2)
	assert.Equal(t, "9.00", alerts[0].Threshold)
	assert.Equal(t, "11.00", alerts[0].PreviousPrice)
	assert.Equal(t, "1.00", alerts[0].Change)
	assert.Equal(t, "decreased", alerts[0].Trend)
	assert.Equal(t, "↓", alerts[0].Arrow)

	rec, _ := do(t, h, http.MethodPost, "/api/alerts/1/refresh", "")
	assert.Equal(t, http.StatusOK, rec.Code)

	rec, _ = do(t, h, http.MethodPost, "/api/alerts/42/refresh", "")
	assert.Equal(t, http.StatusNotFound, rec.Code)
}

func TestHTTP_Products(t *testing.T) {
	h := NewHTTPHandler(newTestSession(t, stubPlaces{}), nil).Routes()

	_, resp := do(t, h, http.MethodGet, "/api/products", "")
	var products []productView
	require.NoError(t, json.Unmarshal(resp.Data, &products))
	require.Len(t, products, 2)
	assert.Equal(t, "22.30", products[1].Price)
	assert.Equal(t, "bag...", products[0].ShortDescription)
}

func TestHTTP_Stores(t *testing.T) {
	rating := 4.0
	h := NewHTTPHandler(newTestSession(t, stubPlaces{stores: []domain.Store{{DisplayName: "Mart", Rating: &rating}}}), nil).Routes()

	rec, _ := do(t, h, http.MethodGet, "/api/stores?radius_km=5", "")
	assert.Equal(t, http.StatusPreconditionFailed, rec.Code)

	rec, _ = do(t, h, http.MethodPut, "/api/location", `{"lat":200,"lng":0}`)
	assert.Equal(t, http.StatusPreconditionFailed, rec.Code)

	rec, _ = do(t, h, http.MethodPut, "/api/location", `{"lat":0}`)
	assert.Equal(t, http.StatusBadRequest, rec.Code)

	rec, _ = do(t, h, http.MethodPut, "/api/location", `{"lat":40.7,"lng":-74}`)
	require.Equal(t, http.StatusOK, rec.Code)

	rec, _ = do(t, h, http.MethodGet, "/api/stores?radius_km=abc", "")
	assert.Equal(t, http.StatusBadRequest, rec.Code)

	rec, _ = do(t, h, http.MethodGet, "/api/stores?radius_km=0", "")
	assert.Equal(t, http.StatusBadRequest, rec.Code)

	rec, resp := do(t, h, http.MethodGet, "/api/stores?radius_km=5", "")
	require.Equal(t, http.StatusOK, rec.Code)
	var stores []storeView
	require.NoError(t, json.Unmarshal(resp.Data, &stores))
	require.Len(t, stores, 1)
	assert.Equal(t, "Mart", stores[0].DisplayName)
}

func TestHTTP_StoresNetworkFailure(t *testing.T) {
	session := newTestSession(t, stubPlaces{err: domain.ErrNetworkFailure})
	require.NoError(t, session.Stores.SetLocation(domain.Coordinate{Lat: 1, Lng: 1}))
	h := NewHTTPHandler(session, nil).Routes()

	rec, resp := do(t, h, http.MethodGet, "/api/stores?radius_km=1", "")
	assert.Equal(t, http.StatusBadGateway, rec.Code)
	assert.JSONEq(t, `[]`, string(resp.Data))
}

func TestHTTP_DegradedFlag(t *testing.T) {
	session := service.NewSession(
		service.NewCatalogService(stubCatalog{}, nil),
		service.NewListService(storage.NewMemoryStore(1), nil),
		service.NewAlertService(nil),
		service.NewStoreLocator(stubPlaces{}, nil),
		nil,
	)
	session.Start(context.Background())
	h := NewHTTPHandler(session, nil).Routes()

	rec, resp := do(t, h, http.MethodPost, "/api/lists", `{"name":"Groceries"}`)
	require.Equal(t, http.StatusCreated, rec.Code)
	assert.True(t, resp.Degraded)
}

func TestHTTP_RequestID(t *testing.T) {
	h := NewHTTPHandler(newTestSession(t, stubPlaces{}), nil).Routes()

	rec, _ := do(t, h, http.MethodGet, "/health", "")
	_, err := uuid.Parse(rec.Header().Get(requestIDHeader))
	assert.NoError(t, err)

	id := uuid.NewString()
	req := httptest.NewRequest(http.MethodGet, "/health", nil)
	req.Header.Set(requestIDHeader, id)
	rec = httptest.NewRecorder()
	h.ServeHTTP(rec, req)
	assert.Equal(t, id, rec.Header().Get(requestIDHeader))
}

func itoa(n int64) string {
	b, _ := json.Marshal(n)
	return string(b)
}
