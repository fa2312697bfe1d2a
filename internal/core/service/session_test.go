package service

import (
	"context"
	"reflect"
	"testing"

	"github.com/shopspring/decimal"

	"github.com/rl1809/shopping-assistant/internal/core/domain"
)

func newTestSession(catalog *mockCatalog, store *mockKVStore) *Session {
	return NewSession(
		NewCatalogService(catalog, nil),
		NewListService(store, nil),
		NewAlertService(nil),
		NewStoreLocator(&mockPlaces{}, nil),
		nil,
	)
}

func TestSession_EndToEnd(t *testing.T) {
	ctx := context.Background()
	store := newMockKVStore()
	s := newTestSession(&mockCatalog{products: []domain.Product{product(1, "10.00")}}, store)
	s.Start(ctx)

	alert, ok := s.Alerts.Get(1)
	if !ok {
		t.Fatal("expected alert for product 1")
	}
	if !alert.Threshold.Equal(decimal.RequireFromString("9.00")) ||
		!alert.CurrentPrice.Equal(decimal.RequireFromString("10.00")) ||
		!alert.PreviousPrice.Equal(decimal.RequireFromString("11.00")) {
		t.Errorf("unexpected alert %+v", alert)
	}

	list, err := s.Lists.CreateList(ctx, "Groceries")
	if err != nil {
		t.Fatalf("create failed: %v", err)
	}
	if err := s.Lists.AddItem(ctx, 1); err != nil {
		t.Fatalf("add failed: %v", err)
	}

	lists := s.Lists.Lists()
	if len(lists) != 1 || lists[0].Name != "Groceries" || !reflect.DeepEqual(lists[0].Items, []int64{1}) {
		t.Fatalf("unexpected lists %+v", lists)
	}

	if err := s.Lists.RemoveItem(ctx, list.ID, 1); err != nil {
		t.Fatalf("remove failed: %v", err)
	}
	got, _ := s.Lists.Get(list.ID)
	if len(got.Items) != 0 {
		t.Errorf("expected empty list, got %v", got.Items)
	}
}

func TestSession_CatalogFailureFailsOpen(t *testing.T) {
	ctx := context.Background()
	store := newMockKVStore()
	store.data[ListsKey] = `[{"id":5,"name":"Saved","items":[1,2]}]`

	s := newTestSession(&mockCatalog{err: domain.ErrNetworkFailure}, store)
	s.Start(ctx)

	if len(s.Catalog.Products()) != 0 {
		t.Error("expected empty catalog")
	}
	if len(s.Alerts.Alerts()) != 0 {
		t.Error("expected no alerts")
	}
	lists := s.Lists.Lists()
	if len(lists) != 1 || lists[0].ID != 5 {
		t.Errorf("expected saved list to load, got %+v", lists)
	}
}

func TestCatalogService_ProductLookup(t *testing.T) {
	svc := NewCatalogService(&mockCatalog{products: []domain.Product{product(1, "1"), product(2, "2")}}, nil)
	svc.Load(context.Background())

	if _, ok := svc.Product(2); !ok {
		t.Error("expected product 2")
	}
	if _, ok := svc.Product(3); ok {
		t.Error("unexpected product 3")
	}
}
