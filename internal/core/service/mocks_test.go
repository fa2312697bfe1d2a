package service

import (
	"context"
	"errors"
	"sync"

	"github.com/rl1809/shopping-assistant/internal/core/domain"
)

// Mock KeyValueStore
type mockKVStore struct {
	mu       sync.Mutex
	data     map[string]string
	setCalls int
	getErr   error
	setErr   error
}

func newMockKVStore() *mockKVStore {
	return &mockKVStore{data: make(map[string]string)}
}

func (m *mockKVStore) Get(ctx context.Context, key string) (string, bool, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	if m.getErr != nil {
		return "", false, m.getErr
	}
	v, ok := m.data[key]
	return v, ok, nil
}

func (m *mockKVStore) Set(ctx context.Context, key, value string) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	m.setCalls++
	if m.setErr != nil {
		return m.setErr
	}
	m.data[key] = value
	return nil
}

func (m *mockKVStore) calls() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.setCalls
}

// Mock CatalogProvider
type mockCatalog struct {
	products []domain.Product
	err      error
}

func (m *mockCatalog) FetchCatalog(ctx context.Context) ([]domain.Product, error) {
	if m.err != nil {
		return nil, m.err
	}
	return m.products, nil
}

// Mock PlacesProvider
type mockPlaces struct {
	mu      sync.Mutex
	stores  []domain.Store
	err     error
	calls   int
	centers []domain.Coordinate
	radii   []float64
	block   chan struct{}
}

func (m *mockPlaces) SearchNearby(ctx context.Context, center domain.Coordinate, radiusMeters float64) ([]domain.Store, error) {
	m.mu.Lock()
	m.calls++
	m.centers = append(m.centers, center)
	m.radii = append(m.radii, radiusMeters)
	block := m.block
	m.mu.Unlock()

	if block != nil {
		select {
		case <-block:
		case <-ctx.Done():
			return nil, ctx.Err()
		}
	}
	if m.err != nil {
		return nil, m.err
	}
	return m.stores, nil
}

var errBackendDown = errors.New("backend down")
