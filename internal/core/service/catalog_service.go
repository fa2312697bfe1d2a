package service

import (
	"context"
	"sync"

	"go.uber.org/zap"

	"github.com/rl1809/shopping-assistant/internal/core/domain"
	"github.com/rl1809/shopping-assistant/internal/port"
)

// CatalogService holds the product snapshot fetched at session start.
type CatalogService struct {
	provider port.CatalogProvider
	mu       sync.RWMutex
	products []domain.Product
	byID     map[int64]domain.Product
	logger   *zap.Logger
}

func NewCatalogService(provider port.CatalogProvider, logger *zap.Logger) *CatalogService {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &CatalogService{
		provider: provider,
		byID:     make(map[int64]domain.Product),
		logger:   logger.Named("catalog"),
	}
}

// Load fetches the catalog once. A provider failure leaves the session with an
// empty catalog.
func (s *CatalogService) Load(ctx context.Context) []domain.Product {
	products, err := s.provider.FetchCatalog(ctx)
	if err != nil {
		s.logger.Warn("catalog unavailable, continuing with empty catalog", zap.Error(err))
		products = nil
	}

	byID := make(map[int64]domain.Product, len(products))
	for _, p := range products {
		byID[p.ID] = p
	}

	s.mu.Lock()
	s.products = append([]domain.Product{}, products...)
	s.byID = byID
	s.mu.Unlock()

	return s.Products()
}

func (s *CatalogService) Products() []domain.Product {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return append([]domain.Product{}, s.products...)
}

func (s *CatalogService) Product(id int64) (domain.Product, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	p, ok := s.byID[id]
	return p, ok
}
