package service

import (
	"context"

	"go.uber.org/zap"
)

// Session ties the per-process state containers together and runs the
// startup sequence: catalog, saved lists, then alerts derived from the catalog.
type Session struct {
	Catalog *CatalogService
	Lists   *ListService
	Alerts  *AlertService
	Stores  *StoreLocator
	logger  *zap.Logger
}

func NewSession(catalog *CatalogService, lists *ListService, alerts *AlertService, stores *StoreLocator, logger *zap.Logger) *Session {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Session{
		Catalog: catalog,
		Lists:   lists,
		Alerts:  alerts,
		Stores:  stores,
		logger:  logger,
	}
}

// Start never fails: every collaborator falls back to empty state.
func (s *Session) Start(ctx context.Context) {
	products := s.Catalog.Load(ctx)
	lists := s.Lists.Load(ctx)
	alerts := s.Alerts.Initialize(products)

	s.logger.Info("session started",
		zap.Int("products", len(products)),
		zap.Int("lists", len(lists)),
		zap.Int("alerts", len(alerts)),
	)
}
