package service

import (
	"sync"

	"go.uber.org/zap"

	"github.com/rl1809/shopping-assistant/internal/core/domain"
)

// AlertService keeps one synthetic price alert per catalog product for the
// lifetime of the session. Alerts are never persisted.
type AlertService struct {
	mu     sync.Mutex
	alerts []domain.PriceAlert
	index  map[int64]int
	logger *zap.Logger
}

func NewAlertService(logger *zap.Logger) *AlertService {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &AlertService{
		index:  make(map[int64]int),
		logger: logger.Named("alerts"),
	}
}

// Initialize discards any previous alerts and derives a fresh one for every
// product in the catalog.
func (s *AlertService) Initialize(catalog []domain.Product) []domain.PriceAlert {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.alerts = make([]domain.PriceAlert, 0, len(catalog))
	s.index = make(map[int64]int, len(catalog))
	for _, p := range catalog {
		if _, dup := s.index[p.ID]; dup {
			s.logger.Warn("duplicate product in catalog", zap.Int64("product_id", p.ID))
			continue
		}
		s.index[p.ID] = len(s.alerts)
		s.alerts = append(s.alerts, domain.NewPriceAlert(p))
	}
	return s.snapshotLocked()
}

func (s *AlertService) UpdateThreshold(productID int64) (domain.PriceAlert, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	i, ok := s.index[productID]
	if !ok {
		return domain.PriceAlert{}, domain.ErrNotFound
	}
	s.alerts[i].RecomputeThreshold()
	return s.alerts[i], nil
}

func (s *AlertService) Get(productID int64) (domain.PriceAlert, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()

	i, ok := s.index[productID]
	if !ok {
		return domain.PriceAlert{}, false
	}
	return s.alerts[i], true
}

func (s *AlertService) Alerts() []domain.PriceAlert {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.snapshotLocked()
}

func (s *AlertService) snapshotLocked() []domain.PriceAlert {
	out := make([]domain.PriceAlert, len(s.alerts))
	copy(out, s.alerts)
	return out
}
