package service

import (
	"context"
	"errors"
	"fmt"
	"math"
	"strconv"
	"sync"

	"go.uber.org/zap"
	"golang.org/x/sync/singleflight"

	"github.com/rl1809/shopping-assistant/internal/core/domain"
	"github.com/rl1809/shopping-assistant/internal/port"
)

// StoreLocator searches for shops around the last known location. Searches
// are rejected locally until a location fix has been recorded.
type StoreLocator struct {
	provider port.PlacesProvider
	mu       sync.Mutex
	location *domain.Coordinate
	group    singleflight.Group
	logger   *zap.Logger
}

func NewStoreLocator(provider port.PlacesProvider, logger *zap.Logger) *StoreLocator {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &StoreLocator{
		provider: provider,
		logger:   logger.Named("stores"),
	}
}

func (s *StoreLocator) SetLocation(c domain.Coordinate) error {
	if math.IsNaN(c.Lat) || math.IsNaN(c.Lng) || c.Lat < -90 || c.Lat > 90 || c.Lng < -180 || c.Lng > 180 {
		return fmt.Errorf("%w: coordinate out of range", domain.ErrLocationUnavailable)
	}

	s.mu.Lock()
	s.location = &c
	s.mu.Unlock()
	return nil
}

func (s *StoreLocator) ClearLocation() {
	s.mu.Lock()
	s.location = nil
	s.mu.Unlock()
}

func (s *StoreLocator) Location() (domain.Coordinate, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.location == nil {
		return domain.Coordinate{}, false
	}
	return *s.location, true
}

// SearchNearby queries the places provider once. Identical searches running
// at the same time share a single request, which runs detached from any one
// caller's cancellation; each caller still returns as soon as its own ctx is
// done.
func (s *StoreLocator) SearchNearby(ctx context.Context, radiusMeters float64) ([]domain.Store, error) {
	if !(radiusMeters > 0) || math.IsInf(radiusMeters, 0) {
		return nil, domain.ErrInvalidRadius
	}
	center, ok := s.Location()
	if !ok {
		return nil, domain.ErrLocationUnavailable
	}

	key := strconv.FormatFloat(center.Lat, 'f', -1, 64) + "," +
		strconv.FormatFloat(center.Lng, 'f', -1, 64) + "," +
		strconv.FormatFloat(radiusMeters, 'f', -1, 64)

	shared := context.WithoutCancel(ctx)
	ch := s.group.DoChan(key, func() (interface{}, error) {
		return s.provider.SearchNearby(shared, center, radiusMeters)
	})

	var res singleflight.Result
	select {
	case <-ctx.Done():
		return nil, ctx.Err()
	case res = <-ch:
	}

	v, err := res.Val, res.Err
	if err != nil {
		s.logger.Warn("nearby search failed", zap.Float64("radius_m", radiusMeters), zap.Error(err))
		if !errors.Is(err, domain.ErrNetworkFailure) {
			err = fmt.Errorf("%w: %v", domain.ErrNetworkFailure, err)
		}
		return nil, err
	}

	stores := v.([]domain.Store)
	return append([]domain.Store{}, stores...), nil
}
