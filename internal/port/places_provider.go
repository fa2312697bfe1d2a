package port

import (
	"context"

	"github.com/rl1809/shopping-assistant/internal/core/domain"
)

type PlacesProvider interface {
	// SearchNearby returns shops within radiusMeters of center
	SearchNearby(ctx context.Context, center domain.Coordinate, radiusMeters float64) ([]domain.Store, error)
}
