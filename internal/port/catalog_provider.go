package port

import (
	"context"

	"github.com/rl1809/shopping-assistant/internal/core/domain"
)

type CatalogProvider interface {
	// FetchCatalog returns every product offered by the remote store
	FetchCatalog(ctx context.Context) ([]domain.Product, error)
}
