package service

import (
	"context"

	"productsmanager/internal/domain/entity"
)

// CatalogExporter writes a snapshot of products to external storage.
type CatalogExporter interface {
	// Export stores products under key and returns the location written.
	Export(ctx context.Context, key string, owner *entity.User, products []*entity.Product) (string, error)
}
