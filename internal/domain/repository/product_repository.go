package repository

import (
	"context"
	"errors"

	"productsmanager/internal/domain/entity"

	"github.com/google/uuid"
)

// ErrProductNotFound is returned when a product is absent.
var ErrProductNotFound = errors.New("product not found")

// ProductRepository defines persistence operations for catalog products.
type ProductRepository interface {
	// Create persists a new product and fills in its generated ID and timestamps.
	Create(ctx context.Context, product *entity.Product) error

	// FindByID retrieves a product by ID, or ErrProductNotFound.
	FindByID(ctx context.Context, id uuid.UUID) (*entity.Product, error)

	// ListByOwner returns the owner's products in creation order. A non-empty
	// query keeps only products whose name or description contains it,
	// ignoring case.
	ListByOwner(ctx context.Context, ownerID uuid.UUID, query string) ([]*entity.Product, error)

	// Update overwrites the mutable fields. Updating a missing ID is a no-op.
	Update(ctx context.Context, id uuid.UUID, fields entity.ProductFields) error

	// Delete removes a product. Deleting a missing ID is a no-op.
	Delete(ctx context.Context, id uuid.UUID) error
}
