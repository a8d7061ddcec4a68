package usecase

import (
	"context"

	"productsmanager/internal/domain/entity"

	"github.com/google/uuid"
)

// ProductInput is the raw form data for a product. Price stays a string so
// that malformed numbers can be reported separately from non-positive ones.
type ProductInput struct {
	Name        string `json:"name"`
	Price       string `json:"price"`
	Description string `json:"description"`
}

// ListProductsInput filters the session owner's products.
type ListProductsInput struct {
	Query string `json:"q" query:"q"`
}

// ExportProductsInput names the blob key to write. Empty means the default
// "<username>-products.json".
type ExportProductsInput struct {
	Key string `json:"key"`
}

// ExportOutput reports where the snapshot went.
type ExportOutput struct {
	Location string
	Count    int
}

// CatalogUsecase manages the products of the session identity.
type CatalogUsecase interface {
	AddProduct(ctx context.Context, input ProductInput) (*entity.Product, error)
	UpdateProduct(ctx context.Context, id uuid.UUID, input ProductInput) (*entity.Product, error)

	// DeleteProduct succeeds when the product is already gone.
	DeleteProduct(ctx context.Context, id uuid.UUID) error

	// ListProducts returns an empty slice without a session.
	ListProducts(ctx context.Context, input ListProductsInput) ([]*entity.Product, error)
	ListForCurrentUser(ctx context.Context) ([]*entity.Product, error)

	ExportProducts(ctx context.Context, input ExportProductsInput) (*ExportOutput, error)
}
