package store

import (
	"context"
	"strings"
	"time"

	"productsmanager/internal/domain/entity"
	domainerrors "productsmanager/internal/domain/errors"
	"productsmanager/internal/domain/repository"
	"productsmanager/internal/infra/persistence/model"

	"github.com/google/uuid"
	"github.com/pkg/errors"
	"gorm.io/gorm"
)

// creation order; UUIDv7 breaks timestamp ties
const productOrder = "created_at ASC, id ASC"

type productRepository struct {
	products crud[model.ProductModel]
}

// NewProductRepository returns the repository as a domain.ProductRepository interface.
func NewProductRepository(db *gorm.DB) repository.ProductRepository {
	return &productRepository{
		products: newCRUD[model.ProductModel](db),
	}
}

func (repo *productRepository) Create(ctx context.Context, product *entity.Product) error {
	productM := fromProductDomain(product)

	if err := repo.products.insert(ctx, productM); err != nil {
		if isForeignKeyConstraintViolation(err) {
			return domainerrors.ErrProductWriteFailed.WrapMessage("invalid owner reference")
		}
		if isNotNullConstraintViolation(err) {
			return domainerrors.ErrProductWriteFailed.WrapMessage("missing required product information")
		}

		return domainerrors.NewDatabaseExecuteError(err, "failed to create product")
	}

	product.ID = productM.ID
	product.CreatedAt = productM.CreatedAt
	product.UpdatedAt = productM.UpdatedAt

	return nil
}

func (repo *productRepository) FindByID(ctx context.Context, id uuid.UUID) (*entity.Product, error) {
	productM, err := repo.products.findByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, repository.ErrProductNotFound
		}

		return nil, errors.Wrap(err, "failed to find product by id")
	}

	return toProductDomain(productM), nil
}

func (repo *productRepository) ListByOwner(ctx context.Context, ownerID uuid.UUID, query string) ([]*entity.Product, error) {
	rows, err := repo.products.listWhere(ctx, productOrder, ownedBy(ownerID))
	if err != nil {
		return nil, domainerrors.NewDatabaseExecuteError(err, "failed to list products")
	}

	needle := strings.ToLower(query)
	products := make([]*entity.Product, 0, len(rows))
	for i := range rows {
		if !matches(&rows[i], needle) {
			continue
		}
		products = append(products, toProductDomain(&rows[i]))
	}

	return products, nil
}

func (repo *productRepository) Update(ctx context.Context, id uuid.UUID, fields entity.ProductFields) error {
	err := repo.products.updateColumns(ctx, id, map[string]any{
		"name":        fields.Name,
		"price":       fields.Price,
		"description": fields.Description,
		"updated_at":  time.Now(),
	})
	if err != nil {
		return domainerrors.NewDatabaseExecuteError(err, "failed to update product")
	}

	return nil
}

func (repo *productRepository) Delete(ctx context.Context, id uuid.UUID) error {
	if err := repo.products.deleteByID(ctx, id); err != nil {
		return domainerrors.NewDatabaseExecuteError(err, "failed to delete product")
	}

	return nil
}

func ownedBy(ownerID uuid.UUID) func(*gorm.DB) *gorm.DB {
	return func(db *gorm.DB) *gorm.DB {
		return db.Where("owner_id = ?", ownerID)
	}
}

// matches reports whether name or description contains needle, ignoring case.
// Folding happens here rather than in SQL: SQLite's LOWER() only folds ASCII.
func matches(row *model.ProductModel, needle string) bool {
	if needle == "" {
		return true
	}

	return strings.Contains(strings.ToLower(row.Name), needle) ||
		strings.Contains(strings.ToLower(row.Description), needle)
}

// --- Mapper Functions ---

func toProductDomain(data *model.ProductModel) *entity.Product {
	if data == nil {
		return nil
	}

	return &entity.Product{
		ID:          data.ID,
		Name:        data.Name,
		Price:       data.Price,
		Description: data.Description,
		OwnerID:     data.OwnerID,
		CreatedAt:   data.CreatedAt,
		UpdatedAt:   data.UpdatedAt,
	}
}

func fromProductDomain(data *entity.Product) *model.ProductModel {
	if data == nil {
		return nil
	}

	return &model.ProductModel{
		ID:          data.ID,
		Name:        data.Name,
		Price:       data.Price,
		Description: data.Description,
		OwnerID:     data.OwnerID,
	}
}
