package impl

import (
	"context"
	"log/slog"
	"math"
	"strconv"
	"strings"

	deliverycontext "productsmanager/internal/delivery/context"
	"productsmanager/internal/domain/entity"
	domainerrors "productsmanager/internal/domain/errors"
	"productsmanager/internal/domain/repository"
	"productsmanager/internal/domain/service"
	"productsmanager/internal/session"
	"productsmanager/internal/usecase"
	"productsmanager/internal/validation"

	"github.com/google/uuid"
	"github.com/pkg/errors"
	"go.uber.org/fx"
)

const exportKeySuffix = "-products.json"

// catalogService implements the CatalogUsecase interface.
type catalogService struct {
	txManager repository.TransactionManager
	exporter  service.CatalogExporter
	session   *session.Session
	validator *validation.Validator
	logger    *slog.Logger
}

// CatalogServiceParams holds dependencies for CatalogService, injected by Fx.
type CatalogServiceParams struct {
	fx.In

	TxManager repository.TransactionManager
	Exporter  service.CatalogExporter
	Session   *session.Session
	Validator *validation.Validator
	Logger    *slog.Logger
}

type productForm struct {
	Name        string `validate:"required"`
	Price       string `validate:"required"`
	Description string `validate:"required"`
}

type productValues struct {
	Price float64 `validate:"gt=0"`
}

// NewCatalogService is the constructor for catalogService.
func NewCatalogService(params CatalogServiceParams) usecase.CatalogUsecase {
	return &catalogService{
		txManager: params.TxManager,
		exporter:  params.Exporter,
		session:   params.Session,
		validator: params.Validator,
		logger:    params.Logger,
	}
}

func (srv *catalogService) log(ctx context.Context) *slog.Logger {
	return deliverycontext.GetLoggerOrDefault(ctx, srv.logger)
}

// AddProduct creates a product owned by the session identity.
func (srv *catalogService) AddProduct(ctx context.Context, input usecase.ProductInput) (*entity.Product, error) {
	fields, err := srv.parseProduct(input)
	if err != nil {
		return nil, errors.Wrap(err, "add product")
	}

	owner, ok := srv.session.Current()
	if !ok {
		return nil, errors.Wrap(domainerrors.ErrNotLoggedIn, "add product")
	}

	product := &entity.Product{
		Name:        fields.Name,
		Price:       fields.Price,
		Description: fields.Description,
		OwnerID:     owner.ID,
	}
	err = srv.txManager.Execute(ctx, func(repoFactory repository.RepositoryFactory) error {
		return repoFactory.ProductRepo().Create(ctx, product)
	})
	if err != nil {
		srv.log(ctx).Error("Failed to add product", slog.Any("user", owner), slog.Any("error", err))

		return nil, errors.Wrap(err, "add product")
	}

	srv.log(ctx).Info("Product added", slog.Any("user", owner), slog.String("productID", product.ID.String()))

	return product, nil
}

// UpdateProduct overwrites a product the session identity owns.
func (srv *catalogService) UpdateProduct(ctx context.Context, id uuid.UUID, input usecase.ProductInput) (*entity.Product, error) {
	fields, err := srv.parseProduct(input)
	if err != nil {
		return nil, errors.Wrap(err, "update product")
	}

	owner, ok := srv.session.Current()
	if !ok {
		return nil, errors.Wrap(domainerrors.ErrNotLoggedIn, "update product")
	}

	product, err := repository.RunInUnit(ctx, srv.txManager, func(repoFactory repository.RepositoryFactory) (*entity.Product, error) {
		productRepo := repoFactory.ProductRepo()

		existing, err := srv.findOwned(ctx, productRepo, id, owner.ID)
		if err != nil {
			return nil, err
		}

		if err := productRepo.Update(ctx, id, fields); err != nil {
			return nil, err
		}

		return productRepo.FindByID(ctx, existing.ID)
	})
	if err != nil {
		srv.log(ctx).Warn("Failed to update product", slog.Any("user", owner), slog.String("productID", id.String()), slog.Any("error", err))

		return nil, errors.Wrap(err, "update product")
	}

	srv.log(ctx).Info("Product updated", slog.Any("user", owner), slog.String("productID", id.String()))

	return product, nil
}

// DeleteProduct removes a product the session identity owns.
func (srv *catalogService) DeleteProduct(ctx context.Context, id uuid.UUID) error {
	owner, ok := srv.session.Current()
	if !ok {
		return errors.Wrap(domainerrors.ErrNotLoggedIn, "delete product")
	}

	err := srv.txManager.Execute(ctx, func(repoFactory repository.RepositoryFactory) error {
		productRepo := repoFactory.ProductRepo()

		_, err := srv.findOwned(ctx, productRepo, id, owner.ID)
		if errors.Is(err, domainerrors.ErrProductNotFound) {
			// Already gone.
			return nil
		}
		if err != nil {
			return err
		}

		return productRepo.Delete(ctx, id)
	})
	if err != nil {
		srv.log(ctx).Warn("Failed to delete product", slog.Any("user", owner), slog.String("productID", id.String()), slog.Any("error", err))

		return errors.Wrap(err, "delete product")
	}

	srv.log(ctx).Info("Product deleted", slog.Any("user", owner), slog.String("productID", id.String()))

	return nil
}

// ListProducts returns the session identity's products in creation order.
func (srv *catalogService) ListProducts(ctx context.Context, input usecase.ListProductsInput) ([]*entity.Product, error) {
	owner, ok := srv.session.Current()
	if !ok {
		return []*entity.Product{}, nil
	}

	query := strings.TrimSpace(input.Query)
	products, err := repository.RunInUnit(ctx, srv.txManager, func(repoFactory repository.RepositoryFactory) ([]*entity.Product, error) {
		return repoFactory.ProductRepo().ListByOwner(ctx, owner.ID, query)
	})
	if err != nil {
		srv.log(ctx).Error("Failed to list products", slog.Any("user", owner), slog.Any("error", err))

		return nil, errors.Wrap(err, "list products")
	}

	return products, nil
}

// ListForCurrentUser is ListProducts without a filter.
func (srv *catalogService) ListForCurrentUser(ctx context.Context) ([]*entity.Product, error) {
	return srv.ListProducts(ctx, usecase.ListProductsInput{})
}

// ExportProducts writes the session identity's products to the export bucket.
func (srv *catalogService) ExportProducts(ctx context.Context, input usecase.ExportProductsInput) (*usecase.ExportOutput, error) {
	owner, ok := srv.session.Current()
	if !ok {
		return nil, errors.Wrap(domainerrors.ErrNotLoggedIn, "export products")
	}

	products, err := srv.ListForCurrentUser(ctx)
	if err != nil {
		return nil, errors.Wrap(err, "export products")
	}

	key := strings.TrimSpace(input.Key)
	if key == "" {
		key = owner.Username + exportKeySuffix
	}

	location, err := srv.exporter.Export(ctx, key, owner, products)
	if err != nil {
		srv.log(ctx).Error("Failed to export products", slog.Any("user", owner), slog.String("key", key), slog.Any("error", err))

		return nil, errors.Wrap(domainerrors.ErrExportFailed, err.Error())
	}

	srv.log(ctx).Info("Products exported", slog.Any("user", owner), slog.String("location", location), slog.Int("count", len(products)))

	return &usecase.ExportOutput{Location: location, Count: len(products)}, nil
}

// findOwned loads id and checks that ownerID owns it.
func (srv *catalogService) findOwned(ctx context.Context, productRepo repository.ProductRepository, id, ownerID uuid.UUID) (*entity.Product, error) {
	product, err := productRepo.FindByID(ctx, id)
	if errors.Is(err, repository.ErrProductNotFound) {
		return nil, domainerrors.ErrProductNotFound
	}
	if err != nil {
		return nil, errors.Wrap(err, "failed to load product")
	}
	if !product.OwnedBy(ownerID) {
		return nil, domainerrors.ErrProductNotOwned
	}

	return product, nil
}

// parseProduct trims the form, rejects blanks, then parses and checks the price.
func (srv *catalogService) parseProduct(input usecase.ProductInput) (entity.ProductFields, error) {
	form := productForm{
		Name:        strings.TrimSpace(input.Name),
		Price:       strings.TrimSpace(input.Price),
		Description: strings.TrimSpace(input.Description),
	}
	if err := srv.validator.Validate(form); err != nil {
		return entity.ProductFields{}, err
	}

	price, err := ParsePrice(form.Price)
	if err != nil {
		return entity.ProductFields{}, err
	}
	if err := srv.validator.Validate(productValues{Price: price}); err != nil {
		return entity.ProductFields{}, err
	}

	return entity.ProductFields{
		Name:        form.Name,
		Price:       price,
		Description: form.Description,
	}, nil
}

// ParsePrice reads a decimal number, accepting a comma as the decimal point.
// Go literal forms (hex floats, digit separators) are not prices.
func ParsePrice(raw string) (float64, error) {
	normalized := strings.Replace(strings.TrimSpace(raw), ",", ".", 1)
	if strings.ContainsAny(normalized, "xX_") {
		return 0, domainerrors.ErrInvalidPriceFormat
	}

	price, err := strconv.ParseFloat(normalized, 64)
	if err != nil || math.IsNaN(price) || math.IsInf(price, 0) {
		return 0, domainerrors.ErrInvalidPriceFormat
	}

	return price, nil
}
