// Package export writes catalog snapshots to a gocloud.dev blob bucket.
package export

import (
	"context"
	"encoding/json"
	"net/url"
	"strings"
	"time"

	"productsmanager/config"
	"productsmanager/internal/domain/entity"
	"productsmanager/internal/domain/lifecycle"
	"productsmanager/internal/domain/service"

	"github.com/pkg/errors"
	"go.uber.org/fx"
	"gocloud.dev/blob"
	_ "gocloud.dev/blob/fileblob" // file:// buckets
	_ "gocloud.dev/blob/memblob"  // mem:// buckets
)

const contentType = "application/json"

// Document is the exported JSON shape.
type Document struct {
	Owner      string          `json:"owner"`
	ExportedAt time.Time       `json:"exportedAt"`
	Count      int             `json:"count"`
	Products   []ProductRecord `json:"products"`
}

// ProductRecord is one exported product.
type ProductRecord struct {
	ID          string    `json:"id"`
	Name        string    `json:"name"`
	Price       float64   `json:"price"`
	Description string    `json:"description"`
	CreatedAt   time.Time `json:"createdAt"`
	UpdatedAt   time.Time `json:"updatedAt"`
}

type blobExporter struct {
	bucket *blob.Bucket
	base   string
	now    func() time.Time
}

// Params defines the required parameters
type Params struct {
	fx.In
	fx.Lifecycle

	Config *config.Config
}

// New opens the configured bucket and closes it when the app stops.
func New(params Params) (service.CatalogExporter, error) {
	rawURL := params.Config.Export.BucketURL

	ctx, cancel := context.WithTimeout(context.Background(), lifecycle.DefaultTimeout)
	defer cancel()

	bucket, err := blob.OpenBucket(ctx, rawURL)
	if err != nil {
		return nil, errors.Wrapf(err, "open export bucket %s", displayURL(rawURL))
	}

	params.Append(fx.Hook{
		OnStop: func(_ context.Context) error {
			return bucket.Close()
		},
	})

	return NewBucketExporter(bucket, displayURL(rawURL)), nil
}

// NewBucketExporter wraps an already open bucket. base prefixes the
// locations returned by Export.
func NewBucketExporter(bucket *blob.Bucket, base string) service.CatalogExporter {
	return &blobExporter{
		bucket: bucket,
		base:   strings.TrimSuffix(base, "/"),
		now:    time.Now,
	}
}

// Export overwrites key with the owner's products.
func (e *blobExporter) Export(ctx context.Context, key string, owner *entity.User, products []*entity.Product) (string, error) {
	if owner == nil {
		return "", errors.New("export requires an owner")
	}
	if key == "" {
		return "", errors.New("export key is empty")
	}

	doc := Document{
		Owner:      owner.Username,
		ExportedAt: e.now().UTC(),
		Count:      len(products),
		Products:   make([]ProductRecord, 0, len(products)),
	}
	for _, p := range products {
		doc.Products = append(doc.Products, ProductRecord{
			ID:          p.ID.String(),
			Name:        p.Name,
			Price:       p.Price,
			Description: p.Description,
			CreatedAt:   p.CreatedAt,
			UpdatedAt:   p.UpdatedAt,
		})
	}

	payload, err := json.MarshalIndent(doc, "", "  ")
	if err != nil {
		return "", errors.Wrap(err, "encode export")
	}

	if err := e.bucket.WriteAll(ctx, key, payload, &blob.WriterOptions{ContentType: contentType}); err != nil {
		return "", errors.Wrapf(err, "write %s", key)
	}

	return e.base + "/" + key, nil
}

// displayURL drops query options such as create_dir.
func displayURL(raw string) string {
	u, err := url.Parse(raw)
	if err != nil {
		return raw
	}
	u.RawQuery = ""

	return u.String()
}
