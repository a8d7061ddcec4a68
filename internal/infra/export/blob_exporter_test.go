package export

import (
	"context"
	"encoding/json"
	"testing"
	"time"

	"productsmanager/config"
	"productsmanager/internal/domain/entity"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/fx/fxtest"
	"gocloud.dev/blob/memblob"
)

func TestBlobExporter_WritesDocument(t *testing.T) {
	bucket := memblob.OpenBucket(nil)
	defer bucket.Close()

	exporter := NewBucketExporter(bucket, "mem://")
	owner := &entity.User{ID: uuid.New(), Username: "alice"}
	products := []*entity.Product{
		{ID: uuid.New(), Name: "Pen", Price: 1.5, Description: "Blue pen", OwnerID: owner.ID},
		{ID: uuid.New(), Name: "Stapler", Price: 7.25, OwnerID: owner.ID},
	}

	location, err := exporter.Export(context.Background(), "alice-products.json", owner, products)
	require.NoError(t, err)
	assert.Equal(t, "mem://alice-products.json", location)

	ctx := context.Background()
	raw, err := bucket.ReadAll(ctx, "alice-products.json")
	require.NoError(t, err)

	var doc Document
	require.NoError(t, json.Unmarshal(raw, &doc))
	assert.Equal(t, "alice", doc.Owner)
	assert.Equal(t, 2, doc.Count)
	require.Len(t, doc.Products, 2)
	assert.Equal(t, "Pen", doc.Products[0].Name)
	assert.Equal(t, 1.5, doc.Products[0].Price)
	assert.Equal(t, products[1].ID.String(), doc.Products[1].ID)

	attrs, err := bucket.Attributes(ctx, "alice-products.json")
	require.NoError(t, err)
	assert.Equal(t, contentType, attrs.ContentType)
}

func TestBlobExporter_EmptyCatalog(t *testing.T) {
	bucket := memblob.OpenBucket(nil)
	defer bucket.Close()

	exporter := NewBucketExporter(bucket, "mem://")
	_, err := exporter.Export(context.Background(), "empty.json", &entity.User{Username: "bob"}, nil)
	require.NoError(t, err)

	raw, err := bucket.ReadAll(context.Background(), "empty.json")
	require.NoError(t, err)
	assert.Contains(t, string(raw), `"products": []`)
}

func TestBlobExporter_RejectsMissingOwnerOrKey(t *testing.T) {
	bucket := memblob.OpenBucket(nil)
	defer bucket.Close()

	exporter := NewBucketExporter(bucket, "mem://")
	_, err := exporter.Export(context.Background(), "k.json", nil, nil)
	assert.Error(t, err)

	_, err = exporter.Export(context.Background(), "", &entity.User{Username: "bob"}, nil)
	assert.Error(t, err)
}

func TestNew_FileBucket(t *testing.T) {
	dir := t.TempDir()
	cfg := &config.Config{Export: &config.ExportConfig{BucketURL: "file://" + dir + "?create_dir=1"}}
	lc := fxtest.NewLifecycle(t)

	exporter, err := New(Params{Lifecycle: lc, Config: cfg})
	require.NoError(t, err)

	location, err := exporter.Export(context.Background(), "out.json", &entity.User{Username: "alice"}, []*entity.Product{
		{ID: uuid.New(), Name: "Pen", Price: 1, CreatedAt: time.Now()},
	})
	require.NoError(t, err)
	assert.Equal(t, "file://"+dir+"/out.json", location)

	lc.RequireStart().RequireStop()
}
