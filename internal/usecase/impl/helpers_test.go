package impl

import (
	"context"
	"io"
	"log/slog"
	"testing"
	"time"

	"productsmanager/config"
	"productsmanager/internal/domain/service"
	"productsmanager/internal/infra/auth"
	"productsmanager/internal/infra/export"
	"productsmanager/internal/infra/persistence/store"
	"productsmanager/internal/session"
	"productsmanager/internal/usecase"
	"productsmanager/internal/validation"

	"github.com/stretchr/testify/require"
	"gocloud.dev/blob"
	"gocloud.dev/blob/memblob"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"
)

func newDiscardLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

// harness wires the real store, hasher and exporter around one session.
type harness struct {
	db      *gorm.DB
	session *session.Session
	bucket  *blob.Bucket
	auth    usecase.AuthUsecase
	catalog usecase.CatalogUsecase
}

type harnessOption func(*AuthServiceParams)

func withHasher(hasher service.PasswordHasher) harnessOption {
	return func(p *AuthServiceParams) {
		p.Hasher = hasher
	}
}

func newHarness(t *testing.T, opts ...harnessOption) *harness {
	t.Helper()

	db, err := store.OpenSQLite(store.InMemorySQLite)
	require.NoError(t, err)
	require.NoError(t, store.Migrate(db))
	t.Cleanup(func() {
		if sqlDB, err := db.DB(); err == nil {
			_ = sqlDB.Close()
		}
	})

	hasher, err := auth.NewBcryptHasherWithCost(bcrypt.MinCost)
	require.NoError(t, err)

	cfg := &config.Config{Auth: &config.AuthConfig{TokenTTL: time.Hour}}
	cfg.SecretKey.Access = "test-secret"
	tokens, err := auth.NewJWTService(cfg)
	require.NoError(t, err)

	bucket := memblob.OpenBucket(nil)
	t.Cleanup(func() { _ = bucket.Close() })

	sess := session.New()
	validator := validation.New()
	logger := newDiscardLogger()
	txManager := store.NewTransactionManager(db)

	authParams := AuthServiceParams{
		TxManager:    txManager,
		Hasher:       hasher,
		TokenService: tokens,
		Session:      sess,
		Validator:    validator,
		Logger:       logger,
	}
	for _, opt := range opts {
		opt(&authParams)
	}

	return &harness{
		db:      db,
		session: sess,
		bucket:  bucket,
		auth:    NewAuthService(authParams),
		catalog: NewCatalogService(CatalogServiceParams{
			TxManager: txManager,
			Exporter:  export.NewBucketExporter(bucket, "mem://"),
			Session:   sess,
			Validator: validator,
			Logger:    logger,
		}),
	}
}

func (h *harness) registerAndLogin(t *testing.T, username, password string) {
	t.Helper()

	ctx := context.Background()
	_, err := h.auth.Register(ctx, usecase.RegisterInput{Username: username, Password: password, ConfirmPassword: password})
	require.NoError(t, err)
	_, err = h.auth.Login(ctx, usecase.LoginInput{Username: username, Password: password})
	require.NoError(t, err)
}
