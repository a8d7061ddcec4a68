package repl

import (
	"bytes"
	"context"
	"io"
	"log/slog"
	"strings"
	"testing"
	"time"

	"productsmanager/config"
	domainerrors "productsmanager/internal/domain/errors"
	"productsmanager/internal/domain/service"
	"productsmanager/internal/infra/auth"
	"productsmanager/internal/infra/export"
	"productsmanager/internal/infra/persistence/store"
	"productsmanager/internal/session"
	"productsmanager/internal/usecase"
	"productsmanager/internal/usecase/impl"
	"productsmanager/internal/validation"

	"github.com/fatih/color"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/fx"
	"gocloud.dev/blob/memblob"
	"golang.org/x/crypto/bcrypt"
)

type services struct {
	auth    usecase.AuthUsecase
	catalog usecase.CatalogUsecase
}

func newServices(t *testing.T, hasher service.PasswordHasher) services {
	t.Helper()
	color.NoColor = true

	db, err := store.OpenSQLite(store.InMemorySQLite)
	require.NoError(t, err)
	require.NoError(t, store.Migrate(db))
	t.Cleanup(func() {
		if sqlDB, err := db.DB(); err == nil {
			_ = sqlDB.Close()
		}
	})

	if hasher == nil {
		hasher, err = auth.NewBcryptHasherWithCost(bcrypt.MinCost)
		require.NoError(t, err)
	}

	cfg := &config.Config{Auth: &config.AuthConfig{TokenTTL: time.Hour}}
	cfg.SecretKey.Access = "test-secret"
	tokens, err := auth.NewJWTService(cfg)
	require.NoError(t, err)

	bucket := memblob.OpenBucket(nil)
	t.Cleanup(func() { _ = bucket.Close() })

	logger := discardLogger()
	sess := session.New()
	validator := validation.New()
	txManager := store.NewTransactionManager(db)

	return services{
		auth: impl.NewAuthService(impl.AuthServiceParams{
			TxManager:    txManager,
			Hasher:       hasher,
			TokenService: tokens,
			Session:      sess,
			Validator:    validator,
			Logger:       logger,
		}),
		catalog: impl.NewCatalogService(impl.CatalogServiceParams{
			TxManager: txManager,
			Exporter:  export.NewBucketExporter(bucket, "mem://"),
			Session:   sess,
			Validator: validator,
			Logger:    logger,
		}),
	}
}

func discardLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

func script(lines ...string) io.Reader {
	return strings.NewReader(strings.Join(lines, "\n") + "\n")
}

func runScript(t *testing.T, svc services, lines ...string) (string, error) {
	t.Helper()

	var out bytes.Buffer
	console := NewConsole(svc.auth, svc.catalog, discardLogger(), script(lines...), &out)
	err := console.Serve(context.Background())

	return out.String(), err
}

func TestConsole_Session(t *testing.T) {
	svc := newServices(t, nil)

	out, err := runScript(t, svc,
		"help",
		"register", "Alice", "Secr3t!", "Secr3t!",
		"whoami",
		"login", "alice", "Secr3t!",
		"whoami",
		"add", "Pen", "1,5", "Blue pen",
		"add", "Mug", "7", "Ceramic",
		"list blue",
		"export",
		"logout", "n",
		"whoami",
		"logout", "y",
		"logout",
		"list",
		"exit",
		"whoami",
	)
	require.NoError(t, err)

	assert.Contains(t, out, "Commands: register, login")
	assert.Contains(t, out, "Registered alice. You can now log in.")
	assert.Contains(t, out, "Not logged in.")
	assert.Contains(t, out, "Logged in as alice.")
	assert.Contains(t, out, "Session token valid for 1h.")
	assert.Contains(t, out, "products [alice]> ")
	assert.Contains(t, out, "Added Pen")
	assert.Contains(t, out, "1.50")
	assert.Contains(t, out, "Exported 2 products to mem://alice-products.json.")
	assert.Contains(t, out, "Log out? [y/N]: ")
	assert.Contains(t, out, "Cancelled.")
	assert.Equal(t, 1, strings.Count(out, "Logged out."))
	assert.Contains(t, out, "error: not logged in")
	assert.True(t, strings.HasSuffix(out, "Bye!\n"), "commands after exit must not run")

	// The filtered listing only shows the pen.
	listing := out[strings.Index(out, "DESCRIPTION"):strings.Index(out, "Exported")]
	assert.Contains(t, listing, "Blue pen")
	assert.NotContains(t, listing, "Ceramic")
}

func TestConsole_ErrorsUseDomainMessages(t *testing.T) {
	svc := newServices(t, nil)

	out, err := runScript(t, svc,
		"register", "bob", "a", "b",
		"register", "bob", "pw", "pw",
		"register", "BOB", "pw", "pw",
		"login", "bob", "wrong",
		"login", "nobody", "wrong",
		"login", "bob", "pw",
		"add", "", "1", "x",
		"add", "Pen", "abc", "x",
		"add", "Pen", "-1", "x",
		"update",
		"update not-an-id",
		"frobnicate",
	)
	require.NoError(t, err)

	assert.Contains(t, out, "error: mismatch")
	assert.Contains(t, out, "error: username taken")
	assert.Equal(t, 2, strings.Count(out, "error: invalid credentials"))
	assert.Contains(t, out, "error: blank field")
	assert.Contains(t, out, "error: price must be a valid number")
	assert.Contains(t, out, "error: price must be greater than zero")
	assert.Contains(t, out, "usage: update <id>")
	assert.Contains(t, out, "invalid product id: not-an-id")
	assert.Contains(t, out, "unknown command: frobnicate")
}

func TestConsole_UpdateUnknownProductFailsBeforePrompting(t *testing.T) {
	svc := newServices(t, nil)
	ctx := context.Background()

	_, err := svc.auth.Register(ctx, usecase.RegisterInput{Username: "bob", Password: "pw", ConfirmPassword: "pw"})
	require.NoError(t, err)
	_, err = svc.auth.Login(ctx, usecase.LoginInput{Username: "bob", Password: "pw"})
	require.NoError(t, err)
	bobs, err := svc.catalog.AddProduct(ctx, usecase.ProductInput{Name: "Hammer", Price: "9", Description: "Bob's"})
	require.NoError(t, err)

	_, err = svc.auth.Register(ctx, usecase.RegisterInput{Username: "alice", Password: "pw", ConfirmPassword: "pw"})
	require.NoError(t, err)
	_, err = svc.auth.Login(ctx, usecase.LoginInput{Username: "alice", Password: "pw"})
	require.NoError(t, err)

	out, err := runScript(t, svc,
		"update "+uuid.NewString(),
		"update "+bobs.ID.String(),
		"whoami",
	)
	require.NoError(t, err)

	assert.Equal(t, 2, strings.Count(out, "error: product not found"))
	assert.NotContains(t, out, "Name")
	// The next line is read as a command, not as a form answer.
	assert.Contains(t, out, "alice\n")
}

func TestConsole_UpdateAndDelete(t *testing.T) {
	svc := newServices(t, nil)
	ctx := context.Background()

	_, err := svc.auth.Register(ctx, usecase.RegisterInput{Username: "alice", Password: "pw", ConfirmPassword: "pw"})
	require.NoError(t, err)
	_, err = svc.auth.Login(ctx, usecase.LoginInput{Username: "alice", Password: "pw"})
	require.NoError(t, err)
	product, err := svc.catalog.AddProduct(ctx, usecase.ProductInput{Name: "Pen", Price: "1.5", Description: "Blue pen"})
	require.NoError(t, err)
	id := product.ID.String()

	out, err := runScript(t, svc,
		"update "+id, "", "2,25", "",
		"delete "+id, "n",
		"delete "+id, "yes",
	)
	require.NoError(t, err)

	assert.Contains(t, out, "Name [Pen]: ")
	assert.Contains(t, out, "Price [1.5]: ")
	assert.Contains(t, out, "Updated Pen.")
	assert.Contains(t, out, `Delete "Pen"? [y/N]: `)
	assert.Contains(t, out, "Cancelled.")
	assert.Contains(t, out, "Deleted.")

	products, err := svc.catalog.ListForCurrentUser(ctx)
	require.NoError(t, err)
	assert.Empty(t, products)
}

type brokenHasher struct{}

func (brokenHasher) Hash(string) (string, error) {
	return "", domainerrors.ErrPasswordHashFailed.WrapMessage("no entropy")
}

func (brokenHasher) Check(string, string) bool { return false }

type countingShutdowner struct {
	calls int
}

func (s *countingShutdowner) Shutdown(...fx.ShutdownOption) error {
	s.calls++

	return nil
}

func TestConsole_HashingFailureIsFatal(t *testing.T) {
	svc := newServices(t, brokenHasher{})

	var out bytes.Buffer
	shutdowner := &countingShutdowner{}
	console := NewConsole(svc.auth, svc.catalog, discardLogger(),
		script("register", "alice", "pw", "pw", "help"), &out)
	console.shutdowner = shutdowner

	err := console.Serve(context.Background())
	require.Error(t, err)
	assert.Equal(t, domainerrors.KindHashing, domainerrors.KindOf(err))
	assert.Contains(t, out.String(), "error: password hashing failed")
	assert.NotContains(t, out.String(), "Commands:")
	assert.Equal(t, 1, shutdowner.calls)
}

func TestConsole_EndOfInputStops(t *testing.T) {
	svc := newServices(t, nil)

	shutdowner := &countingShutdowner{}
	console := NewConsole(svc.auth, svc.catalog, discardLogger(), strings.NewReader("whoami"), io.Discard)
	console.shutdowner = shutdowner

	require.NoError(t, console.Serve(context.Background()))
	assert.Equal(t, 1, shutdowner.calls)
}

func TestConsole_PasswordReaderIsUsed(t *testing.T) {
	svc := newServices(t, nil)

	var out bytes.Buffer
	console := NewConsole(svc.auth, svc.catalog, discardLogger(), script("register", "alice", "exit"), &out)
	secrets := []string{"pw", "pw"}
	console.readPassword = func() ([]byte, error) {
		next := secrets[0]
		secrets = secrets[1:]

		return []byte(next), nil
	}

	require.NoError(t, console.Serve(context.Background()))
	assert.Contains(t, out.String(), "Registered alice.")
	assert.Empty(t, secrets)
}
