package store

import (
	"context"
	"database/sql"
	"fmt"
	"log/slog"
	"time"

	"productsmanager/config"
	"productsmanager/internal/domain/lifecycle"
	"productsmanager/internal/infra/persistence/model"

	"github.com/pkg/errors"
	pgLib "github.com/slighter12/go-lib/database/postgres"
	"go.uber.org/fx"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

const (
	dbPoolMonitorInterval       = 5 * time.Second
	dbPoolWarnDurationThreshold = 50 * time.Millisecond

	// InMemorySQLite is a private, process-local database.
	InMemorySQLite = ":memory:"
)

// Params defines the required parameters
type Params struct {
	fx.In
	fx.Lifecycle

	Config *config.Config
	Logger *slog.Logger
}

// New opens the configured backend and ties its lifetime to the app.
func New(params Params) (*gorm.DB, error) {
	db, err := open(params.Config)
	if err != nil {
		return nil, err
	}

	db = db.Session(&gorm.Session{
		// Explicit transactions come from TransactionManager.Execute.
		SkipDefaultTransaction: true,
		Logger:                 newGormSlogLogger(params.Logger, params.Config),
	})

	if params.Config.Storage.AutoMigrate {
		if err := Migrate(db); err != nil {
			return nil, err
		}
	}

	sqlDB, err := db.DB()
	if err != nil {
		return nil, errors.Wrap(err, "failed to get sql.DB")
	}

	monitorCtx, cancelMonitor := context.WithCancel(context.Background())

	params.Append(fx.Hook{
		OnStart: func(startCtx context.Context) error {
			ctx, cancel := context.WithTimeout(startCtx, lifecycle.DefaultTimeout)
			defer cancel()

			if err := sqlDB.PingContext(ctx); err != nil {
				return errors.Wrapf(err, "failed to ping %s", params.Config.Storage.Driver)
			}

			go monitorDBPool(monitorCtx, params.Logger, sqlDB, dbPoolMonitorInterval)

			return nil
		},
		OnStop: func(_ context.Context) error {
			cancelMonitor()

			return sqlDB.Close()
		},
	})

	return db, nil
}

func open(cfg *config.Config) (*gorm.DB, error) {
	switch cfg.Storage.Driver {
	case config.DriverPostgres:
		db, err := pgLib.New(cfg.Postgres)
		if err != nil {
			return nil, errors.Wrap(err, "failed to create PostgreSQL client")
		}
		db.TranslateError = true

		return db, nil
	case config.DriverSQLite, "":
		return OpenSQLite(cfg.Storage.SQLitePath)
	default:
		return nil, errors.Errorf("unknown storage driver: %s", cfg.Storage.Driver)
	}
}

// OpenSQLite opens a SQLite file, or a private in-memory database for
// InMemorySQLite. Foreign keys are enforced and the pool holds a single
// connection, so writes are serialized and in-memory data stays visible.
func OpenSQLite(path string) (*gorm.DB, error) {
	dsn := fmt.Sprintf("file:%s?_foreign_keys=on&_busy_timeout=5000", path)

	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{
		TranslateError: true,
		Logger:         logger.Discard,
	})
	if err != nil {
		return nil, errors.Wrap(err, "failed to open SQLite database")
	}

	sqlDB, err := db.DB()
	if err != nil {
		return nil, errors.Wrap(err, "failed to get SQLite sql.DB")
	}
	sqlDB.SetMaxOpenConns(1)

	return db, nil
}

// Migrate creates or updates the users and products tables.
func Migrate(db *gorm.DB) error {
	if err := db.AutoMigrate(model.All()...); err != nil {
		return errors.Wrap(err, "failed to migrate schema")
	}

	return nil
}

func monitorDBPool(ctx context.Context, logger *slog.Logger, sqlDB *sql.DB, interval time.Duration) {
	if logger == nil || sqlDB == nil {
		return
	}

	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	prev := sqlDB.Stats()
	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			cur := sqlDB.Stats()
			waitDelta := cur.WaitCount - prev.WaitCount
			waitDurationDelta := cur.WaitDuration - prev.WaitDuration

			if waitDelta > 0 {
				attrs := []slog.Attr{
					slog.Int64("waitCountDelta", waitDelta),
					slog.Duration("waitDurationDelta", waitDurationDelta),
					slog.Duration("avgWait", waitDurationDelta/time.Duration(waitDelta)),
					slog.Int("maxOpenConns", cur.MaxOpenConnections),
					slog.Int("inUseConns", cur.InUse),
					slog.Int64("waitCountTotal", cur.WaitCount),
				}
				if waitDurationDelta >= dbPoolWarnDurationThreshold {
					logger.LogAttrs(ctx, slog.LevelWarn, "DB pool wait detected", attrs...)
				} else {
					logger.LogAttrs(ctx, slog.LevelDebug, "DB pool wait observed", attrs...)
				}
			}

			prev = cur
		}
	}
}
