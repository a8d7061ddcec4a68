package main

import (
	"context"
	"log/slog"
	"os"

	"productsmanager/config"
	"productsmanager/internal/delivery"
	"productsmanager/internal/delivery/http"
	"productsmanager/internal/delivery/http/middleware"
	"productsmanager/internal/delivery/http/router/handler"
	"productsmanager/internal/delivery/repl"
	"productsmanager/internal/infra/auth"
	"productsmanager/internal/infra/export"
	logs "productsmanager/internal/infra/log"
	"productsmanager/internal/infra/persistence/store"
	"productsmanager/internal/session"
	"productsmanager/internal/usecase/impl"
	"productsmanager/internal/validation"

	"github.com/spf13/cobra"
	"go.uber.org/fx"
	"go.uber.org/fx/fxevent"
)

const configDirEnv = "PRODUCTSMANAGER_CONFIG_DIR"

type startDeliveriesParams struct {
	fx.In
	fx.Lifecycle

	Shutdowner fx.Shutdowner
	Logger     *slog.Logger
	Deliveries []delivery.Delivery `group:"deliveries"`
}

func main() {
	if err := newRootCmd().Execute(); err != nil {
		os.Exit(1)
	}
}

func newRootCmd() *cobra.Command {
	var configDir string

	replCmd := &cobra.Command{
		Use:   "repl",
		Short: "Manage your products from an interactive prompt",
		RunE: func(cmd *cobra.Command, args []string) error {
			return run(injectDelivery(repl.New))
		},
	}

	serveCmd := &cobra.Command{
		Use:   "serve",
		Short: "Serve the catalog as a JSON API on the loopback interface",
		RunE: func(cmd *cobra.Command, args []string) error {
			return run(
				injectMiddleware(),
				injectHandler(),
				injectDelivery(http.NewServer),
			)
		},
	}

	rootCmd := &cobra.Command{
		Use:   "productsmanager",
		Short: "A personal product catalog",
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			if configDir != "" {
				return os.Setenv(configDirEnv, configDir)
			}

			return nil
		},
		RunE:         replCmd.RunE,
		SilenceUsage: true,
	}

	rootCmd.PersistentFlags().StringVar(&configDir, "config-dir", "", "Directory holding config.yaml (env: "+configDirEnv+")")
	rootCmd.AddCommand(replCmd, serveCmd)

	return rootCmd
}

// run builds the container around the selected delivery and blocks until it stops.
func run(opts ...fx.Option) error {
	app := fx.New(
		injectInfra(),
		injectRepo(),
		injectService(),
		injectUsecase(),
		fx.Options(opts...),
		fx.WithLogger(func(logger *slog.Logger) fxevent.Logger {
			return &fxevent.SlogLogger{Logger: logger}
		}),
		fx.Invoke(
			startDeliveries,
		),
	)
	if err := app.Err(); err != nil {
		return err
	}

	app.Run()

	return nil
}

func injectInfra() fx.Option {
	return fx.Provide(
		config.New,
		logs.New,
		store.New,
	)
}

func injectRepo() fx.Option {
	return fx.Options(
		fx.Provide(
			store.NewTransactionManager,
		),
	)
}

func injectService() fx.Option {
	return fx.Options(
		fx.Provide(
			auth.NewBcryptHasher,
			auth.NewJWTService,
			export.New,
			session.New,
			validation.New,
		),
	)
}

func injectUsecase() fx.Option {
	return fx.Options(
		fx.Provide(
			impl.NewAuthService,
			impl.NewCatalogService,
		),
	)
}

func injectMiddleware() fx.Option {
	return fx.Options(
		fx.Provide(
			middleware.NewAuthMiddleware,
			middleware.NewErrorMiddleware,
		),
	)
}

func injectHandler() fx.Option {
	return fx.Options(
		fx.Provide(
			handler.NewAuthHandler,
			handler.NewProductHandler,
		),
	)
}

func injectDelivery(constructor any) fx.Option {
	return fx.Options(
		fx.Provide(
			fx.Annotate(
				constructor,
				fx.ResultTags(`group:"deliveries"`),
			),
		),
	)
}

// startDeliveries runs every delivery once the lifecycle has started, so the
// database is reachable before the first command arrives.
func startDeliveries(params startDeliveriesParams) {
	ctx, cancel := context.WithCancel(context.Background())

	params.Append(fx.Hook{
		OnStart: func(context.Context) error {
			for _, d := range params.Deliveries {
				go func() {
					if err := d.Serve(ctx); err != nil {
						params.Logger.Error("Delivery stopped", slog.Any("error", err))
						_ = params.Shutdowner.Shutdown(fx.ExitCode(1))
					}
				}()
			}

			return nil
		},
		OnStop: func(context.Context) error {
			cancel()

			return nil
		},
	})
}
