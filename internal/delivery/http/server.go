// Package http serves the catalog as a loopback JSON API.
package http

import (
	"context"
	"log/slog"
	"net"
	"net/http"
	"strconv"

	"productsmanager/config"
	"productsmanager/internal/delivery"
	httpmiddleware "productsmanager/internal/delivery/http/middleware"
	"productsmanager/internal/delivery/http/router"
	"productsmanager/internal/delivery/middleware"
	"productsmanager/internal/domain/lifecycle"
	"productsmanager/internal/validation"

	"github.com/labstack/echo/v4"
	echomiddleware "github.com/labstack/echo/v4/middleware"
	"github.com/pkg/errors"
	"go.uber.org/fx"
)

// maxRequestBody bounds JSON bodies; product forms are tiny.
const maxRequestBody = "64K"

type httpServer struct {
	cfg    *config.Config
	logger *slog.Logger
	server *echo.Echo
}

// HTTPParams holds dependencies for the HTTP server, injected by Fx.
type HTTPParams struct {
	fx.In
	fx.Lifecycle

	Config          *config.Config
	Logger          *slog.Logger
	Validator       *validation.Validator
	ErrorMiddleware *httpmiddleware.ErrorMiddleware
	RouterParams    router.RouterParams
}

// NewEcho builds the configured echo instance with every route registered.
func NewEcho(params HTTPParams) *echo.Echo {
	echoServer := echo.New()
	echoServer.HideBanner = true
	echoServer.HidePort = true
	echoServer.Server.ReadTimeout = params.Config.HTTP.Timeouts.ReadTimeout
	echoServer.Server.WriteTimeout = params.Config.HTTP.Timeouts.WriteTimeout
	echoServer.Server.IdleTimeout = params.Config.HTTP.Timeouts.IdleTimeout

	// 1. Recover first to catch panics early.
	echoServer.Use(echomiddleware.Recover())

	// 2. Request ID before the logger so log lines carry it.
	requestIDMiddleware := middleware.NewRequestIDMiddleware(params.Logger)
	echoServer.Use(requestIDMiddleware.Process)

	loggerMiddleware := middleware.NewLoggerMiddleware(params.Logger, params.Config)
	echoServer.Use(loggerMiddleware.Handle)

	echoServer.Use(echomiddleware.BodyLimit(maxRequestBody))

	// One handler at a time: the session is shared process state.
	echoServer.Use(httpmiddleware.Serialize())

	echoServer.HTTPErrorHandler = params.ErrorMiddleware.HandleHTTPError
	echoServer.Validator = params.Validator

	router.NewRouter(params.RouterParams).RegisterRoutes(echoServer)

	return echoServer
}

func NewServer(params HTTPParams) (delivery.Delivery, error) {
	srv := &httpServer{
		cfg:    params.Config,
		logger: params.Logger,
		server: NewEcho(params),
	}

	params.Append(fx.Hook{
		OnStop: srv.stop,
	})

	return srv, nil
}

func (s *httpServer) Serve(_ context.Context) error {
	hostPort := net.JoinHostPort(s.cfg.HTTP.Host, strconv.Itoa(s.cfg.HTTP.Port))
	s.logger.Info("Starting HTTP server", slog.String("host_port", hostPort))

	if err := s.server.Start(hostPort); err != nil && !errors.Is(err, http.ErrServerClosed) {
		return errors.Wrap(err, "failed to serve http")
	}

	return nil
}

func (s *httpServer) stop(ctx context.Context) error {
	shutdownCtx, cancel := context.WithTimeout(ctx, lifecycle.DefaultTimeout)
	defer cancel()

	s.logger.Info("Shutting down HTTP server")

	return errors.WithStack(s.server.Shutdown(shutdownCtx))
}
