package logs

import (
	"context"
	"io"
	"log/slog"
	"os"
	"strings"

	"productsmanager/config"

	"github.com/pkg/errors"
	"go.uber.org/fx"
)

// Params defines the parameters required for the logger
type Params struct {
	fx.In
	fx.Lifecycle

	Config *config.Config
}

// New creates and initializes slog.Logger
func New(params Params) (*slog.Logger, error) {
	level, err := parseLogLevel(params.Config.Env.Log.Level)
	if err != nil {
		return nil, err
	}

	out, closeFn, err := openOutput(params.Config.Env.Log.Output)
	if err != nil {
		return nil, err
	}
	if params.Lifecycle != nil && closeFn != nil {
		params.Append(fx.Hook{
			OnStop: func(context.Context) error { return closeFn() },
		})
	}

	var logger *slog.Logger
	if params.Config.Env.Log.Pretty {
		logger = slog.New(slog.NewTextHandler(out, &slog.HandlerOptions{Level: level}))
	} else {
		logger = slog.New(slog.NewJSONHandler(out, &slog.HandlerOptions{Level: level}))
	}

	return logger.With(slog.String("service", params.Config.Env.ServiceName)), nil
}

// openOutput resolves the configured log destination.
func openOutput(output string) (io.Writer, func() error, error) {
	switch strings.ToLower(strings.TrimSpace(output)) {
	case "", "stdout":
		return os.Stdout, nil, nil
	case "stderr":
		return os.Stderr, nil, nil
	}

	f, err := os.OpenFile(output, os.O_CREATE|os.O_APPEND|os.O_WRONLY, 0o600)
	if err != nil {
		return nil, nil, errors.Wrapf(err, "open log output %s", output)
	}

	return f, f.Close, nil
}

// parseLogLevel converts string log level to slog.Level
func parseLogLevel(level string) (slog.Level, error) {
	switch strings.ToLower(level) {
	case "debug":
		return slog.LevelDebug, nil
	case "", "info":
		return slog.LevelInfo, nil
	case "warn":
		return slog.LevelWarn, nil
	case "error":
		return slog.LevelError, nil
	default:
		return slog.LevelInfo, errors.Errorf("unknown log level: %s", level)
	}
}
