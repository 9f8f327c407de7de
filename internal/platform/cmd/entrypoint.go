// Package cmd holds the startup plumbing shared by service commands.
package cmd

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"strings"
	"time"

	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"

	"github.com/louisbranch/storefront/internal/platform/config"
	"github.com/louisbranch/storefront/internal/platform/otel"
)

const defaultTelemetryShutdown = 5 * time.Second

// ServiceStorefront names the storefront web service in logs and traces.
const ServiceStorefront = "storefront"

// DotEnvFile is loaded, when present, before environment parsing.
const DotEnvFile = ".env"

// RunOptions tunes RunWithTelemetryAndOptions.
type RunOptions struct {
	// ShutdownTimeout bounds the trace exporter flush on exit.
	ShutdownTimeout time.Duration
	// Logger receives lifecycle events. The global logger is used when nil.
	Logger *zerolog.Logger
}

// ParseConfig loads the optional dotenv files and then the environment into
// cfg. Variables already present in the environment win over dotenv values.
func ParseConfig[T any](cfg *T, dotenv ...string) error {
	if cfg == nil {
		return errors.New("config target is required")
	}
	if err := config.LoadDotEnv(dotenv...); err != nil {
		return err
	}
	return config.ParseEnv(cfg)
}

// ParseArgs parses command-line flags on top of env-derived defaults.
func ParseArgs(fs *flag.FlagSet, args []string) error {
	if fs == nil {
		return errors.New("flag parser is required")
	}
	if args == nil {
		args = []string{}
	}
	if err := fs.Parse(args); err != nil {
		return fmt.Errorf("parse flags: %w", err)
	}
	if rest := fs.Args(); len(rest) > 0 {
		return fmt.Errorf("unexpected arguments: %s", strings.Join(rest, " "))
	}
	return nil
}

// RunWithTelemetry sets up tracing and runs the service until run returns.
func RunWithTelemetry(ctx context.Context, service string, run func(context.Context) error) error {
	return RunWithTelemetryAndOptions(ctx, service, RunOptions{}, run)
}

// RunWithTelemetryAndOptions sets up tracing, runs the service, and flushes
// spans on the way out. A run that ends because ctx was cancelled counts as
// a clean stop.
func RunWithTelemetryAndOptions(ctx context.Context, service string, options RunOptions, run func(context.Context) error) error {
	service = strings.TrimSpace(service)
	if service == "" {
		return errors.New("service name is required")
	}
	if run == nil {
		return errors.New("run function is required")
	}
	if ctx == nil {
		ctx = context.Background()
	}
	logger := log.Logger
	if options.Logger != nil {
		logger = *options.Logger
	}
	logger = logger.With().Str("service", service).Logger()

	shutdown, err := otel.Setup(ctx, service)
	if err != nil {
		return fmt.Errorf("setup telemetry: %w", err)
	}
	defer func() {
		timeout := options.ShutdownTimeout
		if timeout <= 0 {
			timeout = defaultTelemetryShutdown
		}
		flushCtx, cancel := context.WithTimeout(context.Background(), timeout)
		defer cancel()
		if err := shutdown(flushCtx); err != nil {
			logger.Warn().Err(err).Msg("telemetry shutdown")
		}
	}()

	started := time.Now()
	err = run(ctx)
	if errors.Is(err, context.Canceled) && ctx.Err() != nil {
		err = nil
	}
	event := logger.Info()
	if err != nil {
		event = logger.Error().Err(err)
	}
	event.Dur("uptime", time.Since(started)).Msg("service stopped")
	return err
}
