package app

import (
	"context"
	"io"
	"log/slog"

	"github.com/specialistvlad/sweepkit/internal/ctxlog"
	"github.com/specialistvlad/sweepkit/internal/registry"
)

// App encapsulates the application's dependencies and lifecycle.
type App struct {
	outW     io.Writer
	logger   *slog.Logger
	registry *registry.Registry
}

// NewApp is the constructor for the main application. It returns a fully
// initialized App instance, including its own isolated logger and registry.
// Without modules the core target modules are registered.
func NewApp(outW io.Writer, logging Logging, modules ...registry.Module) *App {
	logger := newLogger(logging.LogLevel, logging.LogFormat, outW)
	logger.Debug("Logger configured successfully.")

	if len(modules) == 0 {
		modules = coreModules
	}
	reg := registry.New(modules...)
	logger.Debug("All Go modules registered.", "count", len(modules), "targets", len(reg.Keys()))

	// A registry that fails validation is a programmer error, so we panic.
	if err := reg.Validate(); err != nil {
		panic(err)
	}
	logger.Debug("Registry validation passed.")

	return &App{
		outW:     outW,
		logger:   logger,
		registry: reg,
	}
}

// Registry returns the application's registry. This is primarily for testing.
func (a *App) Registry() *registry.Registry {
	return a.registry
}

func (a *App) context(ctx context.Context) context.Context {
	return ctxlog.WithLogger(ctx, a.logger)
}
