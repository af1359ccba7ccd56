package app

import (
	"log/slog"

	"go.trai.ch/reuse/internal/core/ports"
)

// LogSettings is implemented by loggers whose format and verbosity change at runtime.
type LogSettings interface {
	SetJSON(enable bool)
	SetLevel(level slog.Level)
}

// Components contains all the initialized application components.
// This struct provides controlled access to components needed by the CLI layer.
type Components struct {
	App    *App
	Logger ports.Logger
	// Settings is nil when the logger cannot be reconfigured.
	Settings LogSettings
}

// NewComponents creates a new Components struct from dependencies.
func NewComponents(app *App, logger ports.Logger) *Components {
	c := &Components{
		App:    app,
		Logger: logger,
	}
	if settings, ok := logger.(LogSettings); ok {
		c.Settings = settings
	}
	return c
}
