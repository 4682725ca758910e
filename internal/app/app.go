package app

import (
	"context"
	"fmt"
	"io"
	"log/slog"

	"github.com/vk/ctxscope/internal/ctxlog"
	"github.com/vk/ctxscope/profile"
)

// App encapsulates the application's dependencies, configuration, and lifecycle.
type App struct {
	outW    io.Writer
	logger  *slog.Logger
	config  *Config
	profile *profile.Profile
}

// NewApp is the constructor for the main application. It returns a fully
// initialized App instance, including its own isolated logger and the loaded
// profile.
func NewApp(outW io.Writer, appConfig *Config, loader *profile.Loader) (*App, error) {
	logger := newLogger(appConfig.LogLevel, appConfig.LogFormat, outW)
	ctx := ctxlog.WithLogger(context.Background(), logger)
	logger.Debug("Logger configured successfully.")

	prof, err := loader.Load(ctx, appConfig.ProfilePath)
	if err != nil {
		return nil, fmt.Errorf("failed to load profile: %w", err)
	}
	logger.Debug("Profile loaded.", "variables", len(prof.Vars()), "scopes", len(prof.Scopes()))

	return &App{
		outW:    outW,
		logger:  logger,
		config:  appConfig,
		profile: prof,
	}, nil
}

// Profile returns the loaded profile. This is primarily for testing.
func (a *App) Profile() *profile.Profile {
	return a.profile
}
