// Package app provides the application context and dependency management
// for the songmap CLI. It centralizes configuration, logging and the
// adapter registry that commands select from.
package app

import (
	"io"
	"os"

	"github.com/rs/zerolog"
	"github.com/spf13/viper"

	"github.com/agentstation/songmap/internal/cmd/application"
	"github.com/agentstation/songmap/pkg/adapters"
	"github.com/agentstation/songmap/pkg/errors"

	// Register every adapter with the default registry.
	_ "github.com/agentstation/songmap/internal/adapters/all"
)

// App represents the songmap application with all its dependencies.
type App struct {
	// Version information
	version string
	commit  string
	date    string
	builtBy string

	config   *Config
	viper    *viper.Viper
	logger   *zerolog.Logger
	registry *adapters.Registry
	stdout   io.Writer
}

// New creates a new App instance with the given version information.
// The app is initialized with configuration loaded from the environment
// and config file, which functional options may replace.
func New(version, commit, date, builtBy string, opts ...Option) (*App, error) {
	app := &App{
		version:  version,
		commit:   commit,
		date:     date,
		builtBy:  builtBy,
		viper:    viper.New(),
		registry: adapters.Default(),
		stdout:   os.Stdout,
	}

	config, err := LoadConfig(app.viper)
	if err != nil {
		return nil, errors.WrapResource("load", "config", "", err)
	}
	app.config = config

	logger := NewLogger(config)
	app.logger = &logger

	for _, opt := range opts {
		if err := opt(app); err != nil {
			return nil, err
		}
	}

	return app, nil
}

// Version returns the version information.
func (a *App) Version() string {
	return a.version
}

// Commit returns the git commit hash.
func (a *App) Commit() string {
	return a.commit
}

// Date returns the build date.
func (a *App) Date() string {
	return a.date
}

// BuiltBy returns the build system identifier.
func (a *App) BuiltBy() string {
	return a.builtBy
}

// Settings returns the application configuration.
func (a *App) Settings() *Config {
	return a.config
}

// Config returns the viper instance backing the configuration.
func (a *App) Config() *viper.Viper {
	return a.viper
}

// Logger returns the application logger.
func (a *App) Logger() *zerolog.Logger {
	return a.logger
}

// Registry returns the adapter registry.
func (a *App) Registry() *adapters.Registry {
	return a.registry
}

// OutputFormat returns the requested output format.
func (a *App) OutputFormat() string {
	return a.config.Format
}

// Quiet reports whether --quiet was given.
func (a *App) Quiet() bool {
	return a.config.Quiet
}

// Stdout returns the writer command results go to.
func (a *App) Stdout() io.Writer {
	return a.stdout
}

// Option is a functional option for configuring the App.
type Option func(*App) error

// WithConfig sets a custom configuration.
func WithConfig(config *Config) Option {
	return func(a *App) error {
		a.config = config
		return nil
	}
}

// WithLogger sets a custom logger.
func WithLogger(logger *zerolog.Logger) Option {
	return func(a *App) error {
		a.logger = logger
		return nil
	}
}

// WithRegistry replaces the adapter registry (useful for testing).
func WithRegistry(registry *adapters.Registry) Option {
	return func(a *App) error {
		a.registry = registry
		return nil
	}
}

// WithStdout redirects command results.
func WithStdout(w io.Writer) Option {
	return func(a *App) error {
		a.stdout = w
		return nil
	}
}

// Ensure App implements application.Application at compile time.
var _ application.Application = (*App)(nil)
