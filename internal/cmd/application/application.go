// Package application defines what subcommands need from the running
// songmap application.
//
// Commands accept this interface rather than the concrete app type so
// they can be tested with Mock:
//
//	mock := &application.Mock{
//	    RegistryFunc: func() *adapters.Registry { return testRegistry },
//	}
//	cmd := list.NewCommand(mock)
package application

import (
	"io"

	"github.com/rs/zerolog"
	"github.com/spf13/viper"

	"github.com/agentstation/songmap/pkg/adapters"
)

// Application provides the application interface that commands need.
type Application interface {
	// Logger returns the configured logger.
	Logger() *zerolog.Logger

	// Config returns the viper instance holding file, env and flag values.
	Config() *viper.Viper

	// Registry returns the adapter registry commands select from.
	Registry() *adapters.Registry

	// OutputFormat returns the requested output format (table, json, ...).
	OutputFormat() string

	// Quiet reports whether informational output is suppressed.
	Quiet() bool

	// Stdout is where command results are written.
	Stdout() io.Writer

	Version() string
	Commit() string
	Date() string
	BuiltBy() string
}
