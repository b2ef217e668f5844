package app

import (
	"runtime"

	"github.com/spf13/cobra"

	"github.com/agentstation/songmap/cmd/songmap/cmd/catalog"
	"github.com/agentstation/songmap/cmd/songmap/cmd/list"
	"github.com/agentstation/songmap/cmd/songmap/cmd/migrate"
	"github.com/agentstation/songmap/pkg/constants"
)

// NewMigrateCommand creates the migrate command with app dependencies.
func (a *App) NewMigrateCommand() *cobra.Command {
	return migrate.NewCommand(a)
}

// NewFixLocationCommand creates the fix-location command with app dependencies.
func (a *App) NewFixLocationCommand() *cobra.Command {
	return migrate.NewFixLocationCommand(a)
}

// NewListCommand creates the list command with app dependencies.
func (a *App) NewListCommand() *cobra.Command {
	return list.NewCommand(a)
}

// NewAdaptersCommand creates the adapters command with app dependencies.
func (a *App) NewAdaptersCommand() *cobra.Command {
	return catalog.NewCommand(a)
}

// NewVersionCommand creates the version command.
func (a *App) NewVersionCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "version",
		Short: "Show version information",
		Args:  cobra.NoArgs,
		Run: func(cmd *cobra.Command, _ []string) {
			cmd.Printf("%s %s\n", constants.AppName, a.version)
			if a.config.Verbose {
				cmd.Printf("  commit:   %s\n", a.commit)
				cmd.Printf("  built:    %s\n", a.date)
				cmd.Printf("  built by: %s\n", a.builtBy)
				cmd.Printf("  go:       %s %s/%s\n", runtime.Version(), runtime.GOOS, runtime.GOARCH)
			}
		},
	}
}
