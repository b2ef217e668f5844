// Package migrate implements the migrate and fix-location commands.
package migrate

import (
	"github.com/spf13/cobra"

	"github.com/agentstation/songmap/internal/cmd/adapterflags"
	"github.com/agentstation/songmap/internal/cmd/application"
	"github.com/agentstation/songmap/internal/cmd/output"
	"github.com/agentstation/songmap/internal/matcher"
	driver "github.com/agentstation/songmap/internal/migrate"
	"github.com/agentstation/songmap/internal/tagscan"
	"github.com/agentstation/songmap/pkg/constants"
	"github.com/agentstation/songmap/pkg/logging"
)

// NewCommand creates the migrate command.
func NewCommand(app application.Application) *cobra.Command {
	cmd := &cobra.Command{
		Use:     "migrate",
		GroupID: "core",
		Short:   "Copy songs from one adapter to another",
		Long: `Migrate reads every song from the selected reader and writes it to the
selected writer. Exactly one reader and one writer must be enabled.

Songs that cannot be read or written are logged and skipped; the run
always continues to the end of the reader.`,
		Example: `  songmap migrate --library-read --library-read-xml ~/Music/Library.xml --json-write
  songmap migrate --json-read --music-write --music-write-match-fields name,artist,year`,
		Args: cobra.NoArgs,
	}

	set, bindErr := adapterflags.BindRegistry(cmd.Flags(), app.Config(), app.Registry())
	repair := addRepairFlags(cmd)

	cmd.RunE = func(cmd *cobra.Command, _ []string) error {
		if bindErr != nil {
			return bindErr
		}
		return run(cmd, app, set, repair)
	}
	return cmd
}

// NewFixLocationCommand creates the fix-location command, a migration
// that always repairs locations from a tagged music folder.
func NewFixLocationCommand(app application.Application) *cobra.Command {
	cmd := &cobra.Command{
		Use:     "fix-location",
		GroupID: "core",
		Short:   "Migrate songs, replacing locations with files found by tag",
		Long: `Fix-location scans a music folder, reads the artist and title tags of
every audio file, and migrates songs with their location replaced by the
matching file. Songs without a matching file keep their location.`,
		Example: `  songmap fix-location --folder ~/Music/Archive --json-read --music-write
  songmap fix-location --folder /mnt/music --pattern '*.mp3,*.m4a' --fuzzy 0.92 --json-read --json-write`,
		Args: cobra.NoArgs,
	}

	set, bindErr := adapterflags.BindRegistry(cmd.Flags(), app.Config(), app.Registry())
	repair := addRepairFlags(cmd)
	_ = cmd.MarkFlagRequired("folder")

	cmd.RunE = func(cmd *cobra.Command, _ []string) error {
		if bindErr != nil {
			return bindErr
		}
		return run(cmd, app, set, repair)
	}
	return cmd
}

type repairFlags struct {
	folder  string
	pattern string
	fuzzy   float64
}

func addRepairFlags(cmd *cobra.Command) *repairFlags {
	f := &repairFlags{}
	cmd.Flags().StringVar(&f.folder, "folder", "", "music folder to scan for tagged files")
	cmd.Flags().StringVar(&f.pattern, "pattern", constants.DefaultAudioPattern, "comma separated file patterns to scan")
	cmd.Flags().Float64Var(&f.fuzzy, "fuzzy", 0, "Jaro-Winkler threshold for inexact tag matches, 0 disables")
	return f
}

func run(cmd *cobra.Command, app application.Application, set *adapterflags.Set, repair *repairFlags) error {
	ctx := logging.WithLogger(cmd.Context(), app.Logger())

	sel, err := set.Selection()
	if err != nil {
		return err
	}
	resolved, err := app.Registry().Resolve(sel)
	if err != nil {
		return err
	}

	openReader, openWriter, names := driver.Resolved(resolved)
	opts := []driver.Option{names}

	if repair.folder != "" {
		filter, err := matcher.ParseList(repair.pattern, &matcher.Options{CaseInsensitive: true, BaseName: true})
		if err != nil {
			return err
		}
		index, err := tagscan.Scan(ctx, repair.folder, filter, tagscan.WithFuzzy(repair.fuzzy))
		if err != nil {
			return err
		}
		opts = append(opts, driver.WithLocations(index))
	}

	result, err := driver.Run(ctx, openReader, openWriter, opts...)
	if err != nil {
		return err
	}

	if app.Quiet() {
		return nil
	}
	formatter := output.NewFormatter(output.DetectFormat(app.OutputFormat()))
	return formatter.Format(app.Stdout(), *result)
}
