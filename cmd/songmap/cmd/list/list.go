// Package list implements the list command, a read-only dump of one
// reader with optional filters.
package list

import (
	"github.com/spf13/cobra"

	"github.com/agentstation/songmap/internal/cmd/adapterflags"
	"github.com/agentstation/songmap/internal/cmd/application"
	"github.com/agentstation/songmap/internal/cmd/output"
	"github.com/agentstation/songmap/pkg/adapters"
	"github.com/agentstation/songmap/pkg/errors"
	"github.com/agentstation/songmap/pkg/logging"
	"github.com/agentstation/songmap/pkg/songs"
)

// Filter selects the songs printed by list. Zero values disable a
// criterion.
type Filter struct {
	Name       string
	Year       int
	SinceYear  int
	BeforeYear int
	Stars      string
	MinStars   string
	FewerStars string
	Limit      int
}

// Match reports whether s passes every enabled criterion.
func (f *Filter) Match(s *songs.Song) bool {
	switch {
	case f.Name != "" && !s.MatchesName(f.Name):
		return false
	case f.Year != 0 && !s.MatchesYear(f.Year):
		return false
	case f.SinceYear != 0 && !s.YearAtLeast(f.SinceYear):
		return false
	case f.BeforeYear != 0 && !s.YearBefore(f.BeforeYear):
		return false
	case f.Stars != "" && !s.MatchesStarCount(f.Stars):
		return false
	case f.MinStars != "" && !s.AtLeastStarCount(f.MinStars):
		return false
	case f.FewerStars != "" && !s.FewerStarsThan(f.FewerStars):
		return false
	}
	return true
}

// NewCommand creates the list command.
func NewCommand(app application.Application) *cobra.Command {
	filter := &Filter{}
	cmd := &cobra.Command{
		Use:     "list",
		Aliases: []string{"ls"},
		GroupID: "core",
		Short:   "List songs from one reader",
		Example: `  songmap list --json-read --min-stars ⭐⭐⭐⭐
  songmap list --library-read --library-read-xml Library.xml --since-year 1990 -o wide`,
		Args: cobra.NoArgs,
	}

	set, bindErr := adapterflags.BindRegistry(cmd.Flags(), app.Config(), app.Registry(), adapters.TypeReader)

	cmd.Flags().StringVar(&filter.Name, "name", "", "exact song name")
	cmd.Flags().IntVar(&filter.Year, "year", 0, "release year")
	cmd.Flags().IntVar(&filter.SinceYear, "since-year", 0, "released in or after year")
	cmd.Flags().IntVar(&filter.BeforeYear, "before-year", 0, "released before year")
	cmd.Flags().StringVar(&filter.Stars, "stars", "", "exact rating as star glyphs")
	cmd.Flags().StringVar(&filter.MinStars, "min-stars", "", "minimum rating as star glyphs")
	cmd.Flags().StringVar(&filter.FewerStars, "fewer-stars", "", "rating below this many star glyphs")
	cmd.Flags().IntVarP(&filter.Limit, "limit", "l", 0, "stop after this many songs")

	cmd.RunE = func(cmd *cobra.Command, _ []string) error {
		if bindErr != nil {
			return bindErr
		}
		sel, err := set.Selection()
		if err != nil {
			return err
		}
		return listSongs(cmd, app, sel, filter)
	}
	return cmd
}

func listSongs(cmd *cobra.Command, app application.Application, sel adapters.Selection, filter *Filter) (err error) {
	ctx := logging.WithLogger(cmd.Context(), app.Logger())
	logger := logging.FromContext(ctx)

	d, opts, err := app.Registry().ResolveReader(sel)
	if err != nil {
		return err
	}
	reader, err := d.NewReader(ctx, opts)
	if err != nil {
		return errors.WrapResource("open", "reader", d.Name, err)
	}
	defer func() {
		err = errors.Join(err, errors.WrapResource("close", "reader", d.Name, reader.Close()))
	}()

	var found []*songs.Song
	for song, readErr := range reader.Songs(ctx) {
		if readErr != nil {
			logger.Warn().Err(readErr).Str("adapter", d.Name).Msg("Unable to read song")
			continue
		}
		if !filter.Match(song) {
			continue
		}
		found = append(found, song)
		if filter.Limit > 0 && len(found) >= filter.Limit {
			break
		}
	}
	if ctx.Err() != nil {
		return ctx.Err()
	}

	if !app.Quiet() {
		logger.Info().Msgf("Found %d songs", len(found))
	}

	format := output.DetectFormat(app.OutputFormat())
	var data any
	switch format {
	case output.FormatTable, output.FormatWide:
		data = output.SongsToTableData(found, format == output.FormatWide)
	default:
		data = output.SongRecords(found)
	}
	return output.NewFormatter(format).Format(app.Stdout(), data)
}
