package player

import (
	"context"

	"github.com/agentstation/songmap/internal/paths"
	"github.com/agentstation/songmap/pkg/adapters"
	"github.com/agentstation/songmap/pkg/constants"
	"github.com/agentstation/songmap/pkg/songs"
)

// Registered adapter names.
const (
	ReaderName = "music-read"
	WriterName = "music-write"
)

// newClient opens the live player; tests replace it.
var newClient = func(app string) (Client, error) {
	return NewOSAScript(app)
}

func commonOptions() []adapters.Option {
	return []adapters.Option{
		{Name: "app", Type: adapters.OptionString, Help: "scriptable player application", Default: DefaultApp},
		{Name: "skip-dir", Type: adapters.OptionString, Help: "directory of the skipped-index file", Default: paths.DataDir()},
		{Name: "settle-delay", Type: adapters.OptionDuration, Help: "wait after dismissing a player dialog", Default: constants.DefaultSettleDelay},
	}
}

func optionsFrom(name string, opts adapters.Options) []Option {
	return []Option{
		WithName(name),
		WithSkipLog(NewSkipLog(paths.Expand(opts.String("skip-dir")), name)),
		WithSettleDelay(opts.Duration("settle-delay")),
	}
}

func init() {
	adapters.Register(adapters.Descriptor{
		Name:    ReaderName,
		Type:    adapters.TypeReader,
		Doc:     "Read songs from the macOS Music application",
		Options: commonOptions(),
		NewReader: func(ctx context.Context, opts adapters.Options) (adapters.Reader, error) {
			client, err := newClient(opts.String("app"))
			if err != nil {
				return nil, err
			}
			return NewReader(ctx, client, optionsFrom(ReaderName, opts)...)
		},
	})

	adapters.Register(adapters.Descriptor{
		Name: WriterName,
		Type: adapters.TypeWriter,
		Doc:  "Update matching songs in the macOS Music application",
		Options: append([]adapters.Option{
			{Name: "match-fields", Type: adapters.OptionString, Help: "match fields before updates, comma separated", Default: constants.DefaultMatchFields},
			{Name: "exclude-fields", Type: adapters.OptionString, Help: "fields never pushed, comma separated", Default: ""},
		}, commonOptions()...),
		NewWriter: func(ctx context.Context, opts adapters.Options) (adapters.Writer, error) {
			match, err := songs.ParseFields(opts.String("match-fields"))
			if err != nil {
				return nil, err
			}
			exclude, err := songs.ParseFields(opts.String("exclude-fields"))
			if err != nil {
				return nil, err
			}
			client, err := newClient(opts.String("app"))
			if err != nil {
				return nil, err
			}
			return NewWriter(ctx, client, match, exclude, optionsFrom(WriterName, opts)...)
		},
	})
}
