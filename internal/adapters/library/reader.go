// Package library reads songs from the desktop player's exported library
// file, an Apple plist XML document.
package library

import (
	"context"
	"iter"
	"os"
	"strconv"

	"github.com/agentstation/songmap/internal/paths"
	"github.com/agentstation/songmap/pkg/adapters"
	"github.com/agentstation/songmap/pkg/constants"
	"github.com/agentstation/songmap/pkg/errors"
	"github.com/agentstation/songmap/pkg/logging"
	"github.com/agentstation/songmap/pkg/songs"
)

// Name is the registered adapter name.
const Name = "library-read"

func init() {
	adapters.Register(adapters.Descriptor{
		Name: Name,
		Type: adapters.TypeReader,
		Doc:  "Read songs from an exported iTunes/Music library XML file",
		Options: []adapters.Option{
			{Name: "xml", Type: adapters.OptionString, Help: "library XML file", Default: constants.DefaultLibraryXML},
			{Name: "limit", Type: adapters.OptionInt, Help: "number of tracks to examine, 0 for all", Default: 0},
		},
		NewReader: func(_ context.Context, opts adapters.Options) (adapters.Reader, error) {
			return Open(opts.String("xml"), opts.Int("limit"))
		},
	})
}

// Reader yields songs from a parsed library export.
type Reader struct {
	file  string
	limit int
	root  *node
}

// Open parses the export at path. limit caps the number of track runs
// examined; 0 examines all of them.
func Open(path string, limit int) (*Reader, error) {
	file := paths.Expand(path)
	f, err := os.Open(file)
	if err != nil {
		return nil, errors.WrapIO("open", file, err)
	}
	defer func() { _ = f.Close() }()

	root, err := decodePlist(f, file)
	if err != nil {
		return nil, err
	}
	return &Reader{file: file, limit: limit, root: root}, nil
}

// Songs implements adapters.Reader.
func (r *Reader) Songs(ctx context.Context) iter.Seq2[*songs.Song, error] {
	return func(yield func(*songs.Song, error) bool) {
		logger := logging.FromContext(logging.WithAdapter(ctx, Name))

		tracks, ok := r.tracks()
		if !ok {
			logger.Warn().Str("file", r.file).Msg("No tracks dict in library export")
			return
		}

		examined := 0
		for _, run := range tracks.Nodes {
			if run.name() != "dict" {
				continue
			}
			if r.limit > 0 && examined >= r.limit {
				return
			}
			examined++

			if err := ctx.Err(); err != nil {
				yield(nil, err)
				return
			}
			if !isRun(run) {
				logger.Warn().Int("run", examined).Msg("Skipping dict without Track ID")
				continue
			}
			raw, reason := pairs(run)
			if reason != "" {
				logger.Warn().Int("run", examined).Str("reason", reason).Msg("Skipping malformed track")
				continue
			}

			song, err := songs.New(songs.LibraryNormalizer{}, raw)
			if err != nil {
				err = errors.WrapResource("read", "song", trackID(raw), err)
			}
			if !yield(song, err) {
				return
			}
		}
	}
}

func (r *Reader) tracks() (node, bool) {
	if r.root == nil {
		return node{}, false
	}
	return r.root.tracks()
}

// Close implements adapters.Reader. The file is already closed after parsing.
func (r *Reader) Close() error {
	r.root = nil
	return nil
}

func trackID(raw map[string]any) string {
	switch v := raw["Track ID"].(type) {
	case string:
		return v
	case int:
		return strconv.Itoa(v)
	}
	return ""
}
