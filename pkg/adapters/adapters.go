// Package adapters defines the reader and writer capabilities every song
// source implements, and the static registry that exposes them to the
// command line.
//
// Adapters register a Descriptor from their package init function:
//
//	func init() {
//		adapters.Register(adapters.Descriptor{
//			Name:      "json-read",
//			Type:      adapters.TypeReader,
//			Doc:       "Read songs from a JSON document store",
//			Options:   []adapters.Option{{Name: "path", Type: adapters.OptionString, Default: "/tmp/music.json"}},
//			NewReader: newReader,
//		})
//	}
package adapters

import (
	"context"
	"iter"

	"github.com/agentstation/songmap/pkg/songs"
)

// Type tells readers from writers.
type Type string

// Adapter types.
const (
	TypeReader Type = "reader"
	TypeWriter Type = "writer"
)

// Reader enumerates songs from one source.
type Reader interface {
	// Songs returns a lazy, single-pass sequence. A non-nil error paired
	// with a nil song reports a record that could not be read; iteration
	// may continue past it.
	Songs(ctx context.Context) iter.Seq2[*songs.Song, error]

	// Close releases the source. It is safe to call after a partial
	// iteration.
	Close() error
}

// Writer persists songs into one source.
type Writer interface {
	Write(ctx context.Context, song *songs.Song) error
	Close() error
}

// Contains reports whether r yields a song with the same identity key as
// song. It scans the whole sequence.
func Contains(ctx context.Context, r Reader, song *songs.Song) (bool, error) {
	for candidate, err := range r.Songs(ctx) {
		if err != nil {
			if ctx.Err() != nil {
				return false, ctx.Err()
			}
			continue
		}
		if candidate.SameTrack(song) {
			return true, nil
		}
	}
	return false, ctx.Err()
}
