// Package docstore persists songs as documents. A Store is a minimal
// append-and-scan contract implemented by a TinyDB compatible JSON file,
// MongoDB and SQLite; one reader and one append-only writer adapter sit on
// top of each backend.
package docstore

import (
	"context"
	"iter"
	"strconv"

	"github.com/rs/zerolog"

	"github.com/agentstation/songmap/pkg/errors"
	"github.com/agentstation/songmap/pkg/logging"
	"github.com/agentstation/songmap/pkg/songs"
)

// Document is one stored song keyed by canonical field name.
type Document map[string]any

// Store is a document store.
type Store interface {
	// Insert appends doc. It never deduplicates.
	Insert(ctx context.Context, doc Document) error
	// All returns every document in insertion order.
	All(ctx context.Context) ([]Document, error)
	Close() error
}

// FromSong converts s into a document. Absent optional strings are stored
// as null.
func FromSong(s *songs.Song) Document {
	doc := make(Document, len(songs.Fields()))
	for _, fv := range s.Values() {
		doc[fv.Field.String()] = fv.Value
	}
	return doc
}

// Reader yields one song per stored document.
type Reader struct {
	name  string
	store Store
}

// NewReader wraps store. name is the adapter name used in logs.
func NewReader(name string, store Store) *Reader {
	return &Reader{name: name, store: store}
}

// Songs implements adapters.Reader.
func (r *Reader) Songs(ctx context.Context) iter.Seq2[*songs.Song, error] {
	return func(yield func(*songs.Song, error) bool) {
		docs, err := r.store.All(ctx)
		if err != nil {
			yield(nil, err)
			return
		}
		r.logger(ctx).Debug().Int("documents", len(docs)).Msg("Loaded documents")

		for i, doc := range docs {
			if err := ctx.Err(); err != nil {
				yield(nil, err)
				return
			}
			s, err := songs.New(songs.DocumentNormalizer{}, doc)
			if err != nil {
				err = errors.WrapResource("read", "document", strconv.Itoa(i+1), err)
			}
			if !yield(s, err) {
				return
			}
		}
	}
}

// Close implements adapters.Reader.
func (r *Reader) Close() error {
	return r.store.Close()
}

func (r *Reader) logger(ctx context.Context) *zerolog.Logger {
	return logging.FromContext(logging.WithAdapter(ctx, r.name))
}

// Writer appends every song it is given.
type Writer struct {
	name  string
	store Store
}

// NewWriter wraps store. name is the adapter name used in logs.
func NewWriter(name string, store Store) *Writer {
	return &Writer{name: name, store: store}
}

// Write implements adapters.Writer.
func (w *Writer) Write(ctx context.Context, s *songs.Song) error {
	if err := w.store.Insert(ctx, FromSong(s)); err != nil {
		return errors.WrapResource("write", "document", s.Name, err)
	}
	logging.FromContext(logging.WithAdapter(ctx, w.name)).Debug().Str("song", s.String()).Msg("Inserted song")
	return nil
}

// Close implements adapters.Writer.
func (w *Writer) Close() error {
	return w.store.Close()
}
