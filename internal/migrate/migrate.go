// Package migrate copies songs from one adapter to another.
package migrate

import (
	"context"

	"github.com/agentstation/songmap/pkg/adapters"
	"github.com/agentstation/songmap/pkg/errors"
	"github.com/agentstation/songmap/pkg/logging"
	"github.com/agentstation/songmap/pkg/songs"
)

// ReaderOpener opens the source of a run.
type ReaderOpener func(ctx context.Context) (adapters.Reader, error)

// WriterOpener opens the destination of a run.
type WriterOpener func(ctx context.Context) (adapters.Writer, error)

// LocationLookup resolves the file location of a track from its tags.
type LocationLookup interface {
	Lookup(artist, name string) (string, bool)
}

// Result summarizes a run.
type Result struct {
	Read        int `json:"read" yaml:"read"`
	Written     int `json:"written" yaml:"written"`
	ReadErrors  int `json:"read_errors" yaml:"read_errors"`
	WriteErrors int `json:"write_errors" yaml:"write_errors"`
	Relocated   int `json:"relocated" yaml:"relocated"`
	Unlocated   int `json:"unlocated" yaml:"unlocated"`
}

// Option configures a run.
type Option func(*options)

type options struct {
	readerName string
	writerName string
	locations  LocationLookup
	onSong     func(*songs.Song)
}

// WithNames sets the adapter names used in log lines.
func WithNames(reader, writer string) Option {
	return func(o *options) {
		o.readerName = reader
		o.writerName = writer
	}
}

// WithLocations replaces each song's location with the one the lookup
// finds for its artist and name before the song is written.
func WithLocations(lookup LocationLookup) Option {
	return func(o *options) {
		o.locations = lookup
	}
}

// WithProgress calls fn after every song has been handed to the writer.
func WithProgress(fn func(*songs.Song)) Option {
	return func(o *options) {
		o.onSong = fn
	}
}

// Run opens both adapters, pulls every song from the reader and writes it.
// Per-record failures are logged and counted; only open and close failures
// and cancellation end the run with an error.
func Run(ctx context.Context, openReader ReaderOpener, openWriter WriterOpener, opts ...Option) (result *Result, err error) {
	o := &options{readerName: "reader", writerName: "writer"}
	for _, opt := range opts {
		opt(o)
	}

	logger := logging.FromContext(ctx)
	logger.Info().
		Str("reader", o.readerName).
		Str("writer", o.writerName).
		Msg("Migrating songs")

	reader, err := openReader(ctx)
	if err != nil {
		return nil, errors.WrapResource("open", "reader", o.readerName, err)
	}
	defer func() {
		err = errors.Join(err, errors.WrapResource("close", "reader", o.readerName, reader.Close()))
	}()

	writer, err := openWriter(ctx)
	if err != nil {
		return nil, errors.WrapResource("open", "writer", o.writerName, err)
	}
	defer func() {
		err = errors.Join(err, errors.WrapResource("close", "writer", o.writerName, writer.Close()))
	}()

	result = &Result{}
	for song, readErr := range reader.Songs(ctx) {
		if ctxErr := ctx.Err(); ctxErr != nil {
			return result, ctxErr
		}
		if readErr != nil {
			result.ReadErrors++
			logger.Warn().Err(readErr).Str("adapter", o.readerName).Msg("Unable to read song")
			continue
		}
		result.Read++

		if o.locations != nil {
			relocate(ctx, o.locations, song, result)
		}

		logger.Info().Str("song", song.String()).Msg("Updating song")
		if writeErr := writer.Write(ctx, song); writeErr != nil {
			if ctxErr := ctx.Err(); ctxErr != nil {
				return result, ctxErr
			}
			result.WriteErrors++
			logger.Warn().Err(writeErr).
				Str("adapter", o.writerName).
				Str("song", song.String()).
				Msg("Unable to write song")
			continue
		}
		result.Written++
		if o.onSong != nil {
			o.onSong(song)
		}
	}
	if ctxErr := ctx.Err(); ctxErr != nil {
		return result, ctxErr
	}

	logger.Info().
		Int("read", result.Read).
		Int("written", result.Written).
		Int("read_errors", result.ReadErrors).
		Int("write_errors", result.WriteErrors).
		Msg("Complete")
	return result, nil
}

func relocate(ctx context.Context, lookup LocationLookup, song *songs.Song, result *Result) {
	location, ok := lookup.Lookup(song.Artist, song.Name)
	if !ok {
		result.Unlocated++
		logging.FromContext(ctx).Warn().
			Str("song", song.String()).
			Str("location", song.Location).
			Msg("No tagged file found, keeping location")
		return
	}
	if location != song.Location {
		logging.FromContext(ctx).Debug().
			Str("song", song.String()).
			Str("from", song.Location).
			Str("to", location).
			Msg("Relocating song")
		song.Location = location
		result.Relocated++
	}
}

// Resolved adapts a registry resolution to the openers Run expects and
// names both sides after their descriptors.
func Resolved(r *adapters.Resolved) (ReaderOpener, WriterOpener, Option) {
	return r.OpenReader, r.OpenWriter, WithNames(r.Reader.Name, r.Writer.Name)
}
