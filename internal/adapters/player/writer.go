package player

import (
	"context"
	"time"

	"github.com/agentstation/songmap/pkg/errors"
	"github.com/agentstation/songmap/pkg/logging"
	"github.com/agentstation/songmap/pkg/songs"
)

// Writer updates existing tracks of the live player in place. It never
// creates tracks.
type Writer struct {
	*Reader
	match   []songs.Field
	exclude songs.FieldSet
}

// NewWriter creates a writer that finds tracks by the match fields and
// pushes every field except the excluded ones.
func NewWriter(ctx context.Context, client Client, match, exclude []songs.Field, opts ...Option) (*Writer, error) {
	if len(match) == 0 {
		return nil, errors.NewConfigError(WriterName, "at least one match field is required", nil)
	}
	r, err := NewReader(ctx, client, append([]Option{WithName(WriterName)}, opts...)...)
	if err != nil {
		return nil, err
	}
	return &Writer{
		Reader:  r,
		match:   match,
		exclude: songs.NewFieldSet(exclude...),
	}, nil
}

// MatchKey returns the match field values of s.
func (w *Writer) MatchKey(s *songs.Song) []songs.FieldValue {
	key := make([]songs.FieldValue, 0, len(w.match))
	for _, f := range w.match {
		v, _ := s.Value(f)
		key = append(key, songs.FieldValue{Field: f, Value: v})
	}
	return key
}

// IndexOf scans the player for the first track whose fields equal every
// pair of key. found is false when no track matches.
func (w *Writer) IndexOf(ctx context.Context, key []songs.FieldValue) (index int, found bool, err error) {
	logger := w.logger(ctx)
	w.scan(ctx, func(i int, s *songs.Song, scanErr error) bool {
		if scanErr != nil {
			if ctx.Err() != nil || i == 0 {
				err = scanErr
				return false
			}
			logger.Warn().Int("index", i).Err(scanErr).Msg("Unable to read track while searching")
			return true
		}
		logger.Debug().Int("index", i).Msg("Searching song")
		if matches(s, key) {
			index, found = i, true
			return false
		}
		return true
	})
	return index, found, err
}

func matches(s *songs.Song, key []songs.FieldValue) bool {
	for _, kv := range key {
		got, ok := s.Value(kv.Field)
		if !ok || !equalValues(got, kv.Value) {
			return false
		}
	}
	return true
}

func equalValues(a, b any) bool {
	ta, aok := a.(time.Time)
	tb, bok := b.(time.Time)
	if aok && bok {
		return ta.Equal(tb)
	}
	return a == b
}

// Write implements adapters.Writer. A song that is not found, a track
// that cannot be positioned on and a field that cannot be pushed are
// logged and skipped.
func (w *Writer) Write(ctx context.Context, s *songs.Song) error {
	ctx = logging.WithSong(ctx, s.String())
	logger := w.logger(ctx)

	index, found, err := w.IndexOf(ctx, w.MatchKey(s))
	if err != nil {
		return err
	}
	if !found {
		logger.Warn().Msg("Song not found")
		return nil
	}
	logger.Debug().Int("index", index).Msg("Found song")

	if err := w.jump(ctx, index); err != nil {
		if ctx.Err() != nil {
			return ctx.Err()
		}
		return nil
	}

	for _, fv := range s.Values() {
		if w.exclude.Has(fv.Field) {
			continue
		}
		w.push(ctx, index, fv)
	}
	logger.Info().Int("index", index).Msg("Complete updating")
	return nil
}

func (w *Writer) push(ctx context.Context, index int, fv songs.FieldValue) {
	logger := w.logger(ctx).With().Int("index", index).Str("field", fv.Field.String()).Logger()
	if fv.Value == nil {
		logger.Warn().Msg("Skipping - field has no value")
		return
	}
	property, ok := songs.PlayerProperty(fv.Field)
	if !ok {
		logger.Warn().Msg("Skipping - field has no player property")
		return
	}
	if err := w.client.SetTrackValue(ctx, property, fv.Value); err != nil {
		logger.Warn().Err(err).Interface("value", fv.Value).Msg("Skipping - unable to set field")
	}
}
