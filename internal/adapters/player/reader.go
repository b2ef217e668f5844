package player

import (
	"context"
	"iter"
	"strconv"
	"time"

	"github.com/rs/zerolog"

	"github.com/agentstation/songmap/internal/paths"
	"github.com/agentstation/songmap/pkg/constants"
	"github.com/agentstation/songmap/pkg/errors"
	"github.com/agentstation/songmap/pkg/logging"
	"github.com/agentstation/songmap/pkg/songs"
)

// Option configures a Reader or Writer.
type Option func(*Reader)

// WithSkipLog sets where unreachable indexes are recorded.
func WithSkipLog(log *SkipLog) Option {
	return func(r *Reader) {
		r.skips = log
	}
}

// WithSettleDelay sets the wait after dismissing a player dialog.
func WithSettleDelay(d time.Duration) Option {
	return func(r *Reader) {
		r.settle = d
	}
}

// WithName sets the adapter name used in logs and for the skip log.
func WithName(name string) Option {
	return func(r *Reader) {
		r.name = name
	}
}

// withSleep replaces the settle wait in tests.
func withSleep(sleep func(ctx context.Context, d time.Duration) error) Option {
	return func(r *Reader) {
		r.sleep = sleep
	}
}

// Reader enumerates every track of the live player.
type Reader struct {
	name   string
	client Client
	skips  *SkipLog
	settle time.Duration
	sleep  func(ctx context.Context, d time.Duration) error
}

// NewReader probes the player and returns a reader over it. An
// unreachable player fails with *errors.ProcessError.
func NewReader(ctx context.Context, client Client, opts ...Option) (*Reader, error) {
	r := &Reader{
		name:   ReaderName,
		client: client,
		settle: constants.DefaultSettleDelay,
		sleep:  sleepContext,
	}
	for _, opt := range opts {
		opt(r)
	}
	if r.skips == nil {
		r.skips = NewSkipLog(paths.DataDir(), r.name)
	}

	status, err := client.Status(ctx)
	if err != nil {
		var procErr *errors.ProcessError
		if errors.As(err, &procErr) {
			return nil, err
		}
		return nil, errors.NewProcessError("connect to player", "status", "", err)
	}
	r.logger(ctx).Debug().Str("status", status).Msg("Connected to player")
	return r, nil
}

func (r *Reader) logger(ctx context.Context) *zerolog.Logger {
	return logging.FromContext(logging.WithAdapter(ctx, r.name))
}

// Songs implements adapters.Reader. Unreachable indexes are recorded in
// the skip log and left out of the sequence.
func (r *Reader) Songs(ctx context.Context) iter.Seq2[*songs.Song, error] {
	return func(yield func(*songs.Song, error) bool) {
		r.scan(ctx, func(_ int, s *songs.Song, err error) bool {
			return yield(s, err)
		})
	}
}

// scan walks indexes 1..N and calls fn with the index of every track it
// could position on. It stops when fn returns false.
func (r *Reader) scan(ctx context.Context, fn func(index int, s *songs.Song, err error) bool) {
	last, err := r.lastIndex(ctx)
	if err != nil {
		fn(0, nil, err)
		return
	}

	for index := 1; index <= last; index++ {
		if err := ctx.Err(); err != nil {
			fn(index, nil, err)
			return
		}
		if err := r.jump(ctx, index); err != nil {
			if ctx.Err() != nil {
				fn(index, nil, ctx.Err())
				return
			}
			continue
		}
		if err := r.client.Play(ctx); err != nil {
			r.logger(ctx).Warn().Int("index", index).Err(err).Msg("Unable to play track")
		}

		s, err := r.current(ctx, index)
		if !fn(index, s, err) {
			return
		}
	}
}

// lastIndex jumps to the last track, mutes and reads its index.
func (r *Reader) lastIndex(ctx context.Context) (int, error) {
	if err := r.jump(ctx, -1); err != nil {
		return 0, err
	}
	if err := r.client.SetVolume(ctx, 0); err != nil {
		r.logger(ctx).Warn().Err(err).Msg("Unable to mute player")
	}
	return r.client.CurrentIndex(ctx)
}

// jump positions the player on index. A failure is handled here: the
// dialog is dismissed, the index is recorded and a *errors.PositionError
// is returned so the caller can move on.
func (r *Reader) jump(ctx context.Context, index int) error {
	err := r.client.Jump(ctx, index)
	if err == nil {
		return nil
	}

	logger := r.logger(ctx).With().Int("index", index).Logger()
	logger.Warn().Err(err).Msg("Unable to locate song on index, skipping to next")

	if dismissErr := r.client.Dismiss(ctx); dismissErr != nil {
		logger.Warn().Err(dismissErr).Msg("Unable to dismiss player dialog")
	}
	if sleepErr := r.sleep(ctx, r.settle); sleepErr != nil {
		return errors.NewPositionError(index, sleepErr)
	}
	if addErr := r.skips.Add(index); addErr != nil {
		logger.Error().Err(addErr).Str("file", r.skips.Path()).Msg("Unable to record skipped index")
	} else {
		logger.Debug().Str("file", r.skips.Path()).Msg("Recorded skipped index")
	}
	return errors.NewPositionError(index, err)
}

// current reads every readable key of the current track.
func (r *Reader) current(ctx context.Context, index int) (*songs.Song, error) {
	keys, err := r.client.TrackKeys(ctx)
	if err != nil {
		return nil, errors.WrapResource("read", "track", strconv.Itoa(index), err)
	}

	raw := make(map[string]any, len(keys))
	for _, key := range keys {
		value, err := r.client.TrackValue(ctx, key)
		if err != nil {
			if errors.Is(err, errors.ErrUnreadable) || errors.Is(err, errors.ErrUnsupported) {
				r.logger(ctx).Debug().Int("index", index).Str("field", key).Err(err).Msg("Skipping unreadable field")
				continue
			}
			return nil, errors.WrapResource("read", "track", strconv.Itoa(index), err)
		}
		raw[key] = value
	}

	s, err := songs.New(songs.PlayerNormalizer{}, raw)
	if err != nil {
		return nil, errors.WrapResource("read", "track", strconv.Itoa(index), err)
	}
	return s, nil
}

// Close implements adapters.Reader.
func (r *Reader) Close() error {
	return nil
}

func sleepContext(ctx context.Context, d time.Duration) error {
	if d <= 0 {
		return ctx.Err()
	}
	timer := time.NewTimer(d)
	defer timer.Stop()
	select {
	case <-ctx.Done():
		return ctx.Err()
	case <-timer.C:
		return nil
	}
}
