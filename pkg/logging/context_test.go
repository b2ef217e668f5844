package logging_test

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/agentstation/songmap/pkg/logging"
)

func TestContextHelpers(t *testing.T) {
	tl := logging.NewTestLogger(t)
	ctx := logging.WithLogger(context.Background(), tl.Logger)

	ctx = logging.WithAdapter(ctx, "music-write")
	ctx = logging.WithIndex(ctx, 42)
	ctx = logging.WithSong(ctx, "Daft Punk - One More Time 2000 ⭐⭐⭐⭐")
	ctx = logging.WithField(ctx, "field", "rating")

	logging.Ctx(ctx).Warn().Msg("unable to push field")

	assert.True(t, tl.Contains(`"adapter":"music-write"`))
	assert.True(t, tl.Contains(`"index":42`))
	assert.True(t, tl.Contains(`"field":"rating"`))
	assert.True(t, tl.Contains("One More Time"))
}

func TestWithFields(t *testing.T) {
	tl := logging.NewTestLogger(t)
	ctx := logging.WithLogger(context.Background(), tl.Logger)

	ctx = logging.WithFields(ctx, map[string]any{
		"reader":  "json-read",
		"read":    int64(7),
		"ratio":   0.5,
		"dry_run": true,
		"error":   errors.New("boom"),
		"cause":   errors.New("bang"),
		"list":    []int{1, 2},
	})
	logging.FromContext(ctx).Info().Msg("done")

	assert.True(t, tl.Contains(`"reader":"json-read"`))
	assert.True(t, tl.Contains(`"read":7`))
	assert.True(t, tl.Contains(`"ratio":0.5`))
	assert.True(t, tl.Contains(`"dry_run":true`))
	assert.True(t, tl.Contains(`"error":"boom"`))
	assert.True(t, tl.Contains(`"cause":"bang"`))
	assert.True(t, tl.Contains(`"list":[1,2]`))
}

func TestFromContextFallsBackToDefault(t *testing.T) {
	//nolint:staticcheck // nil context is part of the contract
	assert.Equal(t, logging.Default(), logging.FromContext(nil))
	assert.Equal(t, logging.Default(), logging.FromContext(context.Background()))

	ctx := logging.WithLogger(context.Background(), nil)
	assert.Equal(t, logging.Default(), logging.FromContext(ctx))
}
