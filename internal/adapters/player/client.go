// Package player reads from and writes to a live desktop media player.
//
// The player has no stable key besides a track's position in the library
// playlist, so every operation drives it index by index: jump, play, read
// the current track. The writer finds a song by scanning the whole index
// range and then updates the matching track field by field.
package player

import (
	"context"
)

// Client is the capability surface of a live player. Indexes are 1-based
// and -1 addresses the last track.
//
// TrackValue and SetTrackValue report a field that cannot be read right
// now with errors.ErrUnreadable and a field the player does not support
// with errors.ErrUnsupported.
type Client interface {
	Status(ctx context.Context) (string, error)
	Jump(ctx context.Context, index int) error
	Next(ctx context.Context) error
	Play(ctx context.Context) error
	SetVolume(ctx context.Context, volume int) error
	CurrentIndex(ctx context.Context) (int, error)
	TrackKeys(ctx context.Context) ([]string, error)
	TrackValue(ctx context.Context, key string) (any, error)
	SetTrackValue(ctx context.Context, key string, value any) error

	// Dismiss closes a modal error dialog the player may have raised.
	Dismiss(ctx context.Context) error
}
