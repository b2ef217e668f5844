package player

import (
	"context"
	"fmt"
	"sort"
	"time"

	"github.com/agentstation/songmap/pkg/errors"
)

// unreadable marks a track value the fake reports as transiently unreadable.
type unreadable struct{}

type push struct {
	index int
	key   string
	value any
}

// fakeClient is an in-memory player. tracks[i] is the track at index i+1.
type fakeClient struct {
	tracks      []map[string]any
	current     int
	failJump    map[int]bool
	unsupported map[string]bool
	statusErr   error

	volume    int
	plays     int
	dismissed int
	pushes    []push
}

func newFakeClient(tracks ...map[string]any) *fakeClient {
	return &fakeClient{
		tracks:      tracks,
		volume:      100,
		failJump:    map[int]bool{},
		unsupported: map[string]bool{},
	}
}

func track(name, artist string, year int) map[string]any {
	return map[string]any{
		"name":         name,
		"artist":       artist,
		"location":     "/Music/" + name + ".mp3",
		"year":         year,
		"rating":       60,
		"played count": 3,
		"date added":   "2018-04-05T06:07:08",
	}
}

func (f *fakeClient) Status(context.Context) (string, error) {
	if f.statusErr != nil {
		return "", f.statusErr
	}
	return "paused", nil
}

func (f *fakeClient) Jump(_ context.Context, index int) error {
	if f.failJump[index] {
		return fmt.Errorf("track %d not found", index)
	}
	if index == -1 {
		index = len(f.tracks)
	}
	if index < 1 || index > len(f.tracks) {
		return fmt.Errorf("track %d out of range", index)
	}
	f.current = index
	return nil
}

func (f *fakeClient) Next(context.Context) error {
	if f.current < len(f.tracks) {
		f.current++
	}
	return nil
}

func (f *fakeClient) Play(context.Context) error {
	f.plays++
	return nil
}

func (f *fakeClient) SetVolume(_ context.Context, volume int) error {
	f.volume = volume
	return nil
}

func (f *fakeClient) CurrentIndex(context.Context) (int, error) {
	return f.current, nil
}

func (f *fakeClient) TrackKeys(context.Context) ([]string, error) {
	keys := make([]string, 0)
	for k := range f.tracks[f.current-1] {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys, nil
}

func (f *fakeClient) TrackValue(_ context.Context, key string) (any, error) {
	v, ok := f.tracks[f.current-1][key]
	if !ok {
		return nil, errors.NewFieldError("get", key, errors.ErrUnsupported)
	}
	if _, bad := v.(unreadable); bad {
		return nil, errors.NewFieldError("get", key, errors.ErrUnreadable)
	}
	return v, nil
}

func (f *fakeClient) SetTrackValue(_ context.Context, key string, value any) error {
	if f.unsupported[key] {
		return errors.NewFieldError("set", key, errors.ErrUnsupported)
	}
	f.pushes = append(f.pushes, push{index: f.current, key: key, value: value})
	f.tracks[f.current-1][key] = value
	return nil
}

func (f *fakeClient) Dismiss(context.Context) error {
	f.dismissed++
	return nil
}

func noSleep(context.Context, time.Duration) error { return nil }
