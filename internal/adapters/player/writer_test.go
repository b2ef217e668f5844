package player

import (
	"context"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	songerrors "github.com/agentstation/songmap/pkg/errors"
	"github.com/agentstation/songmap/pkg/logging"
	"github.com/agentstation/songmap/pkg/songs"
)

var nameArtist = []songs.Field{songs.FieldName, songs.FieldArtist}

func newTestWriter(t *testing.T, client *fakeClient, exclude ...songs.Field) (*Writer, *SkipLog) {
	t.Helper()
	skips := NewSkipLog(t.TempDir(), WriterName)
	w, err := NewWriter(context.Background(), client, nameArtist, exclude, WithSkipLog(skips), withSleep(noSleep))
	require.NoError(t, err)
	return w, skips
}

func incoming(name, artist string) *songs.Song {
	s := songs.NewSong(name, "/new/"+name+".mp3")
	s.Artist = artist
	s.Genre = "Jazz"
	s.Year = 1959
	s.Rating = 100
	s.BPM = 0
	return s
}

func TestIndexOf(t *testing.T) {
	client := newFakeClient(track("One", "A", 2001), track("Two", "B", 2002), track("Two", "C", 2003))
	w, _ := newTestWriter(t, client)

	index, found, err := w.IndexOf(context.Background(), w.MatchKey(incoming("Two", "C")))
	require.NoError(t, err)
	assert.True(t, found)
	assert.Equal(t, 3, index)

	index, found, err = w.IndexOf(context.Background(), []songs.FieldValue{{Field: songs.FieldName, Value: "Two"}})
	require.NoError(t, err)
	assert.True(t, found)
	assert.Equal(t, 2, index, "first match wins")

	_, found, err = w.IndexOf(context.Background(), w.MatchKey(incoming("Nine", "A")))
	require.NoError(t, err)
	assert.False(t, found)
}

func TestIndexOfKeepsPositionsAcrossSkippedIndexes(t *testing.T) {
	client := newFakeClient(track("One", "A", 2001), track("Two", "B", 2002), track("Three", "C", 2003))
	client.failJump[2] = true
	w, _ := newTestWriter(t, client)

	index, found, err := w.IndexOf(context.Background(), w.MatchKey(incoming("Three", "C")))
	require.NoError(t, err)
	assert.True(t, found)
	assert.Equal(t, 3, index)
}

func TestIndexOfMatchesAbsentArtist(t *testing.T) {
	anonymous := track("Untitled", "", 2001)
	delete(anonymous, "artist")
	client := newFakeClient(track("One", "A", 2001), anonymous)
	w, _ := newTestWriter(t, client)

	index, found, err := w.IndexOf(context.Background(), w.MatchKey(songs.NewSong("Untitled", "/x.mp3")))
	require.NoError(t, err)
	assert.True(t, found)
	assert.Equal(t, 2, index)
}

func TestWriteUpdatesMatchingTrack(t *testing.T) {
	captured := logging.CaptureLoggingForTest(t)

	client := newFakeClient(track("One", "A", 2001), track("Two", "B", 2002))
	client.unsupported["bpm"] = true
	w, _ := newTestWriter(t, client, songs.FieldLocation)

	require.NoError(t, w.Write(context.Background(), incoming("Two", "B")))

	pushed := map[string]any{}
	for _, p := range client.pushes {
		assert.Equal(t, 2, p.index)
		pushed[p.key] = p.value
	}
	assert.Equal(t, "Two", pushed["name"])
	assert.Equal(t, "B", pushed["artist"])
	assert.Equal(t, "Jazz", pushed["genre"])
	assert.Equal(t, 1959, pushed["year"])
	assert.Equal(t, 100, pushed["rating"])
	assert.Equal(t, 0, pushed["played count"])
	assert.IsType(t, time.Time{}, pushed["date added"])
	assert.NotContains(t, pushed, "location", "excluded")
	assert.NotContains(t, pushed, "bpm", "unsupported")

	assert.True(t, captured.Contains("Skipping - unable to set field"))
	assert.True(t, captured.Contains(`"field":"bpm"`))
	assert.True(t, captured.Contains("Complete updating"))
}

func TestWriteSkipsNilFields(t *testing.T) {
	captured := logging.CaptureLoggingForTest(t)

	client := newFakeClient(track("One", "A", 2001))
	w, _ := newTestWriter(t, client)

	s := incoming("One", "A")
	s.Genre = ""
	require.NoError(t, w.Write(context.Background(), s))

	for _, p := range client.pushes {
		assert.NotEqual(t, "genre", p.key)
	}
	assert.True(t, captured.Contains("Skipping - field has no value"))
	assert.True(t, captured.Contains(`"field":"genre"`))
}

func TestWriteNotFound(t *testing.T) {
	captured := logging.CaptureLoggingForTest(t)

	client := newFakeClient(track("One", "A", 2001), track("Two", "B", 2002), track("Three", "C", 2003))
	client.failJump[2] = true
	w, skips := newTestWriter(t, client)

	require.NoError(t, w.Write(context.Background(), incoming("Missing", "Nobody")))

	assert.Empty(t, client.pushes)
	assert.True(t, captured.Contains("Song not found"))
	assert.True(t, captured.Contains(`"adapter":"music-write"`))

	indexes, err := skips.Indexes()
	require.NoError(t, err)
	assert.Equal(t, []int{2}, indexes)
	assert.Equal(t, "music-write_skipped.json", filepath.Base(skips.Path()))
}

func TestNewWriterRequiresMatchFields(t *testing.T) {
	_, err := NewWriter(context.Background(), newFakeClient(), nil, nil)
	assert.True(t, songerrors.IsConfigError(err))
}
