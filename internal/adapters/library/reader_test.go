package library

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/agentstation/songmap/pkg/adapters"
	"github.com/agentstation/songmap/pkg/errors"
	"github.com/agentstation/songmap/pkg/logging"
	"github.com/agentstation/songmap/pkg/songs"
)

const header = `<?xml version="1.0" encoding="UTF-8"?>
<!DOCTYPE plist PUBLIC "-//Apple Computer//DTD PLIST 1.0//EN" "http://www.apple.com/DTDs/PropertyList-1.0.dtd">
<plist version="1.0">
<dict>
	<key>Major Version</key><integer>1</integer>
	<key>Application Version</key><string>12.8</string>
	<key>Tracks</key>
	<dict>
`

const footer = `	</dict>
	<key>Playlists</key>
	<array></array>
</dict>
</plist>
`

func track(id int, name string) string {
	return fmt.Sprintf(`		<key>%[1]d</key>
		<dict>
			<key>Track ID</key><integer>%[1]d</integer>
			<key>Name</key><string>%[2]s</string>
			<key>Artist</key><string>Artist %[1]d</string>
			<key>Genre</key><string>Rock</string>
			<key>Year</key><integer>199%[1]d</integer>
			<key>Play Count</key><integer>%[1]d</integer>
			<key>Rating</key><integer>80</integer>
			<key>Date Added</key><date>2015-03-0%[1]dT10:00:00Z</date>
			<key>Compilation</key><true/>
			<key>Location</key><string>file:///Music/%[1]d.mp3</string>
		</dict>
`, id, name)
}

// malformed has an odd number of children.
const malformed = `		<key>3</key>
		<dict>
			<key>Track ID</key><integer>3</integer>
			<key>Name</key><string>Broken</string>
			<key>Artist</key>
		</dict>
`

func writeLibrary(t *testing.T, body string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "Library.xml")
	require.NoError(t, os.WriteFile(path, []byte(header+body+footer), 0o644))
	return path
}

func collect(t *testing.T, r adapters.Reader) ([]*songs.Song, []error) {
	t.Helper()
	var got []*songs.Song
	var errs []error
	for s, err := range r.Songs(context.Background()) {
		if err != nil {
			errs = append(errs, err)
			continue
		}
		got = append(got, s)
	}
	return got, errs
}

func TestReaderLimitSkipsMalformedRun(t *testing.T) {
	captured := logging.CaptureLoggingForTest(t)

	body := track(1, "One") + track(2, "Two") + malformed + track(4, "Four") + track(5, "Five") + track(6, "Six")
	r, err := Open(writeLibrary(t, body), 5)
	require.NoError(t, err)
	defer func() { _ = r.Close() }()

	got, errs := collect(t, r)
	require.Empty(t, errs)
	require.Len(t, got, 4)

	names := make([]string, len(got))
	for i, s := range got {
		names[i] = s.Name
	}
	assert.Equal(t, []string{"One", "Two", "Four", "Five"}, names)

	first := got[0]
	assert.Equal(t, "Artist 1", first.Artist)
	assert.Equal(t, "Rock", first.Genre)
	assert.Equal(t, 1991, first.Year)
	assert.Equal(t, 1, first.PlayedCount)
	assert.Equal(t, 80, first.Rating)
	assert.Equal(t, "file:///Music/1.mp3", first.Location)
	assert.True(t, time.Date(2015, time.March, 1, 10, 0, 0, 0, time.UTC).Equal(first.DateAdded()))
	assert.Equal(t, 5, got[3].PlayedCount)

	assert.True(t, captured.Contains("Skipping malformed track"))
	assert.True(t, captured.Contains(`"adapter":"library-read"`))
}

func TestReaderNoLimit(t *testing.T) {
	r, err := Open(writeLibrary(t, track(1, "One")+track(2, "Two")+malformed), 0)
	require.NoError(t, err)

	got, _ := collect(t, r)
	assert.Len(t, got, 2)
}

func TestReaderReportsBadDate(t *testing.T) {
	body := strings.Replace(track(1, "One"), "2015-03-01T10:00:00Z", "yesterday", 1) + track(2, "Two")
	r, err := Open(writeLibrary(t, body), 0)
	require.NoError(t, err)

	got, errs := collect(t, r)
	require.Len(t, got, 1)
	require.Len(t, errs, 1)
	var typeErr *errors.TypeError
	assert.True(t, errors.As(errs[0], &typeErr))
	assert.Contains(t, errs[0].Error(), "song 1")
}

func TestReaderEarlyBreak(t *testing.T) {
	r, err := Open(writeLibrary(t, track(1, "One")+track(2, "Two")), 0)
	require.NoError(t, err)

	count := 0
	for range r.Songs(context.Background()) {
		count++
		break
	}
	assert.Equal(t, 1, count)
	require.NoError(t, r.Close())

	got, _ := collect(t, r)
	assert.Empty(t, got)
}

func TestOpenErrors(t *testing.T) {
	_, err := Open(filepath.Join(t.TempDir(), "missing.xml"), 0)
	var ioErr *errors.IOError
	assert.True(t, errors.As(err, &ioErr))

	path := filepath.Join(t.TempDir(), "bad.xml")
	require.NoError(t, os.WriteFile(path, []byte("<html></html>"), 0o644))
	_, err = Open(path, 0)
	var parseErr *errors.ParseError
	assert.True(t, errors.As(err, &parseErr))
}

func TestRegistered(t *testing.T) {
	d, ok := adapters.Lookup(Name)
	require.True(t, ok)
	assert.Equal(t, adapters.TypeReader, d.Type)

	opt, ok := d.Option("limit")
	require.True(t, ok)
	assert.Equal(t, adapters.OptionInt, opt.Type)

	r, err := d.NewReader(context.Background(), adapters.Options{
		"xml":   writeLibrary(t, track(1, "One")),
		"limit": 0,
	})
	require.NoError(t, err)
	got, _ := collect(t, r)
	assert.Len(t, got, 1)
}
