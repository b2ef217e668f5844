package songs

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/agentstation/songmap/pkg/errors"
)

func TestNewFromLibraryKeys(t *testing.T) {
	s, err := New(LibraryNormalizer{}, map[string]any{
		"Track ID":   1234,
		"Name":       "Around the World",
		"Artist":     "Daft Punk",
		"Genre":      "House",
		"Play Count": 17,
		"Rating":     80,
		"Year":       1997,
		"BPM":        121,
		"Date Added": "2019-06-01T10:20:30Z",
		"Location":   "file:///Music/around.mp3",
		"Kind":       "MPEG audio file",
	})
	require.NoError(t, err)

	assert.Equal(t, "Around the World", s.Name)
	assert.Equal(t, "Daft Punk", s.Artist)
	assert.Equal(t, "House", s.Genre)
	assert.Equal(t, 17, s.PlayedCount)
	assert.Equal(t, 80, s.Rating)
	assert.Equal(t, 4, s.Stars())
	assert.Equal(t, 1997, s.Year)
	assert.Equal(t, 121, s.BPM)
	assert.Equal(t, "file:///Music/around.mp3", s.Location)
	assert.True(t, time.Date(2019, time.June, 1, 10, 20, 30, 0, time.UTC).Equal(s.DateAdded()))
}

func TestNewDropsUnknownKeys(t *testing.T) {
	fixedNow(t, time.Date(2024, time.January, 2, 3, 4, 5, 0, time.UTC))

	base, err := New(DocumentNormalizer{}, map[string]any{"name": "n", "location": "l"})
	require.NoError(t, err)

	withExtra, err := New(DocumentNormalizer{}, map[string]any{
		"name":     "n",
		"location": "l",
		"album":    "Discovery",
		"Rating":   100,
	})
	require.NoError(t, err)
	assert.Equal(t, base, withExtra)
}

func TestNewKeepsRawValueWhenCastFails(t *testing.T) {
	// The normalizer rejects a *time.Time, the setter accepts it.
	at := time.Date(2001, time.September, 9, 8, 7, 6, 0, time.UTC)
	s, err := New(PlayerNormalizer{}, map[string]any{
		"name":       "n",
		"location":   "l",
		"date added": &at,
	})
	require.NoError(t, err)
	assert.Equal(t, at, s.DateAdded())
}

func TestNewRejectsBadDateAdded(t *testing.T) {
	_, err := New(LibraryNormalizer{}, map[string]any{
		"Name":       "n",
		"Location":   "l",
		"Date Added": "last tuesday",
	})
	require.Error(t, err)
	var typeErr *errors.TypeError
	assert.True(t, errors.As(err, &typeErr))
}

func TestNewDropsUncoercibleValues(t *testing.T) {
	s, err := New(DocumentNormalizer{}, map[string]any{
		"name":        "n",
		"location":    "l",
		"rating":      "not a number",
		"bpm":         float64(128),
		"year":        "1984",
		"playedCount": 2.5,
		"artist":      42,
	})
	require.NoError(t, err)
	assert.Zero(t, s.Rating)
	assert.Equal(t, 128, s.BPM)
	assert.Equal(t, 1984, s.Year)
	assert.Zero(t, s.PlayedCount)
	assert.Empty(t, s.Artist)
}

func TestNewRequiresNameAndLocation(t *testing.T) {
	_, err := New(DocumentNormalizer{}, map[string]any{"location": "l"})
	assert.True(t, errors.IsValidationError(err))

	_, err = New(DocumentNormalizer{}, map[string]any{"name": "n"})
	assert.True(t, errors.IsValidationError(err))
}

func TestNormalizers(t *testing.T) {
	t.Run("library", func(t *testing.T) {
		f, ok := LibraryNormalizer{}.NormalizeFieldName("Play Count")
		assert.True(t, ok)
		assert.Equal(t, FieldPlayedCount, f)

		_, ok = LibraryNormalizer{}.NormalizeFieldName("Track ID")
		assert.False(t, ok)

		at, err := LibraryNormalizer{}.NormalizeDateTime("2020-01-02T03:04:05Z")
		require.NoError(t, err)
		assert.True(t, at.Equal(time.Date(2020, 1, 2, 3, 4, 5, 0, time.UTC)))

		_, err = LibraryNormalizer{}.NormalizeDateTime("2020-01-02")
		assert.Error(t, err)
	})

	t.Run("player", func(t *testing.T) {
		f, ok := PlayerNormalizer{}.NormalizeFieldName("played count")
		assert.True(t, ok)
		assert.Equal(t, FieldPlayedCount, f)

		at, err := PlayerNormalizer{}.NormalizeDateTime("2020-01-02T03:04:05")
		require.NoError(t, err)
		assert.True(t, at.Equal(time.Date(2020, 1, 2, 3, 4, 5, 0, time.Local)))

		property, ok := PlayerProperty(FieldDateAdded)
		assert.True(t, ok)
		assert.Equal(t, "date added", property)
	})

	t.Run("document", func(t *testing.T) {
		_, ok := DocumentNormalizer{}.NormalizeFieldName("playedCount")
		assert.False(t, ok)

		at := time.Date(2022, 7, 8, 9, 10, 11, 500, time.UTC)
		got, err := DocumentNormalizer{}.NormalizeDateTime(at)
		require.NoError(t, err)
		assert.Equal(t, at, got)

		got, err = DocumentNormalizer{}.NormalizeDateTime("2022-07-08T09:10:11.123456")
		require.NoError(t, err)
		assert.Equal(t, 123456000, got.Nanosecond())

		_, err = DocumentNormalizer{}.NormalizeDateTime(12)
		assert.True(t, errors.IsValidationError(err))
	})
}
