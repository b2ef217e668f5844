package songs

import (
	"strings"
	"time"

	"github.com/agentstation/songmap/pkg/errors"
)

// Normalizer maps one source's raw field names and date-time encodings
// onto the canonical record.
type Normalizer interface {
	// NormalizeFieldName maps a raw field name to a canonical one. A false
	// result means the raw name is used unchanged.
	NormalizeFieldName(raw string) (Field, bool)

	// NormalizeDateTime converts a raw date-time value.
	NormalizeDateTime(raw any) (time.Time, error)
}

// Date-time layouts per source.
const (
	LibraryDateLayout  = "2006-01-02T15:04:05Z"
	PlayerDateLayout   = "2006-01-02T15:04:05"
	DocumentDateLayout = "2006-01-02T15:04:05.999999"
)

// LibraryNormalizer handles the exported library file, whose keys read
// like "Play Count" and "Date Added".
type LibraryNormalizer struct{}

var libraryFields = map[string]Field{
	"name":       FieldName,
	"location":   FieldLocation,
	"artist":     FieldArtist,
	"genre":      FieldGenre,
	"bpm":        FieldBPM,
	"play_count": FieldPlayedCount,
	"rating":     FieldRating,
	"year":       FieldYear,
	"date_added": FieldDateAdded,
}

// NormalizeFieldName lowercases the key, replaces spaces with underscores
// and looks the result up.
func (LibraryNormalizer) NormalizeFieldName(raw string) (Field, bool) {
	key := strings.ReplaceAll(strings.ToLower(raw), " ", "_")
	f, ok := libraryFields[key]
	return f, ok
}

// NormalizeDateTime parses the export's UTC timestamps.
func (LibraryNormalizer) NormalizeDateTime(raw any) (time.Time, error) {
	return parseDateTime(raw, time.UTC, LibraryDateLayout)
}

// PlayerNormalizer handles property names reported by the live player.
type PlayerNormalizer struct{}

var playerFields = map[string]Field{
	"name":         FieldName,
	"location":     FieldLocation,
	"artist":       FieldArtist,
	"genre":        FieldGenre,
	"bpm":          FieldBPM,
	"played count": FieldPlayedCount,
	"rating":       FieldRating,
	"year":         FieldYear,
	"date added":   FieldDateAdded,
}

// PlayerProperty returns the player property name of a canonical field.
func PlayerProperty(f Field) (string, bool) {
	for property, field := range playerFields {
		if field == f {
			return property, true
		}
	}
	return "", false
}

// NormalizeFieldName maps player property names.
func (PlayerNormalizer) NormalizeFieldName(raw string) (Field, bool) {
	f, ok := playerFields[strings.ToLower(raw)]
	return f, ok
}

// NormalizeDateTime accepts time.Time or ISO-8601 text without a zone,
// which the player reports in local time.
func (PlayerNormalizer) NormalizeDateTime(raw any) (time.Time, error) {
	return parseDateTime(raw, time.Local, PlayerDateLayout, time.RFC3339)
}

// DocumentNormalizer handles document stores, which already hold
// canonical names.
type DocumentNormalizer struct{}

// NormalizeFieldName never renames.
func (DocumentNormalizer) NormalizeFieldName(string) (Field, bool) {
	return "", false
}

// NormalizeDateTime passes date-times through and widens dates.
func (DocumentNormalizer) NormalizeDateTime(raw any) (time.Time, error) {
	return parseDateTime(raw, time.UTC, time.RFC3339Nano, DocumentDateLayout)
}

func parseDateTime(raw any, loc *time.Location, layouts ...string) (time.Time, error) {
	switch v := raw.(type) {
	case time.Time:
		return v, nil
	case Date:
		return v.Time(), nil
	case string:
		var lastErr error
		for _, layout := range layouts {
			t, err := time.ParseInLocation(layout, strings.TrimSpace(v), loc)
			if err == nil {
				return t, nil
			}
			lastErr = err
		}
		return time.Time{}, errors.WrapParse("date", "", lastErr)
	}
	return time.Time{}, errors.NewTypeError(string(FieldDateAdded), "datetime", raw)
}
