// Package songs defines the canonical song record shared by every adapter,
// the per-source normalizers that build it, and the named comparisons used
// to filter it.
package songs

import (
	"fmt"
	"strings"
	"time"
	"unicode/utf8"

	"github.com/agentstation/songmap/pkg/constants"
	"github.com/agentstation/songmap/pkg/errors"
)

// now is replaced in tests.
var now = time.Now

// Date is a calendar date without a time of day.
type Date struct {
	Year  int
	Month time.Month
	Day   int
}

// Time widens the date to midnight UTC.
func (d Date) Time() time.Time {
	return time.Date(d.Year, d.Month, d.Day, 0, 0, 0, 0, time.UTC)
}

// String renders the date as YYYY-MM-DD.
func (d Date) String() string {
	return fmt.Sprintf("%04d-%02d-%02d", d.Year, d.Month, d.Day)
}

// DateOf returns the calendar date of t in t's location.
func DateOf(t time.Time) Date {
	y, m, d := t.Date()
	return Date{Year: y, Month: m, Day: d}
}

// Song is the canonical, source independent song record.
type Song struct {
	Name        string `json:"name" yaml:"name"`
	Location    string `json:"location" yaml:"location"`
	Artist      string `json:"artist,omitempty" yaml:"artist,omitempty"`
	Genre       string `json:"genre,omitempty" yaml:"genre,omitempty"`
	BPM         int    `json:"bpm" yaml:"bpm"`
	PlayedCount int    `json:"playedCount" yaml:"playedCount"`
	Rating      int    `json:"rating" yaml:"rating"`
	Year        int    `json:"year" yaml:"year"`

	dateAdded time.Time
}

// NewSong returns a song with defaults applied: the current year and
// today's date at midnight.
func NewSong(name, location string) *Song {
	today := now()
	return &Song{
		Name:      name,
		Location:  location,
		Year:      today.Year(),
		dateAdded: DateOf(today).Time(),
	}
}

// DateAdded returns when the song was added to its source.
func (s *Song) DateAdded() time.Time {
	return s.dateAdded
}

// SetDateAdded assigns the date the song was added. It accepts a
// time.Time or a Date; a Date is widened to midnight. Any other value is
// rejected with a *errors.TypeError and the field is left unchanged.
func (s *Song) SetDateAdded(value any) error {
	switch v := value.(type) {
	case time.Time:
		s.dateAdded = v
	case *time.Time:
		if v == nil {
			return errors.NewTypeError(string(FieldDateAdded), "datetime", value)
		}
		s.dateAdded = *v
	case Date:
		s.dateAdded = v.Time()
	default:
		return errors.NewTypeError(string(FieldDateAdded), "datetime", value)
	}
	return nil
}

// Stars derives the 0-5 star count from the 0-100 rating.
func (s *Song) Stars() int {
	stars := s.Rating * constants.MaxStars / constants.MaxRating
	switch {
	case stars < 0:
		return 0
	case stars > constants.MaxStars:
		return constants.MaxStars
	}
	return stars
}

// RatingInStars renders Stars as star glyphs.
func (s *Song) RatingInStars() string {
	return strings.Repeat(string(constants.StarGlyph), s.Stars())
}

// SameTrack reports whether both songs share the (name, artist) identity key.
func (s *Song) SameTrack(other *Song) bool {
	if other == nil {
		return false
	}
	return s.Name == other.Name && s.Artist == other.Artist
}

// MatchesName reports whether the song is called name.
func (s *Song) MatchesName(name string) bool {
	return s.Name == name
}

// MatchesYear reports whether the song was released in year.
func (s *Song) MatchesYear(year int) bool {
	return s.Year == year
}

// YearAtLeast reports whether the song was released in year or later.
func (s *Song) YearAtLeast(year int) bool {
	return s.Year >= year
}

// YearBefore reports whether the song was released before year.
func (s *Song) YearBefore(year int) bool {
	return s.Year < year
}

// MatchesStarCount compares Stars with the number of glyphs in stars.
func (s *Song) MatchesStarCount(stars string) bool {
	return s.Stars() == CountStars(stars)
}

// AtLeastStarCount reports whether Stars is at least the glyph count.
func (s *Song) AtLeastStarCount(stars string) bool {
	return s.Stars() >= CountStars(stars)
}

// FewerStarsThan reports whether Stars is below the glyph count.
func (s *Song) FewerStarsThan(stars string) bool {
	return s.Stars() < CountStars(stars)
}

// CountStars counts star glyphs in text. Emoji variation selectors that
// often follow the glyph are ignored.
func CountStars(text string) int {
	count := 0
	for len(text) > 0 {
		r, size := utf8.DecodeRuneInString(text)
		if r == constants.StarGlyph {
			count++
		}
		text = text[size:]
	}
	return count
}

// Value returns the value of a canonical field. The boolean is false for
// unknown fields. Empty optional strings are reported as nil.
func (s *Song) Value(f Field) (any, bool) {
	switch f {
	case FieldName:
		return s.Name, true
	case FieldLocation:
		return s.Location, true
	case FieldArtist:
		return optional(s.Artist), true
	case FieldGenre:
		return optional(s.Genre), true
	case FieldBPM:
		return s.BPM, true
	case FieldPlayedCount:
		return s.PlayedCount, true
	case FieldRating:
		return s.Rating, true
	case FieldYear:
		return s.Year, true
	case FieldDateAdded:
		return s.dateAdded, true
	}
	return nil, false
}

// Values returns every canonical field with its value, in canonical order.
func (s *Song) Values() []FieldValue {
	out := make([]FieldValue, 0, len(fields))
	for _, f := range fields {
		v, _ := s.Value(f)
		out = append(out, FieldValue{Field: f, Value: v})
	}
	return out
}

// String renders "artist - name year stars".
func (s *Song) String() string {
	stars := ""
	if s.Rating != 0 {
		stars = s.RatingInStars()
	}
	return strings.TrimRight(fmt.Sprintf("%s - %-40s %-6d %s", s.Artist, s.Name, s.Year, stars), " ")
}

func optional(v string) any {
	if v == "" {
		return nil
	}
	return v
}
