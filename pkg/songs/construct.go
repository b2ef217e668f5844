package songs

import (
	"math"
	"sort"
	"strconv"
	"strings"

	"github.com/agentstation/songmap/pkg/errors"
	"github.com/agentstation/songmap/pkg/logging"
)

// castFunc converts a raw value before assignment.
type castFunc func(n Normalizer, raw any) (any, error)

// casts lists fields whose raw value goes through a conversion function.
// Every other field takes the raw value and coerces it to the field type.
var casts = map[Field]castFunc{
	FieldDateAdded: func(n Normalizer, raw any) (any, error) {
		t, err := n.NormalizeDateTime(raw)
		if err != nil || t.IsZero() {
			return nil, err
		}
		return t, nil
	},
}

// New builds a Song from a source's raw key/value mapping.
//
// Unknown keys are dropped. A failed cast keeps the raw value, and a raw
// value that cannot be coerced to the field type is dropped. dateAdded is
// the exception: a value that is not a date-time returns *errors.TypeError.
// Name and location are required.
func New(n Normalizer, raw map[string]any) (*Song, error) {
	s := NewSong("", "")

	keys := make([]string, 0, len(raw))
	for k := range raw {
		keys = append(keys, k)
	}
	sort.Strings(keys)

	for _, key := range keys {
		field, ok := n.NormalizeFieldName(key)
		if !ok {
			field = Field(key)
		}
		if !field.Known() {
			continue
		}

		value := raw[key]
		if cast, ok := casts[field]; ok {
			if converted, err := cast(n, value); err == nil && converted != nil {
				value = converted
			}
		}
		if err := s.assign(field, value); err != nil {
			return nil, err
		}
	}

	if s.Name == "" {
		return nil, errors.NewValidationError(string(FieldName), nil, "name is required")
	}
	if s.Location == "" {
		return nil, errors.NewValidationError(string(FieldLocation), nil, "location is required")
	}
	return s, nil
}

// assign coerces value to the Go type of f and stores it.
func (s *Song) assign(f Field, value any) error {
	if f == FieldDateAdded {
		return s.SetDateAdded(value)
	}
	if value == nil {
		return nil
	}

	switch f {
	case FieldName, FieldLocation, FieldArtist, FieldGenre:
		str, ok := toString(value)
		if !ok {
			dropped(f, value)
			return nil
		}
		switch f {
		case FieldName:
			s.Name = str
		case FieldLocation:
			s.Location = str
		case FieldArtist:
			s.Artist = str
		case FieldGenre:
			s.Genre = str
		}
	case FieldBPM, FieldPlayedCount, FieldRating, FieldYear:
		n, ok := toInt(value)
		if !ok {
			dropped(f, value)
			return nil
		}
		switch f {
		case FieldBPM:
			s.BPM = n
		case FieldPlayedCount:
			s.PlayedCount = n
		case FieldRating:
			s.Rating = n
		case FieldYear:
			s.Year = n
		}
	}
	return nil
}

func dropped(f Field, value any) {
	logging.Debug().
		Str("field", string(f)).
		Interface("value", value).
		Msgf("dropping value of type %T", value)
}

func toString(value any) (string, bool) {
	switch v := value.(type) {
	case string:
		return v, true
	case []byte:
		return string(v), true
	}
	return "", false
}

func toInt(value any) (int, bool) {
	switch v := value.(type) {
	case int:
		return v, true
	case int8:
		return int(v), true
	case int16:
		return int(v), true
	case int32:
		return int(v), true
	case int64:
		return int(v), true
	case uint8:
		return int(v), true
	case uint16:
		return int(v), true
	case uint32:
		return int(v), true
	case float32:
		return floatToInt(float64(v))
	case float64:
		return floatToInt(v)
	case string:
		n, err := strconv.Atoi(strings.TrimSpace(v))
		if err != nil {
			return 0, false
		}
		return n, true
	}
	return 0, false
}

func floatToInt(f float64) (int, bool) {
	if math.IsNaN(f) || math.IsInf(f, 0) || f != math.Trunc(f) {
		return 0, false
	}
	return int(f), true
}
