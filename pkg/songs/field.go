package songs

import (
	"sort"
	"strings"

	"github.com/agentstation/songmap/pkg/errors"
)

// Field is a canonical song field name.
type Field string

// Canonical field names.
const (
	FieldName        Field = "name"
	FieldLocation    Field = "location"
	FieldArtist      Field = "artist"
	FieldGenre       Field = "genre"
	FieldBPM         Field = "bpm"
	FieldPlayedCount Field = "playedCount"
	FieldRating      Field = "rating"
	FieldYear        Field = "year"
	FieldDateAdded   Field = "dateAdded"
)

var fields = []Field{
	FieldName,
	FieldLocation,
	FieldArtist,
	FieldGenre,
	FieldBPM,
	FieldPlayedCount,
	FieldRating,
	FieldYear,
	FieldDateAdded,
}

// Fields returns every canonical field in display order.
func Fields() []Field {
	out := make([]Field, len(fields))
	copy(out, fields)
	return out
}

// Known reports whether f is a canonical field.
func (f Field) Known() bool {
	for _, known := range fields {
		if f == known {
			return true
		}
	}
	return false
}

// String implements fmt.Stringer.
func (f Field) String() string {
	return string(f)
}

// FieldValue pairs a canonical field with its current value.
type FieldValue struct {
	Field Field
	Value any
}

// ParseFields parses a comma separated field list such as "name,artist".
// An empty list or the literal "none" yields no fields. Unknown names are
// rejected so that typos surface before the player is touched.
func ParseFields(list string) ([]Field, error) {
	list = strings.TrimSpace(list)
	if list == "" || strings.EqualFold(list, "none") {
		return nil, nil
	}

	seen := make(map[Field]bool)
	var out []Field
	for _, part := range strings.Split(list, ",") {
		f := Field(strings.TrimSpace(part))
		if f == "" {
			continue
		}
		if !f.Known() {
			return nil, errors.NewValidationError("fields", part, "unknown song field "+string(f))
		}
		if !seen[f] {
			seen[f] = true
			out = append(out, f)
		}
	}
	return out, nil
}

// FieldSet is a set of canonical fields.
type FieldSet map[Field]struct{}

// NewFieldSet builds a set from fs.
func NewFieldSet(fs ...Field) FieldSet {
	set := make(FieldSet, len(fs))
	for _, f := range fs {
		set[f] = struct{}{}
	}
	return set
}

// Has reports whether f is in the set.
func (s FieldSet) Has(f Field) bool {
	_, ok := s[f]
	return ok
}

// Sorted returns the members in canonical order.
func (s FieldSet) Sorted() []Field {
	out := make([]Field, 0, len(s))
	for f := range s {
		out = append(out, f)
	}
	sort.Slice(out, func(i, j int) bool { return fieldIndex(out[i]) < fieldIndex(out[j]) })
	return out
}

func fieldIndex(f Field) int {
	for i, known := range fields {
		if f == known {
			return i
		}
	}
	return len(fields)
}
