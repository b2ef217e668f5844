// Package tagscan walks a music folder, reads the artist and title tags of
// every audio file and answers (artist, title) -> location lookups for
// location repair.
package tagscan

import (
	"context"
	"io/fs"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"github.com/adrg/strutil"
	"github.com/adrg/strutil/metrics"
	"github.com/dhowden/tag"
	"golang.org/x/text/cases"
	"golang.org/x/text/unicode/norm"

	"github.com/agentstation/songmap/internal/paths"
	"github.com/agentstation/songmap/pkg/errors"
	"github.com/agentstation/songmap/pkg/logging"
)

// Key identifies a file by its folded artist and title tags.
type Key struct {
	Artist string
	Title  string
}

// NewKey folds artist and title so that case, Unicode normalization form
// and repeated whitespace do not matter.
func NewKey(artist, title string) Key {
	return Key{Artist: fold(artist), Title: fold(title)}
}

func fold(s string) string {
	s = norm.NFC.String(s)
	s = cases.Fold().String(s)
	return strings.Join(strings.Fields(s), " ")
}

func (k Key) String() string {
	return k.Artist + " - " + k.Title
}

// Index maps tag keys to file locations.
type Index struct {
	entries   map[Key]string
	keys      []Key
	threshold float64
}

// Option configures an Index.
type Option func(*Index)

// WithFuzzy enables Jaro-Winkler matching for lookups that miss. Scores
// range over [0, 1]; 0 disables fuzzy matching.
func WithFuzzy(threshold float64) Option {
	return func(ix *Index) {
		ix.threshold = threshold
	}
}

// NewIndex builds an index from a prepared table, mainly for tests and
// callers that already know their files.
func NewIndex(entries map[Key]string, opts ...Option) *Index {
	ix := &Index{entries: make(map[Key]string, len(entries))}
	for k, v := range entries {
		ix.add(NewKey(k.Artist, k.Title), v)
	}
	for _, opt := range opts {
		opt(ix)
	}
	ix.sortKeys()
	return ix
}

// Filter selects the files worth opening.
type Filter interface {
	Match(path string) bool
}

// Scan walks root and indexes every file accepted by filter. Files whose
// tags cannot be read are skipped. When two files share a key the first
// one in walk order wins.
func Scan(ctx context.Context, root string, filter Filter, opts ...Option) (*Index, error) {
	root = paths.Expand(root)
	logger := logging.FromContext(ctx).With().Str("folder", root).Logger()

	ix := &Index{entries: make(map[Key]string)}
	for _, opt := range opts {
		opt(ix)
	}

	err := filepath.WalkDir(root, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if ctxErr := ctx.Err(); ctxErr != nil {
			return ctxErr
		}
		if d.IsDir() || !filter.Match(path) {
			return nil
		}

		artist, title, err := readTags(path)
		if err != nil {
			logger.Debug().Str("file", path).Err(err).Msg("Skipping file without readable tags")
			return nil
		}
		if title == "" {
			logger.Debug().Str("file", path).Msg("Skipping file without title tag")
			return nil
		}

		key := NewKey(artist, title)
		if existing, ok := ix.entries[key]; ok {
			logger.Debug().Str("file", path).Str("kept", existing).Msg("Duplicate tags")
			return nil
		}
		ix.add(key, path)
		return nil
	})
	if err != nil {
		if ctx.Err() != nil {
			return nil, ctx.Err()
		}
		return nil, errors.WrapIO("walk", root, err)
	}

	ix.sortKeys()
	logger.Info().Int("files", ix.Len()).Msg("Indexed tagged files")
	return ix, nil
}

func readTags(path string) (artist, title string, err error) {
	f, err := os.Open(path)
	if err != nil {
		return "", "", err
	}
	defer func() { _ = f.Close() }()

	m, err := tag.ReadFrom(f)
	if err != nil {
		return "", "", err
	}
	return m.Artist(), m.Title(), nil
}

func (ix *Index) add(key Key, location string) {
	if _, ok := ix.entries[key]; !ok {
		ix.keys = append(ix.keys, key)
	}
	ix.entries[key] = location
}

func (ix *Index) sortKeys() {
	sort.Slice(ix.keys, func(i, j int) bool { return ix.keys[i].String() < ix.keys[j].String() })
}

// Len returns the number of indexed files.
func (ix *Index) Len() int {
	return len(ix.entries)
}

// Lookup returns the location of the file tagged artist and name.
func (ix *Index) Lookup(artist, name string) (string, bool) {
	key := NewKey(artist, name)
	if location, ok := ix.entries[key]; ok {
		return location, true
	}
	if ix.threshold <= 0 {
		return "", false
	}

	query := key.String()
	jw := metrics.NewJaroWinkler()
	var best Key
	bestScore := 0.0
	for _, candidate := range ix.keys {
		score := strutil.Similarity(query, candidate.String(), jw)
		if score >= ix.threshold && score > bestScore {
			best, bestScore = candidate, score
		}
	}
	if bestScore == 0 {
		return "", false
	}
	return ix.entries[best], true
}
