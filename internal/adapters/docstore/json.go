package docstore

import (
	"context"
	"encoding/json"
	"os"
	"path/filepath"
	"sort"
	"strconv"
	"strings"
	"time"

	"github.com/agentstation/songmap/internal/paths"
	"github.com/agentstation/songmap/pkg/constants"
	"github.com/agentstation/songmap/pkg/errors"
	"github.com/agentstation/songmap/pkg/songs"
)

// The JSON file keeps TinyDB's layout so existing databases stay readable:
//
//	{"_default": {"1": {...}, "2": {...}}}
//
// with date-times stored as "{TinyDate}2006-01-02T15:04:05.999999" in UTC.
const (
	defaultTable   = "_default"
	tinyDatePrefix = "{TinyDate}"
)

// JSONStore is a document store backed by one JSON file.
type JSONStore struct {
	path  string
	table map[string]map[string]any
	next  int
}

// OpenJSON loads path. A missing or empty file is an empty store; the
// file is created by the first Insert.
func OpenJSON(path string) (*JSONStore, error) {
	s := &JSONStore{
		path:  paths.Expand(path),
		table: make(map[string]map[string]any),
		next:  1,
	}

	data, err := os.ReadFile(s.path)
	if err != nil {
		if os.IsNotExist(err) {
			return s, nil
		}
		return nil, errors.WrapIO("read", s.path, err)
	}
	if len(strings.TrimSpace(string(data))) == 0 {
		return s, nil
	}

	var tables map[string]map[string]map[string]any
	if err := json.Unmarshal(data, &tables); err != nil {
		return nil, errors.WrapParse("json", s.path, err)
	}
	if table := tables[defaultTable]; table != nil {
		s.table = table
	}
	for id := range s.table {
		if n, err := strconv.Atoi(id); err == nil && n >= s.next {
			s.next = n + 1
		}
	}
	return s, nil
}

// Insert implements Store and rewrites the file.
func (s *JSONStore) Insert(ctx context.Context, doc Document) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	encoded := make(map[string]any, len(doc))
	for k, v := range doc {
		encoded[k] = encodeJSONValue(v)
	}
	s.table[strconv.Itoa(s.next)] = encoded
	s.next++
	return s.flush()
}

// All implements Store.
func (s *JSONStore) All(ctx context.Context) ([]Document, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	ids := make([]string, 0, len(s.table))
	for id := range s.table {
		ids = append(ids, id)
	}
	sort.Slice(ids, func(i, j int) bool {
		a, _ := strconv.Atoi(ids[i])
		b, _ := strconv.Atoi(ids[j])
		return a < b
	})

	docs := make([]Document, 0, len(ids))
	for _, id := range ids {
		doc := make(Document, len(s.table[id]))
		for k, v := range s.table[id] {
			doc[k] = decodeJSONValue(v)
		}
		docs = append(docs, doc)
	}
	return docs, nil
}

// Close implements Store. Every Insert is already on disk.
func (s *JSONStore) Close() error {
	return nil
}

func (s *JSONStore) flush() error {
	data, err := json.MarshalIndent(map[string]any{defaultTable: s.table}, "", "  ")
	if err != nil {
		return errors.WrapParse("json", s.path, err)
	}
	if err := os.MkdirAll(filepath.Dir(s.path), constants.DirPermissions); err != nil {
		return errors.WrapIO("create", filepath.Dir(s.path), err)
	}
	if err := os.WriteFile(s.path, data, constants.FilePermissions); err != nil {
		return errors.WrapIO("write", s.path, err)
	}
	return nil
}

func encodeJSONValue(v any) any {
	if t, ok := v.(time.Time); ok {
		return tinyDatePrefix + t.UTC().Format(songs.DocumentDateLayout)
	}
	return v
}

func decodeJSONValue(v any) any {
	str, ok := v.(string)
	if !ok || !strings.HasPrefix(str, tinyDatePrefix) {
		return v
	}
	t, err := time.ParseInLocation(songs.DocumentDateLayout, strings.TrimPrefix(str, tinyDatePrefix), time.UTC)
	if err != nil {
		return v
	}
	return t
}
