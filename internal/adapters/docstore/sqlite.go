package docstore

import (
	"context"
	"database/sql"
	"os"
	"path/filepath"
	"time"

	_ "github.com/mattn/go-sqlite3" // registers the sqlite3 driver

	"github.com/agentstation/songmap/internal/paths"
	"github.com/agentstation/songmap/pkg/constants"
	"github.com/agentstation/songmap/pkg/errors"
	"github.com/agentstation/songmap/pkg/songs"
)

// SQLiteStore is a document store backed by one SQLite table with a
// column per canonical field.
type SQLiteStore struct {
	path string
	db   *sql.DB
}

const sqliteSchema = `
CREATE TABLE IF NOT EXISTS songs (
	id           INTEGER PRIMARY KEY AUTOINCREMENT,
	name         TEXT NOT NULL,
	location     TEXT NOT NULL,
	artist       TEXT,
	genre        TEXT,
	bpm          INTEGER NOT NULL DEFAULT 0,
	played_count INTEGER NOT NULL DEFAULT 0,
	rating       INTEGER NOT NULL DEFAULT 0,
	year         INTEGER NOT NULL DEFAULT 0,
	date_added   TEXT
);`

// OpenSQLite opens (creating if needed) the database at path and migrates
// the schema.
func OpenSQLite(path string) (*SQLiteStore, error) {
	path = paths.Expand(path)
	if err := os.MkdirAll(filepath.Dir(path), constants.DirPermissions); err != nil {
		return nil, errors.WrapIO("create", filepath.Dir(path), err)
	}

	db, err := sql.Open("sqlite3", path)
	if err != nil {
		return nil, errors.WrapResource("open", "sqlite", path, err)
	}
	if err := db.Ping(); err != nil {
		_ = db.Close()
		return nil, errors.WrapResource("open", "sqlite", path, err)
	}
	if _, err := db.Exec(sqliteSchema); err != nil {
		_ = db.Close()
		return nil, errors.WrapResource("migrate", "sqlite", path, err)
	}
	return &SQLiteStore{path: path, db: db}, nil
}

// Insert implements Store. Keys outside the canonical fields are ignored.
func (s *SQLiteStore) Insert(ctx context.Context, doc Document) error {
	var dateAdded any
	if t, ok := doc[songs.FieldDateAdded.String()].(time.Time); ok {
		dateAdded = t.UTC().Format(time.RFC3339Nano)
	}

	_, err := s.db.ExecContext(ctx, `
		INSERT INTO songs (name, location, artist, genre, bpm, played_count, rating, year, date_added)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		doc[songs.FieldName.String()],
		doc[songs.FieldLocation.String()],
		doc[songs.FieldArtist.String()],
		doc[songs.FieldGenre.String()],
		orZero(doc[songs.FieldBPM.String()]),
		orZero(doc[songs.FieldPlayedCount.String()]),
		orZero(doc[songs.FieldRating.String()]),
		orZero(doc[songs.FieldYear.String()]),
		dateAdded,
	)
	if err != nil {
		return errors.WrapResource("insert", "sqlite", s.path, err)
	}
	return nil
}

// All implements Store.
func (s *SQLiteStore) All(ctx context.Context) ([]Document, error) {
	rows, err := s.db.QueryContext(ctx, `
		SELECT name, location, artist, genre, bpm, played_count, rating, year, date_added
		FROM songs ORDER BY id ASC`)
	if err != nil {
		return nil, errors.WrapResource("query", "sqlite", s.path, err)
	}
	defer func() { _ = rows.Close() }()

	var docs []Document
	for rows.Next() {
		var (
			name, location            string
			artist, genre, dateAdded  sql.NullString
			bpm, played, rating, year int
		)
		if err := rows.Scan(&name, &location, &artist, &genre, &bpm, &played, &rating, &year, &dateAdded); err != nil {
			return nil, errors.WrapResource("scan", "sqlite", s.path, err)
		}

		doc := Document{
			songs.FieldName.String():        name,
			songs.FieldLocation.String():    location,
			songs.FieldBPM.String():         bpm,
			songs.FieldPlayedCount.String(): played,
			songs.FieldRating.String():      rating,
			songs.FieldYear.String():        year,
		}
		if artist.Valid {
			doc[songs.FieldArtist.String()] = artist.String
		}
		if genre.Valid {
			doc[songs.FieldGenre.String()] = genre.String
		}
		if dateAdded.Valid {
			doc[songs.FieldDateAdded.String()] = dateAdded.String
		}
		docs = append(docs, doc)
	}
	if err := rows.Err(); err != nil {
		return nil, errors.WrapResource("scan", "sqlite", s.path, err)
	}
	return docs, nil
}

// Close implements Store.
func (s *SQLiteStore) Close() error {
	return s.db.Close()
}

func orZero(v any) any {
	if v == nil {
		return 0
	}
	return v
}
