// Package constants provides shared constants used throughout the songmap codebase.
// This includes file permissions, player timing, and default locations that
// should be consistent across adapters and commands.
package constants

import "time"

// AppName is used for the config file name and the per-user data directory.
const AppName = "songmap"

// Timing constants for the live player
const (
	// DefaultSettleDelay is how long to wait after dismissing a player error dialog
	DefaultSettleDelay = 2 * time.Second

	// ShutdownTimeout bounds cleanup after a failed command
	ShutdownTimeout = 5 * time.Second
)

// File permission constants define standard Unix file permissions
const (
	// DirPermissions is the default permission for created directories (rwxr-xr-x)
	DirPermissions = 0755

	// FilePermissions is the default permission for created files (rw-r--r--)
	FilePermissions = 0644
)

// Adapter defaults
const (
	// DefaultLibraryXML is where the desktop player exports its library
	DefaultLibraryXML = "~/Music/iTunes/iTunes Library.xml"

	// DefaultJSONStore is the default document store file
	DefaultJSONStore = "/tmp/music.json"

	// DefaultSQLiteStore is the default SQLite document store file
	DefaultSQLiteStore = "/tmp/music.db"

	// DefaultMongoURI is the default MongoDB connection string
	DefaultMongoURI = "mongodb://localhost:27017"

	// DefaultMongoDatabase is the default MongoDB database
	DefaultMongoDatabase = "songmap"

	// DefaultMongoCollection is the default MongoDB collection
	DefaultMongoCollection = "songs"

	// DefaultMatchFields are the fields the player writer matches on
	DefaultMatchFields = "name,artist"

	// DefaultAudioPattern filters files considered by the tag scan
	DefaultAudioPattern = "*.mp3"

	// SkippedFileSuffix is appended to the adapter name for the skipped-index side file
	SkippedFileSuffix = "_skipped.json"
)

// StarGlyph is the rune rendered once per star of a rating.
const StarGlyph = '⭐'

// MaxRating is the top of the 0-100 rating scale.
const MaxRating = 100

// MaxStars is the star count of a MaxRating song.
const MaxStars = 5
