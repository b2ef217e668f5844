package docstore

import (
	"context"

	"github.com/agentstation/songmap/pkg/adapters"
	"github.com/agentstation/songmap/pkg/constants"
)

// Registered adapter names.
const (
	JSONReaderName   = "json-read"
	JSONWriterName   = "json-write"
	MongoReaderName  = "mongo-read"
	MongoWriterName  = "mongo-write"
	SQLiteReaderName = "sqlite-read"
	SQLiteWriterName = "sqlite-write"
)

type opener func(ctx context.Context, opts adapters.Options) (Store, error)

func openJSON(_ context.Context, opts adapters.Options) (Store, error) {
	return OpenJSON(opts.String("path"))
}

func openMongo(ctx context.Context, opts adapters.Options) (Store, error) {
	return OpenMongo(ctx, opts.String("uri"), opts.String("database"), opts.String("collection"))
}

func openSQLite(_ context.Context, opts adapters.Options) (Store, error) {
	return OpenSQLite(opts.String("path"))
}

func register(readerName, writerName, backend string, options []adapters.Option, open opener) {
	adapters.Register(adapters.Descriptor{
		Name:    readerName,
		Type:    adapters.TypeReader,
		Doc:     "Read songs from " + backend,
		Options: options,
		NewReader: func(ctx context.Context, opts adapters.Options) (adapters.Reader, error) {
			store, err := open(ctx, opts)
			if err != nil {
				return nil, err
			}
			return NewReader(readerName, store), nil
		},
	})
	adapters.Register(adapters.Descriptor{
		Name:    writerName,
		Type:    adapters.TypeWriter,
		Doc:     "Append songs to " + backend,
		Options: options,
		NewWriter: func(ctx context.Context, opts adapters.Options) (adapters.Writer, error) {
			store, err := open(ctx, opts)
			if err != nil {
				return nil, err
			}
			return NewWriter(writerName, store), nil
		},
	})
}

func init() {
	register(JSONReaderName, JSONWriterName, "a TinyDB compatible JSON file", []adapters.Option{
		{Name: "path", Type: adapters.OptionString, Help: "json file", Default: constants.DefaultJSONStore},
	}, openJSON)

	register(MongoReaderName, MongoWriterName, "a MongoDB collection", []adapters.Option{
		{Name: "uri", Type: adapters.OptionString, Help: "connection string", Default: constants.DefaultMongoURI},
		{Name: "database", Type: adapters.OptionString, Help: "database name", Default: constants.DefaultMongoDatabase},
		{Name: "collection", Type: adapters.OptionString, Help: "collection name", Default: constants.DefaultMongoCollection},
	}, openMongo)

	register(SQLiteReaderName, SQLiteWriterName, "a SQLite database", []adapters.Option{
		{Name: "path", Type: adapters.OptionString, Help: "database file", Default: constants.DefaultSQLiteStore},
	}, openSQLite)
}
