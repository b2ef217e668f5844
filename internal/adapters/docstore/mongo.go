package docstore

import (
	"context"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/agentstation/songmap/pkg/errors"
)

// MongoStore is a document store backed by one MongoDB collection.
type MongoStore struct {
	client     *mongo.Client
	collection *mongo.Collection
}

// OpenMongo connects to uri and verifies the server is reachable.
func OpenMongo(ctx context.Context, uri, database, collection string) (*MongoStore, error) {
	client, err := mongo.Connect(ctx, options.Client().ApplyURI(uri))
	if err != nil {
		return nil, errors.WrapResource("open", "mongo", uri, err)
	}
	if err := client.Ping(ctx, nil); err != nil {
		_ = client.Disconnect(context.Background())
		return nil, errors.WrapResource("open", "mongo", uri, err)
	}
	return &MongoStore{
		client:     client,
		collection: client.Database(database).Collection(collection),
	}, nil
}

// Insert implements Store.
func (s *MongoStore) Insert(ctx context.Context, doc Document) error {
	if _, err := s.collection.InsertOne(ctx, bson.M(doc)); err != nil {
		return errors.WrapResource("insert", "mongo", s.collection.Name(), err)
	}
	return nil
}

// All implements Store. Documents come back in _id order, which for
// generated ObjectIDs is insertion order.
func (s *MongoStore) All(ctx context.Context) ([]Document, error) {
	cursor, err := s.collection.Find(ctx, bson.D{}, options.Find().SetSort(bson.D{{Key: "_id", Value: 1}}))
	if err != nil {
		return nil, errors.WrapResource("find", "mongo", s.collection.Name(), err)
	}
	defer func() { _ = cursor.Close(ctx) }()

	var raw []bson.M
	if err := cursor.All(ctx, &raw); err != nil {
		return nil, errors.WrapResource("decode", "mongo", s.collection.Name(), err)
	}

	docs := make([]Document, 0, len(raw))
	for _, m := range raw {
		docs = append(docs, fromBSON(m))
	}
	return docs, nil
}

// Close implements Store.
func (s *MongoStore) Close() error {
	return s.client.Disconnect(context.Background())
}

// fromBSON converts driver types back to the Go types songs expect and
// drops the _id.
func fromBSON(m bson.M) Document {
	doc := make(Document, len(m))
	for k, v := range m {
		if k == "_id" {
			continue
		}
		switch val := v.(type) {
		case primitive.DateTime:
			doc[k] = val.Time().UTC()
		case int32:
			doc[k] = int(val)
		case int64:
			doc[k] = int(val)
		default:
			doc[k] = val
		}
	}
	return doc
}
