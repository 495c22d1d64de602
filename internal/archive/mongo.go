package archive

import (
	"context"
	"errors"
	"fmt"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

const (
	mongoCollection = "games"
	mongoTimeout    = 5 * time.Second
)

// Mongo stores records as documents keyed by id.
type Mongo struct {
	uri      string
	database string
	client   *mongo.Client
	games    *mongo.Collection
}

// NewMongo returns a store for the games collection of database at uri.
// Call Init before use.
func NewMongo(uri, database string) *Mongo {
	return &Mongo{uri: uri, database: database}
}

// Init connects and pings the server.
func (m *Mongo) Init(ctx context.Context) error {
	ctxConnect, cancel := context.WithTimeout(ctx, 10*time.Second)
	defer cancel()

	client, err := mongo.Connect(ctxConnect, options.Client().ApplyURI(m.uri))
	if err != nil {
		return fmt.Errorf("connect to mongodb: %w", err)
	}
	if err := client.Ping(ctxConnect, nil); err != nil {
		_ = client.Disconnect(ctx)
		return fmt.Errorf("ping mongodb: %w", err)
	}

	m.client = client
	m.games = client.Database(m.database).Collection(mongoCollection)
	return nil
}

// Save upserts rec by id.
func (m *Mongo) Save(ctx context.Context, rec Record) error {
	ctx, cancel := context.WithTimeout(ctx, mongoTimeout)
	defer cancel()

	opts := options.Replace().SetUpsert(true)
	_, err := m.games.ReplaceOne(ctx, bson.M{"_id": rec.ID}, rec, opts)
	return err
}

// Load returns the record with id or ErrGameNotFound.
func (m *Mongo) Load(ctx context.Context, id string) (Record, error) {
	ctx, cancel := context.WithTimeout(ctx, mongoTimeout)
	defer cancel()

	var rec Record
	err := m.games.FindOne(ctx, bson.M{"_id": id}).Decode(&rec)
	if errors.Is(err, mongo.ErrNoDocuments) {
		return Record{}, ErrGameNotFound
	} else if err != nil {
		return Record{}, err
	}
	return rec, nil
}

// List returns up to limit records sorted by ended_at, newest first.
func (m *Mongo) List(ctx context.Context, limit int) ([]Record, error) {
	ctx, cancel := context.WithTimeout(ctx, mongoTimeout)
	defer cancel()

	opts := options.Find().SetSort(bson.D{{Key: "ended_at", Value: -1}})
	if limit > 0 {
		opts.SetLimit(int64(limit))
	}
	cursor, err := m.games.Find(ctx, bson.M{}, opts)
	if err != nil {
		return nil, err
	}
	defer cursor.Close(ctx)

	recs := []Record{}
	for cursor.Next(ctx) {
		var rec Record
		if err := cursor.Decode(&rec); err != nil {
			return nil, err
		}
		recs = append(recs, rec)
	}
	return recs, cursor.Err()
}

// Close disconnects the client.
func (m *Mongo) Close(ctx context.Context) error {
	if m.client != nil {
		return m.client.Disconnect(ctx)
	}
	return nil
}
