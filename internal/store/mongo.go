package store

import (
	"context"
	"errors"
	"fmt"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
	"go.mongodb.org/mongo-driver/mongo/readpref"
)

const (
	authorsCollection   = "authors"
	genresCollection    = "genres"
	booksCollection     = "books"
	instancesCollection = "bookinstances"
)

// ConnectMongo dials uri and verifies the connection with a ping.
func ConnectMongo(ctx context.Context, uri string) (*mongo.Client, error) {
	client, err := mongo.Connect(ctx, options.Client().ApplyURI(uri).SetServerSelectionTimeout(5*time.Second))
	if err != nil {
		return nil, fmt.Errorf("connect mongo: %w", err)
	}
	if err := client.Ping(ctx, readpref.Primary()); err != nil {
		_ = client.Disconnect(context.Background())
		return nil, fmt.Errorf("ping mongo: %w", err)
	}
	return client, nil
}

// EnsureMongoIndexes creates the indexes the listings sort and filter on.
func EnsureMongoIndexes(ctx context.Context, db *mongo.Database) error {
	indexes := map[string][]mongo.IndexModel{
		authorsCollection:   {{Keys: bson.D{{Key: "family_name", Value: 1}, {Key: "first_name", Value: 1}}}},
		genresCollection:    {{Keys: bson.D{{Key: "name", Value: 1}}}},
		booksCollection:     {{Keys: bson.D{{Key: "title", Value: 1}}}, {Keys: bson.D{{Key: "author", Value: 1}}}, {Keys: bson.D{{Key: "genre", Value: 1}}}},
		instancesCollection: {{Keys: bson.D{{Key: "book", Value: 1}}}, {Keys: bson.D{{Key: "status", Value: 1}}}},
	}
	for coll, models := range indexes {
		if _, err := db.Collection(coll).Indexes().CreateMany(ctx, models); err != nil {
			return fmt.Errorf("create %s indexes: %w", coll, err)
		}
	}
	return nil
}

var errNoInsertedID = errors.New("insert returned no object id")

func insertedHex(res *mongo.InsertOneResult) (string, error) {
	oid, ok := res.InsertedID.(primitive.ObjectID)
	if !ok {
		return "", errNoInsertedID
	}
	return oid.Hex(), nil
}

// objectID parses a hex identifier. Identifiers that are not ObjectIDs cannot
// name a stored record.
func objectID(id string) (primitive.ObjectID, bool) {
	oid, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return primitive.NilObjectID, false
	}
	return oid, true
}

func refID(id string) (primitive.ObjectID, error) {
	oid, ok := objectID(id)
	if !ok {
		return primitive.NilObjectID, fmt.Errorf("invalid reference %q", id)
	}
	return oid, nil
}

func refIDs(ids []string) ([]primitive.ObjectID, error) {
	out := make([]primitive.ObjectID, 0, len(ids))
	for _, id := range ids {
		oid, err := refID(id)
		if err != nil {
			return nil, err
		}
		out = append(out, oid)
	}
	return out, nil
}

func hexIDs(oids []primitive.ObjectID) []string {
	out := make([]string, 0, len(oids))
	for _, oid := range oids {
		out = append(out, oid.Hex())
	}
	return out
}

func decodeAll[D any, T any](ctx context.Context, cur *mongo.Cursor, conv func(D) T) ([]T, error) {
	defer cur.Close(ctx)

	out := make([]T, 0)
	for cur.Next(ctx) {
		var d D
		if err := cur.Decode(&d); err != nil {
			return nil, err
		}
		out = append(out, conv(d))
	}
	if err := cur.Err(); err != nil {
		return nil, err
	}
	return out, nil
}
