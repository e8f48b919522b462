package store

import (
	"context"
	"errors"

	"locallibrary/internal/catalog"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

type genreDoc struct {
	ID   primitive.ObjectID `bson:"_id,omitempty"`
	Name string             `bson:"name"`
}

func (d genreDoc) toGenre() catalog.Genre {
	return catalog.Genre{ID: d.ID.Hex(), Name: d.Name}
}

type GenreMongo struct {
	coll *mongo.Collection
}

func NewGenreMongo(db *mongo.Database) *GenreMongo {
	return &GenreMongo{coll: db.Collection(genresCollection)}
}

func (r *GenreMongo) FindAll(ctx context.Context) ([]catalog.Genre, error) {
	cur, err := r.coll.Find(ctx, bson.D{}, options.Find().SetSort(bson.D{{Key: "name", Value: 1}}))
	if err != nil {
		return nil, err
	}
	return decodeAll(ctx, cur, genreDoc.toGenre)
}

func (r *GenreMongo) FindByID(ctx context.Context, id string) (*catalog.Genre, error) {
	oid, ok := objectID(id)
	if !ok {
		return nil, nil
	}
	var d genreDoc
	err := r.coll.FindOne(ctx, bson.D{{Key: "_id", Value: oid}}).Decode(&d)
	if errors.Is(err, mongo.ErrNoDocuments) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	g := d.toGenre()
	return &g, nil
}

func (r *GenreMongo) Insert(ctx context.Context, g *catalog.Genre) error {
	res, err := r.coll.InsertOne(ctx, genreDoc{Name: g.Name})
	if err != nil {
		return err
	}
	g.ID, err = insertedHex(res)
	return err
}

func (r *GenreMongo) Update(ctx context.Context, g catalog.Genre) (bool, error) {
	oid, ok := objectID(g.ID)
	if !ok {
		return false, nil
	}
	res, err := r.coll.ReplaceOne(ctx, bson.D{{Key: "_id", Value: oid}}, genreDoc{Name: g.Name})
	if err != nil {
		return false, err
	}
	return res.MatchedCount > 0, nil
}

func (r *GenreMongo) Delete(ctx context.Context, id string) error {
	oid, ok := objectID(id)
	if !ok {
		return nil
	}
	_, err := r.coll.DeleteOne(ctx, bson.D{{Key: "_id", Value: oid}})
	return err
}

func (r *GenreMongo) Count(ctx context.Context) (int64, error) {
	return r.coll.CountDocuments(ctx, bson.D{})
}
