package store

import (
	"context"
	"errors"
	"time"

	"locallibrary/internal/catalog"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

type authorDoc struct {
	ID          primitive.ObjectID `bson:"_id,omitempty"`
	FirstName   string             `bson:"first_name"`
	FamilyName  string             `bson:"family_name"`
	DateOfBirth *time.Time         `bson:"date_of_birth,omitempty"`
	DateOfDeath *time.Time         `bson:"date_of_death,omitempty"`
}

func (d authorDoc) toAuthor() catalog.Author {
	return catalog.Author{
		ID:          d.ID.Hex(),
		FirstName:   d.FirstName,
		FamilyName:  d.FamilyName,
		DateOfBirth: d.DateOfBirth,
		DateOfDeath: d.DateOfDeath,
	}
}

func newAuthorDoc(a catalog.Author) authorDoc {
	return authorDoc{
		FirstName:   a.FirstName,
		FamilyName:  a.FamilyName,
		DateOfBirth: a.DateOfBirth,
		DateOfDeath: a.DateOfDeath,
	}
}

type AuthorMongo struct {
	coll *mongo.Collection
}

func NewAuthorMongo(db *mongo.Database) *AuthorMongo {
	return &AuthorMongo{coll: db.Collection(authorsCollection)}
}

func (r *AuthorMongo) FindAll(ctx context.Context) ([]catalog.Author, error) {
	opts := options.Find().SetSort(bson.D{{Key: "family_name", Value: 1}, {Key: "first_name", Value: 1}})
	cur, err := r.coll.Find(ctx, bson.D{}, opts)
	if err != nil {
		return nil, err
	}
	return decodeAll(ctx, cur, authorDoc.toAuthor)
}

func (r *AuthorMongo) FindByID(ctx context.Context, id string) (*catalog.Author, error) {
	oid, ok := objectID(id)
	if !ok {
		return nil, nil
	}
	var d authorDoc
	err := r.coll.FindOne(ctx, bson.D{{Key: "_id", Value: oid}}).Decode(&d)
	if errors.Is(err, mongo.ErrNoDocuments) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	a := d.toAuthor()
	return &a, nil
}

func (r *AuthorMongo) Insert(ctx context.Context, a *catalog.Author) error {
	res, err := r.coll.InsertOne(ctx, newAuthorDoc(*a))
	if err != nil {
		return err
	}
	a.ID, err = insertedHex(res)
	return err
}

func (r *AuthorMongo) Update(ctx context.Context, a catalog.Author) (bool, error) {
	oid, ok := objectID(a.ID)
	if !ok {
		return false, nil
	}
	res, err := r.coll.ReplaceOne(ctx, bson.D{{Key: "_id", Value: oid}}, newAuthorDoc(a))
	if err != nil {
		return false, err
	}
	return res.MatchedCount > 0, nil
}

func (r *AuthorMongo) Delete(ctx context.Context, id string) error {
	oid, ok := objectID(id)
	if !ok {
		return nil
	}
	_, err := r.coll.DeleteOne(ctx, bson.D{{Key: "_id", Value: oid}})
	return err
}

func (r *AuthorMongo) Count(ctx context.Context) (int64, error) {
	return r.coll.CountDocuments(ctx, bson.D{})
}
