package store

import (
	"context"
	"time"

	"locallibrary/internal/catalog"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
)

type instanceDoc struct {
	ID      primitive.ObjectID `bson:"_id,omitempty"`
	Book    primitive.ObjectID `bson:"book"`
	Imprint string             `bson:"imprint"`
	Status  string             `bson:"status"`
	DueBack *time.Time         `bson:"due_back,omitempty"`
}

func (d instanceDoc) toInstance() catalog.BookInstance {
	return catalog.BookInstance{
		ID:      d.ID.Hex(),
		BookID:  d.Book.Hex(),
		Imprint: d.Imprint,
		Status:  catalog.Status(d.Status),
		DueBack: d.DueBack,
	}
}

func newInstanceDoc(bi catalog.BookInstance) (instanceDoc, error) {
	book, err := refID(bi.BookID)
	if err != nil {
		return instanceDoc{}, err
	}
	return instanceDoc{
		Book:    book,
		Imprint: bi.Imprint,
		Status:  string(bi.Status),
		DueBack: bi.DueBack,
	}, nil
}

type instanceDetailDoc struct {
	Instance   instanceDoc `bson:",inline"`
	BookDetail []bookDoc   `bson:"book_detail"`
}

func (d instanceDetailDoc) toDetail() catalog.InstanceDetail {
	out := catalog.InstanceDetail{BookInstance: d.Instance.toInstance()}
	if len(d.BookDetail) > 0 {
		b := d.BookDetail[0].toBook()
		out.Book = &b
	}
	return out
}

var expandInstanceStage = bson.D{{Key: "$lookup", Value: bson.D{
	{Key: "from", Value: booksCollection},
	{Key: "localField", Value: "book"},
	{Key: "foreignField", Value: "_id"},
	{Key: "as", Value: "book_detail"},
}}}

type InstanceMongo struct {
	coll *mongo.Collection
}

func NewInstanceMongo(db *mongo.Database) *InstanceMongo {
	return &InstanceMongo{coll: db.Collection(instancesCollection)}
}

func instanceFilter(f catalog.InstanceFilter) bson.D {
	if f.Status == "" {
		return bson.D{}
	}
	return bson.D{{Key: "status", Value: string(f.Status)}}
}

func (r *InstanceMongo) FindAll(ctx context.Context, f catalog.InstanceFilter) ([]catalog.InstanceDetail, error) {
	pipeline := mongo.Pipeline{
		{{Key: "$match", Value: instanceFilter(f)}},
		expandInstanceStage,
		{{Key: "$sort", Value: bson.D{{Key: "book_detail.title", Value: 1}, {Key: "_id", Value: 1}}}},
	}
	cur, err := r.coll.Aggregate(ctx, pipeline)
	if err != nil {
		return nil, err
	}
	return decodeAll(ctx, cur, instanceDetailDoc.toDetail)
}

func (r *InstanceMongo) FindByID(ctx context.Context, id string) (*catalog.InstanceDetail, error) {
	oid, ok := objectID(id)
	if !ok {
		return nil, nil
	}
	pipeline := mongo.Pipeline{
		{{Key: "$match", Value: bson.D{{Key: "_id", Value: oid}}}},
		expandInstanceStage,
	}
	cur, err := r.coll.Aggregate(ctx, pipeline)
	if err != nil {
		return nil, err
	}
	out, err := decodeAll(ctx, cur, instanceDetailDoc.toDetail)
	if err != nil {
		return nil, err
	}
	if len(out) == 0 {
		return nil, nil
	}
	return &out[0], nil
}

func (r *InstanceMongo) FindByBook(ctx context.Context, bookID string) ([]catalog.BookInstance, error) {
	oid, ok := objectID(bookID)
	if !ok {
		return []catalog.BookInstance{}, nil
	}
	cur, err := r.coll.Find(ctx, bson.D{{Key: "book", Value: oid}})
	if err != nil {
		return nil, err
	}
	return decodeAll(ctx, cur, instanceDoc.toInstance)
}

func (r *InstanceMongo) Insert(ctx context.Context, bi *catalog.BookInstance) error {
	doc, err := newInstanceDoc(*bi)
	if err != nil {
		return err
	}
	res, err := r.coll.InsertOne(ctx, doc)
	if err != nil {
		return err
	}
	bi.ID, err = insertedHex(res)
	return err
}

func (r *InstanceMongo) Update(ctx context.Context, bi catalog.BookInstance) (bool, error) {
	oid, ok := objectID(bi.ID)
	if !ok {
		return false, nil
	}
	doc, err := newInstanceDoc(bi)
	if err != nil {
		return false, err
	}
	res, err := r.coll.ReplaceOne(ctx, bson.D{{Key: "_id", Value: oid}}, doc)
	if err != nil {
		return false, err
	}
	return res.MatchedCount > 0, nil
}

func (r *InstanceMongo) Delete(ctx context.Context, id string) error {
	oid, ok := objectID(id)
	if !ok {
		return nil
	}
	_, err := r.coll.DeleteOne(ctx, bson.D{{Key: "_id", Value: oid}})
	return err
}

func (r *InstanceMongo) Count(ctx context.Context, f catalog.InstanceFilter) (int64, error) {
	return r.coll.CountDocuments(ctx, instanceFilter(f))
}
