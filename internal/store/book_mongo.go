package store

import (
	"context"

	"locallibrary/internal/catalog"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

type bookDoc struct {
	ID      primitive.ObjectID   `bson:"_id,omitempty"`
	Title   string               `bson:"title"`
	Author  primitive.ObjectID   `bson:"author"`
	Summary string               `bson:"summary"`
	ISBN    string               `bson:"isbn"`
	Genre   []primitive.ObjectID `bson:"genre"`
}

func (d bookDoc) toBook() catalog.Book {
	return catalog.Book{
		ID:       d.ID.Hex(),
		Title:    d.Title,
		AuthorID: d.Author.Hex(),
		Summary:  d.Summary,
		ISBN:     d.ISBN,
		GenreIDs: hexIDs(d.Genre),
	}
}

func newBookDoc(b catalog.Book) (bookDoc, error) {
	author, err := refID(b.AuthorID)
	if err != nil {
		return bookDoc{}, err
	}
	genres, err := refIDs(b.GenreIDs)
	if err != nil {
		return bookDoc{}, err
	}
	return bookDoc{
		Title:   b.Title,
		Author:  author,
		Summary: b.Summary,
		ISBN:    b.ISBN,
		Genre:   genres,
	}, nil
}

type bookDetailDoc struct {
	Book         bookDoc     `bson:",inline"`
	AuthorDetail []authorDoc `bson:"author_detail"`
	GenreDetail  []genreDoc  `bson:"genre_detail"`
}

func (d bookDetailDoc) toDetail() catalog.BookDetail {
	genres := make(map[string]catalog.Genre, len(d.GenreDetail))
	for _, g := range d.GenreDetail {
		genres[g.ID.Hex()] = g.toGenre()
	}

	b := d.Book.toBook()
	out := catalog.BookDetail{Book: b, Genres: genresInOrder(b.GenreIDs, genres)}
	if len(d.AuthorDetail) > 0 {
		a := d.AuthorDetail[0].toAuthor()
		out.Author = &a
	}
	return out
}

var expandBookStages = mongo.Pipeline{
	{{Key: "$lookup", Value: bson.D{
		{Key: "from", Value: authorsCollection},
		{Key: "localField", Value: "author"},
		{Key: "foreignField", Value: "_id"},
		{Key: "as", Value: "author_detail"},
	}}},
	{{Key: "$lookup", Value: bson.D{
		{Key: "from", Value: genresCollection},
		{Key: "localField", Value: "genre"},
		{Key: "foreignField", Value: "_id"},
		{Key: "as", Value: "genre_detail"},
	}}},
}

type BookMongo struct {
	coll *mongo.Collection
}

func NewBookMongo(db *mongo.Database) *BookMongo {
	return &BookMongo{coll: db.Collection(booksCollection)}
}

func (r *BookMongo) FindAll(ctx context.Context) ([]catalog.BookDetail, error) {
	pipeline := mongo.Pipeline{{{Key: "$sort", Value: bson.D{{Key: "title", Value: 1}}}}}
	pipeline = append(pipeline, expandBookStages...)

	cur, err := r.coll.Aggregate(ctx, pipeline)
	if err != nil {
		return nil, err
	}
	return decodeAll(ctx, cur, bookDetailDoc.toDetail)
}

func (r *BookMongo) FindByID(ctx context.Context, id string) (*catalog.BookDetail, error) {
	oid, ok := objectID(id)
	if !ok {
		return nil, nil
	}
	pipeline := mongo.Pipeline{{{Key: "$match", Value: bson.D{{Key: "_id", Value: oid}}}}}
	pipeline = append(pipeline, expandBookStages...)

	cur, err := r.coll.Aggregate(ctx, pipeline)
	if err != nil {
		return nil, err
	}
	books, err := decodeAll(ctx, cur, bookDetailDoc.toDetail)
	if err != nil {
		return nil, err
	}
	if len(books) == 0 {
		return nil, nil
	}
	return &books[0], nil
}

func (r *BookMongo) FindByAuthor(ctx context.Context, authorID string) ([]catalog.Book, error) {
	oid, ok := objectID(authorID)
	if !ok {
		return []catalog.Book{}, nil
	}
	return r.find(ctx, bson.D{{Key: "author", Value: oid}})
}

func (r *BookMongo) FindByGenre(ctx context.Context, genreID string) ([]catalog.Book, error) {
	oid, ok := objectID(genreID)
	if !ok {
		return []catalog.Book{}, nil
	}
	return r.find(ctx, bson.D{{Key: "genre", Value: oid}})
}

func (r *BookMongo) find(ctx context.Context, filter bson.D) ([]catalog.Book, error) {
	cur, err := r.coll.Find(ctx, filter, options.Find().SetSort(bson.D{{Key: "title", Value: 1}}))
	if err != nil {
		return nil, err
	}
	return decodeAll(ctx, cur, bookDoc.toBook)
}

func (r *BookMongo) Insert(ctx context.Context, b *catalog.Book) error {
	doc, err := newBookDoc(*b)
	if err != nil {
		return err
	}
	res, err := r.coll.InsertOne(ctx, doc)
	if err != nil {
		return err
	}
	b.ID, err = insertedHex(res)
	return err
}

func (r *BookMongo) Update(ctx context.Context, b catalog.Book) (bool, error) {
	oid, ok := objectID(b.ID)
	if !ok {
		return false, nil
	}
	doc, err := newBookDoc(b)
	if err != nil {
		return false, err
	}
	res, err := r.coll.ReplaceOne(ctx, bson.D{{Key: "_id", Value: oid}}, doc)
	if err != nil {
		return false, err
	}
	return res.MatchedCount > 0, nil
}

func (r *BookMongo) Delete(ctx context.Context, id string) error {
	oid, ok := objectID(id)
	if !ok {
		return nil
	}
	_, err := r.coll.DeleteOne(ctx, bson.D{{Key: "_id", Value: oid}})
	return err
}

func (r *BookMongo) Count(ctx context.Context) (int64, error) {
	return r.coll.CountDocuments(ctx, bson.D{})
}
