package store

import (
	"context"
	"errors"
	"fmt"

	"locallibrary/internal/catalog"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgtype"
	"github.com/jackc/pgx/v5/pgxpool"
)

type BookPG struct {
	db *pgxpool.Pool
}

func NewBookPG(db *pgxpool.Pool) *BookPG {
	return &BookPG{db: db}
}

const bookDetailSQL = `
	SELECT b.id::text, b.title, b.author_id::text, b.summary, b.isbn,
		a.id::text, a.first_name, a.family_name, a.date_of_birth, a.date_of_death
	FROM books b
	LEFT JOIN authors a ON a.id = b.author_id`

func scanBookDetail(row pgx.Row) (catalog.BookDetail, error) {
	var d catalog.BookDetail
	var authorID, first, family pgtype.Text
	var dob, dod pgtype.Date
	err := row.Scan(&d.ID, &d.Title, &d.AuthorID, &d.Summary, &d.ISBN,
		&authorID, &first, &family, &dob, &dod)
	if err != nil {
		return catalog.BookDetail{}, err
	}
	if authorID.Valid {
		d.Author = &catalog.Author{
			ID:          authorID.String,
			FirstName:   first.String,
			FamilyName:  family.String,
			DateOfBirth: fromPGDate(dob),
			DateOfDeath: fromPGDate(dod),
		}
	}
	d.GenreIDs = []string{}
	d.Genres = []catalog.Genre{}
	return d, nil
}

func (r *BookPG) FindAll(ctx context.Context) ([]catalog.BookDetail, error) {
	rows, err := r.db.Query(ctx, bookDetailSQL+` ORDER BY b.title`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	books := make([]catalog.BookDetail, 0)
	for rows.Next() {
		d, err := scanBookDetail(rows)
		if err != nil {
			return nil, err
		}
		books = append(books, d)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}

	if err := r.attachGenres(ctx, books); err != nil {
		return nil, err
	}
	return books, nil
}

func (r *BookPG) FindByID(ctx context.Context, id string) (*catalog.BookDetail, error) {
	if !pgID(id) {
		return nil, nil
	}
	d, err := scanBookDetail(r.db.QueryRow(ctx, bookDetailSQL+` WHERE b.id = $1`, id))
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}

	books := []catalog.BookDetail{d}
	if err := r.attachGenres(ctx, books); err != nil {
		return nil, err
	}
	return &books[0], nil
}

// attachGenres fills GenreIDs with every stored link and Genres with the
// links whose genre still exists, both in submission order.
func (r *BookPG) attachGenres(ctx context.Context, books []catalog.BookDetail) error {
	if len(books) == 0 {
		return nil
	}
	ids := make([]string, len(books))
	index := make(map[string]int, len(books))
	for i, b := range books {
		ids[i] = b.ID
		index[b.ID] = i
	}

	rows, err := r.db.Query(ctx, `
		SELECT bg.book_id::text, bg.genre_id::text, g.name
		FROM book_genres bg
		LEFT JOIN genres g ON g.id = bg.genre_id
		WHERE bg.book_id = ANY($1::uuid[])
		ORDER BY bg.book_id, bg.position`, ids)
	if err != nil {
		return fmt.Errorf("load book genres: %w", err)
	}
	defer rows.Close()

	for rows.Next() {
		var bookID, genreID string
		var name pgtype.Text
		if err := rows.Scan(&bookID, &genreID, &name); err != nil {
			return err
		}
		b := &books[index[bookID]]
		b.GenreIDs = append(b.GenreIDs, genreID)
		if name.Valid {
			b.Genres = append(b.Genres, catalog.Genre{ID: genreID, Name: name.String})
		}
	}
	return rows.Err()
}

func (r *BookPG) FindByAuthor(ctx context.Context, authorID string) ([]catalog.Book, error) {
	if !pgID(authorID) {
		return []catalog.Book{}, nil
	}
	return r.find(ctx, `WHERE b.author_id = $1`, authorID)
}

func (r *BookPG) FindByGenre(ctx context.Context, genreID string) ([]catalog.Book, error) {
	if !pgID(genreID) {
		return []catalog.Book{}, nil
	}
	return r.find(ctx, `WHERE EXISTS (SELECT 1 FROM book_genres bg WHERE bg.book_id = b.id AND bg.genre_id = $1)`, genreID)
}

func (r *BookPG) find(ctx context.Context, where string, arg string) ([]catalog.Book, error) {
	rows, err := r.db.Query(ctx, `
		SELECT b.id::text, b.title, b.author_id::text, b.summary, b.isbn,
			COALESCE(ARRAY(SELECT bg.genre_id::text FROM book_genres bg WHERE bg.book_id = b.id ORDER BY bg.position), '{}')
		FROM books b `+where+` ORDER BY b.title`, arg)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	books := make([]catalog.Book, 0)
	for rows.Next() {
		var b catalog.Book
		if err := rows.Scan(&b.ID, &b.Title, &b.AuthorID, &b.Summary, &b.ISBN, &b.GenreIDs); err != nil {
			return nil, err
		}
		books = append(books, b)
	}
	return books, rows.Err()
}

func (r *BookPG) Insert(ctx context.Context, b *catalog.Book) error {
	id := uuid.NewString()
	err := pgx.BeginFunc(ctx, r.db, func(tx pgx.Tx) error {
		_, err := tx.Exec(ctx, `
			INSERT INTO books (id, title, author_id, summary, isbn)
			VALUES ($1, $2, $3, $4, $5)`,
			id, b.Title, b.AuthorID, b.Summary, b.ISBN)
		if err != nil {
			return fmt.Errorf("insert book: %w", err)
		}
		return writeBookGenres(ctx, tx, id, b.GenreIDs)
	})
	if err != nil {
		return err
	}
	b.ID = id
	return nil
}

func (r *BookPG) Update(ctx context.Context, b catalog.Book) (bool, error) {
	if !pgID(b.ID) {
		return false, nil
	}
	matched := false
	err := pgx.BeginFunc(ctx, r.db, func(tx pgx.Tx) error {
		tag, err := tx.Exec(ctx, `
			UPDATE books SET title = $2, author_id = $3, summary = $4, isbn = $5
			WHERE id = $1`,
			b.ID, b.Title, b.AuthorID, b.Summary, b.ISBN)
		if err != nil {
			return fmt.Errorf("update book: %w", err)
		}
		if tag.RowsAffected() == 0 {
			return nil
		}
		matched = true
		if _, err := tx.Exec(ctx, `DELETE FROM book_genres WHERE book_id = $1`, b.ID); err != nil {
			return fmt.Errorf("clear book genres: %w", err)
		}
		return writeBookGenres(ctx, tx, b.ID, b.GenreIDs)
	})
	return matched, err
}

func writeBookGenres(ctx context.Context, tx pgx.Tx, bookID string, genreIDs []string) error {
	for i, g := range genreIDs {
		_, err := tx.Exec(ctx, `
			INSERT INTO book_genres (book_id, genre_id, position) VALUES ($1, $2, $3)
			ON CONFLICT (book_id, genre_id) DO NOTHING`, bookID, g, i)
		if err != nil {
			return fmt.Errorf("insert book genre: %w", err)
		}
	}
	return nil
}

func (r *BookPG) Delete(ctx context.Context, id string) error {
	if !pgID(id) {
		return nil
	}
	_, err := r.db.Exec(ctx, `DELETE FROM books WHERE id = $1`, id)
	return err
}

func (r *BookPG) Count(ctx context.Context) (int64, error) {
	var n int64
	err := r.db.QueryRow(ctx, `SELECT COUNT(*) FROM books`).Scan(&n)
	return n, err
}
