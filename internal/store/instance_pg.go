package store

import (
	"context"
	"errors"

	"locallibrary/internal/catalog"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgtype"
	"github.com/jackc/pgx/v5/pgxpool"
)

type InstancePG struct {
	db *pgxpool.Pool
}

func NewInstancePG(db *pgxpool.Pool) *InstancePG {
	return &InstancePG{db: db}
}

const instanceDetailSQL = `
	SELECT i.id::text, i.book_id::text, i.imprint, i.status, i.due_back,
		b.id::text, b.title, b.author_id::text, b.summary, b.isbn
	FROM book_instances i
	LEFT JOIN books b ON b.id = i.book_id`

func scanInstanceDetail(row pgx.Row) (catalog.InstanceDetail, error) {
	var d catalog.InstanceDetail
	var status string
	var due pgtype.Date
	var bookID, title, authorID, summary, isbn pgtype.Text
	err := row.Scan(&d.ID, &d.BookID, &d.Imprint, &status, &due,
		&bookID, &title, &authorID, &summary, &isbn)
	if err != nil {
		return catalog.InstanceDetail{}, err
	}
	d.Status = catalog.Status(status)
	d.DueBack = fromPGDate(due)
	if bookID.Valid {
		d.Book = &catalog.Book{
			ID:       bookID.String,
			Title:    title.String,
			AuthorID: authorID.String,
			Summary:  summary.String,
			ISBN:     isbn.String,
		}
	}
	return d, nil
}

func (r *InstancePG) FindAll(ctx context.Context, f catalog.InstanceFilter) ([]catalog.InstanceDetail, error) {
	rows, err := r.db.Query(ctx, instanceDetailSQL+`
		WHERE ($1::text = '' OR i.status = $1)
		ORDER BY b.title NULLS FIRST, i.id`, string(f.Status))
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out := make([]catalog.InstanceDetail, 0)
	for rows.Next() {
		d, err := scanInstanceDetail(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, d)
	}
	return out, rows.Err()
}

func (r *InstancePG) FindByID(ctx context.Context, id string) (*catalog.InstanceDetail, error) {
	if !pgID(id) {
		return nil, nil
	}
	d, err := scanInstanceDetail(r.db.QueryRow(ctx, instanceDetailSQL+` WHERE i.id = $1`, id))
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &d, nil
}

func (r *InstancePG) FindByBook(ctx context.Context, bookID string) ([]catalog.BookInstance, error) {
	if !pgID(bookID) {
		return []catalog.BookInstance{}, nil
	}
	rows, err := r.db.Query(ctx, `
		SELECT id::text, book_id::text, imprint, status, due_back
		FROM book_instances WHERE book_id = $1 ORDER BY id`, bookID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out := make([]catalog.BookInstance, 0)
	for rows.Next() {
		var bi catalog.BookInstance
		var status string
		var due pgtype.Date
		if err := rows.Scan(&bi.ID, &bi.BookID, &bi.Imprint, &status, &due); err != nil {
			return nil, err
		}
		bi.Status = catalog.Status(status)
		bi.DueBack = fromPGDate(due)
		out = append(out, bi)
	}
	return out, rows.Err()
}

func (r *InstancePG) Insert(ctx context.Context, bi *catalog.BookInstance) error {
	id := uuid.NewString()
	_, err := r.db.Exec(ctx, `
		INSERT INTO book_instances (id, book_id, imprint, status, due_back)
		VALUES ($1, $2, $3, $4, $5)`,
		id, bi.BookID, bi.Imprint, string(bi.Status), pgDate(bi.DueBack))
	if err != nil {
		return err
	}
	bi.ID = id
	return nil
}

func (r *InstancePG) Update(ctx context.Context, bi catalog.BookInstance) (bool, error) {
	if !pgID(bi.ID) {
		return false, nil
	}
	tag, err := r.db.Exec(ctx, `
		UPDATE book_instances
		SET book_id = $2, imprint = $3, status = $4, due_back = $5
		WHERE id = $1`,
		bi.ID, bi.BookID, bi.Imprint, string(bi.Status), pgDate(bi.DueBack))
	if err != nil {
		return false, err
	}
	return tag.RowsAffected() > 0, nil
}

func (r *InstancePG) Delete(ctx context.Context, id string) error {
	if !pgID(id) {
		return nil
	}
	_, err := r.db.Exec(ctx, `DELETE FROM book_instances WHERE id = $1`, id)
	return err
}

func (r *InstancePG) Count(ctx context.Context, f catalog.InstanceFilter) (int64, error) {
	var n int64
	err := r.db.QueryRow(ctx, `
		SELECT COUNT(*) FROM book_instances WHERE ($1::text = '' OR status = $1)`,
		string(f.Status)).Scan(&n)
	return n, err
}
