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

type AuthorPG struct {
	db *pgxpool.Pool
}

func NewAuthorPG(db *pgxpool.Pool) *AuthorPG {
	return &AuthorPG{db: db}
}

func scanAuthor(row pgx.Row) (catalog.Author, error) {
	var a catalog.Author
	var dob, dod pgtype.Date
	if err := row.Scan(&a.ID, &a.FirstName, &a.FamilyName, &dob, &dod); err != nil {
		return catalog.Author{}, err
	}
	a.DateOfBirth = fromPGDate(dob)
	a.DateOfDeath = fromPGDate(dod)
	return a, nil
}

func (r *AuthorPG) FindAll(ctx context.Context) ([]catalog.Author, error) {
	rows, err := r.db.Query(ctx, `
		SELECT id::text, first_name, family_name, date_of_birth, date_of_death
		FROM authors
		ORDER BY family_name, first_name`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	authors := make([]catalog.Author, 0)
	for rows.Next() {
		a, err := scanAuthor(rows)
		if err != nil {
			return nil, err
		}
		authors = append(authors, a)
	}
	return authors, rows.Err()
}

func (r *AuthorPG) FindByID(ctx context.Context, id string) (*catalog.Author, error) {
	if !pgID(id) {
		return nil, nil
	}
	a, err := scanAuthor(r.db.QueryRow(ctx, `
		SELECT id::text, first_name, family_name, date_of_birth, date_of_death
		FROM authors WHERE id = $1`, id))
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &a, nil
}

func (r *AuthorPG) Insert(ctx context.Context, a *catalog.Author) error {
	id := uuid.NewString()
	_, err := r.db.Exec(ctx, `
		INSERT INTO authors (id, first_name, family_name, date_of_birth, date_of_death)
		VALUES ($1, $2, $3, $4, $5)`,
		id, a.FirstName, a.FamilyName, pgDate(a.DateOfBirth), pgDate(a.DateOfDeath))
	if err != nil {
		return err
	}
	a.ID = id
	return nil
}

func (r *AuthorPG) Update(ctx context.Context, a catalog.Author) (bool, error) {
	if !pgID(a.ID) {
		return false, nil
	}
	tag, err := r.db.Exec(ctx, `
		UPDATE authors
		SET first_name = $2, family_name = $3, date_of_birth = $4, date_of_death = $5
		WHERE id = $1`,
		a.ID, a.FirstName, a.FamilyName, pgDate(a.DateOfBirth), pgDate(a.DateOfDeath))
	if err != nil {
		return false, err
	}
	return tag.RowsAffected() > 0, nil
}

func (r *AuthorPG) Delete(ctx context.Context, id string) error {
	if !pgID(id) {
		return nil
	}
	_, err := r.db.Exec(ctx, `DELETE FROM authors WHERE id = $1`, id)
	return err
}

func (r *AuthorPG) Count(ctx context.Context) (int64, error) {
	var n int64
	err := r.db.QueryRow(ctx, `SELECT COUNT(*) FROM authors`).Scan(&n)
	return n, err
}
