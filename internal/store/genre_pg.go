package store

import (
	"context"
	"errors"

	"locallibrary/internal/catalog"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

type GenrePG struct {
	db *pgxpool.Pool
}

func NewGenrePG(db *pgxpool.Pool) *GenrePG {
	return &GenrePG{db: db}
}

func (r *GenrePG) FindAll(ctx context.Context) ([]catalog.Genre, error) {
	rows, err := r.db.Query(ctx, `SELECT id::text, name FROM genres ORDER BY name`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	genres := make([]catalog.Genre, 0)
	for rows.Next() {
		var g catalog.Genre
		if err := rows.Scan(&g.ID, &g.Name); err != nil {
			return nil, err
		}
		genres = append(genres, g)
	}
	return genres, rows.Err()
}

func (r *GenrePG) FindByID(ctx context.Context, id string) (*catalog.Genre, error) {
	if !pgID(id) {
		return nil, nil
	}
	var g catalog.Genre
	err := r.db.QueryRow(ctx, `SELECT id::text, name FROM genres WHERE id = $1`, id).Scan(&g.ID, &g.Name)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &g, nil
}

func (r *GenrePG) Insert(ctx context.Context, g *catalog.Genre) error {
	id := uuid.NewString()
	if _, err := r.db.Exec(ctx, `INSERT INTO genres (id, name) VALUES ($1, $2)`, id, g.Name); err != nil {
		return err
	}
	g.ID = id
	return nil
}

func (r *GenrePG) Update(ctx context.Context, g catalog.Genre) (bool, error) {
	if !pgID(g.ID) {
		return false, nil
	}
	tag, err := r.db.Exec(ctx, `UPDATE genres SET name = $2 WHERE id = $1`, g.ID, g.Name)
	if err != nil {
		return false, err
	}
	return tag.RowsAffected() > 0, nil
}

func (r *GenrePG) Delete(ctx context.Context, id string) error {
	if !pgID(id) {
		return nil
	}
	_, err := r.db.Exec(ctx, `DELETE FROM genres WHERE id = $1`, id)
	return err
}

func (r *GenrePG) Count(ctx context.Context) (int64, error) {
	var n int64
	err := r.db.QueryRow(ctx, `SELECT COUNT(*) FROM genres`).Scan(&n)
	return n, err
}
