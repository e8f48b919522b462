package main

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSQLMigrations_HaveGooseDirectives(t *testing.T) {
	dir := repoMigrations(t)
	entries, err := os.ReadDir(dir)
	require.NoError(t, err)

	for _, e := range entries {
		if e.IsDir() || !strings.HasSuffix(e.Name(), ".sql") {
			continue
		}
		b, err := os.ReadFile(filepath.Join(dir, e.Name()))
		require.NoError(t, err)

		s := string(b)
		assert.Contains(t, s, "-- +goose Up", e.Name())
		assert.Contains(t, s, "-- +goose Down", e.Name())
		assert.Less(t, strings.Index(s, "-- +goose Up"), strings.Index(s, "-- +goose Down"), "%s: Up must precede Down", e.Name())
	}
}

func TestSQLMigrations_CreateEveryCatalogTable(t *testing.T) {
	b, err := os.ReadFile(filepath.Join(repoMigrations(t), "00001_create_catalog.sql"))
	require.NoError(t, err)

	for _, table := range []string{"authors", "genres", "books", "book_genres", "book_instances"} {
		assert.Contains(t, string(b), "CREATE TABLE "+table+" ", table)
	}
}
