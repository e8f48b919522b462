package main

import (
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"testing"

	"locallibrary/internal/config"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMigrationsDir_EnvOverride(t *testing.T) {
	t.Setenv("MIGRATIONS_DIR", "/custom/migrations")

	assert.Equal(t, "/custom/migrations", migrationsDir())
}

func TestMigrationsDir_Default(t *testing.T) {
	t.Setenv("MIGRATIONS_DIR", "")

	assert.Equal(t, "db/migrations", migrationsDir())
}

func TestLoadEnvFiles_DoesNotOverrideExistingEnv(t *testing.T) {
	tmp := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(tmp, ".env"), []byte("DB_DSN=from_file\n"), 0644))

	t.Setenv("DB_DSN", "from_env")
	t.Chdir(tmp)

	config.LoadEnvFiles()

	assert.Equal(t, "from_env", os.Getenv("DB_DSN"))
}

func TestMigrate_CreateRequiresName(t *testing.T) {
	logger := slog.New(slog.NewTextHandler(io.Discard, nil))

	err := migrate("", t.TempDir(), "create", "", logger)
	assert.EqualError(t, err, "name is required for 'create' command")
}

func TestMigrate_CreateWritesFile(t *testing.T) {
	dir := t.TempDir()
	logger := slog.New(slog.NewTextHandler(io.Discard, nil))

	require.NoError(t, migrate("", dir, "create", "add_loans", logger))

	matches, err := filepath.Glob(filepath.Join(dir, "*_add_loans.sql"))
	require.NoError(t, err)
	assert.Len(t, matches, 1)
}
