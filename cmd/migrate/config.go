package main

import (
	"os"
)

// migrationsDir is where the goose SQL files live, relative to the working
// directory unless MIGRATIONS_DIR says otherwise.
func migrationsDir() string {
	if v := os.Getenv("MIGRATIONS_DIR"); v != "" {
		return v
	}
	return "db/migrations"
}
