package ingest

import (
	"time"
)

const (
	StatusCompleted = "COMPLETED"
	StatusFailed    = "FAILED"
)

// Run summarizes one import.
type Run struct {
	StartedAt        time.Time  `json:"started_at"`
	FinishedAt       *time.Time `json:"finished_at,omitempty"`
	Status           string     `json:"status"`
	Subjects         []string   `json:"subjects"`
	Fetched          int        `json:"fetched"`
	GenresCreated    int        `json:"genres_created"`
	AuthorsCreated   int        `json:"authors_created"`
	BooksCreated     int        `json:"books_created"`
	InstancesCreated int        `json:"instances_created"`
	Skipped          int        `json:"skipped"`
	Error            string     `json:"error,omitempty"`
}

// Created is the number of records of every kind the run stored.
func (r Run) Created() int {
	return r.GenresCreated + r.AuthorsCreated + r.BooksCreated + r.InstancesCreated
}
