package main

import (
	"context"
	"fmt"

	"locallibrary/internal/catalog"
	"locallibrary/internal/form"
	"locallibrary/internal/ingest"
)

type sampleAuthor struct {
	first, family, born, died string
}

type sampleBook struct {
	title, author, summary, isbn string
	genres                       []string
}

type sampleCopy struct {
	book, imprint, status, dueBack string
}

var sampleAuthors = []sampleAuthor{
	{"Patrick", "Rothfuss", "1973-06-06", ""},
	{"Ben", "Bova", "1932-11-08", ""},
	{"Isaac", "Asimov", "1920-01-02", "1992-04-06"},
	{"Bob", "Billings", "", ""},
	{"Jim", "Jones", "1971-12-16", ""},
}

var sampleGenres = []string{"Fantasy", "Science Fiction", "French Poetry"}

var sampleBooks = []sampleBook{
	{"The Name of the Wind (The Kingkiller Chronicle, #1)", "Rothfuss",
		"I have stolen princesses back from sleeping barrow kings. I burned down the town of Trebon. I have spent the night with Felurian and left with both my sanity and my life.",
		"9781473211896", []string{"Fantasy"}},
	{"The Wise Man's Fear (The Kingkiller Chronicle, #2)", "Rothfuss",
		"Picking up the tale of Kvothe Kingkiller once again, we follow him into exile, into political intrigue, courtship, adventure, love and magic.",
		"9788401352836", []string{"Fantasy"}},
	{"The Slow Regard of Silent Things (Kingkiller Chronicle)", "Rothfuss",
		"Deep below the University, there is a dark place. Few people know of it: a broken web of ancient passageways and abandoned rooms.",
		"9780756411336", []string{"Fantasy"}},
	{"Apes and Angels", "Bova",
		"Humankind headed out to the stars not for conquest, nor exploration, nor even for curiosity. Humans went to the stars in a desperate crusade to save intelligent life wherever they found it.",
		"9780765379528", []string{"Science Fiction"}},
	{"Death Wave", "Bova",
		"In Ben Bova's previous novel New Earth, Jordan Kell led the first human mission beyond the solar system.",
		"9780765379504", []string{"Science Fiction"}},
	{"Test Book 1", "Billings", "Summary of test book 1", "ISBN111111", []string{"Fantasy", "Science Fiction"}},
	{"Test Book 2", "Billings", "Summary of test book 2", "ISBN222222", nil},
}

var sampleCopies = []sampleCopy{
	{"The Name of the Wind (The Kingkiller Chronicle, #1)", "London Gollancz, 2014.", "Available", ""},
	{"The Wise Man's Fear (The Kingkiller Chronicle, #2)", "Gollancz, 2011.", "Loaned", "2026-11-01"},
	{"The Slow Regard of Silent Things (Kingkiller Chronicle)", "Gollancz, 2015.", "", ""},
	{"Apes and Angels", "New York Tom Doherty Associates, 2016.", "Available", ""},
	{"Apes and Angels", "New York Tom Doherty Associates, 2016.", "Available", ""},
	{"Apes and Angels", "New York Tom Doherty Associates, 2016.", "Available", ""},
	{"Death Wave", "New York, NY Tom Doherty Associates, LLC, 2015.", "Available", ""},
	{"Death Wave", "New York, NY Tom Doherty Associates, LLC, 2015.", "Maintenance", ""},
	{"Death Wave", "New York, NY Tom Doherty Associates, LLC, 2015.", "Loaned", "2026-11-15"},
	{"Test Book 1", "Imprint XXX2", "Available", ""},
	{"Test Book 2", "Imprint XXX3", "Available", ""},
}

// loadSample creates the sample library through the entity services so every
// record passes the same validation as a submitted form. It returns the number
// of records created.
func loadSample(ctx context.Context, svc ingest.Services) (int, error) {
	created := 0

	authorIDs := make(map[string]string, len(sampleAuthors))
	for _, a := range sampleAuthors {
		v := form.Values{}
		v.Set("first_name", a.first)
		v.Set("family_name", a.family)
		v.Set("date_of_birth", a.born)
		v.Set("date_of_death", a.died)
		rec, fd, err := svc.Authors.Create(ctx, v)
		if err := rejected(rec != nil, "author "+a.family, fd.Errors, err); err != nil {
			return created, err
		}
		authorIDs[a.family] = rec.ID
		created++
	}

	genreIDs := make(map[string]string, len(sampleGenres))
	for _, name := range sampleGenres {
		v := form.Values{}
		v.Set("name", name)
		rec, fd, err := svc.Genres.Create(ctx, v)
		if err := rejected(rec != nil, "genre "+name, fd.Errors, err); err != nil {
			return created, err
		}
		genreIDs[name] = rec.ID
		created++
	}

	bookIDs := make(map[string]string, len(sampleBooks))
	for _, b := range sampleBooks {
		v := form.Values{}
		v.Set("title", b.title)
		v.Set("author", authorIDs[b.author])
		v.Set("summary", b.summary)
		v.Set("isbn", b.isbn)
		ids := make([]string, 0, len(b.genres))
		for _, g := range b.genres {
			ids = append(ids, genreIDs[g])
		}
		v.SetList("genre", ids)
		rec, fd, err := svc.Books.Create(ctx, v)
		if err := rejected(rec != nil, "book "+b.title, fd.Errors, err); err != nil {
			return created, err
		}
		bookIDs[b.title] = rec.ID
		created++
	}

	for _, c := range sampleCopies {
		v := form.Values{}
		v.Set("book", bookIDs[c.book])
		v.Set("imprint", c.imprint)
		v.Set("status", c.status)
		v.Set("due_back", c.dueBack)
		rec, fd, err := svc.Instances.Create(ctx, v)
		if err := rejected(rec != nil, "copy of "+c.book, fd.Errors, err); err != nil {
			return created, err
		}
		created++
	}
	return created, nil
}

func rejected(ok bool, what string, errs form.Errors, err error) error {
	if err != nil {
		return fmt.Errorf("create %s: %w", what, err)
	}
	if !ok {
		return fmt.Errorf("create %s: rejected: %v", what, errs)
	}
	return nil
}

// wipe deletes every record, dependents first, and returns how many went.
func wipe(ctx context.Context, s catalog.Store) (int, error) {
	deleted := 0

	instances, err := s.Instances.FindAll(ctx, catalog.InstanceFilter{})
	if err != nil {
		return deleted, fmt.Errorf("list book instances: %w", err)
	}
	for _, bi := range instances {
		if err := s.Instances.Delete(ctx, bi.ID); err != nil {
			return deleted, fmt.Errorf("delete book instance %s: %w", bi.ID, err)
		}
		deleted++
	}

	books, err := s.Books.FindAll(ctx)
	if err != nil {
		return deleted, fmt.Errorf("list books: %w", err)
	}
	for _, b := range books {
		if err := s.Books.Delete(ctx, b.ID); err != nil {
			return deleted, fmt.Errorf("delete book %s: %w", b.ID, err)
		}
		deleted++
	}

	genres, err := s.Genres.FindAll(ctx)
	if err != nil {
		return deleted, fmt.Errorf("list genres: %w", err)
	}
	for _, g := range genres {
		if err := s.Genres.Delete(ctx, g.ID); err != nil {
			return deleted, fmt.Errorf("delete genre %s: %w", g.ID, err)
		}
		deleted++
	}

	authors, err := s.Authors.FindAll(ctx)
	if err != nil {
		return deleted, fmt.Errorf("list authors: %w", err)
	}
	for _, a := range authors {
		if err := s.Authors.Delete(ctx, a.ID); err != nil {
			return deleted, fmt.Errorf("delete author %s: %w", a.ID, err)
		}
		deleted++
	}
	return deleted, nil
}
