package ingest

import (
	"context"
	"fmt"
	"log/slog"
	"strconv"
	"strings"
	"time"
	"unicode"

	"locallibrary/internal/author"
	"locallibrary/internal/book"
	"locallibrary/internal/bookinstance"
	"locallibrary/internal/catalog"
	"locallibrary/internal/form"
	"locallibrary/internal/genre"
	"locallibrary/internal/platform/metrics"
	"locallibrary/internal/platform/openlibrary"

	"golang.org/x/net/html"
)

type Config struct {
	Subjects        []string
	BooksPerSubject int
	CopiesPerBook   int
}

type OpenLibraryClient interface {
	SearchBySubject(ctx context.Context, subject string, limit int) (*openlibrary.SearchResponse, error)
	GetAuthor(ctx context.Context, authorKey string) (*openlibrary.AuthorDetails, error)
}

// Services are the write paths every imported record goes through.
type Services struct {
	Authors   *author.Service
	Genres    *genre.Service
	Books     *book.Service
	Instances *bookinstance.Service
}

// Service imports Open Library works into the catalog. Records are submitted
// as form values, so they pass the same validation as a user's submission.
type Service struct {
	olClient OpenLibraryClient
	svc      Services
	logger   *slog.Logger
	cfg      Config
}

func NewService(olClient OpenLibraryClient, svc Services, logger *slog.Logger, cfg Config) *Service {
	if cfg.BooksPerSubject <= 0 {
		cfg.BooksPerSubject = 20
	}
	if cfg.CopiesPerBook <= 0 {
		cfg.CopiesPerBook = 1
	}
	return &Service{olClient: olClient, svc: svc, logger: logger, cfg: cfg}
}

// state caches what the catalog already holds so reruns do not duplicate.
type state struct {
	genres  map[string]string // name -> id
	authors map[string]string // Open Library key or "family, first" -> id
	books   map[string]bool   // title|author id
}

func (s *Service) Run(ctx context.Context) (run Run, err error) {
	run = Run{StartedAt: time.Now(), Subjects: s.cfg.Subjects}
	defer func() {
		now := time.Now()
		run.FinishedAt = &now
		if err != nil {
			run.Status = StatusFailed
			run.Error = err.Error()
		} else {
			run.Status = StatusCompleted
		}
		s.logger.Info("import finished",
			slog.String("status", run.Status),
			slog.Int("fetched", run.Fetched),
			slog.Int("created", run.Created()),
			slog.Int("skipped", run.Skipped),
		)
	}()

	st, err := s.load(ctx)
	if err != nil {
		return run, err
	}

	for _, subject := range s.cfg.Subjects {
		if err := s.importSubject(ctx, &run, st, subject); err != nil {
			return run, err
		}
	}
	return run, nil
}

func (s *Service) load(ctx context.Context) (*state, error) {
	st := &state{genres: map[string]string{}, authors: map[string]string{}, books: map[string]bool{}}

	genres, err := s.svc.Genres.List(ctx)
	if err != nil {
		return nil, fmt.Errorf("load genres: %w", err)
	}
	for _, g := range genres {
		st.genres[strings.ToLower(html.UnescapeString(g.Name))] = g.ID
	}

	authors, err := s.svc.Authors.List(ctx)
	if err != nil {
		return nil, fmt.Errorf("load authors: %w", err)
	}
	for _, a := range authors {
		st.authors[strings.ToLower(a.Name())] = a.ID
	}

	books, err := s.svc.Books.List(ctx)
	if err != nil {
		return nil, fmt.Errorf("load books: %w", err)
	}
	for _, b := range books {
		st.books[bookKey(html.UnescapeString(b.Title), b.AuthorID)] = true
	}
	return st, nil
}

func (s *Service) importSubject(ctx context.Context, run *Run, st *state, subject string) error {
	genreID, err := s.ensureGenre(ctx, run, st, subject)
	if err != nil || genreID == "" {
		return err
	}

	res, err := s.olClient.SearchBySubject(ctx, subject, s.cfg.BooksPerSubject)
	if err != nil {
		return fmt.Errorf("search failed for %s: %w", subject, err)
	}
	run.Fetched += len(res.Docs)

	for _, doc := range res.Docs {
		if err := s.importWork(ctx, run, st, genreID, doc); err != nil {
			return err
		}
	}
	return nil
}

func (s *Service) ensureGenre(ctx context.Context, run *Run, st *state, subject string) (string, error) {
	name := strings.TrimSpace(subject)
	if id, ok := st.genres[strings.ToLower(name)]; ok {
		return id, nil
	}

	g, fd, err := s.svc.Genres.Create(ctx, form.Values{"name": {titleCase(name)}})
	if err != nil {
		return "", err
	}
	if g == nil {
		s.skip(run, "genre", subject, fd.Errors)
		return "", nil
	}
	s.created(&run.GenresCreated)
	st.genres[strings.ToLower(name)] = g.ID
	return g.ID, nil
}

func (s *Service) importWork(ctx context.Context, run *Run, st *state, genreID string, doc openlibrary.SearchDoc) error {
	if len(doc.AuthorKeys) == 0 {
		s.skip(run, "book", doc.Title, form.Errors{{Field: "author", Kind: form.MissingField, Message: "Work has no author"}})
		return nil
	}

	authorID, err := s.ensureAuthor(ctx, run, st, doc.AuthorKeys[0])
	if err != nil || authorID == "" {
		return err
	}
	if st.books[bookKey(doc.Title, authorID)] {
		return nil
	}

	b, fd, err := s.svc.Books.Create(ctx, form.Values{
		"title":   {doc.Title},
		"author":  {authorID},
		"summary": {summaryOf(doc)},
		"isbn":    {preferredISBN(doc.ISBN)},
		"genre":   {genreID},
	})
	if err != nil {
		return err
	}
	if b == nil {
		s.skip(run, "book", doc.Title, fd.Errors)
		return nil
	}
	s.created(&run.BooksCreated)
	st.books[bookKey(doc.Title, authorID)] = true

	for i := 0; i < s.cfg.CopiesPerBook; i++ {
		bi, fd, err := s.svc.Instances.Create(ctx, form.Values{
			"book":    {b.ID},
			"imprint": {imprintOf(doc)},
			"status":  {string(catalog.StatusAvailable)},
		})
		if err != nil {
			return err
		}
		if bi == nil {
			s.skip(run, "bookinstance", doc.Title, fd.Errors)
			continue
		}
		s.created(&run.InstancesCreated)
	}
	return nil
}

func (s *Service) ensureAuthor(ctx context.Context, run *Run, st *state, key string) (string, error) {
	if id, ok := st.authors[key]; ok {
		return id, nil
	}

	details, err := s.olClient.GetAuthor(ctx, key)
	if err != nil {
		s.logger.Warn("fetch author failed", slog.String("key", key), slog.String("error", err.Error()))
		run.Skipped++
		metrics.Imported("skipped")
		return "", nil
	}

	first, family := splitName(details.Name)
	if id, ok := st.authors[strings.ToLower(family+", "+first)]; ok {
		st.authors[key] = id
		return id, nil
	}

	a, fd, err := s.svc.Authors.Create(ctx, form.Values{
		"first_name":    {first},
		"family_name":   {family},
		"date_of_birth": {openlibrary.ISODate(details.BirthDate)},
		"date_of_death": {openlibrary.ISODate(details.DeathDate)},
	})
	if err != nil {
		return "", err
	}
	if a == nil {
		s.skip(run, "author", details.Name, fd.Errors)
		return "", nil
	}
	s.created(&run.AuthorsCreated)
	st.authors[key] = a.ID
	st.authors[strings.ToLower(a.Name())] = a.ID
	return a.ID, nil
}

func (s *Service) created(n *int) {
	*n++
	metrics.Imported("created")
}

func (s *Service) skip(run *Run, entity, name string, errs form.Errors) {
	run.Skipped++
	metrics.Imported("skipped")
	s.logger.Info("import record rejected",
		slog.String("entity", entity),
		slog.String("name", name),
		slog.String("errors", errs.Error()),
	)
}

func bookKey(title, authorID string) string {
	return strings.ToLower(title) + "|" + authorID
}

// splitName turns "Ursula K. Le Guin" into ("Ursula", "Guin"). Characters that
// are neither letters nor digits are dropped. Non-ASCII letters survive, so the
// author form rejects such a name and the work is skipped.
func splitName(name string) (first, family string) {
	parts := strings.Fields(name)
	if len(parts) == 0 {
		return "", ""
	}
	first = lettersAndDigits(parts[0])
	if len(parts) > 1 {
		family = lettersAndDigits(parts[len(parts)-1])
	}
	return first, family
}

func lettersAndDigits(s string) string {
	return strings.Map(func(r rune) rune {
		if unicode.IsLetter(r) || unicode.IsDigit(r) {
			return r
		}
		return -1
	}, s)
}

// preferredISBN picks a 13 digit ISBN when the work has one.
func preferredISBN(isbns []string) string {
	if len(isbns) == 0 {
		return ""
	}
	for _, i := range isbns {
		if len(i) == 13 {
			return i
		}
	}
	return isbns[0]
}

func summaryOf(doc openlibrary.SearchDoc) string {
	if len(doc.FirstSentence) > 0 {
		return doc.FirstSentence[0]
	}
	if doc.FirstPublishYear > 0 {
		return doc.Title + ", first published in " + strconv.Itoa(doc.FirstPublishYear) + "."
	}
	return doc.Title
}

func imprintOf(doc openlibrary.SearchDoc) string {
	publisher := "Unknown publisher"
	if len(doc.Publishers) > 0 {
		publisher = doc.Publishers[0]
	}
	if doc.FirstPublishYear > 0 {
		return publisher + ", " + strconv.Itoa(doc.FirstPublishYear)
	}
	return publisher
}

func titleCase(s string) string {
	words := strings.Fields(s)
	for i, w := range words {
		r := []rune(w)
		r[0] = unicode.ToUpper(r[0])
		words[i] = string(r)
	}
	return strings.Join(words, " ")
}
