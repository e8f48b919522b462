package ingest

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"testing"
	"time"

	"locallibrary/internal/author"
	"locallibrary/internal/book"
	"locallibrary/internal/bookinstance"
	"locallibrary/internal/catalog"
	"locallibrary/internal/genre"
	"locallibrary/internal/platform/openlibrary"
	"locallibrary/internal/testutil"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

type mockOLClient struct {
	mock.Mock
}

func (m *mockOLClient) SearchBySubject(ctx context.Context, subject string, limit int) (*openlibrary.SearchResponse, error) {
	args := m.Called(ctx, subject, limit)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*openlibrary.SearchResponse), args.Error(1)
}

func (m *mockOLClient) GetAuthor(ctx context.Context, authorKey string) (*openlibrary.AuthorDetails, error) {
	args := m.Called(ctx, authorKey)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*openlibrary.AuthorDetails), args.Error(1)
}

func newTestService(t *testing.T, ol OpenLibraryClient, cfg Config) (*Service, catalog.Store) {
	t.Helper()
	store := testutil.NewStore(t)
	svc := Services{
		Authors:   author.NewService(store, time.Second),
		Genres:    genre.NewService(store, time.Second),
		Books:     book.NewService(store, time.Second),
		Instances: bookinstance.NewService(store, time.Second),
	}
	logger := slog.New(slog.NewTextHandler(io.Discard, nil))
	return NewService(ol, svc, logger, cfg), store
}

var duneSearch = &openlibrary.SearchResponse{
	NumFound: 3,
	Docs: []openlibrary.SearchDoc{
		{
			Title:            "Dune",
			AuthorKeys:       []string{"OL1A"},
			ISBN:             []string{"0441013597", "9780441013593"},
			Publishers:       []string{"Ace"},
			FirstPublishYear: 1965,
		},
		{
			Title:            "Dune Messiah",
			AuthorKeys:       []string{"OL1A"},
			ISBN:             []string{"9780593098233"},
			FirstPublishYear: 1969,
		},
		{
			Title:      "Untitled draft",
			AuthorKeys: []string{"OL1A"},
		},
	},
}

func TestService_Run(t *testing.T) {
	mockOL := new(mockOLClient)
	mockOL.On("SearchBySubject", mock.Anything, "science fiction", 10).Return(duneSearch, nil)
	mockOL.On("GetAuthor", mock.Anything, "OL1A").Return(&openlibrary.AuthorDetails{
		Name:      "Frank Herbert",
		BirthDate: "8 October 1920",
		DeathDate: "11 February 1986",
	}, nil).Once()

	svc, store := newTestService(t, mockOL, Config{Subjects: []string{"science fiction"}, BooksPerSubject: 10, CopiesPerBook: 2})
	ctx := context.Background()

	run, err := svc.Run(ctx)
	require.NoError(t, err)
	mockOL.AssertExpectations(t)

	assert.Equal(t, StatusCompleted, run.Status)
	assert.Equal(t, 3, run.Fetched)
	assert.Equal(t, 1, run.GenresCreated)
	assert.Equal(t, 1, run.AuthorsCreated)
	assert.Equal(t, 2, run.BooksCreated)
	assert.Equal(t, 4, run.InstancesCreated)
	assert.Equal(t, 1, run.Skipped, "the work without an ISBN is rejected by the book form")
	assert.NotNil(t, run.FinishedAt)

	books, err := store.Books.FindAll(ctx)
	require.NoError(t, err)
	require.Len(t, books, 2)
	assert.Equal(t, "Dune", books[0].Title)
	assert.Equal(t, "9780441013593", books[0].ISBN)
	require.NotNil(t, books[0].Author)
	assert.Equal(t, "Herbert, Frank", books[0].Author.Name())
	assert.Equal(t, "1920-10-08", books[0].Author.DateOfBirth.Format("2006-01-02"))
	require.Len(t, books[0].Genres, 1)
	assert.Equal(t, "Science Fiction", books[0].Genres[0].Name)

	available, err := store.Instances.Count(ctx, catalog.InstanceFilter{Status: catalog.StatusAvailable})
	require.NoError(t, err)
	assert.Equal(t, int64(4), available)
}

func TestService_Run_IsIdempotent(t *testing.T) {
	mockOL := new(mockOLClient)
	mockOL.On("SearchBySubject", mock.Anything, "science fiction", 10).Return(duneSearch, nil)
	mockOL.On("GetAuthor", mock.Anything, "OL1A").Return(&openlibrary.AuthorDetails{Name: "Frank Herbert"}, nil)

	svc, store := newTestService(t, mockOL, Config{Subjects: []string{"science fiction"}, BooksPerSubject: 10})
	ctx := context.Background()

	_, err := svc.Run(ctx)
	require.NoError(t, err)

	// A second service starts from what the store holds.
	second := NewService(mockOL, svc.svc, svc.logger, svc.cfg)
	run, err := second.Run(ctx)
	require.NoError(t, err)
	assert.Zero(t, run.Created())

	n, err := store.Books.Count(ctx)
	require.NoError(t, err)
	assert.Equal(t, int64(2), n)
}

func TestService_Run_SearchFailure(t *testing.T) {
	mockOL := new(mockOLClient)
	mockOL.On("SearchBySubject", mock.Anything, "poetry", 20).Return(nil, fmt.Errorf("unexpected status code: 500"))

	svc, _ := newTestService(t, mockOL, Config{Subjects: []string{"poetry"}})

	run, err := svc.Run(context.Background())
	assert.Error(t, err)
	assert.Equal(t, StatusFailed, run.Status)
	assert.Contains(t, run.Error, "search failed for poetry")
	assert.Equal(t, 1, run.GenresCreated)
}

func TestService_Run_AuthorFetchFailureSkipsWork(t *testing.T) {
	mockOL := new(mockOLClient)
	mockOL.On("SearchBySubject", mock.Anything, "fantasy", 20).Return(&openlibrary.SearchResponse{
		Docs: []openlibrary.SearchDoc{{Title: "Earthsea", AuthorKeys: []string{"OL9A"}, ISBN: []string{"1"}}},
	}, nil)
	mockOL.On("GetAuthor", mock.Anything, "OL9A").Return(nil, fmt.Errorf("timeout"))

	svc, store := newTestService(t, mockOL, Config{Subjects: []string{"fantasy"}})

	run, err := svc.Run(context.Background())
	require.NoError(t, err)
	assert.Equal(t, 1, run.Skipped)
	assert.Zero(t, run.BooksCreated)

	n, err := store.Books.Count(context.Background())
	require.NoError(t, err)
	assert.Zero(t, n)
}

func TestSplitName(t *testing.T) {
	tests := []struct {
		in, first, family string
	}{
		{"Frank Herbert", "Frank", "Herbert"},
		{"Ursula K. Le Guin", "Ursula", "Guin"},
		{"J.R.R. Tolkien", "JRR", "Tolkien"},
		{"Homer", "Homer", ""},
		{"", "", ""},
	}
	for _, tt := range tests {
		first, family := splitName(tt.in)
		assert.Equal(t, tt.first, first, tt.in)
		assert.Equal(t, tt.family, family, tt.in)
	}
}

func TestPreferredISBN(t *testing.T) {
	assert.Equal(t, "9780441013593", preferredISBN([]string{"0441013597", "9780441013593"}))
	assert.Equal(t, "0441013597", preferredISBN([]string{"0441013597"}))
	assert.Equal(t, "", preferredISBN(nil))
}
