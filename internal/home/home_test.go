package home

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"locallibrary/internal/catalog"
	"locallibrary/internal/catalog/mocks"
	"locallibrary/internal/testutil"

	"github.com/golang/mock/gomock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestService_Counts(t *testing.T) {
	store := testutil.NewStore(t)
	svc := NewService(store, time.Second)

	a := testutil.SeedAuthor(t, store, "Frank", "Herbert")
	testutil.SeedGenre(t, store, "Science Fiction")
	testutil.SeedGenre(t, store, "Adventure")
	b := testutil.SeedBook(t, store, "Dune", a.ID)
	testutil.SeedInstance(t, store, b.ID, catalog.StatusAvailable)
	testutil.SeedInstance(t, store, b.ID, catalog.StatusLoaned)
	testutil.SeedInstance(t, store, b.ID, catalog.StatusAvailable)

	c, err := svc.Counts(context.Background())
	require.NoError(t, err)
	assert.Equal(t, int64(1), c.Books)
	assert.Equal(t, int64(3), c.Instances)
	assert.Equal(t, int64(2), c.InstancesAvailable)
	assert.Equal(t, int64(1), c.Authors)
	assert.Equal(t, int64(2), c.Genres)
}

func TestHTTPHandler_IndexFailure(t *testing.T) {
	ctrl := gomock.NewController(t)
	authors := mocks.NewMockAuthorRepository(ctrl)
	genres := mocks.NewMockGenreRepository(ctrl)
	books := mocks.NewMockBookRepository(ctrl)
	instances := mocks.NewMockInstanceRepository(ctrl)
	store := catalog.Store{Authors: authors, Genres: genres, Books: books, Instances: instances}
	handler := NewHTTPHandler(NewService(store, time.Second))

	books.EXPECT().Count(gomock.Any()).Return(int64(1), nil).AnyTimes()
	instances.EXPECT().Count(gomock.Any(), gomock.Any()).Return(int64(1), nil).AnyTimes()
	authors.EXPECT().Count(gomock.Any()).Return(int64(0), errors.New("connection reset")).AnyTimes()
	genres.EXPECT().Count(gomock.Any()).Return(int64(1), nil).AnyTimes()

	w := httptest.NewRecorder()
	handler.Index(w, httptest.NewRequest(http.MethodGet, "/catalog", nil))

	assert.Equal(t, http.StatusInternalServerError, w.Code)
}

func TestHTTPHandler_Root(t *testing.T) {
	mux := http.NewServeMux()
	NewHTTPHandler(NewService(testutil.NewStore(t), time.Second)).Register(mux)

	w := httptest.NewRecorder()
	mux.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/", nil))
	assert.Equal(t, http.StatusFound, w.Code)
	assert.Equal(t, "/catalog", w.Header().Get("Location"))

	w = httptest.NewRecorder()
	mux.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/catalog", nil))
	assert.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), "Local Library Home")
}
