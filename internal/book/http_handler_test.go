package book

import (
	"context"
	"net/http"
	"net/http/httptest"
	"net/url"
	"strings"
	"testing"
	"time"

	"locallibrary/internal/catalog"
	"locallibrary/internal/catalog/mocks"
	"locallibrary/internal/testutil"

	"github.com/golang/mock/gomock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestHTTPHandler_Detail(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()
	books := mocks.NewMockBookRepository(ctrl)
	instances := mocks.NewMockInstanceRepository(ctrl)
	handler := NewHTTPHandler(NewService(catalog.Store{Books: books, Instances: instances}, time.Second))

	t.Run("success", func(t *testing.T) {
		books.EXPECT().FindByID(gomock.Any(), "b1").Return(&catalog.BookDetail{Book: catalog.Book{ID: "b1", Title: "Dune"}}, nil)
		instances.EXPECT().FindByBook(gomock.Any(), "b1").Return([]catalog.BookInstance{{ID: "i1", Imprint: "Ace", Status: catalog.StatusLoaned}}, nil)

		w := httptest.NewRecorder()
		r := httptest.NewRequest(http.MethodGet, "/catalog/book/b1", nil)
		r.SetPathValue("id", "b1")
		handler.Detail(w, r)

		assert.Equal(t, http.StatusOK, w.Code)
		assert.Contains(t, w.Body.String(), "Dune")
	})

	t.Run("not found", func(t *testing.T) {
		books.EXPECT().FindByID(gomock.Any(), "b1").Return(nil, nil)
		instances.EXPECT().FindByBook(gomock.Any(), "b1").Return([]catalog.BookInstance{}, nil)

		w := httptest.NewRecorder()
		r := testutil.NewJSONClientRequest(http.MethodGet, "/catalog/book/b1", nil)
		r.SetPathValue("id", "b1")
		handler.Detail(w, r)

		resp := testutil.RecordHTTPResponse(w)
		testutil.AssertResponseCode(t, resp.Code, http.StatusNotFound)
		_, hasData := resp.Body["data"]
		assert.False(t, hasData)
	})

	t.Run("error", func(t *testing.T) {
		books.EXPECT().FindByID(gomock.Any(), "b1").Return(nil, context.DeadlineExceeded)
		instances.EXPECT().FindByBook(gomock.Any(), "b1").Return([]catalog.BookInstance{}, nil)

		w := httptest.NewRecorder()
		r := httptest.NewRequest(http.MethodGet, "/catalog/book/b1", nil)
		r.SetPathValue("id", "b1")
		handler.Detail(w, r)

		assert.Equal(t, http.StatusInternalServerError, w.Code)
	})
}

func TestHTTPHandler_CreateRedirectsToDetail(t *testing.T) {
	store := testutil.NewStore(t)
	handler := NewHTTPHandler(NewService(store, time.Second))
	a := testutil.SeedAuthor(t, store, "Frank", "Herbert")

	w := httptest.NewRecorder()
	handler.Create(w, testutil.NewFormRequest(http.MethodPost, "/catalog/book/create", url.Values{
		"title": {"Dune"}, "author": {a.ID}, "summary": {"Spice"}, "isbn": {"9780441013593"},
	}))

	require.Equal(t, http.StatusSeeOther, w.Code)
	books, err := store.Books.FindAll(context.Background())
	require.NoError(t, err)
	require.Len(t, books, 1)
	assert.Equal(t, books[0].URL(), w.Header().Get("Location"))
}

func TestHTTPHandler_CreateWithoutGenreThenDetail(t *testing.T) {
	store := testutil.NewStore(t)
	handler := NewHTTPHandler(NewService(store, time.Second))
	a := testutil.SeedAuthor(t, store, "Frank", "Herbert")

	w := httptest.NewRecorder()
	handler.Create(w, testutil.NewFormRequest(http.MethodPost, "/catalog/book/create", url.Values{
		"title": {"Dune"}, "author": {a.ID}, "summary": {"Spice"}, "isbn": {"9780441013593"},
	}))
	require.Equal(t, http.StatusSeeOther, w.Code)
	location := w.Header().Get("Location")

	w = httptest.NewRecorder()
	r := testutil.NewJSONClientRequest(http.MethodGet, location, nil)
	r.SetPathValue("id", strings.TrimPrefix(location, "/catalog/book/"))
	handler.Detail(w, r)

	resp := testutil.RecordHTTPResponse(w)
	testutil.AssertResponseCode(t, resp.Code, http.StatusOK)
	data := resp.Body["data"].(map[string]interface{})
	book := data["book"].(map[string]interface{})
	assert.Equal(t, "Dune", book["title"])
	assert.Empty(t, book["genre"])
}

func TestHTTPHandler_CreateRejectedKeepsSelection(t *testing.T) {
	store := testutil.NewStore(t)
	handler := NewHTTPHandler(NewService(store, time.Second))
	a := testutil.SeedAuthor(t, store, "Frank", "Herbert")
	g := testutil.SeedGenre(t, store, "Science Fiction")

	w := httptest.NewRecorder()
	handler.Create(w, testutil.NewFormRequest(http.MethodPost, "/catalog/book/create", url.Values{
		"title": {"Dune"}, "author": {a.ID}, "genre": {g.ID},
	}))

	assert.Equal(t, http.StatusOK, w.Code)
	body := w.Body.String()
	assert.Contains(t, body, "Summary must not be empty")
	assert.Contains(t, body, `<option value="`+a.ID+`" selected>`)
	assert.Contains(t, body, `value="`+g.ID+`" checked>`)
}
