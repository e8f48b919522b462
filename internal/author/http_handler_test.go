package author

import (
	"bytes"
	"context"
	"errors"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"net/url"
	"strings"
	"testing"
	"time"

	"locallibrary/internal/catalog"
	"locallibrary/internal/catalog/mocks"
	"locallibrary/internal/httpx"
	"locallibrary/internal/testutil"

	"github.com/golang/mock/gomock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newMockHandler(t *testing.T) (*HTTPHandler, *mocks.MockAuthorRepository, *mocks.MockBookRepository) {
	ctrl := gomock.NewController(t)
	authors := mocks.NewMockAuthorRepository(ctrl)
	books := mocks.NewMockBookRepository(ctrl)
	svc := NewService(catalog.Store{Authors: authors, Books: books}, time.Second)
	return NewHTTPHandler(svc), authors, books
}

func TestHTTPHandler_List(t *testing.T) {
	handler, authors, _ := newMockHandler(t)

	t.Run("success", func(t *testing.T) {
		authors.EXPECT().FindAll(gomock.Any()).Return([]catalog.Author{{ID: "a1", FirstName: "Frank", FamilyName: "Herbert"}}, nil)

		w := httptest.NewRecorder()
		handler.List(w, httptest.NewRequest(http.MethodGet, "/catalog/authors", nil))

		assert.Equal(t, http.StatusOK, w.Code)
		assert.Contains(t, w.Body.String(), "Herbert, Frank")
	})

	t.Run("store failure is opaque", func(t *testing.T) {
		authors.EXPECT().FindAll(gomock.Any()).Return(nil, context.DeadlineExceeded)

		w := httptest.NewRecorder()
		handler.List(w, httptest.NewRequest(http.MethodGet, "/catalog/authors", nil))

		assert.Equal(t, http.StatusInternalServerError, w.Code)
		assert.NotContains(t, w.Body.String(), "deadline")
	})
}

func TestHTTPHandler_Detail(t *testing.T) {
	handler, authors, books := newMockHandler(t)

	t.Run("not found", func(t *testing.T) {
		authors.EXPECT().FindByID(gomock.Any(), "a1").Return(nil, nil)
		books.EXPECT().FindByAuthor(gomock.Any(), "a1").Return([]catalog.Book{}, nil)

		w := httptest.NewRecorder()
		r := testutil.NewJSONClientRequest(http.MethodGet, "/catalog/author/a1", nil)
		r.SetPathValue("id", "a1")
		handler.Detail(w, r)

		resp := testutil.RecordHTTPResponse(w)
		testutil.AssertResponseCode(t, resp.Code, http.StatusNotFound)
		assert.Equal(t, "NOT_FOUND", testutil.ErrorCode(resp.Body))
		assert.Nil(t, resp.Body["data"])
	})

	t.Run("branch failure", func(t *testing.T) {
		authors.EXPECT().FindByID(gomock.Any(), "a1").Return(&catalog.Author{ID: "a1"}, nil)
		books.EXPECT().FindByAuthor(gomock.Any(), "a1").Return(nil, errors.New("socket closed"))

		w := httptest.NewRecorder()
		r := httptest.NewRequest(http.MethodGet, "/catalog/author/a1", nil)
		r.SetPathValue("id", "a1")
		handler.Detail(w, r)

		assert.Equal(t, http.StatusInternalServerError, w.Code)
	})
}

func TestHTTPHandler_CreateFlow(t *testing.T) {
	store := testutil.NewStore(t)
	handler := NewHTTPHandler(NewService(store, time.Second))

	t.Run("accepted submission redirects to detail", func(t *testing.T) {
		w := httptest.NewRecorder()
		handler.Create(w, testutil.NewFormRequest(http.MethodPost, "/catalog/author/create",
			url.Values{"first_name": {"Octavia"}, "family_name": {"Butler"}}))

		require.Equal(t, http.StatusSeeOther, w.Code)
		assert.True(t, strings.HasPrefix(w.Header().Get("Location"), "/catalog/author/"))
	})

	t.Run("rejected submission re-renders with prefill", func(t *testing.T) {
		w := httptest.NewRecorder()
		handler.Create(w, testutil.NewFormRequest(http.MethodPost, "/catalog/author/create",
			url.Values{"first_name": {""}, "family_name": {"Butler"}}))

		assert.Equal(t, http.StatusOK, w.Code)
		body := w.Body.String()
		assert.Contains(t, body, "First name must be specified")
		assert.Contains(t, body, `value="Butler"`)
	})

	t.Run("rejected submission as JSON", func(t *testing.T) {
		w := httptest.NewRecorder()
		handler.Create(w, testutil.NewJSONClientRequest(http.MethodPost, "/catalog/author/create",
			url.Values{"family_name": {"Butler"}}))

		resp := testutil.RecordHTTPResponse(w)
		testutil.AssertResponseCode(t, resp.Code, http.StatusUnprocessableEntity)
		assert.Equal(t, "VALIDATION_ERROR", testutil.ErrorCode(resp.Body))
	})
}

func TestHTTPHandler_CreateMalformedBody(t *testing.T) {
	handler, _, _ := newMockHandler(t)

	var logs bytes.Buffer
	logger := slog.New(slog.NewTextHandler(&logs, &slog.HandlerOptions{Level: slog.LevelDebug}))

	newRequest := func(accept string) *http.Request {
		r := httptest.NewRequest(http.MethodPost, "/catalog/author/create", strings.NewReader("first_name=%zz&family_name=Butler"))
		r.Header.Set("Content-Type", "application/x-www-form-urlencoded")
		if accept != "" {
			r.Header.Set("Accept", accept)
		}
		return r.WithContext(httpx.ContextWithLogger(r.Context(), logger))
	}

	w := httptest.NewRecorder()
	handler.Create(w, newRequest(""))
	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Contains(t, w.Body.String(), "<h2>400</h2>")

	w = httptest.NewRecorder()
	handler.Create(w, newRequest("application/json"))
	resp := testutil.RecordHTTPResponse(w)
	testutil.AssertResponseCode(t, resp.Code, http.StatusBadRequest)
	assert.Equal(t, "MALFORMED_REQUEST", testutil.ErrorCode(resp.Body))

	assert.Contains(t, logs.String(), "level=WARN")
	assert.NotContains(t, logs.String(), "level=ERROR")
}

func TestHTTPHandler_Delete(t *testing.T) {
	store := testutil.NewStore(t)
	handler := NewHTTPHandler(NewService(store, time.Second))

	a := testutil.SeedAuthor(t, store, "Frank", "Herbert")
	testutil.SeedBook(t, store, "Dune", a.ID)

	w := httptest.NewRecorder()
	r := testutil.NewJSONClientRequest(http.MethodPost, "/catalog/author/"+a.ID+"/delete", url.Values{"authorid": {a.ID}})
	r.SetPathValue("id", a.ID)
	handler.Delete(w, r)

	resp := testutil.RecordHTTPResponse(w)
	testutil.AssertResponseCode(t, resp.Code, http.StatusConflict)
	assert.Equal(t, "REFERENTIAL_CONFLICT", testutil.ErrorCode(resp.Body))

	w = httptest.NewRecorder()
	r = testutil.NewFormRequest(http.MethodPost, "/catalog/author/"+a.ID+"/delete", nil)
	r.SetPathValue("id", a.ID)
	handler.Delete(w, r)
	assert.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), "Delete the following books before attempting to delete this author.")

	lone := testutil.SeedAuthor(t, store, "Mary", "Shelley")
	w = httptest.NewRecorder()
	r = testutil.NewFormRequest(http.MethodPost, "/catalog/author/"+lone.ID+"/delete", nil)
	r.SetPathValue("id", lone.ID)
	handler.Delete(w, r)
	assert.Equal(t, http.StatusSeeOther, w.Code)
	assert.Equal(t, "/catalog/authors", w.Header().Get("Location"))
}
