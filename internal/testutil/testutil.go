package testutil

import (
	"bytes"
	"context"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"net/url"
	"strings"
	"testing"
	"time"

	"locallibrary/internal/catalog"
	"locallibrary/internal/store"
)

// NewStore opens an in-memory Badger store that is closed when the test ends.
func NewStore(t testing.TB) catalog.Store {
	t.Helper()
	db, err := store.OpenBadger("", nil)
	if err != nil {
		t.Fatalf("open badger: %v", err)
	}
	t.Cleanup(func() { _ = db.Close() })
	return store.NewBadgerStore(db)
}

// Date returns midnight UTC of the given day.
func Date(year int, month time.Month, day int) *time.Time {
	d := time.Date(year, month, day, 0, 0, 0, 0, time.UTC)
	return &d
}

// SeedAuthor inserts an author and returns it with its id.
func SeedAuthor(t testing.TB, s catalog.Store, first, family string) catalog.Author {
	t.Helper()
	a := &catalog.Author{FirstName: first, FamilyName: family}
	if err := s.Authors.Insert(context.Background(), a); err != nil {
		t.Fatalf("seed author: %v", err)
	}
	return *a
}

// SeedGenre inserts a genre and returns it with its id.
func SeedGenre(t testing.TB, s catalog.Store, name string) catalog.Genre {
	t.Helper()
	g := &catalog.Genre{Name: name}
	if err := s.Genres.Insert(context.Background(), g); err != nil {
		t.Fatalf("seed genre: %v", err)
	}
	return *g
}

// SeedBook inserts a book by authorID and returns it with its id.
func SeedBook(t testing.TB, s catalog.Store, title, authorID string, genreIDs ...string) catalog.Book {
	t.Helper()
	b := &catalog.Book{
		Title:    title,
		AuthorID: authorID,
		Summary:  "Summary of " + title,
		ISBN:     "9780000000000",
		GenreIDs: append([]string{}, genreIDs...),
	}
	if err := s.Books.Insert(context.Background(), b); err != nil {
		t.Fatalf("seed book: %v", err)
	}
	return *b
}

// SeedInstance inserts a copy of bookID and returns it with its id.
func SeedInstance(t testing.TB, s catalog.Store, bookID string, status catalog.Status) catalog.BookInstance {
	t.Helper()
	bi := &catalog.BookInstance{BookID: bookID, Imprint: "Test Imprint", Status: status}
	if err := s.Instances.Insert(context.Background(), bi); err != nil {
		t.Fatalf("seed instance: %v", err)
	}
	return *bi
}

// NewFormRequest creates a urlencoded form submission for testing.
func NewFormRequest(method, path string, values url.Values) *http.Request {
	r := httptest.NewRequest(method, path, strings.NewReader(values.Encode()))
	r.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	return r
}

// NewJSONClientRequest creates a request from a client that wants JSON pages.
func NewJSONClientRequest(method, path string, values url.Values) *http.Request {
	var r *http.Request
	if values != nil {
		r = NewFormRequest(method, path, values)
	} else {
		r = httptest.NewRequest(method, path, nil)
	}
	r.Header.Set("Accept", "application/json")
	return r
}

// RecordResponse records the HTTP response for testing
type RecordResponse struct {
	Code   int
	Header http.Header
	Body   map[string]interface{}
	Raw    string
}

// RecordHTTPResponse records the HTTP response, decoding JSON bodies.
func RecordHTTPResponse(w *httptest.ResponseRecorder) RecordResponse {
	result := w.Result()
	defer result.Body.Close()

	bodyBytes, _ := io.ReadAll(result.Body)

	var bodyMap map[string]interface{}
	if len(bodyBytes) > 0 && strings.HasPrefix(result.Header.Get("Content-Type"), "application/json") {
		_ = json.NewDecoder(bytes.NewReader(bodyBytes)).Decode(&bodyMap)
	}

	return RecordResponse{
		Code:   result.StatusCode,
		Header: result.Header,
		Body:   bodyMap,
		Raw:    string(bodyBytes),
	}
}

// AssertResponseCode checks if the response code matches expected
func AssertResponseCode(t interface {
	Errorf(format string, args ...any)
}, got, want int) {
	if got != want {
		t.Errorf("got status code %d, want %d", got, want)
	}
}

// ErrorCode returns error.code of a JSON error body, or "".
func ErrorCode(body map[string]interface{}) string {
	e, ok := body["error"].(map[string]interface{})
	if !ok {
		return ""
	}
	code, _ := e["code"].(string)
	return code
}
