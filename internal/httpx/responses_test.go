package httpx

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"locallibrary/internal/catalog"
	"locallibrary/internal/form"
	"locallibrary/internal/view"
)

func jsonRequest(method, target string) *http.Request {
	r := httptest.NewRequest(method, target, nil)
	r.Header.Set("Accept", "application/json")
	return r
}

func TestPage_HTML(t *testing.T) {
	w := httptest.NewRecorder()
	Page(w, httptest.NewRequest(http.MethodGet, "/catalog/genres", nil), http.StatusOK,
		view.GenreListPage{Title: "Genre List", Genres: []catalog.Genre{{ID: "g1", Name: "Fantasy"}}})

	if w.Code != http.StatusOK {
		t.Errorf("Expected status 200, got %d", w.Code)
	}
	if !strings.HasPrefix(w.Header().Get("Content-Type"), "text/html") {
		t.Errorf("Expected HTML content type, got %s", w.Header().Get("Content-Type"))
	}
	if !strings.Contains(w.Body.String(), `<a href="/catalog/genre/g1">Fantasy</a>`) {
		t.Error("Expected rendered genre link")
	}
}

func TestPage_JSON(t *testing.T) {
	w := httptest.NewRecorder()
	Page(w, jsonRequest(http.MethodGet, "/catalog/genres"), http.StatusOK,
		view.GenreListPage{Title: "Genre List", Genres: []catalog.Genre{{ID: "g1", Name: "Fantasy"}}})

	var resp struct {
		Success bool               `json:"success"`
		Data    view.GenreListPage `json:"data"`
	}
	if err := json.NewDecoder(w.Body).Decode(&resp); err != nil {
		t.Fatalf("Failed to decode response: %v", err)
	}
	if !resp.Success || resp.Data.Title != "Genre List" || len(resp.Data.Genres) != 1 {
		t.Errorf("Unexpected response %+v", resp)
	}
}

func TestRejected(t *testing.T) {
	errs := form.Errors{{Field: "name", Kind: form.MissingField, Message: "Genre name required"}}
	p := view.GenreFormPage{Title: "Create Genre", Values: form.Values{"name": {""}}, Errors: errs}

	w := httptest.NewRecorder()
	Rejected(w, httptest.NewRequest(http.MethodPost, "/catalog/genre/create", nil), p, errs)
	if w.Code != http.StatusOK {
		t.Errorf("Expected HTML re-render with 200, got %d", w.Code)
	}
	if !strings.Contains(w.Body.String(), "Genre name required") {
		t.Error("Expected error message in page")
	}

	w = httptest.NewRecorder()
	Rejected(w, jsonRequest(http.MethodPost, "/catalog/genre/create"), p, errs)
	if w.Code != http.StatusUnprocessableEntity {
		t.Errorf("Expected 422 for JSON client, got %d", w.Code)
	}
	var resp ErrorResponse
	if err := json.NewDecoder(w.Body).Decode(&resp); err != nil {
		t.Fatalf("Failed to decode response: %v", err)
	}
	if resp.Error.Code != "VALIDATION_ERROR" || len(resp.Error.Details) != 1 || resp.Error.Details[0].Kind != "MissingField" {
		t.Errorf("Unexpected error body %+v", resp.Error)
	}
}

func TestConflict(t *testing.T) {
	p := view.GenreDeletePage{Title: "Delete Genre", Genre: catalog.Genre{ID: "g1", Name: "Fantasy"},
		Books: []catalog.Book{{ID: "b1", Title: "Earthsea"}}}

	w := httptest.NewRecorder()
	Conflict(w, httptest.NewRequest(http.MethodPost, "/catalog/genre/g1/delete", nil), p)
	if w.Code != http.StatusOK || !strings.Contains(w.Body.String(), "Earthsea") {
		t.Errorf("Expected delete page with blockers, got %d", w.Code)
	}

	w = httptest.NewRecorder()
	Conflict(w, jsonRequest(http.MethodPost, "/catalog/genre/g1/delete"), p)
	if w.Code != http.StatusConflict {
		t.Errorf("Expected 409 for JSON client, got %d", w.Code)
	}
}

func TestFail_NotFound(t *testing.T) {
	err := fmt.Errorf("book %s: %w", "b1", catalog.ErrNotFound)

	w := httptest.NewRecorder()
	Fail(w, httptest.NewRequest(http.MethodGet, "/catalog/book/b1", nil), err)
	if w.Code != http.StatusNotFound {
		t.Errorf("Expected 404, got %d", w.Code)
	}

	w = httptest.NewRecorder()
	Fail(w, jsonRequest(http.MethodGet, "/catalog/book/b1"), err)
	var resp ErrorResponse
	if err := json.NewDecoder(w.Body).Decode(&resp); err != nil {
		t.Fatalf("Failed to decode response: %v", err)
	}
	if resp.Error.Code != "NOT_FOUND" {
		t.Errorf("Expected NOT_FOUND, got %s", resp.Error.Code)
	}
}

func TestFail_InternalIsOpaque(t *testing.T) {
	w := httptest.NewRecorder()
	Fail(w, httptest.NewRequest(http.MethodGet, "/catalog/books", nil), errors.New("connection refused to 10.0.0.5"))

	if w.Code != http.StatusInternalServerError {
		t.Errorf("Expected 500, got %d", w.Code)
	}
	if strings.Contains(w.Body.String(), "10.0.0.5") {
		t.Error("Expected store error details not to leak")
	}
}

func TestFail_MalformedForm(t *testing.T) {
	tests := []struct {
		name       string
		err        error
		wantStatus int
		wantCode   string
	}{
		{
			name:       "bad escape",
			err:        fmt.Errorf("%w: %w", form.ErrMalformed, errors.New(`invalid URL escape "%zz"`)),
			wantStatus: http.StatusBadRequest,
			wantCode:   "MALFORMED_REQUEST",
		},
		{
			name:       "body over limit",
			err:        fmt.Errorf("%w: %w", form.ErrMalformed, &http.MaxBytesError{Limit: 16}),
			wantStatus: http.StatusRequestEntityTooLarge,
			wantCode:   "REQUEST_TOO_LARGE",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			w := httptest.NewRecorder()
			Fail(w, jsonRequest(http.MethodPost, "/catalog/author/create"), tt.err)

			if w.Code != tt.wantStatus {
				t.Errorf("Expected %d, got %d", tt.wantStatus, w.Code)
			}
			var resp ErrorResponse
			if err := json.NewDecoder(w.Body).Decode(&resp); err != nil {
				t.Fatalf("Failed to decode response: %v", err)
			}
			if resp.Error.Code != tt.wantCode {
				t.Errorf("Expected %s, got %s", tt.wantCode, resp.Error.Code)
			}
		})
	}
}

func TestRequestSizeLimit_OversizedFormIs413(t *testing.T) {
	handler := RequestSizeLimitMiddleware(16)(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if _, err := form.FromRequest(r); err != nil {
			Fail(w, r, err)
			return
		}
		w.WriteHeader(http.StatusNoContent)
	}))

	r := httptest.NewRequest(http.MethodPost, "/catalog/genre/create", strings.NewReader("name="+strings.Repeat("x", 64)))
	r.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	r.ContentLength = -1 // chunked, so only the body reader can enforce the limit
	w := httptest.NewRecorder()
	handler.ServeHTTP(w, r)

	if w.Code != http.StatusRequestEntityTooLarge {
		t.Errorf("Expected 413, got %d", w.Code)
	}
	if !strings.Contains(w.Body.String(), "too large") {
		t.Error("Expected size message in page")
	}
}

func TestRedirect(t *testing.T) {
	w := httptest.NewRecorder()
	Redirect(w, httptest.NewRequest(http.MethodPost, "/catalog/book/create", nil), "/catalog/book/b1")

	if w.Code != http.StatusSeeOther {
		t.Errorf("Expected 303, got %d", w.Code)
	}
	if w.Header().Get("Location") != "/catalog/book/b1" {
		t.Errorf("Unexpected Location %s", w.Header().Get("Location"))
	}
}

func TestJSONSuccess_IncludesRequestID(t *testing.T) {
	r := httptest.NewRequest(http.MethodGet, "/", nil)
	r = r.WithContext(ContextWithRequestID(r.Context(), "req-9"))

	w := httptest.NewRecorder()
	JSONSuccess(w, r, http.StatusOK, map[string]string{"k": "v"})

	var resp SuccessResponse
	if err := json.NewDecoder(w.Body).Decode(&resp); err != nil {
		t.Fatalf("Failed to decode response: %v", err)
	}
	meta, ok := resp.Meta.(map[string]interface{})
	if !ok || meta["request_id"] != "req-9" {
		t.Errorf("Expected request_id in meta, got %v", resp.Meta)
	}
}
