package view

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"locallibrary/internal/catalog"
	"locallibrary/internal/form"

	"github.com/a-h/templ"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func render(t *testing.T, c templ.Component) string {
	t.Helper()
	var buf bytes.Buffer
	require.NoError(t, c.Render(context.Background(), &buf))
	return buf.String()
}

func TestLayout_HasTitleAndNav(t *testing.T) {
	out := render(t, GenreListPage{Title: "Genre List"})

	assert.Contains(t, out, "<title>Genre List</title>")
	assert.Contains(t, out, `<a href="/catalog/books">All books</a>`)
	assert.Contains(t, out, "There are no genres.")
}

func TestText_DoesNotDoubleEscape(t *testing.T) {
	out := render(t, GenreListPage{Title: "Genre List", Genres: []catalog.Genre{
		{ID: "g1", Name: "Sword &amp; Sorcery"},
		{ID: "g2", Name: "<b>raw</b>"},
	}})

	assert.Contains(t, out, "Sword &amp; Sorcery")
	assert.NotContains(t, out, "&amp;amp;")
	assert.Contains(t, out, "&lt;b&gt;raw&lt;/b&gt;")
	assert.NotContains(t, out, "<b>raw</b>")
}

func TestAuthorDetailPage(t *testing.T) {
	dob := time.Date(1920, 1, 2, 0, 0, 0, 0, time.UTC)
	dod := time.Date(1992, 4, 6, 0, 0, 0, 0, time.UTC)
	p := AuthorDetailPage{
		Title:  "Asimov, Isaac",
		Author: catalog.Author{ID: "a1", FirstName: "Isaac", FamilyName: "Asimov", DateOfBirth: &dob, DateOfDeath: &dod},
		Books:  []catalog.Book{{ID: "b1", Title: "Foundation", Summary: "Psychohistory."}},
	}
	out := render(t, p)

	assert.Contains(t, out, "Author: Asimov, Isaac")
	assert.Contains(t, out, "02 January, 1920 - 06 April, 1992 (72 years)")
	assert.Contains(t, out, `<a href="/catalog/book/b1">Foundation</a>`)
	assert.Contains(t, out, `<a href="/catalog/author/a1/delete">Delete author</a>`)
}

func TestAuthorDeletePage_ShowsBlockersOrConfirm(t *testing.T) {
	a := catalog.Author{ID: "a1", FirstName: "Isaac", FamilyName: "Asimov"}

	blocked := render(t, AuthorDeletePage{Title: "Delete Author", Author: a, Books: []catalog.Book{{ID: "b1", Title: "Foundation"}}})
	assert.Contains(t, blocked, "Delete the following books")
	assert.NotContains(t, blocked, `<form method="POST"`)

	free := render(t, AuthorDeletePage{Title: "Delete Author", Author: a})
	assert.Contains(t, free, "Do you really want to delete this Author?")
	assert.Contains(t, free, `name="authorid" value="a1"`)
}

func TestAuthorFormPage_PrefillAndErrors(t *testing.T) {
	out := render(t, AuthorFormPage{
		Title:  "Create Author",
		Values: form.Values{"family_name": {"Tolkien"}},
		Errors: form.Errors{{Field: "first_name", Kind: form.MissingField, Message: "First name must be specified"}},
	})

	assert.Contains(t, out, `name="family_name" value="Tolkien"`)
	assert.Contains(t, out, `name="first_name" value=""`)
	assert.Contains(t, out, `<li>First name must be specified</li>`)
}

func TestBookFormPage_SelectionComesFromValues(t *testing.T) {
	out := render(t, BookFormPage{
		Title:   "Create Book",
		Values:  form.Values{"author": {"a2"}, "genre": {"g1"}},
		Authors: []catalog.Author{{ID: "a1", FirstName: "A", FamilyName: "One"}, {ID: "a2", FirstName: "B", FamilyName: "Two"}},
		Genres:  []catalog.Genre{{ID: "g1", Name: "Fantasy"}, {ID: "g2", Name: "Poetry"}},
	})

	assert.Contains(t, out, `<option value="a2" selected>Two, B</option>`)
	assert.Contains(t, out, `<option value="a1">One, A</option>`)
	assert.Contains(t, out, `id="g1" value="g1" checked>`)
	assert.Contains(t, out, `id="g2" value="g2">`)
}

func TestInstanceFormPage_DefaultStatus(t *testing.T) {
	out := render(t, InstanceFormPage{Title: "Create BookInstance", Values: form.Values{}, Statuses: catalog.Statuses})
	assert.Contains(t, out, `<option value="Maintenance" selected>Maintenance</option>`)
	assert.Contains(t, out, `<option value="Available">Available</option>`)
}

func TestInstanceListPage_DueBackOnlyWhenNotAvailable(t *testing.T) {
	due := time.Date(2024, 3, 5, 0, 0, 0, 0, time.UTC)
	out := render(t, InstanceListPage{Title: "Book Instance List", Instances: []catalog.InstanceDetail{
		{BookInstance: catalog.BookInstance{ID: "i1", Imprint: "Ace", Status: catalog.StatusLoaned, DueBack: &due}, Book: &catalog.Book{Title: "Dune"}},
		{BookInstance: catalog.BookInstance{ID: "i2", Imprint: "Gollancz", Status: catalog.StatusAvailable, DueBack: &due}, Book: &catalog.Book{Title: "Dune"}},
	}})

	assert.Contains(t, out, `<a href="/catalog/bookinstance/i1">Dune : Ace</a>`)
	assert.Contains(t, out, "(Due: Mar 5, 2024)")
	assert.Equal(t, 1, bytes.Count([]byte(out), []byte("(Due:")))
}

func TestIndexPage(t *testing.T) {
	out := render(t, IndexPage{Title: "Local Library Home", Counts: Counts{Books: 3, Instances: 5, InstancesAvailable: 2, Authors: 1, Genres: 4}})
	assert.Contains(t, out, "<li><strong>Copies available:</strong> 2</li>")
}

func TestErrorPage(t *testing.T) {
	out := render(t, ErrorPage{Title: "Not Found", Status: 404, Message: "Book not found"})
	assert.Contains(t, out, "<h2>404</h2>")
	assert.Contains(t, out, "Book not found")
}

func TestPages_RenderTheirComponents(t *testing.T) {
	authors := AuthorListPage{Title: "Author List", Authors: []catalog.Author{{ID: "a1", FirstName: "Frank", FamilyName: "Herbert"}}}
	assert.Equal(t, render(t, authorList(authors)), render(t, authors))

	notFound := ErrorPage{Title: "Not Found", Status: 404, Message: "Genre not found"}
	assert.Equal(t, render(t, errorPage(notFound)), render(t, notFound))
}

func TestStatusLabel(t *testing.T) {
	tests := []struct {
		status catalog.Status
		class  string
	}{
		{catalog.StatusAvailable, "text-success"},
		{catalog.StatusMaintenance, "text-danger"},
		{catalog.StatusLoaned, "text-warning"},
		{catalog.StatusReserved, "text-warning"},
	}
	for _, tt := range tests {
		t.Run(string(tt.status), func(t *testing.T) {
			out := render(t, statusLabel(tt.status))
			assert.Equal(t, `<span class="`+tt.class+`">`+string(tt.status)+`</span>`, out)
		})
	}
}

func TestBookDetailPage_WithoutGenres(t *testing.T) {
	out := render(t, BookDetailPage{
		Title: "Dune",
		Book:  catalog.BookDetail{Book: catalog.Book{ID: "b1", Title: "Dune", GenreIDs: []string{}}},
	})
	assert.Contains(t, out, "<h1>Title: Dune</h1>")
	assert.Contains(t, out, "There are no copies of this book in the library.")
}

func TestPages_AreJSONDataBags(t *testing.T) {
	b, err := json.Marshal(BookDetailPage{
		Title:     "Dune",
		Book:      catalog.BookDetail{Book: catalog.Book{ID: "b1", Title: "Dune", AuthorID: "a1"}},
		Instances: []catalog.BookInstance{},
	})
	require.NoError(t, err)

	var got map[string]any
	require.NoError(t, json.Unmarshal(b, &got))
	assert.Equal(t, "Dune", got["title"])
	assert.Equal(t, "a1", got["book"].(map[string]any)["author"])
	assert.Equal(t, []any{}, got["book_instances"])
}

func TestRender_CancelledContext(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	err := GenreListPage{Title: "x"}.Render(ctx, &bytes.Buffer{})
	assert.ErrorIs(t, err, context.Canceled)
}

func TestStatic(t *testing.T) {
	rec := httptest.NewRecorder()
	Static().ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/static/style.css", nil))
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), ".sidebar")
}
