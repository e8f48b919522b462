package store

import (
	"context"
	"testing"
	"time"

	"locallibrary/internal/catalog"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func day(y int, m time.Month, d int) *time.Time {
	t := time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
	return &t
}

// runStoreContract exercises every port of s. s must be empty.
func runStoreContract(t *testing.T, s catalog.Store) {
	t.Run("authors", func(t *testing.T) { testAuthors(t, s) })
	t.Run("genres", func(t *testing.T) { testGenres(t, s) })
	t.Run("books", func(t *testing.T) { testBooks(t, s) })
	t.Run("instances", func(t *testing.T) { testInstances(t, s) })
}

func testAuthors(t *testing.T, s catalog.Store) {
	ctx := context.Background()

	list, err := s.Authors.FindAll(ctx)
	require.NoError(t, err)
	assert.Empty(t, list)

	leguin := &catalog.Author{FirstName: "Ursula", FamilyName: "LeGuin", DateOfBirth: day(1929, time.October, 21)}
	asimov := &catalog.Author{FirstName: "Isaac", FamilyName: "Asimov"}
	janet := &catalog.Author{FirstName: "Janet", FamilyName: "Asimov"}
	for _, a := range []*catalog.Author{leguin, asimov, janet} {
		require.NoError(t, s.Authors.Insert(ctx, a))
		require.NotEmpty(t, a.ID)
	}

	list, err = s.Authors.FindAll(ctx)
	require.NoError(t, err)
	require.Len(t, list, 3)
	assert.Equal(t, []string{"Asimov, Isaac", "Asimov, Janet", "LeGuin, Ursula"},
		[]string{list[0].Name(), list[1].Name(), list[2].Name()})

	got, err := s.Authors.FindByID(ctx, leguin.ID)
	require.NoError(t, err)
	require.NotNil(t, got)
	assert.Equal(t, "Ursula", got.FirstName)
	require.NotNil(t, got.DateOfBirth)
	assert.True(t, day(1929, time.October, 21).Equal(*got.DateOfBirth))
	assert.Nil(t, got.DateOfDeath)

	got, err = s.Authors.FindByID(ctx, "not-an-id")
	require.NoError(t, err)
	assert.Nil(t, got)

	updated := *leguin
	updated.FirstName = "Ursula K"
	updated.DateOfBirth = nil
	updated.DateOfDeath = day(2018, time.January, 22)
	ok, err := s.Authors.Update(ctx, updated)
	require.NoError(t, err)
	assert.True(t, ok)

	got, err = s.Authors.FindByID(ctx, leguin.ID)
	require.NoError(t, err)
	assert.Equal(t, "Ursula K", got.FirstName)
	assert.Nil(t, got.DateOfBirth, "update replaces every field")
	require.NotNil(t, got.DateOfDeath)

	n, err := s.Authors.Count(ctx)
	require.NoError(t, err)
	assert.Equal(t, int64(3), n)

	require.NoError(t, s.Authors.Delete(ctx, janet.ID))
	got, err = s.Authors.FindByID(ctx, janet.ID)
	require.NoError(t, err)
	assert.Nil(t, got)

	ok, err = s.Authors.Update(ctx, *janet)
	require.NoError(t, err)
	assert.False(t, ok, "update of a deleted record matches nothing")

	require.NoError(t, s.Authors.Delete(ctx, "not-an-id"))
	require.NoError(t, s.Authors.Delete(ctx, leguin.ID))
	require.NoError(t, s.Authors.Delete(ctx, asimov.ID))
}

func testGenres(t *testing.T, s catalog.Store) {
	ctx := context.Background()

	poetry := &catalog.Genre{Name: "Poetry"}
	fantasy := &catalog.Genre{Name: "Fantasy"}
	require.NoError(t, s.Genres.Insert(ctx, poetry))
	require.NoError(t, s.Genres.Insert(ctx, fantasy))

	list, err := s.Genres.FindAll(ctx)
	require.NoError(t, err)
	require.Len(t, list, 2)
	assert.Equal(t, "Fantasy", list[0].Name)
	assert.Equal(t, "Poetry", list[1].Name)

	ok, err := s.Genres.Update(ctx, catalog.Genre{ID: poetry.ID, Name: "Verse"})
	require.NoError(t, err)
	assert.True(t, ok)

	got, err := s.Genres.FindByID(ctx, poetry.ID)
	require.NoError(t, err)
	assert.Equal(t, "Verse", got.Name)

	require.NoError(t, s.Genres.Delete(ctx, poetry.ID))
	require.NoError(t, s.Genres.Delete(ctx, fantasy.ID))
	n, err := s.Genres.Count(ctx)
	require.NoError(t, err)
	assert.Zero(t, n)
}

func testBooks(t *testing.T, s catalog.Store) {
	ctx := context.Background()

	author := &catalog.Author{FirstName: "Frank", FamilyName: "Herbert"}
	require.NoError(t, s.Authors.Insert(ctx, author))
	other := &catalog.Author{FirstName: "Iain", FamilyName: "Banks"}
	require.NoError(t, s.Authors.Insert(ctx, other))
	scifi := &catalog.Genre{Name: "Science Fiction"}
	require.NoError(t, s.Genres.Insert(ctx, scifi))
	classic := &catalog.Genre{Name: "Classic"}
	require.NoError(t, s.Genres.Insert(ctx, classic))

	dune := &catalog.Book{Title: "Dune", AuthorID: author.ID, Summary: "Spice.", ISBN: "9780441013593",
		GenreIDs: []string{scifi.ID, classic.ID}}
	messiah := &catalog.Book{Title: "Dune Messiah", AuthorID: author.ID, Summary: "More spice.", ISBN: "9780593098233"}
	excession := &catalog.Book{Title: "Excession", AuthorID: other.ID, Summary: "Minds.", ISBN: "9780553575378",
		GenreIDs: []string{scifi.ID}}
	for _, b := range []*catalog.Book{messiah, excession, dune} {
		require.NoError(t, s.Books.Insert(ctx, b))
	}

	all, err := s.Books.FindAll(ctx)
	require.NoError(t, err)
	require.Len(t, all, 3)
	assert.Equal(t, "Dune", all[0].Title)
	assert.Equal(t, "Dune Messiah", all[1].Title)
	assert.Equal(t, "Excession", all[2].Title)
	require.NotNil(t, all[0].Author)
	assert.Equal(t, "Herbert, Frank", all[0].Author.Name())
	assert.Equal(t, []string{"Science Fiction", "Classic"}, []string{all[0].Genres[0].Name, all[0].Genres[1].Name})
	assert.Empty(t, all[1].Genres)

	byAuthor, err := s.Books.FindByAuthor(ctx, author.ID)
	require.NoError(t, err)
	require.Len(t, byAuthor, 2)
	assert.Equal(t, "Dune", byAuthor[0].Title)

	byGenre, err := s.Books.FindByGenre(ctx, scifi.ID)
	require.NoError(t, err)
	require.Len(t, byGenre, 2)
	assert.Equal(t, "Dune", byGenre[0].Title)
	assert.Equal(t, "Excession", byGenre[1].Title)

	none, err := s.Books.FindByGenre(ctx, "not-an-id")
	require.NoError(t, err)
	assert.NotNil(t, none)
	assert.Empty(t, none)

	upd := *excession
	upd.GenreIDs = []string{classic.ID}
	upd.Summary = "Outside context."
	ok, err := s.Books.Update(ctx, upd)
	require.NoError(t, err)
	assert.True(t, ok)

	got, err := s.Books.FindByID(ctx, excession.ID)
	require.NoError(t, err)
	require.NotNil(t, got)
	assert.Equal(t, "Outside context.", got.Summary)
	assert.Equal(t, []string{classic.ID}, got.GenreIDs)

	require.NoError(t, s.Authors.Delete(ctx, other.ID))
	got, err = s.Books.FindByID(ctx, excession.ID)
	require.NoError(t, err)
	assert.Nil(t, got.Author, "dangling author expands to nil")

	got, err = s.Books.FindByID(ctx, "not-an-id")
	require.NoError(t, err)
	assert.Nil(t, got)

	for _, b := range []*catalog.Book{dune, messiah, excession} {
		require.NoError(t, s.Books.Delete(ctx, b.ID))
	}
	n, err := s.Books.Count(ctx)
	require.NoError(t, err)
	assert.Zero(t, n)

	require.NoError(t, s.Authors.Delete(ctx, author.ID))
	require.NoError(t, s.Genres.Delete(ctx, scifi.ID))
	require.NoError(t, s.Genres.Delete(ctx, classic.ID))
}

func testInstances(t *testing.T, s catalog.Store) {
	ctx := context.Background()

	author := &catalog.Author{FirstName: "Mary", FamilyName: "Shelley"}
	require.NoError(t, s.Authors.Insert(ctx, author))
	zebra := &catalog.Book{Title: "Zebra", AuthorID: author.ID, Summary: "s", ISBN: "1"}
	apple := &catalog.Book{Title: "Apple", AuthorID: author.ID, Summary: "s", ISBN: "2"}
	require.NoError(t, s.Books.Insert(ctx, zebra))
	require.NoError(t, s.Books.Insert(ctx, apple))

	z1 := &catalog.BookInstance{BookID: zebra.ID, Imprint: "Z 1st", Status: catalog.StatusAvailable}
	a1 := &catalog.BookInstance{BookID: apple.ID, Imprint: "A 1st", Status: catalog.StatusLoaned, DueBack: day(2024, time.March, 5)}
	a2 := &catalog.BookInstance{BookID: apple.ID, Imprint: "A 2nd", Status: catalog.StatusAvailable}
	for _, bi := range []*catalog.BookInstance{z1, a1, a2} {
		require.NoError(t, s.Instances.Insert(ctx, bi))
	}

	all, err := s.Instances.FindAll(ctx, catalog.InstanceFilter{})
	require.NoError(t, err)
	require.Len(t, all, 3)
	assert.Equal(t, "Apple", all[0].Book.Title)
	assert.Equal(t, "Zebra", all[2].Book.Title)

	avail, err := s.Instances.FindAll(ctx, catalog.InstanceFilter{Status: catalog.StatusAvailable})
	require.NoError(t, err)
	require.Len(t, avail, 2)
	for _, d := range avail {
		assert.Equal(t, catalog.StatusAvailable, d.Status)
	}

	n, err := s.Instances.Count(ctx, catalog.InstanceFilter{Status: catalog.StatusAvailable})
	require.NoError(t, err)
	assert.Equal(t, int64(2), n)
	n, err = s.Instances.Count(ctx, catalog.InstanceFilter{})
	require.NoError(t, err)
	assert.Equal(t, int64(3), n)

	byBook, err := s.Instances.FindByBook(ctx, apple.ID)
	require.NoError(t, err)
	assert.Len(t, byBook, 2)

	got, err := s.Instances.FindByID(ctx, a1.ID)
	require.NoError(t, err)
	require.NotNil(t, got)
	require.NotNil(t, got.Book)
	assert.Equal(t, "Apple", got.Book.Title)
	assert.Equal(t, "Mar 5, 2024", got.DueBackFormatted())

	upd := *a1
	upd.Status = catalog.StatusAvailable
	upd.DueBack = nil
	ok, err := s.Instances.Update(ctx, upd)
	require.NoError(t, err)
	assert.True(t, ok)

	got, err = s.Instances.FindByID(ctx, a1.ID)
	require.NoError(t, err)
	assert.Equal(t, catalog.StatusAvailable, got.Status)
	assert.Nil(t, got.DueBack)

	for _, bi := range []*catalog.BookInstance{z1, a1, a2} {
		require.NoError(t, s.Instances.Delete(ctx, bi.ID))
	}
	byBook, err = s.Instances.FindByBook(ctx, apple.ID)
	require.NoError(t, err)
	assert.Empty(t, byBook)

	require.NoError(t, s.Books.Delete(ctx, zebra.ID))
	require.NoError(t, s.Books.Delete(ctx, apple.ID))
	require.NoError(t, s.Authors.Delete(ctx, author.ID))
}
