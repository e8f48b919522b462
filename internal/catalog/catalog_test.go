package catalog

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func date(y int, m time.Month, d int) *time.Time {
	t := time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
	return &t
}

func TestAuthor_Name(t *testing.T) {
	tests := []struct {
		name   string
		author Author
		want   string
	}{
		{"both parts", Author{FirstName: "Isaac", FamilyName: "Asimov"}, "Asimov, Isaac"},
		{"missing first", Author{FamilyName: "Asimov"}, ""},
		{"missing family", Author{FirstName: "Isaac"}, ""},
		{"empty", Author{}, ""},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, tt.author.Name())
		})
	}
}

func TestAuthor_Lifespan(t *testing.T) {
	a := Author{DateOfBirth: date(1920, time.January, 2), DateOfDeath: date(1992, time.April, 6)}
	assert.Equal(t, "72", a.Lifespan())

	a.DateOfDeath = nil
	assert.Equal(t, "", a.Lifespan())

	assert.Equal(t, "", Author{DateOfDeath: date(1992, time.April, 6)}.Lifespan())
}

func TestAuthor_FormattedDates(t *testing.T) {
	a := Author{DateOfBirth: date(1920, time.January, 2)}
	assert.Equal(t, "02 January, 1920", a.DateOfBirthFormatted())
	assert.Equal(t, "", a.DateOfDeathFormatted())
}

func TestURLs(t *testing.T) {
	assert.Equal(t, "/catalog/author/a1", Author{ID: "a1"}.URL())
	assert.Equal(t, "/catalog/genre/g1", Genre{ID: "g1"}.URL())
	assert.Equal(t, "/catalog/book/b1", Book{ID: "b1"}.URL())
	assert.Equal(t, "/catalog/bookinstance/i1", BookInstance{ID: "i1"}.URL())
}

func TestBookInstance_DueBackFormatted(t *testing.T) {
	bi := BookInstance{DueBack: date(2024, time.March, 5)}
	assert.Equal(t, "Mar 5, 2024", bi.DueBackFormatted())
	assert.Equal(t, "", BookInstance{}.DueBackFormatted())
}

func TestBook_HasGenre(t *testing.T) {
	b := Book{GenreIDs: []string{"g1", "g2"}}
	assert.True(t, b.HasGenre("g2"))
	assert.False(t, b.HasGenre("g3"))
	assert.False(t, Book{}.HasGenre("g1"))
}

func TestDerivedValuesDoNotMutate(t *testing.T) {
	a := Author{ID: "a1", FirstName: "Ursula", FamilyName: "LeGuin"}
	before := a
	_ = a.Name()
	_ = a.URL()
	_ = a.Lifespan()
	assert.Equal(t, before, a)
}
