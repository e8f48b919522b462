package catalog

import (
	"errors"
	"strconv"
	"time"
)

var (
	// ErrNotFound is returned when the primary record of a page does not exist.
	ErrNotFound = errors.New("record not found")
	// ErrReferentialConflict is returned when a delete is blocked by dependent records.
	ErrReferentialConflict = errors.New("record has dependent records")
)

const (
	dateLayout    = "02 January, 2006"
	dueBackLayout = "Jan 2, 2006"
)

// Author is a writer of one or more books.
type Author struct {
	ID          string     `json:"id"`
	FirstName   string     `json:"first_name"`
	FamilyName  string     `json:"family_name"`
	DateOfBirth *time.Time `json:"date_of_birth,omitempty"`
	DateOfDeath *time.Time `json:"date_of_death,omitempty"`
}

// Name returns "Family, First", or an empty string unless both parts are set.
func (a Author) Name() string {
	if a.FirstName == "" || a.FamilyName == "" {
		return ""
	}
	return a.FamilyName + ", " + a.FirstName
}

// Lifespan is the difference between the death and birth years.
func (a Author) Lifespan() string {
	if a.DateOfBirth == nil || a.DateOfDeath == nil {
		return ""
	}
	return strconv.Itoa(a.DateOfDeath.Year() - a.DateOfBirth.Year())
}

func (a Author) URL() string {
	return "/catalog/author/" + a.ID
}

func (a Author) DateOfBirthFormatted() string {
	return formatDate(a.DateOfBirth, dateLayout)
}

func (a Author) DateOfDeathFormatted() string {
	return formatDate(a.DateOfDeath, dateLayout)
}

// Genre groups books by subject.
type Genre struct {
	ID   string `json:"id"`
	Name string `json:"name"`
}

func (g Genre) URL() string {
	return "/catalog/genre/" + g.ID
}

// Book is a title in the catalog. AuthorID and GenreIDs reference other records
// by identifier; the store does not enforce them.
type Book struct {
	ID       string   `json:"id"`
	Title    string   `json:"title"`
	AuthorID string   `json:"author"`
	Summary  string   `json:"summary"`
	ISBN     string   `json:"isbn"`
	GenreIDs []string `json:"genre"`
}

func (b Book) URL() string {
	return "/catalog/book/" + b.ID
}

// HasGenre reports whether the book references the genre id.
func (b Book) HasGenre(id string) bool {
	for _, g := range b.GenreIDs {
		if g == id {
			return true
		}
	}
	return false
}

// BookDetail is a Book with its references expanded. Author is nil when the
// referenced author no longer exists.
type BookDetail struct {
	Book
	Author *Author `json:"author_detail,omitempty"`
	Genres []Genre `json:"genre_detail"`
}

// Status is the availability of a physical copy.
type Status string

const (
	StatusAvailable   Status = "Available"
	StatusMaintenance Status = "Maintenance"
	StatusLoaned      Status = "Loaned"
	StatusReserved    Status = "Reserved"
)

// Statuses lists every status in display order.
var Statuses = []Status{StatusAvailable, StatusMaintenance, StatusLoaned, StatusReserved}

// BookInstance is a physical copy of a book.
type BookInstance struct {
	ID      string     `json:"id"`
	BookID  string     `json:"book"`
	Imprint string     `json:"imprint"`
	Status  Status     `json:"status"`
	DueBack *time.Time `json:"due_back,omitempty"`
}

func (bi BookInstance) URL() string {
	return "/catalog/bookinstance/" + bi.ID
}

func (bi BookInstance) DueBackFormatted() string {
	return formatDate(bi.DueBack, dueBackLayout)
}

// InstanceDetail is a BookInstance with its book expanded.
type InstanceDetail struct {
	BookInstance
	Book *Book `json:"book_detail,omitempty"`
}

// InstanceFilter narrows a book instance listing. The zero value matches all.
type InstanceFilter struct {
	Status Status
}

func formatDate(t *time.Time, layout string) string {
	if t == nil {
		return ""
	}
	return t.Format(layout)
}
