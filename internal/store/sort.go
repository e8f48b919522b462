package store

import (
	"cmp"
	"slices"

	"locallibrary/internal/catalog"
)

func sortAuthors(as []catalog.Author) {
	slices.SortStableFunc(as, func(a, b catalog.Author) int {
		if c := cmp.Compare(a.FamilyName, b.FamilyName); c != 0 {
			return c
		}
		return cmp.Compare(a.FirstName, b.FirstName)
	})
}

func sortGenres(gs []catalog.Genre) {
	slices.SortStableFunc(gs, func(a, b catalog.Genre) int {
		return cmp.Compare(a.Name, b.Name)
	})
}

func sortBooks(bs []catalog.Book) {
	slices.SortStableFunc(bs, func(a, b catalog.Book) int {
		return cmp.Compare(a.Title, b.Title)
	})
}

func sortBookDetails(bs []catalog.BookDetail) {
	slices.SortStableFunc(bs, func(a, b catalog.BookDetail) int {
		return cmp.Compare(a.Title, b.Title)
	})
}

func sortInstances(is []catalog.InstanceDetail) {
	slices.SortStableFunc(is, func(a, b catalog.InstanceDetail) int {
		return cmp.Compare(instanceTitle(a), instanceTitle(b))
	})
}

func instanceTitle(d catalog.InstanceDetail) string {
	if d.Book == nil {
		return ""
	}
	return d.Book.Title
}

// genresInOrder resolves ids against byID keeping the reference order and
// skipping ids that no longer exist.
func genresInOrder(ids []string, byID map[string]catalog.Genre) []catalog.Genre {
	out := make([]catalog.Genre, 0, len(ids))
	for _, id := range ids {
		if g, ok := byID[id]; ok {
			out = append(out, g)
		}
	}
	return out
}
