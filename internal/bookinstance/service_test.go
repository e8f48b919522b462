package bookinstance

import (
	"context"
	"testing"
	"time"

	"locallibrary/internal/catalog"
	"locallibrary/internal/form"
	"locallibrary/internal/testutil"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestService_Create(t *testing.T) {
	store := testutil.NewStore(t)
	svc := NewService(store, time.Second)
	ctx := context.Background()

	a := testutil.SeedAuthor(t, store, "Frank", "Herbert")
	b := testutil.SeedBook(t, store, "Dune", a.ID)

	t.Run("empty status defaults to maintenance", func(t *testing.T) {
		bi, fd, err := svc.Create(ctx, form.Values{"book": {b.ID}, "imprint": {"Ace, 1990"}, "status": {""}})
		require.NoError(t, err)
		require.NotNil(t, bi)
		assert.Empty(t, fd.Errors)
		assert.Equal(t, catalog.StatusMaintenance, bi.Status)
		assert.Nil(t, bi.DueBack)
	})

	t.Run("due date is parsed", func(t *testing.T) {
		bi, _, err := svc.Create(ctx, form.Values{
			"book": {b.ID}, "imprint": {"Ace"}, "status": {"Loaned"}, "due_back": {"2024-03-05"},
		})
		require.NoError(t, err)
		require.NotNil(t, bi)
		assert.Equal(t, catalog.StatusLoaned, bi.Status)
		assert.Equal(t, "Mar 5, 2024", bi.DueBackFormatted())

		d, err := svc.Detail(ctx, bi.ID)
		require.NoError(t, err)
		require.NotNil(t, d.Book)
		assert.Equal(t, "Dune", d.Book.Title)
	})

	t.Run("rejected", func(t *testing.T) {
		bi, fd, err := svc.Create(ctx, form.Values{
			"book": {"gone"}, "imprint": {" "}, "status": {"Lost"}, "due_back": {"05/03/2024"},
		})
		require.NoError(t, err)
		assert.Nil(t, bi)
		assert.Equal(t, map[string]form.Kind{
			"book":     form.UnknownReference,
			"imprint":  form.MissingField,
			"due_back": form.InvalidDate,
			"status":   form.InvalidFormat,
		}, fd.Errors.Kinds())
		require.Len(t, fd.Books, 1)
		assert.Equal(t, "05/03/2024", fd.Values.Get("due_back"))
	})
}

func TestService_ListAvailable(t *testing.T) {
	store := testutil.NewStore(t)
	svc := NewService(store, time.Second)
	ctx := context.Background()

	a := testutil.SeedAuthor(t, store, "Frank", "Herbert")
	dune := testutil.SeedBook(t, store, "Dune", a.ID)
	anathem := testutil.SeedBook(t, store, "Anathem", a.ID)
	testutil.SeedInstance(t, store, dune.ID, catalog.StatusAvailable)
	testutil.SeedInstance(t, store, dune.ID, catalog.StatusLoaned)
	testutil.SeedInstance(t, store, anathem.ID, catalog.StatusAvailable)

	all, err := svc.List(ctx)
	require.NoError(t, err)
	require.Len(t, all, 3)
	assert.Equal(t, "Anathem", all[0].Book.Title)

	available, err := svc.ListAvailable(ctx)
	require.NoError(t, err)
	require.Len(t, available, 2)
	for _, bi := range available {
		assert.Equal(t, catalog.StatusAvailable, bi.Status)
	}
}

func TestService_UpdateAndDelete(t *testing.T) {
	store := testutil.NewStore(t)
	svc := NewService(store, time.Second)
	ctx := context.Background()

	a := testutil.SeedAuthor(t, store, "Frank", "Herbert")
	b := testutil.SeedBook(t, store, "Dune", a.ID)
	bi := testutil.SeedInstance(t, store, b.ID, catalog.StatusAvailable)

	fd, err := svc.UpdateForm(ctx, bi.ID)
	require.NoError(t, err)
	assert.Equal(t, b.ID, fd.Values.Get("book"))
	assert.Equal(t, "Available", fd.Values.Get("status"))
	require.Len(t, fd.Books, 1)

	updated, _, err := svc.Update(ctx, bi.ID, form.Values{
		"book": {b.ID}, "imprint": {"Gollancz"}, "status": {"Reserved"},
	})
	require.NoError(t, err)
	require.NotNil(t, updated)

	d, err := svc.Detail(ctx, bi.ID)
	require.NoError(t, err)
	assert.Equal(t, "Gollancz", d.Imprint)
	assert.Equal(t, catalog.StatusReserved, d.Status)

	require.NoError(t, svc.Delete(ctx, bi.ID))
	assert.ErrorIs(t, svc.Delete(ctx, bi.ID), catalog.ErrNotFound)

	_, err = svc.UpdateForm(ctx, bi.ID)
	assert.ErrorIs(t, err, catalog.ErrNotFound)
	_, _, err = svc.Update(ctx, bi.ID, form.Values{"book": {b.ID}, "imprint": {"x"}})
	assert.ErrorIs(t, err, catalog.ErrNotFound)
}
