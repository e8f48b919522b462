package genre

import (
	"context"
	"strings"
	"testing"
	"time"

	"locallibrary/internal/catalog"
	"locallibrary/internal/form"
	"locallibrary/internal/testutil"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestService_CreateAndDetail(t *testing.T) {
	store := testutil.NewStore(t)
	svc := NewService(store, time.Second)
	ctx := context.Background()

	g, fd, err := svc.Create(ctx, form.Values{"name": {" Science Fiction "}})
	require.NoError(t, err)
	require.NotNil(t, g)
	assert.Empty(t, fd.Errors)

	a := testutil.SeedAuthor(t, store, "Frank", "Herbert")
	testutil.SeedBook(t, store, "Dune", a.ID, g.ID)
	testutil.SeedBook(t, store, "Emma", a.ID)

	d, err := svc.Detail(ctx, g.ID)
	require.NoError(t, err)
	assert.Equal(t, "Science Fiction", d.Genre.Name)
	require.Len(t, d.Books, 1)
	assert.Equal(t, "Dune", d.Books[0].Title)
}

func TestService_Create_Rejected(t *testing.T) {
	svc := NewService(testutil.NewStore(t), time.Second)

	tests := []struct {
		name string
		in   form.Values
		kind form.Kind
	}{
		{name: "missing", in: form.Values{}, kind: form.MissingField},
		{name: "whitespace only", in: form.Values{"name": {"   "}}, kind: form.MissingField},
		{name: "too long", in: form.Values{"name": {strings.Repeat("x", 101)}}, kind: form.InvalidFormat},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			g, fd, err := svc.Create(context.Background(), tt.in)
			require.NoError(t, err)
			assert.Nil(t, g)
			assert.Equal(t, map[string]form.Kind{"name": tt.kind}, fd.Errors.Kinds())
		})
	}
}

func TestService_Create_SingleCharacterName(t *testing.T) {
	svc := NewService(testutil.NewStore(t), time.Second)

	g, fd, err := svc.Create(context.Background(), form.Values{"name": {"X"}})
	require.NoError(t, err)
	assert.NotNil(t, g)
	assert.Empty(t, fd.Errors)
}

func TestService_UpdateAndDelete(t *testing.T) {
	store := testutil.NewStore(t)
	svc := NewService(store, time.Second)
	ctx := context.Background()

	g := testutil.SeedGenre(t, store, "Fantsy")

	fd, err := svc.UpdateForm(ctx, g.ID)
	require.NoError(t, err)
	assert.Equal(t, "Fantsy", fd.Values.Get("name"))

	updated, _, err := svc.Update(ctx, g.ID, form.Values{"name": {"Fantasy"}})
	require.NoError(t, err)
	require.NotNil(t, updated)

	a := testutil.SeedAuthor(t, store, "Ursula", "LeGuin")
	b := testutil.SeedBook(t, store, "Earthsea", a.ID, g.ID)

	d, err := svc.Delete(ctx, g.ID)
	assert.ErrorIs(t, err, catalog.ErrReferentialConflict)
	require.Len(t, d.Books, 1)
	assert.Equal(t, "Fantasy", d.Genre.Name)

	require.NoError(t, store.Books.Delete(ctx, b.ID))
	_, err = svc.Delete(ctx, g.ID)
	require.NoError(t, err)

	_, err = svc.Detail(ctx, g.ID)
	assert.ErrorIs(t, err, catalog.ErrNotFound)

	_, _, err = svc.Update(ctx, g.ID, form.Values{"name": {"Gone"}})
	assert.ErrorIs(t, err, catalog.ErrNotFound)
}
