package store

import (
	"context"
	"testing"

	"locallibrary/internal/catalog"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestBadgerStore_Contract(t *testing.T) {
	db, err := OpenBadger("", nil)
	require.NoError(t, err)
	t.Cleanup(func() { _ = db.Close() })

	runStoreContract(t, NewBadgerStore(db))
}

func TestBadgerStore_PersistsAcrossReopen(t *testing.T) {
	dir := t.TempDir()
	ctx := context.Background()

	db, err := OpenBadger(dir, nil)
	require.NoError(t, err)
	g := &catalog.Genre{Name: "Horror"}
	require.NoError(t, NewGenreBadger(db).Insert(ctx, g))
	require.NoError(t, db.Close())

	db, err = OpenBadger(dir, nil)
	require.NoError(t, err)
	t.Cleanup(func() { _ = db.Close() })

	got, err := NewGenreBadger(db).FindByID(ctx, g.ID)
	require.NoError(t, err)
	require.NotNil(t, got)
	assert.Equal(t, "Horror", got.Name)
}

func TestBadgerHandle(t *testing.T) {
	h, err := Open(context.Background(), Config{Driver: DriverBadger})
	require.NoError(t, err)

	assert.Equal(t, DriverBadger, h.Driver)
	assert.NoError(t, h.Ping(context.Background()))
	require.NoError(t, h.Close(context.Background()))
	assert.Error(t, h.Ping(context.Background()))
}

func TestOpen_UnknownDriver(t *testing.T) {
	_, err := Open(context.Background(), Config{Driver: "sqlite"})
	assert.EqualError(t, err, `unknown store driver "sqlite"`)
}
