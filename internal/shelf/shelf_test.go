package shelf_test

import (
	"testing"

	"bookshelf/internal/catalog"
	"bookshelf/internal/isbn"
	"bookshelf/internal/shelf"
	"bookshelf/internal/store"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const (
	odysseyISBN  = "9780140449136"
	odysseyCanon = "978-0-14044913-6"
)

func newService(t *testing.T) (*store.Store, *shelf.Service) {
	t.Helper()
	st, err := store.New(t.TempDir())
	require.NoError(t, err)
	return st, shelf.NewService(st)
}

func TestService_Create(t *testing.T) {
	st, svc := newService(t)

	require.NoError(t, svc.Create("Favorites"))
	assert.Equal(t, catalog.Shelves{"Favorites": {}}, st.Shelves())

	err := svc.Create("Favorites")
	assert.ErrorIs(t, err, shelf.ErrExists)
}

func TestService_Rename(t *testing.T) {
	st, svc := newService(t)
	require.NoError(t, st.SaveShelves(catalog.Shelves{"Favorites": {odysseyCanon}}))

	require.NoError(t, svc.Rename("Favorites", "Best Of"))

	shelves := st.Shelves()
	assert.NotContains(t, shelves, "Favorites")
	assert.Equal(t, []string{odysseyCanon}, shelves["Best Of"], "membership survives the rename")

	err := svc.Rename("Favorites", "Anything")
	assert.ErrorIs(t, err, shelf.ErrNotFound)
}

func TestService_Delete_Idempotent(t *testing.T) {
	st, svc := newService(t)
	require.NoError(t, st.SaveShelves(catalog.Shelves{"Favorites": {}}))

	require.NoError(t, svc.Delete("Favorites"))
	assert.NotContains(t, st.Shelves(), "Favorites")

	require.NoError(t, svc.Delete("Favorites"))
}

func TestService_SetMembership(t *testing.T) {
	st, svc := newService(t)
	require.NoError(t, st.SaveShelves(catalog.Shelves{
		"Favorites": {},
		"Classics":  {},
		"To Read":   {},
	}))

	require.NoError(t, svc.SetMembership(odysseyISBN, []string{"Favorites", "Classics"}))
	shelves := st.Shelves()
	assert.Equal(t, []string{odysseyCanon}, shelves["Favorites"], "raw ISBN is written in canonical form")
	assert.Equal(t, []string{odysseyCanon}, shelves["Classics"])
	assert.Empty(t, shelves["To Read"])

	// deselecting removes, reselecting is a no-op
	require.NoError(t, svc.SetMembership(odysseyCanon, []string{"Classics"}))
	shelves = st.Shelves()
	assert.Empty(t, shelves["Favorites"])
	assert.Equal(t, []string{odysseyCanon}, shelves["Classics"])

	// empty selection clears the book from every shelf
	require.NoError(t, svc.SetMembership(odysseyISBN, []string{}))
	shelves = st.Shelves()
	assert.Empty(t, shelves["Classics"])
}

func TestService_SetMembership_UnknownShelvesIgnored(t *testing.T) {
	st, svc := newService(t)
	require.NoError(t, st.SaveShelves(catalog.Shelves{"Favorites": {}}))

	require.NoError(t, svc.SetMembership(odysseyISBN, []string{"Favorites", "Nonexistent"}))
	shelves := st.Shelves()
	assert.NotContains(t, shelves, "Nonexistent")
	assert.Equal(t, []string{odysseyCanon}, shelves["Favorites"])
}

func TestService_SetMembership_InvalidISBN(t *testing.T) {
	_, svc := newService(t)
	err := svc.SetMembership("garbage", []string{"Favorites"})
	assert.ErrorIs(t, err, isbn.ErrUnparseable)
}
