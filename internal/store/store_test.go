package store

import (
	"errors"
	"os"
	"path/filepath"
	"sync"
	"testing"

	"bookshelf/internal/catalog"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestStore(t *testing.T) *Store {
	t.Helper()
	s, err := New(t.TempDir())
	require.NoError(t, err)
	return s
}

func TestStore_EmptyDefaults(t *testing.T) {
	s := newTestStore(t)

	assert.Equal(t, []string{}, s.ISBNs())
	assert.Equal(t, []catalog.Book{}, s.Books())
	assert.Equal(t, catalog.Shelves{}, s.Shelves())
}

func TestStore_RoundTrip(t *testing.T) {
	s := newTestStore(t)

	isbns := []string{"978-0-14044913-6", "978-0-30640615-7"}
	require.NoError(t, s.SaveISBNs(isbns))
	assert.Equal(t, isbns, s.ISBNs())

	books := []catalog.Book{
		{
			ISBN:        "978-0-14044913-6",
			Title:       "The Odyssey",
			Author:      "Homer",
			PublishDate: "1996",
			ImgURL:      "https://example.com/odyssey.jpg",
		},
	}
	require.NoError(t, s.SaveBooks(books))
	assert.Equal(t, books, s.Books())

	shelves := catalog.Shelves{"Favorites": {"978-0-14044913-6"}}
	require.NoError(t, s.SaveShelves(shelves))
	assert.Equal(t, shelves, s.Shelves())
}

func TestStore_PrettyPrintedOutput(t *testing.T) {
	dir := t.TempDir()
	s, err := New(dir)
	require.NoError(t, err)

	require.NoError(t, s.SaveISBNs([]string{"978-0-14044913-6"}))

	data, err := os.ReadFile(filepath.Join(dir, "isbn.json"))
	require.NoError(t, err)
	assert.Equal(t, "[\n  \"978-0-14044913-6\"\n]", string(data))
}

func TestStore_CorruptFileYieldsEmpty(t *testing.T) {
	dir := t.TempDir()
	s, err := New(dir)
	require.NoError(t, err)

	require.NoError(t, os.WriteFile(filepath.Join(dir, "books.json"), []byte("{not json"), 0o644))
	assert.Equal(t, []catalog.Book{}, s.Books())
}

func TestStore_WrongShapeYieldsEmpty(t *testing.T) {
	dir := t.TempDir()
	s, err := New(dir)
	require.NoError(t, err)

	// valid JSON, wrong element type: the partial decode must be discarded
	require.NoError(t, os.WriteFile(filepath.Join(dir, "isbn.json"), []byte(`["a", 5]`), 0o644))
	assert.Equal(t, []string{}, s.ISBNs())

	require.NoError(t, os.WriteFile(filepath.Join(dir, "shelves.json"), []byte(`[1, 2]`), 0o644))
	assert.Equal(t, catalog.Shelves{}, s.Shelves())
}

func TestStore_NullFileYieldsEmpty(t *testing.T) {
	dir := t.TempDir()
	s, err := New(dir)
	require.NoError(t, err)

	require.NoError(t, os.WriteFile(filepath.Join(dir, "isbn.json"), []byte("null"), 0o644))
	assert.Equal(t, []string{}, s.ISBNs())
}

func TestStore_UpdateAbortsOnError(t *testing.T) {
	s := newTestStore(t)
	require.NoError(t, s.SaveISBNs([]string{"978-0-14044913-6"}))

	boom := errors.New("boom")
	err := s.UpdateISBNs(func(isbns []string) ([]string, error) {
		return nil, boom
	})
	assert.ErrorIs(t, err, boom)
	assert.Equal(t, []string{"978-0-14044913-6"}, s.ISBNs())
}

func TestStore_UpdateSerializesWriters(t *testing.T) {
	s := newTestStore(t)
	require.NoError(t, s.SaveISBNs([]string{}))

	const writers = 20
	var wg sync.WaitGroup
	for i := 0; i < writers; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			_ = s.UpdateISBNs(func(isbns []string) ([]string, error) {
				return append(isbns, "x"), nil
			})
		}()
	}
	wg.Wait()

	assert.Len(t, s.ISBNs(), writers)
}
