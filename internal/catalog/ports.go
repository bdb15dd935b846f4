package catalog

import (
	"context"
)

// Store is the persistence contract the catalog service needs. Reads return
// empty defaults when the backing file is absent or damaged; Update methods
// run the callback under the collection's lock so read-modify-write cycles
// are serialized.
type Store interface {
	ISBNs() []string
	Books() []Book
	SaveBooks(books []Book) error
	UpdateISBNs(fn func([]string) ([]string, error)) error
	UpdateBooks(fn func([]Book) ([]Book, error)) error
	UpdateShelves(fn func(Shelves) (Shelves, error)) error
}

// Fetcher looks up book metadata for a single ISBN from the external
// provider.
type Fetcher interface {
	FetchByISBN(ctx context.Context, isbn string) (Book, error)
}
