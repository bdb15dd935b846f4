package catalog

import (
	"context"
	"errors"
	"log"

	"bookshelf/internal/isbn"
)

// Service reconciles the tracked-ISBN list, the book catalog, and shelf
// membership.
type Service struct {
	store   Store
	fetcher Fetcher
}

func NewService(store Store, fetcher Fetcher) *Service {
	return &Service{store: store, fetcher: fetcher}
}

// TrackedISBNs returns the tracked-ISBN list.
func (s *Service) TrackedISBNs() []string {
	return s.store.ISBNs()
}

// List returns the catalog sorted by sortBy/order (see SortBooks for the
// fallback defaults).
func (s *Service) List(sortBy, order string) []Book {
	return SortBooks(s.store.Books(), sortBy, order)
}

// Get returns the book whose stripped ISBN matches raw, or ErrNotFound.
func (s *Service) Get(raw string) (Book, error) {
	key := isbn.Strip(raw)
	for _, b := range s.store.Books() {
		if isbn.Strip(b.ISBN) == key {
			return b, nil
		}
	}
	return Book{}, ErrNotFound
}

// Add validates raw, fetches its metadata, and appends the canonical ISBN to
// the tracked list and the fetched book to the catalog. On any failure
// nothing is persisted: an unparseable ISBN, an already-tracked ISBN, and a
// failed fetch all leave both collections untouched.
func (s *Service) Add(ctx context.Context, raw string) (Book, error) {
	canonical, err := isbn.Normalize(raw)
	if err != nil {
		return Book{}, err
	}
	key := isbn.Strip(canonical)

	for _, tracked := range s.store.ISBNs() {
		if isbn.Strip(tracked) == key {
			return Book{}, ErrAlreadyTracked
		}
	}

	book, err := s.fetcher.FetchByISBN(ctx, canonical)
	if err != nil {
		return Book{}, err
	}

	// Re-check under the collection lock; a concurrent Add for the same
	// ISBN may have won the race since the read above.
	err = s.store.UpdateISBNs(func(isbns []string) ([]string, error) {
		for _, tracked := range isbns {
			if isbn.Strip(tracked) == key {
				return nil, ErrAlreadyTracked
			}
		}
		return append(isbns, canonical), nil
	})
	if err != nil {
		return Book{}, err
	}

	bookKey := isbn.Strip(book.ISBN)
	err = s.store.UpdateBooks(func(books []Book) ([]Book, error) {
		for _, b := range books {
			if isbn.Strip(b.ISBN) == bookKey {
				return books, nil
			}
		}
		return append(books, book), nil
	})
	if err != nil {
		return Book{}, err
	}
	return book, nil
}

// errUnchanged aborts an Update callback whose collection needs no write.
var errUnchanged = errors.New("collection unchanged")

// Delete removes raw's ISBN from the tracked list, the catalog, and every
// shelf, comparing by stripped form. ErrNotFound is returned only when the
// ISBN appeared in none of the three collections; collections the ISBN is
// absent from are not rewritten.
func (s *Service) Delete(raw string) error {
	key := isbn.Strip(raw)
	found := false

	err := s.store.UpdateISBNs(func(isbns []string) ([]string, error) {
		kept := isbns[:0]
		for _, tracked := range isbns {
			if isbn.Strip(tracked) == key {
				continue
			}
			kept = append(kept, tracked)
		}
		if len(kept) == len(isbns) {
			return nil, errUnchanged
		}
		found = true
		return kept, nil
	})
	if err != nil && !errors.Is(err, errUnchanged) {
		return err
	}

	err = s.store.UpdateBooks(func(books []Book) ([]Book, error) {
		kept := books[:0]
		for _, b := range books {
			if isbn.Strip(b.ISBN) == key {
				continue
			}
			kept = append(kept, b)
		}
		if len(kept) == len(books) {
			return nil, errUnchanged
		}
		found = true
		return kept, nil
	})
	if err != nil && !errors.Is(err, errUnchanged) {
		return err
	}

	err = s.store.UpdateShelves(func(shelves Shelves) (Shelves, error) {
		removed := false
		for name, members := range shelves {
			kept := members[:0]
			for _, member := range members {
				if isbn.Strip(member) == key {
					continue
				}
				kept = append(kept, member)
			}
			if len(kept) != len(members) {
				removed = true
			}
			shelves[name] = kept
		}
		if !removed {
			return nil, errUnchanged
		}
		found = true
		return shelves, nil
	})
	if err != nil && !errors.Is(err, errUnchanged) {
		return err
	}

	if !found {
		return ErrNotFound
	}
	return nil
}

// Resync rebuilds the catalog from scratch: every tracked ISBN is fetched
// again and the working catalog replaces the persisted one unconditionally.
// Per-ISBN fetch failures are logged and skipped, never aborting the run.
// Returns the number of books in the resulting catalog.
func (s *Service) Resync(ctx context.Context) (int, error) {
	tracked := s.store.ISBNs()

	working := make([]Book, 0, len(tracked))
	seen := make(map[string]bool, len(tracked))
	for _, t := range tracked {
		key := isbn.Strip(t)
		if seen[key] {
			continue
		}
		book, err := s.fetcher.FetchByISBN(ctx, t)
		if err != nil {
			log.Printf("resync: fetch %s: %v", t, err)
			continue
		}
		seen[key] = true
		// the provider may resolve two tracked editions to one record
		bookKey := isbn.Strip(book.ISBN)
		if seen[bookKey] {
			continue
		}
		seen[bookKey] = true
		working = append(working, book)
	}

	if err := s.store.SaveBooks(working); err != nil {
		return 0, err
	}
	return len(working), nil
}

// Reconcile fetches metadata for every tracked ISBN missing from the catalog
// and appends it. Run once at startup, before the server accepts requests.
// Fetch failures are logged and skipped; the books already catalogued are
// never touched.
func (s *Service) Reconcile(ctx context.Context) error {
	return s.store.UpdateBooks(func(books []Book) ([]Book, error) {
		have := make(map[string]bool, len(books))
		for _, b := range books {
			have[isbn.Strip(b.ISBN)] = true
		}

		for _, tracked := range s.store.ISBNs() {
			key := isbn.Strip(tracked)
			if have[key] {
				continue
			}
			book, err := s.fetcher.FetchByISBN(ctx, tracked)
			if err != nil {
				log.Printf("reconcile: fetch %s: %v", tracked, err)
				continue
			}
			have[key] = true
			bookKey := isbn.Strip(book.ISBN)
			if have[bookKey] {
				continue
			}
			have[bookKey] = true
			books = append(books, book)
		}
		return books, nil
	})
}
