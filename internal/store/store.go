// Package store persists the three catalog collections as pretty-printed
// JSON files: the tracked-ISBN list, the book catalog, and the shelves map.
// Every write replaces a whole collection; a per-collection mutex serializes
// read-modify-write cycles so concurrent mutating requests cannot drop each
// other's changes.
package store

import (
	"encoding/json"
	"fmt"
	"log"
	"os"
	"path/filepath"
	"sync"

	"bookshelf/internal/catalog"
)

const (
	isbnFile    = "isbn.json"
	booksFile   = "books.json"
	shelvesFile = "shelves.json"
)

// Store owns the on-disk representation of the catalog collections.
type Store struct {
	dir string

	isbnMu    sync.Mutex
	booksMu   sync.Mutex
	shelvesMu sync.Mutex
}

// New creates a Store rooted at dir, creating the directory if needed.
func New(dir string) (*Store, error) {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("create data dir: %w", err)
	}
	return &Store{dir: dir}, nil
}

// ISBNs returns the tracked-ISBN list. A missing or unreadable file yields an
// empty list; the failure is logged, never propagated.
func (s *Store) ISBNs() []string {
	s.isbnMu.Lock()
	defer s.isbnMu.Unlock()
	return s.readISBNs()
}

// SaveISBNs replaces the tracked-ISBN list on disk.
func (s *Store) SaveISBNs(isbns []string) error {
	s.isbnMu.Lock()
	defer s.isbnMu.Unlock()
	return s.writeJSON(isbnFile, isbns)
}

// UpdateISBNs applies fn to the current tracked-ISBN list and persists the
// result, holding the collection lock across the whole cycle. An error from
// fn aborts the update without writing.
func (s *Store) UpdateISBNs(fn func([]string) ([]string, error)) error {
	s.isbnMu.Lock()
	defer s.isbnMu.Unlock()
	next, err := fn(s.readISBNs())
	if err != nil {
		return err
	}
	return s.writeJSON(isbnFile, next)
}

// Books returns the book catalog, empty if absent or unreadable.
func (s *Store) Books() []catalog.Book {
	s.booksMu.Lock()
	defer s.booksMu.Unlock()
	return s.readBooks()
}

// SaveBooks replaces the book catalog on disk.
func (s *Store) SaveBooks(books []catalog.Book) error {
	s.booksMu.Lock()
	defer s.booksMu.Unlock()
	return s.writeJSON(booksFile, books)
}

// UpdateBooks applies fn to the current catalog and persists the result under
// the collection lock.
func (s *Store) UpdateBooks(fn func([]catalog.Book) ([]catalog.Book, error)) error {
	s.booksMu.Lock()
	defer s.booksMu.Unlock()
	next, err := fn(s.readBooks())
	if err != nil {
		return err
	}
	return s.writeJSON(booksFile, next)
}

// Shelves returns the shelf map, empty if absent or unreadable.
func (s *Store) Shelves() catalog.Shelves {
	s.shelvesMu.Lock()
	defer s.shelvesMu.Unlock()
	return s.readShelves()
}

// SaveShelves replaces the shelf map on disk.
func (s *Store) SaveShelves(shelves catalog.Shelves) error {
	s.shelvesMu.Lock()
	defer s.shelvesMu.Unlock()
	return s.writeJSON(shelvesFile, shelves)
}

// UpdateShelves applies fn to the current shelf map and persists the result
// under the collection lock.
func (s *Store) UpdateShelves(fn func(catalog.Shelves) (catalog.Shelves, error)) error {
	s.shelvesMu.Lock()
	defer s.shelvesMu.Unlock()
	next, err := fn(s.readShelves())
	if err != nil {
		return err
	}
	return s.writeJSON(shelvesFile, next)
}

func (s *Store) readISBNs() []string {
	var isbns []string
	if !s.readJSON(isbnFile, &isbns) || isbns == nil {
		return []string{}
	}
	return isbns
}

func (s *Store) readBooks() []catalog.Book {
	var books []catalog.Book
	if !s.readJSON(booksFile, &books) || books == nil {
		return []catalog.Book{}
	}
	return books
}

func (s *Store) readShelves() catalog.Shelves {
	var shelves catalog.Shelves
	if !s.readJSON(shelvesFile, &shelves) || shelves == nil {
		return catalog.Shelves{}
	}
	return shelves
}

// readJSON fills target from the named file and reports whether the decode
// completed. Callers discard the target on failure, so a damaged file — even
// one that is valid JSON of the wrong shape and decodes partially — degrades
// to an empty collection instead of taking the service down.
func (s *Store) readJSON(name string, target any) bool {
	path := filepath.Join(s.dir, name)
	data, err := os.ReadFile(path)
	if err != nil {
		if !os.IsNotExist(err) {
			log.Printf("store: read %s: %v", name, err)
		}
		return false
	}
	if err := json.Unmarshal(data, target); err != nil {
		log.Printf("store: decode %s: %v", name, err)
		return false
	}
	return true
}

// writeJSON serializes v with 2-space indentation and moves it into place
// with a temp-file rename, so readers see either the old or the new
// collection, never a torn file.
func (s *Store) writeJSON(name string, v any) error {
	data, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return fmt.Errorf("encode %s: %w", name, err)
	}

	tmp, err := os.CreateTemp(s.dir, name+".tmp-*")
	if err != nil {
		return fmt.Errorf("write %s: %w", name, err)
	}
	if _, err := tmp.Write(data); err != nil {
		tmp.Close()
		os.Remove(tmp.Name())
		return fmt.Errorf("write %s: %w", name, err)
	}
	if err := tmp.Close(); err != nil {
		os.Remove(tmp.Name())
		return fmt.Errorf("write %s: %w", name, err)
	}
	if err := os.Rename(tmp.Name(), filepath.Join(s.dir, name)); err != nil {
		os.Remove(tmp.Name())
		return fmt.Errorf("write %s: %w", name, err)
	}
	return nil
}
