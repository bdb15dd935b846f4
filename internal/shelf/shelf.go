// Package shelf manages user-defined named subsets of the catalog. Shelves
// hold ISBN membership lists; they may reference ISBNs that are no longer
// catalogued, and are only cleaned up when a book is deleted.
package shelf

import (
	"errors"

	"bookshelf/internal/catalog"
	"bookshelf/internal/isbn"
)

var (
	// ErrNotFound is returned when a named shelf does not exist.
	ErrNotFound = errors.New("shelf not found")
	// ErrExists is returned when creating a shelf whose name is taken.
	ErrExists = errors.New("shelf already exists")
)

// Store is the persistence contract the shelf service needs.
type Store interface {
	Shelves() catalog.Shelves
	UpdateShelves(fn func(catalog.Shelves) (catalog.Shelves, error)) error
}

type Service struct {
	store Store
}

func NewService(store Store) *Service {
	return &Service{store: store}
}

// All returns the full shelf map.
func (s *Service) All() catalog.Shelves {
	return s.store.Shelves()
}

// Create adds an empty shelf. ErrExists if the name is taken.
func (s *Service) Create(name string) error {
	return s.store.UpdateShelves(func(shelves catalog.Shelves) (catalog.Shelves, error) {
		if _, ok := shelves[name]; ok {
			return nil, ErrExists
		}
		shelves[name] = []string{}
		return shelves, nil
	})
}

// Rename moves a shelf's membership list under a new name. ErrNotFound if the
// old name does not exist.
func (s *Service) Rename(oldName, newName string) error {
	return s.store.UpdateShelves(func(shelves catalog.Shelves) (catalog.Shelves, error) {
		members, ok := shelves[oldName]
		if !ok {
			return nil, ErrNotFound
		}
		shelves[newName] = members
		delete(shelves, oldName)
		return shelves, nil
	})
}

// Delete removes a shelf. Deleting a shelf that does not exist is a no-op.
func (s *Service) Delete(name string) error {
	return s.store.UpdateShelves(func(shelves catalog.Shelves) (catalog.Shelves, error) {
		delete(shelves, name)
		return shelves, nil
	})
}

// SetMembership reconciles one book's shelf membership against the desired
// set of shelf names: the ISBN is added to every selected shelf it is not on
// yet and removed from every shelf that was deselected. Shelf names not in
// the map are ignored. Membership comparison uses the stripped ISBN form; the
// canonical hyphenated form is what gets written.
func (s *Service) SetMembership(rawISBN string, selected []string) error {
	canonical, err := isbn.Normalize(rawISBN)
	if err != nil {
		return err
	}
	key := isbn.Strip(canonical)

	selectedSet := make(map[string]bool, len(selected))
	for _, name := range selected {
		selectedSet[name] = true
	}

	return s.store.UpdateShelves(func(shelves catalog.Shelves) (catalog.Shelves, error) {
		for name, members := range shelves {
			onShelf := false
			for _, member := range members {
				if isbn.Strip(member) == key {
					onShelf = true
					break
				}
			}

			switch {
			case selectedSet[name] && !onShelf:
				shelves[name] = append(members, canonical)
			case !selectedSet[name] && onShelf:
				kept := make([]string, 0, len(members))
				for _, member := range members {
					if isbn.Strip(member) != key {
						kept = append(kept, member)
					}
				}
				shelves[name] = kept
			}
		}
		return shelves, nil
	})
}
