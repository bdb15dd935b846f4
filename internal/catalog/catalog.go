package catalog

import (
	"errors"
)

// Sentinel errors for catalog operations and metadata fetches. Handlers map
// these to HTTP status codes with errors.Is.
var (
	// ErrNotFound is returned when a book is not found.
	ErrNotFound = errors.New("book not found")
	// ErrAlreadyTracked is returned when an ISBN is already in the tracked list.
	ErrAlreadyTracked = errors.New("isbn already tracked")
	// ErrUpstream is returned when the metadata provider is unreachable or
	// returns a response that does not match the expected schema.
	ErrUpstream = errors.New("metadata request failed")
	// ErrNoResults is returned when the metadata provider has no match.
	ErrNoResults = errors.New("no metadata results")
	// ErrBadMetadata is returned when the provider's ISBN-13 identifier fails
	// normalization.
	ErrBadMetadata = errors.New("metadata isbn could not be parsed")
)

// Book is a catalog entry. The on-disk and wire shapes are identical.
type Book struct {
	ISBN        string `json:"isbn"`
	Title       string `json:"title"`
	Author      string `json:"author"`
	PublishDate string `json:"publish_date"`
	ImgURL      string `json:"imgUrl"`
}

// Shelves maps a shelf name to the ISBNs of its member books. A shelf may
// reference ISBNs no longer in the catalog; membership is only cleaned up
// when a book is deleted.
type Shelves map[string][]string
