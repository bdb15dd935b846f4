package catalog

import (
	"sort"

	"golang.org/x/text/collate"
	"golang.org/x/text/language"
)

// Sortable fields for listing the catalog.
const (
	SortByTitle       = "title"
	SortByAuthor      = "author"
	SortByISBN        = "isbn"
	SortByPublishDate = "publish_date"

	OrderAsc  = "asc"
	OrderDesc = "desc"
)

// SortBooks returns a sorted copy of books. Unknown sortBy values fall back
// to title, unknown order values to ascending, matching the query-parameter
// defaults of the books listing. Comparison is locale-aware on the string
// form of the field.
func SortBooks(books []Book, sortBy, order string) []Book {
	switch sortBy {
	case SortByTitle, SortByAuthor, SortByISBN, SortByPublishDate:
	default:
		sortBy = SortByTitle
	}
	if order != OrderAsc && order != OrderDesc {
		order = OrderAsc
	}

	sorted := make([]Book, len(books))
	copy(sorted, books)

	coll := collate.New(language.English)
	sort.SliceStable(sorted, func(i, j int) bool {
		a := fieldValue(sorted[i], sortBy)
		b := fieldValue(sorted[j], sortBy)
		if order == OrderDesc {
			return coll.CompareString(b, a) < 0
		}
		return coll.CompareString(a, b) < 0
	})
	return sorted
}

func fieldValue(b Book, field string) string {
	switch field {
	case SortByAuthor:
		return b.Author
	case SortByISBN:
		return b.ISBN
	case SortByPublishDate:
		return b.PublishDate
	default:
		return b.Title
	}
}
