package catalog

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func sampleBooks() []Book {
	return []Book{
		{ISBN: "2", Title: "B", Author: "Zola", PublishDate: "1884"},
		{ISBN: "1", Title: "A", Author: "Austen", PublishDate: "1813"},
		{ISBN: "3", Title: "C", Author: "Camus", PublishDate: "1942"},
	}
}

func titles(books []Book) []string {
	out := make([]string, len(books))
	for i, b := range books {
		out[i] = b.Title
	}
	return out
}

func TestSortBooks(t *testing.T) {
	tests := []struct {
		name   string
		sortBy string
		order  string
		want   []string
	}{
		{name: "title asc", sortBy: "title", order: "asc", want: []string{"A", "B", "C"}},
		{name: "title desc", sortBy: "title", order: "desc", want: []string{"C", "B", "A"}},
		{name: "author asc", sortBy: "author", order: "asc", want: []string{"A", "C", "B"}},
		{name: "publish_date desc", sortBy: "publish_date", order: "desc", want: []string{"C", "B", "A"}},
		{name: "isbn asc", sortBy: "isbn", order: "asc", want: []string{"A", "B", "C"}},
		{name: "unknown field falls back to title", sortBy: "bogus", order: "asc", want: []string{"A", "B", "C"}},
		{name: "unknown order falls back to asc", sortBy: "title", order: "sideways", want: []string{"A", "B", "C"}},
		{name: "empty params", sortBy: "", order: "", want: []string{"A", "B", "C"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := SortBooks(sampleBooks(), tt.sortBy, tt.order)
			assert.Equal(t, tt.want, titles(got))
		})
	}
}

func TestSortBooks_DoesNotMutateInput(t *testing.T) {
	books := sampleBooks()
	SortBooks(books, "title", "asc")
	assert.Equal(t, []string{"B", "A", "C"}, titles(books))
}
