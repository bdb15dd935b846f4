package httpx

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestError(t *testing.T) {
	w := httptest.NewRecorder()
	Error(w, http.StatusConflict, "Shelf 'Favorites' already exists.")

	assert.Equal(t, http.StatusConflict, w.Code)
	assert.Equal(t, "application/json", w.Header().Get("Content-Type"))
	assert.JSONEq(t, `{"error": "Shelf 'Favorites' already exists."}`, w.Body.String())
}

func TestMessage(t *testing.T) {
	w := httptest.NewRecorder()
	Message(w, http.StatusOK, "Catalog rebuilt with 3 books")

	assert.Equal(t, http.StatusOK, w.Code)
	assert.JSONEq(t, `{"message": "Catalog rebuilt with 3 books"}`, w.Body.String())
}

func TestNoContent(t *testing.T) {
	w := httptest.NewRecorder()
	NoContent(w)
	assert.Equal(t, http.StatusNoContent, w.Code)
	assert.Empty(t, w.Body.String())
}
