package catalog

import (
	"errors"
	"fmt"
	"net/http"
	"strings"

	"bookshelf/internal/httpx"
	"bookshelf/internal/isbn"
)

type HTTPHandler struct {
	service *Service
}

func NewHTTPHandler(service *Service) *HTTPHandler {
	return &HTTPHandler{service: service}
}

// @Summary List tracked ISBNs
// @Tags books
// @Produce json
// @Success 200 {array} string
// @Router /isbn [get]
func (h *HTTPHandler) ListISBNs(w http.ResponseWriter, r *http.Request) {
	httpx.JSON(w, http.StatusOK, h.service.TrackedISBNs())
}

// @Summary List books
// @Description Get the full catalog, sorted, with optional fields hidden
// @Tags books
// @Produce json
// @Param sortBy query string false "Sort field" Enums(title, author, isbn, publish_date) default(title)
// @Param order query string false "Sort direction" Enums(asc, desc) default(asc)
// @Param hide query string false "Comma-separated fields to omit"
// @Success 200 {array} catalog.Book
// @Router /books [get]
func (h *HTTPHandler) List(w http.ResponseWriter, r *http.Request) {
	books := h.service.List(r.URL.Query().Get("sortBy"), r.URL.Query().Get("order"))

	hide := r.URL.Query().Get("hide")
	if hide == "" {
		httpx.JSON(w, http.StatusOK, books)
		return
	}

	hidden := strings.Split(hide, ",")
	for i := range hidden {
		hidden[i] = strings.TrimSpace(hidden[i])
	}

	trimmed := make([]map[string]string, 0, len(books))
	for _, b := range books {
		entry := bookFields(b)
		for _, field := range hidden {
			delete(entry, field)
		}
		trimmed = append(trimmed, entry)
	}
	httpx.JSON(w, http.StatusOK, trimmed)
}

// @Summary Get book by ISBN
// @Tags books
// @Produce json
// @Param isbn path string true "Book ISBN"
// @Success 200 {object} catalog.Book
// @Failure 404 {object} map[string]string
// @Router /books/{isbn} [get]
func (h *HTTPHandler) Get(w http.ResponseWriter, r *http.Request) {
	book, err := h.service.Get(r.PathValue("isbn"))
	if err != nil {
		httpx.Error(w, http.StatusNotFound, "Book not found")
		return
	}
	httpx.JSON(w, http.StatusOK, book)
}

// @Summary Add a book
// @Description Track an ISBN and enrich it from the metadata provider
// @Tags books
// @Produce json
// @Param isbn path string true "Book ISBN"
// @Success 201 {object} catalog.Book
// @Failure 400 {object} map[string]string
// @Failure 404 {object} map[string]string
// @Failure 409 {object} map[string]string
// @Failure 422 {object} map[string]string
// @Failure 502 {object} map[string]string
// @Router /books/{isbn} [post]
func (h *HTTPHandler) Add(w http.ResponseWriter, r *http.Request) {
	raw := r.PathValue("isbn")
	book, err := h.service.Add(r.Context(), raw)
	if err != nil {
		switch {
		case errors.Is(err, isbn.ErrUnparseable):
			httpx.Error(w, http.StatusBadRequest, "Invalid ISBN")
		case errors.Is(err, ErrAlreadyTracked):
			httpx.Error(w, http.StatusConflict, fmt.Sprintf("ISBN '%s' is already tracked", raw))
		case errors.Is(err, ErrNoResults):
			httpx.Error(w, http.StatusNotFound, "Book not found")
		case errors.Is(err, ErrBadMetadata):
			httpx.Error(w, http.StatusUnprocessableEntity, "ISBN could not be parsed")
		case errors.Is(err, ErrUpstream):
			httpx.Error(w, http.StatusBadGateway, "Error during API-Request")
		default:
			httpx.Error(w, http.StatusInternalServerError, "server error")
		}
		return
	}
	httpx.JSON(w, http.StatusCreated, book)
}

// @Summary Delete a book
// @Description Remove an ISBN from the tracked list, the catalog, and every shelf
// @Tags books
// @Param isbn path string true "Book ISBN"
// @Success 204
// @Failure 404 {object} map[string]string
// @Router /books/{isbn} [delete]
func (h *HTTPHandler) Delete(w http.ResponseWriter, r *http.Request) {
	err := h.service.Delete(r.PathValue("isbn"))
	if err != nil {
		if errors.Is(err, ErrNotFound) {
			httpx.Error(w, http.StatusNotFound, "Book not found")
			return
		}
		httpx.Error(w, http.StatusInternalServerError, "server error")
		return
	}
	httpx.NoContent(w)
}

// @Summary Rebuild the catalog
// @Description Refetch metadata for every tracked ISBN and replace the catalog
// @Tags books
// @Produce json
// @Success 200 {object} map[string]string
// @Router /books/reset [post]
func (h *HTTPHandler) Reset(w http.ResponseWriter, r *http.Request) {
	count, err := h.service.Resync(r.Context())
	if err != nil {
		httpx.Error(w, http.StatusInternalServerError, "server error")
		return
	}
	httpx.Message(w, http.StatusOK, fmt.Sprintf("Catalog rebuilt with %d books", count))
}

func bookFields(b Book) map[string]string {
	return map[string]string{
		"isbn":         b.ISBN,
		"title":        b.Title,
		"author":       b.Author,
		"publish_date": b.PublishDate,
		"imgUrl":       b.ImgURL,
	}
}
