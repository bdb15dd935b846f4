package shelf

import (
	"encoding/json"
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

type membershipReq struct {
	ISBN    string   `json:"isbn" validate:"required,isbn"`
	Shelves []string `json:"shelves"`
}

type renameReq struct {
	Shelf     string `json:"shelf" validate:"required"`
	ShelfName string `json:"shelfName" validate:"required"`
}

// @Summary List shelves
// @Tags shelves
// @Produce json
// @Success 200 {object} map[string][]string
// @Router /shelves [get]
func (h *HTTPHandler) List(w http.ResponseWriter, r *http.Request) {
	httpx.JSON(w, http.StatusOK, h.service.All())
}

// @Summary Set a book's shelf membership
// @Description Add the ISBN to every selected shelf and remove it from every deselected one
// @Tags shelves
// @Accept json
// @Param body body membershipReq true "ISBN and desired shelf names"
// @Success 201
// @Failure 400 {object} map[string]string
// @Router /shelves [post]
func (h *HTTPHandler) SetMembership(w http.ResponseWriter, r *http.Request) {
	var req membershipReq
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		httpx.Error(w, http.StatusBadRequest, "Invalid request body")
		return
	}
	if req.Shelves == nil || httpx.ValidateStruct(req) != nil {
		httpx.Error(w, http.StatusBadRequest, "Invalid request body")
		return
	}

	if err := h.service.SetMembership(req.ISBN, req.Shelves); err != nil {
		if errors.Is(err, isbn.ErrUnparseable) {
			httpx.Error(w, http.StatusBadRequest, "Invalid ISBN")
			return
		}
		httpx.Error(w, http.StatusInternalServerError, "server error")
		return
	}
	w.WriteHeader(http.StatusCreated)
}

// @Summary Rename a shelf
// @Tags shelves
// @Accept json
// @Param body body renameReq true "Current and new shelf name"
// @Success 200
// @Failure 400 {object} map[string]string
// @Failure 404 {object} map[string]string
// @Router /shelves [put]
func (h *HTTPHandler) Rename(w http.ResponseWriter, r *http.Request) {
	var req renameReq
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		httpx.Error(w, http.StatusBadRequest, "Invalid request body")
		return
	}
	if httpx.ValidateStruct(req) != nil {
		httpx.Error(w, http.StatusBadRequest, "Invalid request body")
		return
	}

	if err := h.service.Rename(req.Shelf, req.ShelfName); err != nil {
		if errors.Is(err, ErrNotFound) {
			httpx.Error(w, http.StatusNotFound, fmt.Sprintf("Shelf '%s' not found", req.Shelf))
			return
		}
		httpx.Error(w, http.StatusInternalServerError, "server error")
		return
	}
	httpx.Message(w, http.StatusOK, fmt.Sprintf("Shelf '%s' renamed to '%s'", req.Shelf, req.ShelfName))
}

// @Summary Create a shelf
// @Tags shelves
// @Produce json
// @Param shelfName path string true "Shelf name"
// @Success 201 {object} map[string]string
// @Failure 400 {object} map[string]string
// @Failure 409 {object} map[string]string
// @Router /shelves/{shelfName} [post]
func (h *HTTPHandler) Create(w http.ResponseWriter, r *http.Request) {
	name := strings.TrimSpace(r.PathValue("shelfName"))
	if name == "" {
		httpx.Error(w, http.StatusBadRequest, "Invalid shelf name")
		return
	}

	if err := h.service.Create(name); err != nil {
		if errors.Is(err, ErrExists) {
			httpx.Error(w, http.StatusConflict, fmt.Sprintf("Shelf '%s' already exists.", name))
			return
		}
		httpx.Error(w, http.StatusInternalServerError, "server error")
		return
	}
	httpx.Message(w, http.StatusCreated, fmt.Sprintf("Shelf '%s' created.", name))
}

// @Summary Delete a shelf
// @Description Deleting an absent shelf is a no-op
// @Tags shelves
// @Param shelfName path string true "Shelf name"
// @Success 204
// @Failure 400 {object} map[string]string
// @Router /shelves/{shelfName} [delete]
func (h *HTTPHandler) Delete(w http.ResponseWriter, r *http.Request) {
	name := strings.TrimSpace(r.PathValue("shelfName"))
	if name == "" {
		httpx.Error(w, http.StatusBadRequest, "Invalid shelf name")
		return
	}

	if err := h.service.Delete(name); err != nil {
		httpx.Error(w, http.StatusInternalServerError, "server error")
		return
	}
	httpx.NoContent(w)
}
