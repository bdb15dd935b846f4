package main

import (
	"net/http"

	"bookshelf/internal/catalog"
	"bookshelf/internal/shelf"
)

func newRouter(catalogHandler *catalog.HTTPHandler, shelfHandler *shelf.HTTPHandler) *http.ServeMux {
	mux := http.NewServeMux()

	mux.HandleFunc("GET /healthz", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
		_, _ = w.Write([]byte("ok"))
	})

	mux.HandleFunc("GET /isbn", catalogHandler.ListISBNs)

	mux.HandleFunc("GET /books", catalogHandler.List)
	mux.HandleFunc("GET /books/{isbn}", catalogHandler.Get)
	// the literal segment wins over the {isbn} wildcard
	mux.HandleFunc("POST /books/reset", catalogHandler.Reset)
	mux.HandleFunc("POST /books/{isbn}", catalogHandler.Add)
	mux.HandleFunc("DELETE /books/{isbn}", catalogHandler.Delete)

	mux.HandleFunc("GET /shelves", shelfHandler.List)
	mux.HandleFunc("POST /shelves", shelfHandler.SetMembership)
	mux.HandleFunc("PUT /shelves", shelfHandler.Rename)
	mux.HandleFunc("POST /shelves/{shelfName}", shelfHandler.Create)
	mux.HandleFunc("DELETE /shelves/{shelfName}", shelfHandler.Delete)

	return mux
}
