package router

import (
	"database/sql"
	"net/http"

	"github.com/okarpov/bookshelf-api/internal/api/handlers/books"
)

func Router(db *sql.DB) http.Handler {
	mux := http.NewServeMux()

	// Keep legacy /books -> /books/, filters included
	mux.HandleFunc("GET /books", func(w http.ResponseWriter, r *http.Request) {
		target := "/books/"
		if r.URL.RawQuery != "" {
			target += "?" + r.URL.RawQuery
		}
		http.Redirect(w, r, target, http.StatusMovedPermanently)
	})

	mux.Handle("GET /books/", books.Handler(db))           // list
	mux.Handle("POST /books/", books.Handler(db))          // create
	mux.Handle("GET /books/{isbn}", books.Handler(db))     // get
	mux.Handle("PUT /books/{isbn}", books.Handler(db))     // update
	mux.Handle("DELETE /books/{isbn}", books.Handler(db))  // delete
	mux.Handle("OPTIONS /books/", books.Handler(db))       // preflight
	mux.Handle("OPTIONS /books/{isbn}", books.Handler(db)) // preflight

	return mux
}
