package books

import (
	"database/sql"
	"net/http"

	"github.com/okarpov/bookshelf-api/internal/api/httpx"
)

const allowBooks = "GET, POST, PUT, DELETE, OPTIONS"

// Handler dispatches every /books request. Routes with an {isbn} segment
// arrive with the path value already bound by the mux.
func Handler(db *sql.DB) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		switch r.Method {
		case http.MethodGet:
			if isbn := r.PathValue("isbn"); isbn != "" {
				handleGet(db, w, r, isbn)
				return
			}
			handleList(db, w, r)

		case http.MethodPost:
			handleCreate(db, w, r)

		case http.MethodPut:
			isbn := r.PathValue("isbn")
			if isbn == "" {
				httpx.ErrorJSON(w, http.StatusBadRequest, "missing isbn")
				return
			}
			handleUpdate(db, w, r, isbn)

		case http.MethodDelete:
			isbn := r.PathValue("isbn")
			if isbn == "" {
				httpx.ErrorJSON(w, http.StatusBadRequest, "missing isbn")
				return
			}
			handleDelete(db, w, r, isbn)

		case http.MethodOptions:
			// Cors answers cross-origin preflight before this handler;
			// same-origin OPTIONS still gets the allowed methods here.
			w.Header().Set("Allow", allowBooks)
			w.WriteHeader(http.StatusNoContent)

		default:
			w.Header().Set("Allow", allowBooks)
			httpx.ErrorJSON(w, http.StatusMethodNotAllowed, "method not allowed")
		}
	}
}
