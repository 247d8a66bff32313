package books

import (
	"database/sql"
	"net/http"

	"github.com/okarpov/bookshelf-api/internal/api/apperr"
	"github.com/okarpov/bookshelf-api/internal/api/httpx"
	storebooks "github.com/okarpov/bookshelf-api/internal/store/books"
)

func handleDelete(db *sql.DB, w http.ResponseWriter, r *http.Request, isbn string) {
	if err := storebooks.Remove(r.Context(), db, isbn); err != nil {
		apperr.Respond(w, r, err)
		return
	}
	httpx.WriteJSON(w, http.StatusOK, map[string]string{"message": "Book deleted"})
}
