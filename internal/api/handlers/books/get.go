package books

import (
	"database/sql"
	"net/http"

	"github.com/okarpov/bookshelf-api/internal/api/apperr"
	"github.com/okarpov/bookshelf-api/internal/api/httpx"
	storebooks "github.com/okarpov/bookshelf-api/internal/store/books"
)

func handleGet(db *sql.DB, w http.ResponseWriter, r *http.Request, isbn string) {
	b, err := storebooks.FindOne(r.Context(), db, isbn)
	if err != nil {
		apperr.Respond(w, r, err)
		return
	}
	httpx.WriteJSON(w, http.StatusOK, map[string]any{"book": b})
}
