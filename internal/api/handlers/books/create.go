package books

import (
	"database/sql"
	"net/http"

	"github.com/okarpov/bookshelf-api/internal/api/apperr"
	"github.com/okarpov/bookshelf-api/internal/api/httpx"
	storebooks "github.com/okarpov/bookshelf-api/internal/store/books"
	"github.com/okarpov/bookshelf-api/internal/validate"
)

func handleCreate(db *sql.DB, w http.ResponseWriter, r *http.Request) {
	defer r.Body.Close()

	var in validate.CreateBook
	if msgs := validate.DecodeJSON(r.Body, &in); len(msgs) > 0 {
		apperr.Respond(w, r, &apperr.ValidationError{Messages: msgs})
		return
	}

	b := storebooks.Book{
		ISBN:      *in.ISBN,
		AmazonURL: *in.AmazonURL,
		Author:    *in.Author,
		Language:  *in.Language,
		Pages:     *in.Pages,
		Publisher: *in.Publisher,
		Title:     *in.Title,
		Year:      *in.Year,
	}
	created, err := storebooks.Create(r.Context(), db, b)
	if err != nil {
		apperr.Respond(w, r, err)
		return
	}
	httpx.WriteJSON(w, http.StatusCreated, map[string]any{"book": created})
}
