package books

import (
	"bytes"
	"database/sql"
	"encoding/json"
	"io"
	"net/http"

	"github.com/okarpov/bookshelf-api/internal/api/apperr"
	"github.com/okarpov/bookshelf-api/internal/api/httpx"
	storebooks "github.com/okarpov/bookshelf-api/internal/store/books"
	"github.com/okarpov/bookshelf-api/internal/validate"
)

func handleUpdate(db *sql.DB, w http.ResponseWriter, r *http.Request, isbn string) {
	defer r.Body.Close()

	body, err := io.ReadAll(r.Body)
	if err != nil {
		httpx.ErrorJSON(w, http.StatusBadRequest, "invalid JSON")
		return
	}

	// The key is immutable, so an isbn in the body is rejected before the
	// schema ever runs.
	var probe map[string]json.RawMessage
	if err := json.Unmarshal(body, &probe); err != nil {
		httpx.ErrorJSON(w, http.StatusBadRequest, "invalid JSON")
		return
	}
	if _, ok := probe["isbn"]; ok {
		httpx.ErrorJSON(w, http.StatusBadRequest, "Not allowed")
		return
	}

	var in validate.UpdateBook
	if msgs := validate.DecodeJSON(bytes.NewReader(body), &in); len(msgs) > 0 {
		apperr.Respond(w, r, &apperr.ValidationError{Messages: msgs})
		return
	}

	dto := storebooks.UpdateBookDTO{
		AmazonURL: in.AmazonURL,
		Author:    in.Author,
		Language:  in.Language,
		Pages:     in.Pages,
		Publisher: in.Publisher,
		Title:     in.Title,
		Year:      in.Year,
	}
	b, err := storebooks.Update(r.Context(), db, isbn, dto)
	if err != nil {
		apperr.Respond(w, r, err)
		return
	}
	httpx.WriteJSON(w, http.StatusOK, map[string]any{"book": b})
}
