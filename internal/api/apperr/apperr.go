// Package apperr is the single boundary between internal errors and HTTP
// responses. Handlers hand every failure to Respond; the mapping here is
// the only place that chooses statuses and bodies for them.
package apperr

import (
	"errors"
	"log"
	"net/http"
	"strings"

	"github.com/okarpov/bookshelf-api/internal/api/httpx"
	storebooks "github.com/okarpov/bookshelf-api/internal/store/books"
)

// ValidationError carries the itemized schema violation messages.
type ValidationError struct {
	Messages []string
}

func (e *ValidationError) Error() string {
	return "validation failed: " + strings.Join(e.Messages, "; ")
}

// Respond maps err to its response. Unrecognized errors become a generic
// 500 with the cause logged; driver detail never reaches the client.
func Respond(w http.ResponseWriter, r *http.Request, err error) {
	var ve *ValidationError
	switch {
	case errors.As(err, &ve):
		httpx.WriteJSON(w, http.StatusBadRequest, map[string]any{"errors": ve.Messages})
	case errors.Is(err, storebooks.ErrNotFound):
		httpx.ErrorJSON(w, http.StatusNotFound, "Book not found")
	case errors.Is(err, storebooks.ErrConflict):
		httpx.ErrorJSON(w, http.StatusConflict, "isbn already exists")
	case errors.Is(err, storebooks.ErrInvalid):
		httpx.ErrorJSON(w, http.StatusBadRequest, "invalid book data")
	default:
		log.Printf("[ERROR] RequestID=%s %s %s: %v",
			r.Header.Get("X-Request-ID"), r.Method, r.URL.Path, err)
		httpx.ErrorJSON(w, http.StatusInternalServerError, "Something went wrong")
	}
}
