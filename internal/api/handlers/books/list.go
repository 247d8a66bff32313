package books

import (
	"database/sql"
	"net/http"
	"net/url"
	"strconv"
	"strings"

	"github.com/okarpov/bookshelf-api/internal/api/apperr"
	"github.com/okarpov/bookshelf-api/internal/api/httpx"
	storebooks "github.com/okarpov/bookshelf-api/internal/store/books"
)

func handleList(db *sql.DB, w http.ResponseWriter, r *http.Request) {
	out, err := storebooks.FindAll(r.Context(), db, parseFilters(r.URL.Query()))
	if err != nil {
		apperr.Respond(w, r, err)
		return
	}
	httpx.WriteJSON(w, http.StatusOK, map[string]any{"books": out})
}

// parseFilters reads the supported query params. A numeric param that does
// not parse imposes no constraint rather than failing the request.
func parseFilters(q url.Values) storebooks.Filters {
	f := storebooks.Filters{SearchTerm: strings.TrimSpace(q.Get("search_term"))}
	if v, err := strconv.Atoi(strings.TrimSpace(q.Get("min_pages"))); err == nil {
		f.MinPages = &v
	}
	if v, err := strconv.Atoi(strings.TrimSpace(q.Get("max_pages"))); err == nil {
		f.MaxPages = &v
	}
	return f
}
