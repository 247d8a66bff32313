package books

import (
	"errors"
	"fmt"
	"strings"

	"github.com/jackc/pgx/v5/pgconn"
	"golang.org/x/text/transform"
	"golang.org/x/text/unicode/norm"
)

const bookColumns = "isbn, amazon_url, author, language, pages, publisher, title, year"

// foldSearchTerm trims and NFC-composes the term so decomposed input
// (macOS clients tend to send NFD) still matches stored titles.
func foldSearchTerm(s string) string {
	s = strings.TrimSpace(s)
	if s == "" {
		return ""
	}
	out, _, err := transform.String(norm.NFC, s)
	if err != nil {
		return s
	}
	return out
}

// mapPGError rewraps well-known SQLSTATEs as store sentinels so handlers
// never have to look at driver errors.
func mapPGError(err error) error {
	var pg *pgconn.PgError
	if !errors.As(err, &pg) {
		return err
	}
	switch pg.Code {
	case "23505": // unique_violation
		return fmt.Errorf("%w: isbn already exists", ErrConflict)
	case "23502": // not_null_violation
		col := pg.ColumnName
		if col == "" {
			col = "field"
		}
		return fmt.Errorf("%w: %s is required", ErrInvalid, col)
	case "23514": // check_violation
		return fmt.Errorf("%w: constraint failed", ErrInvalid)
	}
	return err
}
