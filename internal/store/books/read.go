package books

import (
	"context"
	"database/sql"
	"errors"
	"strconv"
	"strings"
)

// FindAll returns every book matching f, sorted by title ascending.
// No match is an empty slice, not an error. Filter values are always
// bound as parameters.
func FindAll(ctx context.Context, db *sql.DB, f Filters) ([]Book, error) {
	where := []string{}
	args := []any{}
	i := 1

	if term := foldSearchTerm(f.SearchTerm); term != "" {
		where = append(where, "title ILIKE '%' || $"+strconv.Itoa(i)+" || '%'")
		args = append(args, term)
		i++
	}
	if f.MinPages != nil {
		where = append(where, "pages >= $"+strconv.Itoa(i))
		args = append(args, *f.MinPages)
		i++
	}
	if f.MaxPages != nil {
		where = append(where, "pages <= $"+strconv.Itoa(i))
		args = append(args, *f.MaxPages)
		i++
	}

	q := "SELECT " + bookColumns + " FROM books"
	if len(where) > 0 {
		q += " WHERE " + strings.Join(where, " AND ")
	}
	q += " ORDER BY title ASC"

	rows, err := db.QueryContext(ctx, q, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out := []Book{}
	for rows.Next() {
		var b Book
		if err := rows.Scan(&b.ISBN, &b.AmazonURL, &b.Author, &b.Language, &b.Pages, &b.Publisher, &b.Title, &b.Year); err != nil {
			return nil, err
		}
		out = append(out, b)
	}
	return out, rows.Err()
}

// FindOne returns the book for isbn, or ErrNotFound.
func FindOne(ctx context.Context, db *sql.DB, isbn string) (Book, error) {
	var b Book
	err := db.QueryRowContext(ctx,
		"SELECT "+bookColumns+" FROM books WHERE isbn = $1", isbn).
		Scan(&b.ISBN, &b.AmazonURL, &b.Author, &b.Language, &b.Pages, &b.Publisher, &b.Title, &b.Year)
	if errors.Is(err, sql.ErrNoRows) {
		return Book{}, ErrNotFound
	}
	if err != nil {
		return Book{}, err
	}
	return b, nil
}
