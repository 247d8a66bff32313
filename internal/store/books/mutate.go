package books

import (
	"context"
	"database/sql"
	"errors"
	"strconv"
	"strings"
)

// Create inserts a new book and returns the stored row.
// Duplicate isbn maps to ErrConflict, missing columns to ErrInvalid.
func Create(ctx context.Context, db *sql.DB, b Book) (Book, error) {
	var out Book
	err := db.QueryRowContext(ctx,
		"INSERT INTO books ("+bookColumns+") VALUES ($1, $2, $3, $4, $5, $6, $7, $8) RETURNING "+bookColumns,
		b.ISBN, b.AmazonURL, b.Author, b.Language, b.Pages, b.Publisher, b.Title, b.Year).
		Scan(&out.ISBN, &out.AmazonURL, &out.Author, &out.Language, &out.Pages, &out.Publisher, &out.Title, &out.Year)
	if err != nil {
		return Book{}, mapPGError(err)
	}
	return out, nil
}

// Update merges the supplied fields into the row for isbn and returns the
// full updated book. ErrNotFound if the isbn is absent. An empty DTO is a
// plain re-read.
func Update(ctx context.Context, db *sql.DB, isbn string, dto UpdateBookDTO) (Book, error) {
	set := []string{}
	args := []any{}
	add := func(col string, v any) {
		args = append(args, v)
		set = append(set, col+" = $"+strconv.Itoa(len(args)))
	}

	if dto.AmazonURL != nil {
		add("amazon_url", *dto.AmazonURL)
	}
	if dto.Author != nil {
		add("author", *dto.Author)
	}
	if dto.Language != nil {
		add("language", *dto.Language)
	}
	if dto.Pages != nil {
		add("pages", *dto.Pages)
	}
	if dto.Publisher != nil {
		add("publisher", *dto.Publisher)
	}
	if dto.Title != nil {
		add("title", *dto.Title)
	}
	if dto.Year != nil {
		add("year", *dto.Year)
	}

	if len(set) == 0 {
		return FindOne(ctx, db, isbn)
	}

	args = append(args, isbn)
	q := "UPDATE books SET " + strings.Join(set, ", ") +
		" WHERE isbn = $" + strconv.Itoa(len(args)) + " RETURNING " + bookColumns

	var out Book
	err := db.QueryRowContext(ctx, q, args...).
		Scan(&out.ISBN, &out.AmazonURL, &out.Author, &out.Language, &out.Pages, &out.Publisher, &out.Title, &out.Year)
	if errors.Is(err, sql.ErrNoRows) {
		return Book{}, ErrNotFound
	}
	if err != nil {
		return Book{}, mapPGError(err)
	}
	return out, nil
}
