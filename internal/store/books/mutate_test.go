package books_test

import (
	"errors"
	"regexp"
	"testing"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/jackc/pgx/v5/pgconn"
	storebooks "github.com/okarpov/bookshelf-api/internal/store/books"
)

const insertBooksSQL = `INSERT INTO books (isbn, amazon_url, author, language, pages, publisher, title, year) VALUES ($1, $2, $3, $4, $5, $6, $7, $8) RETURNING isbn, amazon_url, author, language, pages, publisher, title, year`

func TestCreate_OK(t *testing.T) {
	db, mock, err := sqlmock.New()
	if err != nil {
		t.Fatal(err)
	}
	defer db.Close()

	b := sampleBook()
	mock.ExpectQuery(regexp.QuoteMeta(insertBooksSQL)).
		WithArgs(b.ISBN, b.AmazonURL, b.Author, b.Language, b.Pages, b.Publisher, b.Title, b.Year).
		WillReturnRows(addBookRow(sqlmock.NewRows(bookCols), b))

	got, err := storebooks.Create(t.Context(), db, b)
	if err != nil {
		t.Fatalf("unexpected err: %v", err)
	}
	if got != b {
		t.Fatalf("want %+v; got %+v", b, got)
	}
	if err := mock.ExpectationsWereMet(); err != nil {
		t.Fatal(err)
	}
}

func TestCreate_DuplicateISBN(t *testing.T) {
	db, mock, err := sqlmock.New()
	if err != nil {
		t.Fatal(err)
	}
	defer db.Close()

	b := sampleBook()
	mock.ExpectQuery(regexp.QuoteMeta(insertBooksSQL)).
		WithArgs(b.ISBN, b.AmazonURL, b.Author, b.Language, b.Pages, b.Publisher, b.Title, b.Year).
		WillReturnError(&pgconn.PgError{Code: "23505", ConstraintName: "books_pkey"})

	_, err = storebooks.Create(t.Context(), db, b)
	if !errors.Is(err, storebooks.ErrConflict) {
		t.Fatalf("want ErrConflict; got %v", err)
	}
	if err := mock.ExpectationsWereMet(); err != nil {
		t.Fatal(err)
	}
}

func TestCreate_MissingColumn(t *testing.T) {
	db, mock, err := sqlmock.New()
	if err != nil {
		t.Fatal(err)
	}
	defer db.Close()

	b := sampleBook()
	mock.ExpectQuery(regexp.QuoteMeta(insertBooksSQL)).
		WithArgs(b.ISBN, b.AmazonURL, b.Author, b.Language, b.Pages, b.Publisher, b.Title, b.Year).
		WillReturnError(&pgconn.PgError{Code: "23502", ColumnName: "publisher"})

	_, err = storebooks.Create(t.Context(), db, b)
	if !errors.Is(err, storebooks.ErrInvalid) {
		t.Fatalf("want ErrInvalid; got %v", err)
	}
	if err := mock.ExpectationsWereMet(); err != nil {
		t.Fatal(err)
	}
}

func TestUpdate_SingleField(t *testing.T) {
	db, mock, err := sqlmock.New()
	if err != nil {
		t.Fatal(err)
	}
	defer db.Close()

	want := sampleBook()
	want.Pages = 300

	mock.ExpectQuery(regexp.QuoteMeta(
		`UPDATE books SET pages = $1 WHERE isbn = $2 RETURNING isbn, amazon_url, author, language, pages, publisher, title, year`,
	)).
		WithArgs(300, "0691161518").
		WillReturnRows(addBookRow(sqlmock.NewRows(bookCols), want))

	pages := 300
	got, err := storebooks.Update(t.Context(), db, "0691161518", storebooks.UpdateBookDTO{Pages: &pages})
	if err != nil {
		t.Fatalf("unexpected err: %v", err)
	}
	if got.Pages != 300 || got.Title != want.Title {
		t.Fatalf("unexpected result: %+v", got)
	}
	if err := mock.ExpectationsWereMet(); err != nil {
		t.Fatal(err)
	}
}

func TestUpdate_MultipleFields(t *testing.T) {
	db, mock, err := sqlmock.New()
	if err != nil {
		t.Fatal(err)
	}
	defer db.Close()

	want := sampleBook()
	want.Author = "M. Lane"
	want.Year = 2018

	// SET columns follow DTO field order: author before year.
	mock.ExpectQuery(regexp.QuoteMeta(
		`UPDATE books SET author = $1, year = $2 WHERE isbn = $3 RETURNING isbn, amazon_url, author, language, pages, publisher, title, year`,
	)).
		WithArgs("M. Lane", 2018, "0691161518").
		WillReturnRows(addBookRow(sqlmock.NewRows(bookCols), want))

	author, year := "M. Lane", 2018
	got, err := storebooks.Update(t.Context(), db, "0691161518", storebooks.UpdateBookDTO{Author: &author, Year: &year})
	if err != nil {
		t.Fatalf("unexpected err: %v", err)
	}
	if got != want {
		t.Fatalf("want %+v; got %+v", want, got)
	}
	if err := mock.ExpectationsWereMet(); err != nil {
		t.Fatal(err)
	}
}

func TestUpdate_NoFieldsIsReRead(t *testing.T) {
	db, mock, err := sqlmock.New()
	if err != nil {
		t.Fatal(err)
	}
	defer db.Close()

	want := sampleBook()
	mock.ExpectQuery(regexp.QuoteMeta(
		`SELECT isbn, amazon_url, author, language, pages, publisher, title, year FROM books WHERE isbn = $1`,
	)).
		WithArgs("0691161518").
		WillReturnRows(addBookRow(sqlmock.NewRows(bookCols), want))

	got, err := storebooks.Update(t.Context(), db, "0691161518", storebooks.UpdateBookDTO{})
	if err != nil {
		t.Fatalf("unexpected err: %v", err)
	}
	if got != want {
		t.Fatalf("want %+v; got %+v", want, got)
	}
	if err := mock.ExpectationsWereMet(); err != nil {
		t.Fatal(err)
	}
}

func TestUpdate_NotFound(t *testing.T) {
	db, mock, err := sqlmock.New()
	if err != nil {
		t.Fatal(err)
	}
	defer db.Close()

	mock.ExpectQuery(regexp.QuoteMeta(
		`UPDATE books SET pages = $1 WHERE isbn = $2 RETURNING isbn, amazon_url, author, language, pages, publisher, title, year`,
	)).
		WithArgs(300, "0000000000").
		WillReturnRows(sqlmock.NewRows(bookCols))

	pages := 300
	_, err = storebooks.Update(t.Context(), db, "0000000000", storebooks.UpdateBookDTO{Pages: &pages})
	if !errors.Is(err, storebooks.ErrNotFound) {
		t.Fatalf("want ErrNotFound; got %v", err)
	}
	if err := mock.ExpectationsWereMet(); err != nil {
		t.Fatal(err)
	}
}
