package books

import (
	"context"
	"database/sql"
)

// Remove deletes the row for isbn. ErrNotFound if nothing was deleted.
func Remove(ctx context.Context, db *sql.DB, isbn string) error {
	res, err := db.ExecContext(ctx, `DELETE FROM books WHERE isbn = $1`, isbn)
	if err != nil {
		return err
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return ErrNotFound
	}
	return nil
}
