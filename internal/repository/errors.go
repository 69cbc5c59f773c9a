package repository

import (
	"errors"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
)

// Domain errors for tuition persistence.
var (
	ErrNotFound  = errors.New("tuition not found")
	ErrDuplicate = errors.New("tuition already exists")
)

const pgDuplicateKeyCode = "23505"

// mapError translates pgx errors to the sentinels above.
// Other errors are returned unchanged.
func mapError(err error) error {
	if err == nil {
		return nil
	}

	if errors.Is(err, pgx.ErrNoRows) {
		return ErrNotFound
	}

	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) && pgErr.Code == pgDuplicateKeyCode {
		return ErrDuplicate
	}

	return err
}
