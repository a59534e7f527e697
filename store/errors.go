package store

import (
	"errors"

	"github.com/jackc/pgx/v5/pgconn"
)

var (
	// ErrNotFound is returned when the addressed row (or its year) does not exist.
	ErrNotFound = errors.New("not found")
	// ErrConflict is returned when a natural key is already taken.
	ErrConflict = errors.New("already exists")
	// ErrInvalid is returned for input the store refuses to persist.
	ErrInvalid = errors.New("invalid input")
)

const uniqueViolation = "23505"

func isUniqueViolation(err error) bool {
	var pgErr *pgconn.PgError
	return errors.As(err, &pgErr) && pgErr.Code == uniqueViolation
}
