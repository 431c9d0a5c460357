package postgres

import (
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5/pgconn"

	"github.com/hvillega/padron/store"
)

// mapError translates Postgres errors into the store taxonomy using
// SQLSTATE codes. Anything unrecognized is reported as a transport-level
// failure.
func mapError(err error) error {
	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) {
		switch pgErr.Code {
		case "23505": // unique_violation
			return fmt.Errorf("%w: %v", store.ErrUniqueViolation, err)
		case "23502", "23503", "23514", "22P02", "42703":
			// not_null, foreign_key, check violations, bad cast, undefined column
			return fmt.Errorf("%w: %v", store.ErrInvalid, err)
		}
	}
	return fmt.Errorf("%w: %v", store.ErrUnavailable, err)
}
