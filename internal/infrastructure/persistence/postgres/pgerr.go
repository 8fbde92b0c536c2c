package postgres

import (
	"errors"

	"github.com/jackc/pgx/v5/pgconn"

	domerrors "github.com/tablero-app/tablero/internal/domain/errors"
)

const uniqueViolationCode = "23505"

// translateUnique converts a unique-constraint violation into the domain
// Conflict the pre-check would have raised, so two racing inserts observe the
// same outcome. Other errors pass through unchanged.
func translateUnique(err error, msg string) error {
	if err == nil {
		return nil
	}
	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) && pgErr.Code == uniqueViolationCode {
		return domerrors.Conflict(msg)
	}
	return err
}
