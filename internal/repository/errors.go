package repository

import (
	"errors"
	"strings"

	"github.com/jackc/pgx/v5/pgconn"
)

// isUniqueViolation reports whether err is a unique-constraint failure from
// either supported driver. Concurrent inserts racing on a constraint must
// resolve to a deterministic duplicate error, so repositories funnel driver
// errors through this check before mapping them to domain sentinels.
func isUniqueViolation(err error) bool {
	if err == nil {
		return false
	}

	// Postgres: SQLSTATE 23505 (unique_violation)
	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) {
		return pgErr.Code == "23505"
	}

	// modernc sqlite reports constraint failures as plain error strings
	return strings.Contains(err.Error(), "UNIQUE constraint failed")
}
