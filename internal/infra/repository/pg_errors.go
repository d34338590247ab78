package repository

import (
	"errors"

	"github.com/jackc/pgx/v5/pgconn"
)

// Postgres SQLSTATE
const (
	pgLockNotAvailable    = "55P03" // lock_timeout超過
	pgForeignKeyViolation = "23503"
)

func pgErrCode(err error) string {
	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) {
		return pgErr.Code
	}
	return ""
}

func isLockTimeout(err error) bool {
	return pgErrCode(err) == pgLockNotAvailable
}

func isForeignKeyViolation(err error) bool {
	return pgErrCode(err) == pgForeignKeyViolation
}
