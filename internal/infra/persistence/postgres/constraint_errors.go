package postgres

import (
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/pkg/errors"
)

// PostgreSQL SQLSTATE codes for the constraint classes the repositories
// branch on.
const (
	pgCodeUniqueViolation     = "23505"
	pgCodeForeignKeyViolation = "23503"
)

// The helpers inspect the raw pgconn error rather than GORM's translated
// sentinels: translation collapses the driver error into a bare sentinel and
// drops the constraint name, so it stays disabled on the client.
func isUniqueConstraintViolation(err error) bool {
	var pgErr *pgconn.PgError

	return errors.As(err, &pgErr) && pgErr.Code == pgCodeUniqueViolation
}

func isForeignKeyConstraintViolation(err error) bool {
	var pgErr *pgconn.PgError

	return errors.As(err, &pgErr) && pgErr.Code == pgCodeForeignKeyViolation
}

// violatesConstraint reports whether the error violates the named constraint
// or unique index. This is how a duplicate username is told apart from a
// duplicate email.
func violatesConstraint(err error, constraint string) bool {
	var pgErr *pgconn.PgError

	return errors.As(err, &pgErr) && pgErr.ConstraintName == constraint
}
