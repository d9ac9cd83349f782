// Package dberr maps raw Postgres driver errors onto the database error family
// of pkg/domain-errors. Both the pgx driver (pgconn.PgError) and lib/pq
// (pq.Error) are understood so stores do not care which driver is registered.
package dberr

import (
	"context"
	"database/sql/driver"
	"errors"
	"net"

	"github.com/jackc/pgx/v5/pgconn"
	"github.com/lib/pq"

	dErrors "voltid/pkg/domain-errors"
)

// Postgres SQLSTATE codes the persistence boundary distinguishes.
const (
	UniqueViolation     = "23505"
	ForeignKeyViolation = "23503"
	NotNullViolation    = "23502"
	CheckViolation      = "23514"
	UndefinedTable      = "42P01"
	classConnection     = "08"
	classIntegrity      = "23"
)

// Map converts err into a typed database error. Domain errors and nil pass
// through unchanged; unrecognized failures collapse to CodeInternal so driver
// details never reach clients.
func Map(err error) error {
	if err == nil {
		return nil
	}
	if _, ok := dErrors.As(err); ok {
		return err
	}
	if errors.Is(err, context.DeadlineExceeded) || errors.Is(err, context.Canceled) {
		return dErrors.Wrap(err, dErrors.CodeTimeout, "database operation timed out")
	}

	code, ok := sqlState(err)
	if !ok {
		if isConnectionError(err) {
			return dErrors.Wrap(err, dErrors.CodeDBConnection, "database connection failed")
		}
		return dErrors.Wrap(err, dErrors.CodeInternal, "database error")
	}

	switch {
	case code == UniqueViolation:
		return dErrors.Wrap(err, dErrors.CodeDBUniqueViolation, "record already exists")
	case code == ForeignKeyViolation:
		return dErrors.Wrap(err, dErrors.CodeDBFKViolation, "referenced record does not exist")
	case code == NotNullViolation:
		return dErrors.Wrap(err, dErrors.CodeDBNotNullViolation, "required field is missing")
	case code == UndefinedTable:
		return dErrors.Wrap(err, dErrors.CodeDBUndefinedRelation, "database relation missing")
	case len(code) >= 2 && code[:2] == classConnection:
		return dErrors.Wrap(err, dErrors.CodeDBConnection, "database connection failed")
	case len(code) >= 2 && code[:2] == classIntegrity:
		return dErrors.Wrap(err, dErrors.CodeDBConstraint, "constraint violation")
	default:
		return dErrors.Wrap(err, dErrors.CodeInternal, "database error")
	}
}

// Transaction wraps begin/commit failures that carry no more specific code.
func Transaction(err error, msg string) error {
	mapped := Map(err)
	if dErrors.HasCode(mapped, dErrors.CodeInternal) {
		return dErrors.Wrap(err, dErrors.CodeDBTransaction, msg)
	}
	return mapped
}

// IsUniqueViolation reports whether err is (or maps to) a unique violation.
func IsUniqueViolation(err error) bool {
	if dErrors.HasCode(err, dErrors.CodeDBUniqueViolation) {
		return true
	}
	code, ok := sqlState(err)
	return ok && code == UniqueViolation
}

// Constraint returns the violated constraint name when the driver reports one.
func Constraint(err error) string {
	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) {
		return pgErr.ConstraintName
	}
	var pqErr *pq.Error
	if errors.As(err, &pqErr) {
		return pqErr.Constraint
	}
	return ""
}

func sqlState(err error) (string, bool) {
	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) {
		return pgErr.Code, true
	}
	var pqErr *pq.Error
	if errors.As(err, &pqErr) {
		return string(pqErr.Code), true
	}
	return "", false
}

func isConnectionError(err error) bool {
	if errors.Is(err, driver.ErrBadConn) {
		return true
	}
	var netErr net.Error
	if errors.As(err, &netErr) {
		return true
	}
	var connErr *pgconn.ConnectError
	return errors.As(err, &connErr)
}
