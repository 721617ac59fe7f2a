package postgres

import (
	"context"
	"database/sql"
	"database/sql/driver"
	"errors"
	"net"

	"github.com/lib/pq"
	ierr "github.com/talhahassan0005/Management-system-Amir-traders--sub002/internal/errors"
)

const (
	pqUniqueViolation = "23505"
	pqCheckViolation  = "23514"
)

// IsUnavailable reports whether err means the store could not be reached,
// as opposed to a store that answered with an error.
func IsUnavailable(err error) bool {
	if err == nil {
		return false
	}
	if errors.Is(err, driver.ErrBadConn) ||
		errors.Is(err, sql.ErrConnDone) ||
		errors.Is(err, context.DeadlineExceeded) {
		return true
	}

	var pqErr *pq.Error
	if errors.As(err, &pqErr) {
		switch pqErr.Code.Class() {
		case "08", "53":
			// connection exception, insufficient resources
			return true
		case "57":
			// operator intervention; 57014 is a cancelled statement, not an outage
			return pqErr.Code != "57014"
		}
		return false
	}

	var netErr net.Error
	return errors.As(err, &netErr)
}

// IsUniqueViolation reports a duplicate key error
func IsUniqueViolation(err error) bool {
	var pqErr *pq.Error
	return errors.As(err, &pqErr) && pqErr.Code == pqUniqueViolation
}

// IsCheckViolation reports a failed CHECK constraint
func IsCheckViolation(err error) bool {
	var pqErr *pq.Error
	return errors.As(err, &pqErr) && pqErr.Code == pqCheckViolation
}

// WrapError marks a driver error with the sentinel matching its cause
func WrapError(err error, hint string) error {
	if err == nil {
		return nil
	}

	b := ierr.WithError(err).WithHint(hint)
	switch {
	case IsUnavailable(err):
		return b.Mark(ierr.ErrStoreUnavailable)
	case IsUniqueViolation(err):
		return b.Mark(ierr.ErrAlreadyExists)
	case errors.Is(err, sql.ErrNoRows):
		return b.Mark(ierr.ErrNotFound)
	default:
		return b.Mark(ierr.ErrDatabase)
	}
}
