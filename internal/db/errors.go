package db

import (
	"context"
	"database/sql/driver"
	"errors"
	"net"
	"syscall"

	"github.com/go-sql-driver/mysql" // Driver error types
	"gorm.io/gorm"                   // GORM error set
)

// Kind is a closed classification of storage-layer failures.
// Handlers and the retry policy switch on kinds rather than matching
// message substrings.
type Kind int

// Failure kinds
const (
	KindOther      Kind = iota // Anything not covered below
	KindTransient              // Connection closed/reset/refused or timed out; worth retrying
	KindConstraint             // Unique or foreign key constraint violation
	KindNotFound               // Row does not exist
)

// MySQL error number for duplicate entry
const mysqlErrDuplicateEntry = 1062

// Classify maps an error from the storage layer onto a Kind
func Classify(err error) Kind {
	if err == nil {
		return KindOther
	}
	// GORM-level classifications first
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return KindNotFound
	}
	if errors.Is(err, gorm.ErrDuplicatedKey) || errors.Is(err, gorm.ErrForeignKeyViolated) {
		return KindConstraint
	}
	// Driver-level constraint violations
	var mysqlErr *mysql.MySQLError
	if errors.As(err, &mysqlErr) {
		if mysqlErr.Number == mysqlErrDuplicateEntry {
			return KindConstraint
		}
		return KindOther
	}
	// Connection-level failures are transient and retryable
	if errors.Is(err, driver.ErrBadConn) || errors.Is(err, mysql.ErrInvalidConn) {
		return KindTransient
	}
	if errors.Is(err, syscall.ECONNRESET) || errors.Is(err, syscall.ECONNREFUSED) {
		return KindTransient
	}
	if errors.Is(err, context.DeadlineExceeded) {
		return KindTransient
	}
	var netErr net.Error
	if errors.As(err, &netErr) {
		return KindTransient
	}
	return KindOther
}

// IsTransient reports whether the error is a retryable connection failure
func IsTransient(err error) bool {
	return Classify(err) == KindTransient
}

// IsConstraint reports whether the error is a uniqueness or FK violation
func IsConstraint(err error) bool {
	return Classify(err) == KindConstraint
}

// IsNotFound reports whether the error means the row does not exist
func IsNotFound(err error) bool {
	return Classify(err) == KindNotFound
}
