package database

import (
	"errors"

	"github.com/lib/pq"
)

var (
	// ErrNotFound means the referenced row does not exist.
	ErrNotFound = errors.New("not found")
	// ErrDuplicateCode means the unique student code is already taken.
	ErrDuplicateCode = errors.New("code already exists")
)

// isUniqueViolation reports whether err is the PostgreSQL unique_violation
// error (SQLSTATE 23505).
func isUniqueViolation(err error) bool {
	var pqErr *pq.Error
	if errors.As(err, &pqErr) {
		return pqErr.Code == "23505"
	}
	return false
}
