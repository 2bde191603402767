package store

import (
	"errors"

	sqlite "modernc.org/sqlite"
	sqlite3 "modernc.org/sqlite/lib"
)

var (
	// ErrNotFound is returned when no record matches the given ID.
	ErrNotFound = errors.New("not found")

	// ErrCodeConflict is returned when an item code is already taken.
	ErrCodeConflict = errors.New("item code already exists")
)

// isUniqueViolation reports whether err is a SQLite unique-constraint
// failure. The insert or update it came from was rejected as a whole, so
// the store is unchanged.
func isUniqueViolation(err error) bool {
	var serr *sqlite.Error
	return errors.As(err, &serr) && serr.Code() == sqlite3.SQLITE_CONSTRAINT_UNIQUE
}
