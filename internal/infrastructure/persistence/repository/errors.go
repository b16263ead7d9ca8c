package repository

import (
	"errors"
	"strings"
)

// ErrSchemaMissing means a required table does not exist yet, usually
// because migrations have not run against this database file.
var ErrSchemaMissing = errors.New("database schema not configured")

// schemaMissing reports whether a sqlite error indicates an absent table.
func schemaMissing(err error) bool {
	return err != nil && strings.Contains(err.Error(), "no such table")
}
