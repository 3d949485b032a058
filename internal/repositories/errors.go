package repositories

import "errors"

// Sentinel errors shared by every repository implementation. Services map
// these onto the API error taxonomy.
var (
	ErrNotFound  = errors.New("record not found")
	ErrDuplicate = errors.New("record already exists")
)
