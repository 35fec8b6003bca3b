package storage

import "errors"

// ErrNotFound is returned by lookup operations when no record matches.
var ErrNotFound = errors.New("record not found")
