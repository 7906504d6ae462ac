package repo

import "errors"

// ErrNotFound indicates missing entities in the matching repositories.
var ErrNotFound = errors.New("matching: not found")
