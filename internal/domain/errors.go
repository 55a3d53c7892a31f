package domain

import "errors"

// Sentinel errors used across layers.
var (
	ErrNotFound       = errors.New("not found")
	ErrInvalidCatalog = errors.New("invalid catalog")
)
