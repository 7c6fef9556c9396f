package repository

import "errors"

// Sentinel kinds for persistence errors.
var (
	ErrNotFound = errors.New("document not found")
	ErrCorrupt  = errors.New("document is corrupt")
	ErrRead     = errors.New("read document failed")
	ErrWrite    = errors.New("write document failed")
)
