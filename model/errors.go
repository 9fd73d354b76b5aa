package model

import "errors"

// Store-level sentinel errors shared by every repository implementation.
var (
	ErrNotFound  = errors.New("record not found")
	ErrDuplicate = errors.New("duplicate record")
)
