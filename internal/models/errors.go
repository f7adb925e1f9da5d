package models

import "errors"

// Domain errors shared by services and handlers.
var (
	ErrNotFound      = errors.New("entity not found")
	ErrInvalidStatus = errors.New("invalid status")
	ErrPersistence   = errors.New("persistence failure")
)
