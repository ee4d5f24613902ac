package repository

import "errors"

var (
	ErrDuplicateID    = errors.New("record with the same id already exists")
	ErrUnknownPatient = errors.New("consultation references an unknown patient")
	ErrStoreConflict  = errors.New("concurrent write to collection, retries exhausted")
)
