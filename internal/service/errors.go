package service

import "errors"

var (
	// ErrInvalid wraps input that the service refuses before touching the store.
	ErrInvalid = errors.New("invalid input")
	// ErrConflict is returned when a category name is already taken.
	ErrConflict = errors.New("conflict")
	// ErrNoQuestion is returned when no question matches the quiz filter.
	ErrNoQuestion = errors.New("no matching question")
)
