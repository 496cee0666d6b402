package session

import "errors"

var (
	// ErrInvalidInput is returned for empty or whitespace-only user submissions.
	ErrInvalidInput = errors.New("user input is empty")
	// ErrEmptyModelTurn is returned when a model reply carries no text.
	ErrEmptyModelTurn = errors.New("model turn is empty")
	// ErrEmptyPersona is returned when either persona seed text is blank.
	ErrEmptyPersona = errors.New("persona seed is empty")
)
