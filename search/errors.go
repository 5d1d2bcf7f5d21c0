package search

import "errors"

var (
	// ErrInvalidArgument reports malformed input: a negative or duplicate
	// document id, a control byte in text or query, a malformed query token,
	// or an invalid stop word.
	ErrInvalidArgument = errors.New("invalid argument")

	// ErrOutOfRange reports an id-based lookup against a document that does
	// not exist, or a positional index past the end.
	ErrOutOfRange = errors.New("out of range")
)
