package cbbn

import "errors"

var (
	// ErrLibraryClosed indicates use of a Library after Close.
	ErrLibraryClosed = errors.New("cbbn: library closed")

	// ErrInvalidConfig indicates a config that failed validation or decoding.
	ErrInvalidConfig = errors.New("cbbn: invalid config")
)
