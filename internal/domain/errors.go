package domain

import "errors"

var (
	// ErrDirNotFound is returned when a directory to list does not exist.
	ErrDirNotFound = errors.New("directory not found")

	// ErrOpenFile is returned when a file cannot be opened or read.
	ErrOpenFile = errors.New("failed to open file")

	// ErrMalformedJSON is returned when a file's contents are not valid JSON.
	ErrMalformedJSON = errors.New("malformed JSON")

	// ErrMalformedLog is returned when a server log does not follow the DAIDE layout.
	ErrMalformedLog = errors.New("malformed game log")

	// ErrOutputConflict is returned when two logs would be written to the same result file.
	ErrOutputConflict = errors.New("result file claimed by two logs")
)
