package kvgate

import "errors"

var (
	// ErrWrongArity is returned when a command receives the wrong number of arguments
	ErrWrongArity = errors.New("wrong number of arguments")
	// ErrInvalidURL is returned when an outbound target does not parse as an absolute URL
	ErrInvalidURL = errors.New("invalid URL format")
	// ErrUnknownCommand is returned when a dispatched command name is not registered
	ErrUnknownCommand = errors.New("unknown command")
	// ErrBackendUnavailable is returned when the store connection is missing or cannot be opened
	ErrBackendUnavailable = errors.New("backend unavailable")
)
