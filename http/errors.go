package http

import "errors"

// ErrUnauthorized is the gate's rejection: every 401 written by the
// Basic-auth middleware carries its message as the error code, so callers
// and tests match on the sentinel rather than a literal.
var ErrUnauthorized = errors.New("unauthorized")
