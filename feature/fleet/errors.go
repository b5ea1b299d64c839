package fleet

import "errors"

// Request failure kinds. Every error returned by Service.Reconcile wraps one
// of these; the handler maps them to HTTP status codes.
var (
	ErrBadRequest    = errors.New("bad request")
	ErrNotFound      = errors.New("not found")
	ErrUpstream      = errors.New("upstream failure")
	ErrInvalidFormat = errors.New("invalid format")
)
