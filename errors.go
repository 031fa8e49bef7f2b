package docdex

import "errors"

// ErrIndexNotFound is returned by query operations that reference a
// collection which has never been written to. It is a normal outcome, not
// a system failure; callers surface it as a structured not-found payload.
var ErrIndexNotFound = errors.New("index not found")
