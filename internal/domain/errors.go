package domain

import "errors"

// ErrNotFound is returned when a trip or step identifier does not resolve
// within the state tree.
// Handlers should map this to HTTP 404.
var ErrNotFound = errors.New("not found")

// ErrValidation is returned when input fails a business rule
// (e.g. saving a step without a resolved place).
// Handlers should map this to HTTP 400 or 422.
var ErrValidation = errors.New("validation error")

// ErrPrecondition is returned when an action is attempted without the state it
// needs, such as running an AI action before any step exists.
// Handlers should map this to HTTP 409 Conflict.
var ErrPrecondition = errors.New("precondition failed")
