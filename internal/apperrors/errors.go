package apperrors

import "errors"

// ErrNotFound indicates that a requested resource could not be found.
var ErrNotFound = errors.New("resource not found")

// ErrValidation indicates that input data failed validation checks.
var ErrValidation = errors.New("validation error")

// ErrDuplicate indicates that an attempt was made to create a resource that already exists.
var ErrDuplicate = errors.New("resource already exists")

// ErrUnauthorized indicates missing or invalid credentials.
var ErrUnauthorized = errors.New("unauthorized")

// ErrForbidden indicates the authenticated principal is not allowed to perform the action.
var ErrForbidden = errors.New("forbidden")

// ErrInvalidTransition indicates an attempted state change from a state that does not permit it
// (e.g. approving a link that is already approved).
var ErrInvalidTransition = errors.New("invalid state transition")

// ErrInsufficientPoints indicates a withdrawal was requested for more points than the
// journalist's current balance.
var ErrInsufficientPoints = errors.New("insufficient points")

// ErrInvalidStatus indicates the caller supplied an unrecognized target status.
var ErrInvalidStatus = errors.New("invalid status")

// ErrTxConflict indicates a database transaction failed due to a serialization or deadlock
// conflict. Callers may retry the operation once before surfacing ErrInternal.
var ErrTxConflict = errors.New("transaction conflict")

// ErrInternal indicates an unexpected failure in the storage layer or another dependency.
var ErrInternal = errors.New("internal error")
