package apperrors

import "errors"

// ErrNotFound indicates that a requested resource could not be found.
var ErrNotFound = errors.New("resource not found")

// ErrValidation indicates that input data failed validation checks.
var ErrValidation = errors.New("validation error")

// ErrDuplicate indicates that an attempt was made to create a resource that already exists.
var ErrDuplicate = errors.New("resource already exists")

// ErrInvariantViolation indicates that an operation would break a bookkeeping
// invariant, most notably a transaction whose debit and credit postings do not
// balance in base currency. Nothing is persisted when this is returned.
var ErrInvariantViolation = errors.New("invariant violation")

// ErrOverReceive indicates that a goods receipt would push an item's received
// quantity above its ordered quantity.
var ErrOverReceive = errors.New("over-receive not allowed")

// ErrState indicates that an operation was attempted against a resource in a
// terminal or otherwise incompatible status.
var ErrState = errors.New("operation not allowed in current state")
