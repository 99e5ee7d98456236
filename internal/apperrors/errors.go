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

// ErrInvalidAmount indicates a non-positive or non-finite amount was passed to a payment operation.
var ErrInvalidAmount = errors.New("invalid amount")

// ErrPartialWrite indicates a multi-step persisted operation completed some but not all writes.
// It must never be silently swallowed: it means the ledger and the audit trail may disagree.
var ErrPartialWrite = errors.New("partial write")

// ErrTransient indicates the underlying store or service call failed due to connectivity.
// Safe to retry for read-only operations only.
var ErrTransient = errors.New("transient I/O error")
