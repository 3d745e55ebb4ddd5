// Package apierror provides standardized error response structures for the API.
// All errors returned to clients go through this package to ensure consistency
// and to prevent leaking internal details (stack traces, DB errors, etc.).
package apierror

import "fmt"

// APIError is the canonical error envelope for all 4xx/5xx HTTP responses.
type APIError struct {
	Detail string `json:"detail"`
}

func New(msg string) *APIError {
	return &APIError{Detail: msg}
}

func (e *APIError) Error() string { return e.Detail }

// ValidationError wraps one or more field errors.
type ValidationError struct {
	Detail string            `json:"detail"`
	Fields map[string]string `json:"fields"`
}

func NewValidation(fields map[string]string) *ValidationError {
	return &ValidationError{Detail: "validation error", Fields: fields}
}

// Invalid builds a single-field validation failure. Services use it to reject
// bad input before anything is persisted.
func Invalid(field, message string) *ValidationError {
	return &ValidationError{
		Detail: message,
		Fields: map[string]string{field: message},
	}
}

func (e *ValidationError) Error() string { return e.Detail }

// InsufficientStock is returned when a sale would drive a variant's stock
// below zero. Never clamped, never retried.
type InsufficientStock struct {
	Requested int `json:"requested"`
	Available int `json:"available"`
}

func (e *InsufficientStock) Error() string {
	return fmt.Sprintf("insufficient stock: requested %d, available %d", e.Requested, e.Available)
}

// InvalidStatus is returned when an order status value is not one of the
// recognized states.
type InvalidStatus struct {
	Value string `json:"value"`
}

func (e *InvalidStatus) Error() string {
	return fmt.Sprintf("invalid status %q", e.Value)
}

// InvalidTransition is returned when both states are recognized but the
// transition table does not permit moving between them.
type InvalidTransition struct {
	From string `json:"from"`
	To   string `json:"to"`
}

func (e *InvalidTransition) Error() string {
	return fmt.Sprintf("transition from %q to %q is not permitted", e.From, e.To)
}

// IntegrityViolation covers unique-key collisions and restrict-delete
// conflicts. Surfaced as a 409, never auto-retried.
type IntegrityViolation struct {
	Detail string `json:"detail"`
}

func Conflict(format string, args ...interface{}) *IntegrityViolation {
	return &IntegrityViolation{Detail: fmt.Sprintf(format, args...)}
}

func (e *IntegrityViolation) Error() string { return e.Detail }

// NotFound marks a missing entity so handlers can answer 404 instead of a
// generic 400.
type NotFound struct {
	Entity string `json:"entity"`
}

func NewNotFound(entity string) *NotFound {
	return &NotFound{Entity: entity}
}

func (e *NotFound) Error() string { return e.Entity + " not found" }
