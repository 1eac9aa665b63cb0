package frontend

import (
	"errors"
	"fmt"
)

var (
	// ErrNotFound is returned when the requested item does not exist.
	ErrNotFound = errors.New("item not found")

	// ErrForbidden is returned when the current user may not perform
	// the operation, e.g. mutating a review owned by someone else.
	ErrForbidden = errors.New("operation not allowed")
)

// ValidationError reports malformed or incomplete input.
type ValidationError struct {
	Field  string
	Reason string
}

func (e *ValidationError) Error() string {
	if e.Field == "" {
		return e.Reason
	}
	return fmt.Sprintf("%s: %s", e.Field, e.Reason)
}

// ConflictError is raised when a basket plugin or service provider
// rejects an operation. Code is the provider error code, translated to
// a user-facing message by Error.
type ConflictError struct {
	Code string
}

var conflictMessages = map[string]string{
	"stock.out":        "The requested amount is not in stock",
	"coupon.invalid":   "The coupon code is invalid or expired",
	"coupon.duplicate": "The coupon code has already been redeemed",
	"price.changed":    "The product price has changed, please review your basket",
	"service.unavail":  "The chosen delivery or payment option is not available",
	"customer.exists":  "An account for this address already exists",
}

func (e *ConflictError) Error() string {
	if msg, ok := conflictMessages[e.Code]; ok {
		return msg
	}
	return "The operation conflicts with the current shop state"
}
