package service

import (
	"errors"
	"fmt"
)

var (
	// ErrInvalidOrderID is returned when an order ID is empty.
	ErrInvalidOrderID = errors.New("invalid order id")

	// ErrInvalidUserID is returned when a user UID is empty.
	ErrInvalidUserID = errors.New("invalid user id")

	// ErrInvalidPaymentMethod is returned when a payment method is not
	// one of the enumerated methods.
	ErrInvalidPaymentMethod = errors.New("invalid payment method")

	// ErrInvalidLeg is returned when an assignment leg is neither
	// "pickup" nor "delivery".
	ErrInvalidLeg = errors.New("invalid assignment leg")

	// ErrInvalidRole is returned when a user role is not one of the
	// enumerated roles.
	ErrInvalidRole = errors.New("invalid user role")

	// ErrNotADriver is returned when assigning a user that is not a
	// driver profile to an order leg.
	ErrNotADriver = errors.New("user is not a driver")

	// ErrOrderAlreadyDelivered is returned when delivering an order
	// that already has a delivery date.
	ErrOrderAlreadyDelivered = errors.New("order already delivered")

	// ErrOrderAlreadyCancelled is returned when cancelling an order
	// that already has a cancellation date.
	ErrOrderAlreadyCancelled = errors.New("order already cancelled")

	// ErrNoOrdersGiven is returned when a close/reopen batch carries no
	// order IDs.
	ErrNoOrdersGiven = errors.New("no order ids given")

	// ErrClosureInProgress is returned when another closure run holds
	// the closure lock.
	ErrClosureInProgress = errors.New("closure run already in progress")
)

// ValidationError reports a missing or malformed field at order or
// user build time. It is raised once, at the boundary; reads assume a
// previously validated record.
type ValidationError struct {
	Field  string
	Reason string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("invalid field %q: %s", e.Field, e.Reason)
}

// newValidationError builds a ValidationError for the given field.
func newValidationError(field, reason string) error {
	return &ValidationError{Field: field, Reason: reason}
}

// AsValidationError unwraps err as a *ValidationError if it is one.
func AsValidationError(err error) (*ValidationError, bool) {
	var ve *ValidationError
	if errors.As(err, &ve) {
		return ve, true
	}
	return nil, false
}
