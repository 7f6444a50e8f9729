// Package service implements the slot inventory and booking ledger
// business rules on top of the repository store contracts.  Handlers
// translate the sentinel errors defined here and in the repository
// package into HTTP responses.
package service

import "errors"

// Validation failures: the caller's input is malformed and must be
// corrected before retrying.
var (
	// ErrInvalidSlotFormat flags a slot code outside [A-Z0-9-]{1,10}.
	ErrInvalidSlotFormat = errors.New("invalid slot code format")

	// ErrInvalidVehicleFormat flags a plate outside [A-Z0-9-]{4,15}.
	ErrInvalidVehicleFormat = errors.New("invalid vehicle number format")

	// ErrInvalidDateTime flags an explicit booking date/time that does
	// not parse as a calendar timestamp.
	ErrInvalidDateTime = errors.New("invalid date or time format")

	// ErrPastBookingTime flags an explicit booking time strictly
	// earlier than the current time.
	ErrPastBookingTime = errors.New("booking time cannot be in the past")
)
