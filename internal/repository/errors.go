// Package repository defines the persistence layer for slots, bookings
// and users together with the sentinel error values shared across
// repositories.  The sentinels cover the expected business-rule
// failures so that the service and handler layers can map them with
// errors.Is; anything else bubbling out of a repository is an
// unexpected storage error and is reported generically.
package repository

import "errors"

// ErrSlotNotFound is returned when a slot lookup yields no rows.
var ErrSlotNotFound = errors.New("slot not found")

// ErrDuplicateSlot is returned when creating or renaming a slot to a
// code that already exists.  Codes are normalized to uppercase before
// the uniqueness check, making it case-insensitive.
var ErrDuplicateSlot = errors.New("slot code already exists")

// ErrSlotInUse is returned when deleting a slot that an active booking
// still references.
var ErrSlotInUse = errors.New("slot has an active booking")

// ErrSlotUnavailable is returned when booking a slot whose status is
// not Available.
var ErrSlotUnavailable = errors.New("slot is not available")

// ErrDuplicateActiveBooking is returned when a user who already has an
// active booking attempts to create another.
var ErrDuplicateActiveBooking = errors.New("user already has an active booking")

// ErrBookingNotFound is returned when a booking lookup or checkout
// matches no active booking owned by the requesting user.  A booking
// that was already completed reports this same error, which makes a
// repeated checkout a no-op failure rather than a double charge.
var ErrBookingNotFound = errors.New("booking not found")

// ErrUserExists is returned when registering a username or email that
// is already taken.
var ErrUserExists = errors.New("username or email already exists")
