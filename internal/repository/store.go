package repository

import (
	"context"

	"github.com/iliyamo/smart-parking/internal/model"
)

// SlotStore is the persistence contract the slot inventory service
// works against.  The MySQL implementation is SlotRepo; tests provide
// an in-memory fake.
type SlotStore interface {
	// Create inserts a new Available slot.  The code must already be
	// normalized to uppercase.  Returns ErrDuplicateSlot when the code
	// is taken.  On success the slot's ID is populated.
	Create(ctx context.Context, s *model.Slot) error
	// GetByID returns a slot or ErrSlotNotFound.
	GetByID(ctx context.Context, id uint64) (*model.Slot, error)
	// Update applies a partial update.  Nil fields are left untouched.
	// Returns ErrSlotNotFound or ErrDuplicateSlot.
	Update(ctx context.Context, id uint64, code *string, category *string, floor *uint32) error
	// Delete removes a slot, failing with ErrSlotInUse while an active
	// booking references it and ErrSlotNotFound when it does not exist.
	Delete(ctx context.Context, id uint64) error
	// List returns every slot ordered by code.
	List(ctx context.Context) ([]model.Slot, error)
	// ListAvailable returns slots with status Available ordered by code.
	ListAvailable(ctx context.Context) ([]model.Slot, error)
	// Stats returns occupancy counters for the whole inventory.
	Stats(ctx context.Context) (model.SlotStats, error)
}

// BookingStore is the persistence contract of the booking ledger.
// Book and Complete are the two state transitions; both must be atomic
// with the paired slot status flip so the ledger and the inventory can
// never disagree.
type BookingStore interface {
	// CountActiveByUser returns the number of active bookings owned by
	// the user (0 or 1 when the invariants hold).
	CountActiveByUser(ctx context.Context, userID uint64) (int, error)
	// Book inserts the booking as Active and flips its slot to
	// Occupied in one transaction, re-checking the slot status and the
	// user's active-booking count under lock.  Returns
	// ErrSlotNotFound, ErrSlotUnavailable or ErrDuplicateActiveBooking.
	// On success the booking's ID and SlotCode are populated.
	Book(ctx context.Context, b *model.Booking) error
	// GetActiveByIDForUser loads an active booking owned by the user,
	// with the slot code joined in.  Any miss – wrong id, wrong owner,
	// or a booking already completed – is ErrBookingNotFound.
	GetActiveByIDForUser(ctx context.Context, bookingID, userID uint64) (*model.Booking, error)
	// Complete marks the booking Completed, stamping checkout time and
	// actual cost, and flips its slot back to Available in one
	// transaction.  Returns ErrBookingNotFound when the booking is not
	// active anymore, leaving everything untouched.
	Complete(ctx context.Context, bookingID, slotID uint64, checkoutTime string, actualCost float64) error
	// ActiveByUser returns the user's active booking joined with slot
	// details, or ErrBookingNotFound.
	ActiveByUser(ctx context.Context, userID uint64) (*model.ActiveBookingDetail, error)
	// ListByUser returns the user's booking history newest first,
	// optionally filtered by status ("" means all).
	ListByUser(ctx context.Context, userID uint64, status string) ([]model.BookingDetail, error)
	// ListActive returns all active bookings across users (admin view).
	ListActive(ctx context.Context) ([]model.ActiveBookingRow, error)
	// ListAll returns every booking newest first (admin view).
	ListAll(ctx context.Context) ([]model.BookingRow, error)
	// Stats returns ledger counters.
	Stats(ctx context.Context) (model.BookingStats, error)
}

// Compile-time checks that the MySQL repositories satisfy the store
// contracts consumed by the service layer.
var (
	_ SlotStore    = (*SlotRepo)(nil)
	_ BookingStore = (*BookingRepo)(nil)
)
