package service

import (
	"context"
	"time"

	"github.com/iliyamo/smart-parking/internal/model"
	"github.com/iliyamo/smart-parking/internal/pricing"
	"github.com/iliyamo/smart-parking/internal/repository"
	"github.com/iliyamo/smart-parking/internal/utils"
)

// BookingService drives the booking lifecycle: the precondition chain
// on booking, and duration/cost settlement on checkout.  The clock is
// injectable so tests can pin timestamps.
type BookingService struct {
	slots    repository.SlotStore
	bookings repository.BookingStore
	now      func() time.Time
}

// NewBookingService constructs a BookingService using the wall clock.
func NewBookingService(slots repository.SlotStore, bookings repository.BookingStore) *BookingService {
	if slots == nil || bookings == nil {
		panic("nil store passed to NewBookingService")
	}
	return &BookingService{slots: slots, bookings: bookings, now: time.Now}
}

// WithClock overrides the service clock.  Test hook.
func (s *BookingService) WithClock(now func() time.Time) *BookingService {
	s.now = now
	return s
}

// Book reserves a slot for the user.  Preconditions are checked in a
// fixed order so the caller always learns about a bad plate before a
// missing slot, and about slot problems before their own duplicate
// booking: vehicle format, slot existence, slot availability, no other
// active booking, then the booking time itself.  The store re-checks
// the slot status and the duplicate rule under lock, so two concurrent
// requests cannot both pass.
//
// bookingTime is optional; empty means "now".  An unknown package key
// falls back to the hourly tariff.  The tariff's name, price and
// reference duration are frozen onto the booking row.
func (s *BookingService) Book(ctx context.Context, userID, slotID uint64, vehicle, packageKey, bookingTime string) (*model.Booking, error) {
	vehicle = utils.NormalizeCode(vehicle)
	if !utils.ValidVehicleNumber(vehicle) {
		return nil, ErrInvalidVehicleFormat
	}

	slot, err := s.slots.GetByID(ctx, slotID)
	if err != nil {
		return nil, err
	}
	if slot.Status != model.SlotAvailable {
		return nil, repository.ErrSlotUnavailable
	}

	active, err := s.bookings.CountActiveByUser(ctx, userID)
	if err != nil {
		return nil, err
	}
	if active > 0 {
		return nil, repository.ErrDuplicateActiveBooking
	}

	now := s.now()
	if bookingTime == "" {
		bookingTime = pricing.FormatTimestamp(now)
	} else {
		t, perr := pricing.ParseTimestamp(bookingTime)
		if perr != nil {
			return nil, ErrInvalidDateTime
		}
		// Stored timestamps have second precision, so compare against
		// the truncated clock: "right now" is not in the past.
		if t.Before(now.Truncate(time.Second)) {
			return nil, ErrPastBookingTime
		}
		bookingTime = pricing.FormatTimestamp(t)
	}

	tariff := pricing.Lookup(packageKey)
	b := &model.Booking{
		UserID:           userID,
		SlotID:           slotID,
		VehicleNumber:    vehicle,
		BookingTime:      bookingTime,
		PackageType:      tariff.Name,
		PackageCost:      tariff.Rate,
		ExpectedDuration: tariff.Hours,
	}
	if err := s.bookings.Book(ctx, b); err != nil {
		return nil, err
	}
	return b, nil
}

// CheckoutResult is the settlement summary returned when a booking is
// completed.  Times are rendered in the human-facing display layout.
type CheckoutResult struct {
	BookingID     uint64            `json:"booking_id"`
	SlotCode      string            `json:"slot_code"`
	VehicleNumber string            `json:"vehicle_number"`
	BookingTime   string            `json:"booking_time"`
	CheckoutTime  string            `json:"checkout_time"`
	Duration      pricing.Breakdown `json:"duration"`
	PackageType   string            `json:"package"`
	PackageCost   float64           `json:"package_cost"`
	ActualCost    float64           `json:"actual_cost"`
}

// Checkout settles the user's booking: it computes the stay duration
// from the stored booking time to now, prices it against the frozen
// package, marks the booking Completed and frees the slot.  Only the
// booking's owner can check it out, and only while it is Active;
// anything else is ErrBookingNotFound, which also makes a repeated
// checkout a clean no-op failure rather than a double charge.
func (s *BookingService) Checkout(ctx context.Context, bookingID, userID uint64) (*CheckoutResult, error) {
	b, err := s.bookings.GetActiveByIDForUser(ctx, bookingID, userID)
	if err != nil {
		return nil, err
	}

	start, err := pricing.ParseTimestamp(b.BookingTime)
	if err != nil {
		return nil, err
	}
	end := s.now()
	hours := pricing.Hours(start, end)
	cost := pricing.ActualCost(b.PackageCost, b.ExpectedDuration, hours)

	checkout := pricing.FormatTimestamp(end)
	if err := s.bookings.Complete(ctx, b.ID, b.SlotID, checkout, cost); err != nil {
		return nil, err
	}

	return &CheckoutResult{
		BookingID:     b.ID,
		SlotCode:      b.SlotCode,
		VehicleNumber: b.VehicleNumber,
		BookingTime:   pricing.FormatDisplay(start),
		CheckoutTime:  pricing.FormatDisplay(end),
		Duration:      pricing.Detailed(start, end),
		PackageType:   b.PackageType,
		PackageCost:   b.PackageCost,
		ActualCost:    cost,
	}, nil
}

// Active returns the user's current booking, or ErrBookingNotFound.
func (s *BookingService) Active(ctx context.Context, userID uint64) (*model.ActiveBookingDetail, error) {
	return s.bookings.ActiveByUser(ctx, userID)
}

// History returns the user's bookings newest first.  status filters by
// lifecycle state; empty means all.
func (s *BookingService) History(ctx context.Context, userID uint64, status string) ([]model.BookingDetail, error) {
	return s.bookings.ListByUser(ctx, userID, status)
}

// ActiveAll returns every active booking with owner details. Admin view.
func (s *BookingService) ActiveAll(ctx context.Context) ([]model.ActiveBookingRow, error) {
	return s.bookings.ListActive(ctx)
}

// All returns the full ledger newest first. Admin view.
func (s *BookingService) All(ctx context.Context) ([]model.BookingRow, error) {
	return s.bookings.ListAll(ctx)
}

// Statistics returns ledger counters. Admin view.
func (s *BookingService) Statistics(ctx context.Context) (model.BookingStats, error) {
	return s.bookings.Stats(ctx)
}
