package service

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/iliyamo/smart-parking/internal/model"
	"github.com/iliyamo/smart-parking/internal/pricing"
	"github.com/iliyamo/smart-parking/internal/repository"
)

// fixedClock pins the service clock for deterministic timestamps.
func fixedClock(t time.Time) func() time.Time {
	return func() time.Time { return t }
}

func newBookingFixture() (*fakeStore, *BookingService, time.Time) {
	store := newFakeStore()
	now := time.Date(2026, 3, 14, 10, 0, 0, 0, time.UTC)
	svc := NewBookingService(store, fakeBookingStore{store}).WithClock(fixedClock(now))
	return store, svc, now
}

func TestBookHappyPath(t *testing.T) {
	store, svc, now := newBookingFixture()
	slot := store.addSlot("A1", model.SlotAvailable)

	b, err := svc.Book(context.Background(), 7, slot.ID, "ka01ab1234", "half_day", "")
	require.NoError(t, err)

	assert.NotZero(t, b.ID)
	assert.Equal(t, "A1", b.SlotCode)
	assert.Equal(t, "KA01AB1234", b.VehicleNumber, "plate must be stored uppercase")
	assert.Equal(t, model.BookingActive, b.Status)
	assert.Equal(t, pricing.FormatTimestamp(now), b.BookingTime)
	assert.Equal(t, "Half Day (6 hours)", b.PackageType)
	assert.Equal(t, 250.0, b.PackageCost)
	assert.Equal(t, 6.0, b.ExpectedDuration)

	got, err := store.GetByID(context.Background(), slot.ID)
	require.NoError(t, err)
	assert.Equal(t, model.SlotOccupied, got.Status)
}

func TestBookUnknownPackageFallsBackToHourly(t *testing.T) {
	store, svc, _ := newBookingFixture()
	slot := store.addSlot("A1", model.SlotAvailable)

	b, err := svc.Book(context.Background(), 7, slot.ID, "KA01AB1234", "gold_tier", "")
	require.NoError(t, err)
	assert.Equal(t, "Hourly", b.PackageType)
	assert.Equal(t, 50.0, b.PackageCost)
	assert.Equal(t, 1.0, b.ExpectedDuration)
}

func TestBookPreconditionOrder(t *testing.T) {
	store, svc, _ := newBookingFixture()
	ctx := context.Background()

	// A bad plate is reported even when the slot does not exist either.
	_, err := svc.Book(ctx, 7, 999, "x", "hourly", "")
	assert.ErrorIs(t, err, ErrInvalidVehicleFormat)

	_, err = svc.Book(ctx, 7, 999, "KA01AB1234", "hourly", "")
	assert.ErrorIs(t, err, repository.ErrSlotNotFound)

	occupied := store.addSlot("B1", model.SlotOccupied)
	_, err = svc.Book(ctx, 7, occupied.ID, "KA01AB1234", "hourly", "")
	assert.ErrorIs(t, err, repository.ErrSlotUnavailable)

	free := store.addSlot("A1", model.SlotAvailable)
	_, err = svc.Book(ctx, 7, free.ID, "KA01AB1234", "hourly", "")
	require.NoError(t, err)

	// The duplicate rule is checked before the booking time, so a
	// second booking with a garbage time still reports the duplicate.
	other := store.addSlot("A2", model.SlotAvailable)
	_, err = svc.Book(ctx, 7, other.ID, "KA01AB1234", "hourly", "not-a-time")
	assert.ErrorIs(t, err, repository.ErrDuplicateActiveBooking)

	// A different user can still book the remaining slot.
	_, err = svc.Book(ctx, 8, other.ID, "MH12CD5678", "hourly", "")
	assert.NoError(t, err)
}

func TestBookExplicitTime(t *testing.T) {
	store, svc, now := newBookingFixture()
	ctx := context.Background()

	slot := store.addSlot("A1", model.SlotAvailable)
	_, err := svc.Book(ctx, 7, slot.ID, "KA01AB1234", "hourly", "14-03-2026 10:00")
	assert.ErrorIs(t, err, ErrInvalidDateTime)

	past := pricing.FormatTimestamp(now.Add(-time.Minute))
	_, err = svc.Book(ctx, 7, slot.ID, "KA01AB1234", "hourly", past)
	assert.ErrorIs(t, err, ErrPastBookingTime)

	// "Right now" and the future are both accepted.
	future := pricing.FormatTimestamp(now.Add(2 * time.Hour))
	b, err := svc.Book(ctx, 7, slot.ID, "KA01AB1234", "hourly", future)
	require.NoError(t, err)
	assert.Equal(t, future, b.BookingTime)
}

func TestCheckoutWithinPackage(t *testing.T) {
	store, svc, now := newBookingFixture()
	slot := store.addSlot("A1", model.SlotAvailable)

	b, err := svc.Book(context.Background(), 7, slot.ID, "KA01AB1234", "half_day", "")
	require.NoError(t, err)

	// Three hours into a six-hour package: the flat price stands.
	svc.WithClock(fixedClock(now.Add(3 * time.Hour)))
	res, err := svc.Checkout(context.Background(), b.ID, 7)
	require.NoError(t, err)

	assert.Equal(t, 250.0, res.ActualCost)
	assert.InDelta(t, 3.0, res.Duration.Hours, 0.001)
	assert.Equal(t, "3h 0m", res.Duration.Display)
	assert.Equal(t, "14-Mar-2026 10:00 AM", res.BookingTime)
	assert.Equal(t, "14-Mar-2026 01:00 PM", res.CheckoutTime)

	got, err := store.GetByID(context.Background(), slot.ID)
	require.NoError(t, err)
	assert.Equal(t, model.SlotAvailable, got.Status, "checkout must free the slot")
}

func TestCheckoutOverstayReRatesHourly(t *testing.T) {
	store, svc, now := newBookingFixture()
	slot := store.addSlot("A1", model.SlotAvailable)

	b, err := svc.Book(context.Background(), 7, slot.ID, "KA01AB1234", "half_day", "")
	require.NoError(t, err)

	// Seven hours against a six-hour package: the whole stay is
	// re-rated at the hourly rate, 7 * 50 = 350.
	svc.WithClock(fixedClock(now.Add(7 * time.Hour)))
	res, err := svc.Checkout(context.Background(), b.ID, 7)
	require.NoError(t, err)
	assert.Equal(t, 350.0, res.ActualCost)
}

func TestCheckoutShortStayMinimumCharge(t *testing.T) {
	store, svc, now := newBookingFixture()
	slot := store.addSlot("A1", model.SlotAvailable)

	b, err := svc.Book(context.Background(), 7, slot.ID, "KA01AB1234", "hourly", "")
	require.NoError(t, err)

	// Twenty minutes on the hourly package: within the reference hour,
	// so the flat hourly price applies.
	svc.WithClock(fixedClock(now.Add(20 * time.Minute)))
	res, err := svc.Checkout(context.Background(), b.ID, 7)
	require.NoError(t, err)
	assert.Equal(t, 50.0, res.ActualCost)
	assert.Equal(t, "20m", res.Duration.Display)
}

func TestCheckoutIdempotent(t *testing.T) {
	store, svc, now := newBookingFixture()
	slot := store.addSlot("A1", model.SlotAvailable)

	b, err := svc.Book(context.Background(), 7, slot.ID, "KA01AB1234", "hourly", "")
	require.NoError(t, err)

	svc.WithClock(fixedClock(now.Add(time.Hour)))
	_, err = svc.Checkout(context.Background(), b.ID, 7)
	require.NoError(t, err)

	_, err = svc.Checkout(context.Background(), b.ID, 7)
	assert.ErrorIs(t, err, repository.ErrBookingNotFound)
}

func TestCheckoutWrongOwner(t *testing.T) {
	store, svc, _ := newBookingFixture()
	slot := store.addSlot("A1", model.SlotAvailable)

	b, err := svc.Book(context.Background(), 7, slot.ID, "KA01AB1234", "hourly", "")
	require.NoError(t, err)

	_, err = svc.Checkout(context.Background(), b.ID, 8)
	assert.ErrorIs(t, err, repository.ErrBookingNotFound)
}

func TestCheckoutMalformedStoredTime(t *testing.T) {
	store, svc, _ := newBookingFixture()
	slot := store.addSlot("A1", model.SlotOccupied)

	// Seed a corrupted row directly: the stored booking time does not
	// parse, and checkout must surface that instead of charging for a
	// zero-length stay.
	store.bookingSeq++
	store.bookings[store.bookingSeq] = &model.Booking{
		ID:          store.bookingSeq,
		UserID:      7,
		SlotID:      slot.ID,
		BookingTime: "garbage",
		Status:      model.BookingActive,
		PackageType: "Hourly",
		PackageCost: 50,
	}

	_, err := svc.Checkout(context.Background(), store.bookingSeq, 7)
	assert.ErrorIs(t, err, pricing.ErrMalformedTimestamp)
}

func TestActiveAndHistory(t *testing.T) {
	store, svc, now := newBookingFixture()
	slot := store.addSlot("A1", model.SlotAvailable)
	ctx := context.Background()

	_, err := svc.Active(ctx, 7)
	assert.ErrorIs(t, err, repository.ErrBookingNotFound)

	b, err := svc.Book(ctx, 7, slot.ID, "KA01AB1234", "full_day", "")
	require.NoError(t, err)

	active, err := svc.Active(ctx, 7)
	require.NoError(t, err)
	assert.Equal(t, b.ID, active.ID)
	assert.Equal(t, "A1", active.SlotCode)
	assert.Equal(t, 400.0, active.PackageCost)

	svc.WithClock(fixedClock(now.Add(2 * time.Hour)))
	_, err = svc.Checkout(ctx, b.ID, 7)
	require.NoError(t, err)

	history, err := svc.History(ctx, 7, "")
	require.NoError(t, err)
	require.Len(t, history, 1)
	assert.Equal(t, model.BookingCompleted, history[0].Status)
	require.NotNil(t, history[0].ActualCost)
	assert.Equal(t, 400.0, *history[0].ActualCost)

	onlyActive, err := svc.History(ctx, 7, model.BookingActive)
	require.NoError(t, err)
	assert.Empty(t, onlyActive)
}

func TestBookingStatistics(t *testing.T) {
	store, svc, now := newBookingFixture()
	a := store.addSlot("A1", model.SlotAvailable)
	bSlot := store.addSlot("A2", model.SlotAvailable)
	ctx := context.Background()

	first, err := svc.Book(ctx, 1, a.ID, "KA01AB1234", "hourly", "")
	require.NoError(t, err)
	_, err = svc.Book(ctx, 2, bSlot.ID, "MH12CD5678", "hourly", "")
	require.NoError(t, err)

	svc.WithClock(fixedClock(now.Add(time.Hour)))
	_, err = svc.Checkout(ctx, first.ID, 1)
	require.NoError(t, err)

	st, err := svc.Statistics(ctx)
	require.NoError(t, err)
	assert.Equal(t, model.BookingStats{Total: 2, Active: 1, Completed: 1}, st)
}
