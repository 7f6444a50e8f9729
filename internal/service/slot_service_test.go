package service

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/iliyamo/smart-parking/internal/model"
	"github.com/iliyamo/smart-parking/internal/repository"
)

func TestSlotAddNormalizesAndDefaults(t *testing.T) {
	store := newFakeStore()
	svc := NewSlotService(store)

	slot, err := svc.Add(context.Background(), " b-12 ", "", 0)
	require.NoError(t, err)
	assert.Equal(t, "B-12", slot.Code)
	assert.Equal(t, DefaultCategory, slot.Category)
	assert.Equal(t, uint32(1), slot.Floor)
	assert.Equal(t, model.SlotAvailable, slot.Status)
	assert.NotZero(t, slot.ID)
}

func TestSlotAddRejectsBadCode(t *testing.T) {
	svc := NewSlotService(newFakeStore())

	for _, code := range []string{"", "A 1", "TOOLONGCODE", "A_1"} {
		_, err := svc.Add(context.Background(), code, "", 1)
		assert.ErrorIs(t, err, ErrInvalidSlotFormat, "code %q", code)
	}
}

func TestSlotAddDuplicateCode(t *testing.T) {
	store := newFakeStore()
	svc := NewSlotService(store)

	_, err := svc.Add(context.Background(), "A1", "", 1)
	require.NoError(t, err)

	// Case-insensitive: "a1" normalizes to the taken code.
	_, err = svc.Add(context.Background(), "a1", "", 1)
	assert.ErrorIs(t, err, repository.ErrDuplicateSlot)
}

func TestSlotUpdatePartial(t *testing.T) {
	store := newFakeStore()
	svc := NewSlotService(store)
	seeded := store.addSlot("A1", model.SlotAvailable)

	category := "EV"
	require.NoError(t, svc.Update(context.Background(), seeded.ID, nil, &category, nil))

	got, err := svc.Get(context.Background(), seeded.ID)
	require.NoError(t, err)
	assert.Equal(t, "A1", got.Code, "untouched field must survive")
	assert.Equal(t, "EV", got.Category)

	bad := "a 1"
	assert.ErrorIs(t, svc.Update(context.Background(), seeded.ID, &bad, nil, nil), ErrInvalidSlotFormat)
}

func TestSlotRemoveGuards(t *testing.T) {
	store := newFakeStore()
	slots := NewSlotService(store)
	bookings := NewBookingService(store, fakeBookingStore{store})

	seeded := store.addSlot("A1", model.SlotAvailable)
	_, err := bookings.Book(context.Background(), 1, seeded.ID, "KA01AB1234", "hourly", "")
	require.NoError(t, err)

	assert.ErrorIs(t, slots.Remove(context.Background(), seeded.ID), repository.ErrSlotInUse)
	assert.ErrorIs(t, slots.Remove(context.Background(), 999), repository.ErrSlotNotFound)
}

func TestSlotStatistics(t *testing.T) {
	store := newFakeStore()
	svc := NewSlotService(store)

	// Empty inventory reads as zero, not a division error.
	st, err := svc.Statistics(context.Background())
	require.NoError(t, err)
	assert.Equal(t, model.SlotStats{}, st)

	store.addSlot("A1", model.SlotAvailable)
	store.addSlot("A2", model.SlotOccupied)

	st, err = svc.Statistics(context.Background())
	require.NoError(t, err)
	assert.Equal(t, 2, st.Total)
	assert.Equal(t, 1, st.Available)
	assert.Equal(t, 1, st.Occupied)
	assert.InDelta(t, 50.0, st.OccupancyRate, 0.001)
}

func TestSlotAvailableListing(t *testing.T) {
	store := newFakeStore()
	svc := NewSlotService(store)
	store.addSlot("B2", model.SlotOccupied)
	store.addSlot("A1", model.SlotAvailable)
	store.addSlot("C3", model.SlotAvailable)

	free, err := svc.Available(context.Background())
	require.NoError(t, err)
	require.Len(t, free, 2)
	assert.Equal(t, "A1", free[0].Code)
	assert.Equal(t, "C3", free[1].Code)

	all, err := svc.All(context.Background())
	require.NoError(t, err)
	assert.Len(t, all, 3)
}
