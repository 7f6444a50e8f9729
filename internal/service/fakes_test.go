package service

import (
	"context"
	"sort"
	"time"

	"github.com/iliyamo/smart-parking/internal/model"
	"github.com/iliyamo/smart-parking/internal/pricing"
	"github.com/iliyamo/smart-parking/internal/repository"
)

// fakeStore is an in-memory stand-in for both store contracts.  It
// mirrors the MySQL repositories' behaviour closely enough for the
// service rules to be exercised without a database: duplicate codes,
// the in-use delete guard, the re-checks inside Book, and the
// active-only guard inside Complete.
type fakeStore struct {
	slotSeq    uint64
	bookingSeq uint64
	slots      map[uint64]*model.Slot
	bookings   map[uint64]*model.Booking
}

func newFakeStore() *fakeStore {
	return &fakeStore{
		slots:    make(map[uint64]*model.Slot),
		bookings: make(map[uint64]*model.Booking),
	}
}

// addSlot seeds a slot directly, bypassing validation.
func (f *fakeStore) addSlot(code, status string) *model.Slot {
	f.slotSeq++
	s := &model.Slot{
		ID:        f.slotSeq,
		Code:      code,
		Category:  "Regular",
		Status:    status,
		Floor:     1,
		CreatedAt: time.Now(),
	}
	f.slots[s.ID] = s
	return s
}

func (f *fakeStore) codeTaken(code string, exceptID uint64) bool {
	for _, s := range f.slots {
		if s.Code == code && s.ID != exceptID {
			return true
		}
	}
	return false
}

func (f *fakeStore) Create(_ context.Context, s *model.Slot) error {
	if f.codeTaken(s.Code, 0) {
		return repository.ErrDuplicateSlot
	}
	f.slotSeq++
	s.ID = f.slotSeq
	s.Status = model.SlotAvailable
	s.CreatedAt = time.Now()
	cp := *s
	f.slots[s.ID] = &cp
	return nil
}

func (f *fakeStore) GetByID(_ context.Context, id uint64) (*model.Slot, error) {
	s, ok := f.slots[id]
	if !ok {
		return nil, repository.ErrSlotNotFound
	}
	cp := *s
	return &cp, nil
}

func (f *fakeStore) Update(_ context.Context, id uint64, code, category *string, floor *uint32) error {
	s, ok := f.slots[id]
	if !ok {
		return repository.ErrSlotNotFound
	}
	if code != nil {
		if f.codeTaken(*code, id) {
			return repository.ErrDuplicateSlot
		}
		s.Code = *code
	}
	if category != nil {
		s.Category = *category
	}
	if floor != nil {
		s.Floor = *floor
	}
	return nil
}

func (f *fakeStore) Delete(_ context.Context, id uint64) error {
	if _, ok := f.slots[id]; !ok {
		return repository.ErrSlotNotFound
	}
	for _, b := range f.bookings {
		if b.SlotID == id && b.Status == model.BookingActive {
			return repository.ErrSlotInUse
		}
	}
	delete(f.slots, id)
	return nil
}

func (f *fakeStore) List(_ context.Context) ([]model.Slot, error) {
	out := make([]model.Slot, 0, len(f.slots))
	for _, s := range f.slots {
		out = append(out, *s)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Code < out[j].Code })
	return out, nil
}

func (f *fakeStore) ListAvailable(ctx context.Context) ([]model.Slot, error) {
	all, _ := f.List(ctx)
	out := all[:0]
	for _, s := range all {
		if s.Status == model.SlotAvailable {
			out = append(out, s)
		}
	}
	return out, nil
}

func (f *fakeStore) Stats(_ context.Context) (model.SlotStats, error) {
	var st model.SlotStats
	for _, s := range f.slots {
		st.Total++
		if s.Status == model.SlotAvailable {
			st.Available++
		}
	}
	st.Occupied = st.Total - st.Available
	if st.Total > 0 {
		st.OccupancyRate = pricing.Round2(float64(st.Occupied) / float64(st.Total) * 100)
	}
	return st, nil
}

func (f *fakeStore) CountActiveByUser(_ context.Context, userID uint64) (int, error) {
	n := 0
	for _, b := range f.bookings {
		if b.UserID == userID && b.Status == model.BookingActive {
			n++
		}
	}
	return n, nil
}

func (f *fakeStore) Book(ctx context.Context, b *model.Booking) error {
	slot, ok := f.slots[b.SlotID]
	if !ok {
		return repository.ErrSlotNotFound
	}
	if slot.Status != model.SlotAvailable {
		return repository.ErrSlotUnavailable
	}
	if n, _ := f.CountActiveByUser(ctx, b.UserID); n > 0 {
		return repository.ErrDuplicateActiveBooking
	}
	f.bookingSeq++
	b.ID = f.bookingSeq
	b.SlotCode = slot.Code
	b.Status = model.BookingActive
	cp := *b
	f.bookings[b.ID] = &cp
	slot.Status = model.SlotOccupied
	return nil
}

func (f *fakeStore) GetActiveByIDForUser(_ context.Context, bookingID, userID uint64) (*model.Booking, error) {
	b, ok := f.bookings[bookingID]
	if !ok || b.UserID != userID || b.Status != model.BookingActive {
		return nil, repository.ErrBookingNotFound
	}
	cp := *b
	if s, ok := f.slots[b.SlotID]; ok {
		cp.SlotCode = s.Code
	}
	return &cp, nil
}

func (f *fakeStore) Complete(_ context.Context, bookingID, slotID uint64, checkoutTime string, actualCost float64) error {
	b, ok := f.bookings[bookingID]
	if !ok || b.Status != model.BookingActive {
		return repository.ErrBookingNotFound
	}
	b.Status = model.BookingCompleted
	b.CheckoutTime = &checkoutTime
	b.ActualCost = &actualCost
	if s, ok := f.slots[slotID]; ok {
		s.Status = model.SlotAvailable
	}
	return nil
}

func (f *fakeStore) ActiveByUser(_ context.Context, userID uint64) (*model.ActiveBookingDetail, error) {
	for _, b := range f.bookings {
		if b.UserID != userID || b.Status != model.BookingActive {
			continue
		}
		slot := f.slots[b.SlotID]
		return &model.ActiveBookingDetail{
			ID:               b.ID,
			SlotCode:         slot.Code,
			SlotCategory:     slot.Category,
			Floor:            slot.Floor,
			VehicleNumber:    b.VehicleNumber,
			BookingTime:      b.BookingTime,
			PackageType:      b.PackageType,
			PackageCost:      b.PackageCost,
			ExpectedDuration: b.ExpectedDuration,
		}, nil
	}
	return nil, repository.ErrBookingNotFound
}

func (f *fakeStore) ListByUser(_ context.Context, userID uint64, status string) ([]model.BookingDetail, error) {
	out := []model.BookingDetail{}
	for _, b := range f.bookings {
		if b.UserID != userID {
			continue
		}
		if status != "" && b.Status != status {
			continue
		}
		slot := f.slots[b.SlotID]
		out = append(out, model.BookingDetail{
			ID:            b.ID,
			SlotCode:      slot.Code,
			SlotCategory:  slot.Category,
			VehicleNumber: b.VehicleNumber,
			BookingTime:   b.BookingTime,
			CheckoutTime:  b.CheckoutTime,
			Status:        b.Status,
			PackageType:   b.PackageType,
			PackageCost:   b.PackageCost,
			ActualCost:    b.ActualCost,
		})
	}
	sort.Slice(out, func(i, j int) bool { return out[i].BookingTime > out[j].BookingTime })
	return out, nil
}

func (f *fakeStore) ListActive(_ context.Context) ([]model.ActiveBookingRow, error) {
	out := []model.ActiveBookingRow{}
	for _, b := range f.bookings {
		if b.Status != model.BookingActive {
			continue
		}
		out = append(out, model.ActiveBookingRow{
			ID:            b.ID,
			Username:      "user",
			Phone:         "0000000000",
			SlotCode:      f.slots[b.SlotID].Code,
			VehicleNumber: b.VehicleNumber,
			BookingTime:   b.BookingTime,
		})
	}
	return out, nil
}

func (f *fakeStore) ListAll(_ context.Context) ([]model.BookingRow, error) {
	out := []model.BookingRow{}
	for _, b := range f.bookings {
		out = append(out, model.BookingRow{
			ID:            b.ID,
			Username:      "user",
			SlotCode:      f.slots[b.SlotID].Code,
			VehicleNumber: b.VehicleNumber,
			BookingTime:   b.BookingTime,
			CheckoutTime:  b.CheckoutTime,
			Status:        b.Status,
		})
	}
	sort.Slice(out, func(i, j int) bool { return out[i].BookingTime > out[j].BookingTime })
	return out, nil
}

// Both store contracts declare a Stats method with different return
// types, so the booking side of the fake is a thin wrapper that
// shadows Stats with the ledger counters.
type fakeBookingStore struct{ *fakeStore }

func (f fakeBookingStore) Stats(_ context.Context) (model.BookingStats, error) {
	var st model.BookingStats
	for _, b := range f.bookings {
		st.Total++
		switch b.Status {
		case model.BookingActive:
			st.Active++
		case model.BookingCompleted:
			st.Completed++
		}
	}
	return st, nil
}

var (
	_ repository.SlotStore    = (*fakeStore)(nil)
	_ repository.BookingStore = fakeBookingStore{}
)
