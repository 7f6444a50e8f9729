package service

import (
	"context"

	"github.com/iliyamo/smart-parking/internal/model"
	"github.com/iliyamo/smart-parking/internal/repository"
	"github.com/iliyamo/smart-parking/internal/utils"
)

// DefaultCategory is assigned when a slot is added without one.
const DefaultCategory = "Regular"

// SlotService owns the slot inventory rules: code format and
// uniqueness on add/update, the in-use guard on delete, and the
// occupancy statistics.  Slot status itself is never mutated here –
// occupancy flips only inside the booking ledger's transactions, so
// the inventory cannot drift out of sync with the ledger.
type SlotService struct {
	slots repository.SlotStore
}

// NewSlotService constructs a SlotService. The store must be non-nil.
func NewSlotService(slots repository.SlotStore) *SlotService {
	if slots == nil {
		panic("nil store passed to NewSlotService")
	}
	return &SlotService{slots: slots}
}

// Add creates a new Available slot.  The code is normalized to
// uppercase before the format check and the (case-insensitive)
// uniqueness check.  A missing category defaults to Regular, a
// missing floor to 1.
func (s *SlotService) Add(ctx context.Context, code, category string, floor uint32) (*model.Slot, error) {
	code = utils.NormalizeCode(code)
	if !utils.ValidSlotCode(code) {
		return nil, ErrInvalidSlotFormat
	}
	if category == "" {
		category = DefaultCategory
	}
	if floor == 0 {
		floor = 1
	}
	slot := &model.Slot{Code: code, Category: category, Floor: floor}
	if err := s.slots.Create(ctx, slot); err != nil {
		return nil, err
	}
	return slot, nil
}

// Update applies a partial update to a slot.  A new code goes through
// the same normalization and format check as Add.
func (s *SlotService) Update(ctx context.Context, id uint64, code, category *string, floor *uint32) error {
	if code != nil {
		normalized := utils.NormalizeCode(*code)
		if !utils.ValidSlotCode(normalized) {
			return ErrInvalidSlotFormat
		}
		code = &normalized
	}
	return s.slots.Update(ctx, id, code, category, floor)
}

// Remove deletes a slot.  The store refuses with ErrSlotInUse while an
// active booking references it.
func (s *SlotService) Remove(ctx context.Context, id uint64) error {
	return s.slots.Delete(ctx, id)
}

// Get returns a single slot by id.
func (s *SlotService) Get(ctx context.Context, id uint64) (*model.Slot, error) {
	return s.slots.GetByID(ctx, id)
}

// All returns the full inventory ordered by code.
func (s *SlotService) All(ctx context.Context) ([]model.Slot, error) {
	return s.slots.List(ctx)
}

// Available returns the bookable slots ordered by code.
func (s *SlotService) Available(ctx context.Context) ([]model.Slot, error) {
	return s.slots.ListAvailable(ctx)
}

// Statistics returns occupancy counters and the occupancy rate.
func (s *SlotService) Statistics(ctx context.Context) (model.SlotStats, error) {
	return s.slots.Stats(ctx)
}
