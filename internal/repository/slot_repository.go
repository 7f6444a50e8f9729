package repository // repository defines data access for parking slots

import (
	"context"      // context allows query cancellation and timeouts
	"database/sql" // sql provides DB primitives
	"strings"      // strings detects duplicate-key errors

	"github.com/iliyamo/smart-parking/internal/model"
	"github.com/iliyamo/smart-parking/internal/pricing"
)

// SlotRepo provides methods to work with parking slots in the database.
type SlotRepo struct {
	db *sql.DB
}

// NewSlotRepo constructs a SlotRepo with the given DB handle.
func NewSlotRepo(db *sql.DB) *SlotRepo {
	return &SlotRepo{db: db}
}

// isDuplicateKey reports whether err is a MySQL duplicate-entry error (1062).
func isDuplicateKey(err error) bool {
	return err != nil && strings.Contains(strings.ToLower(err.Error()), "1062")
}

// Create inserts a single slot record as Available. On success the
// slot's ID, status and creation timestamp are populated.
func (r *SlotRepo) Create(ctx context.Context, s *model.Slot) error {
	const q = `INSERT INTO slots (slot_number, slot_type, status, floor)
	           VALUES (?, ?, 'Available', ?)`
	res, err := r.db.ExecContext(ctx, q, s.Code, s.Category, s.Floor)
	if err != nil {
		if isDuplicateKey(err) {
			return ErrDuplicateSlot
		}
		return err
	}
	id, err := res.LastInsertId()
	if err != nil {
		return err
	}
	s.ID = uint64(id)
	// Query back the row to populate DB defaults
	const sel = `SELECT status, created_at FROM slots WHERE id = ?`
	return r.db.QueryRowContext(ctx, sel, s.ID).Scan(&s.Status, &s.CreatedAt)
}

// GetByID retrieves a slot by its id.
func (r *SlotRepo) GetByID(ctx context.Context, id uint64) (*model.Slot, error) {
	const q = `SELECT id, slot_number, slot_type, status, floor, created_at
	           FROM slots WHERE id = ?`
	var s model.Slot
	err := r.db.QueryRowContext(ctx, q, id).
		Scan(&s.ID, &s.Code, &s.Category, &s.Status, &s.Floor, &s.CreatedAt)
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, ErrSlotNotFound
		}
		return nil, err
	}
	return &s, nil
}

// Update applies a partial update to code, category and floor. Nil
// fields are left untouched. Status is deliberately not updatable
// here: occupancy flips only inside the booking ledger's transactions.
func (r *SlotRepo) Update(ctx context.Context, id uint64, code *string, category *string, floor *uint32) error {
	sets := make([]string, 0, 3)
	args := make([]interface{}, 0, 4)
	if code != nil {
		sets = append(sets, "slot_number = ?")
		args = append(args, *code)
	}
	if category != nil {
		sets = append(sets, "slot_type = ?")
		args = append(args, *category)
	}
	if floor != nil {
		sets = append(sets, "floor = ?")
		args = append(args, *floor)
	}
	if len(sets) == 0 {
		return nil
	}
	args = append(args, id)
	q := "UPDATE slots SET " + strings.Join(sets, ", ") + " WHERE id = ?"
	res, err := r.db.ExecContext(ctx, q, args...)
	if err != nil {
		if isDuplicateKey(err) {
			return ErrDuplicateSlot
		}
		return err
	}
	if n, _ := res.RowsAffected(); n == 0 {
		// Distinguish a missing row from an update that changed nothing.
		var exists uint64
		if err := r.db.QueryRowContext(ctx, `SELECT id FROM slots WHERE id = ?`, id).Scan(&exists); err != nil {
			if err == sql.ErrNoRows {
				return ErrSlotNotFound
			}
			return err
		}
	}
	return nil
}

// Delete removes a slot unless an active booking still references it.
// The active-booking check and the delete run in one transaction so a
// booking committed in between cannot orphan the slot reference.
func (r *SlotRepo) Delete(ctx context.Context, id uint64) error {
	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return err
	}
	committed := false
	defer func() {
		if !committed {
			_ = tx.Rollback()
		}
	}()

	const check = `SELECT COUNT(*) FROM bookings WHERE slot_id = ? AND status = 'Active'`
	var active int
	if err := tx.QueryRowContext(ctx, check, id).Scan(&active); err != nil {
		return err
	}
	if active > 0 {
		return ErrSlotInUse
	}
	res, err := tx.ExecContext(ctx, `DELETE FROM slots WHERE id = ?`, id)
	if err != nil {
		return err
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return ErrSlotNotFound
	}
	if err := tx.Commit(); err != nil {
		return err
	}
	committed = true
	return nil
}

// List retrieves all slots ordered by code.
func (r *SlotRepo) List(ctx context.Context) ([]model.Slot, error) {
	const q = `SELECT id, slot_number, slot_type, status, floor, created_at
	           FROM slots ORDER BY slot_number`
	return r.scanSlots(ctx, q)
}

// ListAvailable retrieves all Available slots ordered by code.
func (r *SlotRepo) ListAvailable(ctx context.Context) ([]model.Slot, error) {
	const q = `SELECT id, slot_number, slot_type, status, floor, created_at
	           FROM slots WHERE status = 'Available' ORDER BY slot_number`
	return r.scanSlots(ctx, q)
}

func (r *SlotRepo) scanSlots(ctx context.Context, q string, args ...interface{}) ([]model.Slot, error) {
	rows, err := r.db.QueryContext(ctx, q, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	result := make([]model.Slot, 0)
	for rows.Next() {
		var s model.Slot
		if err := rows.Scan(&s.ID, &s.Code, &s.Category, &s.Status, &s.Floor, &s.CreatedAt); err != nil {
			return nil, err
		}
		result = append(result, s)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return result, nil
}

// Stats returns occupancy counters across the inventory along with
// the occupancy rate in percent.  An empty inventory reads as zero.
func (r *SlotRepo) Stats(ctx context.Context) (model.SlotStats, error) {
	const q = `SELECT COUNT(*),
	                  COALESCE(SUM(status = 'Available'), 0),
	                  COALESCE(SUM(status = 'Occupied'), 0)
	           FROM slots`
	var st model.SlotStats
	if err := r.db.QueryRowContext(ctx, q).Scan(&st.Total, &st.Available, &st.Occupied); err != nil {
		return model.SlotStats{}, err
	}
	if st.Total > 0 {
		st.OccupancyRate = pricing.Round2(float64(st.Occupied) / float64(st.Total) * 100)
	}
	return st, nil
}
