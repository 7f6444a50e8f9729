package repository

import (
	"context"
	"database/sql"

	"github.com/iliyamo/smart-parking/internal/model"
)

// BookingRepo provides CRUD operations for the booking ledger.  The
// two state transitions – Book and Complete – pair a booking write
// with the owning slot's status flip inside a single transaction, so
// the ledger and the slot inventory can never disagree even under
// concurrent requests.  Precondition rows are locked with
// SELECT ... FOR UPDATE before they are re-checked.
type BookingRepo struct {
	db *sql.DB
}

// NewBookingRepo returns a new BookingRepo bound to the given database.
func NewBookingRepo(db *sql.DB) *BookingRepo { return &BookingRepo{db: db} }

// CountActiveByUser returns how many active bookings the user owns.
func (r *BookingRepo) CountActiveByUser(ctx context.Context, userID uint64) (int, error) {
	const q = `SELECT COUNT(*) FROM bookings WHERE user_id = ? AND status = 'Active'`
	var n int
	err := r.db.QueryRowContext(ctx, q, userID).Scan(&n)
	return n, err
}

// Book atomically inserts an Active booking and flips its slot to
// Occupied.  The slot row is locked and its status re-checked inside
// the transaction, as is the user's active-booking count, so two
// racing requests cannot double-book a slot or a user.  On success the
// booking's ID and SlotCode are populated.
func (r *BookingRepo) Book(ctx context.Context, b *model.Booking) error {
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

	// Lock the slot row for the duration of the transaction.
	const slotQ = `SELECT status, slot_number FROM slots WHERE id = ? FOR UPDATE`
	var status, code string
	if err := tx.QueryRowContext(ctx, slotQ, b.SlotID).Scan(&status, &code); err != nil {
		if err == sql.ErrNoRows {
			return ErrSlotNotFound
		}
		return err
	}
	if status != model.SlotAvailable {
		return ErrSlotUnavailable
	}

	// Re-check the one-active-booking-per-user invariant under lock.
	const activeQ = `SELECT COUNT(*) FROM bookings
	                 WHERE user_id = ? AND status = 'Active' FOR UPDATE`
	var active int
	if err := tx.QueryRowContext(ctx, activeQ, b.UserID).Scan(&active); err != nil {
		return err
	}
	if active > 0 {
		return ErrDuplicateActiveBooking
	}

	const ins = `INSERT INTO bookings
	             (user_id, slot_id, vehicle_number, booking_time, status, package_type, package_cost, expected_duration)
	             VALUES (?, ?, ?, ?, 'Active', ?, ?, ?)`
	res, err := tx.ExecContext(ctx, ins,
		b.UserID, b.SlotID, b.VehicleNumber, b.BookingTime,
		b.PackageType, b.PackageCost, b.ExpectedDuration)
	if err != nil {
		return err
	}
	id, err := res.LastInsertId()
	if err != nil {
		return err
	}

	const upd = `UPDATE slots SET status = 'Occupied' WHERE id = ?`
	if _, err := tx.ExecContext(ctx, upd, b.SlotID); err != nil {
		return err
	}
	if err := tx.Commit(); err != nil {
		return err
	}
	committed = true
	b.ID = uint64(id)
	b.SlotCode = code
	b.Status = model.BookingActive
	return nil
}

// GetActiveByIDForUser loads an active booking owned by the user, with
// the slot code joined in.  A completed booking, a foreign booking or
// an unknown id all report ErrBookingNotFound.
func (r *BookingRepo) GetActiveByIDForUser(ctx context.Context, bookingID, userID uint64) (*model.Booking, error) {
	const q = `SELECT b.id, b.user_id, b.slot_id, s.slot_number, b.vehicle_number,
	                  b.booking_time, b.status, b.package_type, b.package_cost, b.expected_duration
	           FROM bookings b
	           JOIN slots s ON s.id = b.slot_id
	           WHERE b.id = ? AND b.user_id = ? AND b.status = 'Active'`
	var b model.Booking
	err := r.db.QueryRowContext(ctx, q, bookingID, userID).Scan(
		&b.ID, &b.UserID, &b.SlotID, &b.SlotCode, &b.VehicleNumber,
		&b.BookingTime, &b.Status, &b.PackageType, &b.PackageCost, &b.ExpectedDuration,
	)
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, ErrBookingNotFound
		}
		return nil, err
	}
	return &b, nil
}

// Complete atomically marks an active booking Completed – stamping
// checkout time and actual cost – and flips its slot back to
// Available.  The status guard in the UPDATE makes a repeated checkout
// a no-op failure instead of a double charge.
func (r *BookingRepo) Complete(ctx context.Context, bookingID, slotID uint64, checkoutTime string, actualCost float64) error {
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

	const upd = `UPDATE bookings
	             SET status = 'Completed', checkout_time = ?, actual_cost = ?
	             WHERE id = ? AND status = 'Active'`
	res, err := tx.ExecContext(ctx, upd, checkoutTime, actualCost, bookingID)
	if err != nil {
		return err
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return ErrBookingNotFound
	}
	const slotUpd = `UPDATE slots SET status = 'Available' WHERE id = ?`
	if _, err := tx.ExecContext(ctx, slotUpd, slotID); err != nil {
		return err
	}
	if err := tx.Commit(); err != nil {
		return err
	}
	committed = true
	return nil
}

// ActiveByUser returns the user's active booking joined with slot
// placement details, or ErrBookingNotFound when none exists.
func (r *BookingRepo) ActiveByUser(ctx context.Context, userID uint64) (*model.ActiveBookingDetail, error) {
	const q = `SELECT b.id, s.slot_number, s.slot_type, s.floor, b.vehicle_number,
	                  b.booking_time, b.package_type, b.package_cost, b.expected_duration
	           FROM bookings b
	           JOIN slots s ON s.id = b.slot_id
	           WHERE b.user_id = ? AND b.status = 'Active'`
	var d model.ActiveBookingDetail
	err := r.db.QueryRowContext(ctx, q, userID).Scan(
		&d.ID, &d.SlotCode, &d.SlotCategory, &d.Floor, &d.VehicleNumber,
		&d.BookingTime, &d.PackageType, &d.PackageCost, &d.ExpectedDuration,
	)
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, ErrBookingNotFound
		}
		return nil, err
	}
	return &d, nil
}

// ListByUser returns the user's booking history newest first.  When
// status is non-empty only bookings in that state are returned.
func (r *BookingRepo) ListByUser(ctx context.Context, userID uint64, status string) ([]model.BookingDetail, error) {
	q := `SELECT b.id, s.slot_number, s.slot_type, b.vehicle_number,
	             b.booking_time, b.checkout_time, b.status, b.package_type, b.package_cost, b.actual_cost
	      FROM bookings b
	      JOIN slots s ON s.id = b.slot_id
	      WHERE b.user_id = ?`
	args := []interface{}{userID}
	if status != "" {
		q += ` AND b.status = ?`
		args = append(args, status)
	}
	q += ` ORDER BY b.booking_time DESC`

	rows, err := r.db.QueryContext(ctx, q, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	details := make([]model.BookingDetail, 0)
	for rows.Next() {
		var d model.BookingDetail
		var checkout sql.NullString
		var cost sql.NullFloat64
		if err := rows.Scan(
			&d.ID, &d.SlotCode, &d.SlotCategory, &d.VehicleNumber,
			&d.BookingTime, &checkout, &d.Status, &d.PackageType, &d.PackageCost, &cost,
		); err != nil {
			return nil, err
		}
		if checkout.Valid {
			v := checkout.String
			d.CheckoutTime = &v
		}
		if cost.Valid {
			v := cost.Float64
			d.ActualCost = &v
		}
		details = append(details, d)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return details, nil
}

// ListActive returns all active bookings across users with the owner's
// contact details joined in, newest first.
func (r *BookingRepo) ListActive(ctx context.Context) ([]model.ActiveBookingRow, error) {
	const q = `SELECT b.id, u.username, u.phone, s.slot_number, b.vehicle_number, b.booking_time
	           FROM bookings b
	           JOIN users u ON u.id = b.user_id
	           JOIN slots s ON s.id = b.slot_id
	           WHERE b.status = 'Active'
	           ORDER BY b.booking_time DESC`
	rows, err := r.db.QueryContext(ctx, q)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	result := make([]model.ActiveBookingRow, 0)
	for rows.Next() {
		var row model.ActiveBookingRow
		if err := rows.Scan(&row.ID, &row.Username, &row.Phone, &row.SlotCode, &row.VehicleNumber, &row.BookingTime); err != nil {
			return nil, err
		}
		result = append(result, row)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return result, nil
}

// ListAll returns every booking regardless of status, newest first.
func (r *BookingRepo) ListAll(ctx context.Context) ([]model.BookingRow, error) {
	const q = `SELECT b.id, u.username, s.slot_number, b.vehicle_number,
	                  b.booking_time, b.checkout_time, b.status
	           FROM bookings b
	           JOIN users u ON u.id = b.user_id
	           JOIN slots s ON s.id = b.slot_id
	           ORDER BY b.booking_time DESC`
	rows, err := r.db.QueryContext(ctx, q)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	result := make([]model.BookingRow, 0)
	for rows.Next() {
		var row model.BookingRow
		var checkout sql.NullString
		if err := rows.Scan(&row.ID, &row.Username, &row.SlotCode, &row.VehicleNumber, &row.BookingTime, &checkout, &row.Status); err != nil {
			return nil, err
		}
		if checkout.Valid {
			v := checkout.String
			row.CheckoutTime = &v
		}
		result = append(result, row)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return result, nil
}

// Stats returns total/active/completed counters for the ledger.
func (r *BookingRepo) Stats(ctx context.Context) (model.BookingStats, error) {
	const q = `SELECT COUNT(*),
	                  COALESCE(SUM(status = 'Active'), 0),
	                  COALESCE(SUM(status = 'Completed'), 0)
	           FROM bookings`
	var st model.BookingStats
	err := r.db.QueryRowContext(ctx, q).Scan(&st.Total, &st.Active, &st.Completed)
	return st, err
}
