package model

// Booking records a user's reservation of one slot for a span of time.
// A booking is created Active and transitions exactly once, at
// checkout, to Completed.  The tariff fields (PackageType, PackageCost,
// ExpectedDuration) are copied from the tariff table at creation so a
// later change of the table cannot re-price an open booking.
//
// Booking and checkout timestamps are stored in the fixed
// "2006-01-02 15:04:05" layout and kept as strings here; the pricing
// package owns parsing and flags malformed stored values instead of
// silently treating them as zero duration.
type Booking struct {
	ID               uint64   `json:"id"`                    // bookings.id
	UserID           uint64   `json:"user_id"`               // bookings.user_id
	SlotID           uint64   `json:"slot_id"`               // bookings.slot_id
	SlotCode         string   `json:"slot_code"`             // joined from slots.slot_number
	VehicleNumber    string   `json:"vehicle_number"`        // bookings.vehicle_number
	BookingTime      string   `json:"booking_time"`          // bookings.booking_time
	CheckoutTime     *string  `json:"checkout_time"`         // bookings.checkout_time (nil while active)
	Status           string   `json:"status"`                // bookings.status
	PackageType      string   `json:"package"`               // bookings.package_type
	PackageCost      float64  `json:"package_cost"`          // bookings.package_cost
	ExpectedDuration float64  `json:"expected_duration"`     // bookings.expected_duration (hours)
	ActualCost       *float64 `json:"actual_cost,omitempty"` // bookings.actual_cost (set at checkout)
}

// Booking lifecycle states.
const (
	BookingActive    = "Active"
	BookingCompleted = "Completed"
)

// BookingDetail is a booking row joined with slot information, shaped
// for a user's booking history view.
type BookingDetail struct {
	ID            uint64   `json:"id"`
	SlotCode      string   `json:"slot_code"`
	SlotCategory  string   `json:"slot_category"`
	VehicleNumber string   `json:"vehicle_number"`
	BookingTime   string   `json:"booking_time"`
	CheckoutTime  *string  `json:"checkout_time"`
	Status        string   `json:"status"`
	PackageType   string   `json:"package"`
	PackageCost   float64  `json:"package_cost"`
	ActualCost    *float64 `json:"actual_cost,omitempty"`
}

// ActiveBookingDetail is the expanded view of a user's single active
// booking, including slot placement and the tariff in force.
type ActiveBookingDetail struct {
	ID               uint64  `json:"id"`
	SlotCode         string  `json:"slot_code"`
	SlotCategory     string  `json:"slot_category"`
	Floor            uint32  `json:"floor"`
	VehicleNumber    string  `json:"vehicle_number"`
	BookingTime      string  `json:"booking_time"`
	PackageType      string  `json:"package"`
	PackageCost      float64 `json:"package_cost"`
	ExpectedDuration float64 `json:"expected_duration"`
}

// ActiveBookingRow is the admin view of one active booking with the
// owning user's contact details joined in.
type ActiveBookingRow struct {
	ID            uint64 `json:"id"`
	Username      string `json:"username"`
	Phone         string `json:"phone"`
	SlotCode      string `json:"slot_code"`
	VehicleNumber string `json:"vehicle_number"`
	BookingTime   string `json:"booking_time"`
}

// BookingRow is the admin view of any booking regardless of status.
type BookingRow struct {
	ID            uint64  `json:"id"`
	Username      string  `json:"username"`
	SlotCode      string  `json:"slot_code"`
	VehicleNumber string  `json:"vehicle_number"`
	BookingTime   string  `json:"booking_time"`
	CheckoutTime  *string `json:"checkout_time"`
	Status        string  `json:"status"`
}

// BookingStats aggregates ledger counters for the admin dashboard.
type BookingStats struct {
	Total     int `json:"total"`
	Active    int `json:"active"`
	Completed int `json:"completed"`
}
