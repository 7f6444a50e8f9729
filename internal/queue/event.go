// Package queue defines message payloads exchanged over the message broker.
package queue

// Booking event types carried in BookingEvent.Type.
const (
	EventBookingCreated   = "booking.created"
	EventBookingCompleted = "booking.completed"
)

// BookingEvent is published when a booking is created or completed.
// It contains enough information for downstream consumers to log,
// notify, or trigger analytics without querying the primary database.
type BookingEvent struct {
	Type          string  `json:"type"`
	BookingID     uint64  `json:"booking_id"`
	UserID        uint64  `json:"user_id"`
	SlotID        uint64  `json:"slot_id"`
	SlotCode      string  `json:"slot_code"`
	VehicleNumber string  `json:"vehicle_number"`
	BookingTime   string  `json:"booking_time"`
	CheckoutTime  string  `json:"checkout_time,omitempty"`
	PackageType   string  `json:"package"`
	PackageCost   float64 `json:"package_cost"`
	ActualCost    float64 `json:"actual_cost,omitempty"`
	OccurredAt    string  `json:"occurred_at"`
}
