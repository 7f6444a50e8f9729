package model

import "time"

// Slot describes a physical parking slot.  Slots are uniquely
// identified by their code (stored uppercase).  The slot_type is an
// open enumeration: Regular, VIP, Handicapped, EV Charging and so on.
//
// Fields:
//  ID        – primary key identifier.
//  Code      – unique slot code, e.g. "A1" or "B-12".
//  Category  – slot class (Regular, VIP, ...).
//  Status    – occupancy status (Available, Occupied).
//  Floor     – floor the slot is located on (1-based).
//  CreatedAt – creation timestamp.
type Slot struct {
	ID        uint64    `json:"id"`         // slots.id
	Code      string    `json:"code"`       // slots.slot_number
	Category  string    `json:"category"`   // slots.slot_type
	Status    string    `json:"status"`     // slots.status
	Floor     uint32    `json:"floor"`      // slots.floor
	CreatedAt time.Time `json:"created_at"` // slots.created_at
}

// Slot status values.  A slot is Occupied exactly while one active
// booking references it and Available otherwise.
const (
	SlotAvailable = "Available"
	SlotOccupied  = "Occupied"
)

// SlotStats aggregates occupancy counters across the whole inventory.
// OccupancyRate is occupied/total*100 rounded to two decimals and zero
// when the inventory is empty.
type SlotStats struct {
	Total         int     `json:"total"`
	Available     int     `json:"available"`
	Occupied      int     `json:"occupied"`
	OccupancyRate float64 `json:"occupancy_rate"`
}
