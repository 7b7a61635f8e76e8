package domain

import (
	"strings"
	"time"
)

// Stay is the canonical record of one reservation, deduplicated by
// (vendor, vendor reservation id). Subsequent sightings fully overwrite the
// mutable fields.
type Stay struct {
	ID            int64
	HotelID       int64
	Vendor        string
	ReservationID string // vendor reservation id
	VendorGuestID string
	GuestID       *int64 // nil when the guest could not be persisted
	Status        StayStatus
	CheckIn       time.Time
	CheckOut      time.Time
	CreatedAt     time.Time
	UpdatedAt     time.Time
}

type StayStatus string

const (
	StatusUnknown    StayStatus = "unknown"
	StatusBooked     StayStatus = "booked"
	StatusInStay     StayStatus = "in_stay"
	StatusCheckedOut StayStatus = "checked_out"
	StatusCancelled  StayStatus = "cancelled"
)

// ParseStayStatus normalizes a vendor status string. Vendors disagree on
// casing and separators; anything unrecognized maps to StatusUnknown rather
// than failing the reservation.
func ParseStayStatus(s string) StayStatus {
	switch strings.ToLower(strings.ReplaceAll(strings.TrimSpace(s), "-", "_")) {
	case "booked", "confirmed":
		return StatusBooked
	case "in_stay", "instay", "checked_in", "started":
		return StatusInStay
	case "checked_out", "after", "processed":
		return StatusCheckedOut
	case "cancelled", "canceled", "cancel":
		return StatusCancelled
	default:
		return StatusUnknown
	}
}
