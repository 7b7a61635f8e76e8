package domain

import "time"

// VendorStay is a reservation as one vendor reports it, already parsed into
// a typed structure by that vendor's adapter. Ids are still in the vendor's
// namespace; the reconciliation engine resolves them.
type VendorStay struct {
	Vendor        string
	ReservationID string
	HotelID       string
	GuestID       string
	Status        StayStatus
	CheckIn       time.Time
	CheckOut      time.Time
}

// VendorGuest is guest detail as one vendor reports it.
type VendorGuest struct {
	GuestID string
	Name    string
	Phone   string
	Country string
}
