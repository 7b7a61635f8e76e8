package domain

// Hotel maps a vendor-specific hotel id to our internal id. Reference data
// only; the reconciliation engine never mutates it.
type Hotel struct {
	ID            int64
	Vendor        string
	VendorHotelID string
	Name          string
}
