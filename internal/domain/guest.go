package domain

import "time"

// Guest is the canonical record of one person, deduplicated by phone number.
// Guests without a usable phone are never persisted; phone is the only
// reconciliation key the vendors give us.
type Guest struct {
	ID        int64
	Name      string
	Phone     string
	Language  string
	CreatedAt time.Time
	UpdatedAt time.Time
}

// PhoneNotAvailable is the sentinel some vendors send instead of omitting
// the phone field.
const PhoneNotAvailable = "Not available"

func UsablePhone(phone string) bool {
	return phone != "" && phone != PhoneNotAvailable
}
