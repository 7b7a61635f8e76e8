package domain

import (
	"context"
	"time"
)

// RecordStore is the persistence port for canonical records. Lookups return
// (nil, nil) when no record matches; Create calls return the new id directly
// so callers never depend on read-after-write consistency.
type RecordStore interface {
	// Guest paths
	GuestByPhone(ctx context.Context, phone string) (*Guest, error)
	CreateGuest(ctx context.Context, g Guest) (int64, error)
	UpdateGuest(ctx context.Context, g Guest) error

	// Stay paths
	StayByReservationID(ctx context.Context, vendor, reservationID string) (*Stay, error)
	CreateStay(ctx context.Context, s Stay) (int64, error)
	UpdateStay(ctx context.Context, s Stay) error

	// Hotel reference data (read-only)
	HotelByVendorID(ctx context.Context, vendor, vendorHotelID string) (*Hotel, error)
}

type Cache interface {
	Get(ctx context.Context, key string, dst any) (bool, error)
	Set(ctx context.Context, key string, v any, ttlSec int) error
	Del(ctx context.Context, key string) error
}

// Clock is injected wherever reconciliation stamps records, so timestamps
// reflect actual call time and tests can pin them.
type Clock interface {
	Now() time.Time
}

type ClockFunc func() time.Time

func (f ClockFunc) Now() time.Time { return f() }
