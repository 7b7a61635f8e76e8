package app

import (
	"context"
	"fmt"
	"time"

	"stay_sync/internal/domain"
)

// HotelDirectory resolves vendor hotel ids to internal ids. Hotels are
// read-only reference data, so resolved ids are safe to cache; a nil cache
// falls through to the store on every lookup.
type HotelDirectory struct {
	store  domain.RecordStore
	cache  domain.Cache
	ttlSec int
}

func NewHotelDirectory(store domain.RecordStore, cache domain.Cache, ttl time.Duration) *HotelDirectory {
	return &HotelDirectory{store: store, cache: cache, ttlSec: int(ttl.Seconds())}
}

// InternalID returns the internal hotel id for a vendor hotel id, or
// domain.ErrUnknownHotel (wrapped) when no mapping exists.
func (d *HotelDirectory) InternalID(ctx context.Context, vendor, vendorHotelID string) (int64, error) {
	if vendorHotelID == "" {
		return 0, fmt.Errorf("%w: empty vendor hotel id", domain.ErrUnknownHotel)
	}

	key := fmt.Sprintf("hotel:%s:%s", vendor, vendorHotelID)
	if d.cache != nil {
		var id int64
		if ok, _ := d.cache.Get(ctx, key, &id); ok {
			return id, nil
		}
	}

	h, err := d.store.HotelByVendorID(ctx, vendor, vendorHotelID)
	if err != nil {
		return 0, fmt.Errorf("hotel lookup: %w", err)
	}
	if h == nil {
		return 0, fmt.Errorf("%w: %s/%s", domain.ErrUnknownHotel, vendor, vendorHotelID)
	}

	if d.cache != nil {
		_ = d.cache.Set(ctx, key, h.ID, d.ttlSec)
	}
	return h.ID, nil
}
