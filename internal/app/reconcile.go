package app

import (
	"context"
	"fmt"

	"github.com/google/uuid"

	"stay_sync/internal/domain"
)

// Reconciler maps vendor reservation and guest data onto the canonical
// Guest/Stay records. It is vendor-agnostic: every PMS adapter hands it the
// normalized structs from internal/domain.
type Reconciler struct {
	store  domain.RecordStore
	hotels *HotelDirectory
	clock  domain.Clock
}

func NewReconciler(store domain.RecordStore, hotels *HotelDirectory, clock domain.Clock) *Reconciler {
	return &Reconciler{store: store, hotels: hotels, clock: clock}
}

// UpsertGuest creates or updates the Guest keyed by phone number and returns
// its id. Guests without a usable phone are not persisted: phone is the only
// reconciliation key available, so the caller gets a nil id and links no
// guest to the stay.
func (r *Reconciler) UpsertGuest(ctx context.Context, vg domain.VendorGuest) (*int64, error) {
	if !domain.UsablePhone(vg.Phone) {
		return nil, nil
	}

	name := vg.Name
	if name == "" {
		// the record stays addressable even when the vendor sends no name
		name = uuid.NewString()
	}
	lang := domain.ResolveLanguage(vg.Country)
	now := r.clock.Now()

	existing, err := r.store.GuestByPhone(ctx, vg.Phone)
	if err != nil {
		return nil, fmt.Errorf("guest lookup by phone: %w", err)
	}
	if existing != nil {
		g := *existing
		g.Name = name
		g.Phone = vg.Phone
		g.Language = lang
		g.UpdatedAt = now
		if err := r.store.UpdateGuest(ctx, g); err != nil {
			return nil, fmt.Errorf("update guest %d: %w", g.ID, err)
		}
		return &g.ID, nil
	}

	id, err := r.store.CreateGuest(ctx, domain.Guest{
		Name:      name,
		Phone:     vg.Phone,
		Language:  lang,
		CreatedAt: now,
		UpdatedAt: now,
	})
	if err != nil {
		return nil, fmt.Errorf("create guest: %w", err)
	}
	return &id, nil
}

// UpsertStay creates or fully overwrites the Stay keyed by (vendor,
// reservation id). A hotel id that does not resolve yields
// domain.ErrUnknownHotel before anything is written; callers treat that as a
// skippable per-item failure.
func (r *Reconciler) UpsertStay(ctx context.Context, vs domain.VendorStay, guestID *int64) error {
	hotelID, err := r.hotels.InternalID(ctx, vs.Vendor, vs.HotelID)
	if err != nil {
		return err
	}
	now := r.clock.Now()

	existing, err := r.store.StayByReservationID(ctx, vs.Vendor, vs.ReservationID)
	if err != nil {
		return fmt.Errorf("stay lookup: %w", err)
	}
	if existing != nil {
		s := *existing
		s.HotelID = hotelID
		s.VendorGuestID = vs.GuestID
		s.GuestID = guestID
		s.Status = vs.Status
		s.CheckIn = vs.CheckIn
		s.CheckOut = vs.CheckOut
		s.UpdatedAt = now
		if err := r.store.UpdateStay(ctx, s); err != nil {
			return fmt.Errorf("update stay %d: %w", s.ID, err)
		}
		return nil
	}

	if _, err := r.store.CreateStay(ctx, domain.Stay{
		HotelID:       hotelID,
		Vendor:        vs.Vendor,
		ReservationID: vs.ReservationID,
		VendorGuestID: vs.GuestID,
		GuestID:       guestID,
		Status:        vs.Status,
		CheckIn:       vs.CheckIn,
		CheckOut:      vs.CheckOut,
		CreatedAt:     now,
		UpdatedAt:     now,
	}); err != nil {
		return fmt.Errorf("create stay: %w", err)
	}
	return nil
}
