package mews

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"
	"time"

	"github.com/rs/zerolog/log"

	"stay_sync/internal/adapters/observability"
	"stay_sync/internal/app"
	"stay_sync/internal/domain"
	"stay_sync/internal/pms"
)

const (
	vendorName = "Mews"
	dateLayout = "2006-01-02"
)

// API is the slice of the Mews connector the adapter needs. Calls return raw
// JSON so "is this valid JSON" and "does it have the fields we need" fail
// separately, and may fail with pms.ErrUnavailable at any time.
type API interface {
	ReservationsForCheckinDate(ctx context.Context, date string) (string, error)
	ReservationDetail(ctx context.Context, reservationID string) (string, error)
	GuestDetail(ctx context.Context, guestID string) (string, error)
}

// Adapter implements pms.Adapter for Mews.
type Adapter struct {
	api   API
	recon *app.Reconciler
	reg   *pms.Registry
	clock domain.Clock
}

func New(api API, recon *app.Reconciler, reg *pms.Registry, clock domain.Clock) *Adapter {
	return &Adapter{api: api, recon: recon, reg: reg, clock: clock}
}

func (a *Adapter) Name() string { return vendorName }

// ---- Mews payload shapes ----

type webhookBody struct {
	Events []struct {
		Name  string `json:"Name"`
		Value struct {
			ReservationID string `json:"ReservationId"`
		} `json:"Value"`
	} `json:"Events"`
}

type reservationBody struct {
	ReservationID     string `json:"ReservationId"`
	HotelID           string `json:"HotelId"`
	GuestID           string `json:"GuestId"`
	Status            string `json:"Status"`
	CheckInDate       string `json:"CheckInDate"`
	CheckOutDate      string `json:"CheckOutDate"`
	BreakfastIncluded *bool  `json:"BreakfastIncluded"`
}

type guestBody struct {
	GuestID string `json:"GuestId"`
	Name    string `json:"Name"`
	Phone   string `json:"Phone"`
	Country string `json:"Country"`
}

// CleanPayload parses a raw Mews webhook body into the normalized payload.
func (a *Adapter) CleanPayload(raw string) (pms.Payload, error) {
	if strings.TrimSpace(raw) == "" {
		return pms.Payload{}, fmt.Errorf("%w: empty body", domain.ErrMalformedPayload)
	}
	var body webhookBody
	if err := json.Unmarshal([]byte(raw), &body); err != nil {
		return pms.Payload{}, fmt.Errorf("%w: %v", domain.ErrMalformedPayload, err)
	}

	p := pms.Payload{Vendor: vendorName}
	for _, ev := range body.Events {
		if ev.Value.ReservationID == "" {
			return pms.Payload{}, fmt.Errorf("%w: event %q without ReservationId", domain.ErrMalformedPayload, ev.Name)
		}
		p.Events = append(p.Events, pms.Event{ReservationID: ev.Value.ReservationID})
	}
	return p, nil
}

func (a *Adapter) HandleWebhook(ctx context.Context, p pms.Payload) bool {
	for _, ev := range p.Events {
		if err := a.syncReservation(ctx, ev.ReservationID); err != nil {
			if domain.Skippable(err) {
				observability.ObserveReconcile(vendorName, "webhook", "skipped")
				log.Warn().
					Str("vendor", vendorName).
					Str("reservation_id", ev.ReservationID).
					Err(err).
					Msg("event skipped")
				continue
			}
			log.Error().
				Str("vendor", vendorName).
				Str("reservation_id", ev.ReservationID).
				Err(err).
				Msg("webhook batch aborted")
			return false
		}
		observability.ObserveReconcile(vendorName, "webhook", "reconciled")
	}
	return true
}

func (a *Adapter) PullTomorrowsStays(ctx context.Context) bool {
	tomorrow := a.clock.Now().AddDate(0, 0, 1).Format(dateLayout)

	list, err := pms.CallWithRetry(ctx, a.reg, vendorName, a.api.ReservationsForCheckinDate, tomorrow, decodeReservationList)
	if err != nil {
		log.Error().Str("vendor", vendorName).Str("checkin", tomorrow).Err(err).Msg("daily pull failed")
		return false
	}

	for _, rb := range list {
		vs, err := mapReservation(rb)
		if err == nil {
			err = a.reconcile(ctx, vs)
		}
		if err != nil {
			if domain.Skippable(err) {
				observability.ObserveReconcile(vendorName, "pull", "skipped")
				log.Warn().
					Str("vendor", vendorName).
					Str("reservation_id", rb.ReservationID).
					Err(err).
					Msg("reservation skipped")
				continue
			}
			log.Error().
				Str("vendor", vendorName).
				Str("reservation_id", rb.ReservationID).
				Err(err).
				Msg("daily pull aborted")
			return false
		}
		observability.ObserveReconcile(vendorName, "pull", "reconciled")
	}
	return true
}

// StayHasBreakfast asks Mews live whether the reservation includes breakfast.
// nil means the vendor did not say; we never guess and never persist the
// answer.
func (a *Adapter) StayHasBreakfast(ctx context.Context, stay domain.Stay) (*bool, error) {
	rb, err := pms.CallWithRetry(ctx, a.reg, vendorName, a.api.ReservationDetail, stay.ReservationID, decodeReservation)
	if err != nil {
		return nil, err
	}
	return rb.BreakfastIncluded, nil
}

// syncReservation fetches authoritative detail for one reservation and
// reconciles guest then stay.
func (a *Adapter) syncReservation(ctx context.Context, reservationID string) error {
	rb, err := pms.CallWithRetry(ctx, a.reg, vendorName, a.api.ReservationDetail, reservationID, decodeReservation)
	if err != nil {
		return err
	}
	vs, err := mapReservation(rb)
	if err != nil {
		return err
	}
	return a.reconcile(ctx, vs)
}

func (a *Adapter) reconcile(ctx context.Context, vs domain.VendorStay) error {
	gb, err := pms.CallWithRetry(ctx, a.reg, vendorName, a.api.GuestDetail, vs.GuestID, decodeGuest)
	if err != nil {
		return err
	}
	guestID, err := a.recon.UpsertGuest(ctx, domain.VendorGuest{
		GuestID: gb.GuestID,
		Name:    gb.Name,
		Phone:   gb.Phone,
		Country: gb.Country,
	})
	if err != nil {
		return err
	}
	return a.recon.UpsertStay(ctx, vs, guestID)
}

// ---- parse steps ----

func decodeReservation(raw string) (reservationBody, error) {
	var rb reservationBody
	if err := json.Unmarshal([]byte(raw), &rb); err != nil {
		return reservationBody{}, fmt.Errorf("%w: reservation detail: %v", domain.ErrMalformedPayload, err)
	}
	return rb, nil
}

func decodeReservationList(raw string) ([]reservationBody, error) {
	var list []reservationBody
	if err := json.Unmarshal([]byte(raw), &list); err != nil {
		return nil, fmt.Errorf("%w: reservation list: %v", domain.ErrMalformedPayload, err)
	}
	return list, nil
}

func decodeGuest(raw string) (guestBody, error) {
	var gb guestBody
	if err := json.Unmarshal([]byte(raw), &gb); err != nil {
		return guestBody{}, fmt.Errorf("%w: guest detail: %v", domain.ErrMalformedPayload, err)
	}
	return gb, nil
}

// mapReservation validates required fields and converts the Mews shape into
// the vendor-agnostic one. Missing ids and unparsable dates are data errors
// (skippable per item), not batch failures.
func mapReservation(rb reservationBody) (domain.VendorStay, error) {
	if rb.ReservationID == "" {
		return domain.VendorStay{}, fmt.Errorf("%w: missing ReservationId", domain.ErrBadValue)
	}
	if rb.HotelID == "" {
		return domain.VendorStay{}, fmt.Errorf("%w: reservation %s missing HotelId", domain.ErrBadValue, rb.ReservationID)
	}
	if rb.GuestID == "" {
		return domain.VendorStay{}, fmt.Errorf("%w: reservation %s missing GuestId", domain.ErrBadValue, rb.ReservationID)
	}
	checkIn, err := time.Parse(dateLayout, rb.CheckInDate)
	if err != nil {
		return domain.VendorStay{}, fmt.Errorf("%w: reservation %s CheckInDate %q", domain.ErrBadValue, rb.ReservationID, rb.CheckInDate)
	}
	checkOut, err := time.Parse(dateLayout, rb.CheckOutDate)
	if err != nil {
		return domain.VendorStay{}, fmt.Errorf("%w: reservation %s CheckOutDate %q", domain.ErrBadValue, rb.ReservationID, rb.CheckOutDate)
	}

	return domain.VendorStay{
		Vendor:        vendorName,
		ReservationID: rb.ReservationID,
		HotelID:       rb.HotelID,
		GuestID:       rb.GuestID,
		Status:        domain.ParseStayStatus(rb.Status),
		CheckIn:       checkIn,
		CheckOut:      checkOut,
	}, nil
}
