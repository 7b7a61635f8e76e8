// internal/pms/adapter.go
package pms

import (
	"context"

	"stay_sync/internal/domain"
)

// Payload is the normalized webhook shape every vendor adapter maps its raw
// body into. Vendor-specific field names never leave the adapter.
type Payload struct {
	Vendor string
	Events []Event
}

// Event is one reservation change notification.
type Event struct {
	ReservationID string
}

// Adapter is the capability set every Property Management System integration
// provides. One implementation per vendor, registered by name at startup.
type Adapter interface {
	// Name is the short vendor name. It keys the registry and labels retries
	// and metrics.
	Name() string

	// CleanPayload parses a raw webhook body into a Payload. Empty or
	// unparsable input fails with domain.ErrMalformedPayload (wrapped);
	// callers must not proceed on error.
	CleanPayload(raw string) (Payload, error)

	// HandleWebhook fetches authoritative detail for each event and
	// reconciles guest then stay. Per-event data errors (unknown hotel, bad
	// value) are skipped and processing continues; any other error aborts
	// the batch and reports false.
	HandleWebhook(ctx context.Context, p Payload) bool

	// PullTomorrowsStays fetches every reservation checking in tomorrow
	// (calendar date, current date + 1 day) and reconciles each with the
	// same per-item policy as HandleWebhook.
	PullTomorrowsStays(ctx context.Context) bool

	// StayHasBreakfast answers live from the vendor; nil means unknown.
	// The answer is never persisted.
	StayHasBreakfast(ctx context.Context, stay domain.Stay) (*bool, error)
}
