package domain

import "errors"

var (
	// ErrMalformedPayload: the webhook body is empty or not parsable. Aborts
	// that webhook invocation.
	ErrMalformedPayload = errors.New("malformed payload")

	// ErrUnknownHotel: a stay references a hotel id we have no mapping for.
	// Skippable per item.
	ErrUnknownHotel = errors.New("unknown hotel id")

	// ErrBadValue: a required field is missing or unusable. Skippable per item.
	ErrBadValue = errors.New("bad field value")
)

// Skippable reports whether err is one of the per-item data errors a batch
// may swallow and continue past. Everything else aborts the whole batch so
// programming errors don't masquerade as data errors.
func Skippable(err error) bool {
	return errors.Is(err, ErrUnknownHotel) || errors.Is(err, ErrBadValue)
}
