package pms

import (
	"context"
	"errors"
	"fmt"

	"github.com/rs/zerolog/log"

	"stay_sync/internal/adapters/observability"
)

// maxAttempts bounds the retry budget for one vendor call. Retries are
// immediate: vendor APIs are assumed transiently flaky (rate limits,
// momentary blips) and the mocked environment has no use for backoff.
const maxAttempts = 10

// ErrUnavailable is the transient vendor-API failure signal. Vendor clients
// wrap it so the retry wrapper can tell flakiness apart from real errors.
var ErrUnavailable = errors.New("vendor api unavailable")

// RemoteCall is one vendor API request: a single string parameter in, the
// raw response body out.
type RemoteCall func(ctx context.Context, param string) (string, error)

// CallWithRetry invokes call and passes the raw result through clean, the
// vendor adapter's parse step. ErrUnavailable failures are retried up to
// maxAttempts total; exhaustion propagates the API error, which is fatal to
// the enclosing batch. Any other error, including a clean failure, propagates
// on first occurrence. A vendor with no registered adapter is a configuration
// error and never proceeds.
func CallWithRetry[T any](ctx context.Context, reg *Registry, vendor string, call RemoteCall, param string, clean func(raw string) (T, error)) (T, error) {
	var zero T
	if _, ok := reg.Resolve(vendor); !ok {
		return zero, fmt.Errorf("pms: no adapter registered for vendor %q", vendor)
	}

	var lastErr error
	for attempt := 1; attempt <= maxAttempts; attempt++ {
		if err := ctx.Err(); err != nil {
			return zero, err
		}
		raw, err := call(ctx, param)
		if err != nil {
			if errors.Is(err, ErrUnavailable) {
				lastErr = err
				observability.ObserveVendorCall(vendor, "unavailable")
				log.Warn().
					Str("vendor", vendor).
					Int("attempt", attempt).
					Err(err).
					Msg("vendor api call failed, retrying")
				continue
			}
			observability.ObserveVendorCall(vendor, "failed")
			return zero, err
		}
		observability.ObserveVendorCall(vendor, "ok")
		return clean(raw)
	}
	return zero, fmt.Errorf("pms: vendor %q gave up after %d attempts: %w", vendor, maxAttempts, lastErr)
}
