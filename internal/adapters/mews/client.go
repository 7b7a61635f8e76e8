// internal/adapters/mews/client.go
package mews

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"golang.org/x/time/rate"

	"stay_sync/internal/pms"
)

// Client talks to the Mews connector API. It deliberately does not retry:
// transient failures surface as pms.ErrUnavailable and the bounded retry
// budget lives in pms.CallWithRetry.
type Client struct {
	base string
	hc   *http.Client
	key  string
	rl   *rate.Limiter
}

func NewClient(base, key string, rps int) (*Client, error) {
	if base == "" {
		return nil, fmt.Errorf("base URL is required")
	}
	if rps <= 0 {
		rps = 5
	}
	return &Client{
		base: strings.TrimRight(base, "/"),
		hc:   &http.Client{Timeout: 20 * time.Second},
		key:  key,
		rl:   rate.NewLimiter(rate.Limit(rps), rps),
	}, nil
}

// ---- Vendor remote calls (raw JSON out; parsing stays in the adapter) ----

func (c *Client) ReservationsForCheckinDate(ctx context.Context, date string) (string, error) {
	return c.get(ctx, fmt.Sprintf("%s/reservations?checkin=%s", c.base, url.QueryEscape(date)))
}

func (c *Client) ReservationDetail(ctx context.Context, reservationID string) (string, error) {
	return c.get(ctx, fmt.Sprintf("%s/reservations/%s", c.base, url.PathEscape(reservationID)))
}

func (c *Client) GuestDetail(ctx context.Context, guestID string) (string, error) {
	return c.get(ctx, fmt.Sprintf("%s/guests/%s", c.base, url.PathEscape(guestID)))
}

// get performs one GET with client-side rate limiting. Rate-limit and 5xx
// responses, and plain network errors, map to pms.ErrUnavailable; everything
// else is a hard failure.
func (c *Client) get(ctx context.Context, u string) (string, error) {
	if err := c.rl.Wait(ctx); err != nil {
		return "", err
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, u, nil)
	if err != nil {
		return "", err
	}
	if c.key != "" {
		req.Header.Set("X-API-Key", c.key)
	}
	req.Header.Set("Accept", "application/json")
	req.Header.Set("User-Agent", "stay-sync/1.0")

	resp, err := c.hc.Do(req)
	if err != nil {
		if ctx.Err() != nil {
			return "", ctx.Err()
		}
		return "", fmt.Errorf("%w: %v", pms.ErrUnavailable, err)
	}
	defer resp.Body.Close()

	switch resp.StatusCode {
	case http.StatusOK:
		b, err := io.ReadAll(resp.Body)
		if err != nil {
			return "", fmt.Errorf("%w: read body: %v", pms.ErrUnavailable, err)
		}
		return string(b), nil

	case http.StatusTooManyRequests, http.StatusInternalServerError,
		http.StatusBadGateway, http.StatusServiceUnavailable, http.StatusGatewayTimeout:
		_, _ = io.Copy(io.Discard, resp.Body)
		return "", fmt.Errorf("%w: remote %d", pms.ErrUnavailable, resp.StatusCode)

	default:
		b, _ := io.ReadAll(io.LimitReader(resp.Body, 4096))
		return "", fmt.Errorf("mews: bad status %d: %s", resp.StatusCode, strings.TrimSpace(string(b)))
	}
}
