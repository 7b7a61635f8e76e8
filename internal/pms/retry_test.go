package pms_test

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"testing"

	"stay_sync/internal/pms"
)

func identity(raw string) (string, error) { return raw, nil }

func TestCallWithRetry_SucceedsAfterTransientFailures(t *testing.T) {
	reg := pms.NewRegistry(&stubAdapter{name: "Mews"})

	attempts := 0
	call := func(ctx context.Context, param string) (string, error) {
		attempts++
		if attempts < 4 {
			return "", fmt.Errorf("%w: remote 503", pms.ErrUnavailable)
		}
		return "payload:" + param, nil
	}

	got, err := pms.CallWithRetry(context.Background(), reg, "Mews", call, "res-1", identity)
	if err != nil {
		t.Fatalf("unexpected err: %v", err)
	}
	if got != "payload:res-1" {
		t.Fatalf("unexpected result %q", got)
	}
	if attempts != 4 {
		t.Fatalf("expected exactly 4 attempts (3 failures + success), got %d", attempts)
	}
}

func TestCallWithRetry_ExhaustsAtTenAttempts(t *testing.T) {
	reg := pms.NewRegistry(&stubAdapter{name: "Mews"})

	attempts := 0
	cleaned := 0
	call := func(ctx context.Context, param string) (string, error) {
		attempts++
		return "", fmt.Errorf("%w: remote 503", pms.ErrUnavailable)
	}
	clean := func(raw string) (string, error) {
		cleaned++
		return raw, nil
	}

	_, err := pms.CallWithRetry(context.Background(), reg, "Mews", call, "res-1", clean)
	if !errors.Is(err, pms.ErrUnavailable) {
		t.Fatalf("expected ErrUnavailable after exhaustion, got %v", err)
	}
	if attempts != 10 {
		t.Fatalf("expected 10 attempts total, got %d", attempts)
	}
	if cleaned != 0 {
		t.Fatal("no cleaning must happen on failed attempts")
	}
}

func TestCallWithRetry_NonAPIErrorNotRetried(t *testing.T) {
	reg := pms.NewRegistry(&stubAdapter{name: "Mews"})

	attempts := 0
	call := func(ctx context.Context, param string) (string, error) {
		attempts++
		return "", errors.New("boom")
	}

	_, err := pms.CallWithRetry(context.Background(), reg, "Mews", call, "res-1", identity)
	if err == nil || errors.Is(err, pms.ErrUnavailable) {
		t.Fatalf("expected plain error, got %v", err)
	}
	if attempts != 1 {
		t.Fatalf("non-API errors must not be retried, got %d attempts", attempts)
	}
}

func TestCallWithRetry_CleanErrorPropagates(t *testing.T) {
	reg := pms.NewRegistry(&stubAdapter{name: "Mews"})

	call := func(ctx context.Context, param string) (string, error) { return "{", nil }
	clean := func(raw string) (string, error) { return "", errors.New("not json") }

	if _, err := pms.CallWithRetry(context.Background(), reg, "Mews", call, "x", clean); err == nil {
		t.Fatal("expected clean error to propagate")
	}
}

func TestCallWithRetry_UnregisteredVendorIsConfigError(t *testing.T) {
	reg := pms.NewRegistry()

	attempts := 0
	call := func(ctx context.Context, param string) (string, error) {
		attempts++
		return "", nil
	}

	_, err := pms.CallWithRetry(context.Background(), reg, "Mews", call, "x", identity)
	if err == nil || !strings.Contains(err.Error(), "no adapter registered") {
		t.Fatalf("expected configuration error, got %v", err)
	}
	if attempts != 0 {
		t.Fatal("must not call the remote when no adapter is registered")
	}
}
