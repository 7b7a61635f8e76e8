package httpserver_test

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	server "stay_sync/internal/adapters/http_server"
	"stay_sync/internal/domain"
	"stay_sync/internal/pms"
)

// ---- fakes ----

type fakeAdapter struct {
	name       string
	webhookOK  bool
	sawPayload pms.Payload
	breakfast  *bool
	bfErr      error
}

func (f *fakeAdapter) Name() string { return f.name }

func (f *fakeAdapter) CleanPayload(raw string) (pms.Payload, error) {
	if strings.TrimSpace(raw) == "" || !strings.HasPrefix(strings.TrimSpace(raw), "{") {
		return pms.Payload{}, fmt.Errorf("%w: bad body", domain.ErrMalformedPayload)
	}
	return pms.Payload{Vendor: f.name, Events: []pms.Event{{ReservationID: "res-1"}}}, nil
}

func (f *fakeAdapter) HandleWebhook(ctx context.Context, p pms.Payload) bool {
	f.sawPayload = p
	return f.webhookOK
}

func (f *fakeAdapter) PullTomorrowsStays(ctx context.Context) bool { return true }

func (f *fakeAdapter) StayHasBreakfast(ctx context.Context, stay domain.Stay) (*bool, error) {
	return f.breakfast, f.bfErr
}

type fakeStore struct {
	stay *domain.Stay
}

func (f *fakeStore) GuestByPhone(ctx context.Context, phone string) (*domain.Guest, error) {
	return nil, nil
}
func (f *fakeStore) CreateGuest(ctx context.Context, g domain.Guest) (int64, error) { return 0, nil }
func (f *fakeStore) UpdateGuest(ctx context.Context, g domain.Guest) error          { return nil }
func (f *fakeStore) StayByReservationID(ctx context.Context, vendor, reservationID string) (*domain.Stay, error) {
	if f.stay != nil && f.stay.ReservationID == reservationID {
		return f.stay, nil
	}
	return nil, nil
}
func (f *fakeStore) CreateStay(ctx context.Context, s domain.Stay) (int64, error) { return 0, nil }
func (f *fakeStore) UpdateStay(ctx context.Context, s domain.Stay) error          { return nil }
func (f *fakeStore) HotelByVendorID(ctx context.Context, vendor, vendorHotelID string) (*domain.Hotel, error) {
	return nil, nil
}

func newTestServer(adapter *fakeAdapter, store *fakeStore) *httptest.Server {
	reg := pms.NewRegistry(adapter)
	srv := server.New()
	srv.MountHandlers(&server.Handlers{Registry: reg, Store: store})
	return httptest.NewServer(srv.Mux())
}

// ---- webhook endpoint ----

func TestWebhook_UnknownVendor404(t *testing.T) {
	ts := newTestServer(&fakeAdapter{name: "Mews", webhookOK: true}, &fakeStore{})
	defer ts.Close()

	resp, err := http.Post(ts.URL+"/v1/pms/opera/webhook", "application/json", strings.NewReader(`{}`))
	if err != nil {
		t.Fatalf("post: %v", err)
	}
	defer resp.Body.Close()
	if resp.StatusCode != http.StatusNotFound {
		t.Fatalf("expected 404, got %d", resp.StatusCode)
	}
}

func TestWebhook_MalformedPayload400(t *testing.T) {
	ts := newTestServer(&fakeAdapter{name: "Mews", webhookOK: true}, &fakeStore{})
	defer ts.Close()

	resp, err := http.Post(ts.URL+"/v1/pms/mews/webhook", "application/json", strings.NewReader("not json"))
	if err != nil {
		t.Fatalf("post: %v", err)
	}
	defer resp.Body.Close()
	if resp.StatusCode != http.StatusBadRequest {
		t.Fatalf("expected 400, got %d", resp.StatusCode)
	}
}

func TestWebhook_Success200(t *testing.T) {
	adapter := &fakeAdapter{name: "Mews", webhookOK: true}
	ts := newTestServer(adapter, &fakeStore{})
	defer ts.Close()

	resp, err := http.Post(ts.URL+"/v1/pms/mews/webhook", "application/json", strings.NewReader(`{"Events":[]}`))
	if err != nil {
		t.Fatalf("post: %v", err)
	}
	defer resp.Body.Close()
	if resp.StatusCode != http.StatusOK {
		t.Fatalf("expected 200, got %d", resp.StatusCode)
	}
	if len(adapter.sawPayload.Events) != 1 {
		t.Fatal("cleaned payload should reach HandleWebhook")
	}
}

func TestWebhook_BatchFailure502(t *testing.T) {
	ts := newTestServer(&fakeAdapter{name: "Mews", webhookOK: false}, &fakeStore{})
	defer ts.Close()

	resp, err := http.Post(ts.URL+"/v1/pms/mews/webhook", "application/json", strings.NewReader(`{"Events":[]}`))
	if err != nil {
		t.Fatalf("post: %v", err)
	}
	defer resp.Body.Close()
	if resp.StatusCode != http.StatusBadGateway {
		t.Fatalf("expected 502, got %d", resp.StatusCode)
	}
}

// ---- breakfast endpoint ----

func TestBreakfast_TriState(t *testing.T) {
	stay := &domain.Stay{ID: 1, Vendor: "Mews", ReservationID: "res-1"}

	cases := []struct {
		name      string
		breakfast *bool
		want      string
	}{
		{"true", ptr(true), "true"},
		{"false", ptr(false), "false"},
		{"unknown", nil, "null"},
	}
	for _, c := range cases {
		adapter := &fakeAdapter{name: "Mews", breakfast: c.breakfast}
		ts := newTestServer(adapter, &fakeStore{stay: stay})

		resp, err := http.Get(ts.URL + "/v1/stays/res-1/breakfast?vendor=mews")
		if err != nil {
			t.Fatalf("%s: get: %v", c.name, err)
		}
		var out map[string]json.RawMessage
		if err := json.NewDecoder(resp.Body).Decode(&out); err != nil {
			t.Fatalf("%s: decode: %v", c.name, err)
		}
		resp.Body.Close()
		ts.Close()

		if resp.StatusCode != http.StatusOK {
			t.Fatalf("%s: expected 200, got %d", c.name, resp.StatusCode)
		}
		if got := string(out["breakfast"]); got != c.want {
			t.Fatalf("%s: breakfast = %s, want %s", c.name, got, c.want)
		}
	}
}

func TestBreakfast_MissingVendor400(t *testing.T) {
	ts := newTestServer(&fakeAdapter{name: "Mews"}, &fakeStore{})
	defer ts.Close()

	resp, err := http.Get(ts.URL + "/v1/stays/res-1/breakfast")
	if err != nil {
		t.Fatalf("get: %v", err)
	}
	defer resp.Body.Close()
	if resp.StatusCode != http.StatusBadRequest {
		t.Fatalf("expected 400, got %d", resp.StatusCode)
	}
}

func TestBreakfast_UnknownStay404(t *testing.T) {
	ts := newTestServer(&fakeAdapter{name: "Mews"}, &fakeStore{})
	defer ts.Close()

	resp, err := http.Get(ts.URL + "/v1/stays/res-404/breakfast?vendor=mews")
	if err != nil {
		t.Fatalf("get: %v", err)
	}
	defer resp.Body.Close()
	if resp.StatusCode != http.StatusNotFound {
		t.Fatalf("expected 404, got %d", resp.StatusCode)
	}
}

func TestBreakfast_VendorDown502(t *testing.T) {
	stay := &domain.Stay{ID: 1, Vendor: "Mews", ReservationID: "res-1"}
	adapter := &fakeAdapter{name: "Mews", bfErr: errors.New("vendor api unavailable")}
	ts := newTestServer(adapter, &fakeStore{stay: stay})
	defer ts.Close()

	resp, err := http.Get(ts.URL + "/v1/stays/res-1/breakfast?vendor=mews")
	if err != nil {
		t.Fatalf("get: %v", err)
	}
	defer resp.Body.Close()
	if resp.StatusCode != http.StatusBadGateway {
		t.Fatalf("expected 502, got %d", resp.StatusCode)
	}
}

func ptr[T any](v T) *T { return &v }
