package domain_test

import (
	"testing"

	"stay_sync/internal/domain"
)

func TestResolveLanguage(t *testing.T) {
	cases := []struct {
		country string
		want    string
	}{
		{"nl", "Dutch"},
		{"NL", "Dutch"},
		{" de ", "German"},
		{"fr", "French"},
		{"", domain.LanguageNone},
		{"xx", domain.LanguageNone},
		{"Not a country", domain.LanguageNone},
	}
	for _, c := range cases {
		if got := domain.ResolveLanguage(c.country); got != c.want {
			t.Errorf("ResolveLanguage(%q) = %q, want %q", c.country, got, c.want)
		}
	}
}

func TestParseStayStatus(t *testing.T) {
	cases := []struct {
		in   string
		want domain.StayStatus
	}{
		{"Booked", domain.StatusBooked},
		{"checked-out", domain.StatusCheckedOut},
		{"CANCELLED", domain.StatusCancelled},
		{"canceled", domain.StatusCancelled},
		{"instay", domain.StatusInStay},
		{"", domain.StatusUnknown},
		{"weird", domain.StatusUnknown},
	}
	for _, c := range cases {
		if got := domain.ParseStayStatus(c.in); got != c.want {
			t.Errorf("ParseStayStatus(%q) = %q, want %q", c.in, got, c.want)
		}
	}
}

func TestUsablePhone(t *testing.T) {
	if domain.UsablePhone("") {
		t.Error("empty phone should not be usable")
	}
	if domain.UsablePhone(domain.PhoneNotAvailable) {
		t.Error("sentinel phone should not be usable")
	}
	if !domain.UsablePhone("+31612345678") {
		t.Error("real phone should be usable")
	}
}
