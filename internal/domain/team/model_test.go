package team

import (
	"testing"
	"time"

	"github.com/riskibarqy/tournament-registration/internal/domain/participant"
)

func TestParsePaymentStatus(t *testing.T) {
	t.Parallel()

	cases := map[string]PaymentStatus{
		"":           StatusPending,
		"pending":    StatusPending,
		" Submitted": StatusSubmitted,
		"verified":   StatusVerified,
		"APPROVED":   StatusVerified,
		"rejected":   StatusRejected,
		"paid":       StatusPending,
	}
	for raw, want := range cases {
		if got := ParsePaymentStatus(raw); got != want {
			t.Fatalf("ParsePaymentStatus(%q) = %q, want %q", raw, got, want)
		}
	}
}

func TestStatusFilter(t *testing.T) {
	t.Parallel()

	if _, err := ParseStatusFilter("paid"); err == nil {
		t.Fatalf("expected error for unknown filter")
	}
	verified, err := ParseStatusFilter("Verified")
	if err != nil || verified != FilterApproved {
		t.Fatalf("expected verified to map to approved filter, got %q (err=%v)", verified, err)
	}
	all, err := ParseStatusFilter("")
	if err != nil || all != FilterAll {
		t.Fatalf("expected empty filter to mean all, got %q (err=%v)", all, err)
	}

	teams := []Team{
		{ID: "p", PaymentStatus: StatusPending},
		{ID: "s", PaymentStatus: StatusSubmitted},
		{ID: "v", PaymentStatus: StatusVerified},
		{ID: "r", PaymentStatus: StatusRejected},
	}
	if got := FilterByStatus(teams, FilterAll); len(got) != 4 {
		t.Fatalf("expected all teams, got %d", len(got))
	}
	if got := FilterByStatus(teams, FilterApproved); len(got) != 1 || got[0].ID != "v" {
		t.Fatalf("unexpected approved teams: %+v", got)
	}
	if got := FilterByStatus(teams, FilterRejected); len(got) != 1 || got[0].ID != "r" {
		t.Fatalf("unexpected rejected teams: %+v", got)
	}
}

func TestPatchApplyLeavesNilFields(t *testing.T) {
	t.Parallel()

	status := StatusSubmitted
	phone := "0812"
	at := time.Date(2026, time.March, 2, 0, 0, 0, 0, time.UTC)
	before := Team{ID: "t-1", TeamName: "Lions", ManagerName: "Ada", ContactEmail: "a@example.com", PaymentStatus: StatusPending}

	after := Patch{PaymentStatus: &status, ContactPhone: &phone, UpdatedAt: at}.Apply(before)
	if after.PaymentStatus != StatusSubmitted || after.ContactPhone != "0812" || !after.UpdatedAt.Equal(at) {
		t.Fatalf("patch not applied: %+v", after)
	}
	if after.ManagerName != "Ada" || after.ContactEmail != "a@example.com" || after.TeamName != "Lions" {
		t.Fatalf("untouched fields changed: %+v", after)
	}
}

func TestLabel(t *testing.T) {
	t.Parallel()

	if got := (Team{ID: "t-1", LegacyName: "Hawks"}).Label(); got != "Hawks" {
		t.Fatalf("expected legacy name label, got %q", got)
	}
	if got := (Team{ID: "t-1"}).Label(); got != "t-1" {
		t.Fatalf("expected id label, got %q", got)
	}
}

func TestNewMemberEntrySnapshotsDetails(t *testing.T) {
	t.Parallel()

	p := participant.Participant{ID: "p-1", Kind: participant.KindPlayer, FullName: "Kim", Details: map[string]string{"position": "GK"}}
	entry := NewMemberEntry("e-1", "t-1", p, time.Time{})
	p.Details["position"] = "FW"

	if entry.EntityID != "p-1" || entry.Kind != participant.KindPlayer || entry.Details["position"] != "GK" {
		t.Fatalf("unexpected entry: %+v", entry)
	}
}
