package postgres

import (
	"database/sql"
	"fmt"
	"testing"

	"github.com/riskibarqy/tournament-registration/internal/domain/team"
)

func TestIsNotFound(t *testing.T) {
	if !isNotFound(fmt.Errorf("get team: %w", sql.ErrNoRows)) {
		t.Fatalf("expected wrapped ErrNoRows to be not found")
	}
	if isNotFound(fmt.Errorf("connection refused")) {
		t.Fatalf("expected unrelated error to be found")
	}
}

func TestOptionalString(t *testing.T) {
	if optionalString("   ") != nil {
		t.Fatalf("expected nil for blank value")
	}
	got := optionalString(" a@b.c ")
	if got == nil || *got != "a@b.c" {
		t.Fatalf("expected trimmed value, got %v", got)
	}
}

func TestDetailsRoundTrip(t *testing.T) {
	raw, err := encodeDetails(nil)
	if err != nil {
		t.Fatalf("encode nil details: %v", err)
	}
	if string(raw) != "{}" {
		t.Fatalf("expected empty object, got %s", raw)
	}

	raw, err = encodeDetails(map[string]string{"position": "keeper"})
	if err != nil {
		t.Fatalf("encode details: %v", err)
	}
	got, err := decodeDetails(raw)
	if err != nil {
		t.Fatalf("decode details: %v", err)
	}
	if got["position"] != "keeper" {
		t.Fatalf("unexpected details: %+v", got)
	}

	empty, err := decodeDetails([]byte("{}"))
	if err != nil || empty != nil {
		t.Fatalf("expected nil map for empty object, got %+v err=%v", empty, err)
	}
}

func TestEncodeDetailsSortsKeys(t *testing.T) {
	raw, err := encodeDetails(map[string]string{"position": "keeper", "area": "Kibera"})
	if err != nil {
		t.Fatalf("encode: %v", err)
	}
	if string(raw) != `{"area":"Kibera","position":"keeper"}` {
		t.Fatalf("unexpected encoding: %s", raw)
	}
}

func TestTeamFieldColumn(t *testing.T) {
	column, err := teamFieldColumn(team.FieldLegacyName)
	if err != nil || column != "legacy_name" {
		t.Fatalf("unexpected column %q err=%v", column, err)
	}
	if _, err := teamFieldColumn(team.Field("region")); err == nil {
		t.Fatalf("expected error for unsupported field")
	}
}

func TestTeamRowProjectsLegacyStatus(t *testing.T) {
	got := teamFromRow(teamTableModel{ID: "t1", PaymentStatus: "approved"})
	if got.PaymentStatus != team.StatusVerified || !got.Approved() {
		t.Fatalf("expected legacy approved to read as verified, got %s", got.PaymentStatus)
	}
}
