package user

import (
	"strings"
	"time"
)

// ProviderGoogle is the sign-in provider id reported for Google accounts.
const ProviderGoogle = "google.com"

// Principal is the verified identity behind a request.
type Principal struct {
	UserID      string
	Email       string
	DisplayName string
	Provider    string
}

func (p Principal) SignedInWith(provider string) bool {
	return strings.EqualFold(strings.TrimSpace(p.Provider), provider)
}

// Profile is the shared users/{id} document. Role is the last role hint written
// by a registrar and is informational only.
type Profile struct {
	ID          string
	Email       string
	DisplayName string
	Role        string
	UpdatedAt   time.Time
}

// Merge overlays the non-empty fields of next onto p.
func (p Profile) Merge(next Profile) Profile {
	out := p
	out.ID = next.ID
	if v := strings.TrimSpace(next.Email); v != "" {
		out.Email = v
	}
	if v := strings.TrimSpace(next.DisplayName); v != "" {
		out.DisplayName = v
	}
	if v := strings.TrimSpace(next.Role); v != "" {
		out.Role = v
	}
	if !next.UpdatedAt.IsZero() {
		out.UpdatedAt = next.UpdatedAt
	}
	return out
}
