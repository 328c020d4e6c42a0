package registration

import (
	"strings"
	"time"
)

// Legacy is a document from the pre-split "registrations" collection, where
// every role shared one collection and referenced its team loosely.
type Legacy struct {
	ID        string
	Role      string
	Team      string
	TeamID    string
	TeamName  string
	FullName  string
	Email     string
	Phone     string
	IDNumber  string
	Area      string
	UserID    string
	Details   map[string]string
	CreatedAt time.Time
}

// TeamIdentifier is the first non-empty of team, teamId and teamName.
func (l Legacy) TeamIdentifier() string {
	for _, candidate := range []string{l.Team, l.TeamID, l.TeamName} {
		if v := strings.TrimSpace(candidate); v != "" {
			return v
		}
	}
	return ""
}
