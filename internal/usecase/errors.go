package usecase

import (
	"errors"
	"fmt"
	"strings"

	"github.com/riskibarqy/tournament-registration/internal/domain/team"
)

var (
	ErrInvalidInput           = errors.New("invalid input")
	ErrNotFound               = errors.New("resource not found")
	ErrUnauthorized           = errors.New("unauthorized")
	ErrForbidden              = errors.New("forbidden")
	ErrAuthenticationRequired = errors.New("authentication required")
	ErrTeamNotFound           = errors.New("team not found")
	ErrEntityNotFound         = errors.New("entity not found")
	ErrDuplicateRegistration  = errors.New("duplicate registration")
	ErrStoreUnavailable       = errors.New("store unavailable")
	ErrDependencyUnavailable  = errors.New("dependency unavailable")
)

// Duplicate guard names.
const (
	GuardUser         = "user"
	GuardTeamName     = "team_name"
	GuardContactEmail = "contact_email"
)

// DuplicateTeamError reports the guard that refused a team registration and
// the teams it found.
type DuplicateTeamError struct {
	Guard    string
	Existing []team.Team
}

func (e *DuplicateTeamError) Error() string {
	ids := make([]string, 0, len(e.Existing))
	for _, t := range e.Existing {
		ids = append(ids, t.ID)
	}
	return fmt.Sprintf("%s: %s guard matched existing team(s) %s", ErrDuplicateRegistration, e.Guard, strings.Join(ids, ","))
}

func (e *DuplicateTeamError) Unwrap() error {
	return ErrDuplicateRegistration
}

func storeErr(op string, err error) error {
	return fmt.Errorf("%w: %s: %w", ErrStoreUnavailable, op, err)
}
