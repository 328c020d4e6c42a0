package usecase

import (
	"context"
	"fmt"
	"strings"

	"github.com/riskibarqy/tournament-registration/internal/domain/team"
	"github.com/sourcegraph/conc/pool"
)

var teamOwnerFields = []team.Field{team.FieldUploaderID, team.FieldManagerID, team.FieldCoachID}

// DuplicateGuard runs the advisory duplicate checks used before a team
// registration. Nothing here is enforced by the store.
type DuplicateGuard struct {
	teams team.Repository
}

func NewDuplicateGuard(teams team.Repository) *DuplicateGuard {
	return &DuplicateGuard{teams: teams}
}

// FindTeamsByUser returns teams the user uploaded, manages or coaches. The
// store has no OR query, so each owner field is queried separately and the
// results are unioned by id.
func (g *DuplicateGuard) FindTeamsByUser(ctx context.Context, userID string) ([]team.Team, error) {
	ctx, span := startUsecaseSpan(ctx, "usecase.DuplicateGuard.FindTeamsByUser")
	defer span.End()

	userID = strings.TrimSpace(userID)
	if userID == "" {
		return nil, fmt.Errorf("%w: user id is required", ErrInvalidInput)
	}

	results := make([][]team.Team, len(teamOwnerFields))
	p := pool.New().WithErrors().WithContext(ctx)
	for i, field := range teamOwnerFields {
		p.Go(func(ctx context.Context) error {
			found, err := g.teams.FindByField(ctx, field, userID)
			if err != nil {
				return fmt.Errorf("find teams by %s: %w", field, err)
			}
			results[i] = found
			return nil
		})
	}
	if err := p.Wait(); err != nil {
		recordSpanError(span, err)
		return nil, storeErr("find teams by user", err)
	}

	return team.UnionByID(results...), nil
}

// FindTeamsByEmail catches re-registration under another account with the
// same contact email.
func (g *DuplicateGuard) FindTeamsByEmail(ctx context.Context, email string) ([]team.Team, error) {
	ctx, span := startUsecaseSpan(ctx, "usecase.DuplicateGuard.FindTeamsByEmail")
	defer span.End()

	email = strings.TrimSpace(email)
	if email == "" {
		return nil, fmt.Errorf("%w: contact email is required", ErrInvalidInput)
	}

	found, err := g.teams.FindByField(ctx, team.FieldContactEmail, email)
	if err != nil {
		recordSpanError(span, err)
		return nil, storeErr("find teams by email", err)
	}
	return found, nil
}
