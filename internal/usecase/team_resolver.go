package usecase

import (
	"context"
	"strings"

	"github.com/riskibarqy/tournament-registration/internal/domain/team"
)

// TeamResolver maps a loose team identifier onto a canonical team. It is the
// only place aware that forms wrote the team name under two field names.
type TeamResolver struct {
	teams team.Repository
}

func NewTeamResolver(teams team.Repository) *TeamResolver {
	return &TeamResolver{teams: teams}
}

// ResolveTeam tries, in order: document id, teamName, legacy name. Ties on a
// name return the first match the store yields.
func (r *TeamResolver) ResolveTeam(ctx context.Context, identifier string) (team.Team, bool, error) {
	ctx, span := startUsecaseSpan(ctx, "usecase.TeamResolver.ResolveTeam")
	defer span.End()

	identifier = strings.TrimSpace(identifier)
	if identifier == "" {
		return team.Team{}, false, nil
	}

	byID, found, err := r.teams.GetByID(ctx, identifier)
	if err != nil {
		recordSpanError(span, err)
		return team.Team{}, false, storeErr("resolve team by id", err)
	}
	if found {
		return byID, true, nil
	}

	for _, field := range []team.Field{team.FieldTeamName, team.FieldLegacyName} {
		matches, err := r.teams.FindByField(ctx, field, identifier)
		if err != nil {
			recordSpanError(span, err)
			return team.Team{}, false, storeErr("resolve team by "+string(field), err)
		}
		if len(matches) > 0 {
			return matches[0], true, nil
		}
	}

	return team.Team{}, false, nil
}

func (r *TeamResolver) ResolveTeamID(ctx context.Context, identifier string) (string, bool, error) {
	resolved, found, err := r.ResolveTeam(ctx, identifier)
	if err != nil || !found {
		return "", false, err
	}
	return resolved.ID, true, nil
}
