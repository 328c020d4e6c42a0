package usecase

import (
	"context"
	"fmt"
	"strings"

	"github.com/riskibarqy/tournament-registration/internal/domain/team"
	"github.com/riskibarqy/tournament-registration/internal/platform/changefeed"
	"github.com/riskibarqy/tournament-registration/internal/platform/logging"
)

// ChangeSubscriber delivers change notifications for a collection until ctx
// is done.
type ChangeSubscriber interface {
	Subscribe(ctx context.Context, collection changefeed.Collection) <-chan changefeed.Change
}

type ListTeamsInput struct {
	Status team.StatusFilter
	Dedupe bool
}

// DashboardService serves the staff team listings, one-shot or live.
type DashboardService struct {
	teams      team.Repository
	subscriber ChangeSubscriber
	logger     *logging.Logger
}

func NewDashboardService(teams team.Repository, subscriber ChangeSubscriber, logger *logging.Logger) *DashboardService {
	if logger == nil {
		logger = logging.Default()
	}
	return &DashboardService{teams: teams, subscriber: subscriber, logger: logger}
}

// ListTeams returns teams newest first, optionally de-duplicated for display
// and filtered by status. Hidden duplicates stay in the store.
func (s *DashboardService) ListTeams(ctx context.Context, input ListTeamsInput) ([]team.Team, error) {
	ctx, span := startUsecaseSpan(ctx, "usecase.DashboardService.ListTeams")
	defer span.End()

	teams, err := s.teams.List(ctx)
	if err != nil {
		recordSpanError(span, err)
		return nil, storeErr("list teams", err)
	}
	if input.Dedupe {
		teams = team.Dedupe(teams)
	}
	return team.FilterByStatus(teams, input.Status), nil
}

func (s *DashboardService) GetTeam(ctx context.Context, teamID string) (team.Team, error) {
	ctx, span := startUsecaseSpan(ctx, "usecase.DashboardService.GetTeam")
	defer span.End()

	teamID = strings.TrimSpace(teamID)
	if teamID == "" {
		return team.Team{}, fmt.Errorf("%w: team id is required", ErrInvalidInput)
	}
	item, found, err := s.teams.GetByID(ctx, teamID)
	if err != nil {
		return team.Team{}, storeErr("get team", err)
	}
	if !found {
		return team.Team{}, fmt.Errorf("%w: %s", ErrTeamNotFound, teamID)
	}
	return item, nil
}

// WatchTeams calls emit with the full current listing once immediately and
// again after every change to the teams collection. Each snapshot replaces
// the previous one. It returns when ctx is done or emit fails.
func (s *DashboardService) WatchTeams(ctx context.Context, input ListTeamsInput, emit func([]team.Team) error) error {
	if s.subscriber == nil {
		return fmt.Errorf("%w: change feed is not configured", ErrDependencyUnavailable)
	}

	changes := s.subscriber.Subscribe(ctx, changefeed.CollectionTeams)

	snapshot, err := s.ListTeams(ctx, input)
	if err != nil {
		return err
	}
	if err := emit(snapshot); err != nil {
		return err
	}

	for range changes {
		snapshot, err := s.ListTeams(ctx, input)
		if err != nil {
			if ctx.Err() != nil {
				return nil
			}
			s.logger.WarnContext(ctx, "refresh team snapshot failed", "error", err)
			continue
		}
		if err := emit(snapshot); err != nil {
			return err
		}
	}
	return nil
}
