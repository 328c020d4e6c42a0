package usecase

import (
	"context"
	"fmt"
	"strings"

	"github.com/riskibarqy/tournament-registration/internal/domain/participant"
	"github.com/riskibarqy/tournament-registration/internal/domain/team"
	"github.com/riskibarqy/tournament-registration/internal/domain/user"
	"github.com/riskibarqy/tournament-registration/internal/platform/logging"
	"github.com/riskibarqy/tournament-registration/internal/platform/metrics"
)

// RegistrationService is the entry point of the registration forms.
type RegistrationService struct {
	registrar     *Registrar
	resolver      *TeamResolver
	guard         *DuplicateGuard
	linkage       *LinkageService
	requireGoogle bool
	metrics       *metrics.Registration
	logger        *logging.Logger
}

func NewRegistrationService(
	registrar *Registrar,
	resolver *TeamResolver,
	guard *DuplicateGuard,
	linkage *LinkageService,
	requireGoogleForTeams bool,
	m *metrics.Registration,
	logger *logging.Logger,
) *RegistrationService {
	if logger == nil {
		logger = logging.Default()
	}
	return &RegistrationService{
		registrar:     registrar,
		resolver:      resolver,
		guard:         guard,
		linkage:       linkage,
		requireGoogle: requireGoogleForTeams,
		metrics:       m,
		logger:        logger,
	}
}

// RegisterTeam registers a team for an authenticated identity. It refuses,
// before any write, when the identity already owns a team, when the name
// resolves to an existing team, or when the contact email is already in use.
// New teams start as pending.
func (s *RegistrationService) RegisterTeam(ctx context.Context, identity *user.Principal, input TeamInput) (team.Team, error) {
	ctx, span := startUsecaseSpan(ctx, "usecase.RegistrationService.RegisterTeam")
	defer span.End()

	if identity == nil || strings.TrimSpace(identity.UserID) == "" {
		return team.Team{}, fmt.Errorf("%w: team registration needs a signed-in user", ErrAuthenticationRequired)
	}
	if s.requireGoogle && !identity.SignedInWith(user.ProviderGoogle) {
		return team.Team{}, fmt.Errorf("%w: team registration needs a Google sign-in", ErrAuthenticationRequired)
	}

	name := strings.TrimSpace(input.TeamName)
	if name == "" {
		name = strings.TrimSpace(input.LegacyName)
	}
	if name == "" {
		return team.Team{}, fmt.Errorf("%w: team name is required", ErrInvalidInput)
	}

	owned, err := s.guard.FindTeamsByUser(ctx, identity.UserID)
	if err != nil {
		recordSpanError(span, err)
		return team.Team{}, err
	}
	if len(owned) > 0 {
		return team.Team{}, s.refuse(ctx, identity.UserID, GuardUser, owned)
	}

	existing, found, err := s.resolver.ResolveTeam(ctx, name)
	if err != nil {
		recordSpanError(span, err)
		return team.Team{}, err
	}
	if found {
		return team.Team{}, s.refuse(ctx, identity.UserID, GuardTeamName, []team.Team{existing})
	}

	if email := strings.TrimSpace(input.ContactEmail); email != "" {
		sameEmail, err := s.guard.FindTeamsByEmail(ctx, email)
		if err != nil {
			recordSpanError(span, err)
			return team.Team{}, err
		}
		if len(sameEmail) > 0 {
			return team.Team{}, s.refuse(ctx, identity.UserID, GuardContactEmail, sameEmail)
		}
	}

	input.PaymentStatus = team.StatusPending
	return s.registrar.CreateTeam(ctx, identity, input)
}

// RegisterParticipant registers a player, coach or manager. With a team
// identifier the new record is attached to that team as well.
func (s *RegistrationService) RegisterParticipant(
	ctx context.Context,
	kind participant.Kind,
	identity *user.Principal,
	input ParticipantInput,
	teamIdentifier string,
) (participant.Participant, error) {
	ctx, span := startUsecaseSpan(ctx, "usecase.RegistrationService.RegisterParticipant")
	defer span.End()

	if strings.TrimSpace(teamIdentifier) == "" {
		return s.registrar.CreateParticipant(ctx, kind, identity, input)
	}

	result, err := s.linkage.AttachToTeam(ctx, AttachInput{
		Kind:           kind,
		TeamIdentifier: teamIdentifier,
		Payload:        &input,
		Identity:       identity,
	})
	if err != nil {
		recordSpanError(span, err)
		return participant.Participant{}, err
	}
	return result.Participant, nil
}

func (s *RegistrationService) refuse(ctx context.Context, userID, guard string, existing []team.Team) error {
	s.metrics.IncDuplicateRefusal(guard)
	s.logger.InfoContext(ctx, "team registration refused",
		"user_id", userID,
		"guard", guard,
		"existing_count", len(existing),
	)
	return &DuplicateTeamError{Guard: guard, Existing: existing}
}
