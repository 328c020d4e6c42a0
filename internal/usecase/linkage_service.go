package usecase

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/riskibarqy/tournament-registration/internal/domain/participant"
	"github.com/riskibarqy/tournament-registration/internal/domain/team"
	"github.com/riskibarqy/tournament-registration/internal/domain/user"
	"github.com/riskibarqy/tournament-registration/internal/platform/changefeed"
	idgen "github.com/riskibarqy/tournament-registration/internal/platform/id"
	"github.com/riskibarqy/tournament-registration/internal/platform/logging"
	"github.com/riskibarqy/tournament-registration/internal/platform/metrics"
	"go.opentelemetry.io/otel/attribute"
)

// AttachInput names the team loosely and the entity either by id or by a
// payload to register first. Exactly one of EntityID and Payload is set.
type AttachInput struct {
	Kind           participant.Kind
	TeamIdentifier string
	EntityID       string
	Payload        *ParticipantInput
	Identity       *user.Principal
}

// RepairScheduler queues a deferred reconcile sweep.
type RepairScheduler interface {
	ScheduleReconcile(ctx context.Context, reason string) error
}

type AttachResult struct {
	TeamID       string
	Participant  participant.Participant
	Entry        team.MemberEntry
	DetachedFrom string
}

// LinkageService maintains the two representations of team membership: the
// denormalized roster entry under the team and the teamId back-reference on
// the canonical record. The two writes are not transactional; Reconcile
// repairs whatever a partial attach leaves behind.
type LinkageService struct {
	resolver     *TeamResolver
	registrar    *Registrar
	participants participant.Repository
	roster       team.RosterRepository
	idGen        idgen.Generator
	changes      changePublisher
	repairs      RepairScheduler
	metrics      *metrics.Registration
	logger       *logging.Logger
	now          func() time.Time
}

func NewLinkageService(
	resolver *TeamResolver,
	registrar *Registrar,
	participants participant.Repository,
	roster team.RosterRepository,
	idGen idgen.Generator,
	notifier changefeed.Notifier,
	m *metrics.Registration,
	logger *logging.Logger,
) *LinkageService {
	if logger == nil {
		logger = logging.Default()
	}
	return &LinkageService{
		resolver:     resolver,
		registrar:    registrar,
		participants: participants,
		roster:       roster,
		idGen:        idGen,
		changes:      newChangePublisher(notifier, logger),
		metrics:      m,
		logger:       logger,
		now:          time.Now,
	}
}

// SetRepairScheduler makes a partial attach queue a reconcile sweep instead of
// waiting for the next manual one.
func (s *LinkageService) SetRepairScheduler(r RepairScheduler) {
	s.repairs = r
}

// AttachToTeam resolves the team, loads or creates the entity, then writes
// the roster entry followed by the back-reference. Resolution and lookup
// failures happen before any write.
func (s *LinkageService) AttachToTeam(ctx context.Context, input AttachInput) (AttachResult, error) {
	ctx, span := startUsecaseSpan(ctx, "usecase.LinkageService.AttachToTeam",
		attribute.String("participant.kind", string(input.Kind)))
	defer span.End()

	started := time.Now()
	defer s.metrics.ObserveOperation("attach_to_team", started)

	kind, err := participant.ParseKind(string(input.Kind))
	if err != nil {
		return AttachResult{}, fmt.Errorf("%w: %v", ErrInvalidInput, err)
	}
	entityID := strings.TrimSpace(input.EntityID)
	if (entityID == "") == (input.Payload == nil) {
		return AttachResult{}, fmt.Errorf("%w: exactly one of entity id or payload is required", ErrInvalidInput)
	}

	teamID, found, err := s.resolver.ResolveTeamID(ctx, input.TeamIdentifier)
	if err != nil {
		recordSpanError(span, err)
		s.metrics.IncAttach(string(kind), "error")
		return AttachResult{}, err
	}
	if !found {
		s.metrics.IncAttach(string(kind), "team_not_found")
		return AttachResult{}, fmt.Errorf("%w: %q", ErrTeamNotFound, strings.TrimSpace(input.TeamIdentifier))
	}

	var entity participant.Participant
	if entityID != "" {
		existing, exists, err := s.participants.GetByID(ctx, kind, entityID)
		if err != nil {
			recordSpanError(span, err)
			s.metrics.IncAttach(string(kind), "error")
			return AttachResult{}, storeErr("get "+string(kind), err)
		}
		if !exists {
			s.metrics.IncAttach(string(kind), "entity_not_found")
			return AttachResult{}, fmt.Errorf("%w: %s %s", ErrEntityNotFound, kind, entityID)
		}
		entity = existing
	} else {
		created, err := s.registrar.CreateParticipant(ctx, kind, input.Identity, *input.Payload)
		if err != nil {
			recordSpanError(span, err)
			s.metrics.IncAttach(string(kind), "error")
			return AttachResult{}, err
		}
		entity = created
	}

	result, err := s.link(ctx, teamID, entity)
	if err != nil {
		recordSpanError(span, err)
		s.metrics.IncAttach(string(kind), "error")
		s.logger.WarnContext(ctx, "attach left partial linkage",
			"kind", string(kind),
			"entity_id", entity.ID,
			"team_id", teamID,
			"error", err,
		)
		s.scheduleRepair(ctx, "partial attach of "+string(kind)+" "+entity.ID)
		return AttachResult{}, err
	}
	s.metrics.IncAttach(string(kind), "attached")

	return result, nil
}

// link writes the roster entry, then the back-reference, then detaches the
// entity from the team it pointed at before. Re-attaching to the same team
// replaces the old roster snapshot so the team holds a single entry.
func (s *LinkageService) link(ctx context.Context, teamID string, entity participant.Participant) (AttachResult, error) {
	previous := strings.TrimSpace(entity.TeamID)
	if previous == teamID {
		if _, err := s.roster.RemoveMember(ctx, teamID, entity.Kind, entity.ID); err != nil {
			return AttachResult{}, storeErr("refresh roster entry", err)
		}
	}

	entryID, err := s.idGen.NewID()
	if err != nil {
		return AttachResult{}, fmt.Errorf("generate roster entry id: %w", err)
	}
	entry := team.NewMemberEntry(entryID, teamID, entity, s.now().UTC())
	if err := s.roster.AddMember(ctx, entry); err != nil {
		return AttachResult{}, storeErr("add roster entry", err)
	}

	if err := s.participants.SetTeamID(ctx, entity.Kind, entity.ID, teamID); err != nil {
		return AttachResult{}, storeErr("set "+string(entity.Kind)+" team id", err)
	}
	entity.TeamID = teamID

	result := AttachResult{TeamID: teamID, Participant: entity, Entry: entry}
	if previous != "" && previous != teamID {
		if _, err := s.roster.RemoveMember(ctx, previous, entity.Kind, entity.ID); err != nil {
			s.metrics.IncSoftFailure("detach_previous_team")
			s.logger.WarnContext(ctx, "detach from previous team failed",
				"kind", string(entity.Kind),
				"entity_id", entity.ID,
				"previous_team_id", previous,
				"error", err,
			)
		} else {
			result.DetachedFrom = previous
			s.changes.publish(ctx, changefeed.CollectionTeams, previous)
		}
	}

	s.changes.publish(ctx, changefeed.CollectionTeams, teamID)
	s.changes.publish(ctx, participantCollection(entity.Kind), entity.ID)

	return result, nil
}

func (s *LinkageService) scheduleRepair(ctx context.Context, reason string) {
	if s.repairs == nil {
		return
	}
	if err := s.repairs.ScheduleReconcile(ctx, reason); err != nil {
		s.metrics.IncSoftFailure("schedule_reconcile")
		s.logger.WarnContext(ctx, "schedule reconcile failed", "reason", reason, "error", err)
	}
}

// HasMemberInTeam reports whether any record of kind owned by userID points
// at teamID.
func (s *LinkageService) HasMemberInTeam(ctx context.Context, kind participant.Kind, userID, teamID string) (bool, error) {
	ctx, span := startUsecaseSpan(ctx, "usecase.LinkageService.HasMemberInTeam")
	defer span.End()

	kind, err := participant.ParseKind(string(kind))
	if err != nil {
		return false, fmt.Errorf("%w: %v", ErrInvalidInput, err)
	}
	userID = strings.TrimSpace(userID)
	teamID = strings.TrimSpace(teamID)
	if userID == "" || teamID == "" {
		return false, fmt.Errorf("%w: user id and team id are required", ErrInvalidInput)
	}

	owned, err := s.participants.ListByUser(ctx, kind, userID)
	if err != nil {
		return false, storeErr("list "+kind.Collection()+" by user", err)
	}
	for _, p := range owned {
		if p.TeamID == teamID {
			return true, nil
		}
	}
	return false, nil
}

// ListMembers returns the denormalized roster of a team.
func (s *LinkageService) ListMembers(ctx context.Context, teamID string, kind participant.Kind) ([]team.MemberEntry, error) {
	ctx, span := startUsecaseSpan(ctx, "usecase.LinkageService.ListMembers")
	defer span.End()

	kind, err := participant.ParseKind(string(kind))
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidInput, err)
	}
	teamID = strings.TrimSpace(teamID)
	if teamID == "" {
		return nil, fmt.Errorf("%w: team id is required", ErrInvalidInput)
	}

	entries, err := s.roster.ListMembers(ctx, teamID, kind)
	if err != nil {
		return nil, storeErr("list roster", err)
	}
	return entries, nil
}
