package usecase

import (
	"context"
	"fmt"
	"net/url"
	"strings"
	"time"

	"github.com/riskibarqy/tournament-registration/internal/domain/team"
	"github.com/riskibarqy/tournament-registration/internal/domain/user"
	"github.com/riskibarqy/tournament-registration/internal/platform/changefeed"
	idgen "github.com/riskibarqy/tournament-registration/internal/platform/id"
	"github.com/riskibarqy/tournament-registration/internal/platform/logging"
	"github.com/riskibarqy/tournament-registration/internal/platform/metrics"
	"go.opentelemetry.io/otel/attribute"
)

type ProofInput struct {
	Text string
	URL  string
}

type BulkApproveResult struct {
	Approved []string
	Failed   map[string]string
}

// PaymentService records payment proofs and the status changes staff make.
// Status writes are plain field updates: no transition is rejected.
type PaymentService struct {
	teams     team.Repository
	logs      team.LogRepository
	idGen     idgen.Generator
	sanitizer TextSanitizer
	changes   changePublisher
	metrics   *metrics.Registration
	logger    *logging.Logger
	now       func() time.Time
}

func NewPaymentService(
	teams team.Repository,
	logs team.LogRepository,
	idGen idgen.Generator,
	sanitizer TextSanitizer,
	notifier changefeed.Notifier,
	m *metrics.Registration,
	logger *logging.Logger,
) *PaymentService {
	if sanitizer == nil {
		sanitizer = defaultSanitizer()
	}
	if logger == nil {
		logger = logging.Default()
	}
	return &PaymentService{
		teams:     teams,
		logs:      logs,
		idGen:     idGen,
		sanitizer: sanitizer,
		changes:   newChangePublisher(notifier, logger),
		metrics:   m,
		logger:    logger,
		now:       time.Now,
	}
}

// SubmitProof appends a proof and then moves the team to submitted. The two
// writes are independent; a failed status write leaves the proof in place.
func (s *PaymentService) SubmitProof(ctx context.Context, identity *user.Principal, teamID string, input ProofInput) (team.PaymentProof, error) {
	ctx, span := startUsecaseSpan(ctx, "usecase.PaymentService.SubmitProof", attribute.String("team.id", teamID))
	defer span.End()

	text := cleanText(s.sanitizer, input.Text)
	link := strings.TrimSpace(input.URL)
	if text == "" && link == "" {
		return team.PaymentProof{}, fmt.Errorf("%w: proof text or url is required", ErrInvalidInput)
	}
	if link != "" {
		parsed, err := url.ParseRequestURI(link)
		if err != nil || (parsed.Scheme != "http" && parsed.Scheme != "https") {
			return team.PaymentProof{}, fmt.Errorf("%w: proof url must be an http(s) url", ErrInvalidInput)
		}
	}

	current, err := s.getTeam(ctx, teamID)
	if err != nil {
		return team.PaymentProof{}, err
	}

	proofID, err := s.idGen.NewID()
	if err != nil {
		return team.PaymentProof{}, fmt.Errorf("generate proof id: %w", err)
	}
	proof := team.PaymentProof{
		ID:          proofID,
		TeamID:      current.ID,
		Text:        text,
		URL:         link,
		SubmittedAt: s.now().UTC(),
	}
	if identity != nil {
		proof.SubmittedBy = strings.TrimSpace(identity.UserID)
	}
	if err := s.logs.AppendProof(ctx, proof); err != nil {
		recordSpanError(span, err)
		return team.PaymentProof{}, storeErr("append payment proof", err)
	}

	if err := s.writeStatus(ctx, current, team.StatusSubmitted, proof.SubmittedBy); err != nil {
		recordSpanError(span, err)
		return team.PaymentProof{}, err
	}

	return proof, nil
}

func (s *PaymentService) Verify(ctx context.Context, actor *user.Principal, teamID string) (team.Team, error) {
	ctx, span := startUsecaseSpan(ctx, "usecase.PaymentService.Verify")
	defer span.End()
	return s.transition(ctx, actor, teamID, team.StatusVerified)
}

func (s *PaymentService) Reject(ctx context.Context, actor *user.Principal, teamID string) (team.Team, error) {
	ctx, span := startUsecaseSpan(ctx, "usecase.PaymentService.Reject")
	defer span.End()
	return s.transition(ctx, actor, teamID, team.StatusRejected)
}

// SetApproval is the staff approve toggle. Approval is the verified status;
// revoking puts the team back to pending.
func (s *PaymentService) SetApproval(ctx context.Context, actor *user.Principal, teamID string, approved bool) (team.Team, error) {
	ctx, span := startUsecaseSpan(ctx, "usecase.PaymentService.SetApproval")
	defer span.End()

	target := team.StatusPending
	if approved {
		target = team.StatusVerified
	}
	return s.transition(ctx, actor, teamID, target)
}

// BulkApprove approves each team independently and reports per-team failures.
func (s *PaymentService) BulkApprove(ctx context.Context, actor *user.Principal, teamIDs []string) (BulkApproveResult, error) {
	ctx, span := startUsecaseSpan(ctx, "usecase.PaymentService.BulkApprove")
	defer span.End()

	if len(teamIDs) == 0 {
		return BulkApproveResult{}, fmt.Errorf("%w: team ids are required", ErrInvalidInput)
	}

	result := BulkApproveResult{Failed: make(map[string]string)}
	seen := make(map[string]struct{}, len(teamIDs))
	for _, raw := range teamIDs {
		teamID := strings.TrimSpace(raw)
		if teamID == "" {
			continue
		}
		if _, ok := seen[teamID]; ok {
			continue
		}
		seen[teamID] = struct{}{}

		if _, err := s.transition(ctx, actor, teamID, team.StatusVerified); err != nil {
			result.Failed[teamID] = err.Error()
			continue
		}
		result.Approved = append(result.Approved, teamID)
	}
	return result, nil
}

func (s *PaymentService) ListProofs(ctx context.Context, teamID string) ([]team.PaymentProof, error) {
	ctx, span := startUsecaseSpan(ctx, "usecase.PaymentService.ListProofs")
	defer span.End()

	current, err := s.getTeam(ctx, teamID)
	if err != nil {
		return nil, err
	}
	proofs, err := s.logs.ListProofs(ctx, current.ID)
	if err != nil {
		return nil, storeErr("list payment proofs", err)
	}
	return proofs, nil
}

func (s *PaymentService) transition(ctx context.Context, actor *user.Principal, teamID string, target team.PaymentStatus) (team.Team, error) {
	current, err := s.getTeam(ctx, teamID)
	if err != nil {
		return team.Team{}, err
	}
	actorID := ""
	if actor != nil {
		actorID = actor.UserID
	}
	if err := s.writeStatus(ctx, current, target, actorID); err != nil {
		return team.Team{}, err
	}
	current.PaymentStatus = target
	current.UpdatedAt = s.now().UTC()
	return current, nil
}

func (s *PaymentService) writeStatus(ctx context.Context, current team.Team, target team.PaymentStatus, actorID string) error {
	now := s.now().UTC()
	if err := s.teams.UpdateFields(ctx, current.ID, team.Patch{PaymentStatus: &target, UpdatedAt: now}); err != nil {
		return storeErr("update payment status", err)
	}

	from := current.PaymentStatus
	s.metrics.IncStatusTransition(string(from), string(target))
	s.logger.InfoContext(ctx, "payment status changed",
		"team_id", current.ID,
		"from", string(from),
		"to", string(target),
		"actor_id", actorID,
	)
	s.appendStatusMessage(ctx, current.ID, from, target, actorID, now)
	s.changes.publish(ctx, changefeed.CollectionTeams, current.ID)
	return nil
}

func (s *PaymentService) appendStatusMessage(ctx context.Context, teamID string, from, to team.PaymentStatus, actorID string, at time.Time) {
	messageID, err := s.idGen.NewID()
	if err == nil {
		err = s.logs.AppendMessage(ctx, team.Message{
			ID:        messageID,
			TeamID:    teamID,
			Type:      team.MessageStatus,
			Text:      fmt.Sprintf("Payment status changed from %s to %s", from, to),
			Author:    actorID,
			Metadata:  map[string]string{"from": string(from), "to": string(to)},
			CreatedAt: at,
		})
	}
	if err != nil {
		s.metrics.IncSoftFailure("status_message")
		s.logger.WarnContext(ctx, "append status message failed", "team_id", teamID, "error", err)
	}
}

func (s *PaymentService) getTeam(ctx context.Context, teamID string) (team.Team, error) {
	teamID = strings.TrimSpace(teamID)
	if teamID == "" {
		return team.Team{}, fmt.Errorf("%w: team id is required", ErrInvalidInput)
	}
	current, found, err := s.teams.GetByID(ctx, teamID)
	if err != nil {
		return team.Team{}, storeErr("get team", err)
	}
	if !found {
		return team.Team{}, fmt.Errorf("%w: %s", ErrTeamNotFound, teamID)
	}
	return current, nil
}
