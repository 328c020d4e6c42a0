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
)

// TeamInput is a team registration payload. Role is the registering
// identity's role hint ("team", "manager" or "coach").
type TeamInput struct {
	TeamName      string
	LegacyName    string
	Region        string
	Category      string
	ManagerName   string
	ContactEmail  string
	ContactPhone  string
	Role          string
	PaymentStatus team.PaymentStatus
}

// ParticipantInput is a player, coach or manager payload. UserID is used
// only when no identity is supplied (batch imports).
type ParticipantInput struct {
	Role         string
	FullName     string
	Email        string
	Phone        string
	IDNumber     string
	Area         string
	Details      map[string]string
	UserID       string
	MigratedFrom string
}

// Registrar creates primary records. It trusts its input: required fields
// are checked by the caller.
type Registrar struct {
	teams        team.Repository
	logs         team.LogRepository
	participants participant.Repository
	profiles     *ProfileService
	idGen        idgen.Generator
	changes      changePublisher
	metrics      *metrics.Registration
	logger       *logging.Logger
	now          func() time.Time
}

func NewRegistrar(
	teams team.Repository,
	logs team.LogRepository,
	participants participant.Repository,
	profiles *ProfileService,
	idGen idgen.Generator,
	notifier changefeed.Notifier,
	m *metrics.Registration,
	logger *logging.Logger,
) *Registrar {
	if logger == nil {
		logger = logging.Default()
	}
	return &Registrar{
		teams:        teams,
		logs:         logs,
		participants: participants,
		profiles:     profiles,
		idGen:        idGen,
		changes:      newChangePublisher(notifier, logger),
		metrics:      m,
		logger:       logger,
		now:          time.Now,
	}
}

// CreateTeam inserts a team and then appends its "created" message. The
// message is best effort, so readers must tolerate a team without one.
func (r *Registrar) CreateTeam(ctx context.Context, identity *user.Principal, input TeamInput) (team.Team, error) {
	ctx, span := startUsecaseSpan(ctx, "usecase.Registrar.CreateTeam")
	defer span.End()

	started := time.Now()
	defer r.metrics.ObserveOperation("create_team", started)

	role := strings.ToLower(strings.TrimSpace(input.Role))
	if role == "" {
		role = "team"
	}
	r.upsertProfile(ctx, identity, input.ManagerName, role)

	teamID, err := r.idGen.NewID()
	if err != nil {
		return team.Team{}, fmt.Errorf("generate team id: %w", err)
	}

	now := r.now().UTC()
	status := input.PaymentStatus
	if status == "" {
		status = team.StatusPending
	}
	item := team.Team{
		ID:            teamID,
		TeamName:      strings.TrimSpace(input.TeamName),
		LegacyName:    strings.TrimSpace(input.LegacyName),
		Region:        strings.TrimSpace(input.Region),
		Category:      strings.TrimSpace(input.Category),
		ManagerName:   strings.TrimSpace(input.ManagerName),
		ContactEmail:  strings.TrimSpace(input.ContactEmail),
		ContactPhone:  strings.TrimSpace(input.ContactPhone),
		PaymentStatus: status,
		CreatedAt:     now,
		UpdatedAt:     now,
	}
	if identity != nil && strings.TrimSpace(identity.UserID) != "" {
		uid := strings.TrimSpace(identity.UserID)
		item.UploaderID = uid
		switch role {
		case "coach":
			item.CoachID = uid
		case "manager", "team":
			item.ManagerID = uid
		}
	}

	if err := r.teams.Create(ctx, item); err != nil {
		recordSpanError(span, err)
		r.metrics.IncRegistration("team", "error")
		return team.Team{}, storeErr("create team", err)
	}
	r.metrics.IncRegistration("team", "created")

	r.appendCreatedMessage(ctx, item)
	r.changes.publish(ctx, changefeed.CollectionTeams, item.ID)

	return item, nil
}

// CreateParticipant inserts a canonical player, coach or manager record.
func (r *Registrar) CreateParticipant(ctx context.Context, kind participant.Kind, identity *user.Principal, input ParticipantInput) (participant.Participant, error) {
	ctx, span := startUsecaseSpan(ctx, "usecase.Registrar.CreateParticipant")
	defer span.End()

	started := time.Now()
	defer r.metrics.ObserveOperation("create_participant", started)

	kind, err := participant.ParseKind(string(kind))
	if err != nil {
		return participant.Participant{}, fmt.Errorf("%w: %v", ErrInvalidInput, err)
	}

	role := strings.TrimSpace(input.Role)
	if role == "" {
		role = string(kind)
	}
	r.upsertProfile(ctx, identity, input.FullName, role)

	entityID, err := r.idGen.NewID()
	if err != nil {
		return participant.Participant{}, fmt.Errorf("generate %s id: %w", kind, err)
	}

	userID := strings.TrimSpace(input.UserID)
	if identity != nil && strings.TrimSpace(identity.UserID) != "" {
		userID = strings.TrimSpace(identity.UserID)
	}

	item := participant.Participant{
		ID:           entityID,
		Kind:         kind,
		Role:         role,
		FullName:     strings.TrimSpace(input.FullName),
		Email:        strings.TrimSpace(input.Email),
		Phone:        strings.TrimSpace(input.Phone),
		IDNumber:     strings.TrimSpace(input.IDNumber),
		Area:         strings.TrimSpace(input.Area),
		Details:      cloneDetails(input.Details),
		UserID:       userID,
		MigratedFrom: strings.TrimSpace(input.MigratedFrom),
		CreatedAt:    r.now().UTC(),
	}

	if err := r.participants.Create(ctx, item); err != nil {
		recordSpanError(span, err)
		r.metrics.IncRegistration(string(kind), "error")
		return participant.Participant{}, storeErr("create "+string(kind), err)
	}
	r.metrics.IncRegistration(string(kind), "created")
	r.changes.publish(ctx, participantCollection(kind), item.ID)

	return item, nil
}

func (r *Registrar) upsertProfile(ctx context.Context, identity *user.Principal, fallbackDisplayName, role string) {
	if r.profiles == nil {
		return
	}
	r.profiles.Upsert(ctx, identity, fallbackDisplayName, role)
}

func (r *Registrar) appendCreatedMessage(ctx context.Context, item team.Team) {
	messageID, err := r.idGen.NewID()
	if err == nil {
		err = r.logs.AppendMessage(ctx, team.Message{
			ID:        messageID,
			TeamID:    item.ID,
			Type:      team.MessageCreated,
			Text:      fmt.Sprintf("Team %s registered", item.Label()),
			CreatedAt: r.now().UTC(),
		})
	}
	if err != nil {
		r.metrics.IncSoftFailure("created_message")
		r.logger.WarnContext(ctx, "append created message failed", "team_id", item.ID, "error", err)
	}
}

func cloneDetails(in map[string]string) map[string]string {
	if len(in) == 0 {
		return nil
	}
	out := make(map[string]string, len(in))
	for k, v := range in {
		key := strings.TrimSpace(k)
		if key == "" {
			continue
		}
		out[key] = strings.TrimSpace(v)
	}
	return out
}
