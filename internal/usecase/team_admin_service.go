package usecase

import (
	"context"
	"fmt"
	"regexp"
	"strings"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/riskibarqy/tournament-registration/internal/domain/team"
	"github.com/riskibarqy/tournament-registration/internal/platform/changefeed"
	idgen "github.com/riskibarqy/tournament-registration/internal/platform/id"
	"github.com/riskibarqy/tournament-registration/internal/platform/logging"
)

var (
	phonePattern     = regexp.MustCompile(`^[0-9()+\-\s]{7,}$`)
	contactValidator = validator.New()
)

// ContactUpdate is the whitelisted set of fields staff may edit on a team.
type ContactUpdate struct {
	ManagerName  *string
	ContactEmail *string
	ContactPhone *string
}

type MessageInput struct {
	Text     string
	Author   string
	Type     team.MessageType
	Metadata map[string]string
}

type TeamAdminService struct {
	teams     team.Repository
	logs      team.LogRepository
	idGen     idgen.Generator
	sanitizer TextSanitizer
	changes   changePublisher
	logger    *logging.Logger
	now       func() time.Time
}

func NewTeamAdminService(
	teams team.Repository,
	logs team.LogRepository,
	idGen idgen.Generator,
	sanitizer TextSanitizer,
	notifier changefeed.Notifier,
	logger *logging.Logger,
) *TeamAdminService {
	if sanitizer == nil {
		sanitizer = defaultSanitizer()
	}
	if logger == nil {
		logger = logging.Default()
	}
	return &TeamAdminService{
		teams:     teams,
		logs:      logs,
		idGen:     idGen,
		sanitizer: sanitizer,
		changes:   newChangePublisher(notifier, logger),
		logger:    logger,
		now:       time.Now,
	}
}

func (s *TeamAdminService) UpdateContact(ctx context.Context, teamID string, input ContactUpdate) (team.Team, error) {
	ctx, span := startUsecaseSpan(ctx, "usecase.TeamAdminService.UpdateContact")
	defer span.End()

	patch, err := contactPatch(s.sanitizer, input)
	if err != nil {
		return team.Team{}, err
	}

	current, err := s.getTeam(ctx, teamID)
	if err != nil {
		return team.Team{}, err
	}

	patch.UpdatedAt = s.now().UTC()
	if err := s.teams.UpdateFields(ctx, current.ID, patch); err != nil {
		recordSpanError(span, err)
		return team.Team{}, storeErr("update team contact", err)
	}
	s.changes.publish(ctx, changefeed.CollectionTeams, current.ID)

	return patch.Apply(current), nil
}

func contactPatch(sanitizer TextSanitizer, input ContactUpdate) (team.Patch, error) {
	var patch team.Patch
	if input.ManagerName == nil && input.ContactEmail == nil && input.ContactPhone == nil {
		return patch, fmt.Errorf("%w: at least one of managerName, contactEmail, contactPhone is required", ErrInvalidInput)
	}
	if input.ManagerName != nil {
		name := cleanText(sanitizer, *input.ManagerName)
		patch.ManagerName = &name
	}
	if input.ContactEmail != nil {
		email := strings.TrimSpace(*input.ContactEmail)
		if email != "" {
			if err := contactValidator.Var(email, "email"); err != nil {
				return patch, fmt.Errorf("%w: contact email %q is not valid", ErrInvalidInput, email)
			}
		}
		patch.ContactEmail = &email
	}
	if input.ContactPhone != nil {
		phone := strings.TrimSpace(*input.ContactPhone)
		if phone != "" && !phonePattern.MatchString(phone) {
			return patch, fmt.Errorf("%w: contact phone %q is not valid", ErrInvalidInput, phone)
		}
		patch.ContactPhone = &phone
	}
	return patch, nil
}

// AddMessage appends a note (or another message type) to a team's log.
func (s *TeamAdminService) AddMessage(ctx context.Context, teamID string, input MessageInput) (team.Message, error) {
	ctx, span := startUsecaseSpan(ctx, "usecase.TeamAdminService.AddMessage")
	defer span.End()

	text := cleanText(s.sanitizer, input.Text)
	if text == "" {
		return team.Message{}, fmt.Errorf("%w: message text is required", ErrInvalidInput)
	}
	messageType := input.Type
	if strings.TrimSpace(string(messageType)) == "" {
		messageType = team.MessageNote
	}

	current, err := s.getTeam(ctx, teamID)
	if err != nil {
		return team.Message{}, err
	}

	messageID, err := s.idGen.NewID()
	if err != nil {
		return team.Message{}, fmt.Errorf("generate message id: %w", err)
	}
	msg := team.Message{
		ID:        messageID,
		TeamID:    current.ID,
		Type:      messageType,
		Text:      text,
		Author:    strings.TrimSpace(input.Author),
		Metadata:  cloneDetails(input.Metadata),
		CreatedAt: s.now().UTC(),
	}
	if err := s.logs.AppendMessage(ctx, msg); err != nil {
		recordSpanError(span, err)
		return team.Message{}, storeErr("append team message", err)
	}
	s.changes.publish(ctx, changefeed.CollectionTeams, current.ID)

	return msg, nil
}

func (s *TeamAdminService) ListMessages(ctx context.Context, teamID string) ([]team.Message, error) {
	ctx, span := startUsecaseSpan(ctx, "usecase.TeamAdminService.ListMessages")
	defer span.End()

	current, err := s.getTeam(ctx, teamID)
	if err != nil {
		return nil, err
	}
	messages, err := s.logs.ListMessages(ctx, current.ID)
	if err != nil {
		return nil, storeErr("list team messages", err)
	}
	return messages, nil
}

func (s *TeamAdminService) getTeam(ctx context.Context, teamID string) (team.Team, error) {
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
