package usecase

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/riskibarqy/tournament-registration/internal/domain/user"
	"github.com/riskibarqy/tournament-registration/internal/platform/logging"
	"github.com/riskibarqy/tournament-registration/internal/platform/metrics"
)

// ProfileService maintains the shared users/{id} documents.
type ProfileService struct {
	repo    user.ProfileRepository
	logger  *logging.Logger
	metrics *metrics.Registration
	now     func() time.Time
}

func NewProfileService(repo user.ProfileRepository, logger *logging.Logger, m *metrics.Registration) *ProfileService {
	if logger == nil {
		logger = logging.Default()
	}
	return &ProfileService{
		repo:    repo,
		logger:  logger,
		metrics: m,
		now:     time.Now,
	}
}

// Upsert merges the identity into its profile. It is a no-op without an
// identity, and failures are logged, never returned: a profile write must
// not block the registration that triggered it.
func (s *ProfileService) Upsert(ctx context.Context, identity *user.Principal, fallbackDisplayName, role string) {
	ctx, span := startUsecaseSpan(ctx, "usecase.ProfileService.Upsert")
	defer span.End()

	if identity == nil || strings.TrimSpace(identity.UserID) == "" {
		return
	}

	displayName := strings.TrimSpace(identity.DisplayName)
	if displayName == "" {
		displayName = strings.TrimSpace(fallbackDisplayName)
	}

	profile := user.Profile{
		ID:          strings.TrimSpace(identity.UserID),
		Email:       strings.TrimSpace(identity.Email),
		DisplayName: displayName,
		Role:        strings.TrimSpace(role),
		UpdatedAt:   s.now().UTC(),
	}
	if err := s.repo.MergeProfile(ctx, profile); err != nil {
		recordSpanError(span, err)
		s.metrics.IncSoftFailure("profile_upsert")
		s.logger.WarnContext(ctx, "profile upsert failed",
			"user_id", profile.ID,
			"role", profile.Role,
			"error", err,
		)
	}
}

func (s *ProfileService) Get(ctx context.Context, userID string) (user.Profile, error) {
	ctx, span := startUsecaseSpan(ctx, "usecase.ProfileService.Get")
	defer span.End()

	userID = strings.TrimSpace(userID)
	if userID == "" {
		return user.Profile{}, fmt.Errorf("%w: user id is required", ErrInvalidInput)
	}

	profile, found, err := s.repo.GetProfile(ctx, userID)
	if err != nil {
		return user.Profile{}, storeErr("get profile", err)
	}
	if !found {
		return user.Profile{}, fmt.Errorf("%w: profile %s", ErrNotFound, userID)
	}
	return profile, nil
}
