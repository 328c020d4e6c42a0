package usecase

import (
	"errors"
	"testing"

	"github.com/riskibarqy/tournament-registration/internal/domain/user"
	"github.com/riskibarqy/tournament-registration/internal/infrastructure/repository/memory"
	usermock "github.com/riskibarqy/tournament-registration/internal/mocks/domain/user"
	"github.com/riskibarqy/tournament-registration/internal/platform/logging"
	"github.com/stretchr/testify/mock"
)

func TestProfileService_UpsertMergesIdentity(t *testing.T) {
	t.Parallel()

	repo := usermock.NewProfileRepository(t)
	repo.On("MergeProfile", mock.Anything, mock.MatchedBy(func(p user.Profile) bool {
		return p.ID == "u-1" &&
			p.Email == "u-1@example.com" &&
			p.DisplayName == "User u-1" &&
			p.Role == "coach" &&
			!p.UpdatedAt.IsZero()
	})).Return(nil).Once()

	svc := NewProfileService(repo, logging.NewNop(), nil)
	svc.Upsert(t.Context(), googleUser("u-1"), "Fallback", "coach")
}

func TestProfileService_UpsertTwiceKeepsOneProfileWithLastValues(t *testing.T) {
	t.Parallel()

	repo := memory.NewProfileRepository()
	svc := NewProfileService(repo, logging.NewNop(), nil)

	svc.Upsert(t.Context(), &user.Principal{UserID: "u-1", Email: "old@example.com", DisplayName: "Old Name"}, "", "player")
	svc.Upsert(t.Context(), &user.Principal{UserID: "u-1", Email: "new@example.com", DisplayName: "New Name"}, "", "manager")

	if got := repo.Len(); got != 1 {
		t.Fatalf("expected one profile, got %d", got)
	}
	got, found, err := repo.GetProfile(t.Context(), "u-1")
	if err != nil || !found {
		t.Fatalf("expected stored profile, got found=%v err=%v", found, err)
	}
	if got.Email != "new@example.com" || got.DisplayName != "New Name" || got.Role != "manager" {
		t.Fatalf("expected last call's values, got %+v", got)
	}
}

func TestProfileService_UpsertFallsBackToFormName(t *testing.T) {
	t.Parallel()

	repo := usermock.NewProfileRepository(t)
	repo.On("MergeProfile", mock.Anything, mock.MatchedBy(func(p user.Profile) bool {
		return p.DisplayName == "Ada Lovelace"
	})).Return(nil).Once()

	svc := NewProfileService(repo, logging.NewNop(), nil)
	svc.Upsert(t.Context(), &user.Principal{UserID: "u-2"}, " Ada Lovelace ", "manager")
}

func TestProfileService_UpsertSwallowsStoreFailure(t *testing.T) {
	t.Parallel()

	repo := usermock.NewProfileRepository(t)
	repo.On("MergeProfile", mock.Anything, mock.Anything).Return(errors.New("permission denied")).Once()

	svc := NewProfileService(repo, logging.NewNop(), nil)
	svc.Upsert(t.Context(), googleUser("u-1"), "", "player")
}

func TestProfileService_UpsertWithoutIdentityIsNoop(t *testing.T) {
	t.Parallel()

	repo := usermock.NewProfileRepository(t)
	svc := NewProfileService(repo, logging.NewNop(), nil)
	svc.Upsert(t.Context(), nil, "Ada", "player")

	repo.AssertNotCalled(t, "MergeProfile", mock.Anything, mock.Anything)
}

func TestProfileService_Get(t *testing.T) {
	t.Parallel()

	repo := usermock.NewProfileRepository(t)
	repo.On("GetProfile", mock.Anything, "u-1").Return(user.Profile{ID: "u-1", Role: "team"}, true, nil).Once()
	repo.On("GetProfile", mock.Anything, "u-2").Return(user.Profile{}, false, nil).Once()
	repo.On("GetProfile", mock.Anything, "u-3").Return(user.Profile{}, false, errors.New("timeout")).Once()

	svc := NewProfileService(repo, logging.NewNop(), nil)
	ctx := t.Context()

	profile, err := svc.Get(ctx, " u-1 ")
	if err != nil || profile.Role != "team" {
		t.Fatalf("unexpected profile: %+v (err=%v)", profile, err)
	}
	if _, err := svc.Get(ctx, "u-2"); !errors.Is(err, ErrNotFound) {
		t.Fatalf("expected ErrNotFound, got %v", err)
	}
	if _, err := svc.Get(ctx, "u-3"); !errors.Is(err, ErrStoreUnavailable) {
		t.Fatalf("expected ErrStoreUnavailable, got %v", err)
	}
	if _, err := svc.Get(ctx, ""); !errors.Is(err, ErrInvalidInput) {
		t.Fatalf("expected ErrInvalidInput, got %v", err)
	}
}
