package usecase

import (
	"errors"
	"testing"

	"github.com/riskibarqy/tournament-registration/internal/domain/team"
	teammock "github.com/riskibarqy/tournament-registration/internal/mocks/domain/team"
	"github.com/stretchr/testify/mock"
)

func TestDuplicateGuard_FindTeamsByUserUnionsOwnerFieldsUsingMockery(t *testing.T) {
	t.Parallel()

	teams := teammock.NewRepository(t)
	teams.On("FindByField", mock.Anything, team.FieldUploaderID, "user-1").
		Return([]team.Team{{ID: "team-a"}, {ID: "team-b"}}, nil).Once()
	teams.On("FindByField", mock.Anything, team.FieldManagerID, "user-1").
		Return([]team.Team{{ID: "team-a"}}, nil).Once()
	teams.On("FindByField", mock.Anything, team.FieldCoachID, "user-1").
		Return([]team.Team{{ID: "team-c"}}, nil).Once()

	got, err := NewDuplicateGuard(teams).FindTeamsByUser(t.Context(), "user-1")
	if err != nil {
		t.Fatalf("find teams by user: %v", err)
	}
	if len(got) != 3 {
		t.Fatalf("expected 3 distinct teams, got %d", len(got))
	}
	seen := map[string]bool{}
	for _, item := range got {
		if seen[item.ID] {
			t.Fatalf("team %s returned twice", item.ID)
		}
		seen[item.ID] = true
	}
}

func TestDuplicateGuard_FindTeamsByUserStoreErrorUsingMockery(t *testing.T) {
	t.Parallel()

	teams := teammock.NewRepository(t)
	teams.On("FindByField", mock.Anything, mock.Anything, "user-1").
		Return(nil, errors.New("timeout")).Maybe()

	_, err := NewDuplicateGuard(teams).FindTeamsByUser(t.Context(), "user-1")
	if !errors.Is(err, ErrStoreUnavailable) {
		t.Fatalf("expected ErrStoreUnavailable, got %v", err)
	}
}

func TestDuplicateGuard_RequiresInput(t *testing.T) {
	t.Parallel()

	guard := NewDuplicateGuard(teammock.NewRepository(t))
	if _, err := guard.FindTeamsByUser(t.Context(), " "); !errors.Is(err, ErrInvalidInput) {
		t.Fatalf("expected ErrInvalidInput for user, got %v", err)
	}
	if _, err := guard.FindTeamsByEmail(t.Context(), ""); !errors.Is(err, ErrInvalidInput) {
		t.Fatalf("expected ErrInvalidInput for email, got %v", err)
	}
}

func TestDuplicateGuard_FindTeamsByEmailIsExactUsingMockery(t *testing.T) {
	t.Parallel()

	teams := teammock.NewRepository(t)
	teams.On("FindByField", mock.Anything, team.FieldContactEmail, "a@example.com").
		Return([]team.Team{{ID: "team-1"}}, nil).Once()

	got, err := NewDuplicateGuard(teams).FindTeamsByEmail(t.Context(), " a@example.com ")
	if err != nil || len(got) != 1 {
		t.Fatalf("expected one team, got %d err=%v", len(got), err)
	}
}
