package usecase

import (
	"errors"
	"testing"

	"github.com/riskibarqy/tournament-registration/internal/domain/participant"
	"github.com/riskibarqy/tournament-registration/internal/domain/team"
	"github.com/riskibarqy/tournament-registration/internal/domain/user"
	"github.com/riskibarqy/tournament-registration/internal/platform/changefeed"
)

func TestRegistrationService_RegisterTeamStartsPending(t *testing.T) {
	t.Parallel()

	f := newFixture(fixtureOptions{requireGoogle: true})
	ctx := t.Context()

	created, err := f.registration.RegisterTeam(ctx, googleUser("user-1"), TeamInput{
		TeamName:      " Lions ",
		ManagerName:   "Ada",
		ContactEmail:  "lions@example.com",
		Role:          "manager",
		PaymentStatus: team.StatusVerified,
	})
	if err != nil {
		t.Fatalf("register team: %v", err)
	}
	if created.PaymentStatus != team.StatusPending {
		t.Fatalf("expected pending status, got %q", created.PaymentStatus)
	}
	if created.TeamName != "Lions" || created.UploaderID != "user-1" || created.ManagerID != "user-1" {
		t.Fatalf("unexpected team: %+v", created)
	}

	stored, found, _ := f.teams.GetByID(ctx, created.ID)
	if !found || stored.Approved() {
		t.Fatalf("expected stored unapproved team, found=%v", found)
	}

	messages, _ := f.logs.ListMessages(ctx, created.ID)
	if len(messages) != 1 || messages[0].Type != team.MessageCreated {
		t.Fatalf("expected a created message, got %+v", messages)
	}

	profile, found, _ := f.profiles.GetProfile(ctx, "user-1")
	if !found || profile.Role != "manager" {
		t.Fatalf("expected manager profile, got found=%v profile=%+v", found, profile)
	}

	if docs := f.notifier.documents(changefeed.CollectionTeams); len(docs) != 1 || docs[0] != created.ID {
		t.Fatalf("expected one team change, got %v", docs)
	}
}

func TestRegistrationService_RegisterTeamCoachRoleSetsCoachID(t *testing.T) {
	t.Parallel()

	f := newFixture(fixtureOptions{})
	created, err := f.registration.RegisterTeam(t.Context(), googleUser("coach-1"), TeamInput{TeamName: "Hawks", Role: "coach"})
	if err != nil {
		t.Fatalf("register team: %v", err)
	}
	if created.CoachID != "coach-1" || created.ManagerID != "" {
		t.Fatalf("expected coach id only, got %+v", created)
	}
}

func TestRegistrationService_RegisterTeamRequiresIdentity(t *testing.T) {
	t.Parallel()

	f := newFixture(fixtureOptions{requireGoogle: true})
	ctx := t.Context()

	if _, err := f.registration.RegisterTeam(ctx, nil, TeamInput{TeamName: "Lions"}); !errors.Is(err, ErrAuthenticationRequired) {
		t.Fatalf("expected ErrAuthenticationRequired without identity, got %v", err)
	}

	password := &user.Principal{UserID: "user-2", Provider: "password"}
	if _, err := f.registration.RegisterTeam(ctx, password, TeamInput{TeamName: "Lions"}); !errors.Is(err, ErrAuthenticationRequired) {
		t.Fatalf("expected ErrAuthenticationRequired for non-google sign in, got %v", err)
	}

	teams, _ := f.teams.List(ctx)
	if len(teams) != 0 {
		t.Fatalf("expected no writes, got %d teams", len(teams))
	}
}

func TestRegistrationService_RegisterTeamDuplicateGuards(t *testing.T) {
	t.Parallel()

	seed := []team.Team{
		{ID: "team-owned", TeamName: "Owned", UploaderID: "owner", CreatedAt: fixedTime},
		{ID: "team-legacy", LegacyName: "Tigers", CreatedAt: fixedTime},
		{ID: "team-mail", TeamName: "Mail", ContactEmail: "taken@example.com", CreatedAt: fixedTime},
	}

	cases := []struct {
		name      string
		userID    string
		input     TeamInput
		wantGuard string
		wantTeam  string
	}{
		{name: "user already owns a team", userID: "owner", input: TeamInput{TeamName: "Fresh"}, wantGuard: GuardUser, wantTeam: "team-owned"},
		{name: "name matches legacy name", userID: "new-1", input: TeamInput{TeamName: "Tigers"}, wantGuard: GuardTeamName, wantTeam: "team-legacy"},
		{name: "name matches team id", userID: "new-2", input: TeamInput{TeamName: "team-mail"}, wantGuard: GuardTeamName, wantTeam: "team-mail"},
		{name: "contact email in use", userID: "new-3", input: TeamInput{TeamName: "Fresh", ContactEmail: "taken@example.com"}, wantGuard: GuardContactEmail, wantTeam: "team-mail"},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			t.Parallel()

			f := newFixture(fixtureOptions{})
			for _, item := range seed {
				if err := f.teams.Create(t.Context(), item); err != nil {
					t.Fatalf("seed team: %v", err)
				}
			}

			_, err := f.registration.RegisterTeam(t.Context(), googleUser(tc.userID), tc.input)
			if !errors.Is(err, ErrDuplicateRegistration) {
				t.Fatalf("expected ErrDuplicateRegistration, got %v", err)
			}
			var dup *DuplicateTeamError
			if !errors.As(err, &dup) {
				t.Fatalf("expected DuplicateTeamError, got %T", err)
			}
			if dup.Guard != tc.wantGuard {
				t.Fatalf("unexpected guard: got=%s want=%s", dup.Guard, tc.wantGuard)
			}
			if len(dup.Existing) == 0 || dup.Existing[0].ID != tc.wantTeam {
				t.Fatalf("unexpected existing teams: %+v", dup.Existing)
			}

			teams, _ := f.teams.List(t.Context())
			if len(teams) != len(seed) {
				t.Fatalf("expected no new team, got %d teams", len(teams))
			}
		})
	}
}

func TestRegistrationService_RegisterTeamNeedsName(t *testing.T) {
	t.Parallel()

	f := newFixture(fixtureOptions{})
	if _, err := f.registration.RegisterTeam(t.Context(), googleUser("user-1"), TeamInput{TeamName: "  "}); !errors.Is(err, ErrInvalidInput) {
		t.Fatalf("expected ErrInvalidInput, got %v", err)
	}
}

func TestRegistrationService_RegisterParticipantWithoutTeam(t *testing.T) {
	t.Parallel()

	f := newFixture(fixtureOptions{})
	ctx := t.Context()

	created, err := f.registration.RegisterParticipant(ctx, participant.KindPlayer, googleUser("player-1"), ParticipantInput{
		FullName: "Kim",
		Details:  map[string]string{"position": "GK", " ": "dropped"},
	}, "")
	if err != nil {
		t.Fatalf("register participant: %v", err)
	}
	if created.TeamID != "" || created.UserID != "player-1" || created.Role != "player" {
		t.Fatalf("unexpected participant: %+v", created)
	}
	if len(created.Details) != 1 || created.Details["position"] != "GK" {
		t.Fatalf("unexpected details: %+v", created.Details)
	}
	if docs := f.notifier.documents(changefeed.CollectionPlayers); len(docs) != 1 {
		t.Fatalf("expected one player change, got %v", docs)
	}
}

func TestRegistrationService_RegisterParticipantAttachesToNamedTeam(t *testing.T) {
	t.Parallel()

	f := newFixture(fixtureOptions{})
	ctx := t.Context()
	if err := f.teams.Create(ctx, team.Team{ID: "team-1", TeamName: "Lions", CreatedAt: fixedTime}); err != nil {
		t.Fatalf("seed team: %v", err)
	}

	created, err := f.registration.RegisterParticipant(ctx, participant.KindCoach, googleUser("coach-1"), ParticipantInput{FullName: "Bo"}, "Lions")
	if err != nil {
		t.Fatalf("register coach: %v", err)
	}
	if created.TeamID != "team-1" {
		t.Fatalf("expected back-reference to team-1, got %q", created.TeamID)
	}

	members, _ := f.roster.ListMembers(ctx, "team-1", participant.KindCoach)
	if len(members) != 1 || members[0].EntityID != created.ID {
		t.Fatalf("expected coach on roster, got %+v", members)
	}
}

func TestRegistrationService_RegisterParticipantUnknownTeamWritesNothing(t *testing.T) {
	t.Parallel()

	f := newFixture(fixtureOptions{})
	ctx := t.Context()

	_, err := f.registration.RegisterParticipant(ctx, participant.KindPlayer, googleUser("p-1"), ParticipantInput{FullName: "Kim"}, "Nobody FC")
	if !errors.Is(err, ErrTeamNotFound) {
		t.Fatalf("expected ErrTeamNotFound, got %v", err)
	}
	players, _ := f.participants.ListByKind(ctx, participant.KindPlayer)
	if len(players) != 0 {
		t.Fatalf("expected no player written, got %d", len(players))
	}
}
