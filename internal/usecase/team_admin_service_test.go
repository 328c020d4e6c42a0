package usecase

import (
	"errors"
	"testing"

	"github.com/riskibarqy/tournament-registration/internal/domain/team"
	"github.com/riskibarqy/tournament-registration/internal/platform/changefeed"
)

func strPtr(v string) *string { return &v }

func TestTeamAdminService_UpdateContact(t *testing.T) {
	t.Parallel()

	f := newFixture(fixtureOptions{})
	ctx := t.Context()
	seedTeams(t, f, team.Team{ID: "team-1", TeamName: "Lions", ManagerName: "Ada", ContactEmail: "old@example.com", CreatedAt: fixedTime})

	updated, err := f.admin.UpdateContact(ctx, "team-1", ContactUpdate{
		ContactEmail: strPtr(" new@example.com "),
		ContactPhone: strPtr("+62 812-3456-789"),
	})
	if err != nil {
		t.Fatalf("update contact: %v", err)
	}
	if updated.ContactEmail != "new@example.com" || updated.ContactPhone != "+62 812-3456-789" || updated.ManagerName != "Ada" {
		t.Fatalf("unexpected team: %+v", updated)
	}

	stored, _, _ := f.teams.GetByID(ctx, "team-1")
	if stored.ContactEmail != "new@example.com" || stored.TeamName != "Lions" {
		t.Fatalf("unexpected stored team: %+v", stored)
	}
	if docs := f.notifier.documents(changefeed.CollectionTeams); len(docs) != 1 {
		t.Fatalf("expected one team change, got %v", docs)
	}
}

func TestTeamAdminService_UpdateContactValidation(t *testing.T) {
	t.Parallel()

	cases := []struct {
		name    string
		teamID  string
		input   ContactUpdate
		wantErr error
	}{
		{name: "no fields", teamID: "team-1", input: ContactUpdate{}, wantErr: ErrInvalidInput},
		{name: "bad email", teamID: "team-1", input: ContactUpdate{ContactEmail: strPtr("not-an-email")}, wantErr: ErrInvalidInput},
		{name: "bad phone", teamID: "team-1", input: ContactUpdate{ContactPhone: strPtr("call me")}, wantErr: ErrInvalidInput},
		{name: "unknown team", teamID: "team-x", input: ContactUpdate{ManagerName: strPtr("Bo")}, wantErr: ErrTeamNotFound},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			t.Parallel()

			f := newFixture(fixtureOptions{})
			seedTeams(t, f, team.Team{ID: "team-1", TeamName: "Lions", ContactEmail: "old@example.com", CreatedAt: fixedTime})

			if _, err := f.admin.UpdateContact(t.Context(), tc.teamID, tc.input); !errors.Is(err, tc.wantErr) {
				t.Fatalf("expected %v, got %v", tc.wantErr, err)
			}
			stored, _, _ := f.teams.GetByID(t.Context(), "team-1")
			if stored.ContactEmail != "old@example.com" {
				t.Fatalf("expected team untouched, got %+v", stored)
			}
		})
	}
}

func TestTeamAdminService_AddMessageDefaultsToNote(t *testing.T) {
	t.Parallel()

	f := newFixture(fixtureOptions{})
	ctx := t.Context()
	seedTeams(t, f, team.Team{ID: "team-1", TeamName: "Lions", CreatedAt: fixedTime})

	msg, err := f.admin.AddMessage(ctx, "team-1", MessageInput{Text: " <i>Kit</i> colours confirmed ", Author: "staff-1"})
	if err != nil {
		t.Fatalf("add message: %v", err)
	}
	if msg.Type != team.MessageNote || msg.Text != "Kit colours confirmed" {
		t.Fatalf("unexpected message: %+v", msg)
	}

	messages, err := f.admin.ListMessages(ctx, "team-1")
	if err != nil || len(messages) != 1 || messages[0].ID != msg.ID {
		t.Fatalf("expected stored message, got %+v (err=%v)", messages, err)
	}

	if _, err := f.admin.AddMessage(ctx, "team-1", MessageInput{Text: "<br>"}); !errors.Is(err, ErrInvalidInput) {
		t.Fatalf("expected ErrInvalidInput for empty text, got %v", err)
	}
}
