package memory

import (
	"testing"
	"time"

	"github.com/riskibarqy/tournament-registration/internal/domain/participant"
	"github.com/riskibarqy/tournament-registration/internal/domain/team"
	"github.com/riskibarqy/tournament-registration/internal/domain/user"
)

var baseTime = time.Date(2026, time.March, 1, 0, 0, 0, 0, time.UTC)

func TestTeamRepository_FindByFieldKeepsInsertionOrder(t *testing.T) {
	t.Parallel()

	repo := NewTeamRepository(
		team.Team{ID: "b", TeamName: "Lions", CreatedAt: baseTime.Add(time.Hour)},
		team.Team{ID: "a", TeamName: "Lions", CreatedAt: baseTime},
	)
	ctx := t.Context()

	found, err := repo.FindByField(ctx, team.FieldTeamName, "Lions")
	if err != nil || len(found) != 2 || found[0].ID != "b" {
		t.Fatalf("unexpected lookup: %+v (err=%v)", found, err)
	}
	if _, err := repo.FindByField(ctx, team.Field("region"), "x"); err == nil {
		t.Fatalf("expected error for unsupported field")
	}

	if err := repo.Create(ctx, team.Team{ID: "a"}); err == nil {
		t.Fatalf("expected duplicate id error")
	}
}

func TestTeamRepository_ListNewestFirstAndUpdate(t *testing.T) {
	t.Parallel()

	repo := NewTeamRepository(
		team.Team{ID: "old", CreatedAt: baseTime},
		team.Team{ID: "new", CreatedAt: baseTime.Add(time.Hour)},
	)
	ctx := t.Context()

	list, _ := repo.List(ctx)
	if list[0].ID != "new" || list[1].ID != "old" {
		t.Fatalf("unexpected order: %+v", list)
	}

	status := team.StatusVerified
	if err := repo.UpdateFields(ctx, "old", team.Patch{PaymentStatus: &status}); err != nil {
		t.Fatalf("update: %v", err)
	}
	got, _, _ := repo.GetByID(ctx, "old")
	if got.PaymentStatus != team.StatusVerified {
		t.Fatalf("expected verified, got %q", got.PaymentStatus)
	}
	if err := repo.UpdateFields(ctx, "missing", team.Patch{}); err == nil {
		t.Fatalf("expected error for missing team")
	}
}

func TestParticipantRepository(t *testing.T) {
	t.Parallel()

	repo := NewParticipantRepository(
		participant.Participant{ID: "p-2", Kind: participant.KindPlayer, UserID: "u-1", CreatedAt: baseTime},
		participant.Participant{ID: "p-1", Kind: participant.KindPlayer, UserID: "u-1", CreatedAt: baseTime},
		participant.Participant{ID: "p-3", Kind: participant.KindPlayer, UserID: "u-2", CreatedAt: baseTime.Add(time.Hour)},
	)
	ctx := t.Context()

	all, _ := repo.ListByKind(ctx, participant.KindPlayer)
	if len(all) != 3 || all[0].ID != "p-3" || all[1].ID != "p-1" || all[2].ID != "p-2" {
		t.Fatalf("unexpected order: %+v", all)
	}

	owned, _ := repo.ListByUser(ctx, participant.KindPlayer, "u-1")
	if len(owned) != 2 {
		t.Fatalf("expected 2 records for u-1, got %d", len(owned))
	}

	if err := repo.SetTeamID(ctx, participant.KindPlayer, "p-1", "team-1"); err != nil {
		t.Fatalf("set team id: %v", err)
	}
	got, _, _ := repo.GetByID(ctx, participant.KindPlayer, "p-1")
	if got.TeamID != "team-1" {
		t.Fatalf("expected team-1, got %q", got.TeamID)
	}
	if err := repo.SetTeamID(ctx, participant.KindCoach, "p-1", "team-1"); err == nil {
		t.Fatalf("expected error for record in another collection")
	}
}

func TestRosterRepository(t *testing.T) {
	t.Parallel()

	repo := NewRosterRepository()
	ctx := t.Context()

	for _, e := range []team.MemberEntry{
		{ID: "e-1", TeamID: "t-2", Kind: participant.KindPlayer, EntityID: "p-1"},
		{ID: "e-2", TeamID: "t-2", Kind: participant.KindPlayer, EntityID: "p-1"},
		{ID: "e-3", TeamID: "t-1", Kind: participant.KindPlayer, EntityID: "p-2"},
		{ID: "e-4", TeamID: "t-1", Kind: participant.KindCoach, EntityID: "c-1"},
	} {
		if err := repo.AddMember(ctx, e); err != nil {
			t.Fatalf("add member: %v", err)
		}
	}

	teams, _ := repo.ListTeamIDsWithMembers(ctx, participant.KindPlayer)
	if len(teams) != 2 || teams[0] != "t-1" || teams[1] != "t-2" {
		t.Fatalf("unexpected team ids: %v", teams)
	}

	removed, err := repo.RemoveMember(ctx, "t-2", participant.KindPlayer, "p-1")
	if err != nil || removed != 2 {
		t.Fatalf("expected both entries removed, got %d (err=%v)", removed, err)
	}
	teams, _ = repo.ListTeamIDsWithMembers(ctx, participant.KindPlayer)
	if len(teams) != 1 || teams[0] != "t-1" {
		t.Fatalf("expected t-2 gone, got %v", teams)
	}

	coaches, _ := repo.ListMembers(ctx, "t-1", participant.KindCoach)
	if len(coaches) != 1 || coaches[0].EntityID != "c-1" {
		t.Fatalf("unexpected coaches: %+v", coaches)
	}
}

func TestTeamLogRepository(t *testing.T) {
	t.Parallel()

	repo := NewTeamLogRepository()
	ctx := t.Context()

	meta := map[string]string{"from": "pending"}
	if err := repo.AppendMessage(ctx, team.Message{ID: "m-1", TeamID: "t-1", Metadata: meta}); err != nil {
		t.Fatalf("append message: %v", err)
	}
	meta["from"] = "changed"

	messages, _ := repo.ListMessages(ctx, "t-1")
	if len(messages) != 1 || messages[0].Metadata["from"] != "pending" {
		t.Fatalf("expected stored copy, got %+v", messages)
	}

	if err := repo.AppendProof(ctx, team.PaymentProof{ID: "pr-1", TeamID: "t-1"}); err != nil {
		t.Fatalf("append proof: %v", err)
	}
	proofs, _ := repo.ListProofs(ctx, "t-1")
	if len(proofs) != 1 {
		t.Fatalf("expected one proof, got %d", len(proofs))
	}
}

func TestProfileRepository_MergeKeepsFields(t *testing.T) {
	t.Parallel()

	repo := NewProfileRepository()
	ctx := t.Context()

	_ = repo.MergeProfile(ctx, user.Profile{ID: "u-1", Email: "a@example.com", Role: "team"})
	_ = repo.MergeProfile(ctx, user.Profile{ID: "u-1", Role: "coach"})

	got, found, _ := repo.GetProfile(ctx, "u-1")
	if !found || got.Email != "a@example.com" || got.Role != "coach" {
		t.Fatalf("unexpected profile: %+v", got)
	}
	if repo.Len() != 1 {
		t.Fatalf("expected one profile, got %d", repo.Len())
	}
}
