package usecase

import (
	"testing"

	"github.com/riskibarqy/tournament-registration/internal/domain/participant"
	"github.com/riskibarqy/tournament-registration/internal/domain/registration"
	"github.com/riskibarqy/tournament-registration/internal/domain/team"
	"github.com/riskibarqy/tournament-registration/internal/infrastructure/repository/memory"
	"github.com/riskibarqy/tournament-registration/internal/platform/logging"
)

func legacyDocs() []registration.Legacy {
	return []registration.Legacy{
		{ID: "r-1", Role: "players", Team: "Lions", FullName: "Kim", UserID: "u-1", Details: map[string]string{"position": "GK"}},
		{ID: "r-2", Role: "Coach", TeamID: "team-1", FullName: "Bo"},
		{ID: "r-3", Role: "manager", TeamName: "Ghosts", FullName: "Mo"},
		{ID: "r-4", Role: "player", FullName: "Solo"},
		{ID: "r-5", Role: "referee", FullName: "Ref"},
	}
}

func newMigration(f *fixture, docs []registration.Legacy) *MigrationService {
	return NewMigrationService(memory.NewRegistrationRepository(docs...), f.participants, f.registrar, f.resolver, f.linkage, 2, logging.NewNop())
}

func TestMigrationService_FansOutLegacyRegistrations(t *testing.T) {
	t.Parallel()

	f := newFixture(fixtureOptions{})
	ctx := t.Context()
	seedTeams(t, f, team.Team{ID: "team-1", TeamName: "Lions", CreatedAt: fixedTime})
	svc := newMigration(f, legacyDocs())

	report, err := svc.MigrateRegistrations(ctx, false)
	if err != nil {
		t.Fatalf("migrate: %v", err)
	}
	if report.Total != 5 || report.Migrated != 4 || report.Attached != 2 || report.Unresolved != 1 || report.Skipped != 1 || report.Failed != 0 {
		t.Fatalf("unexpected report: %+v", report)
	}

	players, _ := f.participants.ListByKind(ctx, participant.KindPlayer)
	if len(players) != 2 {
		t.Fatalf("expected 2 players, got %d", len(players))
	}
	for _, p := range players {
		switch p.MigratedFrom {
		case "r-1":
			if p.TeamID != "team-1" || p.UserID != "u-1" || p.Details["position"] != "GK" {
				t.Fatalf("unexpected migrated player: %+v", p)
			}
		case "r-4":
			if p.TeamID != "" {
				t.Fatalf("expected unattached player, got %+v", p)
			}
		default:
			t.Fatalf("unexpected player source %q", p.MigratedFrom)
		}
	}

	coaches, _ := f.roster.ListMembers(ctx, "team-1", participant.KindCoach)
	if len(coaches) != 1 || coaches[0].FullName != "Bo" {
		t.Fatalf("expected coach on roster, got %+v", coaches)
	}

	managers, _ := f.participants.ListByKind(ctx, participant.KindManager)
	if len(managers) != 1 || managers[0].TeamID != "" {
		t.Fatalf("expected unresolved manager copied without team, got %+v", managers)
	}
}

func TestMigrationService_RerunSkipsMigratedDocuments(t *testing.T) {
	t.Parallel()

	f := newFixture(fixtureOptions{})
	ctx := t.Context()
	seedTeams(t, f, team.Team{ID: "team-1", TeamName: "Lions", CreatedAt: fixedTime})
	svc := newMigration(f, legacyDocs())

	if _, err := svc.MigrateRegistrations(ctx, false); err != nil {
		t.Fatalf("first run: %v", err)
	}
	report, err := svc.MigrateRegistrations(ctx, false)
	if err != nil {
		t.Fatalf("second run: %v", err)
	}
	if report.Migrated != 0 || report.AlreadyMigrated != 4 || report.Skipped != 1 {
		t.Fatalf("unexpected rerun report: %+v", report)
	}

	players, _ := f.participants.ListByKind(ctx, participant.KindPlayer)
	if len(players) != 2 {
		t.Fatalf("expected no duplicate players, got %d", len(players))
	}
}

func TestMigrationService_DryRunWritesNothing(t *testing.T) {
	t.Parallel()

	f := newFixture(fixtureOptions{})
	ctx := t.Context()
	seedTeams(t, f, team.Team{ID: "team-1", TeamName: "Lions", CreatedAt: fixedTime})
	svc := newMigration(f, legacyDocs())

	report, err := svc.MigrateRegistrations(ctx, true)
	if err != nil {
		t.Fatalf("dry run: %v", err)
	}
	if !report.DryRun || report.Migrated != 4 || report.Attached != 2 || report.Unresolved != 1 {
		t.Fatalf("unexpected dry run report: %+v", report)
	}

	for _, kind := range participant.Kinds {
		records, _ := f.participants.ListByKind(ctx, kind)
		if len(records) != 0 {
			t.Fatalf("expected no %s written, got %d", kind, len(records))
		}
	}
}
