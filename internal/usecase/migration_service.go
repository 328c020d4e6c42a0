package usecase

import (
	"context"
	"fmt"
	"sync"
	"sync/atomic"
	"time"

	"github.com/panjf2000/ants/v2"
	"github.com/riskibarqy/tournament-registration/internal/domain/participant"
	"github.com/riskibarqy/tournament-registration/internal/domain/registration"
	"github.com/riskibarqy/tournament-registration/internal/platform/logging"
)

type MigrationReport struct {
	DryRun          bool  `json:"dry_run"`
	Total           int   `json:"total"`
	Migrated        int   `json:"migrated"`
	Attached        int   `json:"attached"`
	Unresolved      int   `json:"unresolved"`
	AlreadyMigrated int   `json:"already_migrated"`
	Skipped         int   `json:"skipped"`
	Failed          int   `json:"failed"`
	DurationMs      int64 `json:"duration_ms"`
}

// MigrationService fans legacy registrations out into the role collections.
// Each created record keeps the legacy id in MigratedFrom, which also makes
// a rerun skip documents it already copied.
type MigrationService struct {
	legacy       registration.Repository
	participants participant.Repository
	registrar    *Registrar
	resolver     *TeamResolver
	linkage      *LinkageService
	workers      int
	logger       *logging.Logger
}

func NewMigrationService(
	legacy registration.Repository,
	participants participant.Repository,
	registrar *Registrar,
	resolver *TeamResolver,
	linkage *LinkageService,
	workers int,
	logger *logging.Logger,
) *MigrationService {
	if workers <= 0 {
		workers = 1
	}
	if logger == nil {
		logger = logging.Default()
	}
	return &MigrationService{
		legacy:       legacy,
		participants: participants,
		registrar:    registrar,
		resolver:     resolver,
		linkage:      linkage,
		workers:      workers,
		logger:       logger,
	}
}

func (s *MigrationService) MigrateRegistrations(ctx context.Context, dryRun bool) (MigrationReport, error) {
	ctx, span := startUsecaseSpan(ctx, "usecase.MigrationService.MigrateRegistrations")
	defer span.End()

	started := time.Now()
	docs, err := s.legacy.ListLegacy(ctx)
	if err != nil {
		recordSpanError(span, err)
		return MigrationReport{}, storeErr("list legacy registrations", err)
	}

	migrated := make(map[participant.Kind]map[string]struct{}, len(participant.Kinds))
	for _, kind := range participant.Kinds {
		existing, err := s.participants.ListByKind(ctx, kind)
		if err != nil {
			return MigrationReport{}, storeErr("list "+kind.Collection(), err)
		}
		migrated[kind] = make(map[string]struct{})
		for _, p := range existing {
			if p.MigratedFrom != "" {
				migrated[kind][p.MigratedFrom] = struct{}{}
			}
		}
	}

	var migratedCount, attached, unresolved, already, skipped, failed atomic.Int32

	pool, err := ants.NewPool(s.workers)
	if err != nil {
		return MigrationReport{}, fmt.Errorf("create worker pool: %w", err)
	}
	defer pool.Release()

	var workers sync.WaitGroup
	for _, doc := range docs {
		kind, err := participant.ParseKind(doc.Role)
		if err != nil {
			skipped.Add(1)
			continue
		}
		if _, ok := migrated[kind][doc.ID]; ok {
			already.Add(1)
			continue
		}

		workers.Add(1)
		if err := pool.Submit(func() {
			defer workers.Done()
			outcome := s.migrateOne(ctx, kind, doc, dryRun)
			switch outcome {
			case migrateAttached:
				migratedCount.Add(1)
				attached.Add(1)
			case migrateUnresolved:
				migratedCount.Add(1)
				unresolved.Add(1)
			case migrateCopied:
				migratedCount.Add(1)
			default:
				failed.Add(1)
			}
		}); err != nil {
			workers.Done()
			return MigrationReport{}, fmt.Errorf("submit migration task: %w", err)
		}
	}
	workers.Wait()

	report := MigrationReport{
		DryRun:          dryRun,
		Total:           len(docs),
		Migrated:        int(migratedCount.Load()),
		Attached:        int(attached.Load()),
		Unresolved:      int(unresolved.Load()),
		AlreadyMigrated: int(already.Load()),
		Skipped:         int(skipped.Load()),
		Failed:          int(failed.Load()),
		DurationMs:      time.Since(started).Milliseconds(),
	}
	s.logger.InfoContext(ctx, "legacy registration migration finished",
		"dry_run", dryRun,
		"total", report.Total,
		"migrated", report.Migrated,
		"attached", report.Attached,
		"unresolved", report.Unresolved,
		"already_migrated", report.AlreadyMigrated,
		"skipped", report.Skipped,
		"failed", report.Failed,
	)
	return report, nil
}

type migrateOutcome int

const (
	migrateFailed migrateOutcome = iota
	migrateCopied
	migrateAttached
	migrateUnresolved
)

func (s *MigrationService) migrateOne(ctx context.Context, kind participant.Kind, doc registration.Legacy, dryRun bool) migrateOutcome {
	identifier := doc.TeamIdentifier()
	teamID := ""
	if identifier != "" {
		resolved, found, err := s.resolver.ResolveTeamID(ctx, identifier)
		if err != nil {
			s.logger.WarnContext(ctx, "resolve legacy team failed", "registration_id", doc.ID, "error", err)
			return migrateFailed
		}
		if found {
			teamID = resolved
		}
	}

	if dryRun {
		return classify(identifier, teamID)
	}

	created, err := s.registrar.CreateParticipant(ctx, kind, nil, ParticipantInput{
		Role:         doc.Role,
		FullName:     doc.FullName,
		Email:        doc.Email,
		Phone:        doc.Phone,
		IDNumber:     doc.IDNumber,
		Area:         doc.Area,
		Details:      doc.Details,
		UserID:       doc.UserID,
		MigratedFrom: doc.ID,
	})
	if err != nil {
		s.logger.WarnContext(ctx, "copy legacy registration failed", "registration_id", doc.ID, "error", err)
		return migrateFailed
	}

	if teamID != "" {
		if _, err := s.linkage.link(ctx, teamID, created); err != nil {
			s.logger.WarnContext(ctx, "attach migrated record failed",
				"registration_id", doc.ID,
				"entity_id", created.ID,
				"team_id", teamID,
				"error", err,
			)
			return migrateFailed
		}
	} else if identifier != "" {
		s.logger.InfoContext(ctx, "legacy team not resolved", "registration_id", doc.ID, "identifier", identifier)
	}
	return classify(identifier, teamID)
}

func classify(identifier, teamID string) migrateOutcome {
	switch {
	case teamID != "":
		return migrateAttached
	case identifier != "":
		return migrateUnresolved
	default:
		return migrateCopied
	}
}
