package usecase

import (
	"context"
	"fmt"
	"sort"
	"sync"
	"time"

	"github.com/panjf2000/ants/v2"
	"github.com/riskibarqy/tournament-registration/internal/domain/participant"
	"github.com/riskibarqy/tournament-registration/internal/domain/team"
	"github.com/riskibarqy/tournament-registration/internal/platform/changefeed"
	idgen "github.com/riskibarqy/tournament-registration/internal/platform/id"
	"github.com/riskibarqy/tournament-registration/internal/platform/logging"
	"github.com/riskibarqy/tournament-registration/internal/platform/metrics"
	"go.opentelemetry.io/otel/attribute"
)

const defaultReconcileWorkers = 4

const (
	ReconcileActionRepaired     = "repaired"
	ReconcileActionOrphan       = "orphan_removed"
	ReconcileActionDanglingTeam = "dangling_team"
	ReconcileActionFailed       = "failed"
)

type ReconcileFinding struct {
	Kind     participant.Kind `json:"kind"`
	TeamID   string           `json:"team_id"`
	EntityID string           `json:"entity_id"`
	Action   string           `json:"action"`
	Message  string           `json:"message"`
}

type ReconcileReport struct {
	DryRun        bool               `json:"dry_run"`
	TeamsScanned  int                `json:"teams_scanned"`
	EntitiesRead  int                `json:"entities_read"`
	Repaired      int                `json:"repaired"`
	OrphanRemoved int                `json:"orphan_removed"`
	DanglingTeam  int                `json:"dangling_team"`
	Failed        int                `json:"failed"`
	Findings      []ReconcileFinding `json:"findings"`
	DurationMs    int64              `json:"duration_ms"`
}

// ReconcileService sweeps both membership representations and makes them
// agree again: canonical records pointing at a team get a roster entry, and
// roster entries whose record no longer points back are removed. Records
// pointing at a missing team are only flagged.
type ReconcileService struct {
	teams        team.Repository
	roster       team.RosterRepository
	participants participant.Repository
	idGen        idgen.Generator
	workers      int
	changes      changePublisher
	metrics      *metrics.Registration
	logger       *logging.Logger
	now          func() time.Time
}

func NewReconcileService(
	teams team.Repository,
	roster team.RosterRepository,
	participants participant.Repository,
	idGen idgen.Generator,
	workers int,
	notifier changefeed.Notifier,
	m *metrics.Registration,
	logger *logging.Logger,
) *ReconcileService {
	if workers <= 0 {
		workers = defaultReconcileWorkers
	}
	if logger == nil {
		logger = logging.Default()
	}
	return &ReconcileService{
		teams:        teams,
		roster:       roster,
		participants: participants,
		idGen:        idGen,
		workers:      workers,
		changes:      newChangePublisher(notifier, logger),
		metrics:      m,
		logger:       logger,
		now:          time.Now,
	}
}

type reconcileTask struct {
	kind   participant.Kind
	teamID string
	linked []participant.Participant
	byID   map[string]participant.Participant
}

func (s *ReconcileService) Sweep(ctx context.Context, dryRun bool) (ReconcileReport, error) {
	ctx, span := startUsecaseSpan(ctx, "usecase.ReconcileService.Sweep", attribute.Bool("reconcile.dry_run", dryRun))
	defer span.End()

	started := time.Now()
	report := ReconcileReport{DryRun: dryRun}

	tasks := make([]reconcileTask, 0)
	for _, kind := range participant.Kinds {
		kindTasks, read, err := s.collectTasks(ctx, kind)
		if err != nil {
			recordSpanError(span, err)
			return ReconcileReport{}, err
		}
		report.EntitiesRead += read
		tasks = append(tasks, kindTasks...)
	}
	report.TeamsScanned = len(tasks)

	pool, err := ants.NewPool(s.workers)
	if err != nil {
		return ReconcileReport{}, fmt.Errorf("create worker pool: %w", err)
	}
	defer pool.Release()

	var (
		mu       sync.Mutex
		findings []ReconcileFinding
		workers  sync.WaitGroup
	)
	for _, task := range tasks {
		workers.Add(1)
		if err := pool.Submit(func() {
			defer workers.Done()
			found := s.reconcileTeam(ctx, task, dryRun)
			mu.Lock()
			findings = append(findings, found...)
			mu.Unlock()
		}); err != nil {
			workers.Done()
			return ReconcileReport{}, fmt.Errorf("submit reconcile task: %w", err)
		}
	}
	workers.Wait()

	sort.SliceStable(findings, func(i, j int) bool {
		if findings[i].Kind != findings[j].Kind {
			return findings[i].Kind < findings[j].Kind
		}
		if findings[i].TeamID != findings[j].TeamID {
			return findings[i].TeamID < findings[j].TeamID
		}
		return findings[i].EntityID < findings[j].EntityID
	})

	perKind := make(map[participant.Kind]map[string]int)
	for _, f := range findings {
		switch f.Action {
		case ReconcileActionRepaired:
			report.Repaired++
		case ReconcileActionOrphan:
			report.OrphanRemoved++
		case ReconcileActionDanglingTeam:
			report.DanglingTeam++
		default:
			report.Failed++
		}
		if perKind[f.Kind] == nil {
			perKind[f.Kind] = make(map[string]int)
		}
		perKind[f.Kind][f.Action]++
	}
	for kind, actions := range perKind {
		for action, n := range actions {
			s.metrics.AddReconcileActions(string(kind), action, n)
		}
	}

	report.Findings = findings
	report.DurationMs = time.Since(started).Milliseconds()

	s.logger.InfoContext(ctx, "reconcile sweep finished",
		"dry_run", dryRun,
		"teams_scanned", report.TeamsScanned,
		"repaired", report.Repaired,
		"orphan_removed", report.OrphanRemoved,
		"dangling_team", report.DanglingTeam,
		"failed", report.Failed,
		"duration_ms", report.DurationMs,
	)

	return report, nil
}

func (s *ReconcileService) collectTasks(ctx context.Context, kind participant.Kind) ([]reconcileTask, int, error) {
	records, err := s.participants.ListByKind(ctx, kind)
	if err != nil {
		return nil, 0, storeErr("list "+kind.Collection(), err)
	}
	rosterTeams, err := s.roster.ListTeamIDsWithMembers(ctx, kind)
	if err != nil {
		return nil, 0, storeErr("list "+kind.Collection()+" roster teams", err)
	}

	byID := make(map[string]participant.Participant, len(records))
	linked := make(map[string][]participant.Participant)
	for _, p := range records {
		byID[p.ID] = p
		if p.TeamID != "" {
			linked[p.TeamID] = append(linked[p.TeamID], p)
		}
	}
	for _, teamID := range rosterTeams {
		if _, ok := linked[teamID]; !ok {
			linked[teamID] = nil
		}
	}

	teamIDs := make([]string, 0, len(linked))
	for teamID := range linked {
		teamIDs = append(teamIDs, teamID)
	}
	sort.Strings(teamIDs)

	tasks := make([]reconcileTask, 0, len(teamIDs))
	for _, teamID := range teamIDs {
		tasks = append(tasks, reconcileTask{kind: kind, teamID: teamID, linked: linked[teamID], byID: byID})
	}
	return tasks, len(records), nil
}

func (s *ReconcileService) reconcileTeam(ctx context.Context, task reconcileTask, dryRun bool) []ReconcileFinding {
	failed := func(entityID string, err error) []ReconcileFinding {
		return []ReconcileFinding{{
			Kind: task.kind, TeamID: task.teamID, EntityID: entityID,
			Action: ReconcileActionFailed, Message: err.Error(),
		}}
	}

	_, exists, err := s.teams.GetByID(ctx, task.teamID)
	if err != nil {
		return failed("", err)
	}
	if !exists {
		out := make([]ReconcileFinding, 0, len(task.linked))
		for _, p := range task.linked {
			out = append(out, ReconcileFinding{
				Kind: task.kind, TeamID: task.teamID, EntityID: p.ID,
				Action: ReconcileActionDanglingTeam, Message: "team does not exist",
			})
		}
		return out
	}

	entries, err := s.roster.ListMembers(ctx, task.teamID, task.kind)
	if err != nil {
		return failed("", err)
	}

	present := make(map[string]struct{}, len(entries))
	var out []ReconcileFinding
	changed := false
	for _, entry := range entries {
		if _, seen := present[entry.EntityID]; seen {
			continue
		}
		present[entry.EntityID] = struct{}{}

		owner, ok := task.byID[entry.EntityID]
		if ok && owner.TeamID == task.teamID {
			continue
		}
		if !dryRun {
			if _, err := s.roster.RemoveMember(ctx, task.teamID, task.kind, entry.EntityID); err != nil {
				out = append(out, failed(entry.EntityID, err)...)
				continue
			}
			changed = true
		}
		out = append(out, ReconcileFinding{
			Kind: task.kind, TeamID: task.teamID, EntityID: entry.EntityID,
			Action: ReconcileActionOrphan, Message: "record does not point back at team",
		})
	}

	for _, p := range task.linked {
		if _, ok := present[p.ID]; ok {
			continue
		}
		if !dryRun {
			entryID, err := s.idGen.NewID()
			if err == nil {
				err = s.roster.AddMember(ctx, team.NewMemberEntry(entryID, task.teamID, p, s.now().UTC()))
			}
			if err != nil {
				out = append(out, failed(p.ID, err)...)
				continue
			}
			changed = true
		}
		out = append(out, ReconcileFinding{
			Kind: task.kind, TeamID: task.teamID, EntityID: p.ID,
			Action: ReconcileActionRepaired, Message: "roster entry missing",
		})
	}

	if changed {
		s.changes.publish(ctx, changefeed.CollectionTeams, task.teamID)
	}
	return out
}
