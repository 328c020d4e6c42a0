package usecase

import (
	"context"
	"errors"
	"strconv"
	"sync"
	"sync/atomic"
	"time"

	"github.com/riskibarqy/tournament-registration/internal/domain/participant"
	"github.com/riskibarqy/tournament-registration/internal/domain/user"
	"github.com/riskibarqy/tournament-registration/internal/infrastructure/repository/memory"
	"github.com/riskibarqy/tournament-registration/internal/platform/changefeed"
	"github.com/riskibarqy/tournament-registration/internal/platform/logging"
)

type sequenceIDs struct {
	prefix string
	next   atomic.Int64
}

func (s *sequenceIDs) NewID() (string, error) {
	return s.prefix + strconv.FormatInt(s.next.Add(1), 10), nil
}

type recordingNotifier struct {
	mu      sync.Mutex
	changes []changefeed.Change
}

func (n *recordingNotifier) Notify(_ context.Context, change changefeed.Change) error {
	n.mu.Lock()
	defer n.mu.Unlock()
	n.changes = append(n.changes, change)
	return nil
}

func (n *recordingNotifier) documents(collection changefeed.Collection) []string {
	n.mu.Lock()
	defer n.mu.Unlock()
	out := make([]string, 0)
	for _, c := range n.changes {
		if c.Collection == collection {
			out = append(out, c.DocumentID)
		}
	}
	return out
}

// failingParticipants fails SetTeamID so attaches stop after the roster write.
type failingParticipants struct {
	*memory.ParticipantRepository
}

func (failingParticipants) SetTeamID(context.Context, participant.Kind, string, string) error {
	return errors.New("write rejected")
}

type recordingRepairs struct {
	mu      sync.Mutex
	reasons []string
}

func (r *recordingRepairs) ScheduleReconcile(_ context.Context, reason string) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.reasons = append(r.reasons, reason)
	return nil
}

type fixture struct {
	teams        *memory.TeamRepository
	logs         *memory.TeamLogRepository
	roster       *memory.RosterRepository
	participants *memory.ParticipantRepository
	profiles     *memory.ProfileRepository
	legacy       *memory.RegistrationRepository
	notifier     *recordingNotifier

	profileSvc   *ProfileService
	registrar    *Registrar
	resolver     *TeamResolver
	guard        *DuplicateGuard
	linkage      *LinkageService
	registration *RegistrationService
	payments     *PaymentService
	admin        *TeamAdminService
	reconcile    *ReconcileService
}

type fixtureOptions struct {
	requireGoogle bool
	participants  participant.Repository
}

func newFixture(opts fixtureOptions) *fixture {
	f := &fixture{
		teams:        memory.NewTeamRepository(),
		logs:         memory.NewTeamLogRepository(),
		roster:       memory.NewRosterRepository(),
		participants: memory.NewParticipantRepository(),
		profiles:     memory.NewProfileRepository(),
		legacy:       memory.NewRegistrationRepository(),
		notifier:     &recordingNotifier{},
	}
	var participants participant.Repository = f.participants
	if opts.participants != nil {
		participants = opts.participants
	}

	logger := logging.NewNop()
	ids := &sequenceIDs{prefix: "id-"}
	f.profileSvc = NewProfileService(f.profiles, logger, nil)
	f.registrar = NewRegistrar(f.teams, f.logs, participants, f.profileSvc, ids, f.notifier, nil, logger)
	f.resolver = NewTeamResolver(f.teams)
	f.guard = NewDuplicateGuard(f.teams)
	f.linkage = NewLinkageService(f.resolver, f.registrar, participants, f.roster, ids, f.notifier, nil, logger)
	f.registration = NewRegistrationService(f.registrar, f.resolver, f.guard, f.linkage, opts.requireGoogle, nil, logger)
	f.payments = NewPaymentService(f.teams, f.logs, ids, nil, f.notifier, nil, logger)
	f.admin = NewTeamAdminService(f.teams, f.logs, ids, nil, f.notifier, logger)
	f.reconcile = NewReconcileService(f.teams, f.roster, participants, ids, 2, f.notifier, nil, logger)
	return f
}

func googleUser(id string) *user.Principal {
	return &user.Principal{UserID: id, Email: id + "@example.com", DisplayName: "User " + id, Provider: user.ProviderGoogle}
}

var fixedTime = time.Date(2026, time.March, 1, 10, 0, 0, 0, time.UTC)
