package memory

import (
	"context"
	"sync"

	"github.com/riskibarqy/tournament-registration/internal/domain/team"
)

type TeamLogRepository struct {
	mu       sync.RWMutex
	messages map[string][]team.Message
	proofs   map[string][]team.PaymentProof
}

func NewTeamLogRepository() *TeamLogRepository {
	return &TeamLogRepository{
		messages: make(map[string][]team.Message),
		proofs:   make(map[string][]team.PaymentProof),
	}
}

func (r *TeamLogRepository) AppendMessage(_ context.Context, m team.Message) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	m.Metadata = cloneStrings(m.Metadata)
	r.messages[m.TeamID] = append(r.messages[m.TeamID], m)
	return nil
}

func (r *TeamLogRepository) ListMessages(_ context.Context, teamID string) ([]team.Message, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	items := r.messages[teamID]
	out := make([]team.Message, 0, len(items))
	for _, m := range items {
		m.Metadata = cloneStrings(m.Metadata)
		out = append(out, m)
	}
	return out, nil
}

func (r *TeamLogRepository) AppendProof(_ context.Context, p team.PaymentProof) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	r.proofs[p.TeamID] = append(r.proofs[p.TeamID], p)
	return nil
}

func (r *TeamLogRepository) ListProofs(_ context.Context, teamID string) ([]team.PaymentProof, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	return append([]team.PaymentProof(nil), r.proofs[teamID]...), nil
}

func cloneStrings(in map[string]string) map[string]string {
	if in == nil {
		return nil
	}
	out := make(map[string]string, len(in))
	for k, v := range in {
		out[k] = v
	}
	return out
}
