package memory

import (
	"context"
	"fmt"
	"sort"
	"sync"

	"github.com/riskibarqy/tournament-registration/internal/domain/participant"
)

type ParticipantRepository struct {
	mu    sync.RWMutex
	items map[participant.Kind]map[string]participant.Participant
}

func NewParticipantRepository(seed ...participant.Participant) *ParticipantRepository {
	r := &ParticipantRepository{items: make(map[participant.Kind]map[string]participant.Participant)}
	for _, p := range seed {
		r.bucket(p.Kind)[p.ID] = p.Clone()
	}
	return r
}

func (r *ParticipantRepository) Create(_ context.Context, p participant.Participant) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	bucket := r.bucket(p.Kind)
	if _, exists := bucket[p.ID]; exists {
		return fmt.Errorf("%s %s already exists", p.Kind, p.ID)
	}
	bucket[p.ID] = p.Clone()
	return nil
}

func (r *ParticipantRepository) GetByID(_ context.Context, kind participant.Kind, id string) (participant.Participant, bool, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	p, ok := r.items[kind][id]
	if !ok {
		return participant.Participant{}, false, nil
	}
	return p.Clone(), true, nil
}

func (r *ParticipantRepository) SetTeamID(_ context.Context, kind participant.Kind, id, teamID string) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	p, ok := r.items[kind][id]
	if !ok {
		return fmt.Errorf("%s %s does not exist", kind, id)
	}
	p.TeamID = teamID
	r.items[kind][id] = p
	return nil
}

func (r *ParticipantRepository) ListByUser(_ context.Context, kind participant.Kind, userID string) ([]participant.Participant, error) {
	return r.list(kind, func(p participant.Participant) bool { return p.UserID == userID }), nil
}

func (r *ParticipantRepository) ListByKind(_ context.Context, kind participant.Kind) ([]participant.Participant, error) {
	return r.list(kind, func(participant.Participant) bool { return true }), nil
}

func (r *ParticipantRepository) list(kind participant.Kind, keep func(participant.Participant) bool) []participant.Participant {
	r.mu.RLock()
	defer r.mu.RUnlock()

	out := make([]participant.Participant, 0)
	for _, p := range r.items[kind] {
		if keep(p) {
			out = append(out, p.Clone())
		}
	}
	sort.Slice(out, func(i, j int) bool {
		if !out[i].CreatedAt.Equal(out[j].CreatedAt) {
			return out[i].CreatedAt.After(out[j].CreatedAt)
		}
		return out[i].ID < out[j].ID
	})
	return out
}

// bucket must be called with the write lock held.
func (r *ParticipantRepository) bucket(kind participant.Kind) map[string]participant.Participant {
	b, ok := r.items[kind]
	if !ok {
		b = make(map[string]participant.Participant)
		r.items[kind] = b
	}
	return b
}
