package memory

import (
	"context"
	"sort"
	"sync"

	"github.com/riskibarqy/tournament-registration/internal/domain/participant"
	"github.com/riskibarqy/tournament-registration/internal/domain/team"
)

type RosterRepository struct {
	mu      sync.RWMutex
	entries map[rosterKey][]team.MemberEntry
}

type rosterKey struct {
	teamID string
	kind   participant.Kind
}

func NewRosterRepository() *RosterRepository {
	return &RosterRepository{entries: make(map[rosterKey][]team.MemberEntry)}
}

func (r *RosterRepository) AddMember(_ context.Context, entry team.MemberEntry) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	key := rosterKey{teamID: entry.TeamID, kind: entry.Kind}
	entry.Details = cloneStrings(entry.Details)
	r.entries[key] = append(r.entries[key], entry)
	return nil
}

func (r *RosterRepository) ListMembers(_ context.Context, teamID string, kind participant.Kind) ([]team.MemberEntry, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	items := r.entries[rosterKey{teamID: teamID, kind: kind}]
	out := make([]team.MemberEntry, 0, len(items))
	for _, e := range items {
		e.Details = cloneStrings(e.Details)
		out = append(out, e)
	}
	return out, nil
}

func (r *RosterRepository) RemoveMember(_ context.Context, teamID string, kind participant.Kind, entityID string) (int, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	key := rosterKey{teamID: teamID, kind: kind}
	items := r.entries[key]
	kept := items[:0]
	removed := 0
	for _, e := range items {
		if e.EntityID == entityID {
			removed++
			continue
		}
		kept = append(kept, e)
	}
	if len(kept) == 0 {
		delete(r.entries, key)
	} else {
		r.entries[key] = kept
	}
	return removed, nil
}

func (r *RosterRepository) ListTeamIDsWithMembers(_ context.Context, kind participant.Kind) ([]string, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	out := make([]string, 0)
	for key, items := range r.entries {
		if key.kind == kind && len(items) > 0 {
			out = append(out, key.teamID)
		}
	}
	sort.Strings(out)
	return out, nil
}
