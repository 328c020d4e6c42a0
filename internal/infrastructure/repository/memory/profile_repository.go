package memory

import (
	"context"
	"sync"

	"github.com/riskibarqy/tournament-registration/internal/domain/user"
)

type ProfileRepository struct {
	mu    sync.RWMutex
	items map[string]user.Profile
}

func NewProfileRepository() *ProfileRepository {
	return &ProfileRepository{items: make(map[string]user.Profile)}
}

func (r *ProfileRepository) MergeProfile(_ context.Context, profile user.Profile) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	r.items[profile.ID] = r.items[profile.ID].Merge(profile)
	return nil
}

func (r *ProfileRepository) GetProfile(_ context.Context, id string) (user.Profile, bool, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	profile, ok := r.items[id]
	return profile, ok, nil
}

// Len is the number of stored profiles.
func (r *ProfileRepository) Len() int {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return len(r.items)
}
