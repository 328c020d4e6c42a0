package memory

import (
	"context"
	"fmt"
	"sort"
	"sync"

	"github.com/riskibarqy/tournament-registration/internal/domain/team"
)

// TeamRepository keeps teams in insertion order so equal-name lookups return
// the earliest inserted team first, like a store scanning its collection.
type TeamRepository struct {
	mu    sync.RWMutex
	order []string
	items map[string]team.Team
}

func NewTeamRepository(seed ...team.Team) *TeamRepository {
	r := &TeamRepository{items: make(map[string]team.Team)}
	for _, item := range seed {
		r.order = append(r.order, item.ID)
		r.items[item.ID] = item
	}
	return r
}

func (r *TeamRepository) Create(_ context.Context, t team.Team) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, exists := r.items[t.ID]; exists {
		return fmt.Errorf("team %s already exists", t.ID)
	}
	r.order = append(r.order, t.ID)
	r.items[t.ID] = t
	return nil
}

func (r *TeamRepository) GetByID(_ context.Context, id string) (team.Team, bool, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	item, ok := r.items[id]
	return item, ok, nil
}

func (r *TeamRepository) FindByField(_ context.Context, field team.Field, value string) ([]team.Team, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	out := make([]team.Team, 0)
	for _, id := range r.order {
		item := r.items[id]
		got, err := teamFieldValue(item, field)
		if err != nil {
			return nil, err
		}
		if got == value {
			out = append(out, item)
		}
	}
	return out, nil
}

func (r *TeamRepository) List(_ context.Context) ([]team.Team, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	out := make([]team.Team, 0, len(r.order))
	for _, id := range r.order {
		out = append(out, r.items[id])
	}
	sort.SliceStable(out, func(i, j int) bool {
		return out[i].CreatedAt.After(out[j].CreatedAt)
	})
	return out, nil
}

func (r *TeamRepository) UpdateFields(_ context.Context, id string, patch team.Patch) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	item, ok := r.items[id]
	if !ok {
		return fmt.Errorf("team %s does not exist", id)
	}
	r.items[id] = patch.Apply(item)
	return nil
}

func teamFieldValue(t team.Team, field team.Field) (string, error) {
	switch field {
	case team.FieldTeamName:
		return t.TeamName, nil
	case team.FieldLegacyName:
		return t.LegacyName, nil
	case team.FieldContactEmail:
		return t.ContactEmail, nil
	case team.FieldUploaderID:
		return t.UploaderID, nil
	case team.FieldManagerID:
		return t.ManagerID, nil
	case team.FieldCoachID:
		return t.CoachID, nil
	default:
		return "", fmt.Errorf("unsupported team field %q", field)
	}
}
