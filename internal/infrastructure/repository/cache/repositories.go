package cache

import (
	"context"
	"strings"
	"time"

	"github.com/riskibarqy/tournament-registration/internal/domain/user"
	basecache "github.com/riskibarqy/tournament-registration/internal/platform/cache"
)

type cachedProfile struct {
	value  user.Profile
	exists bool
}

// ProfileRepository is a read-through cache in front of the profile store.
// Writes go to the store first and then drop the cached entry, so only other
// instances can serve a stale profile, for at most ttl.
type ProfileRepository struct {
	next  user.ProfileRepository
	cache *basecache.Store[cachedProfile]
}

func NewProfileRepository(next user.ProfileRepository, ttl time.Duration, opts ...basecache.Option) *ProfileRepository {
	return &ProfileRepository{
		next:  next,
		cache: basecache.NewStore[cachedProfile](ttl, opts...),
	}
}

func (r *ProfileRepository) MergeProfile(ctx context.Context, profile user.Profile) error {
	if err := r.next.MergeProfile(ctx, profile); err != nil {
		return err
	}
	r.cache.Delete(ctx, profileKey(profile.ID))
	return nil
}

func (r *ProfileRepository) GetProfile(ctx context.Context, id string) (user.Profile, bool, error) {
	cached, err := r.cache.GetOrLoad(ctx, profileKey(id), func(ctx context.Context) (cachedProfile, error) {
		item, exists, err := r.next.GetProfile(ctx, id)
		if err != nil {
			return cachedProfile{}, err
		}
		return cachedProfile{value: item, exists: exists}, nil
	})
	if err != nil {
		return user.Profile{}, false, err
	}
	return cached.value, cached.exists, nil
}

func profileKey(id string) string {
	return "profile:id:" + strings.TrimSpace(id)
}
