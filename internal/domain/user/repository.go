package user

import "context"

// ProfileRepository stores users/{id}. MergeProfile never removes fields that
// the incoming profile leaves empty.
type ProfileRepository interface {
	MergeProfile(ctx context.Context, profile Profile) error
	GetProfile(ctx context.Context, id string) (Profile, bool, error)
}
