package team

import (
	"context"

	"github.com/riskibarqy/tournament-registration/internal/domain/participant"
)

// Repository describes team persistence needs from use cases. List returns
// teams ordered by CreatedAt descending.
type Repository interface {
	Create(ctx context.Context, t Team) error
	GetByID(ctx context.Context, id string) (Team, bool, error)
	FindByField(ctx context.Context, field Field, value string) ([]Team, error)
	List(ctx context.Context) ([]Team, error)
	UpdateFields(ctx context.Context, id string, patch Patch) error
}

// LogRepository stores the append-only messages and paymentProofs
// sub-collections.
type LogRepository interface {
	AppendMessage(ctx context.Context, m Message) error
	ListMessages(ctx context.Context, teamID string) ([]Message, error)
	AppendProof(ctx context.Context, p PaymentProof) error
	ListProofs(ctx context.Context, teamID string) ([]PaymentProof, error)
}

// RosterRepository stores the players, coaches and managers sub-collections.
type RosterRepository interface {
	AddMember(ctx context.Context, entry MemberEntry) error
	ListMembers(ctx context.Context, teamID string, kind participant.Kind) ([]MemberEntry, error)
	RemoveMember(ctx context.Context, teamID string, kind participant.Kind, entityID string) (int, error)
	ListTeamIDsWithMembers(ctx context.Context, kind participant.Kind) ([]string, error)
}
