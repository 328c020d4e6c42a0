package participant

import "context"

type Repository interface {
	Create(ctx context.Context, p Participant) error
	GetByID(ctx context.Context, kind Kind, id string) (Participant, bool, error)
	SetTeamID(ctx context.Context, kind Kind, id, teamID string) error
	ListByUser(ctx context.Context, kind Kind, userID string) ([]Participant, error)
	ListByKind(ctx context.Context, kind Kind) ([]Participant, error)
}
