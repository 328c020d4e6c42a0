package registration

import "context"

type Repository interface {
	ListLegacy(ctx context.Context) ([]Legacy, error)
}
