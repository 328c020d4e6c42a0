package memory

import (
	"context"
	"sync"

	"github.com/riskibarqy/tournament-registration/internal/domain/registration"
)

type RegistrationRepository struct {
	mu    sync.RWMutex
	items []registration.Legacy
}

func NewRegistrationRepository(seed ...registration.Legacy) *RegistrationRepository {
	return &RegistrationRepository{items: append([]registration.Legacy(nil), seed...)}
}

func (r *RegistrationRepository) ListLegacy(_ context.Context) ([]registration.Legacy, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	return append([]registration.Legacy(nil), r.items...), nil
}
