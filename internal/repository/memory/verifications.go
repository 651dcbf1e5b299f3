package memory

import (
	"context"
	"sync"

	"skillsync/internal/domain/skill"

	"github.com/google/uuid"
)

type SkillVerificationRepository struct {
	mu    sync.RWMutex
	items []skill.VerificationRequest
}

func NewSkillVerificationRepository() *SkillVerificationRepository {
	return &SkillVerificationRepository{}
}

func (r *SkillVerificationRepository) Create(_ context.Context, v skill.VerificationRequest) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.items = append(r.items, v)
	return nil
}

func (r *SkillVerificationRepository) ListByUser(_ context.Context, userID uuid.UUID) ([]skill.VerificationRequest, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	out := make([]skill.VerificationRequest, 0)
	for i := len(r.items) - 1; i >= 0; i-- {
		if r.items[i].UserID == userID {
			out = append(out, r.items[i])
		}
	}
	return out, nil
}
