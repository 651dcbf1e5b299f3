package memory

import (
	"context"
	"sync"
	"time"

	"skillsync/internal/domain/application"

	"github.com/google/uuid"
)

type ApplicationRepository struct {
	mu    sync.RWMutex
	byID  map[uuid.UUID]application.Application
	order []uuid.UUID
}

func NewApplicationRepository() *ApplicationRepository {
	return &ApplicationRepository{byID: map[uuid.UUID]application.Application{}}
}

func (r *ApplicationRepository) Create(_ context.Context, a application.Application) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	for _, existing := range r.byID {
		if existing.StudentID == a.StudentID && existing.RoleID == a.RoleID {
			return application.ErrAlreadyApplied
		}
	}
	if a.AppliedAt.IsZero() {
		a.AppliedAt = time.Now().UTC()
	}
	r.byID[a.ID] = a
	r.order = append(r.order, a.ID)
	return nil
}

func (r *ApplicationRepository) GetByID(_ context.Context, id uuid.UUID) (application.Application, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	a, ok := r.byID[id]
	if !ok {
		return application.Application{}, application.ErrNotFound
	}
	return a, nil
}

func (r *ApplicationRepository) ListByRole(_ context.Context, roleID uuid.UUID) ([]application.Application, error) {
	return r.filter(func(a application.Application) bool { return a.RoleID == roleID }, false), nil
}

func (r *ApplicationRepository) ListByStudent(_ context.Context, studentID uuid.UUID) ([]application.Application, error) {
	return r.filter(func(a application.Application) bool { return a.StudentID == studentID }, true), nil
}

func (r *ApplicationRepository) UpdateStatus(_ context.Context, id uuid.UUID, status application.Status) (application.Application, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	a, ok := r.byID[id]
	if !ok {
		return application.Application{}, application.ErrNotFound
	}
	a.Status = status
	r.byID[id] = a
	return a, nil
}

func (r *ApplicationRepository) filter(keep func(application.Application) bool, newestFirst bool) []application.Application {
	r.mu.RLock()
	defer r.mu.RUnlock()

	out := make([]application.Application, 0)
	for _, id := range r.order {
		if a := r.byID[id]; keep(a) {
			out = append(out, a)
		}
	}
	if newestFirst {
		for i, j := 0, len(out)-1; i < j; i, j = i+1, j-1 {
			out[i], out[j] = out[j], out[i]
		}
	}
	return out
}
