package memory

import (
	"context"
	"sync"
	"time"

	"skillsync/internal/domain/role"

	"github.com/google/uuid"
)

type RoleRepository struct {
	mu    sync.RWMutex
	byID  map[uuid.UUID]role.Role
	order []uuid.UUID
}

func NewRoleRepository() *RoleRepository {
	return &RoleRepository{byID: map[uuid.UUID]role.Role{}}
}

func (r *RoleRepository) Create(_ context.Context, in role.Role) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if in.CreatedAt.IsZero() {
		in.CreatedAt = time.Now().UTC()
	}
	r.byID[in.ID] = cloneRole(in)
	r.order = append(r.order, in.ID)
	return nil
}

func (r *RoleRepository) GetByID(_ context.Context, id uuid.UUID) (role.Role, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	out, ok := r.byID[id]
	if !ok {
		return role.Role{}, role.ErrNotFound
	}
	return cloneRole(out), nil
}

func (r *RoleRepository) ListActive(context.Context) ([]role.Role, error) {
	return r.filter(func(x role.Role) bool { return x.IsActive }), nil
}

func (r *RoleRepository) ListByRecruiter(_ context.Context, recruiterID uuid.UUID) ([]role.Role, error) {
	return r.filter(func(x role.Role) bool { return x.RecruiterID == recruiterID }), nil
}

func (r *RoleRepository) filter(keep func(role.Role) bool) []role.Role {
	r.mu.RLock()
	defer r.mu.RUnlock()

	out := make([]role.Role, 0)
	for _, id := range r.order {
		if x := r.byID[id]; keep(x) {
			out = append(out, cloneRole(x))
		}
	}
	return out
}

func cloneRole(x role.Role) role.Role {
	x.RequiredSkills = append([]string(nil), x.RequiredSkills...)
	x.Requirements = append([]string(nil), x.Requirements...)
	if x.SalaryRange != nil {
		s := *x.SalaryRange
		x.SalaryRange = &s
	}
	return x
}
