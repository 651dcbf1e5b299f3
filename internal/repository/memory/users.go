// Package memory holds map-backed repositories used by tests and by the
// server when no database is configured. Lists preserve insertion order.
package memory

import (
	"context"
	"errors"
	"strings"
	"sync"
	"time"

	"skillsync/internal/domain/skill"
	"skillsync/internal/domain/user"

	"github.com/google/uuid"
)

type UserRepository struct {
	mu    sync.RWMutex
	byID  map[uuid.UUID]user.User
	order []uuid.UUID
	now   func() time.Time
}

func NewUserRepository() *UserRepository {
	return &UserRepository{byID: map[uuid.UUID]user.User{}, now: time.Now}
}

func (r *UserRepository) Create(_ context.Context, u user.User) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	for _, existing := range r.byID {
		if strings.EqualFold(existing.Email, u.Email) {
			return user.ErrEmailTaken
		}
	}
	now := r.now().UTC()
	if u.CreatedAt.IsZero() {
		u.CreatedAt = now
	}
	u.UpdatedAt = now
	r.byID[u.ID] = cloneUser(u)
	r.order = append(r.order, u.ID)
	return nil
}

func (r *UserRepository) GetByID(_ context.Context, id uuid.UUID) (user.User, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	u, ok := r.byID[id]
	if !ok {
		return user.User{}, user.ErrNotFound
	}
	return cloneUser(u), nil
}

func (r *UserRepository) GetByEmail(_ context.Context, email string) (user.User, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	email = strings.TrimSpace(email)
	for _, id := range r.order {
		if u := r.byID[id]; strings.EqualFold(u.Email, email) {
			return cloneUser(u), nil
		}
	}
	return user.User{}, user.ErrNotFound
}

func (r *UserRepository) ExistsByEmail(ctx context.Context, email string) (bool, error) {
	_, err := r.GetByEmail(ctx, email)
	if errors.Is(err, user.ErrNotFound) {
		return false, nil
	}
	if err != nil {
		return false, err
	}
	return true, nil
}

func (r *UserRepository) Update(_ context.Context, u user.User) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	existing, ok := r.byID[u.ID]
	if !ok {
		return user.ErrNotFound
	}
	u.Email = existing.Email
	u.CreatedAt = existing.CreatedAt
	u.UpdatedAt = r.now().UTC()
	r.byID[u.ID] = cloneUser(u)
	return nil
}

func (r *UserRepository) ListByRole(_ context.Context, role user.Role) ([]user.User, error) {
	return r.filter(func(u user.User) bool { return u.Role == role }), nil
}

func (r *UserRepository) SearchByRole(_ context.Context, role user.Role, query string) ([]user.User, error) {
	q := strings.ToLower(strings.TrimSpace(query))
	return r.filter(func(u user.User) bool {
		if u.Role != role {
			return false
		}
		return strings.Contains(strings.ToLower(u.FullName), q) || strings.Contains(strings.ToLower(u.Email), q)
	}), nil
}

func (r *UserRepository) filter(keep func(user.User) bool) []user.User {
	r.mu.RLock()
	defer r.mu.RUnlock()

	out := make([]user.User, 0)
	for _, id := range r.order {
		if u := r.byID[id]; keep(u) {
			out = append(out, cloneUser(u))
		}
	}
	return out
}

func cloneUser(u user.User) user.User {
	if u.Skills != nil {
		u.Skills = append([]skill.Skill(nil), u.Skills...)
	}
	if u.GPA != nil {
		v := *u.GPA
		u.GPA = &v
	}
	if u.GraduationYear != nil {
		v := *u.GraduationYear
		u.GraduationYear = &v
	}
	return u
}
