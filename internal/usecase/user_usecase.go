package usecase

import (
	"context"
	"errors"
	"strings"

	"skillsync/internal/domain/matching"
	"skillsync/internal/domain/skill"
	"skillsync/internal/domain/user"
	ucuser "skillsync/internal/usecase/user"

	"github.com/google/uuid"
)

type UserUsecase interface {
	GetProfile(ctx context.Context, userID uuid.UUID) (user.User, error)
	UpdateProfile(ctx context.Context, userID uuid.UUID, in user.ProfileUpdate) (user.User, error)
	Completeness(ctx context.Context, userID uuid.UUID) (matching.Completeness, error)
	AddSkill(ctx context.Context, userID uuid.UUID, sk skill.Skill) (user.User, error)
	RemoveSkill(ctx context.Context, userID uuid.UUID, name string) (user.User, error)

	ListStudents(ctx context.Context) ([]user.User, error)
	SearchStudents(ctx context.Context, query string) ([]user.User, error)
	GetStudent(ctx context.Context, id string) (user.User, error)
}

type User struct {
	svc   *ucuser.Service
	users user.Repository
}

func NewUserUsecase(users user.Repository) *User {
	return &User{svc: ucuser.NewService(users), users: users}
}

func (u *User) GetProfile(ctx context.Context, userID uuid.UUID) (user.User, error) {
	usr, err := u.svc.Get(ctx, userID)
	return usr, mapUserErr(err)
}

func (u *User) UpdateProfile(ctx context.Context, userID uuid.UUID, in user.ProfileUpdate) (user.User, error) {
	usr, err := u.svc.Update(ctx, userID, in)
	return usr, mapUserErr(err)
}

func (u *User) Completeness(ctx context.Context, userID uuid.UUID) (matching.Completeness, error) {
	usr, err := u.svc.Get(ctx, userID)
	if err != nil {
		return matching.Completeness{}, mapUserErr(err)
	}
	return matching.EvaluateCompleteness(usr), nil
}

func (u *User) AddSkill(ctx context.Context, userID uuid.UUID, sk skill.Skill) (user.User, error) {
	usr, err := u.svc.AddSkill(ctx, userID, sk)
	return usr, mapUserErr(err)
}

func (u *User) RemoveSkill(ctx context.Context, userID uuid.UUID, name string) (user.User, error) {
	usr, err := u.svc.RemoveSkill(ctx, userID, name)
	return usr, mapUserErr(err)
}

func (u *User) ListStudents(ctx context.Context) ([]user.User, error) {
	items, err := u.users.ListByRole(ctx, user.RoleStudent)
	if err != nil {
		return nil, ErrInternal
	}
	return sanitizeUsers(items), nil
}

// SearchStudents matches query case-insensitively against name and email.
func (u *User) SearchStudents(ctx context.Context, query string) ([]user.User, error) {
	query = strings.TrimSpace(query)
	if query == "" {
		return nil, ErrInvalidInput
	}
	items, err := u.users.SearchByRole(ctx, user.RoleStudent, query)
	if err != nil {
		return nil, ErrInternal
	}
	return sanitizeUsers(items), nil
}

func (u *User) GetStudent(ctx context.Context, id string) (user.User, error) {
	studentID, err := parseID(id)
	if err != nil {
		return user.User{}, err
	}
	usr, err := u.svc.Get(ctx, studentID)
	if err != nil {
		return user.User{}, mapUserErr(err)
	}
	if !usr.IsStudent() {
		return user.User{}, ErrNotFound
	}
	return usr, nil
}

func mapUserErr(err error) error {
	switch {
	case err == nil:
		return nil
	case errors.Is(err, ucuser.ErrNotFound), errors.Is(err, ucuser.ErrSkillMissing):
		return ErrNotFound
	case errors.Is(err, ucuser.ErrInvalidInput):
		return ErrInvalidInput
	case errors.Is(err, ucuser.ErrNotStudent):
		return ErrForbidden
	case errors.Is(err, ucuser.ErrSkillExists):
		return ErrConflict
	default:
		return ErrInternal
	}
}

func sanitizeUsers(items []user.User) []user.User {
	for i := range items {
		items[i].PasswordHash = ""
	}
	return items
}

func parseID(raw string) (uuid.UUID, error) {
	id, err := uuid.Parse(strings.TrimSpace(raw))
	if err != nil || id == uuid.Nil {
		return uuid.Nil, ErrInvalidInput
	}
	return id, nil
}
