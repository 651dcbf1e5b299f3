package usecase

import (
	"context"
	"errors"

	"skillsync/internal/domain/matching"
	"skillsync/internal/domain/role"
	"skillsync/internal/domain/user"
)

type MatchingUsecase interface {
	RankStudentsForRole(ctx context.Context, roleID string) ([]matching.Result, error)
	RankRolesForStudent(ctx context.Context, studentID string) ([]matching.Result, error)
}

// Matching loads candidates and hands them to the ranker. Every lookup
// completes before any score is computed; the first error aborts the call.
type Matching struct {
	users  user.Repository
	roles  role.Repository
	ranker matching.Ranker
}

func NewMatchingUsecase(users user.Repository, roles role.Repository, ranker matching.Ranker) *Matching {
	return &Matching{users: users, roles: roles, ranker: ranker}
}

func (u *Matching) RankStudentsForRole(ctx context.Context, roleID string) ([]matching.Result, error) {
	id, err := parseID(roleID)
	if err != nil {
		return nil, err
	}

	target, err := u.roles.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, role.ErrNotFound) {
			return nil, ErrNotFound
		}
		return nil, ErrInternal
	}

	students, err := u.users.ListByRole(ctx, user.RoleStudent)
	if err != nil {
		return nil, ErrInternal
	}

	return u.ranker.RankStudents(target, students), nil
}

func (u *Matching) RankRolesForStudent(ctx context.Context, studentID string) ([]matching.Result, error) {
	id, err := parseID(studentID)
	if err != nil {
		return nil, err
	}

	student, err := u.users.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, user.ErrNotFound) {
			return nil, ErrNotFound
		}
		return nil, ErrInternal
	}
	if !student.IsStudent() {
		return nil, ErrNotFound
	}

	roles, err := u.roles.ListActive(ctx)
	if err != nil {
		return nil, ErrInternal
	}

	return u.ranker.RankRoles(student, roles), nil
}
