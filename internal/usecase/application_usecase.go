package usecase

import (
	"context"
	"errors"
	"strings"

	"skillsync/internal/domain/application"
	"skillsync/internal/domain/matching"
	"skillsync/internal/domain/role"
	"skillsync/internal/domain/user"

	"github.com/google/uuid"
)

type ApplicationUsecase interface {
	Apply(ctx context.Context, studentID uuid.UUID, roleID string, coverLetter string) (application.Application, error)
	ListMine(ctx context.Context, studentID uuid.UUID) ([]application.Application, error)
}

type Applications struct {
	users  user.Repository
	roles  role.Repository
	apps   application.Repository
	events EventPublisher
}

func NewApplicationUsecase(users user.Repository, roles role.Repository, apps application.Repository, events EventPublisher) *Applications {
	return &Applications{users: users, roles: roles, apps: apps, events: publisherOrNop(events)}
}

// Apply stores an application with the match score the student has at
// apply time. Later profile edits do not change it.
func (u *Applications) Apply(ctx context.Context, studentID uuid.UUID, roleID string, coverLetter string) (application.Application, error) {
	id, err := parseID(roleID)
	if err != nil {
		return application.Application{}, err
	}

	student, err := u.users.GetByID(ctx, studentID)
	if err != nil {
		if errors.Is(err, user.ErrNotFound) {
			return application.Application{}, ErrUnauthorized
		}
		return application.Application{}, ErrInternal
	}
	if !student.IsStudent() {
		return application.Application{}, ErrForbidden
	}

	target, err := u.roles.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, role.ErrNotFound) {
			return application.Application{}, ErrNotFound
		}
		return application.Application{}, ErrInternal
	}
	if !target.IsActive {
		return application.Application{}, ErrInvalidInput
	}

	app := application.Application{
		ID:          uuid.New(),
		StudentID:   student.ID,
		RoleID:      target.ID,
		Status:      application.StatusPending,
		MatchScore:  matching.Calculate(student, target).MatchPercentage,
		CoverLetter: strings.TrimSpace(coverLetter),
	}
	if err := u.apps.Create(ctx, app); err != nil {
		if errors.Is(err, application.ErrAlreadyApplied) {
			return application.Application{}, ErrConflict
		}
		return application.Application{}, ErrInternal
	}

	created, err := u.apps.GetByID(ctx, app.ID)
	if err != nil {
		return application.Application{}, ErrInternal
	}

	u.events.Publish(EventApplicationSubmitted, map[string]any{
		"application_id": created.ID.String(),
		"student_id":     created.StudentID.String(),
		"role_id":        created.RoleID.String(),
		"recruiter_id":   target.RecruiterID.String(),
		"match_score":    created.MatchScore,
	})
	return created, nil
}

func (u *Applications) ListMine(ctx context.Context, studentID uuid.UUID) ([]application.Application, error) {
	items, err := u.apps.ListByStudent(ctx, studentID)
	if err != nil {
		return nil, ErrInternal
	}
	return items, nil
}
