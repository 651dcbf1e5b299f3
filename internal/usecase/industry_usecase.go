package usecase

import (
	"context"
	"errors"
	"strings"

	"skillsync/internal/domain/application"
	"skillsync/internal/domain/role"
	"skillsync/internal/domain/user"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

const (
	EventApplicationSubmitted     = "application_submitted"
	EventApplicationStatusChanged = "application_status_changed"
	EventOpportunitiesUpdated     = "opportunities_updated"
)

type CreateRoleInput struct {
	Title              string
	CompanyName        string
	Description        string
	Requirements       []string
	Type               string
	Location           string
	SalaryRange        *string
	RequiredSkills     []string
	MinExperienceYears int
}

type IndustryUsecase interface {
	CreateRole(ctx context.Context, recruiterID uuid.UUID, in CreateRoleInput) (role.Role, error)
	ListRoles(ctx context.Context) ([]role.Role, error)
	ListRoleApplications(ctx context.Context, recruiterID uuid.UUID, roleID string) ([]application.Application, error)
	UpdateApplicationStatus(ctx context.Context, recruiterID uuid.UUID, appID string, status string) (application.Application, error)
}

type Industry struct {
	users  user.Repository
	roles  role.Repository
	apps   application.Repository
	events EventPublisher
	logger *zap.Logger
}

func NewIndustryUsecase(users user.Repository, roles role.Repository, apps application.Repository, events EventPublisher, logger *zap.Logger) *Industry {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Industry{users: users, roles: roles, apps: apps, events: publisherOrNop(events), logger: logger.Named("industry")}
}

func (u *Industry) CreateRole(ctx context.Context, recruiterID uuid.UUID, in CreateRoleInput) (role.Role, error) {
	recruiter, err := u.recruiter(ctx, recruiterID)
	if err != nil {
		return role.Role{}, err
	}

	title := strings.TrimSpace(in.Title)
	kind, ok := role.ParseType(in.Type)
	if title == "" || !ok || in.MinExperienceYears < 0 {
		return role.Role{}, ErrInvalidInput
	}

	company := strings.TrimSpace(in.CompanyName)
	if company == "" {
		company = recruiter.CompanyName
	}
	if company == "" {
		return role.Role{}, ErrInvalidInput
	}

	r := role.Role{
		ID:                 uuid.New(),
		Title:              title,
		CompanyName:        company,
		RecruiterID:        recruiter.ID,
		Description:        strings.TrimSpace(in.Description),
		Requirements:       cleanList(in.Requirements),
		Type:               kind,
		Location:           strings.TrimSpace(in.Location),
		SalaryRange:        in.SalaryRange,
		IsActive:           true,
		RequiredSkills:     cleanList(in.RequiredSkills),
		MinExperienceYears: in.MinExperienceYears,
	}
	if err := u.roles.Create(ctx, r); err != nil {
		return role.Role{}, ErrInternal
	}

	created, err := u.roles.GetByID(ctx, r.ID)
	if err != nil {
		return role.Role{}, ErrInternal
	}
	u.logger.Info("role created", zap.String("role_id", created.ID.String()), zap.String("recruiter_id", recruiter.ID.String()))
	return created, nil
}

func (u *Industry) ListRoles(ctx context.Context) ([]role.Role, error) {
	items, err := u.roles.ListActive(ctx)
	if err != nil {
		return nil, ErrInternal
	}
	return items, nil
}

func (u *Industry) ListRoleApplications(ctx context.Context, recruiterID uuid.UUID, roleID string) ([]application.Application, error) {
	target, err := u.ownedRole(ctx, recruiterID, roleID)
	if err != nil {
		return nil, err
	}
	items, err := u.apps.ListByRole(ctx, target.ID)
	if err != nil {
		return nil, ErrInternal
	}
	return items, nil
}

func (u *Industry) UpdateApplicationStatus(ctx context.Context, recruiterID uuid.UUID, appID string, status string) (application.Application, error) {
	id, err := parseID(appID)
	if err != nil {
		return application.Application{}, err
	}
	st, ok := application.ParseStatus(status)
	if !ok {
		return application.Application{}, ErrInvalidInput
	}

	app, err := u.apps.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, application.ErrNotFound) {
			return application.Application{}, ErrNotFound
		}
		return application.Application{}, ErrInternal
	}
	if _, err := u.ownedRole(ctx, recruiterID, app.RoleID.String()); err != nil {
		return application.Application{}, err
	}

	updated, err := u.apps.UpdateStatus(ctx, id, st)
	if err != nil {
		if errors.Is(err, application.ErrNotFound) {
			return application.Application{}, ErrNotFound
		}
		return application.Application{}, ErrInternal
	}

	u.events.Publish(EventApplicationStatusChanged, map[string]any{
		"application_id": updated.ID.String(),
		"student_id":     updated.StudentID.String(),
		"role_id":        updated.RoleID.String(),
		"status":         string(updated.Status),
	})
	return updated, nil
}

func (u *Industry) recruiter(ctx context.Context, id uuid.UUID) (user.User, error) {
	usr, err := u.users.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, user.ErrNotFound) {
			return user.User{}, ErrUnauthorized
		}
		return user.User{}, ErrInternal
	}
	if !usr.IsIndustry() && usr.Role != user.RoleAdmin {
		return user.User{}, ErrForbidden
	}
	return usr, nil
}

// ownedRole resolves roleID and checks the caller posted it. Admins may
// act on any role.
func (u *Industry) ownedRole(ctx context.Context, recruiterID uuid.UUID, roleID string) (role.Role, error) {
	caller, err := u.recruiter(ctx, recruiterID)
	if err != nil {
		return role.Role{}, err
	}
	id, err := parseID(roleID)
	if err != nil {
		return role.Role{}, err
	}
	r, err := u.roles.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, role.ErrNotFound) {
			return role.Role{}, ErrNotFound
		}
		return role.Role{}, ErrInternal
	}
	if caller.Role != user.RoleAdmin && r.RecruiterID != caller.ID {
		return role.Role{}, ErrForbidden
	}
	return r, nil
}

func cleanList(in []string) []string {
	out := make([]string, 0, len(in))
	for _, s := range in {
		if s = strings.TrimSpace(s); s != "" {
			out = append(out, s)
		}
	}
	return out
}
