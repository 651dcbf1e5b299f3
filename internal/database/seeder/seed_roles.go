package seeder

import (
	"context"
	"fmt"
	"strings"

	"skillsync/internal/domain/role"
)

// RolesSeeder depends on RecruiterSeeder having run.
type RolesSeeder struct{}

func (RolesSeeder) Name() string { return "roles" }

func (RolesSeeder) Run(ctx context.Context, s Store) error {
	recruiter, err := s.Users.GetByEmail(ctx, RecruiterEmail)
	if err != nil {
		return fmt.Errorf("lookup recruiter: %w", err)
	}

	existing, err := s.Roles.ListByRecruiter(ctx, recruiter.ID)
	if err != nil {
		return err
	}
	have := map[string]struct{}{}
	for _, r := range existing {
		have[strings.ToLower(r.Title)] = struct{}{}
	}

	items := []role.Role{
		{
			Title:              "Senior Frontend Engineer",
			Description:        "Lead frontend development...",
			RequiredSkills:     []string{"React", "TypeScript", "CSS", "REST APIs"},
			Type:               role.TypeFullTime,
			Location:           "Remote",
			MinExperienceYears: 5,
		},
		{
			Title:              "Backend Developer",
			Description:        "Build scalable APIs...",
			RequiredSkills:     []string{"Python", "Django", "SQL"},
			Type:               role.TypeFullTime,
			Location:           "Hybrid",
			MinExperienceYears: 3,
		},
	}

	for _, it := range items {
		if _, ok := have[strings.ToLower(it.Title)]; ok {
			continue
		}
		it.ID = DemoRoleID(it.Title)
		it.CompanyName = recruiter.CompanyName
		it.RecruiterID = recruiter.ID
		it.IsActive = true
		if err := s.Roles.Create(ctx, it); err != nil {
			return err
		}
	}
	return nil
}
