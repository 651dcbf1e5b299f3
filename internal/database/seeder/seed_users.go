package seeder

import (
	"context"

	"skillsync/internal/domain/skill"
	"skillsync/internal/domain/user"
)

const RecruiterEmail = "recruiter@techflow.com"

type StudentsSeeder struct{}

func (StudentsSeeder) Name() string { return "students" }

func (StudentsSeeder) Run(ctx context.Context, s Store) error {
	items := []struct {
		Email      string
		FullName   string
		University string
		Skills     []skill.Skill
	}{
		{
			Email: "alexandra.rivera@university.edu", FullName: "Alexandra Rivera", University: "Stanford University",
			Skills: []skill.Skill{
				{Name: "React", Level: 92, Verified: true},
				{Name: "TypeScript", Level: 88, Verified: true},
				{Name: "Node.js", Level: 85, Verified: true},
			},
		},
		{
			Email: "marcus.chen@tech.edu", FullName: "Marcus Chen", University: "MIT",
			Skills: []skill.Skill{
				{Name: "Python", Level: 94, Verified: true},
				{Name: "Django", Level: 90, Verified: true},
				{Name: "PostgreSQL", Level: 85, Verified: true},
			},
		},
		{
			Email: "samantha.park@university.edu", FullName: "Samantha Park", University: "UC Berkeley",
			Skills: []skill.Skill{
				{Name: "AWS", Level: 95, Verified: true},
				{Name: "Kubernetes", Level: 90, Verified: true},
				{Name: "Docker", Level: 92, Verified: true},
			},
		},
	}

	for _, it := range items {
		skills := make([]skill.Skill, 0, len(it.Skills))
		for _, sk := range it.Skills {
			n, err := skill.Normalize(sk)
			if err != nil {
				return err
			}
			skills = append(skills, n)
		}

		err := createUserIfMissing(ctx, s, user.User{
			Email:      it.Email,
			FullName:   it.FullName,
			Role:       user.RoleStudent,
			University: it.University,
			Skills:     skills,
		})
		if err != nil {
			return err
		}
	}
	return nil
}

type RecruiterSeeder struct{}

func (RecruiterSeeder) Name() string { return "recruiter" }

func (RecruiterSeeder) Run(ctx context.Context, s Store) error {
	return createUserIfMissing(ctx, s, user.User{
		Email:       RecruiterEmail,
		FullName:    "TechFlow Recruiter",
		Role:        user.RoleIndustry,
		CompanyName: "TechFlow Systems",
	})
}

func createUserIfMissing(ctx context.Context, s Store, u user.User) error {
	exists, err := s.Users.ExistsByEmail(ctx, u.Email)
	if err != nil {
		return err
	}
	if exists {
		return nil
	}

	hash, err := s.HashPassword(demoPassword)
	if err != nil {
		return err
	}
	u.ID = DemoUserID(u.Email)
	u.PasswordHash = hash
	u.IsActive = true
	return s.Users.Create(ctx, u)
}
