package user

import (
	"context"
	"errors"
	"strings"

	"skillsync/internal/domain/skill"
	"skillsync/internal/domain/user"

	"github.com/google/uuid"
)

var (
	ErrInvalidInput = errors.New("invalid input")
	ErrNotFound     = errors.New("user not found")
	ErrNotStudent   = errors.New("only students have skills")
	ErrSkillExists  = errors.New("skill already on profile")
	ErrSkillMissing = errors.New("skill not on profile")
	ErrInternal     = errors.New("internal error")
)

const (
	maxGPA            = 4.0
	maxExperienceYear = 80
)

type Service struct {
	users user.Repository
}

func NewService(users user.Repository) *Service {
	return &Service{users: users}
}

func (s *Service) Get(ctx context.Context, userID uuid.UUID) (user.User, error) {
	usr, err := s.users.GetByID(ctx, userID)
	if err != nil {
		if errors.Is(err, user.ErrNotFound) {
			return user.User{}, ErrNotFound
		}
		return user.User{}, ErrInternal
	}
	return sanitizeUser(usr), nil
}

// Update applies only the fields present in p.
func (s *Service) Update(ctx context.Context, userID uuid.UUID, p user.ProfileUpdate) (user.User, error) {
	if err := validateUpdate(&p); err != nil {
		return user.User{}, err
	}

	usr, err := s.users.GetByID(ctx, userID)
	if err != nil {
		if errors.Is(err, user.ErrNotFound) {
			return user.User{}, ErrNotFound
		}
		return user.User{}, ErrInternal
	}
	if p.Skills != nil && !usr.IsStudent() {
		return user.User{}, ErrNotStudent
	}
	if p.IsEmpty() {
		return sanitizeUser(usr), nil
	}

	usr.Apply(p)
	return s.save(ctx, usr)
}

func (s *Service) AddSkill(ctx context.Context, userID uuid.UUID, sk skill.Skill) (user.User, error) {
	sk, err := skill.Normalize(sk)
	if err != nil {
		return user.User{}, ErrInvalidInput
	}

	usr, err := s.student(ctx, userID)
	if err != nil {
		return user.User{}, err
	}
	if skill.IndexOf(usr.Skills, sk.Name) >= 0 {
		return user.User{}, ErrSkillExists
	}

	usr.Skills = append(usr.Skills, sk)
	return s.save(ctx, usr)
}

func (s *Service) RemoveSkill(ctx context.Context, userID uuid.UUID, name string) (user.User, error) {
	usr, err := s.student(ctx, userID)
	if err != nil {
		return user.User{}, err
	}
	i := skill.IndexOf(usr.Skills, name)
	if i < 0 {
		return user.User{}, ErrSkillMissing
	}

	usr.Skills = append(usr.Skills[:i:i], usr.Skills[i+1:]...)
	return s.save(ctx, usr)
}

func (s *Service) student(ctx context.Context, userID uuid.UUID) (user.User, error) {
	usr, err := s.users.GetByID(ctx, userID)
	if err != nil {
		if errors.Is(err, user.ErrNotFound) {
			return user.User{}, ErrNotFound
		}
		return user.User{}, ErrInternal
	}
	if !usr.IsStudent() {
		return user.User{}, ErrNotStudent
	}
	return usr, nil
}

func (s *Service) save(ctx context.Context, usr user.User) (user.User, error) {
	if err := s.users.Update(ctx, usr); err != nil {
		return user.User{}, ErrInternal
	}
	updated, err := s.users.GetByID(ctx, usr.ID)
	if err != nil {
		return user.User{}, ErrInternal
	}
	return sanitizeUser(updated), nil
}

func validateUpdate(p *user.ProfileUpdate) error {
	if p.FullName != nil && strings.TrimSpace(*p.FullName) == "" {
		return ErrInvalidInput
	}
	if p.GPA != nil && (*p.GPA < 0 || *p.GPA > maxGPA) {
		return ErrInvalidInput
	}
	if p.ExperienceYears != nil && (*p.ExperienceYears < 0 || *p.ExperienceYears > maxExperienceYear) {
		return ErrInvalidInput
	}
	if p.Skills != nil {
		seen := make(map[string]struct{}, len(*p.Skills))
		normalized := make([]skill.Skill, 0, len(*p.Skills))
		for _, sk := range *p.Skills {
			n, err := skill.Normalize(sk)
			if err != nil {
				return ErrInvalidInput
			}
			k := skill.Key(n.Name)
			if _, dup := seen[k]; dup {
				return ErrInvalidInput
			}
			seen[k] = struct{}{}
			normalized = append(normalized, n)
		}
		p.Skills = &normalized
	}
	return nil
}

func sanitizeUser(u user.User) user.User {
	u.PasswordHash = ""
	return u
}
