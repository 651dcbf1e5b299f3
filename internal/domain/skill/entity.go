package skill

import (
	"context"
	"errors"
	"strings"
	"time"

	"github.com/google/uuid"
)

const (
	DefaultCategory = "General"

	MinLevel = 1
	MaxLevel = 100
)

var (
	ErrInvalidSkill = errors.New("invalid skill")

	ErrVerificationNotFound = errors.New("verification request not found")
)

// Skill is owned by exactly one student and kept in insertion order.
// Names compare case-insensitively.
type Skill struct {
	Name     string
	Level    int
	Verified bool
	Category string
}

func Key(name string) string {
	return strings.ToLower(strings.TrimSpace(name))
}

// Normalize trims the name, defaults the category and validates the level.
func Normalize(s Skill) (Skill, error) {
	s.Name = strings.TrimSpace(s.Name)
	if s.Name == "" {
		return Skill{}, ErrInvalidSkill
	}
	if s.Level < MinLevel || s.Level > MaxLevel {
		return Skill{}, ErrInvalidSkill
	}
	s.Category = strings.TrimSpace(s.Category)
	if s.Category == "" {
		s.Category = DefaultCategory
	}
	return s, nil
}

// IndexOf returns the position of name in skills, or -1.
func IndexOf(skills []Skill, name string) int {
	k := Key(name)
	for i, s := range skills {
		if Key(s.Name) == k {
			return i
		}
	}
	return -1
}

const VerificationPending = "pending"

type VerificationRequest struct {
	ID          uuid.UUID
	UserID      uuid.UUID
	SkillName   string
	EvidenceURL string
	Status      string
	CreatedAt   time.Time
}

type VerificationRepository interface {
	Create(ctx context.Context, v VerificationRequest) error
	ListByUser(ctx context.Context, userID uuid.UUID) ([]VerificationRequest, error)
}
