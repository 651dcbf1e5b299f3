package role

import (
	"context"
	"errors"
	"strings"
	"time"

	"github.com/google/uuid"
)

type Type string

const (
	TypeInternship Type = "internship"
	TypeFullTime   Type = "full_time"
	TypePartTime   Type = "part_time"
)

func ParseType(s string) (Type, bool) {
	switch Type(strings.ToLower(strings.TrimSpace(s))) {
	case TypeInternship:
		return TypeInternship, true
	case TypeFullTime:
		return TypeFullTime, true
	case TypePartTime:
		return TypePartTime, true
	default:
		return "", false
	}
}

var ErrNotFound = errors.New("role not found")

// Role is a job posting. RequiredSkills keeps the recruiter's order and
// compares case-insensitively against student skills.
type Role struct {
	ID                 uuid.UUID
	Title              string
	CompanyName        string
	RecruiterID        uuid.UUID
	Description        string
	Requirements       []string
	Type               Type
	Location           string
	SalaryRange        *string
	IsActive           bool
	RequiredSkills     []string
	MinExperienceYears int
	CreatedAt          time.Time
}

// Repository lists roles in store order: created_at, then id.
type Repository interface {
	Create(ctx context.Context, r Role) error
	GetByID(ctx context.Context, id uuid.UUID) (Role, error)
	ListActive(ctx context.Context) ([]Role, error)
	ListByRecruiter(ctx context.Context, recruiterID uuid.UUID) ([]Role, error)
}
