package application

import (
	"context"
	"errors"
	"strings"
	"time"

	"github.com/google/uuid"
)

type Status string

const (
	StatusPending   Status = "pending"
	StatusReviewing Status = "reviewing"
	StatusInterview Status = "interview"
	StatusOffered   Status = "offered"
	StatusRejected  Status = "rejected"
)

var statuses = []Status{StatusPending, StatusReviewing, StatusInterview, StatusOffered, StatusRejected}

func ParseStatus(s string) (Status, bool) {
	s = strings.ToLower(strings.TrimSpace(s))
	for _, st := range statuses {
		if string(st) == s {
			return st, true
		}
	}
	return "", false
}

var (
	ErrNotFound       = errors.New("application not found")
	ErrAlreadyApplied = errors.New("already applied to role")
)

type Application struct {
	ID          uuid.UUID
	StudentID   uuid.UUID
	RoleID      uuid.UUID
	Status      Status
	AppliedAt   time.Time
	MatchScore  int
	CoverLetter string
}

type Repository interface {
	Create(ctx context.Context, a Application) error
	GetByID(ctx context.Context, id uuid.UUID) (Application, error)
	ListByRole(ctx context.Context, roleID uuid.UUID) ([]Application, error)
	ListByStudent(ctx context.Context, studentID uuid.UUID) ([]Application, error)
	UpdateStatus(ctx context.Context, id uuid.UUID, status Status) (Application, error)
}
