package usecase

import (
	"context"
	"errors"
	"net/url"
	"strings"
	"time"

	"skillsync/internal/domain/skill"
	"skillsync/internal/domain/user"

	"github.com/google/uuid"
)

type SkillUsecase interface {
	RequestVerification(ctx context.Context, userID uuid.UUID, skillName, evidenceURL string) (skill.VerificationRequest, error)
	ListVerifications(ctx context.Context, userID uuid.UUID) ([]skill.VerificationRequest, error)
}

type Skill struct {
	users         user.Repository
	verifications skill.VerificationRepository
	now           func() time.Time
}

func NewSkillUsecase(users user.Repository, verifications skill.VerificationRepository) *Skill {
	return &Skill{users: users, verifications: verifications, now: time.Now}
}

// RequestVerification records evidence for a skill. The request stays
// pending until someone reviews it.
func (u *Skill) RequestVerification(ctx context.Context, userID uuid.UUID, skillName, evidenceURL string) (skill.VerificationRequest, error) {
	skillName = strings.TrimSpace(skillName)
	evidenceURL = strings.TrimSpace(evidenceURL)
	if skillName == "" {
		return skill.VerificationRequest{}, ErrInvalidInput
	}
	if evidenceURL != "" {
		if parsed, err := url.ParseRequestURI(evidenceURL); err != nil || parsed.Host == "" {
			return skill.VerificationRequest{}, ErrInvalidInput
		}
	}

	if _, err := u.users.GetByID(ctx, userID); err != nil {
		if errors.Is(err, user.ErrNotFound) {
			return skill.VerificationRequest{}, ErrUnauthorized
		}
		return skill.VerificationRequest{}, ErrInternal
	}

	v := skill.VerificationRequest{
		ID:          uuid.New(),
		UserID:      userID,
		SkillName:   skillName,
		EvidenceURL: evidenceURL,
		Status:      skill.VerificationPending,
		CreatedAt:   u.now().UTC(),
	}
	if err := u.verifications.Create(ctx, v); err != nil {
		return skill.VerificationRequest{}, ErrInternal
	}
	return v, nil
}

func (u *Skill) ListVerifications(ctx context.Context, userID uuid.UUID) ([]skill.VerificationRequest, error) {
	items, err := u.verifications.ListByUser(ctx, userID)
	if err != nil {
		return nil, ErrInternal
	}
	return items, nil
}
