package dto

import (
	"time"

	"skillsync/internal/domain/skill"
	"skillsync/internal/usecase"

	"github.com/google/uuid"
)

type GapAnalysisRequest struct {
	CurrentSkills []string `json:"current_skills"`
	TargetRole    string   `json:"target_role" validate:"required,max=255"`
	Major         string   `json:"major" validate:"max=255"`
}

type GapAnalysisResponse struct {
	MissingSkills []string `json:"missing_skills"`
	ActionPlan    []string `json:"action_plan"`
}

type VerifySkillRequest struct {
	SkillName   string `json:"skill_name" validate:"required,max=100"`
	EvidenceURL string `json:"evidence_url" validate:"omitempty,url"`
	ProofLink   string `json:"proof_link" validate:"omitempty,url"`
}

// Evidence prefers evidence_url and falls back to proof_link.
func (r VerifySkillRequest) Evidence() string {
	if r.EvidenceURL != "" {
		return r.EvidenceURL
	}
	return r.ProofLink
}

type VerificationResponse struct {
	ID          uuid.UUID `json:"id"`
	SkillName   string    `json:"skill_name"`
	EvidenceURL string    `json:"evidence_url"`
	Status      string    `json:"status"`
	CreatedAt   time.Time `json:"created_at"`
}

func NewVerificationResponse(v skill.VerificationRequest) VerificationResponse {
	return VerificationResponse{ID: v.ID, SkillName: v.SkillName, EvidenceURL: v.EvidenceURL, Status: v.Status, CreatedAt: v.CreatedAt}
}

type LearningPathRequest struct {
	Skills []string `json:"skills"`
	Goal   string   `json:"goal" validate:"required,max=500"`
}

type LearningPathResponse struct {
	Steps       []usecase.LearningStep `json:"steps"`
	RawResponse string                 `json:"raw_response"`
}

type SuggestOpportunitiesRequest struct {
	Course string   `json:"course" validate:"required,max=255"`
	Skills []string `json:"skills"`
}
