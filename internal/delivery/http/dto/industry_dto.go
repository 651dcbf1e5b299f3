package dto

import (
	"time"

	"skillsync/internal/domain/application"
	"skillsync/internal/domain/role"

	"github.com/google/uuid"
)

type CreateRoleRequest struct {
	Title              string   `json:"title" validate:"required,max=255"`
	CompanyName        string   `json:"company_name" validate:"max=255"`
	Description        string   `json:"description"`
	Requirements       []string `json:"requirements"`
	Type               string   `json:"type" validate:"required,oneof=internship full_time part_time"`
	Location           string   `json:"location" validate:"max=255"`
	SalaryRange        *string  `json:"salary_range"`
	RequiredSkills     []string `json:"required_skills" validate:"dive,max=100"`
	MinExperienceYears int      `json:"min_experience_years" validate:"gte=0,lte=50"`
}

type RoleResponse struct {
	ID                 uuid.UUID `json:"id"`
	Title              string    `json:"title"`
	CompanyName        string    `json:"company_name"`
	RecruiterID        uuid.UUID `json:"recruiter_id"`
	Description        string    `json:"description"`
	Requirements       []string  `json:"requirements"`
	Type               string    `json:"type"`
	Location           string    `json:"location"`
	SalaryRange        *string   `json:"salary_range"`
	IsActive           bool      `json:"is_active"`
	RequiredSkills     []string  `json:"required_skills"`
	MinExperienceYears int       `json:"min_experience_years"`
	CreatedAt          time.Time `json:"created_at"`
}

func NewRoleResponse(r role.Role) RoleResponse {
	return RoleResponse{
		ID:                 r.ID,
		Title:              r.Title,
		CompanyName:        r.CompanyName,
		RecruiterID:        r.RecruiterID,
		Description:        r.Description,
		Requirements:       nonNil(r.Requirements),
		Type:               string(r.Type),
		Location:           r.Location,
		SalaryRange:        r.SalaryRange,
		IsActive:           r.IsActive,
		RequiredSkills:     nonNil(r.RequiredSkills),
		MinExperienceYears: r.MinExperienceYears,
		CreatedAt:          r.CreatedAt,
	}
}

func NewRoleResponses(in []role.Role) []RoleResponse {
	out := make([]RoleResponse, 0, len(in))
	for _, r := range in {
		out = append(out, NewRoleResponse(r))
	}
	return out
}

type ApplyRequest struct {
	CoverLetter string `json:"cover_letter" validate:"max=10000"`
}

type UpdateStatusRequest struct {
	Status string `json:"status" validate:"required,oneof=pending reviewing interview offered rejected"`
}

type ApplicationResponse struct {
	ID          uuid.UUID `json:"id"`
	StudentID   uuid.UUID `json:"student_id"`
	RoleID      uuid.UUID `json:"role_id"`
	Status      string    `json:"status"`
	AppliedAt   time.Time `json:"applied_at"`
	MatchScore  int       `json:"match_score"`
	CoverLetter string    `json:"cover_letter,omitempty"`
}

func NewApplicationResponse(a application.Application) ApplicationResponse {
	return ApplicationResponse{
		ID:          a.ID,
		StudentID:   a.StudentID,
		RoleID:      a.RoleID,
		Status:      string(a.Status),
		AppliedAt:   a.AppliedAt,
		MatchScore:  a.MatchScore,
		CoverLetter: a.CoverLetter,
	}
}

func NewApplicationResponses(in []application.Application) []ApplicationResponse {
	out := make([]ApplicationResponse, 0, len(in))
	for _, a := range in {
		out = append(out, NewApplicationResponse(a))
	}
	return out
}
