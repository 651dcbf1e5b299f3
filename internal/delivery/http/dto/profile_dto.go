package dto

import (
	"time"

	"skillsync/internal/domain/matching"
	"skillsync/internal/domain/skill"
	"skillsync/internal/domain/user"

	"github.com/google/uuid"
)

type SkillDTO struct {
	Name     string `json:"name" validate:"required,max=100"`
	Level    int    `json:"level" validate:"gte=1,lte=100"`
	Verified bool   `json:"verified"`
	Category string `json:"category" validate:"max=100"`
}

func (s SkillDTO) Domain() skill.Skill {
	return skill.Skill{Name: s.Name, Level: s.Level, Verified: s.Verified, Category: s.Category}
}

func SkillsFromDomain(in []skill.Skill) []SkillDTO {
	out := make([]SkillDTO, 0, len(in))
	for _, s := range in {
		out = append(out, SkillDTO{Name: s.Name, Level: s.Level, Verified: s.Verified, Category: s.Category})
	}
	return out
}

type UserResponse struct {
	ID         uuid.UUID `json:"id"`
	Email      string    `json:"email"`
	FullName   string    `json:"full_name"`
	Role       string    `json:"role"`
	IsActive   bool      `json:"is_active"`
	IsVerified bool      `json:"is_verified"`
	Avatar     string    `json:"avatar,omitempty"`

	University      string     `json:"university,omitempty"`
	Major           string     `json:"major,omitempty"`
	GPA             *float64   `json:"gpa,omitempty"`
	GraduationYear  *int       `json:"graduation_year,omitempty"`
	ExperienceYears int        `json:"experience_years"`
	Skills          []SkillDTO `json:"skills"`

	CompanyName  string `json:"company_name,omitempty"`
	CompanyURL   string `json:"company_url,omitempty"`
	IndustryType string `json:"industry_type,omitempty"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

func NewUserResponse(u user.User) UserResponse {
	return UserResponse{
		ID:              u.ID,
		Email:           u.Email,
		FullName:        u.FullName,
		Role:            string(u.Role),
		IsActive:        u.IsActive,
		IsVerified:      u.IsVerified,
		Avatar:          u.Avatar,
		University:      u.University,
		Major:           u.Major,
		GPA:             u.GPA,
		GraduationYear:  u.GraduationYear,
		ExperienceYears: u.ExperienceYears,
		Skills:          SkillsFromDomain(u.Skills),
		CompanyName:     u.CompanyName,
		CompanyURL:      u.CompanyURL,
		IndustryType:    u.IndustryType,
		CreatedAt:       u.CreatedAt,
		UpdatedAt:       u.UpdatedAt,
	}
}

func NewUserResponses(in []user.User) []UserResponse {
	out := make([]UserResponse, 0, len(in))
	for _, u := range in {
		out = append(out, NewUserResponse(u))
	}
	return out
}

// UpdateProfileRequest is a partial update. Absent fields stay untouched.
type UpdateProfileRequest struct {
	FullName        *string     `json:"full_name" validate:"omitempty,max=255"`
	Avatar          *string     `json:"avatar" validate:"omitempty,max=2048"`
	University      *string     `json:"university" validate:"omitempty,max=255"`
	Major           *string     `json:"major" validate:"omitempty,max=255"`
	GPA             *float64    `json:"gpa" validate:"omitempty,gte=0,lte=4"`
	GraduationYear  *int        `json:"graduation_year" validate:"omitempty,gte=1950,lte=2100"`
	ExperienceYears *int        `json:"experience_years" validate:"omitempty,gte=0,lte=80"`
	Skills          *[]SkillDTO `json:"skills" validate:"omitempty,dive"`
	CompanyName     *string     `json:"company_name" validate:"omitempty,max=255"`
	CompanyURL      *string     `json:"company_url" validate:"omitempty,max=2048"`
	IndustryType    *string     `json:"industry_type" validate:"omitempty,max=255"`
}

func (r UpdateProfileRequest) Domain() user.ProfileUpdate {
	p := user.ProfileUpdate{
		FullName:        r.FullName,
		Avatar:          r.Avatar,
		University:      r.University,
		Major:           r.Major,
		GPA:             r.GPA,
		GraduationYear:  r.GraduationYear,
		ExperienceYears: r.ExperienceYears,
		CompanyName:     r.CompanyName,
		CompanyURL:      r.CompanyURL,
		IndustryType:    r.IndustryType,
	}
	if r.Skills != nil {
		skills := make([]skill.Skill, 0, len(*r.Skills))
		for _, s := range *r.Skills {
			skills = append(skills, s.Domain())
		}
		p.Skills = &skills
	}
	return p
}

type CompletenessResponse struct {
	IsVerified        bool     `json:"is_verified"`
	IsProfileComplete bool     `json:"is_profile_complete"`
	MissingFields     []string `json:"missing_fields"`
}

func NewCompletenessResponse(c matching.Completeness) CompletenessResponse {
	missing := c.MissingFields
	if missing == nil {
		missing = []string{}
	}
	return CompletenessResponse{IsVerified: c.IsVerified, IsProfileComplete: c.IsProfileComplete, MissingFields: missing}
}
