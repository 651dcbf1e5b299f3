package dto

import (
	"skillsync/internal/domain/matching"

	"github.com/google/uuid"
)

type MatchResponse struct {
	ID                  string    `json:"id"`
	StudentID           uuid.UUID `json:"student_id"`
	RoleID              uuid.UUID `json:"role_id"`
	RoleTitle           string    `json:"role_title"`
	CompanyName         string    `json:"company_name"`
	StudentName         string    `json:"student_name"`
	Email               string    `json:"email"`
	MatchPercentage     int       `json:"match_percentage"`
	TopSkills           []string  `json:"top_skills"`
	ExperienceYears     int       `json:"experience_years"`
	Location            string    `json:"location"`
	SkillsMatched       []string  `json:"skills_matched"`
	SkillsMissing       []string  `json:"skills_missing"`
	ExperienceAlignment string    `json:"experience_alignment"`
}

func NewMatchResponses(in []matching.Result) []MatchResponse {
	out := make([]MatchResponse, 0, len(in))
	for _, r := range in {
		out = append(out, MatchResponse{
			ID:                  r.ID,
			StudentID:           r.StudentID,
			RoleID:              r.RoleID,
			RoleTitle:           r.RoleTitle,
			CompanyName:         r.CompanyName,
			StudentName:         r.StudentName,
			Email:               r.Email,
			MatchPercentage:     r.MatchPercentage,
			TopSkills:           nonNil(r.TopSkills),
			ExperienceYears:     r.ExperienceYears,
			Location:            r.Location,
			SkillsMatched:       nonNil(r.SkillsMatched),
			SkillsMissing:       nonNil(r.SkillsMissing),
			ExperienceAlignment: r.ExperienceAlignment,
		})
	}
	return out
}

func nonNil(in []string) []string {
	if in == nil {
		return []string{}
	}
	return in
}
