package matching

import (
	"fmt"
	"strings"

	"skillsync/internal/domain/role"
	"skillsync/internal/domain/skill"
	"skillsync/internal/domain/user"

	"github.com/google/uuid"
)

const topSkillsLimit = 3

// Result is derived on every call and never stored.
type Result struct {
	ID                  string
	StudentID           uuid.UUID
	RoleID              uuid.UUID
	RoleTitle           string
	CompanyName         string
	StudentName         string
	Email               string
	MatchPercentage     int
	TopSkills           []string
	ExperienceYears     int
	Location            string
	SkillsMatched       []string
	SkillsMissing       []string
	ExperienceAlignment string
}

// Calculate scores a student against a role's required skills.
//
// Matching is by lower-cased name. Matched and missing keep the role's
// order, duplicates included. A role with no required skills scores 0.
func Calculate(student user.User, r role.Role) Result {
	have := make(map[string]struct{}, len(student.Skills))
	for _, s := range student.Skills {
		have[skill.Key(s.Name)] = struct{}{}
	}

	matched := make([]string, 0, len(r.RequiredSkills))
	missing := make([]string, 0, len(r.RequiredSkills))
	for _, req := range r.RequiredSkills {
		if _, ok := have[skill.Key(req)]; ok {
			matched = append(matched, req)
		} else {
			missing = append(missing, req)
		}
	}

	return Result{
		ID:                  student.ID.String() + "-" + r.ID.String(),
		StudentID:           student.ID,
		RoleID:              r.ID,
		RoleTitle:           r.Title,
		CompanyName:         r.CompanyName,
		StudentName:         student.FullName,
		Email:               student.Email,
		MatchPercentage:     Percentage(len(matched), len(r.RequiredSkills)),
		TopSkills:           topSkills(student.Skills),
		ExperienceYears:     student.ExperienceYears,
		Location:            student.University,
		SkillsMatched:       matched,
		SkillsMissing:       missing,
		ExperienceAlignment: ExperienceAlignment(student.ExperienceYears, r.MinExperienceYears),
	}
}

// Percentage truncates toward zero. Integer math keeps 57 of 100 at 57.
func Percentage(matched, total int) int {
	if total <= 0 || matched <= 0 {
		return 0
	}
	if matched > total {
		matched = total
	}
	return matched * 100 / total
}

func ExperienceAlignment(actual, required int) string {
	diff := actual - required
	if diff >= 0 {
		return fmt.Sprintf("Exceeds requirement by %d year(s)", diff)
	}
	return fmt.Sprintf("%d year(s) below requirement", -diff)
}

func topSkills(skills []skill.Skill) []string {
	n := len(skills)
	if n > topSkillsLimit {
		n = topSkillsLimit
	}
	out := make([]string, 0, n)
	for _, s := range skills[:n] {
		out = append(out, strings.TrimSpace(s.Name))
	}
	return out
}
