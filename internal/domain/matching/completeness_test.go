package matching

import (
	"testing"

	"skillsync/internal/domain/skill"
	"skillsync/internal/domain/user"

	"github.com/stretchr/testify/assert"
)

func TestEvaluateCompleteness_StudentMissingMajorAndSkills(t *testing.T) {
	u := user.User{Role: user.RoleStudent, University: "MIT"}
	got := EvaluateCompleteness(u)
	assert.False(t, got.IsProfileComplete)
	assert.Equal(t, []string{"major", "skills"}, got.MissingFields)
}

func TestEvaluateCompleteness_StudentFixedOrder(t *testing.T) {
	got := EvaluateCompleteness(user.User{Role: user.RoleStudent, University: "  "})
	assert.Equal(t, []string{"university", "major", "skills"}, got.MissingFields)
}

func TestEvaluateCompleteness_CompleteStudent(t *testing.T) {
	u := user.User{
		Role:       user.RoleStudent,
		IsVerified: true,
		University: "MIT",
		Major:      "Computer Science",
		Skills:     []skill.Skill{{Name: "Python", Level: 90}},
	}
	got := EvaluateCompleteness(u)
	assert.True(t, got.IsProfileComplete)
	assert.True(t, got.IsVerified)
	assert.Empty(t, got.MissingFields)
}

func TestEvaluateCompleteness_Industry(t *testing.T) {
	got := EvaluateCompleteness(user.User{Role: user.RoleIndustry, CompanyName: "TechFlow"})
	assert.Equal(t, []string{"industry_type"}, got.MissingFields)

	got = EvaluateCompleteness(user.User{Role: user.RoleIndustry})
	assert.Equal(t, []string{"company_name", "industry_type"}, got.MissingFields)
}

func TestEvaluateCompleteness_AdminAlwaysComplete(t *testing.T) {
	got := EvaluateCompleteness(user.User{Role: user.RoleAdmin})
	assert.True(t, got.IsProfileComplete)
	assert.NotNil(t, got.MissingFields)
}
