package user

import (
	"strings"
	"time"

	"skillsync/internal/domain/skill"

	"github.com/google/uuid"
)

type Role string

const (
	RoleStudent  Role = "student"
	RoleIndustry Role = "industry"
	RoleAdmin    Role = "admin"
)

func ParseRole(s string) (Role, bool) {
	switch Role(strings.ToLower(strings.TrimSpace(s))) {
	case RoleStudent:
		return RoleStudent, true
	case RoleIndustry:
		return RoleIndustry, true
	case RoleAdmin:
		return RoleAdmin, true
	default:
		return "", false
	}
}

type User struct {
	ID           uuid.UUID
	Email        string
	PasswordHash string
	FullName     string
	Role         Role
	IsActive     bool
	IsVerified   bool
	Avatar       string

	// student
	University      string
	Major           string
	GPA             *float64
	GraduationYear  *int
	ExperienceYears int
	Skills          []skill.Skill

	// industry
	CompanyName  string
	CompanyURL   string
	IndustryType string

	CreatedAt time.Time
	UpdatedAt time.Time
}

func (u User) IsStudent() bool  { return u.Role == RoleStudent }
func (u User) IsIndustry() bool { return u.Role == RoleIndustry }

// ProfileUpdate is a partial update. Nil fields are left untouched.
type ProfileUpdate struct {
	FullName        *string
	Avatar          *string
	University      *string
	Major           *string
	GPA             *float64
	GraduationYear  *int
	ExperienceYears *int
	Skills          *[]skill.Skill
	CompanyName     *string
	CompanyURL      *string
	IndustryType    *string
}

func (p ProfileUpdate) IsEmpty() bool {
	return p.FullName == nil && p.Avatar == nil && p.University == nil && p.Major == nil &&
		p.GPA == nil && p.GraduationYear == nil && p.ExperienceYears == nil && p.Skills == nil &&
		p.CompanyName == nil && p.CompanyURL == nil && p.IndustryType == nil
}

// Apply copies every populated field of p onto u.
func (u *User) Apply(p ProfileUpdate) {
	setString := func(dst *string, src *string) {
		if src != nil {
			*dst = strings.TrimSpace(*src)
		}
	}

	setString(&u.FullName, p.FullName)
	setString(&u.Avatar, p.Avatar)
	setString(&u.University, p.University)
	setString(&u.Major, p.Major)
	setString(&u.CompanyName, p.CompanyName)
	setString(&u.CompanyURL, p.CompanyURL)
	setString(&u.IndustryType, p.IndustryType)

	if p.GPA != nil {
		gpa := *p.GPA
		u.GPA = &gpa
	}
	if p.GraduationYear != nil {
		y := *p.GraduationYear
		u.GraduationYear = &y
	}
	if p.ExperienceYears != nil {
		u.ExperienceYears = *p.ExperienceYears
	}
	if p.Skills != nil {
		u.Skills = append([]skill.Skill(nil), (*p.Skills)...)
	}
}
