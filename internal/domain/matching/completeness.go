package matching

import (
	"strings"

	"skillsync/internal/domain/user"
)

type Completeness struct {
	IsVerified        bool
	IsProfileComplete bool
	MissingFields     []string
}

func EvaluateCompleteness(u user.User) Completeness {
	missing := make([]string, 0, 3)
	blank := func(s string) bool { return strings.TrimSpace(s) == "" }

	switch u.Role {
	case user.RoleStudent:
		if blank(u.University) {
			missing = append(missing, "university")
		}
		if blank(u.Major) {
			missing = append(missing, "major")
		}
		if len(u.Skills) == 0 {
			missing = append(missing, "skills")
		}
	case user.RoleIndustry:
		if blank(u.CompanyName) {
			missing = append(missing, "company_name")
		}
		if blank(u.IndustryType) {
			missing = append(missing, "industry_type")
		}
	}

	return Completeness{
		IsVerified:        u.IsVerified,
		IsProfileComplete: len(missing) == 0,
		MissingFields:     missing,
	}
}
