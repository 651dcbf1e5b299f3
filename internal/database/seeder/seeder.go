package seeder

import (
	"context"
	"strings"

	"skillsync/internal/domain/role"
	"skillsync/internal/domain/user"

	"github.com/google/uuid"
)

// Store is what seeders write through. Both the Postgres and the in-memory
// repositories satisfy it.
type Store struct {
	Users user.Repository
	Roles role.Repository

	HashPassword func(plain string) (string, error)
}

type Seeder interface {
	Name() string
	Run(ctx context.Context, s Store) error
}

// demoPassword is shared by every seeded account.
const demoPassword = "password123"

var demoNamespace = uuid.MustParse("6f1c2b9e-3d4a-5b6c-8d7e-9f0a1b2c3d4e")

// DemoUserID is the fixed id of the demo account with email, so demo ids
// are the same in every process and database.
func DemoUserID(email string) uuid.UUID {
	return uuid.NewSHA1(demoNamespace, []byte("user/"+strings.ToLower(email)))
}

// DemoRoleID is the fixed id of the demo role titled title.
func DemoRoleID(title string) uuid.UUID {
	return uuid.NewSHA1(demoNamespace, []byte("role/"+strings.ToLower(title)))
}

// Defaults returns the demo seeders in dependency order: roles reference
// the recruiter account.
func Defaults() []Seeder {
	return []Seeder{StudentsSeeder{}, RecruiterSeeder{}, RolesSeeder{}}
}
