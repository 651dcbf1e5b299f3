package usecase

import (
	"context"
	"errors"
	"testing"

	"skillsync/internal/domain/matching"
	"skillsync/internal/domain/role"
	"skillsync/internal/domain/user"
	"skillsync/internal/repository/memory"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type failingRoles struct {
	*memory.RoleRepository
	listErr error
}

func (f failingRoles) ListActive(context.Context) ([]role.Role, error) { return nil, f.listErr }

type failingUsers struct {
	*memory.UserRepository
	listErr error
}

func (f failingUsers) ListByRole(context.Context, user.Role) ([]user.User, error) {
	return nil, f.listErr
}

func TestRankStudentsForRole(t *testing.T) {
	users := memory.NewUserRepository()
	roles := memory.NewRoleRepository()
	rec := seedRecruiter(t, users, "rita")

	ann := seedStudent(t, users, "ann", "React", "TypeScript", "Node.js")
	bob := seedStudent(t, users, "bob", "REACT", "typescript", "css", "REST APIs")
	seedStudent(t, users, "cid", "Python")
	r := seedRole(t, roles, rec.ID, "Frontend", true, "React", "TypeScript", "CSS", "REST APIs")

	uc := NewMatchingUsecase(users, roles, matching.NewRanker())
	got, err := uc.RankStudentsForRole(context.Background(), r.ID.String())
	require.NoError(t, err)
	require.Len(t, got, 2)

	assert.Equal(t, bob.ID, got[0].StudentID)
	assert.Equal(t, 100, got[0].MatchPercentage)
	assert.Empty(t, got[0].SkillsMissing)

	assert.Equal(t, ann.ID, got[1].StudentID)
	assert.Equal(t, 50, got[1].MatchPercentage)
	assert.Equal(t, []string{"React", "TypeScript"}, got[1].SkillsMatched)
	assert.Equal(t, []string{"CSS", "REST APIs"}, got[1].SkillsMissing)
}

func TestRankStudentsForRole_Errors(t *testing.T) {
	users := memory.NewUserRepository()
	roles := memory.NewRoleRepository()
	uc := NewMatchingUsecase(users, roles, matching.NewRanker())
	ctx := context.Background()

	_, err := uc.RankStudentsForRole(ctx, "not-a-uuid")
	assert.ErrorIs(t, err, ErrInvalidInput)

	_, err = uc.RankStudentsForRole(ctx, uuid.NewString())
	assert.ErrorIs(t, err, ErrNotFound)

	rec := seedRecruiter(t, users, "rita")
	r := seedRole(t, roles, rec.ID, "Any", true, "Go")
	broken := NewMatchingUsecase(failingUsers{UserRepository: users, listErr: errors.New("db down")}, roles, matching.NewRanker())
	_, err = broken.RankStudentsForRole(ctx, r.ID.String())
	assert.ErrorIs(t, err, ErrInternal)
}

func TestRankStudentsForRole_EmptyIsNotAnError(t *testing.T) {
	users := memory.NewUserRepository()
	roles := memory.NewRoleRepository()
	rec := seedRecruiter(t, users, "rita")
	seedStudent(t, users, "ann", "React")
	r := seedRole(t, roles, rec.ID, "No skills", true)

	got, err := NewMatchingUsecase(users, roles, matching.NewRanker()).RankStudentsForRole(context.Background(), r.ID.String())
	require.NoError(t, err)
	assert.NotNil(t, got)
	assert.Empty(t, got)
}

func TestRankRolesForStudent(t *testing.T) {
	users := memory.NewUserRepository()
	roles := memory.NewRoleRepository()
	rec := seedRecruiter(t, users, "rita")
	ann := seedStudent(t, users, "ann", "Python", "Django")

	backend := seedRole(t, roles, rec.ID, "Backend", true, "Python", "Django", "SQL")
	seedRole(t, roles, rec.ID, "Closed", false, "Python")
	data := seedRole(t, roles, rec.ID, "Data", true, "Python", "Pandas")
	seedRole(t, roles, rec.ID, "Frontend", true, "React")

	got, err := NewMatchingUsecase(users, roles, matching.NewRanker()).RankRolesForStudent(context.Background(), ann.ID.String())
	require.NoError(t, err)
	require.Len(t, got, 2)
	assert.Equal(t, backend.ID, got[0].RoleID)
	assert.Equal(t, 66, got[0].MatchPercentage)
	assert.Equal(t, data.ID, got[1].RoleID)
	assert.Equal(t, 50, got[1].MatchPercentage)
}

func TestRankRolesForStudent_Errors(t *testing.T) {
	users := memory.NewUserRepository()
	roles := memory.NewRoleRepository()
	uc := NewMatchingUsecase(users, roles, matching.NewRanker())
	ctx := context.Background()

	_, err := uc.RankRolesForStudent(ctx, "")
	assert.ErrorIs(t, err, ErrInvalidInput)

	_, err = uc.RankRolesForStudent(ctx, uuid.NewString())
	assert.ErrorIs(t, err, ErrNotFound)

	rec := seedRecruiter(t, users, "rita")
	_, err = uc.RankRolesForStudent(ctx, rec.ID.String())
	assert.ErrorIs(t, err, ErrNotFound)

	ann := seedStudent(t, users, "ann", "Go")
	broken := NewMatchingUsecase(users, failingRoles{RoleRepository: roles, listErr: errors.New("db down")}, matching.NewRanker())
	_, err = broken.RankRolesForStudent(ctx, ann.ID.String())
	assert.ErrorIs(t, err, ErrInternal)
}
