package memory

import (
	"context"
	"testing"

	"skillsync/internal/domain/application"
	"skillsync/internal/domain/opportunity"
	"skillsync/internal/domain/role"
	"skillsync/internal/domain/skill"
	"skillsync/internal/domain/user"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestUserRepository_DuplicateEmailCaseInsensitive(t *testing.T) {
	ctx := context.Background()
	repo := NewUserRepository()

	require.NoError(t, repo.Create(ctx, user.User{ID: uuid.New(), Email: "a@example.com", Role: user.RoleStudent}))
	err := repo.Create(ctx, user.User{ID: uuid.New(), Email: "A@Example.com", Role: user.RoleStudent})
	assert.ErrorIs(t, err, user.ErrEmailTaken)

	ok, err := repo.ExistsByEmail(ctx, "A@EXAMPLE.COM")
	require.NoError(t, err)
	assert.True(t, ok)
}

func TestUserRepository_ListByRoleKeepsInsertionOrder(t *testing.T) {
	ctx := context.Background()
	repo := NewUserRepository()

	ids := []uuid.UUID{uuid.New(), uuid.New(), uuid.New()}
	require.NoError(t, repo.Create(ctx, user.User{ID: ids[0], Email: "s1@x.io", Role: user.RoleStudent, FullName: "Alexandra Rivera"}))
	require.NoError(t, repo.Create(ctx, user.User{ID: uuid.New(), Email: "r@x.io", Role: user.RoleIndustry}))
	require.NoError(t, repo.Create(ctx, user.User{ID: ids[1], Email: "s2@x.io", Role: user.RoleStudent, FullName: "Marcus Chen"}))
	require.NoError(t, repo.Create(ctx, user.User{ID: ids[2], Email: "s3@x.io", Role: user.RoleStudent, FullName: "Samantha Park"}))

	students, err := repo.ListByRole(ctx, user.RoleStudent)
	require.NoError(t, err)
	require.Len(t, students, 3)
	for i := range ids {
		assert.Equal(t, ids[i], students[i].ID)
	}

	found, err := repo.SearchByRole(ctx, user.RoleStudent, "CHEN")
	require.NoError(t, err)
	require.Len(t, found, 1)
	assert.Equal(t, ids[1], found[0].ID)
}

func TestUserRepository_ReturnsCopies(t *testing.T) {
	ctx := context.Background()
	repo := NewUserRepository()
	id := uuid.New()
	require.NoError(t, repo.Create(ctx, user.User{ID: id, Email: "s@x.io", Skills: []skill.Skill{{Name: "Go", Level: 50}}}))

	got, err := repo.GetByID(ctx, id)
	require.NoError(t, err)
	got.Skills[0].Name = "Rust"

	again, err := repo.GetByID(ctx, id)
	require.NoError(t, err)
	assert.Equal(t, "Go", again.Skills[0].Name)
}

func TestUserRepository_UpdateUnknown(t *testing.T) {
	err := NewUserRepository().Update(context.Background(), user.User{ID: uuid.New()})
	assert.ErrorIs(t, err, user.ErrNotFound)
}

func TestRoleRepository_ListActive(t *testing.T) {
	ctx := context.Background()
	repo := NewRoleRepository()
	recruiter := uuid.New()

	active := role.Role{ID: uuid.New(), Title: "Backend", RecruiterID: recruiter, IsActive: true}
	closed := role.Role{ID: uuid.New(), Title: "Closed", RecruiterID: recruiter, IsActive: false}
	require.NoError(t, repo.Create(ctx, active))
	require.NoError(t, repo.Create(ctx, closed))

	list, err := repo.ListActive(ctx)
	require.NoError(t, err)
	require.Len(t, list, 1)
	assert.Equal(t, active.ID, list[0].ID)

	mine, err := repo.ListByRecruiter(ctx, recruiter)
	require.NoError(t, err)
	assert.Len(t, mine, 2)

	_, err = repo.GetByID(ctx, uuid.New())
	assert.ErrorIs(t, err, role.ErrNotFound)
}

func TestApplicationRepository_DuplicateAndStatus(t *testing.T) {
	ctx := context.Background()
	repo := NewApplicationRepository()
	a := application.Application{ID: uuid.New(), StudentID: uuid.New(), RoleID: uuid.New(), Status: application.StatusPending}

	require.NoError(t, repo.Create(ctx, a))
	dup := a
	dup.ID = uuid.New()
	assert.ErrorIs(t, repo.Create(ctx, dup), application.ErrAlreadyApplied)

	updated, err := repo.UpdateStatus(ctx, a.ID, application.StatusInterview)
	require.NoError(t, err)
	assert.Equal(t, application.StatusInterview, updated.Status)

	_, err = repo.UpdateStatus(ctx, uuid.New(), application.StatusOffered)
	assert.ErrorIs(t, err, application.ErrNotFound)
}

func TestOpportunityRepository_UpsertDedupesByKindAndURL(t *testing.T) {
	ctx := context.Background()
	repo := NewOpportunityRepository()

	first, err := repo.Upsert(ctx, []opportunity.Opportunity{
		{Kind: opportunity.KindInternship, Title: "A", URL: "https://jobs.example.com/1", IsActive: true},
		{Kind: opportunity.KindScholarship, Title: "B", URL: "https://jobs.example.com/1", IsActive: true},
	})
	require.NoError(t, err)

	second, err := repo.Upsert(ctx, []opportunity.Opportunity{
		{Kind: opportunity.KindInternship, Title: "A2", URL: "https://jobs.example.com/1", IsActive: true},
	})
	require.NoError(t, err)
	assert.Equal(t, first[0].ID, second[0].ID)

	internships, err := repo.ListByKind(ctx, opportunity.KindInternship)
	require.NoError(t, err)
	require.Len(t, internships, 1)
	assert.Equal(t, "A2", internships[0].Title)

	scholarships, err := repo.ListByKind(ctx, opportunity.KindScholarship)
	require.NoError(t, err)
	assert.Len(t, scholarships, 1)
}
