package auth

import (
	"context"
	"testing"

	"skillsync/internal/domain/user"
	"skillsync/internal/repository/memory"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func register(t *testing.T, s *Service, email string) user.User {
	t.Helper()
	u, err := s.Register(context.Background(), RegisterInput{
		Email:           email,
		Password:        "password123",
		ConfirmPassword: "password123",
		FullName:        "Ann Lee",
		Role:            user.RoleStudent,
	})
	require.NoError(t, err)
	return u
}

func TestRegister(t *testing.T) {
	s := NewService(memory.NewUserRepository())

	u := register(t, s, "  Ann@Example.com ")
	assert.Equal(t, "ann@example.com", u.Email)
	assert.Empty(t, u.PasswordHash)
	assert.True(t, u.IsActive)
	assert.Equal(t, user.RoleStudent, u.Role)
}

func TestRegister_Errors(t *testing.T) {
	s := NewService(memory.NewUserRepository())
	register(t, s, "ann@example.com")

	ctx := context.Background()
	base := RegisterInput{Email: "bob@example.com", Password: "password123", ConfirmPassword: "password123", FullName: "Bob", Role: user.RoleIndustry}

	in := base
	in.Email = "ANN@example.com"
	_, err := s.Register(ctx, in)
	assert.ErrorIs(t, err, ErrEmailAlreadyRegistered)

	in = base
	in.ConfirmPassword = "password124"
	_, err = s.Register(ctx, in)
	assert.ErrorIs(t, err, ErrPasswordMismatch)

	in = base
	in.Password, in.ConfirmPassword = "short", "short"
	_, err = s.Register(ctx, in)
	assert.ErrorIs(t, err, ErrInvalidInput)

	in = base
	in.Role = "pirate"
	_, err = s.Register(ctx, in)
	assert.ErrorIs(t, err, ErrInvalidInput)

	in = base
	in.Role = user.RoleAdmin
	_, err = s.Register(ctx, in)
	assert.ErrorIs(t, err, ErrInvalidInput)
}

func TestLogin(t *testing.T) {
	s := NewService(memory.NewUserRepository())
	created := register(t, s, "ann@example.com")
	ctx := context.Background()

	u, err := s.Login(ctx, LoginInput{Email: "ANN@example.com", Password: "password123"})
	require.NoError(t, err)
	assert.Equal(t, created.ID, u.ID)

	_, err = s.Login(ctx, LoginInput{Email: "ann@example.com", Password: "wrong-password"})
	assert.ErrorIs(t, err, ErrInvalidCredentials)

	_, err = s.Login(ctx, LoginInput{Email: "nobody@example.com", Password: "password123"})
	assert.ErrorIs(t, err, ErrInvalidCredentials)
}

func TestSetPassword(t *testing.T) {
	s := NewService(memory.NewUserRepository())
	u := register(t, s, "ann@example.com")
	ctx := context.Background()

	assert.ErrorIs(t, s.SetPassword(ctx, u.ID, "newpassword1", "other"), ErrPasswordMismatch)
	require.NoError(t, s.SetPassword(ctx, u.ID, "newpassword1", "newpassword1"))

	_, err := s.Login(ctx, LoginInput{Email: "ann@example.com", Password: "newpassword1"})
	assert.NoError(t, err)
}
