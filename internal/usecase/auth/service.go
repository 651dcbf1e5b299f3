package auth

import (
	"context"
	"errors"
	"strings"

	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"

	"skillsync/internal/domain/user"
)

var (
	ErrEmailAlreadyRegistered = errors.New("email already registered")
	ErrInvalidCredentials     = errors.New("invalid credentials")
	ErrInvalidInput           = errors.New("invalid input")
	ErrPasswordMismatch       = errors.New("passwords do not match")
	ErrInternal               = errors.New("internal error")
)

const (
	minPasswordLength = 8
	// bcrypt ignores everything past 72 bytes
	maxPasswordLength = 72
)

type RegisterInput struct {
	Email           string
	Password        string
	ConfirmPassword string
	FullName        string
	Role            user.Role
}

type LoginInput struct {
	Email    string
	Password string
}

// Service owns credentials: password hashing, registration and login.
type Service struct {
	users user.Repository
}

func NewService(users user.Repository) *Service {
	return &Service{users: users}
}

func (s *Service) Register(ctx context.Context, in RegisterInput) (user.User, error) {
	email := NormalizeEmail(in.Email)
	if email == "" || strings.TrimSpace(in.FullName) == "" {
		return user.User{}, ErrInvalidInput
	}
	// Admin accounts are provisioned out of band, never self-registered.
	if in.Role != user.RoleStudent && in.Role != user.RoleIndustry {
		return user.User{}, ErrInvalidInput
	}
	if in.Password != in.ConfirmPassword {
		return user.User{}, ErrPasswordMismatch
	}
	if !isValidPassword(in.Password) {
		return user.User{}, ErrInvalidInput
	}

	exists, err := s.users.ExistsByEmail(ctx, email)
	if err != nil {
		return user.User{}, ErrInternal
	}
	if exists {
		return user.User{}, ErrEmailAlreadyRegistered
	}

	hash, err := HashPassword(in.Password)
	if err != nil {
		return user.User{}, ErrInternal
	}

	u := user.User{
		ID:           uuid.New(),
		Email:        email,
		PasswordHash: hash,
		FullName:     strings.TrimSpace(in.FullName),
		Role:         in.Role,
		IsActive:     true,
	}

	if err := s.users.Create(ctx, u); err != nil {
		if errors.Is(err, user.ErrEmailTaken) {
			return user.User{}, ErrEmailAlreadyRegistered
		}
		return user.User{}, ErrInternal
	}

	created, err := s.users.GetByID(ctx, u.ID)
	if err != nil {
		return user.User{}, ErrInternal
	}
	return Sanitize(created), nil
}

func (s *Service) Login(ctx context.Context, in LoginInput) (user.User, error) {
	email := NormalizeEmail(in.Email)
	if email == "" || in.Password == "" {
		return user.User{}, ErrInvalidCredentials
	}

	u, err := s.users.GetByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, user.ErrNotFound) {
			return user.User{}, ErrInvalidCredentials
		}
		return user.User{}, ErrInternal
	}

	// accounts created through Google sign-in have no password
	if u.PasswordHash == "" || !u.IsActive {
		return user.User{}, ErrInvalidCredentials
	}
	if err := bcrypt.CompareHashAndPassword([]byte(u.PasswordHash), []byte(in.Password)); err != nil {
		return user.User{}, ErrInvalidCredentials
	}

	return Sanitize(u), nil
}

// SetPassword replaces the stored hash for userID.
func (s *Service) SetPassword(ctx context.Context, userID uuid.UUID, password, confirm string) error {
	if password != confirm {
		return ErrPasswordMismatch
	}
	if !isValidPassword(password) {
		return ErrInvalidInput
	}

	u, err := s.users.GetByID(ctx, userID)
	if err != nil {
		if errors.Is(err, user.ErrNotFound) {
			return ErrInvalidInput
		}
		return ErrInternal
	}

	hash, err := HashPassword(password)
	if err != nil {
		return ErrInternal
	}
	u.PasswordHash = hash
	if err := s.users.Update(ctx, u); err != nil {
		return ErrInternal
	}
	return nil
}

func HashPassword(pw string) (string, error) {
	hash, err := bcrypt.GenerateFromPassword([]byte(pw), bcrypt.DefaultCost)
	if err != nil {
		return "", err
	}
	return string(hash), nil
}

func NormalizeEmail(email string) string {
	return strings.ToLower(strings.TrimSpace(email))
}

func Sanitize(u user.User) user.User {
	u.PasswordHash = ""
	return u
}

func isValidPassword(pw string) bool {
	n := len(strings.TrimSpace(pw))
	return n >= minPasswordLength && len(pw) <= maxPasswordLength
}
