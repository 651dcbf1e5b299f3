package usecase

import (
	"context"
	"crypto/rand"
	"crypto/subtle"
	"encoding/hex"
	"errors"
	"fmt"
	"math/big"
	"strings"
	"time"

	"skillsync/internal/domain/user"
	"skillsync/internal/infrastructure/email"
	"skillsync/internal/infrastructure/google"
	"skillsync/internal/pkg/jwt"
	ucauth "skillsync/internal/usecase/auth"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

var (
	ErrRoleRequired        = errors.New("ROLE_REQUIRED")
	ErrInvalidGoogleToken  = errors.New("invalid google token")
	ErrGoogleNotConfigured = errors.New("google sign-in not configured")
	ErrInvalidOTP          = errors.New("invalid or expired verification code")
	ErrInvalidResetToken   = errors.New("invalid or expired reset token")
)

const (
	otpTTL   = 10 * time.Minute
	resetTTL = 30 * time.Minute

	otpKeyPrefix   = "auth:otp:"
	otpFailPrefix  = "auth:otp-fail:"
	otpMaxAttempts = 5
	resetKeyPrefix = "auth:reset:"
)

type Session struct {
	User         user.User
	AccessToken  string
	RefreshToken string
}

type AuthUsecase interface {
	Register(ctx context.Context, in ucauth.RegisterInput) (Session, error)
	Login(ctx context.Context, in ucauth.LoginInput) (Session, error)
	Refresh(ctx context.Context, refreshToken string) (string, string, error)
	GoogleSignIn(ctx context.Context, idToken string, role string) (Session, error)
	ForgotPassword(ctx context.Context, emailAddr string) error
	ResetPassword(ctx context.Context, token, password, confirm string) error
	VerifyEmail(ctx context.Context, emailAddr, code string) error
	SendOTP(ctx context.Context, emailAddr string) error
}

type AuthDeps struct {
	Users       user.Repository
	JWT         jwt.Service
	Tokens      TokenStore
	Mailer      email.Sender
	Google      google.Verifier
	FrontendURL string
	Logger      *zap.Logger
}

type Auth struct {
	authSvc     *ucauth.Service
	users       user.Repository
	jwt         jwt.Service
	tokens      TokenStore
	mailer      email.Sender
	google      google.Verifier
	frontendURL string
	logger      *zap.Logger

	newOTP   func() (string, error)
	newToken func() (string, error)
}

func NewAuthUsecase(d AuthDeps) *Auth {
	logger := d.Logger
	if logger == nil {
		logger = zap.NewNop()
	}
	mailer := d.Mailer
	if mailer == nil {
		mailer = email.LogSender{Logger: logger}
	}
	return &Auth{
		authSvc:     ucauth.NewService(d.Users),
		users:       d.Users,
		jwt:         d.JWT,
		tokens:      d.Tokens,
		mailer:      mailer,
		google:      d.Google,
		frontendURL: d.FrontendURL,
		logger:      logger.Named("auth"),
		newOTP:      randomOTP,
		newToken:    randomToken,
	}
}

func (u *Auth) Register(ctx context.Context, in ucauth.RegisterInput) (Session, error) {
	usr, err := u.authSvc.Register(ctx, in)
	if err != nil {
		return Session{}, err
	}

	// registration succeeds even when the code cannot be delivered; the user
	// can ask for another one
	if err := u.issueOTP(ctx, usr.Email); err != nil {
		u.logger.Warn("send verification code failed", zap.String("email", usr.Email), zap.Error(err))
	}

	return u.session(usr)
}

func (u *Auth) Login(ctx context.Context, in ucauth.LoginInput) (Session, error) {
	usr, err := u.authSvc.Login(ctx, in)
	if err != nil {
		return Session{}, err
	}
	return u.session(usr)
}

func (u *Auth) Refresh(ctx context.Context, refreshToken string) (string, string, error) {
	if refreshToken == "" {
		return "", "", ErrUnauthorized
	}

	claims, err := u.jwt.ValidateToken(refreshToken)
	if err != nil {
		if errors.Is(err, jwt.ErrTokenExpired) {
			return "", "", ErrRefreshTokenExpired
		}
		return "", "", ErrInvalidRefreshToken
	}

	if !u.jwt.IsRefreshToken(claims) || claims.TokenType != jwt.TokenTypeRefresh {
		return "", "", ErrInvalidRefreshToken
	}

	usr, err := u.users.GetByID(ctx, claims.UserID)
	if err != nil {
		if errors.Is(err, user.ErrNotFound) {
			return "", "", ErrInvalidRefreshToken
		}
		return "", "", ErrInternal
	}

	s, err := u.session(usr)
	if err != nil {
		return "", "", err
	}
	return s.AccessToken, s.RefreshToken, nil
}

func (u *Auth) GoogleSignIn(ctx context.Context, idToken string, roleName string) (Session, error) {
	if u.google == nil {
		return Session{}, ErrGoogleNotConfigured
	}
	id, err := u.google.Verify(ctx, idToken)
	if err != nil {
		if errors.Is(err, google.ErrNotConfigured) {
			return Session{}, ErrGoogleNotConfigured
		}
		u.logger.Info("google token rejected", zap.Error(err))
		return Session{}, ErrInvalidGoogleToken
	}

	var requested user.Role
	if strings.TrimSpace(roleName) != "" {
		r, ok := user.ParseRole(roleName)
		if !ok || r == user.RoleAdmin {
			return Session{}, ErrInvalidInput
		}
		requested = r
	}

	emailAddr := ucauth.NormalizeEmail(id.Email)
	usr, err := u.users.GetByEmail(ctx, emailAddr)
	switch {
	case errors.Is(err, user.ErrNotFound):
		if requested == "" {
			return Session{}, ErrRoleRequired
		}
		usr = user.User{
			ID:         uuid.New(),
			Email:      emailAddr,
			FullName:   id.Name,
			Role:       requested,
			IsActive:   true,
			IsVerified: true,
			Avatar:     id.Picture,
		}
		if err := u.users.Create(ctx, usr); err != nil {
			return Session{}, ErrInternal
		}
		u.logger.Info("created google user", zap.String("email", emailAddr))
	case err != nil:
		return Session{}, ErrInternal
	default:
		if requested != "" {
			usr.Role = requested
		}
		usr.Avatar = id.Picture
		if err := u.users.Update(ctx, usr); err != nil {
			return Session{}, ErrInternal
		}
	}

	return u.session(ucauth.Sanitize(usr))
}

// ForgotPassword never reveals whether the address is registered.
func (u *Auth) ForgotPassword(ctx context.Context, emailAddr string) error {
	usr, err := u.users.GetByEmail(ctx, ucauth.NormalizeEmail(emailAddr))
	if errors.Is(err, user.ErrNotFound) {
		return nil
	}
	if err != nil {
		return ErrInternal
	}

	token, err := u.newToken()
	if err != nil {
		return ErrInternal
	}
	if err := u.tokens.SetString(ctx, resetKeyPrefix+token, usr.ID.String(), resetTTL); err != nil {
		return ErrInternal
	}
	if err := u.mailer.Send(ctx, email.PasswordReset(usr.Email, u.frontendURL, token)); err != nil {
		u.logger.Warn("send reset email failed", zap.String("email", usr.Email), zap.Error(err))
	}
	return nil
}

func (u *Auth) ResetPassword(ctx context.Context, token, password, confirm string) error {
	token = strings.TrimSpace(token)
	if token == "" {
		return ErrInvalidResetToken
	}
	if password != confirm {
		return ucauth.ErrPasswordMismatch
	}

	raw, ok, err := u.tokens.GetString(ctx, resetKeyPrefix+token)
	if err != nil {
		return ErrInternal
	}
	if !ok {
		return ErrInvalidResetToken
	}
	userID, err := uuid.Parse(raw)
	if err != nil {
		return ErrInvalidResetToken
	}

	if err := u.authSvc.SetPassword(ctx, userID, password, confirm); err != nil {
		return err
	}
	_ = u.tokens.Delete(ctx, resetKeyPrefix+token)
	return nil
}

func (u *Auth) VerifyEmail(ctx context.Context, emailAddr, code string) error {
	emailAddr = ucauth.NormalizeEmail(emailAddr)
	code = strings.TrimSpace(code)
	if emailAddr == "" || code == "" {
		return ErrInvalidInput
	}

	stored, ok, err := u.tokens.GetString(ctx, otpKeyPrefix+emailAddr)
	if err != nil {
		return ErrInternal
	}
	if !ok {
		return ErrInvalidOTP
	}
	if subtle.ConstantTimeCompare([]byte(stored), []byte(code)) != 1 {
		// Too many misses burn the code; the user must request a new one.
		fails, err := u.tokens.Incr(ctx, otpFailPrefix+emailAddr, otpTTL)
		if err == nil && fails >= otpMaxAttempts {
			_ = u.tokens.Delete(ctx, otpKeyPrefix+emailAddr)
			_ = u.tokens.Delete(ctx, otpFailPrefix+emailAddr)
		}
		return ErrInvalidOTP
	}

	usr, err := u.users.GetByEmail(ctx, emailAddr)
	if err != nil {
		if errors.Is(err, user.ErrNotFound) {
			return ErrNotFound
		}
		return ErrInternal
	}
	usr.IsVerified = true
	if err := u.users.Update(ctx, usr); err != nil {
		return ErrInternal
	}
	_ = u.tokens.Delete(ctx, otpKeyPrefix+emailAddr)
	_ = u.tokens.Delete(ctx, otpFailPrefix+emailAddr)
	return nil
}

func (u *Auth) SendOTP(ctx context.Context, emailAddr string) error {
	emailAddr = ucauth.NormalizeEmail(emailAddr)
	if emailAddr == "" {
		return ErrInvalidInput
	}
	exists, err := u.users.ExistsByEmail(ctx, emailAddr)
	if err != nil {
		return ErrInternal
	}
	if !exists {
		return ErrNotFound
	}
	return u.issueOTP(ctx, emailAddr)
}

func (u *Auth) issueOTP(ctx context.Context, emailAddr string) error {
	code, err := u.newOTP()
	if err != nil {
		return ErrInternal
	}
	if err := u.tokens.SetString(ctx, otpKeyPrefix+emailAddr, code, otpTTL); err != nil {
		return ErrInternal
	}
	_ = u.tokens.Delete(ctx, otpFailPrefix+emailAddr)
	if err := u.mailer.Send(ctx, email.OTP(emailAddr, code)); err != nil {
		return fmt.Errorf("deliver otp: %w", err)
	}
	return nil
}

func (u *Auth) session(usr user.User) (Session, error) {
	access, err := u.jwt.GenerateAccessToken(usr.ID, usr.Email, string(usr.Role))
	if err != nil {
		return Session{}, ErrInternal
	}
	refresh, err := u.jwt.GenerateRefreshToken(usr.ID)
	if err != nil {
		return Session{}, ErrInternal
	}
	return Session{User: ucauth.Sanitize(usr), AccessToken: access, RefreshToken: refresh}, nil
}

func randomOTP() (string, error) {
	n, err := rand.Int(rand.Reader, big.NewInt(1_000_000))
	if err != nil {
		return "", err
	}
	return fmt.Sprintf("%06d", n.Int64()), nil
}

func randomToken() (string, error) {
	b := make([]byte, 32)
	if _, err := rand.Read(b); err != nil {
		return "", err
	}
	return hex.EncodeToString(b), nil
}
