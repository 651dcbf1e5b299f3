package handler

import (
	"errors"

	"skillsync/internal/delivery/http/dto"
	"skillsync/internal/delivery/http/middleware"
	"skillsync/internal/domain/user"
	"skillsync/internal/pkg/response"
	"skillsync/internal/usecase"
	ucauth "skillsync/internal/usecase/auth"

	"github.com/gofiber/fiber/v3"
)

const forgotPasswordMessage = "If the email exists, a reset link has been sent."

type AuthHandler struct {
	uc usecase.AuthUsecase
}

func NewAuthHandler(uc usecase.AuthUsecase) *AuthHandler {
	return &AuthHandler{uc: uc}
}

func (h *AuthHandler) RegisterRoutes(r fiber.Router) {
	if r == nil {
		return
	}

	r.Post("/register", h.Register)
	r.Post("/login", h.Login)
	r.Post("/refresh", h.Refresh)
	r.Post("/google", h.Google)
	r.Post("/forgot-password", h.ForgotPassword)
	r.Post("/reset-password", h.ResetPassword)
	r.Post("/verify-email", h.VerifyEmail)
	r.Post("/send-otp", h.SendOTP)
}

func (h *AuthHandler) Register(c fiber.Ctx) error {
	var req dto.RegisterRequest
	if err := bindBody(c, &req); err != nil {
		return err
	}
	role, valid := user.ParseRole(req.Role)
	if !valid {
		return middleware.NewAppError(fiber.StatusBadRequest, "Invalid role", nil, nil)
	}

	s, err := h.uc.Register(c.Context(), ucauth.RegisterInput{
		Email:           req.Email,
		Password:        req.Password,
		ConfirmPassword: req.ConfirmPassword,
		FullName:        req.Name,
		Role:            role,
	})
	if err != nil {
		return mapAuthUsecaseError(err)
	}
	return response.Success(c, fiber.StatusCreated, "registered", tokenResponse(s))
}

func (h *AuthHandler) Login(c fiber.Ctx) error {
	var req dto.LoginRequest
	if err := bindBody(c, &req); err != nil {
		return err
	}

	s, err := h.uc.Login(c.Context(), ucauth.LoginInput{Email: req.Email, Password: req.Password})
	if err != nil {
		return mapAuthUsecaseError(err)
	}
	return respondOK(c, tokenResponse(s))
}

func (h *AuthHandler) Refresh(c fiber.Ctx) error {
	tok, found := middleware.BearerToken(c.Get(fiber.HeaderAuthorization))
	if !found {
		return middleware.NewAppError(fiber.StatusUnauthorized, "Unauthorized", nil, nil)
	}

	access, refresh, err := h.uc.Refresh(c.Context(), tok)
	if err != nil {
		return mapAuthUsecaseError(err)
	}
	return respondOK(c, dto.RefreshResponse{AccessToken: access, RefreshToken: refresh, TokenType: "bearer"})
}

func (h *AuthHandler) Google(c fiber.Ctx) error {
	var req dto.GoogleLoginRequest
	if err := bindBody(c, &req); err != nil {
		return err
	}

	s, err := h.uc.GoogleSignIn(c.Context(), req.IDToken, req.Role)
	if err != nil {
		return mapAuthUsecaseError(err)
	}
	return respondOK(c, tokenResponse(s))
}

func (h *AuthHandler) ForgotPassword(c fiber.Ctx) error {
	var req dto.EmailRequest
	if err := bindBody(c, &req); err != nil {
		return err
	}
	if err := h.uc.ForgotPassword(c.Context(), req.Email); err != nil {
		return mapAuthUsecaseError(err)
	}
	return response.Success(c, fiber.StatusOK, forgotPasswordMessage, nil)
}

func (h *AuthHandler) ResetPassword(c fiber.Ctx) error {
	var req dto.ResetPasswordRequest
	if err := bindBody(c, &req); err != nil {
		return err
	}
	if err := h.uc.ResetPassword(c.Context(), req.Token, req.NewPassword, req.ConfirmPassword); err != nil {
		return mapAuthUsecaseError(err)
	}
	return response.Success(c, fiber.StatusOK, "Password has been reset successfully", nil)
}

func (h *AuthHandler) VerifyEmail(c fiber.Ctx) error {
	var req dto.VerifyEmailRequest
	if err := bindBody(c, &req); err != nil {
		return err
	}
	if err := h.uc.VerifyEmail(c.Context(), req.Email, req.OTP); err != nil {
		return mapAuthUsecaseError(err)
	}
	return response.Success(c, fiber.StatusOK, "Email verified successfully", nil)
}

func (h *AuthHandler) SendOTP(c fiber.Ctx) error {
	var req dto.EmailRequest
	if err := bindBody(c, &req); err != nil {
		return err
	}
	if err := h.uc.SendOTP(c.Context(), req.Email); err != nil {
		return mapAuthUsecaseError(err)
	}
	return response.Success(c, fiber.StatusOK, "OTP sent successfully", nil)
}

func tokenResponse(s usecase.Session) dto.TokenResponse {
	return dto.TokenResponse{
		AccessToken:  s.AccessToken,
		RefreshToken: s.RefreshToken,
		TokenType:    "bearer",
		UserID:       s.User.ID.String(),
		Role:         string(s.User.Role),
		Name:         s.User.FullName,
		IsVerified:   s.User.IsVerified,
	}
}

func mapAuthUsecaseError(err error) error {
	if err == nil {
		return nil
	}

	switch {
	case errors.Is(err, ucauth.ErrEmailAlreadyRegistered):
		return middleware.NewAppError(fiber.StatusConflict, "Email already registered", nil, err)
	case errors.Is(err, ucauth.ErrInvalidCredentials):
		return middleware.NewAppError(fiber.StatusUnauthorized, "Invalid email or password", nil, err)
	case errors.Is(err, ucauth.ErrPasswordMismatch):
		return middleware.NewAppError(fiber.StatusBadRequest, "Passwords do not match", nil, err)
	case errors.Is(err, ucauth.ErrInvalidInput):
		return middleware.NewAppError(fiber.StatusBadRequest, "Invalid request payload", nil, err)
	case errors.Is(err, usecase.ErrRoleRequired):
		return middleware.NewAppError(fiber.StatusBadRequest, usecase.ErrRoleRequired.Error(), nil, err)
	case errors.Is(err, usecase.ErrInvalidGoogleToken):
		return middleware.NewAppError(fiber.StatusUnauthorized, "Invalid Google token", nil, err)
	case errors.Is(err, usecase.ErrGoogleNotConfigured):
		return middleware.NewAppError(fiber.StatusServiceUnavailable, "Google sign-in not configured", nil, err)
	case errors.Is(err, usecase.ErrInvalidOTP):
		return middleware.NewAppError(fiber.StatusBadRequest, "Invalid or expired OTP", nil, err)
	case errors.Is(err, usecase.ErrInvalidResetToken):
		return middleware.NewAppError(fiber.StatusBadRequest, "Invalid or expired token", nil, err)
	case errors.Is(err, usecase.ErrRefreshTokenExpired):
		return middleware.NewAppError(fiber.StatusUnauthorized, "Refresh token expired", nil, err)
	case errors.Is(err, usecase.ErrInvalidRefreshToken):
		return middleware.NewAppError(fiber.StatusUnauthorized, "Invalid refresh token", nil, err)
	default:
		return mapUsecaseError(err, "User not found")
	}
}
