package usecase

import "errors"

var (
	ErrInvalidInput = errors.New("invalid input")
	ErrNotFound     = errors.New("not found")
	ErrForbidden    = errors.New("forbidden")
	ErrConflict     = errors.New("conflict")

	ErrUnauthorized        = errors.New("unauthorized")
	ErrInvalidRefreshToken = errors.New("invalid refresh token")
	ErrRefreshTokenExpired = errors.New("refresh token expired")

	ErrAIUnavailable = errors.New("AI service not configured")
	ErrAIResponse    = errors.New("AI service returned an unusable response")

	ErrEmailDelivery = errors.New("email could not be delivered")

	ErrInternal = errors.New("internal error")
)
