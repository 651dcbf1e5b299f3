package handler

import (
	"errors"

	"skillsync/internal/delivery/http/middleware"
	"skillsync/internal/domain/user"
	"skillsync/internal/pkg/response"
	"skillsync/internal/pkg/validation"
	"skillsync/internal/usecase"

	"github.com/gofiber/fiber/v3"
	"github.com/google/uuid"
)

// bindBody decodes the JSON body into req and runs its validate tags.
func bindBody(c fiber.Ctx, req any) error {
	if err := c.Bind().Body(req); err != nil {
		return middleware.NewAppError(fiber.StatusBadRequest, "Invalid request payload", nil, err)
	}
	if err := validation.Struct(req); err != nil {
		var verr *validation.Error
		if errors.As(err, &verr) {
			return middleware.NewAppError(fiber.StatusBadRequest, "Validation failed", map[string]any{"errors": verr.Fields}, err)
		}
		return middleware.NewAppError(fiber.StatusBadRequest, "Invalid request payload", nil, err)
	}
	return nil
}

func currentUserID(c fiber.Ctx) (uuid.UUID, error) {
	userID, ok := c.Locals(middleware.CtxUserIDKey).(uuid.UUID)
	if !ok || userID == uuid.Nil {
		return uuid.Nil, middleware.NewAppError(fiber.StatusUnauthorized, "Unauthorized", nil, nil)
	}
	return userID, nil
}

func currentRole(c fiber.Ctx) user.Role {
	r, _ := c.Locals(middleware.CtxRoleKey).(user.Role)
	return r
}

func respondOK(c fiber.Ctx, data any) error {
	return response.OK(c, data)
}

func respondCreated(c fiber.Ctx, data any) error {
	return response.Created(c, data)
}

// mapUsecaseError turns usecase sentinels into HTTP errors. notFound is
// the message for ErrNotFound.
func mapUsecaseError(err error, notFound string) error {
	if err == nil {
		return nil
	}

	switch {
	case errors.Is(err, usecase.ErrInvalidInput):
		return middleware.NewAppError(fiber.StatusBadRequest, "Invalid request payload", nil, err)
	case errors.Is(err, usecase.ErrNotFound):
		return middleware.NewAppError(fiber.StatusNotFound, notFound, nil, err)
	case errors.Is(err, usecase.ErrUnauthorized):
		return middleware.NewAppError(fiber.StatusUnauthorized, "Unauthorized", nil, err)
	case errors.Is(err, usecase.ErrForbidden):
		return middleware.NewAppError(fiber.StatusForbidden, "Forbidden", nil, err)
	case errors.Is(err, usecase.ErrConflict):
		return middleware.NewAppError(fiber.StatusConflict, "Conflict", nil, err)
	case errors.Is(err, usecase.ErrAIUnavailable):
		return middleware.NewAppError(fiber.StatusServiceUnavailable, usecase.ErrAIUnavailable.Error(), nil, err)
	case errors.Is(err, usecase.ErrAIResponse):
		return middleware.NewAppError(fiber.StatusBadGateway, "AI service returned an invalid response", nil, err)
	case errors.Is(err, usecase.ErrEmailDelivery):
		return middleware.NewAppError(fiber.StatusBadGateway, "Failed to send email", nil, err)
	default:
		return middleware.NewAppError(fiber.StatusInternalServerError, response.MessageInternalServerError, nil, err)
	}
}
