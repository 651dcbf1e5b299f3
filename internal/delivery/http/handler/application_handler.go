package handler

import (
	"skillsync/internal/delivery/http/dto"
	"skillsync/internal/delivery/http/middleware"
	"skillsync/internal/domain/user"
	"skillsync/internal/usecase"

	"github.com/gofiber/fiber/v3"
)

type ApplicationHandler struct {
	uc usecase.ApplicationUsecase
}

func NewApplicationHandler(uc usecase.ApplicationUsecase) *ApplicationHandler {
	return &ApplicationHandler{uc: uc}
}

func (h *ApplicationHandler) RegisterRoutes(r fiber.Router) {
	if r == nil {
		return
	}

	r.Post("/roles/:role_id", middleware.RequireRole(user.RoleStudent), h.Apply)
	r.Get("/me", h.ListMine)
}

func (h *ApplicationHandler) Apply(c fiber.Ctx) error {
	userID, err := currentUserID(c)
	if err != nil {
		return err
	}

	var req dto.ApplyRequest
	if len(c.Body()) > 0 {
		if err := bindBody(c, &req); err != nil {
			return err
		}
	}

	app, err := h.uc.Apply(c.Context(), userID, c.Params("role_id"), req.CoverLetter)
	if err != nil {
		return mapUsecaseError(err, "Role not found")
	}
	return respondCreated(c, dto.NewApplicationResponse(app))
}

func (h *ApplicationHandler) ListMine(c fiber.Ctx) error {
	userID, err := currentUserID(c)
	if err != nil {
		return err
	}

	items, err := h.uc.ListMine(c.Context(), userID)
	if err != nil {
		return mapUsecaseError(err, "Application not found")
	}
	return respondOK(c, dto.NewApplicationResponses(items))
}
