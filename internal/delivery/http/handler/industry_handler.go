package handler

import (
	"skillsync/internal/delivery/http/dto"
	"skillsync/internal/delivery/http/middleware"
	"skillsync/internal/domain/user"
	"skillsync/internal/usecase"

	"github.com/gofiber/fiber/v3"
)

type IndustryHandler struct {
	uc usecase.IndustryUsecase
}

func NewIndustryHandler(uc usecase.IndustryUsecase) *IndustryHandler {
	return &IndustryHandler{uc: uc}
}

func (h *IndustryHandler) RegisterRoutes(r fiber.Router) {
	if r == nil {
		return
	}

	recruiter := middleware.RequireRole(user.RoleIndustry)
	r.Post("/roles", recruiter, h.CreateRole)
	r.Get("/roles", h.ListRoles)
	r.Get("/roles/:role_id/applications", recruiter, h.ListApplications)
	r.Put("/applications/:app_id/status", recruiter, h.UpdateStatus)
}

func (h *IndustryHandler) CreateRole(c fiber.Ctx) error {
	userID, err := currentUserID(c)
	if err != nil {
		return err
	}

	var req dto.CreateRoleRequest
	if err := bindBody(c, &req); err != nil {
		return err
	}

	r, err := h.uc.CreateRole(c.Context(), userID, usecase.CreateRoleInput{
		Title:              req.Title,
		CompanyName:        req.CompanyName,
		Description:        req.Description,
		Requirements:       req.Requirements,
		Type:               req.Type,
		Location:           req.Location,
		SalaryRange:        req.SalaryRange,
		RequiredSkills:     req.RequiredSkills,
		MinExperienceYears: req.MinExperienceYears,
	})
	if err != nil {
		return mapUsecaseError(err, "Recruiter not found")
	}
	return respondCreated(c, dto.NewRoleResponse(r))
}

func (h *IndustryHandler) ListRoles(c fiber.Ctx) error {
	items, err := h.uc.ListRoles(c.Context())
	if err != nil {
		return mapUsecaseError(err, "Role not found")
	}
	return respondOK(c, dto.NewRoleResponses(items))
}

func (h *IndustryHandler) ListApplications(c fiber.Ctx) error {
	userID, err := currentUserID(c)
	if err != nil {
		return err
	}

	items, err := h.uc.ListRoleApplications(c.Context(), userID, c.Params("role_id"))
	if err != nil {
		return mapUsecaseError(err, "Role not found")
	}
	return respondOK(c, dto.NewApplicationResponses(items))
}

func (h *IndustryHandler) UpdateStatus(c fiber.Ctx) error {
	userID, err := currentUserID(c)
	if err != nil {
		return err
	}

	var req dto.UpdateStatusRequest
	if err := bindBody(c, &req); err != nil {
		return err
	}

	app, err := h.uc.UpdateApplicationStatus(c.Context(), userID, c.Params("app_id"), req.Status)
	if err != nil {
		return mapUsecaseError(err, "Application not found")
	}
	return respondOK(c, dto.NewApplicationResponse(app))
}
