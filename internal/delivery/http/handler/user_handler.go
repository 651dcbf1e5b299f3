package handler

import (
	"strings"

	"skillsync/internal/delivery/http/dto"
	"skillsync/internal/usecase"

	"github.com/gofiber/fiber/v3"
)

type UserHandler struct {
	uc usecase.UserUsecase
}

func NewUserHandler(uc usecase.UserUsecase) *UserHandler {
	return &UserHandler{uc: uc}
}

func (h *UserHandler) RegisterRoutes(r fiber.Router) {
	if r == nil {
		return
	}

	r.Get("/me", h.GetMe)
	r.Patch("/me", h.UpdateMe)
	r.Get("/me/completeness", h.Completeness)
	r.Post("/me/skills", h.AddSkill)
	r.Delete("/me/skills/:name", h.RemoveSkill)
}

func (h *UserHandler) GetMe(c fiber.Ctx) error {
	userID, err := currentUserID(c)
	if err != nil {
		return err
	}

	prof, err := h.uc.GetProfile(c.Context(), userID)
	if err != nil {
		return mapUsecaseError(err, "User not found")
	}
	return respondOK(c, dto.NewUserResponse(prof))
}

func (h *UserHandler) UpdateMe(c fiber.Ctx) error {
	userID, err := currentUserID(c)
	if err != nil {
		return err
	}

	var req dto.UpdateProfileRequest
	if err := bindBody(c, &req); err != nil {
		return err
	}

	prof, err := h.uc.UpdateProfile(c.Context(), userID, req.Domain())
	if err != nil {
		return mapUsecaseError(err, "User not found")
	}
	return respondOK(c, dto.NewUserResponse(prof))
}

func (h *UserHandler) Completeness(c fiber.Ctx) error {
	userID, err := currentUserID(c)
	if err != nil {
		return err
	}

	res, err := h.uc.Completeness(c.Context(), userID)
	if err != nil {
		return mapUsecaseError(err, "User not found")
	}
	return respondOK(c, dto.NewCompletenessResponse(res))
}

func (h *UserHandler) AddSkill(c fiber.Ctx) error {
	userID, err := currentUserID(c)
	if err != nil {
		return err
	}

	var req dto.SkillDTO
	if err := bindBody(c, &req); err != nil {
		return err
	}

	prof, err := h.uc.AddSkill(c.Context(), userID, req.Domain())
	if err != nil {
		return mapUsecaseError(err, "User not found")
	}
	return respondCreated(c, dto.SkillsFromDomain(prof.Skills))
}

func (h *UserHandler) RemoveSkill(c fiber.Ctx) error {
	userID, err := currentUserID(c)
	if err != nil {
		return err
	}

	name := strings.TrimSpace(c.Params("name"))
	if name == "" {
		return mapUsecaseError(usecase.ErrInvalidInput, "")
	}

	prof, err := h.uc.RemoveSkill(c.Context(), userID, name)
	if err != nil {
		return mapUsecaseError(err, "Skill not found")
	}
	return respondOK(c, dto.SkillsFromDomain(prof.Skills))
}
