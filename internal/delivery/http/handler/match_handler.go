package handler

import (
	"skillsync/internal/delivery/http/dto"
	"skillsync/internal/usecase"

	"github.com/gofiber/fiber/v3"
)

type MatchHandler struct {
	uc usecase.MatchingUsecase
}

func NewMatchHandler(uc usecase.MatchingUsecase) *MatchHandler {
	return &MatchHandler{uc: uc}
}

func (h *MatchHandler) RegisterRoutes(r fiber.Router) {
	if r == nil {
		return
	}

	r.Get("/roles/:role_id", h.StudentsForRole)
	r.Get("/students/:student_id", h.RolesForStudent)
}

func (h *MatchHandler) StudentsForRole(c fiber.Ctx) error {
	res, err := h.uc.RankStudentsForRole(c.Context(), c.Params("role_id"))
	if err != nil {
		return mapUsecaseError(err, "Role not found")
	}
	return respondOK(c, dto.NewMatchResponses(res))
}

func (h *MatchHandler) RolesForStudent(c fiber.Ctx) error {
	res, err := h.uc.RankRolesForStudent(c.Context(), c.Params("student_id"))
	if err != nil {
		return mapUsecaseError(err, "Student not found")
	}
	return respondOK(c, dto.NewMatchResponses(res))
}
