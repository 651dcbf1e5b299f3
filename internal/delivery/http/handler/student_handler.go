package handler

import (
	"skillsync/internal/delivery/http/dto"
	"skillsync/internal/usecase"

	"github.com/gofiber/fiber/v3"
)

type StudentHandler struct {
	uc usecase.UserUsecase
}

func NewStudentHandler(uc usecase.UserUsecase) *StudentHandler {
	return &StudentHandler{uc: uc}
}

func (h *StudentHandler) RegisterRoutes(r fiber.Router) {
	if r == nil {
		return
	}

	r.Get("/", h.List)
	r.Get("/search", h.Search)
	r.Get("/:id", h.Get)
}

func (h *StudentHandler) List(c fiber.Ctx) error {
	items, err := h.uc.ListStudents(c.Context())
	if err != nil {
		return mapUsecaseError(err, "Student not found")
	}
	return respondOK(c, dto.NewUserResponses(items))
}

func (h *StudentHandler) Search(c fiber.Ctx) error {
	items, err := h.uc.SearchStudents(c.Context(), c.Query("query"))
	if err != nil {
		return mapUsecaseError(err, "Student not found")
	}
	return respondOK(c, dto.NewUserResponses(items))
}

func (h *StudentHandler) Get(c fiber.Ctx) error {
	u, err := h.uc.GetStudent(c.Context(), c.Params("id"))
	if err != nil {
		return mapUsecaseError(err, "Student not found")
	}
	return respondOK(c, dto.NewUserResponse(u))
}
