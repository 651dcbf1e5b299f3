package handler

import (
	"skillsync/internal/delivery/http/dto"
	"skillsync/internal/usecase"

	"github.com/gofiber/fiber/v3"
)

type RecommendationHandler struct {
	uc usecase.RecommendationUsecase
}

func NewRecommendationHandler(uc usecase.RecommendationUsecase) *RecommendationHandler {
	return &RecommendationHandler{uc: uc}
}

func (h *RecommendationHandler) RegisterRoutes(r fiber.Router) {
	if r == nil {
		return
	}

	r.Post("/learning-path", h.LearningPath)
	r.Post("/opportunities", h.Opportunities)
}

func (h *RecommendationHandler) LearningPath(c fiber.Ctx) error {
	var req dto.LearningPathRequest
	if err := bindBody(c, &req); err != nil {
		return err
	}

	path, err := h.uc.LearningPath(c.Context(), req.Skills, req.Goal)
	if err != nil {
		return mapUsecaseError(err, "Not found")
	}
	steps := path.Steps
	if steps == nil {
		steps = []usecase.LearningStep{}
	}
	return respondOK(c, dto.LearningPathResponse{Steps: steps, RawResponse: path.RawResponse})
}

func (h *RecommendationHandler) Opportunities(c fiber.Ctx) error {
	var req dto.SuggestOpportunitiesRequest
	if err := bindBody(c, &req); err != nil {
		return err
	}

	items, err := h.uc.SuggestOpportunities(c.Context(), req.Course, req.Skills)
	if err != nil {
		return mapUsecaseError(err, "Not found")
	}
	if items == nil {
		items = []usecase.OpportunitySuggestion{}
	}
	return respondOK(c, items)
}
