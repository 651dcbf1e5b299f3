package handler

import (
	"skillsync/internal/delivery/http/dto"
	"skillsync/internal/usecase"

	"github.com/gofiber/fiber/v3"
)

type SkillHandler struct {
	skills usecase.SkillUsecase
	ai     usecase.RecommendationUsecase
}

func NewSkillHandler(skills usecase.SkillUsecase, ai usecase.RecommendationUsecase) *SkillHandler {
	return &SkillHandler{skills: skills, ai: ai}
}

func (h *SkillHandler) RegisterRoutes(r fiber.Router) {
	if r == nil {
		return
	}

	r.Post("/gap-analysis", h.GapAnalysis)
	r.Post("/verify", h.Verify)
	r.Get("/verifications", h.ListVerifications)
}

func (h *SkillHandler) GapAnalysis(c fiber.Ctx) error {
	var req dto.GapAnalysisRequest
	if err := bindBody(c, &req); err != nil {
		return err
	}

	gap, err := h.ai.SkillGap(c.Context(), req.CurrentSkills, req.TargetRole, req.Major)
	if err != nil {
		return mapUsecaseError(err, "Not found")
	}
	return respondOK(c, dto.GapAnalysisResponse{MissingSkills: gap.MissingSkills, ActionPlan: gap.ActionPlan})
}

func (h *SkillHandler) Verify(c fiber.Ctx) error {
	userID, err := currentUserID(c)
	if err != nil {
		return err
	}

	var req dto.VerifySkillRequest
	if err := bindBody(c, &req); err != nil {
		return err
	}

	v, err := h.skills.RequestVerification(c.Context(), userID, req.SkillName, req.Evidence())
	if err != nil {
		return mapUsecaseError(err, "User not found")
	}
	return respondCreated(c, dto.NewVerificationResponse(v))
}

func (h *SkillHandler) ListVerifications(c fiber.Ctx) error {
	userID, err := currentUserID(c)
	if err != nil {
		return err
	}

	items, err := h.skills.ListVerifications(c.Context(), userID)
	if err != nil {
		return mapUsecaseError(err, "User not found")
	}
	out := make([]dto.VerificationResponse, 0, len(items))
	for _, v := range items {
		out = append(out, dto.NewVerificationResponse(v))
	}
	return respondOK(c, out)
}
