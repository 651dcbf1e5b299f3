package handler

import (
	"skillsync/internal/delivery/http/dto"
	"skillsync/internal/domain/opportunity"
	"skillsync/internal/usecase"

	"github.com/gofiber/fiber/v3"
)

type OpportunityHandler struct {
	uc usecase.OpportunityUsecase
}

func NewOpportunityHandler(uc usecase.OpportunityUsecase) *OpportunityHandler {
	return &OpportunityHandler{uc: uc}
}

// RegisterRoutes mounts the scholarship, internship and combined scan
// routes on r, which is the /api/v1 group.
func (h *OpportunityHandler) RegisterRoutes(r fiber.Router) {
	if r == nil {
		return
	}

	r.Get("/scholarships", h.list(opportunity.KindScholarship))
	r.Post("/scholarships/scan", h.ScanScholarships)
	r.Get("/internships", h.list(opportunity.KindInternship))
	r.Post("/internships/scan", h.ScanInternships)
	r.Post("/opportunities/scan", h.ScanAll)
}

func (h *OpportunityHandler) list(kind opportunity.Kind) fiber.Handler {
	return func(c fiber.Ctx) error {
		items, err := h.uc.List(c.Context(), kind)
		if err != nil {
			return mapUsecaseError(err, "Not found")
		}
		return respondOK(c, dto.NewOpportunityResponses(items))
	}
}

func (h *OpportunityHandler) ScanScholarships(c fiber.Ctx) error {
	req, err := scanRequest(c)
	if err != nil {
		return err
	}
	items, err := h.uc.ScanScholarships(c.Context(), req.Profile())
	if err != nil {
		return mapUsecaseError(err, "Not found")
	}
	return respondOK(c, dto.NewOpportunityResponses(items))
}

func (h *OpportunityHandler) ScanInternships(c fiber.Ctx) error {
	req, err := scanRequest(c)
	if err != nil {
		return err
	}
	items, err := h.uc.ScanInternships(c.Context(), req.Profile())
	if err != nil {
		return mapUsecaseError(err, "Not found")
	}
	return respondOK(c, dto.NewOpportunityResponses(items))
}

func (h *OpportunityHandler) ScanAll(c fiber.Ctx) error {
	req, err := scanRequest(c)
	if err != nil {
		return err
	}
	res, err := h.uc.ScanAll(c.Context(), req.Profile())
	if err != nil {
		return mapUsecaseError(err, "Not found")
	}
	return respondOK(c, dto.ScanAllResponse{
		Scholarships: dto.NewOpportunityResponses(res.Scholarships),
		Internships:  dto.NewOpportunityResponses(res.Internships),
	})
}

// scanRequest accepts an empty body as an empty profile.
func scanRequest(c fiber.Ctx) (dto.ScanRequest, error) {
	var req dto.ScanRequest
	if len(c.Body()) == 0 {
		return req, nil
	}
	if err := bindBody(c, &req); err != nil {
		return dto.ScanRequest{}, err
	}
	return req, nil
}
