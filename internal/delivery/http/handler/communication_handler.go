package handler

import (
	"skillsync/internal/delivery/http/dto"
	"skillsync/internal/usecase"

	"github.com/gofiber/fiber/v3"
)

type CommunicationHandler struct {
	uc usecase.CommunicationUsecase
}

func NewCommunicationHandler(uc usecase.CommunicationUsecase) *CommunicationHandler {
	return &CommunicationHandler{uc: uc}
}

func (h *CommunicationHandler) RegisterRoutes(r fiber.Router) {
	if r == nil {
		return
	}

	r.Post("/message", h.SendMessage)
	r.Post("/interview", h.ScheduleInterview)
}

func (h *CommunicationHandler) SendMessage(c fiber.Ctx) error {
	var req dto.MessageRequest
	if err := bindBody(c, &req); err != nil {
		return err
	}

	senderID := req.SenderID
	if id, err := currentUserID(c); err == nil {
		senderID = id.String()
	}

	msg, err := h.uc.SendMessage(c.Context(), usecase.MessageInput{
		StudentID:    req.StudentID,
		StudentEmail: req.StudentEmail,
		StudentName:  req.StudentName,
		Message:      req.Message,
		SenderID:     senderID,
	})
	if err != nil {
		return mapUsecaseError(err, "Not found")
	}
	return respondOK(c, dto.MessageResponse{Message: msg})
}

func (h *CommunicationHandler) ScheduleInterview(c fiber.Ctx) error {
	var req dto.InterviewRequest
	if err := bindBody(c, &req); err != nil {
		return err
	}

	msg, err := h.uc.ScheduleInterview(c.Context(), usecase.InterviewInput{
		StudentID:    req.StudentID,
		StudentEmail: req.StudentEmail,
		Date:         req.Date,
		Time:         req.Time,
		Type:         req.Type,
		Notes:        req.Notes,
	})
	if err != nil {
		return mapUsecaseError(err, "Not found")
	}
	return respondOK(c, dto.MessageResponse{Message: msg})
}
