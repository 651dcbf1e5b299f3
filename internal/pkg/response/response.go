// Package response writes the JSON envelope every endpoint returns:
// {"status": <code>, "message": <text>, "data": <payload>}.
package response

import (
	"net/http"

	"github.com/gofiber/fiber/v3"
)

type SemanticResponse struct {
	Status  int    `json:"status"`
	Message string `json:"message"`
	Data    any    `json:"data"`
}

const (
	MessageOK                  = "ok"
	MessageCreated             = "created"
	MessageBadRequest          = "bad request"
	MessageUnauthorized        = "unauthorized"
	MessageForbidden           = "forbidden"
	MessageNotFound            = "not found"
	MessageConflict            = "conflict"
	MessageUnprocessableEntity = "unprocessable entity"
	MessageInternalServerError = "internal server error"
	MessageBadGateway          = "bad gateway"
	MessageServiceUnavailable  = "service unavailable"
	MessageError               = "error"
)

var defaultMessages = map[int]string{
	http.StatusOK:                  MessageOK,
	http.StatusCreated:             MessageCreated,
	http.StatusBadRequest:          MessageBadRequest,
	http.StatusUnauthorized:        MessageUnauthorized,
	http.StatusForbidden:           MessageForbidden,
	http.StatusNotFound:            MessageNotFound,
	http.StatusConflict:            MessageConflict,
	http.StatusUnprocessableEntity: MessageUnprocessableEntity,
	http.StatusBadGateway:          MessageBadGateway,
	http.StatusServiceUnavailable:  MessageServiceUnavailable,
}

func OK(c fiber.Ctx, data any) error {
	return write(c, http.StatusOK, "", data)
}

func Created(c fiber.Ctx, data any) error {
	return write(c, http.StatusCreated, "", data)
}

func Success(c fiber.Ctx, status int, message string, data any) error {
	return write(c, status, message, data)
}

// Error writes a failure envelope. It is the same shape as Success so
// clients only parse one format.
func Error(c fiber.Ctx, status int, message string, data any) error {
	return write(c, status, message, data)
}

// DefaultMessage returns the canned message for status. Out of range codes
// are treated as 500.
func DefaultMessage(status int) string {
	status = clampStatus(status)
	if msg, ok := defaultMessages[status]; ok {
		return msg
	}
	switch {
	case status >= 500:
		return MessageInternalServerError
	case status < 300:
		return MessageOK
	default:
		return MessageError
	}
}

func write(c fiber.Ctx, status int, message string, data any) error {
	status = clampStatus(status)
	if message == "" {
		message = DefaultMessage(status)
	}
	return c.Status(status).JSON(SemanticResponse{Status: status, Message: message, Data: data})
}

func clampStatus(status int) int {
	if status < 100 || status > 599 {
		return http.StatusInternalServerError
	}
	return status
}
