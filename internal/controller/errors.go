package controller

import (
	"errors"

	"party-advisor-be/internal/service"
	"party-advisor-be/pkg/speech"

	"github.com/gofiber/fiber/v2"
)

var statusByError = []struct {
	err  error
	code int
}{
	{service.ErrSessionNotFound, fiber.StatusNotFound},
	{service.ErrMessageNotFound, fiber.StatusNotFound},
	{service.ErrDocumentNotFound, fiber.StatusNotFound},
	{service.ErrPendingNotFound, fiber.StatusNotFound},
	{service.ErrSuggestionNotFound, fiber.StatusNotFound},
	{speech.ErrNoAudio, fiber.StatusNotFound},
	{service.ErrInvalidCategory, fiber.StatusBadRequest},
	{service.ErrInvalidMode, fiber.StatusBadRequest},
	{service.ErrEmptyQuestion, fiber.StatusBadRequest},
	{service.ErrNoFiles, fiber.StatusBadRequest},
	{service.ErrNotAssistantMessage, fiber.StatusBadRequest},
	{service.ErrFileTooLarge, fiber.StatusRequestEntityTooLarge},
	{service.ErrStreamInProgress, fiber.StatusConflict},
}

// httpError maps service errors onto HTTP status codes. Unknown errors pass
// through and render as 500.
func httpError(err error) error {
	for _, e := range statusByError {
		if errors.Is(err, e.err) {
			return fiber.NewError(e.code, e.err.Error())
		}
	}
	return err
}
