package utils

import (
	"github.com/gofiber/fiber/v2"

	"github.com/skate-scout/internal/pkg/errors"
)

type ErrorResponse struct {
	Error *errors.AppError `json:"error"`
}

// SuccessResponse - ответ на операции с отчётами
type SuccessResponse struct {
	Success bool        `json:"success"`
	Report  interface{} `json:"report,omitempty"`
}

// SendJSON отдаёт payload как есть, без обёртки
func SendJSON(c *fiber.Ctx, status int, data interface{}) error {
	return c.Status(status).JSON(data)
}

func SendSuccess(c *fiber.Ctx, status int, report interface{}) error {
	return c.Status(status).JSON(SuccessResponse{
		Success: true,
		Report:  report,
	})
}

func SendError(c *fiber.Ctx, err error) error {
	if appErr, ok := errors.As(err); ok {
		return c.Status(appErr.StatusCode).JSON(ErrorResponse{
			Error: appErr,
		})
	}

	// Unknown error - return 500
	return c.Status(fiber.StatusInternalServerError).JSON(ErrorResponse{
		Error: errors.ErrInternalServer,
	})
}
