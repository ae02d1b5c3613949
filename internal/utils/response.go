package utils

import (
	"github.com/gofiber/fiber/v2"
)

// ErrorResponseStruct documents the error body. Error is a message, or a map of
// field name to message for validation failures.
type ErrorResponseStruct struct {
	Error interface{} `json:"error" swaggertype:"string"`
}

// SuccessResponse writes data as JSON with status
func SuccessResponse(c *fiber.Ctx, data interface{}, status int) error {
	return c.Status(status).JSON(data)
}

// ErrorResponse writes the {"error": ...} body with status
func ErrorResponse(c *fiber.Ctx, status int, errorBody interface{}) error {
	return c.Status(status).JSON(ErrorResponseStruct{Error: errorBody})
}
