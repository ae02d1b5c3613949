package handlers

import (
	"errors"

	"github.com/gofiber/fiber/v2"
	"github.com/localnerve/jam-build-bookmarks/internal/logger"
	"github.com/localnerve/jam-build-bookmarks/internal/types"
	"github.com/localnerve/jam-build-bookmarks/internal/utils"
)

// NewErrorHandler returns the fiber.ErrorHandler that turns every failure into
// a status code and an {"error": ...} body.
func NewErrorHandler(log logger.Logger) fiber.ErrorHandler {
	return func(c *fiber.Ctx, err error) error {
		var ce *types.CustomError
		if errors.As(err, &ce) {
			if len(ce.Fields) > 0 {
				return utils.ErrorResponse(c, ce.Code, ce.Fields)
			}
			return utils.ErrorResponse(c, ce.Code, ce.Message)
		}

		// Fiber's own errors, e.g. 405 or an oversized body
		var fe *fiber.Error
		if errors.As(err, &fe) {
			return utils.ErrorResponse(c, fe.Code, fe.Message)
		}

		log.Error("Unhandled request error",
			logger.String("method", c.Method()),
			logger.String("path", c.OriginalURL()),
			logger.Error(err),
		)
		return utils.ErrorResponse(c, fiber.StatusInternalServerError, err.Error())
	}
}

// UnknownEndpoint answers every request that matched no route
func UnknownEndpoint(c *fiber.Ctx) error {
	return types.NewUnmatched()
}
