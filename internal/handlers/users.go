package handlers

import (
	"github.com/gofiber/fiber/v2"
	"github.com/localnerve/jam-build-bookmarks/internal/middleware"
	"github.com/localnerve/jam-build-bookmarks/internal/models"
	"github.com/localnerve/jam-build-bookmarks/internal/services"
	"gorm.io/gorm"
)

// UserHandler serves /api/users
type UserHandler struct {
	DB *gorm.DB
}

// ListUsers handles GET /api/users
// @Summary List users
// @Tags Users
// @Produce json
// @Success 200 {array} models.UserView
// @Router /users [get]
func (h *UserHandler) ListUsers(c *fiber.Ctx) error {
	users, err := services.ListUsers(session(h.DB, c))
	if err != nil {
		return err
	}
	return c.Status(fiber.StatusOK).JSON(users)
}

// GetUser handles GET /api/users/:id
// @Summary Get a user
// @Tags Users
// @Produce json
// @Param id path string true "User ID"
// @Success 200 {object} models.UserView
// @Failure 400 {object} utils.ErrorResponseStruct
// @Failure 404 {object} utils.ErrorResponseStruct
// @Router /users/{id} [get]
func (h *UserHandler) GetUser(c *fiber.Ctx) error {
	id, err := parseID(c)
	if err != nil {
		return err
	}

	user, err := services.GetUser(session(h.DB, c), id)
	if err != nil {
		return err
	}
	return c.Status(fiber.StatusOK).JSON(user)
}

// CreateUser handles POST /api/users
// @Summary Register a user
// @Tags Users
// @Accept json
// @Produce json
// @Param body body models.UserInput true "User"
// @Success 201 {object} models.UserView
// @Failure 400 {object} utils.ErrorResponseStruct
// @Router /users [post]
func (h *UserHandler) CreateUser(c *fiber.Ctx) error {
	var input models.UserInput
	if err := parseBody(c, &input); err != nil {
		return err
	}

	user, err := services.CreateUser(session(h.DB, c), input)
	if err != nil {
		return err
	}
	return c.Status(fiber.StatusCreated).JSON(user)
}

// DeleteUser handles DELETE /api/users/:id
// @Summary Delete a user
// @Description Only the user may delete their account. Their bookmarks and likes go with it.
// @Tags Users
// @Param id path string true "User ID"
// @Success 204
// @Failure 400 {object} utils.ErrorResponseStruct
// @Failure 401 {object} utils.ErrorResponseStruct
// @Failure 403 {object} utils.ErrorResponseStruct
// @Failure 404 {object} utils.ErrorResponseStruct
// @Security BearerAuth
// @Router /users/{id} [delete]
func (h *UserHandler) DeleteUser(c *fiber.Ctx) error {
	claims, err := middleware.Claims(c)
	if err != nil {
		return err
	}

	id, err := parseID(c)
	if err != nil {
		return err
	}

	if err := services.DeleteUser(session(h.DB, c), claims, id); err != nil {
		return err
	}
	return c.SendStatus(fiber.StatusNoContent)
}
