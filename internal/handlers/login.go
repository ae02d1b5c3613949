package handlers

import (
	"github.com/gofiber/fiber/v2"
	"github.com/localnerve/jam-build-bookmarks/internal/services"
	"gorm.io/gorm"
)

// LoginInput is the login request body
type LoginInput struct {
	Username string `json:"username"`
	Password string `json:"password"`
}

// LoginHandler serves /api/login
type LoginHandler struct {
	DB   *gorm.DB
	Auth *services.Authenticator
}

// Login handles POST /api/login
// @Summary Log in
// @Description Exchange a username and password for a bearer token
// @Tags Login
// @Accept json
// @Produce json
// @Param body body LoginInput true "Credentials"
// @Success 200 {object} services.LoginResult
// @Failure 401 {object} utils.ErrorResponseStruct
// @Router /login [post]
func (h *LoginHandler) Login(c *fiber.Ctx) error {
	var input LoginInput
	if err := parseBody(c, &input); err != nil {
		return err
	}

	result, err := h.Auth.Login(session(h.DB, c), input.Username, input.Password)
	if err != nil {
		return err
	}
	return c.Status(fiber.StatusOK).JSON(result)
}
