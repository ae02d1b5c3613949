package middleware

import (
	"strings"

	"github.com/gofiber/fiber/v2"
	"github.com/localnerve/jam-build-bookmarks/internal/services"
	"github.com/localnerve/jam-build-bookmarks/internal/types"
)

const claimsKey = "claims"

// tokenBody is the legacy way of sending the token, as a field of the JSON body
type tokenBody struct {
	Token string `json:"token"`
}

// TokenExtractor reads the raw token from the Authorization header, falling back
// to a "token" field in a JSON body. An absent token is the empty string.
func TokenExtractor(c *fiber.Ctx) string {
	auth := c.Get(fiber.HeaderAuthorization)
	if len(auth) > 7 && strings.EqualFold(auth[:7], "bearer ") {
		return strings.TrimSpace(auth[7:])
	}

	if len(c.Body()) > 0 && strings.HasPrefix(string(c.Request().Header.ContentType()), fiber.MIMEApplicationJSON) {
		var body tokenBody
		if err := c.BodyParser(&body); err == nil {
			return body.Token
		}
	}
	return ""
}

// RequireToken rejects requests without a valid token and stores the verified
// claims on the request for the handlers.
func RequireToken(auth *services.Authenticator) fiber.Handler {
	return func(c *fiber.Ctx) error {
		claims, err := auth.VerifyToken(TokenExtractor(c))
		if err != nil {
			return err
		}
		c.Locals(claimsKey, claims)
		return c.Next()
	}
}

// Claims returns the verified claims stored by RequireToken
func Claims(c *fiber.Ctx) (*services.Claims, error) {
	claims, ok := c.Locals(claimsKey).(*services.Claims)
	if !ok || claims == nil {
		return nil, types.NewInvalidToken()
	}
	return claims, nil
}
