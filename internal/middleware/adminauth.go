package middleware

import (
	"net/http"
	"strings"

	"github.com/gofiber/fiber/v2"

	"github.com/harambee-token/harambee/internal/auth"
)

// AdminAuth returns a middleware that only admits requests carrying a valid
// admin session token. Policy setters and supply issuance sit behind it.
func AdminAuth(svc *auth.Service) fiber.Handler {
	return func(c *fiber.Ctx) error {
		authz := c.Get(fiber.HeaderAuthorization)
		if !strings.HasPrefix(strings.ToLower(authz), "bearer ") {
			return fiber.NewError(http.StatusUnauthorized, "missing bearer token")
		}
		token := strings.TrimSpace(authz[len("Bearer "):])
		if err := svc.Verify(token); err != nil {
			return fiber.NewError(http.StatusUnauthorized, "invalid token")
		}
		return c.Next()
	}
}
