package routes

import (
	"github.com/gofiber/fiber/v2"

	"github.com/harambee-token/harambee/internal/auth"
)

// RegisterAuthRoutes wires the admin login endpoint.
func RegisterAuthRoutes(r fiber.Router, h *auth.Handler, rateLimiter fiber.Handler) {
	group := r.Group("/auth")
	if rateLimiter != nil {
		group.Post("/login", rateLimiter, h.Login)
	} else {
		group.Post("/login", h.Login)
	}
}
