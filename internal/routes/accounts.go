package routes

import (
	"github.com/gofiber/fiber/v2"

	"github.com/harambee-token/harambee/internal/account"
)

// RegisterAccountRoutes wires account-related endpoints.
func RegisterAccountRoutes(r fiber.Router, h *account.Handler) {
	r.Post("/accounts", h.Create)
	r.Get("/accounts/:id", h.Get)
	r.Get("/accounts/:id/balance", h.Balance)
}
