package routes

import (
	"github.com/gofiber/fiber/v2"

	"github.com/harambee-token/harambee/internal/policy"
)

// RegisterPolicyReadRoutes wires the public policy view.
func RegisterPolicyReadRoutes(r fiber.Router, h *policy.Handler) {
	r.Get("/policy", h.Get)
}

// RegisterPolicyAdminRoutes wires the policy setters.
func RegisterPolicyAdminRoutes(r fiber.Router, h *policy.Handler) {
	r.Put("/policy/trading", h.SetTrading)
	r.Put("/policy/limits", h.SetLimits)
	r.Put("/policy/tax", h.SetTax)
	r.Put("/policy/funds", h.SetFunds)
	r.Put("/policy/accounts/:code/flags", h.SetFlags)
}
