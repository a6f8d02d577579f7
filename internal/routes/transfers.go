package routes

import (
	"github.com/gofiber/fiber/v2"

	"github.com/harambee-token/harambee/internal/transfer"
)

// RegisterTransferRoutes wires transfer endpoints.
func RegisterTransferRoutes(r fiber.Router, h *transfer.Handler) {
	r.Post("/transfers", h.Submit)
}
