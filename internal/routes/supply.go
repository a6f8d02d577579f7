package routes

import (
	"net/http"

	"github.com/gofiber/fiber/v2"

	"github.com/harambee-token/harambee/internal/issuance"
	"github.com/harambee-token/harambee/internal/transfer"
)

// RegisterSupplyReadRoutes wires the public circulating-supply view.
func RegisterSupplyReadRoutes(r fiber.Router, svc *transfer.Service) {
	r.Get("/supply", func(c *fiber.Ctx) error {
		supply, err := svc.TotalSupply(c.UserContext())
		if err != nil {
			return fiber.NewError(http.StatusInternalServerError, err.Error())
		}
		return c.JSON(fiber.Map{"total_supply": supply})
	})
}

// RegisterSupplyAdminRoutes wires mint and burn endpoints.
func RegisterSupplyAdminRoutes(r fiber.Router, h *issuance.Handler) {
	r.Post("/supply/mint", h.Mint)
	r.Post("/supply/burn", h.Burn)
}
