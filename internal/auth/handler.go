package auth

import (
	"errors"
	"net/http"

	"github.com/gofiber/fiber/v2"
)

// Handler exposes the admin login endpoint.
type Handler struct {
	service *Service
}

// NewHandler constructs an auth handler.
func NewHandler(service *Service) *Handler {
	return &Handler{service: service}
}

type loginRequest struct {
	PIN string `json:"pin"`
}

// Login exchanges the admin PIN for a session token.
func (h *Handler) Login(c *fiber.Ctx) error {
	var req loginRequest
	if err := c.BodyParser(&req); err != nil {
		return fiber.NewError(http.StatusBadRequest, err.Error())
	}

	token, err := h.service.Login(c.UserContext(), req.PIN)
	if err != nil {
		if errors.Is(err, ErrBadCredentials) {
			return fiber.NewError(http.StatusUnauthorized, "bad credentials")
		}
		return fiber.NewError(http.StatusInternalServerError, err.Error())
	}

	return c.JSON(fiber.Map{"token": token})
}
