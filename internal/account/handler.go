package account

import (
	"errors"
	"net/http"

	"github.com/gofiber/fiber/v2"
)

// Handler exposes account endpoints.
type Handler struct {
	service *Service
}

// NewHandler constructs an account handler.
func NewHandler(service *Service) *Handler {
	return &Handler{service: service}
}

type createRequest struct {
	HolderID string `json:"holder_id"`
}

// Create opens a new account.
func (h *Handler) Create(c *fiber.Ctx) error {
	var req createRequest
	if err := c.BodyParser(&req); err != nil {
		return fiber.NewError(http.StatusBadRequest, err.Error())
	}

	acct, err := h.service.Create(c.UserContext(), CreateInput{HolderID: req.HolderID})
	if err != nil {
		return fiber.NewError(http.StatusBadRequest, err.Error())
	}

	return c.Status(http.StatusCreated).JSON(fiber.Map{
		"id":         acct.ID,
		"holder_id":  acct.HolderID,
		"code":       acct.Code,
		"status":     acct.Status,
		"created_at": acct.CreatedAt,
	})
}

// Get returns account metadata.
func (h *Handler) Get(c *fiber.Ctx) error {
	acct, err := h.service.Get(c.UserContext(), c.Params("id"))
	if err != nil {
		if errors.Is(err, ErrNotFound) {
			return fiber.NewError(http.StatusNotFound, "account not found")
		}
		return fiber.NewError(http.StatusBadRequest, err.Error())
	}
	return c.JSON(fiber.Map{
		"id":         acct.ID,
		"holder_id":  acct.HolderID,
		"code":       acct.Code,
		"status":     acct.Status,
		"created_at": acct.CreatedAt,
	})
}

// Balance returns the committed ledger balance.
func (h *Handler) Balance(c *fiber.Ctx) error {
	balance, err := h.service.Balance(c.UserContext(), c.Params("id"))
	if err != nil {
		if errors.Is(err, ErrNotFound) {
			return fiber.NewError(http.StatusNotFound, "account not found")
		}
		return fiber.NewError(http.StatusBadRequest, err.Error())
	}
	return c.JSON(fiber.Map{
		"account_id": balance.AccountID,
		"amount":     balance.Amount,
		"as_of":      balance.AsOf,
	})
}
