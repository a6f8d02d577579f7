package issuance

import (
	"context"
	"errors"
	"net/http"

	"github.com/gofiber/fiber/v2"

	"github.com/harambee-token/harambee/internal/ledger"
)

// Handler exposes supply issuance endpoints.
type Handler struct {
	service *Service
}

// NewHandler constructs an issuance handler.
func NewHandler(service *Service) *Handler {
	return &Handler{service: service}
}

type supplyRequest struct {
	Account    string `json:"account"`
	Amount     uint64 `json:"amount"`
	ClientTxID string `json:"client_tx_id"`
}

// Mint credits new supply to a ledger account.
func (h *Handler) Mint(c *fiber.Ctx) error {
	return h.apply(c, h.service.Mint)
}

// Burn removes supply from a ledger account.
func (h *Handler) Burn(c *fiber.Ctx) error {
	return h.apply(c, h.service.Burn)
}

func (h *Handler) apply(c *fiber.Ctx, op func(context.Context, SupplyInput) (ledger.SupplyResult, error)) error {
	var req supplyRequest
	if err := c.BodyParser(&req); err != nil {
		return fiber.NewError(http.StatusBadRequest, err.Error())
	}

	res, err := op(c.UserContext(), SupplyInput{
		Account:    req.Account,
		Amount:     req.Amount,
		ClientTxID: req.ClientTxID,
	})
	if err != nil {
		switch {
		case errors.Is(err, ErrInvalidAccount):
			return fiber.NewError(http.StatusBadRequest, "invalid account")
		case errors.Is(err, ledger.ErrInsufficientFunds):
			return fiber.NewError(http.StatusBadRequest, "insufficient funds")
		case errors.Is(err, ledger.ErrOverflow):
			return fiber.NewError(http.StatusUnprocessableEntity, "balance overflow")
		case errors.Is(err, ledger.ErrDuplicateTransaction):
			return fiber.NewError(http.StatusConflict, "duplicate transaction")
		default:
			return fiber.NewError(http.StatusInternalServerError, err.Error())
		}
	}

	return c.Status(http.StatusCreated).JSON(fiber.Map{
		"transaction_id": res.TransactionID,
		"balance":        res.Balance,
		"total_supply":   res.TotalSupply,
	})
}
