package transfer

import (
	"errors"
	"net/http"

	"github.com/gofiber/fiber/v2"

	"github.com/harambee-token/harambee/internal/account"
	"github.com/harambee-token/harambee/internal/guard"
	"github.com/harambee-token/harambee/internal/ledger"
)

// Handler exposes transfer endpoints.
type Handler struct {
	service  *Service
	accounts *account.Service
}

// NewHandler constructs a transfer handler.
func NewHandler(service *Service, accounts *account.Service) *Handler {
	return &Handler{service: service, accounts: accounts}
}

type transferRequest struct {
	FromAccountID string `json:"from_account_id"`
	ToAccountID   string `json:"to_account_id"`
	Amount        uint64 `json:"amount"`
	ClientTxID    string `json:"client_tx_id"`
}

// Submit processes an account-to-account transfer.
func (h *Handler) Submit(c *fiber.Ctx) error {
	var req transferRequest
	if err := c.BodyParser(&req); err != nil {
		return fiber.NewError(http.StatusBadRequest, err.Error())
	}

	from, err := h.accounts.Get(c.UserContext(), req.FromAccountID)
	if err != nil {
		return accountError(err)
	}
	to, err := h.accounts.Get(c.UserContext(), req.ToAccountID)
	if err != nil {
		return accountError(err)
	}

	res, err := h.service.Submit(c.UserContext(), TransferInput{
		From:       from.Code,
		To:         to.Code,
		Amount:     req.Amount,
		ClientTxID: req.ClientTxID,
	})
	if err != nil {
		switch {
		case errors.Is(err, guard.ErrTradingDisabled):
			return fiber.NewError(http.StatusForbidden, "trading disabled")
		case errors.Is(err, guard.ErrMaxTxExceeded):
			return fiber.NewError(http.StatusUnprocessableEntity, "max transaction amount exceeded")
		case errors.Is(err, guard.ErrMaxWalletExceeded):
			return fiber.NewError(http.StatusUnprocessableEntity, "max wallet amount exceeded")
		case errors.Is(err, ledger.ErrInsufficientFunds):
			return fiber.NewError(http.StatusBadRequest, "insufficient funds")
		case errors.Is(err, ledger.ErrOverflow):
			return fiber.NewError(http.StatusUnprocessableEntity, "balance overflow")
		case errors.Is(err, ledger.ErrDuplicateTransaction):
			return fiber.NewError(http.StatusConflict, "duplicate transaction")
		case errors.Is(err, ErrInvalidAccount):
			return fiber.NewError(http.StatusBadRequest, "invalid account")
		default:
			return fiber.NewError(http.StatusInternalServerError, err.Error())
		}
	}

	return c.Status(http.StatusCreated).JSON(fiber.Map{
		"transaction_id": res.TransactionID,
		"gross":          res.Gross,
		"principal":      res.Principal,
		"wealth_cut":     res.WealthCut,
		"charity_cut":    res.CharityCut,
		"from_balance":   res.FromBalance,
		"completed_at":   res.CompletedAt,
	})
}

func accountError(err error) error {
	if errors.Is(err, account.ErrNotFound) {
		return fiber.NewError(http.StatusNotFound, "account not found")
	}
	return fiber.NewError(http.StatusBadRequest, err.Error())
}
