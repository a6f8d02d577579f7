package policy

import (
	"errors"
	"net/http"

	"github.com/gofiber/fiber/v2"
)

// Handler exposes policy read and admin endpoints.
type Handler struct {
	service *Service
}

// NewHandler constructs a policy handler.
func NewHandler(service *Service) *Handler {
	return &Handler{service: service}
}

// Get returns the current policy snapshot.
func (h *Handler) Get(c *fiber.Ctx) error {
	snap, err := h.service.Snapshot(c.UserContext())
	if err != nil {
		return fiber.NewError(http.StatusInternalServerError, err.Error())
	}
	return c.JSON(fiber.Map{
		"trading_enabled":   snap.TradingEnabled,
		"max_tx_amount":     snap.MaxTxAmount,
		"max_wallet_amount": snap.MaxWalletAmount,
		"transfer_tax_bps":  snap.TransferTaxBps,
		"wealth_share_bps":  snap.WealthShareBps,
		"charity_share_bps": snap.CharityShareBps,
		"wealth_fund":       snap.WealthFund,
		"charity_fund":      snap.CharityFund,
	})
}

type tradingRequest struct {
	Enabled bool `json:"enabled"`
}

// SetTrading opens or closes the trading gate.
func (h *Handler) SetTrading(c *fiber.Ctx) error {
	var req tradingRequest
	if err := c.BodyParser(&req); err != nil {
		return fiber.NewError(http.StatusBadRequest, err.Error())
	}
	if err := h.service.SetTradingEnabled(c.UserContext(), req.Enabled); err != nil {
		return policyError(err)
	}
	return c.SendStatus(http.StatusNoContent)
}

type limitsRequest struct {
	MaxTxAmount     uint64 `json:"max_tx_amount"`
	MaxWalletAmount uint64 `json:"max_wallet_amount"`
}

// SetLimits updates the transaction and wallet ceilings. Zero disables a
// ceiling.
func (h *Handler) SetLimits(c *fiber.Ctx) error {
	var req limitsRequest
	if err := c.BodyParser(&req); err != nil {
		return fiber.NewError(http.StatusBadRequest, err.Error())
	}
	if err := h.service.SetMaxTxAmount(c.UserContext(), req.MaxTxAmount); err != nil {
		return policyError(err)
	}
	if err := h.service.SetMaxWalletAmount(c.UserContext(), req.MaxWalletAmount); err != nil {
		return policyError(err)
	}
	return c.SendStatus(http.StatusNoContent)
}

type taxRequest struct {
	TransferTaxBps  uint16 `json:"transfer_tax_bps"`
	WealthShareBps  uint16 `json:"wealth_share_bps"`
	CharityShareBps uint16 `json:"charity_share_bps"`
}

// SetTax updates the tax rate and fund split.
func (h *Handler) SetTax(c *fiber.Ctx) error {
	var req taxRequest
	if err := c.BodyParser(&req); err != nil {
		return fiber.NewError(http.StatusBadRequest, err.Error())
	}
	if err := h.service.SetTransferTax(c.UserContext(), req.TransferTaxBps, req.WealthShareBps, req.CharityShareBps); err != nil {
		return policyError(err)
	}
	return c.SendStatus(http.StatusNoContent)
}

type fundsRequest struct {
	WealthFund  string `json:"wealth_fund"`
	CharityFund string `json:"charity_fund"`
}

// SetFunds redirects the tax cuts to new fund accounts.
func (h *Handler) SetFunds(c *fiber.Ctx) error {
	var req fundsRequest
	if err := c.BodyParser(&req); err != nil {
		return fiber.NewError(http.StatusBadRequest, err.Error())
	}
	if err := h.service.SetFunds(c.UserContext(), req.WealthFund, req.CharityFund); err != nil {
		return policyError(err)
	}
	return c.SendStatus(http.StatusNoContent)
}

type flagsRequest struct {
	FeeExempt   bool `json:"fee_exempt"`
	LimitExempt bool `json:"limit_exempt"`
}

// SetFlags updates the exemption flags for a ledger account code.
func (h *Handler) SetFlags(c *fiber.Ctx) error {
	var req flagsRequest
	if err := c.BodyParser(&req); err != nil {
		return fiber.NewError(http.StatusBadRequest, err.Error())
	}
	code := c.Params("code")
	if code == "" {
		return fiber.NewError(http.StatusBadRequest, "account code required")
	}
	if err := h.service.SetAccountFlags(c.UserContext(), code, Flags{
		FeeExempt:   req.FeeExempt,
		LimitExempt: req.LimitExempt,
	}); err != nil {
		return policyError(err)
	}
	return c.SendStatus(http.StatusNoContent)
}

func policyError(err error) error {
	switch {
	case errors.Is(err, ErrTaxTooHigh), errors.Is(err, ErrBadShareSplit), errors.Is(err, ErrEmptyFund):
		return fiber.NewError(http.StatusUnprocessableEntity, err.Error())
	default:
		return fiber.NewError(http.StatusInternalServerError, err.Error())
	}
}
