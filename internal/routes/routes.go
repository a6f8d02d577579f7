package routes

import (
	"context"
	"fmt"
	"log/slog"
	"net/http"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/recover"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/redis/go-redis/v9"

	"github.com/harambee-token/harambee/internal/account"
	"github.com/harambee-token/harambee/internal/auth"
	"github.com/harambee-token/harambee/internal/config"
	"github.com/harambee-token/harambee/internal/issuance"
	"github.com/harambee-token/harambee/internal/ledger"
	"github.com/harambee-token/harambee/internal/middleware"
	"github.com/harambee-token/harambee/internal/notification"
	"github.com/harambee-token/harambee/internal/policy"
	"github.com/harambee-token/harambee/internal/transfer"
)

// Deps aggregates shared dependencies required to wire routes.
type Deps struct {
	Cfg    config.Config
	DB     *pgxpool.Pool
	Cache  *redis.Client
	Logger *slog.Logger
}

// Setup configures middlewares and all application routes.
func Setup(app *fiber.App, d Deps) error {
	// Enforce DB/Redis presence outside of dev, even though config also checks.
	if !d.Cfg.IsDev() {
		if d.DB == nil {
			return fmt.Errorf("database is required when APP_ENV=%s", d.Cfg.AppEnv)
		}
		if d.Cache == nil {
			return fmt.Errorf("redis is required when APP_ENV=%s", d.Cfg.AppEnv)
		}
	}

	// Middlewares
	app.Use(recover.New())
	app.Use(middleware.RequestID())
	app.Use(middleware.Audit(d.Logger))
	if d.Cache != nil {
		app.Use(middleware.Idempotency(d.Cache, d.Cfg.IdempotencyTTL, d.Logger))
	}

	// Health
	RegisterHealthRoutes(app, d)

	// Backends
	var ledgerBackend ledger.Ledger
	if d.DB != nil {
		ledgerBackend = ledger.NewPostgresLedger(d.DB)
	} else {
		ledgerBackend = ledger.NewInMemory()
	}

	initialPolicy := policy.Snapshot{
		TradingEnabled:  d.Cfg.TradingEnabled,
		MaxTxAmount:     d.Cfg.MaxTxAmount,
		MaxWalletAmount: d.Cfg.MaxWalletAmount,
		TransferTaxBps:  d.Cfg.TransferTaxBps,
		WealthShareBps:  d.Cfg.WealthShareBps,
		CharityShareBps: d.Cfg.CharityShareBps,
		WealthFund:      d.Cfg.WealthFund,
		CharityFund:     d.Cfg.CharityFund,
	}
	if err := policy.Validate(initialPolicy); err != nil {
		return fmt.Errorf("boot policy: %w", err)
	}

	var policyRepo policy.Repository
	if d.DB != nil {
		policyRepo = policy.NewPostgresRepository(d.DB, initialPolicy)
	} else {
		policyRepo = policy.NewMemoryRepository(initialPolicy)
	}

	var accountRepo account.Repository
	if d.DB != nil {
		accountRepo = account.NewPostgresRepository(d.DB)
	} else {
		accountRepo = account.NewMemoryRepository()
	}

	// Services and handlers
	notifier := notification.NewLoggerNotifier(d.Logger)
	policySvc := policy.NewService(policyRepo, notifier)
	accountSvc := account.NewService(accountRepo, ledgerBackend)
	transferSvc := transfer.NewService(ledgerBackend, policySvc, notifier)
	issuanceSvc := issuance.NewService(ledgerBackend, notifier, d.Cfg.TreasuryAccount, d.Cfg.TotalSupply)
	authSvc := auth.NewService([]byte(d.Cfg.AdminPINHash), []byte(d.Cfg.JWTSecret), d.Cfg.AdminTokenTTL)

	bootCtx := context.Background()
	for _, code := range []string{d.Cfg.TreasuryAccount, d.Cfg.WealthFund, d.Cfg.CharityFund} {
		if err := ledgerBackend.EnsureAccount(bootCtx, code); err != nil {
			return fmt.Errorf("ensure account %s: %w", code, err)
		}
	}
	// Fund and treasury accounts sit outside the tax and limit rules.
	for _, code := range []string{d.Cfg.TreasuryAccount, d.Cfg.WealthFund, d.Cfg.CharityFund} {
		if err := policyRepo.SaveFlags(bootCtx, code, policy.Flags{FeeExempt: true, LimitExempt: true}); err != nil {
			return fmt.Errorf("seed flags %s: %w", code, err)
		}
	}
	if err := issuanceSvc.EnsureGenesis(bootCtx); err != nil {
		return fmt.Errorf("genesis mint: %w", err)
	}

	transferHandler := transfer.NewHandler(transferSvc, accountSvc)
	accountHandler := account.NewHandler(accountSvc)
	policyHandler := policy.NewHandler(policySvc)
	issuanceHandler := issuance.NewHandler(issuanceSvc)
	authHandler := auth.NewHandler(authSvc)

	// API routes
	api := app.Group("/api/v1")
	api.Get("/ping", func(c *fiber.Ctx) error {
		reqID, _ := c.Locals("X-Request-ID").(string)
		return c.Status(http.StatusOK).JSON(fiber.Map{
			"status":     "ok",
			"request_id": reqID,
			"timestamp":  time.Now().UTC().Format(time.RFC3339Nano),
		})
	})

	// Public routes
	RegisterAuthRoutes(api, authHandler, middleware.LoginRateLimit(d.Cache, 5))
	RegisterAccountRoutes(api, accountHandler)
	RegisterTransferRoutes(api, transferHandler)
	RegisterPolicyReadRoutes(api, policyHandler)
	RegisterSupplyReadRoutes(api, transferSvc)

	// Admin routes
	admin := api.Group("", middleware.AdminAuth(authSvc))
	RegisterPolicyAdminRoutes(admin, policyHandler)
	RegisterSupplyAdminRoutes(admin, issuanceHandler)

	return nil
}
