package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"
)

const (
	defaultAppName        = "Harambee"
	defaultAppEnv         = "development"
	defaultPort           = "8080"
	defaultLogLevel       = "info"
	defaultShutdownDelay  = 10 * time.Second
	defaultIdempotencyTTL = 24 * time.Hour
	defaultAdminTokenTTL  = 1 * time.Hour

	defaultTotalSupply    = uint64(1_000_000_000_000)
	defaultTreasury       = "fund:treasury"
	defaultWealthFund     = "fund:wealth"
	defaultCharityFund    = "fund:charity"
	defaultTransferTaxBps = 300
	defaultWealthShare    = 6000
	defaultCharityShare   = 4000
)

// Config captures application runtime configuration loaded from environment variables.
type Config struct {
	AppName        string
	AppEnv         string
	Port           string
	LogLevel       string
	DatabaseURL    string
	RedisURL       string
	ShutdownPeriod time.Duration
	IdempotencyTTL time.Duration

	// Token and initial policy settings. The policy values are only the
	// boot-time defaults; the admin API owns them afterwards.
	TokenName       string
	TokenSymbol     string
	TotalSupply     uint64
	TreasuryAccount string
	WealthFund      string
	CharityFund     string
	TradingEnabled  bool
	MaxTxAmount     uint64
	MaxWalletAmount uint64
	TransferTaxBps  uint16
	WealthShareBps  uint16
	CharityShareBps uint16

	AdminPINHash  string
	JWTSecret     string
	AdminTokenTTL time.Duration
}

// Load reads configuration values from the environment and populates a Config instance.
func Load() (Config, error) {
	cfg := Config{
		AppName:        getEnv("APP_NAME", defaultAppName),
		AppEnv:         getEnv("APP_ENV", defaultAppEnv),
		Port:           getEnv("PORT", defaultPort),
		LogLevel:       strings.ToLower(getEnv("LOG_LEVEL", defaultLogLevel)),
		DatabaseURL:    os.Getenv("DATABASE_URL"),
		RedisURL:       os.Getenv("REDIS_URL"),
		ShutdownPeriod: defaultShutdownDelay,
		IdempotencyTTL: defaultIdempotencyTTL,

		TokenName:       getEnv("TOKEN_NAME", "Harambee Token"),
		TokenSymbol:     getEnv("TOKEN_SYMBOL", "HRB"),
		TreasuryAccount: getEnv("TREASURY_ACCOUNT", defaultTreasury),
		WealthFund:      getEnv("WEALTH_FUND", defaultWealthFund),
		CharityFund:     getEnv("CHARITY_FUND", defaultCharityFund),
		TradingEnabled:  getEnv("TRADING_ENABLED", "true") == "true",

		AdminPINHash:  os.Getenv("ADMIN_PIN_HASH"),
		JWTSecret:     getEnv("JWT_SECRET", "dev-secret"),
		AdminTokenTTL: defaultAdminTokenTTL,
	}

	if v := os.Getenv("SHUTDOWN_TIMEOUT_SECONDS"); v != "" {
		seconds, err := strconv.Atoi(v)
		if err != nil {
			return Config{}, fmt.Errorf("invalid SHUTDOWN_TIMEOUT_SECONDS: %w", err)
		}
		cfg.ShutdownPeriod = time.Duration(seconds) * time.Second
	} else if v := os.Getenv("SHUTDOWN_TIMEOUT"); v != "" {
		d, err := time.ParseDuration(v)
		if err != nil {
			return Config{}, fmt.Errorf("invalid SHUTDOWN_TIMEOUT: %w", err)
		}
		cfg.ShutdownPeriod = d
	}

	if v := os.Getenv("IDEMPOTENCY_TTL_SECONDS"); v != "" {
		seconds, err := strconv.Atoi(v)
		if err != nil {
			return Config{}, fmt.Errorf("invalid IDEMPOTENCY_TTL_SECONDS: %w", err)
		}
		cfg.IdempotencyTTL = time.Duration(seconds) * time.Second
	} else if v := os.Getenv("IDEMPOTENCY_TTL"); v != "" {
		d, err := time.ParseDuration(v)
		if err != nil {
			return Config{}, fmt.Errorf("invalid IDEMPOTENCY_TTL: %w", err)
		}
		cfg.IdempotencyTTL = d
	}

	var err error
	if cfg.TotalSupply, err = getEnvUint64("TOTAL_SUPPLY", defaultTotalSupply); err != nil {
		return Config{}, err
	}
	if cfg.MaxTxAmount, err = getEnvUint64("MAX_TX_AMOUNT", 0); err != nil {
		return Config{}, err
	}
	if cfg.MaxWalletAmount, err = getEnvUint64("MAX_WALLET_AMOUNT", 0); err != nil {
		return Config{}, err
	}
	if cfg.TransferTaxBps, err = getEnvUint16("TRANSFER_TAX_BPS", defaultTransferTaxBps); err != nil {
		return Config{}, err
	}
	if cfg.WealthShareBps, err = getEnvUint16("WEALTH_SHARE_BPS", defaultWealthShare); err != nil {
		return Config{}, err
	}
	if cfg.CharityShareBps, err = getEnvUint16("CHARITY_SHARE_BPS", defaultCharityShare); err != nil {
		return Config{}, err
	}

	if !isDev(cfg.AppEnv) {
		if cfg.DatabaseURL == "" {
			return Config{}, fmt.Errorf("DATABASE_URL must be set")
		}
		if cfg.RedisURL == "" {
			return Config{}, fmt.Errorf("REDIS_URL must be set")
		}
		if cfg.AdminPINHash == "" {
			return Config{}, fmt.Errorf("ADMIN_PIN_HASH must be set")
		}
	}

	return cfg, nil
}

// Address returns the listen address in the format Fiber expects.
func (c Config) Address() string {
	if strings.HasPrefix(c.Port, ":") {
		return c.Port
	}
	return fmt.Sprintf(":%s", c.Port)
}

// IsDev reports whether the configured environment is a development one.
func (c Config) IsDev() bool {
	return isDev(c.AppEnv)
}

func isDev(env string) bool {
	switch strings.ToLower(env) {
	case "dev", "development", "local":
		return true
	default:
		return false
	}
}

func getEnv(key, fallback string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return fallback
}

func getEnvUint64(key string, fallback uint64) (uint64, error) {
	v := os.Getenv(key)
	if v == "" {
		return fallback, nil
	}
	parsed, err := strconv.ParseUint(v, 10, 64)
	if err != nil {
		return 0, fmt.Errorf("invalid %s: %w", key, err)
	}
	return parsed, nil
}

func getEnvUint16(key string, fallback uint16) (uint16, error) {
	v := os.Getenv(key)
	if v == "" {
		return fallback, nil
	}
	parsed, err := strconv.ParseUint(v, 10, 16)
	if err != nil {
		return 0, fmt.Errorf("invalid %s: %w", key, err)
	}
	return uint16(parsed), nil
}
