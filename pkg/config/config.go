package config

import (
	"log"
	"time"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"
)

// Config holds application configuration.
type Config struct {
	DatabaseURL   string
	Port          string
	IsProduction  bool
	EnableDBCheck bool

	JWTSecret         string
	JWTExpiryDuration time.Duration
	JWTIssuer         string

	// DefaultWarehouse stamps goods receipts that name no warehouse.
	DefaultWarehouse string

	// Ledger mirror accounts for supplier payments. Both must be set to
	// enable mirroring; with either empty, payments only move the paid
	// counter on the purchase.
	PaymentCashAccountID string `mapstructure:"PAYMENT_CASH_ACCOUNT_ID"`
	PaymentAPAccountID   string `mapstructure:"PAYMENT_AP_ACCOUNT_ID"`

	// Rate limiting, e.g. "100-M" for 100 requests per minute per IP.
	RateLimit string `mapstructure:"RATE_LIMIT"`
}

// LoadConfig loads configuration from environment variables and .env file if present.
func LoadConfig() (*Config, error) {
	// Attempt to load .env file, ignore error if it doesn't exist
	_ = godotenv.Load()

	viper.SetDefault("PGSQL_URL", "")
	viper.SetDefault("PORT", "8080")
	viper.SetDefault("IS_PRODUCTION", false)
	viper.SetDefault("ENABLE_DB_CHECK", false)
	viper.SetDefault("JWT_SECRET", "a-very-secret-key-should-be-longer-and-random")
	viper.SetDefault("JWT_EXPIRY_DURATION", "1h")
	viper.SetDefault("JWT_ISSUER", "modatasarim-backend")
	viper.SetDefault("DEFAULT_WAREHOUSE", "MAIN")
	viper.SetDefault("PAYMENT_CASH_ACCOUNT_ID", "")
	viper.SetDefault("PAYMENT_AP_ACCOUNT_ID", "")
	viper.SetDefault("RATE_LIMIT", "100-M")

	viper.AutomaticEnv()

	cfg := &Config{}

	cfg.DatabaseURL = viper.GetString("PGSQL_URL")
	if cfg.DatabaseURL == "" {
		log.Println("Warning: PGSQL_URL environment variable not set.")
	}

	cfg.Port = viper.GetString("PORT")
	cfg.IsProduction = viper.GetBool("IS_PRODUCTION")
	cfg.EnableDBCheck = viper.GetBool("ENABLE_DB_CHECK")

	cfg.JWTSecret = viper.GetString("JWT_SECRET")
	if cfg.JWTSecret == "a-very-secret-key-should-be-longer-and-random" {
		log.Println("Warning: JWT_SECRET environment variable not set. Using default insecure key.")
	}

	jwtExpiryStr := viper.GetString("JWT_EXPIRY_DURATION")
	jwtExpiryDuration, err := time.ParseDuration(jwtExpiryStr)
	if err != nil {
		jwtExpiryDuration = time.Hour
		log.Printf("Warning: Invalid value for JWT_EXPIRY_DURATION ('%s'). Defaulting to %s.\n", jwtExpiryStr, jwtExpiryDuration.String())
	}
	cfg.JWTExpiryDuration = jwtExpiryDuration
	cfg.JWTIssuer = viper.GetString("JWT_ISSUER")

	cfg.DefaultWarehouse = viper.GetString("DEFAULT_WAREHOUSE")
	cfg.PaymentCashAccountID = viper.GetString("PAYMENT_CASH_ACCOUNT_ID")
	cfg.PaymentAPAccountID = viper.GetString("PAYMENT_AP_ACCOUNT_ID")
	cfg.RateLimit = viper.GetString("RATE_LIMIT")

	if (cfg.PaymentCashAccountID == "") != (cfg.PaymentAPAccountID == "") {
		log.Println("Warning: only one of PAYMENT_CASH_ACCOUNT_ID / PAYMENT_AP_ACCOUNT_ID is set. Payment ledger mirroring stays disabled.")
	}

	return cfg, nil
}
