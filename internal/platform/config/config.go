package config

import (
	"log"
	"path/filepath"
	"time"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"
)

// Config holds application configuration. It is built once at startup and
// passed by reference into every component constructor.
type Config struct {
	Port         string
	IsProduction bool

	// Data directory holding the persisted JSON documents.
	DataDir string

	// Rates cache freshness window.
	RatesTTL time.Duration

	// Quote currency every stored rate is expressed against.
	BaseCurrency string

	// Provider endpoints and bounds.
	CoinGeckoURL       string
	ExchangeRateAPIURL string
	ExchangeRateAPIKey string
	ProviderTimeout    time.Duration

	JWTSecret         string
	JWTExpiryDuration time.Duration
	JWTIssuer         string
}

// RatesFilePath returns the canonical path of the rate cache document.
func (c *Config) RatesFilePath() string {
	return filepath.Join(c.DataDir, "rates.json")
}

// HistoryFilePath returns the canonical path of the quote history log.
func (c *Config) HistoryFilePath() string {
	return filepath.Join(c.DataDir, "rate_history.json")
}

// PortfoliosFilePath returns the canonical path of the portfolios document.
func (c *Config) PortfoliosFilePath() string {
	return filepath.Join(c.DataDir, "portfolios.json")
}

// UsersFilePath returns the canonical path of the users document.
func (c *Config) UsersFilePath() string {
	return filepath.Join(c.DataDir, "users.json")
}

// LoadConfig loads configuration from environment variables and .env file if present.
func LoadConfig() (*Config, error) {
	// Attempt to load .env file, ignore error if it doesn't exist
	_ = godotenv.Load()

	viper.SetDefault("PORT", "8080")
	viper.SetDefault("IS_PRODUCTION", false)
	viper.SetDefault("DATA_DIR", "data")
	viper.SetDefault("RATES_TTL_SECONDS", 300)
	viper.SetDefault("BASE_CURRENCY", "USD")
	viper.SetDefault("COINGECKO_URL", "https://api.coingecko.com/api/v3/simple/price")
	viper.SetDefault("EXCHANGERATE_API_URL", "https://v6.exchangerate-api.com/v6")
	viper.SetDefault("EXCHANGERATE_API_KEY", "")
	viper.SetDefault("PROVIDER_TIMEOUT", "10s")
	viper.SetDefault("JWT_SECRET", "a-very-secret-key-should-be-longer-and-random")
	viper.SetDefault("JWT_EXPIRY_DURATION", "1h")
	viper.SetDefault("JWT_ISSUER", "valutatrade-hub")

	viper.AutomaticEnv()

	cfg := &Config{}

	cfg.Port = viper.GetString("PORT")
	cfg.IsProduction = viper.GetBool("IS_PRODUCTION")
	cfg.DataDir = viper.GetString("DATA_DIR")
	cfg.BaseCurrency = viper.GetString("BASE_CURRENCY")

	ttlSeconds := viper.GetInt("RATES_TTL_SECONDS")
	if ttlSeconds <= 0 {
		log.Printf("Warning: Invalid RATES_TTL_SECONDS (%d). Defaulting to 300.\n", ttlSeconds)
		ttlSeconds = 300
	}
	cfg.RatesTTL = time.Duration(ttlSeconds) * time.Second

	cfg.CoinGeckoURL = viper.GetString("COINGECKO_URL")
	cfg.ExchangeRateAPIURL = viper.GetString("EXCHANGERATE_API_URL")
	cfg.ExchangeRateAPIKey = viper.GetString("EXCHANGERATE_API_KEY")
	if cfg.ExchangeRateAPIKey == "" {
		log.Println("Warning: EXCHANGERATE_API_KEY not set. The fiat provider will be unavailable.")
	}

	timeoutStr := viper.GetString("PROVIDER_TIMEOUT")
	providerTimeout, err := time.ParseDuration(timeoutStr)
	if err != nil {
		providerTimeout = 10 * time.Second
		log.Printf("Warning: Invalid value for PROVIDER_TIMEOUT ('%s'). Defaulting to %s.\n", timeoutStr, providerTimeout)
	}
	cfg.ProviderTimeout = providerTimeout

	cfg.JWTSecret = viper.GetString("JWT_SECRET")
	if cfg.JWTSecret == "a-very-secret-key-should-be-longer-and-random" {
		log.Println("Warning: JWT_SECRET environment variable not set. Using default insecure key.")
	}

	jwtExpiryStr := viper.GetString("JWT_EXPIRY_DURATION")
	jwtExpiryDuration, err := time.ParseDuration(jwtExpiryStr)
	if err != nil {
		jwtExpiryDuration = time.Hour
		log.Printf("Warning: Invalid value for JWT_EXPIRY_DURATION ('%s'). Defaulting to %s.\n", jwtExpiryStr, jwtExpiryDuration)
	}
	cfg.JWTExpiryDuration = jwtExpiryDuration
	cfg.JWTIssuer = viper.GetString("JWT_ISSUER")

	return cfg, nil
}
