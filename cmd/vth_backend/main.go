package main

import (
	"log/slog"
	"os"
	"time"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"

	portsproviders "github.com/valutatrade/valutatrade_hub/internal/core/ports/providers"
	"github.com/valutatrade/valutatrade_hub/internal/core/ports/repositories"
	"github.com/valutatrade/valutatrade_hub/internal/core/services"

	"github.com/valutatrade/valutatrade_hub/internal/adapters/providers"
	"github.com/valutatrade/valutatrade_hub/internal/adapters/storage/jsonfile"
	"github.com/valutatrade/valutatrade_hub/internal/dto"
	"github.com/valutatrade/valutatrade_hub/internal/handlers"
	"github.com/valutatrade/valutatrade_hub/internal/middleware"
	"github.com/valutatrade/valutatrade_hub/internal/platform/config"
)

func main() {
	// Initialize structured logger
	logger := slog.New(slog.NewJSONHandler(os.Stdout, nil))
	slog.SetDefault(logger)

	cfg, err := config.LoadConfig()
	if err != nil {
		logger.Error("Failed to load config", slog.String("error", err.Error()))
		os.Exit(1)
	}

	// File-backed repositories over the data directory
	repos := repositories.RepositoryProvider{
		RateCacheRepo:   jsonfile.NewRateCacheRepository(cfg.RatesFilePath()),
		RateHistoryRepo: jsonfile.NewRateHistoryRepository(cfg.HistoryFilePath()),
		PortfolioRepo:   jsonfile.NewPortfolioRepository(cfg.PortfoliosFilePath()),
		UserRepo:        jsonfile.NewUserRepository(cfg.UsersFilePath()),
	}

	// Outbound rate providers: crypto and fiat partitions
	cryptoCodes := make([]string, 0, len(providers.DefaultCryptoIDs))
	for code := range providers.DefaultCryptoIDs {
		cryptoCodes = append(cryptoCodes, code)
	}
	rateProviders := []portsproviders.RateProvider{
		providers.NewCoinGeckoClient(cfg.CoinGeckoURL, cfg.BaseCurrency, cryptoCodes, nil, cfg.ProviderTimeout),
		providers.NewExchangeRateAPIClient(cfg.ExchangeRateAPIURL, cfg.ExchangeRateAPIKey, cfg.BaseCurrency, providers.DefaultFiatCodes, cfg.ProviderTimeout),
	}

	svcContainer := services.NewServiceContainer(cfg, repos, rateProviders)

	if cfg.IsProduction {
		gin.SetMode(gin.ReleaseMode)
	}

	dto.RegisterCustomValidators()

	r := gin.New()

	// Global middleware (logging, recovery, cors)
	r.Use(middleware.StructuredLoggingMiddleware(logger), gin.Recovery())
	r.Use(cors.New(cors.Config{
		AllowOrigins:     []string{"*"},
		AllowMethods:     []string{"GET", "POST", "OPTIONS"},
		AllowHeaders:     []string{"Origin", "Content-Type", "Authorization"},
		MaxAge:           12 * time.Hour,
		AllowCredentials: false,
	}))

	if err := r.SetTrustedProxies(nil); err != nil {
		logger.Error("Failed to set trusted proxies", slog.String("error", err.Error()))
		os.Exit(1)
	}

	handlers.RegisterRoutes(r, cfg, svcContainer)

	logger.Info("Server starting", slog.String("port", cfg.Port), slog.String("data_dir", cfg.DataDir))
	if err := r.Run(":" + cfg.Port); err != nil {
		logger.Error("Server failed to run", slog.String("error", err.Error()))
		os.Exit(1)
	}
}
