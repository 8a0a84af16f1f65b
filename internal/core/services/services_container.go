package services

import (
	portsproviders "github.com/valutatrade/valutatrade_hub/internal/core/ports/providers"
	"github.com/valutatrade/valutatrade_hub/internal/core/ports/repositories"
	portssvc "github.com/valutatrade/valutatrade_hub/internal/core/ports/services"
	"github.com/valutatrade/valutatrade_hub/internal/platform/config"
)

// NewServiceContainer wires up all concrete services behind their facades.
func NewServiceContainer(
	cfg *config.Config,
	repos repositories.RepositoryProvider,
	rateProviders []portsproviders.RateProvider,
) *portssvc.ServiceContainer {
	rateService := NewRateService(repos.RateCacheRepo, cfg.RatesTTL)

	return &portssvc.ServiceContainer{
		Currency:   NewCurrencyService(),
		Rate:       rateService,
		RateUpdate: NewRateUpdateService(rateProviders, repos.RateCacheRepo, repos.RateHistoryRepo),
		Portfolio:  NewPortfolioService(repos.PortfolioRepo, rateService, cfg.BaseCurrency),
		User:       NewUserService(repos.UserRepo, repos.PortfolioRepo),
	}
}
