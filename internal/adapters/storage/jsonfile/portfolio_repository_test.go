package jsonfile_test

import (
	"context"
	"path/filepath"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/valutatrade/valutatrade_hub/internal/adapters/storage/jsonfile"
	"github.com/valutatrade/valutatrade_hub/internal/apperrors"
	"github.com/valutatrade/valutatrade_hub/internal/models"
)

func portfoliosPath(t *testing.T) string {
	t.Helper()
	return filepath.Join(t.TempDir(), "portfolios.json")
}

func TestPortfolioFind_NotFound(t *testing.T) {
	repo := jsonfile.NewPortfolioRepository(portfoliosPath(t))

	_, err := repo.FindPortfolioByUserID(context.Background(), uuid.NewString())

	require.ErrorIs(t, err, apperrors.ErrNotFound)
}

func TestPortfolioSaveAndFind_Roundtrip(t *testing.T) {
	ctx := context.Background()
	path := portfoliosPath(t)
	repo := jsonfile.NewPortfolioRepository(path)
	userID := uuid.NewString()

	require.NoError(t, repo.SavePortfolio(ctx, models.NewPortfolio(userID)))

	found, err := jsonfile.NewPortfolioRepository(path).FindPortfolioByUserID(ctx, userID)
	require.NoError(t, err)
	assert.Equal(t, userID, found.UserID)
	wallet, ok := found.Wallets[models.BaseCurrencyCode]
	require.True(t, ok)
	assert.Equal(t, models.InitialBaseBalance, wallet.Balance)
}

func TestPortfolioSave_ReplacesExistingForSameUser(t *testing.T) {
	ctx := context.Background()
	repo := jsonfile.NewPortfolioRepository(portfoliosPath(t))
	userID := uuid.NewString()
	require.NoError(t, repo.SavePortfolio(ctx, models.NewPortfolio(userID)))

	updated := models.Portfolio{
		UserID: userID,
		Wallets: map[string]models.Wallet{
			"USD": {CurrencyCode: "USD", Balance: 50},
			"BTC": {CurrencyCode: "BTC", Balance: 0.001},
		},
	}
	require.NoError(t, repo.SavePortfolio(ctx, updated))

	found, err := repo.FindPortfolioByUserID(ctx, userID)
	require.NoError(t, err)
	assert.Len(t, found.Wallets, 2)
	assert.Equal(t, 50.0, found.Wallets["USD"].Balance)
	assert.Equal(t, 0.001, found.Wallets["BTC"].Balance)
}

func TestPortfolioSave_LeavesOtherUsersIntact(t *testing.T) {
	ctx := context.Background()
	repo := jsonfile.NewPortfolioRepository(portfoliosPath(t))
	alice := uuid.NewString()
	bob := uuid.NewString()
	require.NoError(t, repo.SavePortfolio(ctx, models.NewPortfolio(alice)))
	require.NoError(t, repo.SavePortfolio(ctx, models.NewPortfolio(bob)))

	traded := models.Portfolio{
		UserID: alice,
		Wallets: map[string]models.Wallet{
			"USD": {CurrencyCode: "USD", Balance: 0},
			"ETH": {CurrencyCode: "ETH", Balance: 0.04},
		},
	}
	require.NoError(t, repo.SavePortfolio(ctx, traded))

	bobsView, err := repo.FindPortfolioByUserID(ctx, bob)
	require.NoError(t, err)
	assert.Equal(t, models.InitialBaseBalance, bobsView.Wallets["USD"].Balance)
}
