package handlers

import (
	"context"
	"errors"
	"log/slog"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/valutatrade/valutatrade_hub/internal/apperrors"
	portssvc "github.com/valutatrade/valutatrade_hub/internal/core/ports/services"
	"github.com/valutatrade/valutatrade_hub/internal/dto"
	"github.com/valutatrade/valutatrade_hub/internal/middleware"
)

// portfolioHandler handles HTTP requests related to portfolios and trades.
type portfolioHandler struct {
	portfolioService portssvc.PortfolioSvcFacade
}

func newPortfolioHandler(ps portssvc.PortfolioSvcFacade) *portfolioHandler {
	return &portfolioHandler{portfolioService: ps}
}

// registerPortfolioRoutes registers routes related to portfolios and trades.
func registerPortfolioRoutes(rg *gin.RouterGroup, portfolioService portssvc.PortfolioSvcFacade) {
	h := newPortfolioHandler(portfolioService)

	portfolio := rg.Group("/portfolio")
	{
		portfolio.GET("", h.getPortfolio)
		portfolio.POST("/buy", h.buy)
		portfolio.POST("/sell", h.sell)
	}
}

func (h *portfolioHandler) getPortfolio(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	userID, ok := middleware.GetUserIDFromContext(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, ErrorResponse{Error: "Not logged in"})
		return
	}

	resp, err := h.portfolioService.GetPortfolio(c.Request.Context(), userID)
	if err != nil {
		if errors.Is(err, apperrors.ErrNotFound) {
			c.JSON(http.StatusNotFound, ErrorResponse{Error: err.Error()})
			return
		}
		respondRateError(c, logger, err)
		return
	}
	c.JSON(http.StatusOK, resp)
}

func (h *portfolioHandler) buy(c *gin.Context) {
	h.trade(c, "BUY", h.portfolioService.Buy)
}

func (h *portfolioHandler) sell(c *gin.Context) {
	h.trade(c, "SELL", h.portfolioService.Sell)
}

type tradeFunc func(ctx context.Context, userID, currencyCode string, amount float64) (*dto.TradeResult, error)

// trade runs one buy or sell and writes the structured trade log line from
// the result the service returns.
func (h *portfolioHandler) trade(c *gin.Context, action string, op tradeFunc) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	userID, ok := middleware.GetUserIDFromContext(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, ErrorResponse{Error: "Not logged in"})
		return
	}

	var req dto.TradeRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: "Invalid request body: " + err.Error()})
		return
	}

	logger = logger.With(
		slog.String("action", action),
		slog.String("currency", req.CurrencyCode),
		slog.Float64("amount", req.Amount),
	)

	result, err := op(c.Request.Context(), userID, req.CurrencyCode, req.Amount)
	if err != nil {
		logger.Warn("Trade rejected",
			slog.String("result", "ERROR"),
			slog.String("error", err.Error()),
		)
		respondTradeError(c, logger, err)
		return
	}

	logger.Info("Trade executed",
		slog.String("result", "SUCCESS"),
		slog.Float64("rate", result.Rate),
		slog.Float64("quote_amount", result.QuoteAmount),
		slog.Float64("before_balance", result.BeforeBalance),
		slog.Float64("after_balance", result.AfterBalance),
	)
	c.JSON(http.StatusOK, result)
}

// respondTradeError maps trade failures onto HTTP statuses.
func respondTradeError(c *gin.Context, logger *slog.Logger, err error) {
	var insufficient *apperrors.InsufficientFundsError
	if errors.As(err, &insufficient) {
		c.JSON(http.StatusUnprocessableEntity, gin.H{
			"error":     insufficient.Error(),
			"available": insufficient.Available,
			"required":  insufficient.Required,
			"code":      insufficient.Code,
		})
		return
	}
	if errors.Is(err, apperrors.ErrNotFound) {
		c.JSON(http.StatusNotFound, ErrorResponse{Error: err.Error()})
		return
	}
	respondRateError(c, logger, err)
}
