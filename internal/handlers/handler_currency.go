package handlers

import (
	"errors"
	"log/slog"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/valutatrade/valutatrade_hub/internal/apperrors"
	portssvc "github.com/valutatrade/valutatrade_hub/internal/core/ports/services"
	"github.com/valutatrade/valutatrade_hub/internal/dto"
	"github.com/valutatrade/valutatrade_hub/internal/middleware"
)

// currencyHandler handles HTTP requests related to the currency registry.
type currencyHandler struct {
	currencyService portssvc.CurrencySvcFacade
}

func newCurrencyHandler(cs portssvc.CurrencySvcFacade) *currencyHandler {
	return &currencyHandler{currencyService: cs}
}

// registerCurrencyRoutes registers routes related to currencies.
func registerCurrencyRoutes(rg *gin.RouterGroup, currencyService portssvc.CurrencySvcFacade) {
	h := newCurrencyHandler(currencyService)

	currencies := rg.Group("/currencies")
	{
		currencies.GET("", h.listCurrencies)
		currencies.GET("/:code", h.getCurrency)
	}
}

func (h *currencyHandler) listCurrencies(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())

	currencies, err := h.currencyService.ListCurrencies(c.Request.Context())
	if err != nil {
		logger.Error("Failed to list currencies", slog.String("error", err.Error()))
		c.JSON(http.StatusInternalServerError, ErrorResponse{Error: "Failed to list currencies"})
		return
	}
	c.JSON(http.StatusOK, dto.ToListCurrenciesResponse(currencies))
}

func (h *currencyHandler) getCurrency(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	code := c.Param("code")

	currency, err := h.currencyService.GetCurrencyByCode(c.Request.Context(), code)
	if err != nil {
		switch {
		case errors.Is(err, apperrors.ErrValidation):
			c.JSON(http.StatusBadRequest, ErrorResponse{Error: err.Error()})
		case errors.Is(err, apperrors.ErrNotFound):
			c.JSON(http.StatusNotFound, ErrorResponse{Error: "Unknown currency code"})
		default:
			logger.Error("Failed to get currency", slog.String("code", code), slog.String("error", err.Error()))
			c.JSON(http.StatusInternalServerError, ErrorResponse{Error: "Failed to get currency"})
		}
		return
	}
	c.JSON(http.StatusOK, dto.ToCurrencyResponse(*currency))
}
