package handlers

import (
	"errors"
	"log/slog"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/valutatrade/valutatrade_hub/internal/apperrors"
	portssvc "github.com/valutatrade/valutatrade_hub/internal/core/ports/services"
	"github.com/valutatrade/valutatrade_hub/internal/middleware"
)

// rateHandler handles HTTP requests related to exchange rates.
type rateHandler struct {
	rateService   portssvc.RateSvcFacade
	updateService portssvc.RateUpdateSvcFacade
}

func newRateHandler(rs portssvc.RateSvcFacade, us portssvc.RateUpdateSvcFacade) *rateHandler {
	return &rateHandler{rateService: rs, updateService: us}
}

// registerRateRoutes registers routes related to exchange rates.
func registerRateRoutes(rg *gin.RouterGroup, rateService portssvc.RateSvcFacade, updateService portssvc.RateUpdateSvcFacade) {
	h := newRateHandler(rateService, updateService)

	rates := rg.Group("/rates")
	{
		rates.GET("/:from/:to", h.getRate)
		rates.POST("/refresh", h.refreshRates)
	}
}

// getRate resolves the current rate for one pair, with the inverse for display.
func (h *rateHandler) getRate(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	fromCode := c.Param("from")
	toCode := c.Param("to")

	detail, err := h.rateService.GetRateDetail(c.Request.Context(), fromCode, toCode)
	if err != nil {
		respondRateError(c, logger, err)
		return
	}
	c.JSON(http.StatusOK, detail)
}

// refreshRates runs one update pass over the providers. The optional source
// query parameter restricts the pass to a single named provider.
func (h *rateHandler) refreshRates(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	source := c.Query("source")

	report, err := h.updateService.Update(c.Request.Context(), source)
	if err != nil {
		var aggErr *apperrors.AggregateFetchError
		switch {
		case errors.Is(err, apperrors.ErrNotFound):
			c.JSON(http.StatusNotFound, ErrorResponse{Error: err.Error()})
		case errors.As(err, &aggErr):
			logger.Warn("Rates update failed on every provider", slog.Int("providers", len(aggErr.Causes)))
			c.JSON(http.StatusBadGateway, ErrorResponse{Error: aggErr.Error()})
		default:
			logger.Error("Failed to update rates", slog.String("error", err.Error()))
			c.JSON(http.StatusInternalServerError, ErrorResponse{Error: "Failed to update rates"})
		}
		return
	}

	for _, srcErr := range report.SourceErrors {
		logger.Warn("Rate source failed during update",
			slog.String("source", srcErr.Source),
			slog.String("reason", srcErr.Reason),
		)
	}
	logger.Info("Rates updated",
		slog.Int("quotes_fetched", report.QuotesFetched),
		slog.Int("pairs_updated", report.PairsUpdated),
		slog.Time("last_refresh", report.LastRefresh),
	)
	c.JSON(http.StatusOK, report)
}

// respondRateError maps rate resolution failures onto HTTP statuses.
func respondRateError(c *gin.Context, logger *slog.Logger, err error) {
	var unavailable *apperrors.RateUnavailableError
	var stale *apperrors.StaleRatesError
	switch {
	case errors.Is(err, apperrors.ErrValidation):
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: err.Error()})
	case errors.As(err, &unavailable):
		c.JSON(http.StatusNotFound, gin.H{
			"error": unavailable.Error(),
			"from":  unavailable.From,
			"to":    unavailable.To,
		})
	case errors.As(err, &stale):
		c.JSON(http.StatusConflict, ErrorResponse{Error: stale.Error()})
	default:
		logger.Error("Failed to resolve rate", slog.String("error", err.Error()))
		c.JSON(http.StatusInternalServerError, ErrorResponse{Error: "Failed to resolve rate"})
	}
}
