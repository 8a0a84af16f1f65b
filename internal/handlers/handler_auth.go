package handlers

import (
	"errors"
	"log/slog"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/ulule/limiter/v3"
	"github.com/ulule/limiter/v3/drivers/store/memory"

	"github.com/valutatrade/valutatrade_hub/internal/apperrors"
	portssvc "github.com/valutatrade/valutatrade_hub/internal/core/ports/services"
	"github.com/valutatrade/valutatrade_hub/internal/dto"
	"github.com/valutatrade/valutatrade_hub/internal/middleware"
	"github.com/valutatrade/valutatrade_hub/internal/platform/config"
	"github.com/valutatrade/valutatrade_hub/internal/utils"
)

// AuthHandler handles authentication related requests.
type AuthHandler struct {
	userService portssvc.UserSvcFacade
	jwtSecret   string
	jwtDuration time.Duration
	jwtIssuer   string
}

// NewAuthHandler creates a new AuthHandler.
func NewAuthHandler(us portssvc.UserSvcFacade, cfg *config.Config) *AuthHandler {
	return &AuthHandler{
		userService: us,
		jwtSecret:   cfg.JWTSecret,
		jwtDuration: cfg.JWTExpiryDuration,
		jwtIssuer:   cfg.JWTIssuer,
	}
}

// ErrorResponse is a generic error response structure for handlers.
type ErrorResponse struct {
	Error string `json:"error"`
}

// registerAuthRoutes sets up the routes for authentication.
func registerAuthRoutes(rg *gin.Engine, cfg *config.Config, userService portssvc.UserSvcFacade) {
	h := NewAuthHandler(userService, cfg)

	// Rate limit login: 5 requests per minute per IP
	rate, _ := limiter.NewRateFromFormatted("5-M")
	store := memory.NewStore()
	ipLimiter := limiter.New(store, rate)

	auth := rg.Group("/api/v1/auth")
	{
		auth.POST("/login", middleware.RateLimit(ipLimiter), h.Login)
		auth.POST("/register", h.Register)
	}
}

// Register creates a new user account and its seeded portfolio.
func (h *AuthHandler) Register(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())

	var req dto.RegisterRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: "Invalid request body: " + err.Error()})
		return
	}

	user, err := h.userService.Register(c.Request.Context(), req)
	if err != nil {
		switch {
		case errors.Is(err, apperrors.ErrDuplicate):
			c.JSON(http.StatusConflict, ErrorResponse{Error: "Username is already taken"})
		case errors.Is(err, apperrors.ErrValidation):
			c.JSON(http.StatusBadRequest, ErrorResponse{Error: err.Error()})
		default:
			logger.Error("Failed to register user", slog.String("error", err.Error()))
			c.JSON(http.StatusInternalServerError, ErrorResponse{Error: "Failed to register user"})
		}
		return
	}

	logger.Info("User registered", slog.String("user_id", user.UserID), slog.String("username", user.Username))
	c.JSON(http.StatusCreated, dto.ToUserResponse(user))
}

// Login authenticates a user and returns a JWT token.
func (h *AuthHandler) Login(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())

	var req dto.LoginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: "Invalid request body"})
		return
	}

	user, err := h.userService.Authenticate(c.Request.Context(), req.Username, req.Password)
	if err != nil {
		if errors.Is(err, apperrors.ErrUnauthorized) {
			c.JSON(http.StatusUnauthorized, ErrorResponse{Error: "Invalid username or password"})
			return
		}
		logger.Error("Failed to authenticate user", slog.String("error", err.Error()))
		c.JSON(http.StatusInternalServerError, ErrorResponse{Error: "Failed to authenticate"})
		return
	}

	token, err := utils.GenerateJWT(user.UserID, h.jwtSecret, h.jwtDuration, h.jwtIssuer)
	if err != nil {
		logger.Error("Failed to generate token", slog.String("error", err.Error()))
		c.JSON(http.StatusInternalServerError, ErrorResponse{Error: "Failed to generate token"})
		return
	}

	logger.Info("User logged in", slog.String("user_id", user.UserID), slog.String("username", user.Username))
	c.JSON(http.StatusOK, dto.LoginResponse{
		Token:     token,
		ExpiresAt: time.Now().Add(h.jwtDuration),
		User:      dto.ToUserResponse(user),
	})
}
