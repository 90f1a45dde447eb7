package handlers

import (
	"log/slog"
	"net/http"

	"github.com/gin-gonic/gin"

	portssvc "github.com/wezaprosoft/press_rewards_app/internal/core/ports/services"
	"github.com/wezaprosoft/press_rewards_app/internal/dto"
	"github.com/wezaprosoft/press_rewards_app/internal/middleware"
	"github.com/wezaprosoft/press_rewards_app/internal/utils"
	"github.com/wezaprosoft/press_rewards_app/pkg/config"
)

// authHandler handles credential login and token issuance.
type authHandler struct {
	userService portssvc.UserSvcFacade
	cfg         *config.Config
}

func newAuthHandler(us portssvc.UserSvcFacade, cfg *config.Config) *authHandler {
	return &authHandler{userService: us, cfg: cfg}
}

// registerAuthRoutes registers the public authentication routes. The rate
// limiter guards credential guessing.
func registerAuthRoutes(r *gin.Engine, cfg *config.Config, services *portssvc.ServiceContainer, rateLimit gin.HandlerFunc) {
	h := newAuthHandler(services.User, cfg)

	auth := r.Group("/auth", rateLimit)
	{
		auth.POST("/login", h.login)
	}
}

// login godoc
// @Summary Log in with email and password
// @Description Validates credentials and returns a bearer token
// @Tags auth
// @Accept json
// @Produce json
// @Param credentials body dto.LoginRequest true "Credentials"
// @Success 200 {object} dto.LoginResponse
// @Failure 400 {object} dto.ErrorResponse "Invalid input"
// @Failure 401 {object} dto.ErrorResponse "Invalid credentials"
// @Failure 500 {object} dto.ErrorResponse "Failed to issue token"
// @Router /auth/login [post]
func (h *authHandler) login(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())

	var req dto.LoginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, dto.ErrorResponse{Error: "Invalid request format: " + err.Error()})
		return
	}

	user, err := h.userService.AuthenticateUser(c.Request.Context(), req.Email, req.Password)
	if err != nil {
		respondError(c, err, "Failed to authenticate")
		return
	}

	token, err := utils.GenerateJWT(user.UserID, user.IsStaff, user.JournalistID, h.cfg.JWTSecret, h.cfg.JWTExpiryDuration, h.cfg.JWTIssuer)
	if err != nil {
		logger.Error("Failed to sign token", slog.String("error", err.Error()))
		c.JSON(http.StatusInternalServerError, dto.ErrorResponse{Error: "Failed to issue token"})
		return
	}

	logger.Info("User logged in", slog.String("user_id", user.UserID))
	c.JSON(http.StatusOK, dto.LoginResponse{Token: token})
}
