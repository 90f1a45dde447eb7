package handlers

import (
	"log/slog"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/wezaprosoft/press_rewards_app/internal/core/domain"
	portssvc "github.com/wezaprosoft/press_rewards_app/internal/core/ports/services"
	"github.com/wezaprosoft/press_rewards_app/internal/dto"
	"github.com/wezaprosoft/press_rewards_app/internal/middleware"
)

// userHandler handles user account administration.
type userHandler struct {
	userService portssvc.UserSvcFacade
}

func newUserHandler(us portssvc.UserSvcFacade) *userHandler {
	return &userHandler{userService: us}
}

// registerUserRoutes registers all user-related routes.
func registerUserRoutes(rg *gin.RouterGroup, us portssvc.UserSvcFacade) {
	h := newUserHandler(us)

	users := rg.Group("/users")
	{
		users.POST("", middleware.RequireStaff(), h.createUser)
		users.GET("/:userID", h.getUser)
	}
}

func toUserResponse(u *domain.User) dto.UserResponse {
	return dto.UserResponse{
		UserID:       u.UserID,
		Email:        u.Email,
		FirstName:    u.FirstName,
		LastName:     u.LastName,
		IsStaff:      u.IsStaff,
		JournalistID: u.JournalistID,
	}
}

// createUser godoc
// @Summary Create a user account
// @Description Creates a staff or journalist login (staff only)
// @Tags users
// @Accept json
// @Produce json
// @Param user body dto.CreateUserRequest true "User details"
// @Success 201 {object} dto.UserResponse
// @Failure 400 {object} dto.ErrorResponse "Invalid input"
// @Failure 409 {object} dto.ErrorResponse "Email already registered"
// @Security BearerAuth
// @Router /users [post]
func (h *userHandler) createUser(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())

	var req dto.CreateUserRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, dto.ErrorResponse{Error: "Invalid request format: " + err.Error()})
		return
	}

	principal, ok := requirePrincipal(c)
	if !ok {
		return
	}

	user, err := h.userService.CreateUser(c.Request.Context(), req, principal.UserID)
	if err != nil {
		respondError(c, err, "Failed to create user")
		return
	}

	logger.Info("User created via API", slog.String("new_user_id", user.UserID))
	c.JSON(http.StatusCreated, toUserResponse(user))
}

// getUser godoc
// @Summary Get a user account
// @Description Users may read their own account; staff may read any
// @Tags users
// @Produce json
// @Param userID path string true "User ID"
// @Success 200 {object} dto.UserResponse
// @Failure 404 {object} dto.ErrorResponse "User not found"
// @Security BearerAuth
// @Router /users/{userID} [get]
func (h *userHandler) getUser(c *gin.Context) {
	userID := c.Param("userID")

	principal, ok := requirePrincipal(c)
	if !ok {
		return
	}
	if !principal.IsStaff && principal.UserID != userID {
		c.JSON(http.StatusForbidden, dto.ErrorResponse{Error: "Forbidden"})
		return
	}

	user, err := h.userService.GetUser(c.Request.Context(), userID)
	if err != nil {
		respondError(c, err, "Failed to retrieve user")
		return
	}

	c.JSON(http.StatusOK, toUserResponse(user))
}
