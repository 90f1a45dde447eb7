package handlers

import (
	"log/slog"
	"net/http"

	"github.com/gin-gonic/gin"

	portssvc "github.com/wezaprosoft/press_rewards_app/internal/core/ports/services"
	"github.com/wezaprosoft/press_rewards_app/internal/dto"
	"github.com/wezaprosoft/press_rewards_app/internal/middleware"
)

// withdrawalHandler handles withdrawal requests and their processing.
type withdrawalHandler struct {
	withdrawalService portssvc.WithdrawalSvcFacade
}

func newWithdrawalHandler(ws portssvc.WithdrawalSvcFacade) *withdrawalHandler {
	return &withdrawalHandler{withdrawalService: ws}
}

// registerWithdrawalRoutes registers all withdrawal routes. Processing is
// staff only; requesting requires a journalist principal.
func registerWithdrawalRoutes(rg *gin.RouterGroup, ws portssvc.WithdrawalSvcFacade) {
	h := newWithdrawalHandler(ws)

	withdrawals := rg.Group("/withdrawals")
	{
		withdrawals.POST("", h.requestWithdrawal)
		withdrawals.GET("", h.listWithdrawals)
		withdrawals.GET("/:withdrawalID", h.getWithdrawal)
		withdrawals.POST("/:withdrawalID/process", middleware.RequireStaff(), h.processWithdrawal)
	}
}

// requestWithdrawal godoc
// @Summary Request a withdrawal
// @Description Converts points to a KSH amount and creates a pending request; fails if points exceed the current balance
// @Tags withdrawals
// @Accept json
// @Produce json
// @Param withdrawal body dto.CreateWithdrawalRequest true "Withdrawal details"
// @Success 201 {object} dto.WithdrawalResponse
// @Failure 400 {object} dto.ErrorResponse "Invalid input or insufficient points"
// @Failure 403 {object} dto.ErrorResponse "No journalist record linked to this account"
// @Security BearerAuth
// @Router /withdrawals [post]
func (h *withdrawalHandler) requestWithdrawal(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())

	var req dto.CreateWithdrawalRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, dto.ErrorResponse{Error: "Invalid request format: " + err.Error()})
		return
	}

	_, journalistID, ok := requireJournalistPrincipal(c)
	if !ok {
		return
	}

	withdrawal, err := h.withdrawalService.RequestWithdrawal(c.Request.Context(), journalistID, req)
	if err != nil {
		respondError(c, err, "Failed to request withdrawal")
		return
	}

	logger.Info("Withdrawal requested via API", slog.String("withdrawal_id", withdrawal.WithdrawalID))
	c.JSON(http.StatusCreated, dto.ToWithdrawalResponse(withdrawal))
}

// listWithdrawals godoc
// @Summary List withdrawal requests
// @Description Staff may filter freely; journalists see only their own requests
// @Tags withdrawals
// @Produce json
// @Param journalistID query string false "Filter by journalist (staff only)"
// @Param status query string false "pending, approved, rejected or completed"
// @Param limit query int false "Page size"
// @Param nextToken query string false "Pagination token"
// @Success 200 {object} dto.ListWithdrawalsResponse
// @Security BearerAuth
// @Router /withdrawals [get]
func (h *withdrawalHandler) listWithdrawals(c *gin.Context) {
	var params dto.ListWithdrawalsParams
	if err := c.ShouldBindQuery(&params); err != nil {
		c.JSON(http.StatusBadRequest, dto.ErrorResponse{Error: "Invalid query parameters: " + err.Error()})
		return
	}

	principal, ok := requirePrincipal(c)
	if !ok {
		return
	}
	if !principal.IsStaff {
		if principal.JournalistID == nil {
			c.JSON(http.StatusForbidden, dto.ErrorResponse{Error: "No journalist record linked to this account"})
			return
		}
		params.JournalistID = principal.JournalistID
	}

	withdrawals, nextToken, err := h.withdrawalService.ListWithdrawals(c.Request.Context(), params)
	if err != nil {
		respondError(c, err, "Failed to list withdrawals")
		return
	}

	c.JSON(http.StatusOK, dto.ListWithdrawalsResponse{
		Withdrawals: dto.ToWithdrawalResponses(withdrawals),
		NextToken:   nextToken,
	})
}

// getWithdrawal godoc
// @Summary Get a withdrawal request
// @Tags withdrawals
// @Produce json
// @Param withdrawalID path string true "Withdrawal ID"
// @Success 200 {object} dto.WithdrawalResponse
// @Failure 404 {object} dto.ErrorResponse "Withdrawal not found"
// @Security BearerAuth
// @Router /withdrawals/{withdrawalID} [get]
func (h *withdrawalHandler) getWithdrawal(c *gin.Context) {
	withdrawal, err := h.withdrawalService.GetWithdrawal(c.Request.Context(), c.Param("withdrawalID"))
	if err != nil {
		respondError(c, err, "Failed to retrieve withdrawal")
		return
	}

	principal, ok := requirePrincipal(c)
	if !ok {
		return
	}
	if !canActFor(principal, withdrawal.JournalistID) {
		c.JSON(http.StatusForbidden, dto.ErrorResponse{Error: "Forbidden"})
		return
	}

	c.JSON(http.StatusOK, dto.ToWithdrawalResponse(withdrawal))
}

// processWithdrawal godoc
// @Summary Process a withdrawal request
// @Description Sets the status to approved, rejected or completed; completion debits the ledger atomically
// @Tags withdrawals
// @Accept json
// @Produce json
// @Param withdrawalID path string true "Withdrawal ID"
// @Param action body dto.ProcessWithdrawalRequest true "Target status and metadata"
// @Success 200 {object} dto.WithdrawalResponse
// @Failure 400 {object} dto.ErrorResponse "Unrecognized target status"
// @Failure 404 {object} dto.ErrorResponse "Withdrawal not found"
// @Failure 409 {object} dto.ErrorResponse "Withdrawal already processed"
// @Security BearerAuth
// @Router /withdrawals/{withdrawalID}/process [post]
func (h *withdrawalHandler) processWithdrawal(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	withdrawalID := c.Param("withdrawalID")

	var req dto.ProcessWithdrawalRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, dto.ErrorResponse{Error: "Invalid request format: " + err.Error()})
		return
	}

	principal, ok := requirePrincipal(c)
	if !ok {
		return
	}

	withdrawal, err := h.withdrawalService.ProcessWithdrawal(c.Request.Context(), withdrawalID, principal.UserID, req)
	if err != nil {
		respondError(c, err, "Failed to process withdrawal")
		return
	}

	logger.Info("Withdrawal processed via API",
		slog.String("withdrawal_id", withdrawalID),
		slog.String("status", string(withdrawal.Status)))
	c.JSON(http.StatusOK, dto.ToWithdrawalResponse(withdrawal))
}
