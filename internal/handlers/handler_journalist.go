package handlers

import (
	"log/slog"
	"net/http"

	"github.com/gin-gonic/gin"

	portssvc "github.com/wezaprosoft/press_rewards_app/internal/core/ports/services"
	"github.com/wezaprosoft/press_rewards_app/internal/dto"
	"github.com/wezaprosoft/press_rewards_app/internal/middleware"
)

// journalistHandler handles the journalist directory plus the
// journalist-scoped reward views (balance, transactions, dashboard).
type journalistHandler struct {
	journalistService portssvc.JournalistSvcFacade
	rewardService     portssvc.RewardSvcFacade
	reportingService  portssvc.ReportingSvcFacade
}

func newJournalistHandler(js portssvc.JournalistSvcFacade, rs portssvc.RewardSvcFacade, reps portssvc.ReportingSvcFacade) *journalistHandler {
	return &journalistHandler{
		journalistService: js,
		rewardService:     rs,
		reportingService:  reps,
	}
}

// registerJournalistRoutes registers all journalist-related routes.
func registerJournalistRoutes(rg *gin.RouterGroup, js portssvc.JournalistSvcFacade, rs portssvc.RewardSvcFacade, reps portssvc.ReportingSvcFacade) {
	h := newJournalistHandler(js, rs, reps)

	journalists := rg.Group("/journalists")
	{
		journalists.POST("", middleware.RequireStaff(), h.createJournalist)
		journalists.GET("", middleware.RequireStaff(), h.listJournalists)
		journalists.GET("/:journalistID", h.getJournalist)
		journalists.PUT("/:journalistID", h.updateJournalist)
		journalists.GET("/:journalistID/balance", h.getBalance)
		journalists.GET("/:journalistID/transactions", h.listTransactions)
		journalists.GET("/:journalistID/dashboard", h.getDashboard)
	}
}

// createJournalist godoc
// @Summary Register a journalist
// @Description Creates a new journalist profile (staff only)
// @Tags journalists
// @Accept json
// @Produce json
// @Param journalist body dto.CreateJournalistRequest true "Journalist details"
// @Success 201 {object} dto.JournalistResponse
// @Failure 400 {object} dto.ErrorResponse "Invalid input"
// @Failure 409 {object} dto.ErrorResponse "Email already registered"
// @Security BearerAuth
// @Router /journalists [post]
func (h *journalistHandler) createJournalist(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())

	var req dto.CreateJournalistRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, dto.ErrorResponse{Error: "Invalid request format: " + err.Error()})
		return
	}

	principal, ok := requirePrincipal(c)
	if !ok {
		return
	}

	journalist, err := h.journalistService.CreateJournalist(c.Request.Context(), req, principal.UserID)
	if err != nil {
		respondError(c, err, "Failed to create journalist")
		return
	}

	logger.Info("Journalist created via API", slog.String("journalist_id", journalist.JournalistID))
	c.JSON(http.StatusCreated, dto.ToJournalistResponse(journalist))
}

// listJournalists godoc
// @Summary List journalists
// @Description Returns a directory page, optionally filtered by free-text search (staff only)
// @Tags journalists
// @Produce json
// @Param search query string false "Matches email, name, country, title, media house"
// @Param limit query int false "Page size"
// @Param nextToken query string false "Pagination token"
// @Success 200 {object} dto.ListJournalistsResponse
// @Security BearerAuth
// @Router /journalists [get]
func (h *journalistHandler) listJournalists(c *gin.Context) {
	var params dto.ListJournalistsParams
	if err := c.ShouldBindQuery(&params); err != nil {
		c.JSON(http.StatusBadRequest, dto.ErrorResponse{Error: "Invalid query parameters: " + err.Error()})
		return
	}

	journalists, nextToken, err := h.journalistService.ListJournalists(c.Request.Context(), params)
	if err != nil {
		respondError(c, err, "Failed to list journalists")
		return
	}

	c.JSON(http.StatusOK, dto.ListJournalistsResponse{
		Journalists: dto.ToJournalistResponses(journalists),
		NextToken:   nextToken,
	})
}

// getJournalist godoc
// @Summary Get a journalist
// @Tags journalists
// @Produce json
// @Param journalistID path string true "Journalist ID"
// @Success 200 {object} dto.JournalistResponse
// @Failure 404 {object} dto.ErrorResponse "Journalist not found"
// @Security BearerAuth
// @Router /journalists/{journalistID} [get]
func (h *journalistHandler) getJournalist(c *gin.Context) {
	journalistID := c.Param("journalistID")

	principal, ok := requirePrincipal(c)
	if !ok {
		return
	}
	if !canActFor(principal, journalistID) {
		c.JSON(http.StatusForbidden, dto.ErrorResponse{Error: "Forbidden"})
		return
	}

	journalist, err := h.journalistService.GetJournalist(c.Request.Context(), journalistID)
	if err != nil {
		respondError(c, err, "Failed to retrieve journalist")
		return
	}

	c.JSON(http.StatusOK, dto.ToJournalistResponse(journalist))
}

// updateJournalist godoc
// @Summary Update a journalist profile
// @Tags journalists
// @Accept json
// @Produce json
// @Param journalistID path string true "Journalist ID"
// @Param journalist body dto.UpdateJournalistRequest true "Fields to update"
// @Success 200 {object} dto.JournalistResponse
// @Failure 404 {object} dto.ErrorResponse "Journalist not found"
// @Security BearerAuth
// @Router /journalists/{journalistID} [put]
func (h *journalistHandler) updateJournalist(c *gin.Context) {
	journalistID := c.Param("journalistID")

	var req dto.UpdateJournalistRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, dto.ErrorResponse{Error: "Invalid request format: " + err.Error()})
		return
	}

	principal, ok := requirePrincipal(c)
	if !ok {
		return
	}
	if !canActFor(principal, journalistID) {
		c.JSON(http.StatusForbidden, dto.ErrorResponse{Error: "Forbidden"})
		return
	}

	journalist, err := h.journalistService.UpdateJournalist(c.Request.Context(), journalistID, req, principal.UserID)
	if err != nil {
		respondError(c, err, "Failed to update journalist")
		return
	}

	c.JSON(http.StatusOK, dto.ToJournalistResponse(journalist))
}

// getBalance godoc
// @Summary Get a journalist's point balance
// @Description Returns the derived current points and their KSH equivalent
// @Tags journalists
// @Produce json
// @Param journalistID path string true "Journalist ID"
// @Success 200 {object} dto.BalanceResponse
// @Failure 404 {object} dto.ErrorResponse "Journalist not found"
// @Security BearerAuth
// @Router /journalists/{journalistID}/balance [get]
func (h *journalistHandler) getBalance(c *gin.Context) {
	journalistID := c.Param("journalistID")

	principal, ok := requirePrincipal(c)
	if !ok {
		return
	}
	if !canActFor(principal, journalistID) {
		c.JSON(http.StatusForbidden, dto.ErrorResponse{Error: "Forbidden"})
		return
	}

	// Existence check so an unknown journalist is a 404, not a zero balance.
	if _, err := h.journalistService.GetJournalist(c.Request.Context(), journalistID); err != nil {
		respondError(c, err, "Failed to retrieve journalist")
		return
	}

	points, amount, err := h.rewardService.Balance(c.Request.Context(), journalistID)
	if err != nil {
		respondError(c, err, "Failed to compute balance")
		return
	}

	c.JSON(http.StatusOK, dto.BalanceResponse{
		JournalistID: journalistID,
		Points:       points,
		AmountKSH:    amount,
	})
}

// listTransactions godoc
// @Summary List a journalist's ledger entries
// @Tags journalists
// @Produce json
// @Param journalistID path string true "Journalist ID"
// @Param limit query int false "Page size"
// @Param nextToken query string false "Pagination token"
// @Success 200 {object} dto.ListPointTransactionsResponse
// @Security BearerAuth
// @Router /journalists/{journalistID}/transactions [get]
func (h *journalistHandler) listTransactions(c *gin.Context) {
	journalistID := c.Param("journalistID")

	var params dto.ListParams
	if err := c.ShouldBindQuery(&params); err != nil {
		c.JSON(http.StatusBadRequest, dto.ErrorResponse{Error: "Invalid query parameters: " + err.Error()})
		return
	}

	principal, ok := requirePrincipal(c)
	if !ok {
		return
	}
	if !canActFor(principal, journalistID) {
		c.JSON(http.StatusForbidden, dto.ErrorResponse{Error: "Forbidden"})
		return
	}

	txns, nextToken, err := h.rewardService.ListTransactions(c.Request.Context(), journalistID, params)
	if err != nil {
		respondError(c, err, "Failed to list transactions")
		return
	}

	c.JSON(http.StatusOK, dto.ListPointTransactionsResponse{
		Transactions: dto.ToPointTransactionResponses(txns),
		NextToken:    nextToken,
	})
}

// getDashboard godoc
// @Summary Get a journalist's dashboard
// @Description Shared press releases, submitted links, current balance and withdrawal history
// @Tags journalists
// @Produce json
// @Param journalistID path string true "Journalist ID"
// @Success 200 {object} dto.JournalistDashboardResponse
// @Failure 404 {object} dto.ErrorResponse "Journalist not found"
// @Security BearerAuth
// @Router /journalists/{journalistID}/dashboard [get]
func (h *journalistHandler) getDashboard(c *gin.Context) {
	journalistID := c.Param("journalistID")

	principal, ok := requirePrincipal(c)
	if !ok {
		return
	}
	if !canActFor(principal, journalistID) {
		c.JSON(http.StatusForbidden, dto.ErrorResponse{Error: "Forbidden"})
		return
	}

	dashboard, err := h.reportingService.JournalistDashboard(c.Request.Context(), journalistID)
	if err != nil {
		respondError(c, err, "Failed to build dashboard")
		return
	}

	c.JSON(http.StatusOK, dashboard)
}
