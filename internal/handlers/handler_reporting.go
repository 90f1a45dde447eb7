package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	portssvc "github.com/wezaprosoft/press_rewards_app/internal/core/ports/services"
	"github.com/wezaprosoft/press_rewards_app/internal/dto"
	"github.com/wezaprosoft/press_rewards_app/internal/middleware"
)

// reportingHandler serves the staff dashboard.
type reportingHandler struct {
	reportingService portssvc.ReportingSvcFacade
}

func newReportingHandler(rs portssvc.ReportingSvcFacade) *reportingHandler {
	return &reportingHandler{reportingService: rs}
}

// registerReportingRoutes registers the staff reporting routes.
func registerReportingRoutes(rg *gin.RouterGroup, rs portssvc.ReportingSvcFacade) {
	h := newReportingHandler(rs)

	reports := rg.Group("/reports", middleware.RequireStaff())
	{
		reports.GET("/dashboard", h.getAdminDashboard)
	}
}

// getAdminDashboard godoc
// @Summary Get the staff dashboard
// @Description Pending queue sizes, ledger totals and the top journalists, recomputed per request
// @Tags reports
// @Produce json
// @Success 200 {object} dto.AdminDashboardResponse
// @Failure 403 {object} dto.ErrorResponse "Staff access required"
// @Security BearerAuth
// @Router /reports/dashboard [get]
func (h *reportingHandler) getAdminDashboard(c *gin.Context) {
	dashboard, err := h.reportingService.AdminDashboard(c.Request.Context())
	if err != nil {
		respondError(c, err, "Failed to build dashboard")
		return
	}

	c.JSON(http.StatusOK, dto.ToAdminDashboardResponse(dashboard))
}
