package handlers

import (
	"log/slog"
	"net/http"

	"github.com/gin-gonic/gin"

	portssvc "github.com/wezaprosoft/press_rewards_app/internal/core/ports/services"
	"github.com/wezaprosoft/press_rewards_app/internal/dto"
	"github.com/wezaprosoft/press_rewards_app/internal/middleware"
)

// pressReleaseHandler handles press release metadata, distribution and stats.
type pressReleaseHandler struct {
	pressReleaseService portssvc.PressReleaseSvcFacade
	reportingService    portssvc.ReportingSvcFacade
}

func newPressReleaseHandler(ps portssvc.PressReleaseSvcFacade, rs portssvc.ReportingSvcFacade) *pressReleaseHandler {
	return &pressReleaseHandler{pressReleaseService: ps, reportingService: rs}
}

// registerPressReleaseRoutes registers all press-release-related routes.
func registerPressReleaseRoutes(rg *gin.RouterGroup, ps portssvc.PressReleaseSvcFacade, rs portssvc.ReportingSvcFacade) {
	h := newPressReleaseHandler(ps, rs)

	releases := rg.Group("/press-releases")
	{
		releases.POST("", middleware.RequireStaff(), h.createPressRelease)
		releases.GET("", h.listPressReleases)
		releases.GET("/:pressReleaseID", h.getPressRelease)
		releases.PUT("/:pressReleaseID", middleware.RequireStaff(), h.updatePressRelease)
		releases.POST("/:pressReleaseID/share", middleware.RequireStaff(), h.sharePressRelease)
		releases.GET("/:pressReleaseID/stats", middleware.RequireStaff(), h.getPressReleaseStats)
	}
}

// createPressRelease godoc
// @Summary Create a press release
// @Tags press-releases
// @Accept json
// @Produce json
// @Param pressRelease body dto.CreatePressReleaseRequest true "Press release details"
// @Success 201 {object} dto.PressReleaseResponse
// @Failure 400 {object} dto.ErrorResponse "Invalid input"
// @Security BearerAuth
// @Router /press-releases [post]
func (h *pressReleaseHandler) createPressRelease(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())

	var req dto.CreatePressReleaseRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, dto.ErrorResponse{Error: "Invalid request format: " + err.Error()})
		return
	}

	principal, ok := requirePrincipal(c)
	if !ok {
		return
	}

	pressRelease, err := h.pressReleaseService.CreatePressRelease(c.Request.Context(), req, principal.UserID)
	if err != nil {
		respondError(c, err, "Failed to create press release")
		return
	}

	logger.Info("Press release created via API", slog.String("press_release_id", pressRelease.PressReleaseID))
	c.JSON(http.StatusCreated, dto.ToPressReleaseResponse(pressRelease))
}

// listPressReleases godoc
// @Summary List press releases
// @Tags press-releases
// @Produce json
// @Param limit query int false "Page size"
// @Param nextToken query string false "Pagination token"
// @Success 200 {object} dto.ListPressReleasesResponse
// @Security BearerAuth
// @Router /press-releases [get]
func (h *pressReleaseHandler) listPressReleases(c *gin.Context) {
	var params dto.ListParams
	if err := c.ShouldBindQuery(&params); err != nil {
		c.JSON(http.StatusBadRequest, dto.ErrorResponse{Error: "Invalid query parameters: " + err.Error()})
		return
	}

	releases, nextToken, err := h.pressReleaseService.ListPressReleases(c.Request.Context(), params)
	if err != nil {
		respondError(c, err, "Failed to list press releases")
		return
	}

	c.JSON(http.StatusOK, dto.ListPressReleasesResponse{
		PressReleases: dto.ToPressReleaseResponses(releases),
		NextToken:     nextToken,
	})
}

// getPressRelease godoc
// @Summary Get a press release
// @Tags press-releases
// @Produce json
// @Param pressReleaseID path string true "Press release ID"
// @Success 200 {object} dto.PressReleaseResponse
// @Failure 404 {object} dto.ErrorResponse "Press release not found"
// @Security BearerAuth
// @Router /press-releases/{pressReleaseID} [get]
func (h *pressReleaseHandler) getPressRelease(c *gin.Context) {
	pressRelease, err := h.pressReleaseService.GetPressRelease(c.Request.Context(), c.Param("pressReleaseID"))
	if err != nil {
		respondError(c, err, "Failed to retrieve press release")
		return
	}

	c.JSON(http.StatusOK, dto.ToPressReleaseResponse(pressRelease))
}

// updatePressRelease godoc
// @Summary Update a press release
// @Tags press-releases
// @Accept json
// @Produce json
// @Param pressReleaseID path string true "Press release ID"
// @Param pressRelease body dto.UpdatePressReleaseRequest true "Fields to update"
// @Success 200 {object} dto.PressReleaseResponse
// @Failure 404 {object} dto.ErrorResponse "Press release not found"
// @Security BearerAuth
// @Router /press-releases/{pressReleaseID} [put]
func (h *pressReleaseHandler) updatePressRelease(c *gin.Context) {
	var req dto.UpdatePressReleaseRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, dto.ErrorResponse{Error: "Invalid request format: " + err.Error()})
		return
	}

	principal, ok := requirePrincipal(c)
	if !ok {
		return
	}

	pressRelease, err := h.pressReleaseService.UpdatePressRelease(c.Request.Context(), c.Param("pressReleaseID"), req, principal.UserID)
	if err != nil {
		respondError(c, err, "Failed to update press release")
		return
	}

	c.JSON(http.StatusOK, dto.ToPressReleaseResponse(pressRelease))
}

// sharePressRelease godoc
// @Summary Share a press release with journalists
// @Description Records distribution to the given journalists; re-sharing is a no-op
// @Tags press-releases
// @Accept json
// @Produce json
// @Param pressReleaseID path string true "Press release ID"
// @Param share body dto.SharePressReleaseRequest true "Journalist IDs"
// @Success 204 "Shared"
// @Failure 404 {object} dto.ErrorResponse "Press release or journalist not found"
// @Security BearerAuth
// @Router /press-releases/{pressReleaseID}/share [post]
func (h *pressReleaseHandler) sharePressRelease(c *gin.Context) {
	var req dto.SharePressReleaseRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, dto.ErrorResponse{Error: "Invalid request format: " + err.Error()})
		return
	}

	principal, ok := requirePrincipal(c)
	if !ok {
		return
	}

	err := h.pressReleaseService.SharePressRelease(c.Request.Context(), c.Param("pressReleaseID"), req.JournalistIDs, principal.UserID)
	if err != nil {
		respondError(c, err, "Failed to share press release")
		return
	}

	c.Status(http.StatusNoContent)
}

// getPressReleaseStats godoc
// @Summary Get engagement stats for a press release
// @Tags press-releases
// @Produce json
// @Param pressReleaseID path string true "Press release ID"
// @Success 200 {object} dto.PressReleaseStatsResponse
// @Failure 404 {object} dto.ErrorResponse "Press release not found"
// @Security BearerAuth
// @Router /press-releases/{pressReleaseID}/stats [get]
func (h *pressReleaseHandler) getPressReleaseStats(c *gin.Context) {
	stats, err := h.reportingService.PressReleaseStats(c.Request.Context(), c.Param("pressReleaseID"))
	if err != nil {
		respondError(c, err, "Failed to compute press release stats")
		return
	}

	c.JSON(http.StatusOK, dto.ToPressReleaseStatsResponse(stats))
}
