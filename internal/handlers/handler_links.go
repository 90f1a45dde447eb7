package handlers

import (
	"log/slog"
	"net/http"

	"github.com/gin-gonic/gin"

	portssvc "github.com/wezaprosoft/press_rewards_app/internal/core/ports/services"
	"github.com/wezaprosoft/press_rewards_app/internal/dto"
	"github.com/wezaprosoft/press_rewards_app/internal/middleware"
)

// linkHandler handles published link submission and review.
type linkHandler struct {
	linkService portssvc.LinkReviewSvcFacade
}

func newLinkHandler(ls portssvc.LinkReviewSvcFacade) *linkHandler {
	return &linkHandler{linkService: ls}
}

// RegisterLinkRoutes registers all published-link routes. Review actions are
// staff only; submission requires a journalist principal.
func RegisterLinkRoutes(rg *gin.RouterGroup, ls portssvc.LinkReviewSvcFacade) {
	h := newLinkHandler(ls)

	links := rg.Group("/links")
	{
		links.POST("", h.submitLink)
		links.GET("", h.listLinks)
		links.GET("/:linkID", h.getLink)
		links.POST("/:linkID/approve", middleware.RequireStaff(), h.approveLink)
		links.POST("/:linkID/reject", middleware.RequireStaff(), h.rejectLink)
	}
}

// submitLink godoc
// @Summary Submit a published link
// @Description Claims publication of a press release at a URL; starts in pending review
// @Tags links
// @Accept json
// @Produce json
// @Param link body dto.SubmitLinkRequest true "Link details"
// @Success 201 {object} dto.PublishedLinkResponse
// @Failure 400 {object} dto.ErrorResponse "Invalid input"
// @Failure 403 {object} dto.ErrorResponse "No journalist record linked to this account"
// @Failure 404 {object} dto.ErrorResponse "Press release not found"
// @Security BearerAuth
// @Router /links [post]
func (h *linkHandler) submitLink(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())

	var req dto.SubmitLinkRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, dto.ErrorResponse{Error: "Invalid request format: " + err.Error()})
		return
	}

	_, journalistID, ok := requireJournalistPrincipal(c)
	if !ok {
		return
	}

	link, err := h.linkService.SubmitLink(c.Request.Context(), journalistID, req)
	if err != nil {
		respondError(c, err, "Failed to submit link")
		return
	}

	logger.Info("Link submitted via API", slog.String("link_id", link.LinkID))
	c.JSON(http.StatusCreated, dto.ToPublishedLinkResponse(link))
}

// listLinks godoc
// @Summary List published links
// @Description Staff may filter freely; journalists see only their own links
// @Tags links
// @Produce json
// @Param status query string false "pending, approved or rejected"
// @Param journalistID query string false "Filter by journalist (staff only)"
// @Param limit query int false "Page size"
// @Param nextToken query string false "Pagination token"
// @Success 200 {object} dto.ListLinksResponse
// @Security BearerAuth
// @Router /links [get]
func (h *linkHandler) listLinks(c *gin.Context) {
	var params dto.ListLinksParams
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

	links, nextToken, err := h.linkService.ListLinks(c.Request.Context(), params)
	if err != nil {
		respondError(c, err, "Failed to list links")
		return
	}

	c.JSON(http.StatusOK, dto.ListLinksResponse{
		Links:     dto.ToPublishedLinkResponses(links),
		NextToken: nextToken,
	})
}

// getLink godoc
// @Summary Get a published link
// @Tags links
// @Produce json
// @Param linkID path string true "Link ID"
// @Success 200 {object} dto.PublishedLinkResponse
// @Failure 404 {object} dto.ErrorResponse "Link not found"
// @Security BearerAuth
// @Router /links/{linkID} [get]
func (h *linkHandler) getLink(c *gin.Context) {
	link, err := h.linkService.GetLink(c.Request.Context(), c.Param("linkID"))
	if err != nil {
		respondError(c, err, "Failed to retrieve link")
		return
	}

	principal, ok := requirePrincipal(c)
	if !ok {
		return
	}
	if !canActFor(principal, link.JournalistID) {
		c.JSON(http.StatusForbidden, dto.ErrorResponse{Error: "Forbidden"})
		return
	}

	c.JSON(http.StatusOK, dto.ToPublishedLinkResponse(link))
}

// approveLink godoc
// @Summary Approve a pending link
// @Description Approves the link; the first approval for a (journalist, press release) pair awards points
// @Tags links
// @Produce json
// @Param linkID path string true "Link ID"
// @Success 200 {object} dto.PublishedLinkResponse
// @Failure 404 {object} dto.ErrorResponse "Link not found"
// @Failure 409 {object} dto.ErrorResponse "Link already reviewed"
// @Security BearerAuth
// @Router /links/{linkID}/approve [post]
func (h *linkHandler) approveLink(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	linkID := c.Param("linkID")

	principal, ok := requirePrincipal(c)
	if !ok {
		return
	}

	link, err := h.linkService.ApproveLink(c.Request.Context(), linkID, principal.UserID)
	if err != nil {
		respondError(c, err, "Failed to approve link")
		return
	}

	logger.Info("Link approved via API", slog.String("link_id", linkID))
	c.JSON(http.StatusOK, dto.ToPublishedLinkResponse(link))
}

// rejectLink godoc
// @Summary Reject a pending link
// @Description Rejects the link with optional notes; never affects the ledger
// @Tags links
// @Accept json
// @Produce json
// @Param linkID path string true "Link ID"
// @Param rejection body dto.RejectLinkRequest false "Reviewer notes"
// @Success 200 {object} dto.PublishedLinkResponse
// @Failure 404 {object} dto.ErrorResponse "Link not found"
// @Failure 409 {object} dto.ErrorResponse "Link already reviewed"
// @Security BearerAuth
// @Router /links/{linkID}/reject [post]
func (h *linkHandler) rejectLink(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	linkID := c.Param("linkID")

	var req dto.RejectLinkRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, dto.ErrorResponse{Error: "Invalid request format: " + err.Error()})
		return
	}

	principal, ok := requirePrincipal(c)
	if !ok {
		return
	}

	link, err := h.linkService.RejectLink(c.Request.Context(), linkID, principal.UserID, req.Notes)
	if err != nil {
		respondError(c, err, "Failed to reject link")
		return
	}

	logger.Info("Link rejected via API", slog.String("link_id", linkID))
	c.JSON(http.StatusOK, dto.ToPublishedLinkResponse(link))
}
