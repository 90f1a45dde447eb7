// Package handlers wires the HTTP surface to the service layer. Handlers
// bind and validate input, resolve the acting principal, call exactly one
// service method, and translate sentinel errors to status codes.
package handlers

import (
	"errors"
	"log/slog"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/wezaprosoft/press_rewards_app/internal/apperrors"
	"github.com/wezaprosoft/press_rewards_app/internal/dto"
	"github.com/wezaprosoft/press_rewards_app/internal/middleware"
)

// respondError maps a service error onto an HTTP status. Sentinel matches use
// the error's own message; anything unmatched becomes an opaque 500 so
// internals do not leak.
func respondError(c *gin.Context, err error, internalMsg string) {
	switch {
	case errors.Is(err, apperrors.ErrValidation),
		errors.Is(err, apperrors.ErrInvalidStatus),
		errors.Is(err, apperrors.ErrInsufficientPoints):
		c.JSON(http.StatusBadRequest, dto.ErrorResponse{Error: err.Error()})
	case errors.Is(err, apperrors.ErrUnauthorized):
		c.JSON(http.StatusUnauthorized, dto.ErrorResponse{Error: err.Error()})
	case errors.Is(err, apperrors.ErrForbidden):
		c.JSON(http.StatusForbidden, dto.ErrorResponse{Error: err.Error()})
	case errors.Is(err, apperrors.ErrNotFound):
		c.JSON(http.StatusNotFound, dto.ErrorResponse{Error: err.Error()})
	case errors.Is(err, apperrors.ErrInvalidTransition),
		errors.Is(err, apperrors.ErrDuplicate):
		c.JSON(http.StatusConflict, dto.ErrorResponse{Error: err.Error()})
	default:
		middleware.GetLoggerFromCtx(c.Request.Context()).Error(internalMsg, slog.String("error", err.Error()))
		c.JSON(http.StatusInternalServerError, dto.ErrorResponse{Error: internalMsg})
	}
}

// requirePrincipal fetches the authenticated principal, aborting with 401 if
// the auth middleware did not run.
func requirePrincipal(c *gin.Context) (middleware.Principal, bool) {
	principal, ok := middleware.GetPrincipalFromCtx(c.Request.Context())
	if !ok {
		c.JSON(http.StatusUnauthorized, dto.ErrorResponse{Error: "Unauthorized"})
	}
	return principal, ok
}

// requireJournalistPrincipal resolves the journalist the caller acts as.
// Staff users without a journalist record cannot submit links or request
// withdrawals.
func requireJournalistPrincipal(c *gin.Context) (middleware.Principal, string, bool) {
	principal, ok := requirePrincipal(c)
	if !ok {
		return principal, "", false
	}
	if principal.JournalistID == nil {
		c.JSON(http.StatusForbidden, dto.ErrorResponse{Error: "No journalist record linked to this account"})
		return principal, "", false
	}
	return principal, *principal.JournalistID, true
}

// canActFor reports whether the principal may access journalist-scoped data:
// staff always, otherwise only the journalist's own record.
func canActFor(principal middleware.Principal, journalistID string) bool {
	if principal.IsStaff {
		return true
	}
	return principal.JournalistID != nil && *principal.JournalistID == journalistID
}
