package services

import (
	"context"
	"errors"
	"log/slog"

	"github.com/wezaprosoft/press_rewards_app/internal/apperrors"
	"github.com/wezaprosoft/press_rewards_app/internal/middleware"
)

// retryOnTxConflict runs fn and, if it fails with a transaction conflict,
// retries exactly once before surfacing the error. The compound ledger writes
// (link approval, withdrawal creation and completion) run under row locks, so
// a conflict is rare and a single retry resolves the common case.
func retryOnTxConflict(ctx context.Context, op string, fn func() error) error {
	err := fn()
	if err == nil || !errors.Is(err, apperrors.ErrTxConflict) {
		return err
	}

	middleware.GetLoggerFromCtx(ctx).Warn("Transaction conflict, retrying once", slog.String("operation", op))
	if err := fn(); err != nil {
		return err
	}
	return nil
}
