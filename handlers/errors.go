// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package handlers

import (
	"errors"
	"log/slog"
	"net/http"

	"github.com/danielhkuo/last-player-standing/ledger"
	"github.com/danielhkuo/last-player-standing/middleware"
)

// writeLedgerError maps ledger failures to HTTP statuses. Unknown errors
// are logged and reported as 500 with a generic message.
func writeLedgerError(w http.ResponseWriter, err error, failure string) {
	switch {
	case errors.Is(err, ledger.ErrNotFound):
		middleware.ErrorResponse(w, http.StatusNotFound, err.Error())
	case errors.Is(err, ledger.ErrTeamAlreadyUsed),
		errors.Is(err, ledger.ErrDuplicatePickForMatchweek),
		errors.Is(err, ledger.ErrAlreadyResolved),
		errors.Is(err, ledger.ErrInvalidState),
		errors.Is(err, ledger.ErrStorageConflict):
		middleware.ErrorResponse(w, http.StatusConflict, err.Error())
	case errors.Is(err, ledger.ErrInvalidPick),
		errors.Is(err, ledger.ErrInvalidOutcome),
		errors.Is(err, ledger.ErrInvalidInput):
		middleware.ErrorResponse(w, http.StatusBadRequest, err.Error())
	default:
		slog.Error(failure, "error", err)
		middleware.ErrorResponse(w, http.StatusInternalServerError, failure)
	}
}
