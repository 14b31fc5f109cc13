// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package handlers

import (
	"net/http"

	"github.com/danielhkuo/last-player-standing/ledger"
	"github.com/danielhkuo/last-player-standing/middleware"
	"github.com/danielhkuo/last-player-standing/models"
)

type PickHandler struct {
	svc *ledger.Service
}

func NewPickHandler(svc *ledger.Service) *PickHandler {
	return &PickHandler{svc: svc}
}

// SubmitPick handles POST /entries/{id}/picks
func (h *PickHandler) SubmitPick(w http.ResponseWriter, r *http.Request) {
	entryID := r.PathValue("id")

	userID, err := middleware.UserID(r)
	if err != nil {
		middleware.ErrorResponse(w, http.StatusUnauthorized, "X-User-ID header is required")
		return
	}

	var req models.SubmitPickRequest
	if err := middleware.ParseJSONBody(r, &req); err != nil {
		middleware.ErrorResponse(w, http.StatusBadRequest, "Invalid JSON")
		return
	}

	if req.MatchweekID == "" || req.FixtureID == "" || req.SelectedTeam == "" {
		middleware.ErrorResponse(w, http.StatusBadRequest, "matchweek_id, fixture_id and selected_team are required")
		return
	}

	// Only the owner may pick for an entry
	entry, err := h.svc.GetEntry(r.Context(), entryID)
	if err != nil {
		writeLedgerError(w, err, "Failed to submit pick")
		return
	}
	if entry.UserID != userID {
		middleware.ErrorResponse(w, http.StatusForbidden, "Entry belongs to another user")
		return
	}

	pick, err := h.svc.SubmitPick(r.Context(), entryID, req.MatchweekID, req.FixtureID, req.SelectedTeam)
	if err != nil {
		writeLedgerError(w, err, "Failed to submit pick")
		return
	}

	middleware.JSONResponse(w, http.StatusCreated, pick)
}
