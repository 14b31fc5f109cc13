// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package handlers

import (
	"net/http"

	"github.com/danielhkuo/last-player-standing/ledger"
	"github.com/danielhkuo/last-player-standing/middleware"
	"github.com/danielhkuo/last-player-standing/models"
)

type EntryHandler struct {
	svc *ledger.Service
}

func NewEntryHandler(svc *ledger.Service) *EntryHandler {
	return &EntryHandler{svc: svc}
}

// GetEntry handles GET /entries/{id}
func (h *EntryHandler) GetEntry(w http.ResponseWriter, r *http.Request) {
	e, err := h.svc.GetEntry(r.Context(), r.PathValue("id"))
	if err != nil {
		writeLedgerError(w, err, "Failed to load entry")
		return
	}

	middleware.JSONResponse(w, http.StatusOK, e)
}

// UpdatePayment handles POST /entries/{id}/payment
// Called by the payment collaborator once checkout succeeds or fails.
func (h *EntryHandler) UpdatePayment(w http.ResponseWriter, r *http.Request) {
	var req models.UpdatePaymentRequest
	if err := middleware.ParseJSONBody(r, &req); err != nil {
		middleware.ErrorResponse(w, http.StatusBadRequest, "Invalid JSON")
		return
	}

	if req.Status == "" {
		middleware.ErrorResponse(w, http.StatusBadRequest, "status is required")
		return
	}

	e, err := h.svc.UpdatePaymentStatus(r.Context(), r.PathValue("id"), req.Status, req.PaymentID, req.Amount)
	if err != nil {
		writeLedgerError(w, err, "Failed to update payment")
		return
	}

	middleware.JSONResponse(w, http.StatusOK, e)
}

// GetTeamUsage handles GET /entries/{id}/team-usage
func (h *EntryHandler) GetTeamUsage(w http.ResponseWriter, r *http.Request) {
	entryID := r.PathValue("id")

	teams, err := h.svc.GetTeamUsage(r.Context(), entryID)
	if err != nil {
		writeLedgerError(w, err, "Failed to load team usage")
		return
	}

	middleware.JSONResponse(w, http.StatusOK, models.TeamUsageResponse{
		EntryID: entryID,
		Teams:   teams,
	})
}

// ListPicks handles GET /entries/{id}/picks
func (h *EntryHandler) ListPicks(w http.ResponseWriter, r *http.Request) {
	picks, err := h.svc.ListPicks(r.Context(), r.PathValue("id"))
	if err != nil {
		writeLedgerError(w, err, "Failed to list picks")
		return
	}

	middleware.JSONResponse(w, http.StatusOK, picks)
}

// GetMatchweekPick handles GET /entries/{id}/matchweeks/{mw}/pick
// Returns 404 when the entry has not picked yet.
func (h *EntryHandler) GetMatchweekPick(w http.ResponseWriter, r *http.Request) {
	pick, err := h.svc.GetUserPicksForMatchweek(r.Context(), r.PathValue("id"), r.PathValue("mw"))
	if err != nil {
		writeLedgerError(w, err, "Failed to load pick")
		return
	}
	if pick == nil {
		middleware.ErrorResponse(w, http.StatusNotFound, "No pick for this matchweek")
		return
	}

	middleware.JSONResponse(w, http.StatusOK, pick)
}

// ListMyEntries handles GET /me/entries
func (h *EntryHandler) ListMyEntries(w http.ResponseWriter, r *http.Request) {
	userID, err := middleware.UserID(r)
	if err != nil {
		middleware.ErrorResponse(w, http.StatusUnauthorized, "X-User-ID header is required")
		return
	}

	entries, err := h.svc.ListUserEntries(r.Context(), userID)
	if err != nil {
		writeLedgerError(w, err, "Failed to list entries")
		return
	}

	middleware.JSONResponse(w, http.StatusOK, entries)
}
