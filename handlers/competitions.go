// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package handlers

import (
	"net/http"

	"github.com/danielhkuo/last-player-standing/ledger"
	"github.com/danielhkuo/last-player-standing/middleware"
	"github.com/danielhkuo/last-player-standing/models"
)

type CompetitionHandler struct {
	svc *ledger.Service
}

func NewCompetitionHandler(svc *ledger.Service) *CompetitionHandler {
	return &CompetitionHandler{svc: svc}
}

// CreateCompetition handles POST /competitions
func (h *CompetitionHandler) CreateCompetition(w http.ResponseWriter, r *http.Request) {
	var req models.CreateCompetitionRequest
	if err := middleware.ParseJSONBody(r, &req); err != nil {
		middleware.ErrorResponse(w, http.StatusBadRequest, "Invalid JSON")
		return
	}

	if req.Name == "" {
		middleware.ErrorResponse(w, http.StatusBadRequest, "name is required")
		return
	}

	c, err := h.svc.CreateCompetition(r.Context(), req.Name, req.StartingLives, req.EntryFee)
	if err != nil {
		writeLedgerError(w, err, "Failed to create competition")
		return
	}

	middleware.JSONResponse(w, http.StatusCreated, c)
}

// CreateEntry handles POST /competitions/{id}/entries
// The entry belongs to the user in X-User-ID and stays pending until paid.
func (h *CompetitionHandler) CreateEntry(w http.ResponseWriter, r *http.Request) {
	competitionID := r.PathValue("id")

	userID, err := middleware.UserID(r)
	if err != nil {
		middleware.ErrorResponse(w, http.StatusUnauthorized, "X-User-ID header is required")
		return
	}

	e, err := h.svc.CreateEntry(r.Context(), competitionID, userID)
	if err != nil {
		writeLedgerError(w, err, "Failed to create entry")
		return
	}

	middleware.JSONResponse(w, http.StatusCreated, e)
}

// ListMatchweeks handles GET /competitions/{id}/matchweeks
// Only open and upcoming matchweeks are listed.
func (h *CompetitionHandler) ListMatchweeks(w http.ResponseWriter, r *http.Request) {
	matchweeks, err := h.svc.GetAvailableMatchweeks(r.Context(), r.PathValue("id"))
	if err != nil {
		writeLedgerError(w, err, "Failed to list matchweeks")
		return
	}

	middleware.JSONResponse(w, http.StatusOK, matchweeks)
}

// CreateMatchweek handles POST /competitions/{id}/matchweeks
func (h *CompetitionHandler) CreateMatchweek(w http.ResponseWriter, r *http.Request) {
	var req models.CreateMatchweekRequest
	if err := middleware.ParseJSONBody(r, &req); err != nil {
		middleware.ErrorResponse(w, http.StatusBadRequest, "Invalid JSON")
		return
	}

	mw, err := h.svc.CreateMatchweek(r.Context(), r.PathValue("id"), req)
	if err != nil {
		writeLedgerError(w, err, "Failed to create matchweek")
		return
	}

	middleware.JSONResponse(w, http.StatusCreated, mw)
}

// GetStandings handles GET /competitions/{id}/standings
func (h *CompetitionHandler) GetStandings(w http.ResponseWriter, r *http.Request) {
	entries, err := h.svc.GetStandings(r.Context(), r.PathValue("id"))
	if err != nil {
		writeLedgerError(w, err, "Failed to load standings")
		return
	}

	middleware.JSONResponse(w, http.StatusOK, entries)
}
