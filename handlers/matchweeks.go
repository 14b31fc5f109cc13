// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package handlers

import (
	"mime"
	"net/http"

	"github.com/danielhkuo/last-player-standing/feed"
	"github.com/danielhkuo/last-player-standing/ledger"
	"github.com/danielhkuo/last-player-standing/middleware"
	"github.com/danielhkuo/last-player-standing/models"
)

// maxFeedBytes caps the size of a posted result feed
const maxFeedBytes = 1 << 20

type MatchweekHandler struct {
	svc *ledger.Service
}

func NewMatchweekHandler(svc *ledger.Service) *MatchweekHandler {
	return &MatchweekHandler{svc: svc}
}

// GetFixtures handles GET /matchweeks/{id}/fixtures
func (h *MatchweekHandler) GetFixtures(w http.ResponseWriter, r *http.Request) {
	fixtures, err := h.svc.GetFixtures(r.Context(), r.PathValue("id"))
	if err != nil {
		writeLedgerError(w, err, "Failed to list fixtures")
		return
	}

	middleware.JSONResponse(w, http.StatusOK, fixtures)
}

// AddFixture handles POST /matchweeks/{id}/fixtures
func (h *MatchweekHandler) AddFixture(w http.ResponseWriter, r *http.Request) {
	var req models.AddFixtureRequest
	if err := middleware.ParseJSONBody(r, &req); err != nil {
		middleware.ErrorResponse(w, http.StatusBadRequest, "Invalid JSON")
		return
	}

	f, err := h.svc.AddFixture(r.Context(), r.PathValue("id"), req)
	if err != nil {
		writeLedgerError(w, err, "Failed to add fixture")
		return
	}

	middleware.JSONResponse(w, http.StatusCreated, f)
}

// AdvanceStatus handles POST /matchweeks/{id}/status
func (h *MatchweekHandler) AdvanceStatus(w http.ResponseWriter, r *http.Request) {
	var req models.AdvanceMatchweekRequest
	if err := middleware.ParseJSONBody(r, &req); err != nil {
		middleware.ErrorResponse(w, http.StatusBadRequest, "Invalid JSON")
		return
	}

	if req.Status == "" {
		middleware.ErrorResponse(w, http.StatusBadRequest, "status is required")
		return
	}

	mw, err := h.svc.AdvanceMatchweek(r.Context(), r.PathValue("id"), req.Status)
	if err != nil {
		writeLedgerError(w, err, "Failed to update matchweek")
		return
	}

	middleware.JSONResponse(w, http.StatusOK, mw)
}

// Resolve handles POST /matchweeks/{id}/resolve
// The body is either a JSON ResolveMatchweekRequest or, with a YAML content
// type, a result feed document.
func (h *MatchweekHandler) Resolve(w http.ResponseWriter, r *http.Request) {
	matchweekID := r.PathValue("id")

	var outcomes map[string]models.Outcome
	if isYAML(r.Header.Get("Content-Type")) {
		f, err := feed.Parse(http.MaxBytesReader(w, r.Body, maxFeedBytes))
		if err != nil {
			middleware.ErrorResponse(w, http.StatusBadRequest, err.Error())
			return
		}
		if f.MatchweekID != "" && f.MatchweekID != matchweekID {
			middleware.ErrorResponse(w, http.StatusBadRequest, "Feed is for a different matchweek")
			return
		}
		outcomes = f.Outcomes()
	} else {
		var req models.ResolveMatchweekRequest
		if err := middleware.ParseJSONBody(r, &req); err != nil {
			middleware.ErrorResponse(w, http.StatusBadRequest, "Invalid JSON")
			return
		}
		outcomes = req.Outcomes
	}

	res, err := h.svc.ResolveMatchweek(r.Context(), matchweekID, outcomes)
	if err != nil {
		writeLedgerError(w, err, "Failed to resolve matchweek")
		return
	}

	middleware.JSONResponse(w, http.StatusOK, res)
}

func isYAML(contentType string) bool {
	mediaType, _, err := mime.ParseMediaType(contentType)
	if err != nil {
		return false
	}
	switch mediaType {
	case "application/yaml", "application/x-yaml", "text/yaml", "text/x-yaml":
		return true
	}
	return false
}
