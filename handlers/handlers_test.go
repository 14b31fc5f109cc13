// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package handlers

import (
	"errors"
	"fmt"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/danielhkuo/last-player-standing/ledger"
	"github.com/danielhkuo/last-player-standing/models"
	"github.com/danielhkuo/last-player-standing/testutil"
)

// call runs one handler with path values set the way the router would.
func call(h http.HandlerFunc, req *http.Request, pathValues ...string) *httptest.ResponseRecorder {
	for i := 0; i+1 < len(pathValues); i += 2 {
		req.SetPathValue(pathValues[i], pathValues[i+1])
	}
	w := httptest.NewRecorder()
	h(w, req)
	return w
}

func TestWriteLedgerError(t *testing.T) {
	testCases := []struct {
		name     string
		err      error
		expected int
	}{
		{"not found", fmt.Errorf("%w: entry e1", ledger.ErrNotFound), http.StatusNotFound},
		{"invalid state", fmt.Errorf("%w: matchweek is closed", ledger.ErrInvalidState), http.StatusConflict},
		{"team already used", ledger.ErrTeamAlreadyUsed, http.StatusConflict},
		{"duplicate pick", ledger.ErrDuplicatePickForMatchweek, http.StatusConflict},
		{"already resolved", ledger.ErrAlreadyResolved, http.StatusConflict},
		{"storage conflict", fmt.Errorf("%w: %w", ledger.ErrTeamAlreadyUsed, ledger.ErrStorageConflict), http.StatusConflict},
		{"invalid pick", ledger.ErrInvalidPick, http.StatusBadRequest},
		{"invalid outcome", ledger.ErrInvalidOutcome, http.StatusBadRequest},
		{"invalid input", ledger.ErrInvalidInput, http.StatusBadRequest},
		{"unexpected", errors.New("connection reset"), http.StatusInternalServerError},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			w := httptest.NewRecorder()
			writeLedgerError(w, tc.err, "Failed")
			testutil.AssertStatus(t, w, tc.expected)

			var resp models.ErrorResponse
			testutil.AssertJSON(t, w, &resp)
			if resp.Error != http.StatusText(tc.expected) {
				t.Errorf("Expected error '%s', got '%s'", http.StatusText(tc.expected), resp.Error)
			}
		})
	}
}

func TestSubmitPickRequiresOwner(t *testing.T) {
	db := testutil.SetupTestDB(t)
	pickHandler := NewPickHandler(ledger.NewService(db, nil))

	compID := testutil.CreateTestCompetition(t, db, 1)
	entryID := testutil.CreateTestEntry(t, db, compID, "alice", models.PaymentPaid)
	mwID := testutil.CreateTestMatchweek(t, db, compID, 1, models.MatchweekOpen)
	fixtureID := testutil.AddTestFixture(t, db, mwID, "Arsenal", "Chelsea")

	body := models.SubmitPickRequest{MatchweekID: mwID, FixtureID: fixtureID, SelectedTeam: "Arsenal"}

	testCases := []struct {
		name     string
		entryID  string
		headers  map[string]string
		body     interface{}
		expected int
	}{
		{"missing user", entryID, nil, body, http.StatusUnauthorized},
		{"invalid JSON", entryID, map[string]string{"X-User-ID": "alice"}, nil, http.StatusBadRequest},
		{"missing fields", entryID, map[string]string{"X-User-ID": "alice"}, models.SubmitPickRequest{MatchweekID: mwID}, http.StatusBadRequest},
		{"unknown entry", "missing", map[string]string{"X-User-ID": "alice"}, body, http.StatusNotFound},
		{"someone else's entry", entryID, map[string]string{"X-User-ID": "mallory"}, body, http.StatusForbidden},
		{"team not in fixture", entryID, map[string]string{"X-User-ID": "alice"}, models.SubmitPickRequest{MatchweekID: mwID, FixtureID: fixtureID, SelectedTeam: "Spurs"}, http.StatusBadRequest},
		{"owner", entryID, map[string]string{"X-User-ID": "alice"}, body, http.StatusCreated},
		{"owner again", entryID, map[string]string{"X-User-ID": "alice"}, body, http.StatusConflict},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			req := testutil.MakeRequest("POST", "/entries/"+tc.entryID+"/picks", tc.body, tc.headers)
			w := call(pickHandler.SubmitPick, req, "id", tc.entryID)
			testutil.AssertStatus(t, w, tc.expected)
		})
	}
}

func TestGetMatchweekPickNone(t *testing.T) {
	db := testutil.SetupTestDB(t)
	entryHandler := NewEntryHandler(ledger.NewService(db, nil))

	compID := testutil.CreateTestCompetition(t, db, 1)
	entryID := testutil.CreateTestEntry(t, db, compID, "alice", models.PaymentPaid)
	mwID := testutil.CreateTestMatchweek(t, db, compID, 1, models.MatchweekOpen)

	req := testutil.MakeRequest("GET", "/entries/"+entryID+"/matchweeks/"+mwID+"/pick", nil, nil)
	w := call(entryHandler.GetMatchweekPick, req, "id", entryID, "mw", mwID)
	testutil.AssertStatus(t, w, http.StatusNotFound)
}

func TestResolveRejectsFeedForOtherMatchweek(t *testing.T) {
	db := testutil.SetupTestDB(t)
	matchweekHandler := NewMatchweekHandler(ledger.NewService(db, nil))

	compID := testutil.CreateTestCompetition(t, db, 1)
	mwID := testutil.CreateTestMatchweek(t, db, compID, 1, models.MatchweekClosed)

	testCases := []struct {
		name string
		body string
	}{
		{"other matchweek", "matchweek_id: someone-else\nfixtures: []\n"},
		{"broken feed", "fixtures: [unclosed"},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			req := httptest.NewRequest("POST", "/matchweeks/"+mwID+"/resolve", strings.NewReader(tc.body))
			req.Header.Set("Content-Type", "application/yaml")
			w := call(matchweekHandler.Resolve, req, "id", mwID)
			testutil.AssertStatus(t, w, http.StatusBadRequest)
		})
	}
}

func TestIsYAML(t *testing.T) {
	testCases := map[string]bool{
		"application/yaml":                true,
		"application/x-yaml":              true,
		"text/yaml; charset=utf-8":        true,
		"application/json":                false,
		"application/json; charset=utf-8": false,
		"":                                false,
	}

	for contentType, expected := range testCases {
		if got := isYAML(contentType); got != expected {
			t.Errorf("isYAML(%q) = %v, want %v", contentType, got, expected)
		}
	}
}
