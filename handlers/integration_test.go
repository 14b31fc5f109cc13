// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package handlers

import (
	"fmt"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/danielhkuo/last-player-standing/ledger"
	"github.com/danielhkuo/last-player-standing/models"
	"github.com/danielhkuo/last-player-standing/testutil"
	"github.com/shopspring/decimal"
)

// TestFullSeasonWorkflow walks two matchweeks through the HTTP handlers:
// setup, payment, picks, YAML and JSON resolution, and the read endpoints.
func TestFullSeasonWorkflow(t *testing.T) {
	db := testutil.SetupTestDB(t)
	svc := ledger.NewService(db, nil)

	competitionHandler := NewCompetitionHandler(svc)
	entryHandler := NewEntryHandler(svc)
	pickHandler := NewPickHandler(svc)
	matchweekHandler := NewMatchweekHandler(svc)

	alice := map[string]string{"X-User-ID": "alice"}
	now := time.Now().UTC()

	// Step 1: Create competition
	req := testutil.MakeRequest("POST", "/competitions", models.CreateCompetitionRequest{
		Name:          "Premier League Survivor",
		StartingLives: 2,
		EntryFee:      decimal.RequireFromString("10"),
	}, nil)
	w := call(competitionHandler.CreateCompetition, req)
	if w.Code != http.StatusCreated {
		t.Fatalf("Step 1 - Create competition failed: %d - %s", w.Code, w.Body.String())
	}
	var comp models.Competition
	testutil.AssertJSON(t, w, &comp)
	t.Logf("Created competition: %s (%s)", comp.ID, comp.Slug)

	// Step 2: Enter as alice
	req = testutil.MakeRequest("POST", "/competitions/"+comp.ID+"/entries", nil, alice)
	w = call(competitionHandler.CreateEntry, req, "id", comp.ID)
	if w.Code != http.StatusCreated {
		t.Fatalf("Step 2 - Create entry failed: %d - %s", w.Code, w.Body.String())
	}
	var entry models.Entry
	testutil.AssertJSON(t, w, &entry)
	if entry.PaymentStatus != models.PaymentPending || entry.LivesRemaining != 2 {
		t.Fatalf("Step 2 - Unexpected entry: %+v", entry)
	}

	// Step 3: Record payment
	req = testutil.MakeRequest("POST", "/entries/"+entry.ID+"/payment", models.UpdatePaymentRequest{
		Status:    models.PaymentPaid,
		PaymentID: "pay_123",
		Amount:    decimal.RequireFromString("10.00"),
	}, nil)
	w = call(entryHandler.UpdatePayment, req, "id", entry.ID)
	if w.Code != http.StatusOK {
		t.Fatalf("Step 3 - Update payment failed: %d - %s", w.Code, w.Body.String())
	}

	// Step 4: Create matchweek 1 with one fixture and open it
	mw1 := createOpenMatchweek(t, competitionHandler, matchweekHandler, comp.ID, 1, now, "Arsenal", "Chelsea")
	fixtures := getFixtures(t, matchweekHandler, mw1)
	if len(fixtures) != 1 {
		t.Fatalf("Step 4 - Expected 1 fixture, got %d", len(fixtures))
	}

	req = testutil.MakeRequest("GET", "/competitions/"+comp.ID+"/matchweeks", nil, nil)
	w = call(competitionHandler.ListMatchweeks, req, "id", comp.ID)
	testutil.AssertStatus(t, w, http.StatusOK)
	var available []models.Matchweek
	testutil.AssertJSON(t, w, &available)
	if len(available) != 1 || available[0].Status != models.MatchweekOpen {
		t.Fatalf("Step 4 - Expected one open matchweek, got %+v", available)
	}

	// Step 5: Pick Arsenal
	submitPick(t, pickHandler, entry.ID, mw1, fixtures[0].ID, "Arsenal", http.StatusCreated)

	req = testutil.MakeRequest("GET", "/entries/"+entry.ID+"/team-usage", nil, nil)
	w = call(entryHandler.GetTeamUsage, req, "id", entry.ID)
	testutil.AssertStatus(t, w, http.StatusOK)
	var usage models.TeamUsageResponse
	testutil.AssertJSON(t, w, &usage)
	if len(usage.Teams) != 1 || usage.Teams[0] != "Arsenal" {
		t.Fatalf("Step 5 - Expected [Arsenal], got %v", usage.Teams)
	}

	// Step 6: Close and resolve from a YAML feed, Arsenal win
	advance(t, matchweekHandler, mw1, models.MatchweekClosed)

	feedDoc := fmt.Sprintf("matchweek_id: %s\nfixtures:\n  - fixture_id: %s\n    result: home\n", mw1, fixtures[0].ID)
	req = httptest.NewRequest("POST", "/matchweeks/"+mw1+"/resolve", strings.NewReader(feedDoc))
	req.Header.Set("Content-Type", "application/yaml")
	w = call(matchweekHandler.Resolve, req, "id", mw1)
	if w.Code != http.StatusOK {
		t.Fatalf("Step 6 - Resolve failed: %d - %s", w.Code, w.Body.String())
	}
	var res models.Resolution
	testutil.AssertJSON(t, w, &res)
	if res.Survivors != 1 || res.LivesLost != 0 {
		t.Fatalf("Step 6 - Unexpected resolution: %+v", res)
	}

	// Step 7: Resolving again conflicts
	req = testutil.MakeRequest("POST", "/matchweeks/"+mw1+"/resolve", models.ResolveMatchweekRequest{
		Outcomes: map[string]models.Outcome{fixtures[0].ID: {Result: models.ResultHome}},
	}, nil)
	w = call(matchweekHandler.Resolve, req, "id", mw1)
	testutil.AssertStatus(t, w, http.StatusConflict)

	// Step 8: Matchweek 2, Arsenal is spent
	mw2 := createOpenMatchweek(t, competitionHandler, matchweekHandler, comp.ID, 2, now, "Arsenal", "Tottenham")
	fixtures2 := getFixtures(t, matchweekHandler, mw2)

	submitPick(t, pickHandler, entry.ID, mw2, fixtures2[0].ID, "Arsenal", http.StatusConflict)
	submitPick(t, pickHandler, entry.ID, mw2, fixtures2[0].ID, "Tottenham", http.StatusCreated)
	submitPick(t, pickHandler, entry.ID, mw2, fixtures2[0].ID, "Tottenham", http.StatusConflict)

	// Step 9: Draw costs a life
	advance(t, matchweekHandler, mw2, models.MatchweekClosed)
	req = testutil.MakeRequest("POST", "/matchweeks/"+mw2+"/resolve", models.ResolveMatchweekRequest{
		Outcomes: map[string]models.Outcome{fixtures2[0].ID: {Result: models.ResultDraw}},
	}, nil)
	w = call(matchweekHandler.Resolve, req, "id", mw2)
	if w.Code != http.StatusOK {
		t.Fatalf("Step 9 - Resolve failed: %d - %s", w.Code, w.Body.String())
	}
	testutil.AssertJSON(t, w, &res)
	if res.LivesLost != 1 || len(res.Eliminated) != 0 {
		t.Fatalf("Step 9 - Unexpected resolution: %+v", res)
	}

	// Step 10: Read back entry, picks and standings
	req = testutil.MakeRequest("GET", "/entries/"+entry.ID, nil, nil)
	w = call(entryHandler.GetEntry, req, "id", entry.ID)
	testutil.AssertStatus(t, w, http.StatusOK)
	testutil.AssertJSON(t, w, &entry)
	if entry.LivesRemaining != 1 || !entry.IsActive {
		t.Errorf("Step 10 - Expected 1 life and active, got %d/%v", entry.LivesRemaining, entry.IsActive)
	}

	req = testutil.MakeRequest("GET", "/entries/"+entry.ID+"/picks", nil, nil)
	w = call(entryHandler.ListPicks, req, "id", entry.ID)
	testutil.AssertStatus(t, w, http.StatusOK)
	var picks []models.Pick
	testutil.AssertJSON(t, w, &picks)
	if len(picks) != 2 {
		t.Fatalf("Step 10 - Expected 2 picks, got %d", len(picks))
	}
	if picks[0].IsWinningPick == nil || !*picks[0].IsWinningPick {
		t.Errorf("Step 10 - Expected week 1 pick to win")
	}
	if picks[1].IsWinningPick == nil || *picks[1].IsWinningPick {
		t.Errorf("Step 10 - Expected week 2 pick to lose")
	}

	req = testutil.MakeRequest("GET", "/entries/"+entry.ID+"/matchweeks/"+mw2+"/pick", nil, nil)
	w = call(entryHandler.GetMatchweekPick, req, "id", entry.ID, "mw", mw2)
	testutil.AssertStatus(t, w, http.StatusOK)
	var pick models.Pick
	testutil.AssertJSON(t, w, &pick)
	if pick.SelectedTeam != "Tottenham" {
		t.Errorf("Step 10 - Expected Tottenham, got %s", pick.SelectedTeam)
	}

	req = testutil.MakeRequest("GET", "/competitions/"+comp.ID+"/standings", nil, nil)
	w = call(competitionHandler.GetStandings, req, "id", comp.ID)
	testutil.AssertStatus(t, w, http.StatusOK)
	var standings []models.Entry
	testutil.AssertJSON(t, w, &standings)
	if len(standings) != 1 || standings[0].ID != entry.ID {
		t.Errorf("Step 10 - Unexpected standings: %+v", standings)
	}

	req = testutil.MakeRequest("GET", "/me/entries", nil, alice)
	w = call(entryHandler.ListMyEntries, req)
	testutil.AssertStatus(t, w, http.StatusOK)
	var mine []models.Entry
	testutil.AssertJSON(t, w, &mine)
	if len(mine) != 1 {
		t.Errorf("Step 10 - Expected 1 entry for alice, got %d", len(mine))
	}

	t.Logf("Season complete: entry %s has %d lives", entry.ID, entry.LivesRemaining)
}

func createOpenMatchweek(t *testing.T, ch *CompetitionHandler, mh *MatchweekHandler, competitionID string, week int, now time.Time, home, away string) string {
	t.Helper()

	req := testutil.MakeRequest("POST", "/competitions/"+competitionID+"/matchweeks", models.CreateMatchweekRequest{
		WeekNumber: week,
		StartDate:  now.Add(-time.Hour),
		Deadline:   now.Add(24 * time.Hour),
		EndDate:    now.Add(48 * time.Hour),
	}, nil)
	w := call(ch.CreateMatchweek, req, "id", competitionID)
	if w.Code != http.StatusCreated {
		t.Fatalf("Create matchweek %d failed: %d - %s", week, w.Code, w.Body.String())
	}
	var mw models.Matchweek
	testutil.AssertJSON(t, w, &mw)
	if mw.Name != fmt.Sprintf("Matchweek %d", week) {
		t.Errorf("Expected default name, got %q", mw.Name)
	}

	req = testutil.MakeRequest("POST", "/matchweeks/"+mw.ID+"/fixtures", models.AddFixtureRequest{
		HomeTeam:    home,
		AwayTeam:    away,
		KickoffTime: now.Add(30 * time.Hour),
	}, nil)
	w = call(mh.AddFixture, req, "id", mw.ID)
	if w.Code != http.StatusCreated {
		t.Fatalf("Add fixture failed: %d - %s", w.Code, w.Body.String())
	}

	advance(t, mh, mw.ID, models.MatchweekOpen)
	return mw.ID
}

func advance(t *testing.T, mh *MatchweekHandler, matchweekID, status string) {
	t.Helper()

	req := testutil.MakeRequest("POST", "/matchweeks/"+matchweekID+"/status", models.AdvanceMatchweekRequest{Status: status}, nil)
	w := call(mh.AdvanceStatus, req, "id", matchweekID)
	if w.Code != http.StatusOK {
		t.Fatalf("Advance to %s failed: %d - %s", status, w.Code, w.Body.String())
	}
}

func getFixtures(t *testing.T, mh *MatchweekHandler, matchweekID string) []models.Fixture {
	t.Helper()

	req := testutil.MakeRequest("GET", "/matchweeks/"+matchweekID+"/fixtures", nil, nil)
	w := call(mh.GetFixtures, req, "id", matchweekID)
	testutil.AssertStatus(t, w, http.StatusOK)
	var fixtures []models.Fixture
	testutil.AssertJSON(t, w, &fixtures)
	return fixtures
}

func submitPick(t *testing.T, ph *PickHandler, entryID, matchweekID, fixtureID, team string, expected int) {
	t.Helper()

	req := testutil.MakeRequest("POST", "/entries/"+entryID+"/picks", models.SubmitPickRequest{
		MatchweekID:  matchweekID,
		FixtureID:    fixtureID,
		SelectedTeam: team,
	}, map[string]string{"X-User-ID": "alice"})
	w := call(ph.SubmitPick, req, "id", entryID)
	if w.Code != expected {
		t.Fatalf("Pick %s: expected %d, got %d - %s", team, expected, w.Code, w.Body.String())
	}
}
