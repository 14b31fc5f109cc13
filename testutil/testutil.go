// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package testutil

import (
	"bytes"
	"context"
	"database/sql"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"path/filepath"
	"testing"
	"time"

	"github.com/google/uuid"

	"github.com/danielhkuo/last-player-standing/cliparse"
	"github.com/danielhkuo/last-player-standing/db"
	"github.com/danielhkuo/last-player-standing/models"
)

// TestAdminKey is the admin key accepted by GetTestConfig
const TestAdminKey = "test-admin-key"

// SetupTestDB creates a fresh local store with the full schema. Each test
// gets its own file in a temp directory.
func SetupTestDB(t *testing.T) *sql.DB {
	t.Helper()

	path := filepath.Join(t.TempDir(), "test.db")
	conn, err := db.Open(context.Background(), db.DriverSQLite, path)
	if err != nil {
		t.Fatalf("Failed to open test database: %v", err)
	}
	t.Cleanup(func() { conn.Close() })

	if err := db.CreateSchema(conn); err != nil {
		t.Fatalf("Failed to create schema: %v", err)
	}

	return conn
}

// GetTestConfig returns a standard test configuration
func GetTestConfig() cliparse.Config {
	return cliparse.Config{
		Port:              3318,
		DatabaseType:      cliparse.DatabaseSQLite,
		AdminKey:          TestAdminKey,
		SchedulerInterval: time.Minute,
	}
}

// Now returns the current time the way the store keeps it
func Now() time.Time {
	return time.Now().UTC().Truncate(time.Second)
}

// CreateTestCompetition inserts a competition with the given starting lives
// and an entry fee of 10
func CreateTestCompetition(t *testing.T, db *sql.DB, lives int) string {
	t.Helper()

	id := uuid.NewString()
	_, err := db.Exec(`
		INSERT INTO competition (id, name, slug, starting_lives, entry_fee, created_at)
		VALUES ($1, $2, $3, $4, $5, $6)
	`, id, "Test Competition", "test-"+id, lives, "10", Now())
	if err != nil {
		t.Fatalf("Failed to create test competition: %v", err)
	}

	return id
}

// CreateTestEntry inserts an active entry with the competition's starting
// lives. paymentStatus should be "pending", "paid", or "failed"
func CreateTestEntry(t *testing.T, db *sql.DB, competitionID, userID, paymentStatus string) string {
	t.Helper()

	id := uuid.NewString()
	_, err := db.Exec(`
		INSERT INTO entry (id, competition_id, user_id, lives_remaining, is_active, payment_status, created_at)
		SELECT $1, id, $2, starting_lives, $3, $4, $5 FROM competition WHERE id = $6
	`, id, userID, true, paymentStatus, Now(), competitionID)
	if err != nil {
		t.Fatalf("Failed to create test entry: %v", err)
	}

	return id
}

// CreateTestMatchweek inserts a matchweek that started an hour ago and
// whose pick deadline is a day away
func CreateTestMatchweek(t *testing.T, db *sql.DB, competitionID string, week int, status string) string {
	t.Helper()

	now := Now()
	id := uuid.NewString()
	_, err := db.Exec(`
		INSERT INTO matchweek (id, competition_id, week_number, name, start_date, end_date, deadline, status)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8)
	`, id, competitionID, week, "Matchweek", now.Add(-time.Hour), now.Add(48*time.Hour), now.Add(24*time.Hour), status)
	if err != nil {
		t.Fatalf("Failed to create test matchweek: %v", err)
	}

	return id
}

// AddTestFixture adds a fixture to a matchweek and returns the fixture ID
func AddTestFixture(t *testing.T, db *sql.DB, matchweekID, home, away string) string {
	t.Helper()

	id := uuid.NewString()
	_, err := db.Exec(`
		INSERT INTO fixture (id, matchweek_id, home_team, away_team, kickoff_time)
		VALUES ($1, $2, $3, $4, $5)
	`, id, matchweekID, home, away, Now().Add(30*time.Hour))
	if err != nil {
		t.Fatalf("Failed to create test fixture: %v", err)
	}

	return id
}

// SetMatchweekStatus forces a matchweek into status
func SetMatchweekStatus(t *testing.T, db *sql.DB, matchweekID, status string) {
	t.Helper()

	if _, err := db.Exec(`UPDATE matchweek SET status = $1 WHERE id = $2`, status, matchweekID); err != nil {
		t.Fatalf("Failed to set matchweek status: %v", err)
	}
}

// GetTestEntry reads an entry's lives and active flag
func GetTestEntry(t *testing.T, db *sql.DB, entryID string) models.Entry {
	t.Helper()

	var e models.Entry
	err := db.QueryRow(`
		SELECT id, lives_remaining, is_active, payment_status FROM entry WHERE id = $1
	`, entryID).Scan(&e.ID, &e.LivesRemaining, &e.IsActive, &e.PaymentStatus)
	if err != nil {
		t.Fatalf("Failed to read test entry: %v", err)
	}

	return e
}

// CountRows counts the rows of table that belong to entryID
func CountRows(t *testing.T, db *sql.DB, table, entryID string) int {
	t.Helper()

	var n int
	// table comes from test code only
	if err := db.QueryRow(`SELECT COUNT(*) FROM `+table+` WHERE entry_id = $1`, entryID).Scan(&n); err != nil {
		t.Fatalf("Failed to count %s rows: %v", table, err)
	}

	return n
}

// MakeRequest creates an HTTP test request
func MakeRequest(method, path string, body interface{}, headers map[string]string) *http.Request {
	var req *http.Request
	if body != nil {
		jsonBody, _ := json.Marshal(body)
		req = httptest.NewRequest(method, path, bytes.NewReader(jsonBody))
		req.Header.Set("Content-Type", "application/json")
	} else {
		req = httptest.NewRequest(method, path, nil)
	}

	for k, v := range headers {
		req.Header.Set(k, v)
	}

	return req
}

// AssertStatus checks that the response has the expected status code
func AssertStatus(t *testing.T, w *httptest.ResponseRecorder, expected int) {
	t.Helper()
	if w.Code != expected {
		t.Errorf("Expected status %d, got %d. Body: %s", expected, w.Code, w.Body.String())
	}
}

// AssertJSON decodes the response body into the provided struct
func AssertJSON(t *testing.T, w *httptest.ResponseRecorder, v interface{}) {
	t.Helper()
	if err := json.NewDecoder(w.Body).Decode(v); err != nil {
		t.Fatalf("Failed to decode JSON response: %v", err)
	}
}
