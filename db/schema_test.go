// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package db

import (
	"context"
	"database/sql"
	"errors"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/lib/pq"
)

func openTestStore(t *testing.T) *sql.DB {
	t.Helper()

	conn, err := Open(context.Background(), DriverSQLite, filepath.Join(t.TempDir(), "schema.db"))
	if err != nil {
		t.Fatalf("Failed to open sqlite store: %v", err)
	}
	t.Cleanup(func() { conn.Close() })

	return conn
}

func mustExec(t *testing.T, c *sql.DB, query string, args ...any) {
	t.Helper()
	if _, err := c.Exec(query, args...); err != nil {
		t.Fatalf("exec failed: %v\n%s", err, query)
	}
}

func TestCreateSchemaIdempotent(t *testing.T) {
	c := openTestStore(t)

	for i := 0; i < 2; i++ {
		if err := CreateSchema(c); err != nil {
			t.Fatalf("CreateSchema call %d failed: %v", i+1, err)
		}
	}

	for _, table := range []string{"competition", "entry", "matchweek", "fixture", "pick", "team_usage"} {
		var count int
		if err := c.QueryRow("SELECT COUNT(*) FROM " + table).Scan(&count); err != nil {
			t.Errorf("table %s not usable: %v", table, err)
		}
	}
}

func TestUniqueViolationSQLite(t *testing.T) {
	c := openTestStore(t)
	if err := CreateSchema(c); err != nil {
		t.Fatal(err)
	}

	now := time.Now().UTC()
	mustExec(t, c, `INSERT INTO competition (id, name, slug, starting_lives, entry_fee, created_at) VALUES ('c1', 'Cup', 'cup', 1, 0, $1)`, now)
	mustExec(t, c, `INSERT INTO entry (id, competition_id, user_id, lives_remaining, is_active, payment_status, created_at) VALUES ('e1', 'c1', 'u1', 1, $1, 'paid', $2)`, true, now)
	mustExec(t, c, `INSERT INTO matchweek (id, competition_id, week_number, name, start_date, end_date, deadline, status) VALUES ('m1', 'c1', 1, 'Week 1', $1, $1, $1, 'open')`, now)
	mustExec(t, c, `INSERT INTO matchweek (id, competition_id, week_number, name, start_date, end_date, deadline, status) VALUES ('m2', 'c1', 2, 'Week 2', $1, $1, $1, 'open')`, now)
	mustExec(t, c, `INSERT INTO fixture (id, matchweek_id, home_team, away_team, kickoff_time) VALUES ('f1', 'm1', 'Arsenal', 'Chelsea', $1)`, now)
	mustExec(t, c, `INSERT INTO fixture (id, matchweek_id, home_team, away_team, kickoff_time) VALUES ('f2', 'm2', 'Arsenal', 'Everton', $1)`, now)
	mustExec(t, c, `INSERT INTO pick (id, entry_id, matchweek_id, fixture_id, selected_team, created_at) VALUES ('p1', 'e1', 'm1', 'f1', 'Arsenal', $1)`, now)

	tests := []struct {
		name       string
		query      string
		wantDetail string
	}{
		{
			name:       "same team in another matchweek",
			query:      `INSERT INTO pick (id, entry_id, matchweek_id, fixture_id, selected_team, created_at) VALUES ('p2', 'e1', 'm2', 'f2', 'Arsenal', $1)`,
			wantDetail: "selected_team",
		},
		{
			name:       "second pick in the same matchweek",
			query:      `INSERT INTO pick (id, entry_id, matchweek_id, fixture_id, selected_team, created_at) VALUES ('p3', 'e1', 'm1', 'f1', 'Chelsea', $1)`,
			wantDetail: "matchweek_id",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := c.Exec(tt.query, now)
			if err == nil {
				t.Fatal("expected a constraint error")
			}
			detail, ok := UniqueViolation(err)
			if !ok {
				t.Fatalf("expected a unique violation, got %v", err)
			}
			if !strings.Contains(detail, tt.wantDetail) {
				t.Errorf("expected detail to mention %s, got %q", tt.wantDetail, detail)
			}
		})
	}
}

func TestUniqueViolationPostgresError(t *testing.T) {
	err := &pq.Error{Code: "23505", Constraint: "pick_entry_team_key"}

	detail, ok := UniqueViolation(err)
	if !ok || detail != "pick_entry_team_key" {
		t.Errorf("expected pick_entry_team_key, got %q (%v)", detail, ok)
	}

	if _, ok := UniqueViolation(&pq.Error{Code: "23503"}); ok {
		t.Error("foreign key violation must not be reported as unique")
	}
	if _, ok := UniqueViolation(errors.New("boom")); ok {
		t.Error("plain error must not be reported as unique")
	}
	if _, ok := UniqueViolation(nil); ok {
		t.Error("nil must not be reported as unique")
	}
}

func TestSQLiteConstraintColumns(t *testing.T) {
	got := sqliteConstraintColumns("constraint failed: UNIQUE constraint failed: pick.entry_id, pick.selected_team (2067)")
	if got != "pick.entry_id, pick.selected_team" {
		t.Errorf("unexpected columns %q", got)
	}
}

func TestOpenUnsupported(t *testing.T) {
	if _, err := Open(context.Background(), "mysql", "x"); err == nil {
		t.Error("expected an error for an unsupported store")
	}
}
