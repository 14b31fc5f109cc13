// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package db

import (
	"database/sql"
	"fmt"
)

// CreateSchema creates all tables needed for the application.
// Safe to call multiple times - uses IF NOT EXISTS.
func CreateSchema(db *sql.DB) error {
	_, err := db.Exec(schema)
	if err != nil {
		return fmt.Errorf("failed to create schema: %w", err)
	}

	return nil
}

// The schema is shared by Postgres and SQLite, so timestamps are always
// written by the application and no dialect-specific defaults are used.
const schema = `
-- Competitions
CREATE TABLE IF NOT EXISTS competition (
    id TEXT PRIMARY KEY,
    name TEXT NOT NULL,
    slug TEXT NOT NULL UNIQUE,
    starting_lives INTEGER NOT NULL DEFAULT 1 CHECK (starting_lives >= 1),
    entry_fee NUMERIC NOT NULL DEFAULT 0,
    created_at TIMESTAMP NOT NULL
);

-- Entries
CREATE TABLE IF NOT EXISTS entry (
    id TEXT PRIMARY KEY,
    competition_id TEXT NOT NULL REFERENCES competition(id),
    user_id TEXT NOT NULL,
    lives_remaining INTEGER NOT NULL CHECK (lives_remaining >= 0),
    is_active BOOLEAN NOT NULL,
    payment_status TEXT NOT NULL DEFAULT 'pending' CHECK (payment_status IN ('pending', 'paid', 'failed')),
    payment_id TEXT,
    created_at TIMESTAMP NOT NULL,
    CONSTRAINT entry_competition_user_key UNIQUE (competition_id, user_id)
);

CREATE INDEX IF NOT EXISTS idx_entry_competition_id ON entry(competition_id);

-- Matchweeks
CREATE TABLE IF NOT EXISTS matchweek (
    id TEXT PRIMARY KEY,
    competition_id TEXT NOT NULL REFERENCES competition(id),
    week_number INTEGER NOT NULL CHECK (week_number >= 1),
    name TEXT NOT NULL,
    start_date TIMESTAMP NOT NULL,
    end_date TIMESTAMP NOT NULL,
    deadline TIMESTAMP NOT NULL,
    status TEXT NOT NULL DEFAULT 'upcoming' CHECK (status IN ('upcoming', 'open', 'closed', 'completed')),
    CONSTRAINT matchweek_competition_week_key UNIQUE (competition_id, week_number)
);

CREATE INDEX IF NOT EXISTS idx_matchweek_status ON matchweek(status);

-- Fixtures
CREATE TABLE IF NOT EXISTS fixture (
    id TEXT PRIMARY KEY,
    matchweek_id TEXT NOT NULL REFERENCES matchweek(id),
    home_team TEXT NOT NULL,
    away_team TEXT NOT NULL,
    kickoff_time TIMESTAMP NOT NULL,
    result TEXT CHECK (result IN ('home', 'away', 'draw')),
    winning_team TEXT,
    CHECK (home_team <> away_team)
);

CREATE INDEX IF NOT EXISTS idx_fixture_matchweek_id ON fixture(matchweek_id);

-- Picks
CREATE TABLE IF NOT EXISTS pick (
    id TEXT PRIMARY KEY,
    entry_id TEXT NOT NULL REFERENCES entry(id),
    matchweek_id TEXT NOT NULL REFERENCES matchweek(id),
    fixture_id TEXT NOT NULL REFERENCES fixture(id),
    selected_team TEXT NOT NULL,
    is_winning_pick BOOLEAN,
    created_at TIMESTAMP NOT NULL,
    CONSTRAINT pick_entry_matchweek_key UNIQUE (entry_id, matchweek_id),
    CONSTRAINT pick_entry_team_key UNIQUE (entry_id, selected_team)
);

CREATE INDEX IF NOT EXISTS idx_pick_matchweek_id ON pick(matchweek_id);

-- Team usage ledger
CREATE TABLE IF NOT EXISTS team_usage (
    entry_id TEXT NOT NULL REFERENCES entry(id),
    team_name TEXT NOT NULL,
    matchweek_id TEXT NOT NULL REFERENCES matchweek(id),
    times_used INTEGER NOT NULL DEFAULT 1 CHECK (times_used = 1),
    created_at TIMESTAMP NOT NULL,
    CONSTRAINT team_usage_entry_team_key UNIQUE (entry_id, team_name)
);
`
