// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

/*
Package db opens the store and creates its schema.

# Stores

Two stores share one schema:

  - postgres: the remote store, via github.com/lib/pq
  - sqlite: the local fallback file, via modernc.org/sqlite

	conn, err := db.Open(ctx, cfg.DatabaseType, cfg.DSN())
	if err := db.CreateSchema(conn); err != nil {
		log.Fatal(err)
	}

CreateSchema is safe to call multiple times - uses IF NOT EXISTS for all
tables and indexes.

# Tables

  - competition: competition metadata, starting lives and entry fee
  - entry: one user's participation in a competition
  - matchweek: scoring periods with a one-way status
  - fixture: matches of a matchweek and their results
  - pick: one team selection per entry per matchweek
  - team_usage: teams an entry has already used

# Relationships

	competition 1──* entry
	competition 1──* matchweek
	matchweek 1──* fixture
	entry 1──* pick
	entry 1──* team_usage

Rows are never deleted; there are no cascades.

# Uniqueness

The game rules are backed by constraints so concurrent writers cannot
break them:

  - pick (entry_id, matchweek_id): one pick per matchweek
  - pick (entry_id, selected_team): a team is picked once per entry
  - team_usage (entry_id, team_name): same rule on the ledger
  - matchweek (competition_id, week_number)
  - entry (competition_id, user_id)

UniqueViolation classifies the resulting driver errors for both stores.
*/
package db
