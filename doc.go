// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

/*
Package main provides the entry point for the Last Player Standing API server.

Last Player Standing runs "last player standing" football competitions.
Each paid entry picks one team per matchweek and may never pick the same
team twice in a competition. A losing or drawn pick, or no pick at all,
costs a life; an entry with no lives left is eliminated.

# Starting the Server

With no database URL the server uses a local SQLite file:

	ADMIN_KEY=secret go run .

Or against PostgreSQL with flags:

	go run . -p 3318 -d "postgres://..." --admin-key secret

A .env file in the working directory is loaded first.

# Configuration

Required settings:

  - ADMIN_KEY (--admin-key): Key expected in X-Admin-Key for admin routes
  - DATABASE_URL (-d): PostgreSQL connection string, when DATABASE_TYPE is postgres

Optional settings:

  - PORT (-p): Server port (default: 3318)
  - DATABASE_TYPE (-t): sqlite or postgres (default: postgres if DATABASE_URL is set)
  - LOCAL_DB_PATH (--local-db): SQLite file (default: last-player-standing.db)
  - REDIS_URL (--redis): Team usage cache
  - SCHEDULER_INTERVAL (--interval): How often matchweeks are opened and closed (default: 1m)

# Architecture

  - ledger: Team usage, picks, matchweek lifecycle and resolution
  - handlers: HTTP request handlers (competitions, entries, picks, matchweeks)
  - router: Route definitions using Go 1.22+ routing
  - middleware: CORS, logging, admin key, JSON helpers
  - scheduler: Opens and closes matchweeks on their dates
  - feed: YAML result feed parsing
  - cache: Redis cache for team usage reads
  - models: Request/response and domain types
  - auth: Admin key and user ID validation
  - db: Connections, schema and constraint errors
  - cliparse: Configuration parsing

The cmd/resolve command applies a result feed file from the command line.

See package documentation for each component.
*/
package main
