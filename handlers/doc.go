// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

/*
Package handlers contains HTTP request handlers for the Last Player Standing API.

# Handler Types

Each handler is a struct holding the ledger service and config:

  - CompetitionHandler: competitions, entries and matchweek creation
  - EntryHandler: entry lookup, payment updates, team usage and pick history
  - PickHandler: pick submission
  - MatchweekHandler: fixtures, status moves and resolution

Handlers are created via constructor functions:

	pickHandler := handlers.NewPickHandler(svc)

# Competition Setup (admin)

	POST /competitions                  → CreateCompetition
	POST /competitions/{id}/matchweeks  → CreateMatchweek
	POST /matchweeks/{id}/fixtures      → AddFixture
	POST /matchweeks/{id}/status        → AdvanceStatus
	POST /entries/{id}/payment          → UpdatePayment

Admin operations require the X-Admin-Key header.

# Playing

	POST /competitions/{id}/entries        → CreateEntry
	GET  /competitions/{id}/matchweeks     → ListMatchweeks
	GET  /matchweeks/{id}/fixtures         → GetFixtures
	POST /entries/{id}/picks               → SubmitPick
	GET  /entries/{id}/team-usage          → GetTeamUsage

Entry and pick creation require the X-User-ID header; picks are only
accepted from the entry's owner.

# Resolution (admin)

	POST /matchweeks/{id}/resolve → Resolve

Accepts JSON outcomes keyed by fixture ID, or a YAML result feed when sent
with Content-Type application/yaml.

# Errors

Ledger errors map to 404 (not found), 409 (wrong state, team reuse,
duplicate pick, already resolved) and 400 (invalid pick or outcome).
*/
package handlers
