// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

/*
Package router defines HTTP routes for the Last Player Standing API.

# Route Registration

NewRouter creates a configured http.ServeMux with all endpoints:

	mux := router.NewRouter(svc, cfg)

# Endpoints

Health:

	GET /health

Competition setup (admin, requires X-Admin-Key):

	POST /competitions                 - Create competition
	POST /competitions/{id}/matchweeks - Add matchweek
	POST /matchweeks/{id}/fixtures     - Add fixture
	POST /matchweeks/{id}/status       - Open or close a matchweek
	POST /matchweeks/{id}/resolve      - Apply results
	POST /entries/{id}/payment         - Record payment outcome

Browsing (public):

	GET /competitions/{id}/matchweeks - Open and upcoming matchweeks
	GET /competitions/{id}/standings  - Paid entries, survivors first
	GET /matchweeks/{id}/fixtures     - Fixtures by kickoff

Entries and picks (X-User-ID):

	POST /competitions/{id}/entries          - Enter a competition
	GET  /me/entries                         - Caller's entries
	GET  /entries/{id}                       - Entry details
	GET  /entries/{id}/team-usage            - Teams already used
	GET  /entries/{id}/picks                 - Pick history
	POST /entries/{id}/picks                 - Submit pick (owner only)
	GET  /entries/{id}/matchweeks/{mw}/pick  - Pick for one matchweek
*/
package router
