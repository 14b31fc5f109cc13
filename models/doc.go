// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

/*
Package models defines request, response, and domain types for the API.

# Request Types

  - CreateCompetitionRequest: name, starting_lives, entry_fee
  - UpdatePaymentRequest: status, payment_id, amount
  - CreateMatchweekRequest: week_number, name, start/end dates, deadline
  - AddFixtureRequest: home_team, away_team, kickoff_time
  - AdvanceMatchweekRequest: status
  - SubmitPickRequest: matchweek_id, fixture_id, selected_team
  - ResolveMatchweekRequest: outcomes (fixture_id -> Outcome)

# Domain Types

  - Competition: name, slug, starting lives, entry fee
  - Entry: lives, active flag, payment status
  - Matchweek: week number, dates, one-way status
  - Fixture: home/away teams and the result once known
  - Pick: one team per entry per matchweek; IsWinningPick is nil until resolved
  - Outcome: a fixture result from the result feed
  - Resolution: what a resolved matchweek did to the entries

# Constants

Matchweek status values:

	MatchweekUpcoming  = "upcoming"
	MatchweekOpen      = "open"
	MatchweekClosed    = "closed"
	MatchweekCompleted = "completed"

Payment status values:

	PaymentPending = "pending"
	PaymentPaid    = "paid"
	PaymentFailed  = "failed"

Fixture results:

	ResultHome = "home"
	ResultAway = "away"
	ResultDraw = "draw"

Money amounts use github.com/shopspring/decimal.
*/
package models
