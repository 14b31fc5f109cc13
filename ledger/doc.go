// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

/*
Package ledger implements the rules of a last player standing competition.

Every entry starts with a number of lives. Each matchweek it picks one team
to win its fixture; a team may be picked only once per entry for the whole
competition. A losing pick, a draw or a missed pick costs a life, and an
entry with no lives left is eliminated for good.

# Service

All operations hang off Service, which wraps the store and an optional
team usage cache:

	svc := ledger.NewService(conn, cache)
	pick, err := svc.SubmitPick(ctx, entryID, matchweekID, fixtureID, "Arsenal")

# Matchweek Lifecycle

	upcoming → open → closed → completed

AdvanceMatchweek and AdvanceDue make the first two moves. Only
ResolveMatchweek moves closed → completed, and only once.

# Picks

SubmitPick runs its checks and writes in one transaction:

  - the entry is paid (else ErrNotFound) and active (else ErrInvalidState)
  - the matchweek is open and its deadline has not passed
  - the fixture is in the matchweek and the team plays in it
  - the entry has no pick for the matchweek yet
  - the entry has never used the team

The pick and its team_usage row are then inserted. Uniqueness constraints
on both tables reject a concurrent writer that passed the same checks; the
violation is reported as ErrTeamAlreadyUsed or ErrDuplicatePickForMatchweek,
both wrapping ErrStorageConflict.

# Resolution

ResolveMatchweek takes fixture outcomes from the result feed, marks each
pick won or lost, and takes a life from every active paid entry that did
not win. Either the whole matchweek is applied or nothing is.

# Errors

Callers match failures with errors.Is against the exported Err values.
*/
package ledger
