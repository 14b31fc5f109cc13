// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package ledger

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/danielhkuo/last-player-standing/models"
)

// ResolveMatchweek applies fixture outcomes to a closed matchweek: picks
// are marked won or lost, every active paid entry without a winning pick
// loses a life, and the matchweek becomes completed. Outcomes are keyed by
// fixture ID; fixtures missing from outcomes use the result already stored
// on them.
func (s *Service) ResolveMatchweek(ctx context.Context, matchweekID string, outcomes map[string]models.Outcome) (*models.Resolution, error) {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback()

	mw, err := loadMatchweek(ctx, tx, matchweekID)
	if err != nil {
		return nil, err
	}
	switch mw.Status {
	case models.MatchweekCompleted:
		return nil, ErrAlreadyResolved
	case models.MatchweekClosed:
	default:
		return nil, fmt.Errorf("%w: matchweek is %s", ErrInvalidState, mw.Status)
	}

	moved, err := s.advance(ctx, tx, mw.ID, models.MatchweekClosed, models.MatchweekCompleted)
	if err != nil {
		return nil, err
	}
	if !moved {
		return nil, ErrAlreadyResolved
	}

	fixtures, err := listFixtures(ctx, tx, matchweekID)
	if err != nil {
		return nil, err
	}
	byID := make(map[string]*models.Fixture, len(fixtures))
	for i := range fixtures {
		byID[fixtures[i].ID] = &fixtures[i]
	}
	for id := range outcomes {
		if _, ok := byID[id]; !ok {
			return nil, fmt.Errorf("%w: fixture %s is not in this matchweek", ErrNotFound, id)
		}
	}

	for _, f := range byID {
		o, ok := outcomes[f.ID]
		if !ok {
			continue
		}
		winner, err := winningTeam(f, o)
		if err != nil {
			return nil, err
		}
		_, err = tx.ExecContext(ctx, `
			UPDATE fixture SET result = $1, winning_team = $2 WHERE id = $3
		`, o.Result, nullString(winner), f.ID)
		if err != nil {
			return nil, fmt.Errorf("failed to record fixture result: %w", err)
		}
		result := o.Result
		f.Result = &result
		f.WinningTeam = nil
		if winner != "" {
			f.WinningTeam = &winner
		}
	}

	picks, err := listMatchweekPicks(ctx, tx, matchweekID)
	if err != nil {
		return nil, err
	}

	picked := make(map[string]bool, len(picks))
	won := make(map[string]bool, len(picks))
	for _, p := range picks {
		f := byID[p.FixtureID]
		if f == nil || f.Result == nil {
			return nil, fmt.Errorf("%w: fixture %s has no result", ErrInvalidState, p.FixtureID)
		}

		win := isWin(f, p.SelectedTeam)
		if p.IsWinningPick != nil {
			win = *p.IsWinningPick
		} else {
			_, err := tx.ExecContext(ctx, `
				UPDATE pick SET is_winning_pick = $1 WHERE id = $2 AND is_winning_pick IS NULL
			`, win, p.ID)
			if err != nil {
				return nil, fmt.Errorf("failed to mark pick: %w", err)
			}
		}
		picked[p.EntryID] = true
		won[p.EntryID] = win
	}

	rows, err := tx.QueryContext(ctx, `
		SELECT `+entryColumns+` FROM entry
		WHERE competition_id = $1 AND is_active = $2 AND payment_status = $3
		ORDER BY created_at, id
	`, mw.CompetitionID, true, models.PaymentPaid)
	if err != nil {
		return nil, fmt.Errorf("failed to query active entries: %w", err)
	}
	entries, err := collectEntries(rows)
	if err != nil {
		return nil, err
	}

	res := &models.Resolution{MatchweekID: matchweekID, Eliminated: []string{}}
	for _, e := range entries {
		if won[e.ID] {
			res.Survivors++
			continue
		}
		if !picked[e.ID] {
			res.Forfeits++
		}

		lives := max(e.LivesRemaining-1, 0)
		active := lives > 0
		_, err := tx.ExecContext(ctx, `
			UPDATE entry SET lives_remaining = $1, is_active = $2 WHERE id = $3
		`, lives, active, e.ID)
		if err != nil {
			return nil, fmt.Errorf("failed to update entry lives: %w", err)
		}

		res.LivesLost++
		if active {
			res.Survivors++
		} else {
			res.Eliminated = append(res.Eliminated, e.ID)
		}
	}

	if err := tx.Commit(); err != nil {
		return nil, fmt.Errorf("failed to commit resolution: %w", err)
	}

	slog.Info("matchweek resolved",
		"matchweek_id", matchweekID,
		"survivors", res.Survivors,
		"lives_lost", res.LivesLost,
		"forfeits", res.Forfeits,
		"eliminated", len(res.Eliminated))
	return res, nil
}

// winningTeam validates an outcome against its fixture and returns the
// winning team, or "" for a draw.
func winningTeam(f *models.Fixture, o models.Outcome) (string, error) {
	var winner string
	switch o.Result {
	case models.ResultHome:
		winner = f.HomeTeam
	case models.ResultAway:
		winner = f.AwayTeam
	case models.ResultDraw:
		if o.WinningTeam != "" {
			return "", fmt.Errorf("%w: a draw has no winning team", ErrInvalidOutcome)
		}
		return "", nil
	default:
		return "", fmt.Errorf("%w: unknown result %q for fixture %s", ErrInvalidOutcome, o.Result, f.ID)
	}

	if o.WinningTeam != "" && o.WinningTeam != winner {
		return "", fmt.Errorf("%w: %s does not match %s result for fixture %s", ErrInvalidOutcome, o.WinningTeam, o.Result, f.ID)
	}
	return winner, nil
}

func isWin(f *models.Fixture, team string) bool {
	if *f.Result == models.ResultDraw || f.WinningTeam == nil {
		return false
	}
	return *f.WinningTeam == team
}
