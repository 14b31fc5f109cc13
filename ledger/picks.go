// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package ledger

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"log/slog"

	"github.com/google/uuid"

	"github.com/danielhkuo/last-player-standing/models"
)

const pickColumns = `id, entry_id, matchweek_id, fixture_id, selected_team, is_winning_pick, created_at`

// SubmitPick records the entry's pick for a matchweek and marks the team
// as used, in one transaction. The store's uniqueness constraints decide
// any race that slips past the checks.
func (s *Service) SubmitPick(ctx context.Context, entryID, matchweekID, fixtureID, team string) (*models.Pick, error) {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback()

	entry, err := loadEntry(ctx, tx, entryID)
	if err != nil {
		return nil, err
	}
	if entry.PaymentStatus != models.PaymentPaid {
		return nil, fmt.Errorf("%w: no paid entry %s", ErrNotFound, entryID)
	}
	if !entry.IsActive {
		return nil, fmt.Errorf("%w: entry has been eliminated", ErrInvalidState)
	}

	mw, err := loadMatchweek(ctx, tx, matchweekID)
	if err != nil {
		return nil, err
	}
	if mw.CompetitionID != entry.CompetitionID {
		return nil, fmt.Errorf("%w: matchweek %s is not part of this competition", ErrNotFound, matchweekID)
	}
	if mw.Status != models.MatchweekOpen {
		return nil, fmt.Errorf("%w: matchweek is %s", ErrInvalidState, mw.Status)
	}
	if !s.now().Before(mw.Deadline) {
		return nil, fmt.Errorf("%w: pick deadline has passed", ErrInvalidState)
	}

	fixture, err := loadFixture(ctx, tx, fixtureID)
	if err != nil {
		return nil, err
	}
	if fixture.MatchweekID != matchweekID {
		return nil, fmt.Errorf("%w: fixture %s is not in this matchweek", ErrNotFound, fixtureID)
	}
	if team != fixture.HomeTeam && team != fixture.AwayTeam {
		return nil, fmt.Errorf("%w: %q does not play in this fixture", ErrInvalidPick, team)
	}

	existing, err := findPick(ctx, tx, entryID, matchweekID)
	if err != nil {
		return nil, err
	}
	if existing != nil {
		return nil, ErrDuplicatePickForMatchweek
	}

	used, err := hasUsedTeam(ctx, tx, entryID, team)
	if err != nil {
		return nil, err
	}
	if used {
		return nil, fmt.Errorf("%w: %s", ErrTeamAlreadyUsed, team)
	}

	pick := &models.Pick{
		ID:           uuid.NewString(),
		EntryID:      entryID,
		MatchweekID:  matchweekID,
		FixtureID:    fixtureID,
		SelectedTeam: team,
		CreatedAt:    s.clock(),
	}
	if err := insertPick(ctx, tx, pick); err != nil {
		return nil, err
	}
	if err := recordUsage(ctx, tx, entryID, matchweekID, team, pick.CreatedAt); err != nil {
		return nil, err
	}

	if err := tx.Commit(); err != nil {
		if mapped := conflictError(err); mapped != err {
			return nil, mapped
		}
		return nil, fmt.Errorf("failed to commit pick: %w", err)
	}
	s.invalidateUsage(ctx, entryID)

	slog.Info("pick submitted", "entry_id", entryID, "matchweek_id", matchweekID, "team", team)
	return pick, nil
}

func insertPick(ctx context.Context, q querier, p *models.Pick) error {
	_, err := q.ExecContext(ctx, `
		INSERT INTO pick (id, entry_id, matchweek_id, fixture_id, selected_team, created_at)
		VALUES ($1, $2, $3, $4, $5, $6)
	`, p.ID, p.EntryID, p.MatchweekID, p.FixtureID, p.SelectedTeam, p.CreatedAt)
	if err != nil {
		if mapped := conflictError(err); mapped != err {
			return mapped
		}
		return fmt.Errorf("failed to insert pick: %w", err)
	}
	return nil
}

// GetUserPicksForMatchweek returns the entry's pick for a matchweek, or
// nil when it has not picked.
func (s *Service) GetUserPicksForMatchweek(ctx context.Context, entryID, matchweekID string) (*models.Pick, error) {
	return findPick(ctx, s.db, entryID, matchweekID)
}

func findPick(ctx context.Context, q querier, entryID, matchweekID string) (*models.Pick, error) {
	row := q.QueryRowContext(ctx, `
		SELECT `+pickColumns+` FROM pick WHERE entry_id = $1 AND matchweek_id = $2
	`, entryID, matchweekID)
	p, err := scanPick(row)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to load pick: %w", err)
	}
	return p, nil
}

// ListPicks returns the entry's pick history in matchweek order.
func (s *Service) ListPicks(ctx context.Context, entryID string) ([]models.Pick, error) {
	if _, err := loadEntry(ctx, s.db, entryID); err != nil {
		return nil, err
	}

	rows, err := s.db.QueryContext(ctx, `
		SELECT p.id, p.entry_id, p.matchweek_id, p.fixture_id, p.selected_team, p.is_winning_pick, p.created_at
		FROM pick p
		JOIN matchweek m ON m.id = p.matchweek_id
		WHERE p.entry_id = $1
		ORDER BY m.week_number
	`, entryID)
	if err != nil {
		return nil, fmt.Errorf("failed to query picks: %w", err)
	}
	return collectPicks(rows)
}

func listMatchweekPicks(ctx context.Context, q querier, matchweekID string) ([]models.Pick, error) {
	rows, err := q.QueryContext(ctx, `SELECT `+pickColumns+` FROM pick WHERE matchweek_id = $1`, matchweekID)
	if err != nil {
		return nil, fmt.Errorf("failed to query picks: %w", err)
	}
	return collectPicks(rows)
}

func collectPicks(rows *sql.Rows) ([]models.Pick, error) {
	defer rows.Close()

	picks := []models.Pick{}
	for rows.Next() {
		p, err := scanPick(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan pick: %w", err)
		}
		picks = append(picks, *p)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to read picks: %w", err)
	}
	return picks, nil
}

func scanPick(row rowScanner) (*models.Pick, error) {
	var p models.Pick
	var won sql.NullBool
	err := row.Scan(&p.ID, &p.EntryID, &p.MatchweekID, &p.FixtureID, &p.SelectedTeam, &won, &p.CreatedAt)
	if err != nil {
		return nil, err
	}
	if won.Valid {
		p.IsWinningPick = &won.Bool
	}
	return &p, nil
}
