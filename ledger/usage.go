// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package ledger

import (
	"context"
	"fmt"
	"time"
)

// HasUsedTeam reports whether the entry has ever picked team. Names are
// compared exactly as stored on the fixture.
func (s *Service) HasUsedTeam(ctx context.Context, entryID, team string) (bool, error) {
	return hasUsedTeam(ctx, s.db, entryID, team)
}

func hasUsedTeam(ctx context.Context, q querier, entryID, team string) (bool, error) {
	var used bool
	err := q.QueryRowContext(ctx, `
		SELECT EXISTS(
			SELECT 1 FROM pick WHERE entry_id = $1 AND selected_team = $2
		) OR EXISTS(
			SELECT 1 FROM team_usage WHERE entry_id = $1 AND team_name = $2
		)
	`, entryID, team).Scan(&used)
	if err != nil {
		return false, fmt.Errorf("failed to check team usage: %w", err)
	}
	return used, nil
}

// RecordUsage appends one usage record outside of a pick submission.
// A second record for the same team fails with ErrTeamAlreadyUsed.
func (s *Service) RecordUsage(ctx context.Context, entryID, matchweekID, team string) error {
	if err := recordUsage(ctx, s.db, entryID, matchweekID, team, s.clock()); err != nil {
		return err
	}
	s.invalidateUsage(ctx, entryID)
	return nil
}

func recordUsage(ctx context.Context, q querier, entryID, matchweekID, team string, at time.Time) error {
	_, err := q.ExecContext(ctx, `
		INSERT INTO team_usage (entry_id, team_name, matchweek_id, times_used, created_at)
		VALUES ($1, $2, $3, 1, $4)
	`, entryID, team, matchweekID, at)
	if err != nil {
		if mapped := conflictError(err); mapped != err {
			return mapped
		}
		return fmt.Errorf("failed to record team usage: %w", err)
	}
	return nil
}

// GetTeamUsage lists the teams the entry has used, in matchweek order.
// Both picks and standalone usage records count, as in HasUsedTeam.
func (s *Service) GetTeamUsage(ctx context.Context, entryID string) ([]string, error) {
	var version int64
	if s.cache != nil {
		teams, v, ok := s.cache.Load(ctx, entryID)
		if ok {
			return teams, nil
		}
		version = v
	}

	if _, err := loadEntry(ctx, s.db, entryID); err != nil {
		return nil, err
	}

	// UNION drops the usage row that mirrors each pick
	rows, err := s.db.QueryContext(ctx, `
		SELECT used.team FROM (
			SELECT p.selected_team AS team, m.week_number AS week
			FROM pick p
			JOIN matchweek m ON m.id = p.matchweek_id
			WHERE p.entry_id = $1
			UNION
			SELECT u.team_name AS team, m.week_number AS week
			FROM team_usage u
			JOIN matchweek m ON m.id = u.matchweek_id
			WHERE u.entry_id = $1
		) used
		ORDER BY used.week, used.team
	`, entryID)
	if err != nil {
		return nil, fmt.Errorf("failed to query team usage: %w", err)
	}
	defer rows.Close()

	teams := []string{}
	for rows.Next() {
		var team string
		if err := rows.Scan(&team); err != nil {
			return nil, fmt.Errorf("failed to scan team usage: %w", err)
		}
		teams = append(teams, team)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to read team usage: %w", err)
	}

	if s.cache != nil {
		s.cache.Store(ctx, entryID, teams, version)
	}
	return teams, nil
}

func (s *Service) invalidateUsage(ctx context.Context, entryID string) {
	if s.cache != nil {
		s.cache.Invalidate(ctx, entryID)
	}
}
