// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package ledger

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"log/slog"
	"strings"

	"github.com/google/uuid"

	"github.com/danielhkuo/last-player-standing/db"
	"github.com/danielhkuo/last-player-standing/models"
)

const (
	matchweekColumns = `id, competition_id, week_number, name, start_date, end_date, deadline, status`
	fixtureColumns   = `id, matchweek_id, home_team, away_team, kickoff_time, result, winning_team`
)

// transitions lists the moves AdvanceMatchweek may make. closed to
// completed belongs to ResolveMatchweek.
var transitions = map[string]string{
	models.MatchweekUpcoming: models.MatchweekOpen,
	models.MatchweekOpen:     models.MatchweekClosed,
}

// CreateMatchweek appends a matchweek to a competition. Week numbers must
// increase and the pick deadline must fall inside the matchweek window.
func (s *Service) CreateMatchweek(ctx context.Context, competitionID string, req models.CreateMatchweekRequest) (*models.Matchweek, error) {
	if req.WeekNumber < 1 {
		return nil, fmt.Errorf("%w: week number must be at least 1", ErrInvalidInput)
	}
	if req.StartDate.IsZero() || req.EndDate.IsZero() || req.Deadline.IsZero() {
		return nil, fmt.Errorf("%w: start date, end date and deadline are required", ErrInvalidInput)
	}
	if req.EndDate.Before(req.StartDate) {
		return nil, fmt.Errorf("%w: end date is before start date", ErrInvalidInput)
	}
	if req.Deadline.After(req.EndDate) {
		return nil, fmt.Errorf("%w: deadline is after end date", ErrInvalidInput)
	}

	name := strings.TrimSpace(req.Name)
	if name == "" {
		name = fmt.Sprintf("Matchweek %d", req.WeekNumber)
	}

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback()

	if _, err := loadCompetition(ctx, tx, competitionID); err != nil {
		return nil, err
	}

	var latest int
	err = tx.QueryRowContext(ctx, `
		SELECT COALESCE(MAX(week_number), 0) FROM matchweek WHERE competition_id = $1
	`, competitionID).Scan(&latest)
	if err != nil {
		return nil, fmt.Errorf("failed to read latest week number: %w", err)
	}
	if req.WeekNumber <= latest {
		return nil, fmt.Errorf("%w: week number %d must be greater than %d", ErrInvalidState, req.WeekNumber, latest)
	}

	mw := &models.Matchweek{
		ID:            uuid.NewString(),
		CompetitionID: competitionID,
		WeekNumber:    req.WeekNumber,
		Name:          name,
		StartDate:     dbTime(req.StartDate),
		EndDate:       dbTime(req.EndDate),
		Deadline:      dbTime(req.Deadline),
		Status:        models.MatchweekUpcoming,
	}

	_, err = tx.ExecContext(ctx, `
		INSERT INTO matchweek (`+matchweekColumns+`)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8)
	`, mw.ID, mw.CompetitionID, mw.WeekNumber, mw.Name, mw.StartDate, mw.EndDate, mw.Deadline, mw.Status)
	if err != nil {
		if _, dup := db.UniqueViolation(err); dup {
			return nil, fmt.Errorf("%w: week %d already exists", ErrStorageConflict, mw.WeekNumber)
		}
		return nil, fmt.Errorf("failed to create matchweek: %w", err)
	}

	if err := tx.Commit(); err != nil {
		return nil, fmt.Errorf("failed to commit matchweek: %w", err)
	}

	slog.Info("matchweek created", "matchweek_id", mw.ID, "competition_id", competitionID, "week_number", mw.WeekNumber)
	return mw, nil
}

// AddFixture schedules a match in a matchweek that has not closed yet.
func (s *Service) AddFixture(ctx context.Context, matchweekID string, req models.AddFixtureRequest) (*models.Fixture, error) {
	home := strings.TrimSpace(req.HomeTeam)
	away := strings.TrimSpace(req.AwayTeam)
	if home == "" || away == "" {
		return nil, fmt.Errorf("%w: home and away teams are required", ErrInvalidInput)
	}
	if home == away {
		return nil, fmt.Errorf("%w: a team cannot play itself", ErrInvalidInput)
	}
	if req.KickoffTime.IsZero() {
		return nil, fmt.Errorf("%w: kickoff time is required", ErrInvalidInput)
	}

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback()

	mw, err := loadMatchweek(ctx, tx, matchweekID)
	if err != nil {
		return nil, err
	}
	if mw.Status != models.MatchweekUpcoming && mw.Status != models.MatchweekOpen {
		return nil, fmt.Errorf("%w: matchweek is %s", ErrInvalidState, mw.Status)
	}

	f := &models.Fixture{
		ID:          uuid.NewString(),
		MatchweekID: matchweekID,
		HomeTeam:    home,
		AwayTeam:    away,
		KickoffTime: dbTime(req.KickoffTime),
	}
	_, err = tx.ExecContext(ctx, `
		INSERT INTO fixture (id, matchweek_id, home_team, away_team, kickoff_time)
		VALUES ($1, $2, $3, $4, $5)
	`, f.ID, f.MatchweekID, f.HomeTeam, f.AwayTeam, f.KickoffTime)
	if err != nil {
		return nil, fmt.Errorf("failed to add fixture: %w", err)
	}

	if err := tx.Commit(); err != nil {
		return nil, fmt.Errorf("failed to commit fixture: %w", err)
	}
	return f, nil
}

// AdvanceMatchweek moves a matchweek one step forward to status.
func (s *Service) AdvanceMatchweek(ctx context.Context, matchweekID, status string) (*models.Matchweek, error) {
	mw, err := loadMatchweek(ctx, s.db, matchweekID)
	if err != nil {
		return nil, err
	}
	if next, ok := transitions[mw.Status]; !ok || next != status {
		return nil, fmt.Errorf("%w: cannot move matchweek from %s to %s", ErrInvalidState, mw.Status, status)
	}

	ok, err := s.advance(ctx, s.db, mw.ID, mw.Status, status)
	if err != nil {
		return nil, err
	}
	if !ok {
		return nil, fmt.Errorf("%w: matchweek status changed concurrently", ErrInvalidState)
	}

	mw.Status = status
	return mw, nil
}

// AdvanceDue opens matchweeks whose start date has passed and closes open
// matchweeks whose deadline has passed. A matchweek can move through both
// steps in one call.
func (s *Service) AdvanceDue(ctx context.Context) (opened, closed int, err error) {
	rows, err := s.db.QueryContext(ctx, `
		SELECT `+matchweekColumns+` FROM matchweek
		WHERE status IN ($1, $2)
		ORDER BY week_number
	`, models.MatchweekUpcoming, models.MatchweekOpen)
	if err != nil {
		return 0, 0, fmt.Errorf("failed to query pending matchweeks: %w", err)
	}
	pending, err := collectMatchweeks(rows)
	if err != nil {
		return 0, 0, err
	}

	now := s.now()
	for _, mw := range pending {
		if mw.Status == models.MatchweekUpcoming && !now.Before(mw.StartDate) {
			ok, err := s.advance(ctx, s.db, mw.ID, mw.Status, models.MatchweekOpen)
			if err != nil {
				return opened, closed, err
			}
			if ok {
				opened++
				mw.Status = models.MatchweekOpen
			}
		}
		if mw.Status == models.MatchweekOpen && !now.Before(mw.Deadline) {
			ok, err := s.advance(ctx, s.db, mw.ID, mw.Status, models.MatchweekClosed)
			if err != nil {
				return opened, closed, err
			}
			if ok {
				closed++
			}
		}
	}
	return opened, closed, nil
}

// advance applies a conditional status update and reports whether this
// caller made the move.
func (s *Service) advance(ctx context.Context, q querier, id, from, to string) (bool, error) {
	res, err := q.ExecContext(ctx, `
		UPDATE matchweek SET status = $1 WHERE id = $2 AND status = $3
	`, to, id, from)
	if err != nil {
		return false, fmt.Errorf("failed to update matchweek status: %w", err)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return false, fmt.Errorf("failed to update matchweek status: %w", err)
	}
	if n == 1 {
		slog.Info("matchweek advanced", "matchweek_id", id, "from", from, "to", to)
	}
	return n == 1, nil
}

// GetMatchweek loads one matchweek. An unknown ID is ErrNotFound.
func (s *Service) GetMatchweek(ctx context.Context, id string) (*models.Matchweek, error) {
	return loadMatchweek(ctx, s.db, id)
}

// GetAvailableMatchweeks lists the open and upcoming matchweeks of a
// competition in week order.
func (s *Service) GetAvailableMatchweeks(ctx context.Context, competitionID string) ([]models.Matchweek, error) {
	if _, err := loadCompetition(ctx, s.db, competitionID); err != nil {
		return nil, err
	}

	rows, err := s.db.QueryContext(ctx, `
		SELECT `+matchweekColumns+` FROM matchweek
		WHERE competition_id = $1 AND status IN ($2, $3)
		ORDER BY week_number
	`, competitionID, models.MatchweekOpen, models.MatchweekUpcoming)
	if err != nil {
		return nil, fmt.Errorf("failed to query matchweeks: %w", err)
	}
	return collectMatchweeks(rows)
}

// GetFixtures lists the fixtures of a matchweek by kickoff time.
func (s *Service) GetFixtures(ctx context.Context, matchweekID string) ([]models.Fixture, error) {
	if _, err := loadMatchweek(ctx, s.db, matchweekID); err != nil {
		return nil, err
	}
	return listFixtures(ctx, s.db, matchweekID)
}

func loadMatchweek(ctx context.Context, q querier, id string) (*models.Matchweek, error) {
	row := q.QueryRowContext(ctx, `SELECT `+matchweekColumns+` FROM matchweek WHERE id = $1`, id)
	mw, err := scanMatchweek(row)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, fmt.Errorf("%w: matchweek %s", ErrNotFound, id)
	}
	if err != nil {
		return nil, fmt.Errorf("failed to load matchweek: %w", err)
	}
	return mw, nil
}

func scanMatchweek(row rowScanner) (*models.Matchweek, error) {
	var mw models.Matchweek
	err := row.Scan(&mw.ID, &mw.CompetitionID, &mw.WeekNumber, &mw.Name,
		&mw.StartDate, &mw.EndDate, &mw.Deadline, &mw.Status)
	if err != nil {
		return nil, err
	}
	return &mw, nil
}

func collectMatchweeks(rows *sql.Rows) ([]models.Matchweek, error) {
	defer rows.Close()

	matchweeks := []models.Matchweek{}
	for rows.Next() {
		mw, err := scanMatchweek(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan matchweek: %w", err)
		}
		matchweeks = append(matchweeks, *mw)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to read matchweeks: %w", err)
	}
	return matchweeks, nil
}

func loadFixture(ctx context.Context, q querier, id string) (*models.Fixture, error) {
	row := q.QueryRowContext(ctx, `SELECT `+fixtureColumns+` FROM fixture WHERE id = $1`, id)
	f, err := scanFixture(row)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, fmt.Errorf("%w: fixture %s", ErrNotFound, id)
	}
	if err != nil {
		return nil, fmt.Errorf("failed to load fixture: %w", err)
	}
	return f, nil
}

func listFixtures(ctx context.Context, q querier, matchweekID string) ([]models.Fixture, error) {
	rows, err := q.QueryContext(ctx, `
		SELECT `+fixtureColumns+` FROM fixture
		WHERE matchweek_id = $1
		ORDER BY kickoff_time, home_team
	`, matchweekID)
	if err != nil {
		return nil, fmt.Errorf("failed to query fixtures: %w", err)
	}
	defer rows.Close()

	fixtures := []models.Fixture{}
	for rows.Next() {
		f, err := scanFixture(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan fixture: %w", err)
		}
		fixtures = append(fixtures, *f)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to read fixtures: %w", err)
	}
	return fixtures, nil
}

func scanFixture(row rowScanner) (*models.Fixture, error) {
	var f models.Fixture
	var result, winner sql.NullString
	err := row.Scan(&f.ID, &f.MatchweekID, &f.HomeTeam, &f.AwayTeam, &f.KickoffTime, &result, &winner)
	if err != nil {
		return nil, err
	}
	if result.Valid {
		f.Result = &result.String
	}
	if winner.Valid {
		f.WinningTeam = &winner.String
	}
	return &f, nil
}
