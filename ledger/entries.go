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
	"github.com/shopspring/decimal"

	"github.com/danielhkuo/last-player-standing/db"
	"github.com/danielhkuo/last-player-standing/models"
)

const entryColumns = `id, competition_id, user_id, lives_remaining, is_active, payment_status, payment_id, created_at`

// CreateEntry enters userID into a competition. The entry starts active
// with the competition's starting lives and awaits payment.
func (s *Service) CreateEntry(ctx context.Context, competitionID, userID string) (*models.Entry, error) {
	userID = strings.TrimSpace(userID)
	if userID == "" {
		return nil, fmt.Errorf("%w: user id is required", ErrInvalidInput)
	}

	comp, err := loadCompetition(ctx, s.db, competitionID)
	if err != nil {
		return nil, err
	}

	e := &models.Entry{
		ID:             uuid.NewString(),
		CompetitionID:  comp.ID,
		UserID:         userID,
		LivesRemaining: comp.StartingLives,
		IsActive:       true,
		PaymentStatus:  models.PaymentPending,
		CreatedAt:      s.clock(),
	}

	_, err = s.db.ExecContext(ctx, `
		INSERT INTO entry (id, competition_id, user_id, lives_remaining, is_active, payment_status, created_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7)
	`, e.ID, e.CompetitionID, e.UserID, e.LivesRemaining, e.IsActive, e.PaymentStatus, e.CreatedAt)
	if err != nil {
		if _, dup := db.UniqueViolation(err); dup {
			return nil, fmt.Errorf("%w: user already entered this competition", ErrStorageConflict)
		}
		return nil, fmt.Errorf("failed to create entry: %w", err)
	}

	slog.Info("entry created", "entry_id", e.ID, "competition_id", e.CompetitionID, "user_id", e.UserID)
	return e, nil
}

// GetEntry returns the entry regardless of its payment status.
func (s *Service) GetEntry(ctx context.Context, id string) (*models.Entry, error) {
	return loadEntry(ctx, s.db, id)
}

// UpdatePaymentStatus records the payment collaborator's verdict. Only a
// pending entry can move, to paid (with the exact fee) or to failed.
func (s *Service) UpdatePaymentStatus(ctx context.Context, entryID, status, paymentID string, amount decimal.Decimal) (*models.Entry, error) {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback()

	e, err := loadEntry(ctx, tx, entryID)
	if err != nil {
		return nil, err
	}
	if e.PaymentStatus != models.PaymentPending {
		return nil, fmt.Errorf("%w: payment already %s", ErrInvalidState, e.PaymentStatus)
	}

	switch status {
	case models.PaymentPaid:
		comp, err := loadCompetition(ctx, tx, e.CompetitionID)
		if err != nil {
			return nil, err
		}
		if strings.TrimSpace(paymentID) == "" {
			return nil, fmt.Errorf("%w: payment id is required", ErrInvalidInput)
		}
		if !amount.Equal(comp.EntryFee) {
			return nil, fmt.Errorf("%w: amount %s does not match entry fee %s", ErrInvalidInput, amount, comp.EntryFee)
		}
	case models.PaymentFailed:
	default:
		return nil, fmt.Errorf("%w: unknown payment status %q", ErrInvalidInput, status)
	}

	res, err := tx.ExecContext(ctx, `
		UPDATE entry SET payment_status = $1, payment_id = $2
		WHERE id = $3 AND payment_status = $4
	`, status, nullString(paymentID), entryID, models.PaymentPending)
	if err != nil {
		return nil, fmt.Errorf("failed to update payment status: %w", err)
	}
	if n, err := res.RowsAffected(); err != nil {
		return nil, fmt.Errorf("failed to update payment status: %w", err)
	} else if n == 0 {
		return nil, fmt.Errorf("%w: payment status changed concurrently", ErrInvalidState)
	}

	if err := tx.Commit(); err != nil {
		return nil, fmt.Errorf("failed to commit payment status: %w", err)
	}

	e.PaymentStatus = status
	if paymentID != "" {
		e.PaymentID = &paymentID
	}
	slog.Info("payment status updated", "entry_id", entryID, "status", status)
	return e, nil
}

func loadEntry(ctx context.Context, q querier, id string) (*models.Entry, error) {
	row := q.QueryRowContext(ctx, `SELECT `+entryColumns+` FROM entry WHERE id = $1`, id)
	e, err := scanEntry(row)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, fmt.Errorf("%w: entry %s", ErrNotFound, id)
	}
	if err != nil {
		return nil, fmt.Errorf("failed to load entry: %w", err)
	}
	return e, nil
}

func scanEntry(row rowScanner) (*models.Entry, error) {
	var e models.Entry
	var paymentID sql.NullString
	err := row.Scan(&e.ID, &e.CompetitionID, &e.UserID, &e.LivesRemaining, &e.IsActive,
		&e.PaymentStatus, &paymentID, &e.CreatedAt)
	if err != nil {
		return nil, err
	}
	if paymentID.Valid {
		e.PaymentID = &paymentID.String
	}
	return &e, nil
}

// ListUserEntries returns every entry owned by userID, newest first.
func (s *Service) ListUserEntries(ctx context.Context, userID string) ([]models.Entry, error) {
	rows, err := s.db.QueryContext(ctx, `
		SELECT `+entryColumns+` FROM entry
		WHERE user_id = $1
		ORDER BY created_at DESC, id
	`, userID)
	if err != nil {
		return nil, fmt.Errorf("failed to query entries: %w", err)
	}
	return collectEntries(rows)
}

// GetStandings lists the paid entries of a competition, survivors first
// and then by lives remaining.
func (s *Service) GetStandings(ctx context.Context, competitionID string) ([]models.Entry, error) {
	if _, err := loadCompetition(ctx, s.db, competitionID); err != nil {
		return nil, err
	}

	rows, err := s.db.QueryContext(ctx, `
		SELECT `+entryColumns+` FROM entry
		WHERE competition_id = $1 AND payment_status = $2
		ORDER BY is_active DESC, lives_remaining DESC, created_at, id
	`, competitionID, models.PaymentPaid)
	if err != nil {
		return nil, fmt.Errorf("failed to query standings: %w", err)
	}
	return collectEntries(rows)
}

func collectEntries(rows *sql.Rows) ([]models.Entry, error) {
	defer rows.Close()

	entries := []models.Entry{}
	for rows.Next() {
		e, err := scanEntry(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan entry: %w", err)
		}
		entries = append(entries, *e)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to read entries: %w", err)
	}
	return entries, nil
}
