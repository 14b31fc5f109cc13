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
	"github.com/gosimple/slug"
	"github.com/shopspring/decimal"

	"github.com/danielhkuo/last-player-standing/db"
	"github.com/danielhkuo/last-player-standing/models"
)

// CreateCompetition registers a new competition. startingLives of zero
// means one life.
func (s *Service) CreateCompetition(ctx context.Context, name string, startingLives int, entryFee decimal.Decimal) (*models.Competition, error) {
	name = strings.TrimSpace(name)
	if name == "" {
		return nil, fmt.Errorf("%w: name is required", ErrInvalidInput)
	}
	if startingLives == 0 {
		startingLives = 1
	}
	if startingLives < 1 {
		return nil, fmt.Errorf("%w: starting lives must be at least 1", ErrInvalidInput)
	}
	if entryFee.IsNegative() {
		return nil, fmt.Errorf("%w: entry fee cannot be negative", ErrInvalidInput)
	}

	c := &models.Competition{
		ID:            uuid.NewString(),
		Name:          name,
		Slug:          slug.Make(name),
		StartingLives: startingLives,
		EntryFee:      entryFee,
		CreatedAt:     s.clock(),
	}
	if c.Slug == "" {
		return nil, fmt.Errorf("%w: name %q has no usable characters", ErrInvalidInput, name)
	}

	_, err := s.db.ExecContext(ctx, `
		INSERT INTO competition (id, name, slug, starting_lives, entry_fee, created_at)
		VALUES ($1, $2, $3, $4, $5, $6)
	`, c.ID, c.Name, c.Slug, c.StartingLives, c.EntryFee, c.CreatedAt)
	if err != nil {
		if _, dup := db.UniqueViolation(err); dup {
			return nil, fmt.Errorf("%w: competition %q already exists", ErrStorageConflict, c.Slug)
		}
		return nil, fmt.Errorf("failed to create competition: %w", err)
	}

	slog.Info("competition created", "competition_id", c.ID, "slug", c.Slug)
	return c, nil
}

// GetCompetition loads one competition. An unknown ID is ErrNotFound.
func (s *Service) GetCompetition(ctx context.Context, id string) (*models.Competition, error) {
	return loadCompetition(ctx, s.db, id)
}

func loadCompetition(ctx context.Context, q querier, id string) (*models.Competition, error) {
	var c models.Competition
	err := q.QueryRowContext(ctx, `
		SELECT id, name, slug, starting_lives, entry_fee, created_at
		FROM competition WHERE id = $1
	`, id).Scan(&c.ID, &c.Name, &c.Slug, &c.StartingLives, &c.EntryFee, &c.CreatedAt)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, fmt.Errorf("%w: competition %s", ErrNotFound, id)
	}
	if err != nil {
		return nil, fmt.Errorf("failed to load competition: %w", err)
	}
	return &c, nil
}
