// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package ledger

import (
	"errors"
	"fmt"
	"strings"

	"github.com/danielhkuo/last-player-standing/db"
)

var (
	ErrNotFound                  = errors.New("not found")
	ErrInvalidState              = errors.New("invalid state")
	ErrTeamAlreadyUsed           = errors.New("team already used by this entry")
	ErrDuplicatePickForMatchweek = errors.New("entry already has a pick for this matchweek")
	ErrAlreadyResolved           = errors.New("matchweek already resolved")
	ErrStorageConflict           = errors.New("storage conflict")
	ErrInvalidPick               = errors.New("invalid pick")
	ErrInvalidOutcome            = errors.New("invalid outcome")
	ErrInvalidInput              = errors.New("invalid input")
)

// conflictError maps a uniqueness violation from the store onto the game
// rule it protects. Other errors are returned unchanged.
func conflictError(err error) error {
	detail, ok := db.UniqueViolation(err)
	if !ok {
		return err
	}

	switch {
	case strings.Contains(detail, "matchweek"):
		return fmt.Errorf("%w: %w", ErrDuplicatePickForMatchweek, ErrStorageConflict)
	case strings.Contains(detail, "team"):
		return fmt.Errorf("%w: %w", ErrTeamAlreadyUsed, ErrStorageConflict)
	}
	return fmt.Errorf("%w: %s", ErrStorageConflict, detail)
}
