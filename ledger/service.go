// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package ledger

import (
	"context"
	"database/sql"
	"time"
)

// UsageCache holds the team usage list of an entry between requests.
// Implementations must tolerate misses; the store stays authoritative.
//
// Load reports the entry's version alongside a miss. Store must drop the
// list when Invalidate ran for the entry after that version was read, so
// a read that raced a pick never caches the pre-pick list. A negative
// version means the version is unknown and the list is never stored.
type UsageCache interface {
	Load(ctx context.Context, entryID string) (teams []string, version int64, ok bool)
	Store(ctx context.Context, entryID string, teams []string, version int64)
	Invalidate(ctx context.Context, entryID string)
}

// Service applies the competition rules against one store. It is safe for
// concurrent use; races between requests are settled by the store's
// unique constraints.
type Service struct {
	db    *sql.DB
	cache UsageCache
	now   func() time.Time
}

// NewService returns a ledger backed by conn. cache may be nil.
func NewService(conn *sql.DB, cache UsageCache) *Service {
	return &Service{db: conn, cache: cache, now: time.Now}
}

// querier is satisfied by both *sql.DB and *sql.Tx.
type querier interface {
	ExecContext(ctx context.Context, query string, args ...any) (sql.Result, error)
	QueryContext(ctx context.Context, query string, args ...any) (*sql.Rows, error)
	QueryRowContext(ctx context.Context, query string, args ...any) *sql.Row
}

type rowScanner interface {
	Scan(dest ...any) error
}

func (s *Service) clock() time.Time {
	return dbTime(s.now())
}

// dbTime normalizes timestamps before they are written so both stores
// compare and order them the same way.
func dbTime(t time.Time) time.Time {
	return t.UTC().Truncate(time.Second)
}

func nullString(v string) any {
	if v == "" {
		return nil
	}
	return v
}
