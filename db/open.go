// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package db

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/lib/pq"
	"modernc.org/sqlite"
	sqlite3 "modernc.org/sqlite/lib"
)

// Driver names registered by lib/pq and modernc.org/sqlite.
const (
	DriverPostgres = "postgres"
	DriverSQLite   = "sqlite"
)

// Open connects to the store selected by databaseType and verifies the
// connection. SQLite connections are limited to one so that transactions
// serialize instead of failing with SQLITE_BUSY.
func Open(ctx context.Context, databaseType, dsn string) (*sql.DB, error) {
	var driver string
	switch databaseType {
	case DriverPostgres:
		driver = DriverPostgres
	case DriverSQLite:
		driver = DriverSQLite
		dsn = sqliteDSN(dsn)
	default:
		return nil, fmt.Errorf("unsupported database type %q", databaseType)
	}

	conn, err := sql.Open(driver, dsn)
	if err != nil {
		return nil, fmt.Errorf("failed to open %s connection: %w", driver, err)
	}

	if driver == DriverSQLite {
		conn.SetMaxOpenConns(1)
	}

	pingCtx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()
	if err := conn.PingContext(pingCtx); err != nil {
		conn.Close()
		return nil, fmt.Errorf("failed to ping %s: %w", driver, err)
	}

	return conn, nil
}

// sqliteDSN turns a plain file path into a DSN with foreign keys and a
// busy timeout enabled.
func sqliteDSN(path string) string {
	if strings.Contains(path, "_pragma=") {
		return path
	}
	sep := "?"
	if strings.Contains(path, "?") {
		sep = "&"
	}
	if !strings.HasPrefix(path, "file:") {
		path = "file:" + path
	}
	return path + sep + "_pragma=foreign_keys(1)&_pragma=busy_timeout(5000)"
}

// UniqueViolation reports whether err is a uniqueness violation raised by
// either store. The returned detail names the violated constraint on
// Postgres and the offending columns on SQLite.
func UniqueViolation(err error) (detail string, ok bool) {
	if err == nil {
		return "", false
	}

	var pqErr *pq.Error
	if errors.As(err, &pqErr) {
		if pqErr.Code == "23505" {
			return pqErr.Constraint, true
		}
		return "", false
	}

	var liteErr *sqlite.Error
	if errors.As(err, &liteErr) {
		switch liteErr.Code() {
		case sqlite3.SQLITE_CONSTRAINT_UNIQUE, sqlite3.SQLITE_CONSTRAINT_PRIMARYKEY:
			return sqliteConstraintColumns(liteErr.Error()), true
		case sqlite3.SQLITE_CONSTRAINT:
			// Extended codes disabled
			if strings.Contains(liteErr.Error(), "UNIQUE constraint failed") {
				return sqliteConstraintColumns(liteErr.Error()), true
			}
		}
		return "", false
	}

	return "", false
}

// sqliteConstraintColumns extracts "pick.entry_id, pick.selected_team" from
// "UNIQUE constraint failed: pick.entry_id, pick.selected_team (2067)".
func sqliteConstraintColumns(msg string) string {
	const marker = "constraint failed: "
	i := strings.LastIndex(msg, marker)
	if i < 0 {
		return msg
	}
	cols := msg[i+len(marker):]
	if j := strings.LastIndex(cols, " ("); j >= 0 {
		cols = cols[:j]
	}
	return cols
}
