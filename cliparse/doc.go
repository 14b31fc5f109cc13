// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

/*
Package cliparse handles command-line argument parsing and configuration.

# Configuration

ParseFlags returns a Config struct with all settings:

	cliparse.LoadDotEnv()
	cfg, err := cliparse.ParseFlags(os.Args[1:])

# Config Fields

  - Port: Server listen port (default: 3318)
  - DatabaseURL: PostgreSQL connection string (remote store)
  - DatabaseType: "postgres" or "sqlite"
  - LocalDBPath: SQLite file used as the local store
  - AdminKey: Secret required on admin routes (required)
  - RedisURL: Team usage cache (optional)
  - SchedulerInterval: How often matchweek statuses are advanced (default: 1m)

# Store Selection

The store is chosen once at startup. When DATABASE_URL is present the
remote Postgres store is used; otherwise the local SQLite file at
LOCAL_DB_PATH. DATABASE_TYPE forces a choice.

# Environment Variables

Flags fall back to environment variables:

	PORT               → -p
	DATABASE_URL       → -d
	DATABASE_TYPE      → -t
	LOCAL_DB_PATH      → --local-db
	REDIS_URL          → --redis
	SCHEDULER_INTERVAL → --interval
	ADMIN_KEY          → --admin-key

CLI flags take precedence over environment variables. A .env file in the
working directory is loaded by LoadDotEnv.
*/
package cliparse
