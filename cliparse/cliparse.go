package cliparse

import (
	"errors"
	"flag"
	"os"
	"strconv"
	"time"

	"github.com/joho/godotenv"
)

const (
	DatabasePostgres = "postgres"
	DatabaseSQLite   = "sqlite"
)

type Config struct {
	Port              int
	DatabaseURL       string
	DatabaseType      string
	LocalDBPath       string
	AdminKey          string
	RedisURL          string
	SchedulerInterval time.Duration
}

// LoadDotEnv reads a .env file into the process environment if one exists.
// Variables that are already set are left alone.
func LoadDotEnv(paths ...string) {
	_ = godotenv.Load(paths...)
}

// ParseFlags validates flags and fills the remaining settings from the environment
func ParseFlags(args []string) (Config, error) {
	var cfg Config

	fs := flag.NewFlagSet("last-player-standing", flag.ContinueOnError)

	// Network config (can be CLI args or env)
	fs.IntVar(&cfg.Port, "p", 0, "Server port")
	StoreFlags(fs, &cfg)
	fs.StringVar(&cfg.RedisURL, "redis", "", "Redis URL for the team usage cache (optional)")
	fs.DurationVar(&cfg.SchedulerInterval, "interval", 0, "Matchweek scheduler interval")

	// Secrets (prefer env variables, but allow CLI for dev)
	fs.StringVar(&cfg.AdminKey, "admin-key", "", "Admin key (prefer env)")

	if err := fs.Parse(args); err != nil {
		return Config{}, err
	}

	// Fall back to environment variables
	if cfg.Port == 0 {
		if portStr := os.Getenv("PORT"); portStr != "" {
			port, err := strconv.Atoi(portStr)
			if err != nil {
				return Config{}, errors.New("invalid PORT env variable")
			}
			cfg.Port = port
		} else {
			cfg.Port = 3318 // default
		}
	}
	if err := cfg.ResolveStore(); err != nil {
		return Config{}, err
	}

	if cfg.RedisURL == "" {
		cfg.RedisURL = os.Getenv("REDIS_URL")
	}

	if cfg.SchedulerInterval == 0 {
		if v := os.Getenv("SCHEDULER_INTERVAL"); v != "" {
			d, err := time.ParseDuration(v)
			if err != nil || d <= 0 {
				return Config{}, errors.New("invalid SCHEDULER_INTERVAL env variable")
			}
			cfg.SchedulerInterval = d
		} else {
			cfg.SchedulerInterval = time.Minute
		}
	}

	// Secrets - MUST be provided
	if cfg.AdminKey == "" {
		cfg.AdminKey = os.Getenv("ADMIN_KEY")
	}
	if cfg.AdminKey == "" {
		return Config{}, errors.New("ADMIN_KEY required")
	}

	return cfg, nil
}

// StoreFlags registers the database flags on fs. Every binary that opens
// the store uses these so they agree on names and defaults.
func StoreFlags(fs *flag.FlagSet, cfg *Config) {
	fs.StringVar(&cfg.DatabaseURL, "d", "", "Database URL (remote store)")
	fs.StringVar(&cfg.DatabaseType, "t", "", "Database type (sqlite or postgres)")
	fs.StringVar(&cfg.LocalDBPath, "local-db", "", "SQLite file used when no database URL is set")
}

// ResolveStore fills unset database settings from the environment and
// picks the store: a configured URL means the remote Postgres store,
// otherwise the local SQLite file.
func (c *Config) ResolveStore() error {
	if c.DatabaseURL == "" {
		c.DatabaseURL = os.Getenv("DATABASE_URL")
	}
	if c.LocalDBPath == "" {
		c.LocalDBPath = os.Getenv("LOCAL_DB_PATH")
		if c.LocalDBPath == "" {
			c.LocalDBPath = "last-player-standing.db"
		}
	}

	if c.DatabaseType == "" {
		c.DatabaseType = os.Getenv("DATABASE_TYPE")
	}
	if c.DatabaseType == "" {
		if c.DatabaseURL != "" {
			c.DatabaseType = DatabasePostgres
		} else {
			c.DatabaseType = DatabaseSQLite
		}
	}
	switch c.DatabaseType {
	case DatabasePostgres:
		if c.DatabaseURL == "" {
			return errors.New("database URL required for postgres (use -d or DATABASE_URL env)")
		}
	case DatabaseSQLite:
	default:
		return errors.New("database type must be sqlite or postgres")
	}
	return nil
}

// DSN returns the connection string for the selected store.
func (c Config) DSN() string {
	if c.DatabaseType == DatabasePostgres {
		return c.DatabaseURL
	}
	if c.DatabaseURL != "" {
		return c.DatabaseURL
	}
	return c.LocalDBPath
}
