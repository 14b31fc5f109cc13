// Command resolve applies a YAML result feed to a closed matchweek.
//
//	resolve -feed week1.yaml
//	resolve -feed week1.yaml -matchweek <id> -t postgres -d postgres://...
package main

import (
	"context"
	"encoding/json"
	"flag"
	"log"
	"log/slog"
	"os"

	"github.com/danielhkuo/last-player-standing/cliparse"
	"github.com/danielhkuo/last-player-standing/db"
	"github.com/danielhkuo/last-player-standing/feed"
	"github.com/danielhkuo/last-player-standing/ledger"
)

func main() {
	cliparse.LoadDotEnv()

	var cfg cliparse.Config
	var feedPath, matchweekID string
	fs := flag.NewFlagSet("resolve", flag.ExitOnError)
	fs.StringVar(&feedPath, "feed", "", "Path to the YAML result feed")
	fs.StringVar(&matchweekID, "matchweek", "", "Matchweek ID (overrides the feed's matchweek_id)")
	cliparse.StoreFlags(fs, &cfg)
	fs.Parse(os.Args[1:])

	if feedPath == "" {
		log.Fatal("-feed is required")
	}
	if err := cfg.ResolveStore(); err != nil {
		log.Fatalf("Invalid database settings: %v", err)
	}

	f, err := feed.LoadFile(feedPath)
	if err != nil {
		log.Fatalf("Failed to load feed: %v", err)
	}
	if matchweekID == "" {
		matchweekID = f.MatchweekID
	}
	if matchweekID == "" {
		log.Fatal("feed has no matchweek_id; pass -matchweek")
	}

	ctx := context.Background()
	conn, err := db.Open(ctx, cfg.DatabaseType, cfg.DSN())
	if err != nil {
		log.Fatalf("Failed to open DB: %v", err)
	}
	defer conn.Close()

	svc := ledger.NewService(conn, nil)
	res, err := svc.ResolveMatchweek(ctx, matchweekID, f.Outcomes())
	if err != nil {
		slog.Error("resolve failed", "matchweek_id", matchweekID, "error", err)
		conn.Close()
		os.Exit(1)
	}

	enc := json.NewEncoder(os.Stdout)
	enc.SetIndent("", "  ")
	if err := enc.Encode(res); err != nil {
		log.Fatalf("Failed to write result: %v", err)
	}
}
