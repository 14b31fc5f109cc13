// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

/*
Package cache provides a Redis backed read cache for team usage lists.

The store is the source of truth. The ledger reads through the cache in
GetTeamUsage and invalidates the entry after every committed pick, so the
cache never decides whether a team may be picked.

Each invalidation bumps a per-entry generation. A read that missed
carries the generation it saw to Store, and the list is written only if
no invalidation happened in between.

	usage, err := cache.NewRedisUsageCache(ctx, cfg.RedisURL, cache.DefaultTTL)
	svc := ledger.NewService(conn, usage)

Keys have the form team_usage:<entry id> and team_usage_gen:<entry id>.
*/
package cache
