// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

// Package scheduler advances matchweek statuses on a timer using gocron.
// It opens matchweeks once their start date passes and closes them at the
// pick deadline. Resolution is never scheduled; it waits for the result feed.
package scheduler
