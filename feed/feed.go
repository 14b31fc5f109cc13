// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package feed

import (
	"errors"
	"fmt"
	"io"
	"os"

	"gopkg.in/yaml.v3"

	"github.com/danielhkuo/last-player-standing/models"
)

var ErrInvalidFeed = errors.New("invalid result feed")

// Feed is one matchweek's worth of fixture results.
type Feed struct {
	MatchweekID string          `yaml:"matchweek_id"`
	Fixtures    []FixtureResult `yaml:"fixtures"`
}

type FixtureResult struct {
	FixtureID   string `yaml:"fixture_id"`
	Result      string `yaml:"result"`
	WinningTeam string `yaml:"winning_team,omitempty"`
}

// Parse decodes a YAML (or JSON) result feed. Result values are checked
// against the fixtures later, when the matchweek is resolved.
func Parse(r io.Reader) (*Feed, error) {
	var f Feed
	dec := yaml.NewDecoder(r)
	dec.KnownFields(true)
	if err := dec.Decode(&f); err != nil {
		if errors.Is(err, io.EOF) {
			return nil, fmt.Errorf("%w: empty document", ErrInvalidFeed)
		}
		return nil, fmt.Errorf("%w: %v", ErrInvalidFeed, err)
	}

	seen := make(map[string]bool, len(f.Fixtures))
	for i, fr := range f.Fixtures {
		if fr.FixtureID == "" {
			return nil, fmt.Errorf("%w: fixture %d has no fixture_id", ErrInvalidFeed, i)
		}
		if fr.Result == "" {
			return nil, fmt.Errorf("%w: fixture %s has no result", ErrInvalidFeed, fr.FixtureID)
		}
		if seen[fr.FixtureID] {
			return nil, fmt.Errorf("%w: fixture %s listed twice", ErrInvalidFeed, fr.FixtureID)
		}
		seen[fr.FixtureID] = true
	}

	return &f, nil
}

// LoadFile parses the feed stored at path.
func LoadFile(path string) (*Feed, error) {
	file, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("failed to open result feed: %w", err)
	}
	defer file.Close()

	return Parse(file)
}

// Outcomes keys the feed's results by fixture ID, the form ResolveMatchweek
// consumes.
func (f *Feed) Outcomes() map[string]models.Outcome {
	out := make(map[string]models.Outcome, len(f.Fixtures))
	for _, fr := range f.Fixtures {
		out[fr.FixtureID] = models.Outcome{Result: fr.Result, WinningTeam: fr.WinningTeam}
	}
	return out
}
