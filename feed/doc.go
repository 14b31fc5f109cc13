// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

/*
Package feed reads fixture results delivered by the result provider.

A feed is a YAML document:

	matchweek_id: 6f1c...
	fixtures:
	  - fixture_id: a1
	    result: home
	    winning_team: Arsenal
	  - fixture_id: b2
	    result: draw

winning_team is optional and, when present, must agree with result. The
ledger never computes results itself; it only consumes them.
*/
package feed
