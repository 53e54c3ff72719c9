// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package voting

import (
	"fmt"

	"github.com/danielhkuo/livepoll/store"
	"github.com/danielhkuo/livepoll/tally"
)

// Rehydrate seeds the tally counters from the ledger's committed
// votes. Must run at startup before any vote is accepted: votes are
// durable but counters are not, and a switch against an unseeded
// counter would decrement it below zero and publish the negative
// count to subscribers.
func Rehydrate(ledger store.Ledger, tallies *tally.Store) error {
	counts, err := ledger.VoteCounts()
	if err != nil {
		return fmt.Errorf("load vote counts: %w", err)
	}

	for _, c := range counts {
		tallies.Set(c.PollID, c.PollOptionID, c.Votes)
	}
	return nil
}
