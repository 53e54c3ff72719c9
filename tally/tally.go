// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package tally

import (
	"sort"
	"sync"
)

// OptionCount is one option's current absolute vote count.
type OptionCount struct {
	OptionID string
	Count    int
}

// Store keeps one independent counter set per poll. Counts are derived
// from committed votes; the ledger remains the durable record and the
// counters are rehydrated from it at startup.
type Store struct {
	mu    sync.Mutex
	polls map[string]map[string]int // poll id -> option id -> count
}

func NewStore() *Store {
	return &Store{
		polls: make(map[string]map[string]int),
	}
}

// Increment applies a signed delta to the option's counter, creating
// the entry at delta if absent, and returns the new absolute count.
// Safe under concurrent calls for the same option.
func (s *Store) Increment(pollID, optionID string, delta int) int {
	s.mu.Lock()
	defer s.mu.Unlock()

	counts, ok := s.polls[pollID]
	if !ok {
		counts = make(map[string]int)
		s.polls[pollID] = counts
	}
	counts[optionID] += delta
	return counts[optionID]
}

// Set overwrites the option's counter with an absolute count,
// creating the entry if absent. Used when rehydrating counters from
// the ledger at startup, before any votes are accepted.
func (s *Store) Set(pollID, optionID string, count int) {
	s.mu.Lock()
	defer s.mu.Unlock()

	counts, ok := s.polls[pollID]
	if !ok {
		counts = make(map[string]int)
		s.polls[pollID] = counts
	}
	counts[optionID] = count
}

// ReadAll returns every option that has ever received a nonzero delta
// for the poll, ascending by count with ties broken by option id.
// Options the poll defines but nobody voted for are absent; callers
// default those to zero.
func (s *Store) ReadAll(pollID string) []OptionCount {
	s.mu.Lock()
	defer s.mu.Unlock()

	counts, ok := s.polls[pollID]
	if !ok {
		return nil
	}

	out := make([]OptionCount, 0, len(counts))
	for optionID, count := range counts {
		out = append(out, OptionCount{OptionID: optionID, Count: count})
	}
	sort.Slice(out, func(i, j int) bool {
		if out[i].Count != out[j].Count {
			return out[i].Count < out[j].Count
		}
		return out[i].OptionID < out[j].OptionID
	})
	return out
}
