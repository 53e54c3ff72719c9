// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package store

import (
	"errors"

	"github.com/danielhkuo/livepoll/models"
)

var (
	// ErrNotFound is returned when a referenced poll or vote does not exist.
	ErrNotFound = errors.New("not found")

	// ErrConflict is returned when an insert violates the one vote per
	// (session, poll) uniqueness constraint. The coordinator checks the
	// precondition first, so reaching this indicates a race.
	ErrConflict = errors.New("vote already exists for session and poll")
)

// OptionVotes is one option's committed vote count, as reported by
// the ledger.
type OptionVotes struct {
	PollID       string
	PollOptionID string
	Votes        int
}

// Ledger records polls, their options, and the single committed vote
// each session holds on a poll.
type Ledger interface {
	// CreatePoll persists a new poll with one option row per title, in
	// the given order.
	CreatePoll(title string, optionTitles []string) (models.Poll, error)

	// GetPoll returns the poll and its options. ErrNotFound on unknown id.
	GetPoll(pollID string) (models.Poll, error)

	// FindVote returns the session's current vote on the poll.
	// ErrNotFound when the session has not voted on it.
	FindVote(sessionID, pollID string) (models.Vote, error)

	// CreateVote records a new vote. ErrConflict if the session already
	// has a vote on the poll.
	CreateVote(sessionID, pollID, pollOptionID string) (models.Vote, error)

	// DeleteVote removes a vote by id. Deleting an unknown id is not an
	// error.
	DeleteVote(voteID string) error

	// VoteCounts reports the committed vote count per option across all
	// polls, for rehydrating the tally counters at startup.
	VoteCounts() ([]OptionVotes, error)
}
