// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

/*
Package store implements the vote ledger: polls, their options, and
the single committed vote each session holds per poll.

# Ledger Contract

The Ledger interface is the only surface the rest of the service
depends on:

	CreatePoll(title, optionTitles) -> Poll
	GetPoll(pollID) -> Poll (ErrNotFound on unknown id)
	FindVote(sessionID, pollID) -> Vote (ErrNotFound when absent)
	CreateVote(sessionID, pollID, optionID) -> Vote (ErrConflict on duplicate)
	DeleteVote(voteID)

# Uniqueness

At most one Vote exists per (session, poll) pair. SQLStore enforces
this with a UNIQUE constraint and maps driver duplicate-key errors to
ErrConflict; MemoryStore enforces the same check under its mutex.

# Implementations

SQLStore runs against database/sql with either the postgres or sqlite
driver. MemoryStore backs the test suite.
*/
package store
