// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

/*
Package db handles database schema creation.

# Tables

  - poll: the question
  - poll_option: choices, ordered by position
  - vote: one row per (session, poll), enforced by a UNIQUE constraint

The UNIQUE (session_id, poll_id) constraint is the durable backstop
for the one-vote-per-session rule; the voting coordinator checks the
precondition first and treats a constraint hit as a race.

Vote tallies are not stored here. They live in the in-memory tally
store and are rehydrated from the vote rows at startup.
*/
package db
