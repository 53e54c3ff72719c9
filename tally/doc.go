// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

/*
Package tally keeps the live per-option vote counters, one counter set
per poll.

Increment is the only mutation and is atomic under the store mutex, so
concurrent votes on the same option never lose updates. ReadAll
returns (option, count) pairs ordered ascending by count; options with
no recorded votes are simply absent and default to zero at the read
boundary.

Counters are in-memory only. They stay consistent with the vote ledger
because every ledger mutation is paired with exactly one Increment by
the coordinator.
*/
package tally
