// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

/*
Package models defines the domain and wire types for the live poll
service.

# Domain Types

  - Poll: a titled question with an immutable set of options
  - PollOption: one choice within a poll
  - Vote: a session's current choice on a poll; at most one exists
    per (session, poll) pair at any time
  - TallyDelta: an event carrying one option's updated absolute count

# Request/Response Types

Request bodies and response envelopes for the HTTP API use camelCase
JSON field names matching the public wire format (pollId,
pollOptionId, votes).

Vote.SessionID is never serialized; the session identity travels only
in the signed cookie.
*/
package models
