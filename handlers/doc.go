// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

/*
Package handlers implements the HTTP boundary of the live poll
service.

# Handler Groups

  - PollHandler: poll creation and snapshot reads (ledger metadata
    merged with live tally counts)
  - VotingHandler: vote casting with the signed session cookie
  - ResultsHandler: the live result websocket stream

Handlers validate input shape (JSON, UUID path segments) before any
collaborator is touched, translate the typed errors from the voting
coordinator and the store into HTTP statuses, and never reach into
the database directly: the ledger, tally store, and event bus are
injected through constructors.
*/
package handlers
