// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

/*
Package router defines HTTP routes for the live poll API.

# Route Registration

NewRouter creates a configured http.ServeMux with all endpoints:

	mux := router.NewRouter(ledger, tallies, bus, cfg)

# Endpoints

Health:

	GET /health

Polls:

	POST /polls                    - Create poll
	GET  /polls/{pollId}           - Poll details with live scores

Voting:

	POST /polls/{pollId}/votes     - Cast or switch a vote

Live results:

	GET /polls/{pollId}/results    - Websocket stream of tally deltas

# Handler Initialization

The router builds the voting coordinator and handler instances with
dependency injection; the ledger, tally store, and event bus are
constructed once in main and shared.
*/
package router
