// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

/*
Package main provides the entry point for the livepoll API server.

Livepoll is a real-time polling service: anonymous sessions cast one
vote per poll (with vote switching), and live tallies stream to every
connected watcher over a websocket.

# Starting the Server

The server requires environment variables or CLI flags for
configuration:

	DATABASE_URL=polls.db COOKIE_SECRET=... go run main.go

Or with flags:

	go run main.go -p 3333 -d "postgres://..." -t postgres

# Configuration

Required settings:

  - DATABASE_URL (-d): database connection string (sqlite path or
    postgres URL)
  - COOKIE_SECRET (--cookie-secret): secret for session cookie HMAC

Optional settings:

  - PORT (-p): server port (default: 3333)
  - DATABASE_TYPE (-t): sqlite or postgres (default: sqlite)

# Architecture

The server uses a handler-based architecture with dependency
injection around a real-time vote-aggregation core:

  - store: the vote ledger (polls, options, one vote per session/poll)
  - tally: in-memory per-option counters, authoritative for reads
  - voting: the coordinator deciding create/switch/reject per vote
  - pubsub: per-poll fan-out of tally deltas
  - handlers: HTTP request handlers (polls, voting, result stream)
  - router: route definitions using Go 1.22+ routing
  - middleware: CORS, logging, JSON helpers
  - models: request/response and domain types
  - auth: session identity minting and cookie signing
  - db: schema creation
  - cliparse: configuration parsing

See package documentation for each component.
*/
package main
