// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package router

import (
	"net/http"

	"github.com/danielhkuo/livepoll/cliparse"
	"github.com/danielhkuo/livepoll/handlers"
	"github.com/danielhkuo/livepoll/middleware"
	"github.com/danielhkuo/livepoll/pubsub"
	"github.com/danielhkuo/livepoll/store"
	"github.com/danielhkuo/livepoll/tally"
	"github.com/danielhkuo/livepoll/voting"
)

func NewRouter(ledger store.Ledger, tallies *tally.Store, bus *pubsub.Bus, cfg cliparse.Config) *http.ServeMux {
	mux := http.NewServeMux()

	// Initialize handlers
	coordinator := voting.NewCoordinator(ledger, tallies, bus)
	pollHandler := handlers.NewPollHandler(ledger, tallies)
	votingHandler := handlers.NewVotingHandler(coordinator, cfg)
	resultsHandler := handlers.NewResultsHandler(bus)

	// Health check
	mux.HandleFunc("GET /health", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
		w.Write([]byte("OK"))
	})

	// Poll management
	mux.HandleFunc("POST /polls", middleware.WithLogging(pollHandler.CreatePoll))
	mux.HandleFunc("GET /polls/{pollId}", middleware.WithLogging(pollHandler.GetPoll))

	// Voting
	mux.HandleFunc("POST /polls/{pollId}/votes", middleware.WithLogging(votingHandler.CastVote))

	// Live results (websocket; no logging wrapper, the connection is long-lived)
	mux.HandleFunc("GET /polls/{pollId}/results", resultsHandler.StreamResults)

	// Root endpoint
	mux.HandleFunc("GET /", func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte("livepoll API v1"))
	})

	return mux
}
