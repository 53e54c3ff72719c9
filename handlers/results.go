// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package handlers

import (
	"log/slog"
	"net/http"

	"github.com/google/uuid"
	"github.com/gorilla/websocket"

	"github.com/danielhkuo/livepoll/middleware"
	"github.com/danielhkuo/livepoll/models"
	"github.com/danielhkuo/livepoll/pubsub"
)

// deltaBuffer bounds how far a slow websocket peer may fall behind
// before deltas are dropped for it. Dropping keeps one stalled
// connection from ever blocking Publish for a popular poll; the peer
// still converges on reconnect via GET /polls/{pollId}.
const deltaBuffer = 32

type ResultsHandler struct {
	bus      *pubsub.Bus
	upgrader websocket.Upgrader
}

func NewResultsHandler(bus *pubsub.Bus) *ResultsHandler {
	return &ResultsHandler{
		bus: bus,
		upgrader: websocket.Upgrader{
			// Cross-origin policy is handled by the CORS middleware for
			// the REST routes; the stream accepts any origin to match.
			CheckOrigin: func(r *http.Request) bool { return true },
		},
	}
}

// StreamResults handles GET /polls/{pollId}/results
// Upgrades to a websocket and pushes one JSON-encoded TallyDelta per
// vote event on the poll for the life of the connection.
func (h *ResultsHandler) StreamResults(w http.ResponseWriter, r *http.Request) {
	pollID := r.PathValue("pollId")
	if _, err := uuid.Parse(pollID); err != nil {
		middleware.ErrorResponse(w, http.StatusBadRequest, "pollId must be a valid UUID")
		return
	}

	conn, err := h.upgrader.Upgrade(w, r, nil)
	if err != nil {
		// Upgrade already wrote the error response
		slog.Warn("websocket upgrade failed", "error", err, "poll_id", pollID)
		return
	}
	defer conn.Close()

	// The bus invokes listeners on the publisher's goroutine, so the
	// listener only forwards into a buffered channel and the write loop
	// below does the actual network I/O.
	deltas := make(chan models.TallyDelta, deltaBuffer)
	sub := h.bus.Subscribe(pollID, func(delta models.TallyDelta) {
		select {
		case deltas <- delta:
		default:
			slog.Warn("dropping delta for slow subscriber", "poll_id", pollID)
		}
	})
	defer h.bus.Unsubscribe(sub)

	slog.Info("result stream opened", "poll_id", pollID, "remote", r.RemoteAddr)

	// No client messages are expected on this channel; the read loop
	// exists to notice disconnects.
	closed := make(chan struct{})
	go func() {
		defer close(closed)
		for {
			if _, _, err := conn.ReadMessage(); err != nil {
				return
			}
		}
	}()

	for {
		select {
		case delta := <-deltas:
			if err := conn.WriteJSON(delta); err != nil {
				slog.Info("result stream closed", "poll_id", pollID, "error", err)
				return
			}
		case <-closed:
			slog.Info("result stream closed", "poll_id", pollID)
			return
		}
	}
}
