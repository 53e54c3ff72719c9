// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package handlers

import (
	"errors"
	"log/slog"
	"net/http"

	"github.com/google/uuid"

	"github.com/danielhkuo/livepoll/auth"
	"github.com/danielhkuo/livepoll/cliparse"
	"github.com/danielhkuo/livepoll/middleware"
	"github.com/danielhkuo/livepoll/models"
	"github.com/danielhkuo/livepoll/store"
	"github.com/danielhkuo/livepoll/voting"
)

// SessionCookie is the cookie carrying the signed session identity.
const SessionCookie = "sessionId"

// sessionMaxAge is the cookie validity window: 30 days.
const sessionMaxAge = 60 * 60 * 24 * 30

type VotingHandler struct {
	coordinator *voting.Coordinator
	cfg         cliparse.Config
}

func NewVotingHandler(coordinator *voting.Coordinator, cfg cliparse.Config) *VotingHandler {
	return &VotingHandler{coordinator: coordinator, cfg: cfg}
}

// CastVote handles POST /polls/{pollId}/votes
func (h *VotingHandler) CastVote(w http.ResponseWriter, r *http.Request) {
	pollID := r.PathValue("pollId")
	if _, err := uuid.Parse(pollID); err != nil {
		middleware.ErrorResponse(w, http.StatusBadRequest, "pollId must be a valid UUID")
		return
	}

	var req models.VoteRequest
	if err := middleware.ParseJSONBody(r, &req); err != nil {
		middleware.ErrorResponse(w, http.StatusBadRequest, "Invalid JSON")
		return
	}
	if _, err := uuid.Parse(req.PollOptionID); err != nil {
		middleware.ErrorResponse(w, http.StatusBadRequest, "pollOptionId must be a valid UUID")
		return
	}

	// The session cookie is optional: absent on a first vote. A cookie
	// that is present but fails signature verification is rejected
	// rather than treated as absent.
	var sessionID string
	if cookie, err := r.Cookie(SessionCookie); err == nil {
		sessionID, err = auth.VerifySession(cookie.Value, h.cfg.CookieSecret)
		if err != nil {
			middleware.ErrorResponse(w, http.StatusBadRequest, "Invalid session cookie")
			return
		}
	}

	result, err := h.coordinator.CastVote(pollID, req.PollOptionID, sessionID)
	switch {
	case errors.Is(err, voting.ErrDuplicateVote):
		middleware.ErrorResponse(w, http.StatusBadRequest, "You already voted on this poll.")
		return
	case errors.Is(err, store.ErrNotFound):
		middleware.ErrorResponse(w, http.StatusNotFound, "Poll or option not found.")
		return
	case errors.Is(err, store.ErrConflict):
		// Precondition race; already logged loudly by the coordinator.
		middleware.ErrorResponse(w, http.StatusInternalServerError, "Failed to register vote")
		return
	case err != nil:
		slog.Error("failed to register vote", "error", err, "poll_id", pollID)
		middleware.ErrorResponse(w, http.StatusInternalServerError, "Failed to register vote")
		return
	}

	if result.Fresh {
		http.SetCookie(w, &http.Cookie{
			Name:     SessionCookie,
			Value:    auth.SignSession(result.SessionID, h.cfg.CookieSecret),
			Path:     "/",
			MaxAge:   sessionMaxAge,
			HttpOnly: true,
		})
	}

	slog.Info("vote registered",
		"poll_id", pollID,
		"option_id", req.PollOptionID,
		"fresh_session", result.Fresh,
	)

	w.WriteHeader(http.StatusCreated)
}
