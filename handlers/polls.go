// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package handlers

import (
	"log/slog"
	"net/http"
	"strings"

	"github.com/google/uuid"

	"github.com/danielhkuo/livepoll/middleware"
	"github.com/danielhkuo/livepoll/models"
	"github.com/danielhkuo/livepoll/store"
	"github.com/danielhkuo/livepoll/tally"
)

type PollHandler struct {
	ledger  store.Ledger
	tallies *tally.Store
}

func NewPollHandler(ledger store.Ledger, tallies *tally.Store) *PollHandler {
	return &PollHandler{ledger: ledger, tallies: tallies}
}

// CreatePoll handles POST /polls
func (h *PollHandler) CreatePoll(w http.ResponseWriter, r *http.Request) {
	var req models.CreatePollRequest
	if err := middleware.ParseJSONBody(r, &req); err != nil {
		middleware.ErrorResponse(w, http.StatusBadRequest, "Invalid JSON")
		return
	}

	// Validate input
	if strings.TrimSpace(req.Title) == "" {
		middleware.ErrorResponse(w, http.StatusBadRequest, "title is required")
		return
	}
	if len(req.Options) == 0 {
		middleware.ErrorResponse(w, http.StatusBadRequest, "at least one option is required")
		return
	}
	for _, opt := range req.Options {
		if strings.TrimSpace(opt) == "" {
			middleware.ErrorResponse(w, http.StatusBadRequest, "option titles must not be empty")
			return
		}
	}

	poll, err := h.ledger.CreatePoll(req.Title, req.Options)
	if err != nil {
		slog.Error("failed to create poll", "error", err)
		middleware.ErrorResponse(w, http.StatusInternalServerError, "Failed to create poll")
		return
	}

	slog.Info("poll created", "poll_id", poll.ID, "options", len(poll.Options))

	middleware.JSONResponse(w, http.StatusCreated, models.CreatePollResponse{
		PollID: poll.ID,
	})
}

// GetPoll handles GET /polls/{pollId}
// Merges poll metadata with the current tally counts; options nobody
// has voted for yet score 0.
func (h *PollHandler) GetPoll(w http.ResponseWriter, r *http.Request) {
	pollID := r.PathValue("pollId")
	if _, err := uuid.Parse(pollID); err != nil {
		middleware.ErrorResponse(w, http.StatusBadRequest, "pollId must be a valid UUID")
		return
	}

	poll, err := h.ledger.GetPoll(pollID)
	if err == store.ErrNotFound {
		middleware.ErrorResponse(w, http.StatusNotFound, "Poll not found.")
		return
	}
	if err != nil {
		slog.Error("failed to query poll", "error", err)
		middleware.ErrorResponse(w, http.StatusInternalServerError, "Database error")
		return
	}

	scores := make(map[string]int)
	for _, entry := range h.tallies.ReadAll(pollID) {
		scores[entry.OptionID] = entry.Count
	}

	detail := models.PollDetail{
		ID:      poll.ID,
		Title:   poll.Title,
		Options: make([]models.OptionScore, 0, len(poll.Options)),
	}
	for _, opt := range poll.Options {
		detail.Options = append(detail.Options, models.OptionScore{
			ID:    opt.ID,
			Title: opt.Title,
			Score: scores[opt.ID],
		})
	}

	middleware.JSONResponse(w, http.StatusOK, models.PollDetailResponse{Poll: detail})
}
