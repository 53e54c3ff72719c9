// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package voting

import (
	"errors"
	"fmt"
	"log/slog"

	"github.com/danielhkuo/livepoll/auth"
	"github.com/danielhkuo/livepoll/models"
	"github.com/danielhkuo/livepoll/store"
	"github.com/danielhkuo/livepoll/tally"
)

// ErrDuplicateVote is returned when a session re-votes the exact
// option it already holds. No state changes and no event is published.
var ErrDuplicateVote = errors.New("session already voted for this option")

// Publisher is the fan-out seam. *pubsub.Bus satisfies it; a brokered
// implementation could replace it for multi-process fan-out without
// touching the coordinator.
type Publisher interface {
	Publish(pollID string, delta models.TallyDelta)
}

// Result reports the session identity a vote was committed under.
// Fresh is true when the identity was minted during this call and the
// caller must hand it back to the client.
type Result struct {
	SessionID string
	Fresh     bool
}

// Coordinator decides create/switch/reject for incoming votes and
// keeps the ledger, the tally counters, and the event stream mutually
// consistent.
type Coordinator struct {
	ledger     store.Ledger
	tallies    *tally.Store
	publisher  Publisher
	newSession func() string
}

func NewCoordinator(ledger store.Ledger, tallies *tally.Store, publisher Publisher) *Coordinator {
	return &Coordinator{
		ledger:     ledger,
		tallies:    tallies,
		publisher:  publisher,
		newSession: auth.NewSessionID,
	}
}

// CastVote records sessionID's vote for optionID on pollID. An empty
// sessionID means a first-time voter; a fresh identity is minted and
// returned. A vote for a different option than the session's current
// one is a switch: the old vote is deleted, its option decremented and
// the delta published, strictly before the new vote is inserted. Both
// mutations publish exactly one delta each.
//
// Returns store.ErrNotFound for an unknown poll or an option that does
// not belong to it, ErrDuplicateVote for a same-option re-vote, and
// store.ErrConflict if the ledger uniqueness check fires despite the
// precondition lookup (a race, surfaced loudly rather than absorbed).
func (c *Coordinator) CastVote(pollID, optionID, sessionID string) (Result, error) {
	poll, err := c.ledger.GetPoll(pollID)
	if err != nil {
		return Result{}, err
	}
	if !pollHasOption(poll, optionID) {
		return Result{}, store.ErrNotFound
	}

	if sessionID != "" {
		prev, err := c.ledger.FindVote(sessionID, pollID)
		switch {
		case err == nil && prev.PollOptionID == optionID:
			return Result{}, ErrDuplicateVote
		case err == nil:
			// Vote switch. The decrement must commit and publish before
			// the insert below, so no subscriber ever sees the poll sum
			// exceed the true distinct-session count.
			if err := c.ledger.DeleteVote(prev.ID); err != nil {
				return Result{}, fmt.Errorf("delete previous vote: %w", err)
			}
			votes := c.tallies.Increment(pollID, prev.PollOptionID, -1)
			c.publisher.Publish(pollID, models.TallyDelta{
				PollOptionID: prev.PollOptionID,
				Votes:        votes,
			})
		case !errors.Is(err, store.ErrNotFound):
			return Result{}, fmt.Errorf("find previous vote: %w", err)
		}
	}

	result := Result{SessionID: sessionID}
	if result.SessionID == "" {
		result.SessionID = c.newSession()
		result.Fresh = true
	}

	if _, err := c.ledger.CreateVote(result.SessionID, pollID, optionID); err != nil {
		if errors.Is(err, store.ErrConflict) {
			slog.Error("vote uniqueness race on insert",
				"poll_id", pollID,
				"option_id", optionID,
			)
		}
		return Result{}, err
	}

	votes := c.tallies.Increment(pollID, optionID, 1)
	c.publisher.Publish(pollID, models.TallyDelta{
		PollOptionID: optionID,
		Votes:        votes,
	})

	return result, nil
}

func pollHasOption(poll models.Poll, optionID string) bool {
	for _, opt := range poll.Options {
		if opt.ID == optionID {
			return true
		}
	}
	return false
}
