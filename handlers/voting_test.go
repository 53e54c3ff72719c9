// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package handlers

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/google/uuid"

	"github.com/danielhkuo/livepoll/auth"
	"github.com/danielhkuo/livepoll/models"
	"github.com/danielhkuo/livepoll/pubsub"
	"github.com/danielhkuo/livepoll/store"
	"github.com/danielhkuo/livepoll/tally"
	"github.com/danielhkuo/livepoll/testutil"
	"github.com/danielhkuo/livepoll/voting"
)

type votingFixture struct {
	ledger  *store.MemoryStore
	tallies *tally.Store
	bus     *pubsub.Bus
	handler *VotingHandler
	poll    models.Poll
}

func newVotingFixture(t *testing.T) *votingFixture {
	t.Helper()

	f := &votingFixture{
		ledger:  store.NewMemoryStore(),
		tallies: tally.NewStore(),
		bus:     pubsub.NewBus(),
	}
	coordinator := voting.NewCoordinator(f.ledger, f.tallies, f.bus)
	f.handler = NewVotingHandler(coordinator, testutil.GetTestConfig())
	f.poll = testutil.CreateTestPoll(t, f.ledger, "Best language?", "Go", "Rust")
	return f
}

func (f *votingFixture) castVote(t *testing.T, pollID, optionID string, cookie *http.Cookie) *httptest.ResponseRecorder {
	t.Helper()

	req := testutil.MakeRequest("POST", "/polls/"+pollID+"/votes", models.VoteRequest{PollOptionID: optionID}, nil)
	req.SetPathValue("pollId", pollID)
	if cookie != nil {
		req.AddCookie(cookie)
	}
	w := httptest.NewRecorder()
	f.handler.CastVote(w, req)
	return w
}

func sessionCookie(w *httptest.ResponseRecorder) *http.Cookie {
	for _, c := range w.Result().Cookies() {
		if c.Name == SessionCookie {
			return c
		}
	}
	return nil
}

func TestCastVoteFreshSession(t *testing.T) {
	f := newVotingFixture(t)

	w := f.castVote(t, f.poll.ID, f.poll.Options[0].ID, nil)
	testutil.AssertStatus(t, w, http.StatusCreated)

	cookie := sessionCookie(w)
	if cookie == nil {
		t.Fatal("Expected a session cookie on a fresh vote")
	}
	if !cookie.HttpOnly {
		t.Error("Session cookie must be HttpOnly")
	}
	if cookie.Path != "/" {
		t.Errorf("Session cookie path must be /, got %q", cookie.Path)
	}
	if cookie.MaxAge != 60*60*24*30 {
		t.Errorf("Session cookie must live 30 days, got MaxAge %d", cookie.MaxAge)
	}

	// Cookie value is a valid signed token
	cfg := testutil.GetTestConfig()
	sessionID, err := auth.VerifySession(cookie.Value, cfg.CookieSecret)
	if err != nil {
		t.Fatalf("Cookie is not a valid signed token: %v", err)
	}
	if _, err := f.ledger.FindVote(sessionID, f.poll.ID); err != nil {
		t.Errorf("No vote recorded for the cookie session: %v", err)
	}
}

func TestCastVoteReturningSession(t *testing.T) {
	f := newVotingFixture(t)

	first := f.castVote(t, f.poll.ID, f.poll.Options[0].ID, nil)
	cookie := sessionCookie(first)

	t.Run("same option again is rejected", func(t *testing.T) {
		w := f.castVote(t, f.poll.ID, f.poll.Options[0].ID, cookie)
		testutil.AssertStatus(t, w, http.StatusBadRequest)

		var resp models.ErrorResponse
		testutil.AssertJSON(t, w, &resp)
		if resp.Message != "You already voted on this poll." {
			t.Errorf("Unexpected message: %q", resp.Message)
		}
		if f.ledger.VoteCount(f.poll.ID) != 1 {
			t.Errorf("Rejection changed vote count to %d", f.ledger.VoteCount(f.poll.ID))
		}
	})

	t.Run("no new cookie for a known session", func(t *testing.T) {
		w := f.castVote(t, f.poll.ID, f.poll.Options[1].ID, cookie)
		testutil.AssertStatus(t, w, http.StatusCreated)
		if sessionCookie(w) != nil {
			t.Error("Known session must not receive a new cookie")
		}
	})

	t.Run("switch moved the tally", func(t *testing.T) {
		counts := make(map[string]int)
		for _, entry := range f.tallies.ReadAll(f.poll.ID) {
			counts[entry.OptionID] = entry.Count
		}
		if counts[f.poll.Options[0].ID] != 0 || counts[f.poll.Options[1].ID] != 1 {
			t.Errorf("Expected Go=0 Rust=1 after switch, got %v", counts)
		}
	})
}

func TestCastVoteValidation(t *testing.T) {
	f := newVotingFixture(t)

	tests := []struct {
		name           string
		pollID         string
		optionID       string
		cookie         *http.Cookie
		expectedStatus int
	}{
		{
			name:           "malformed poll id",
			pollID:         "not-a-uuid",
			optionID:       f.poll.Options[0].ID,
			expectedStatus: http.StatusBadRequest,
		},
		{
			name:           "malformed option id",
			pollID:         f.poll.ID,
			optionID:       "not-a-uuid",
			expectedStatus: http.StatusBadRequest,
		},
		{
			name:           "unknown poll",
			pollID:         uuid.NewString(),
			optionID:       f.poll.Options[0].ID,
			expectedStatus: http.StatusNotFound,
		},
		{
			name:           "option from no poll",
			pollID:         f.poll.ID,
			optionID:       uuid.NewString(),
			expectedStatus: http.StatusNotFound,
		},
		{
			name:           "tampered session cookie",
			pollID:         f.poll.ID,
			optionID:       f.poll.Options[0].ID,
			cookie:         &http.Cookie{Name: SessionCookie, Value: "forged.token"},
			expectedStatus: http.StatusBadRequest,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			w := f.castVote(t, tt.pollID, tt.optionID, tt.cookie)
			testutil.AssertStatus(t, w, tt.expectedStatus)
		})
	}

	// None of the rejected requests may have left state behind
	if f.ledger.VoteCount(f.poll.ID) != 0 {
		t.Errorf("Rejected votes created %d ledger rows", f.ledger.VoteCount(f.poll.ID))
	}
	if entries := f.tallies.ReadAll(f.poll.ID); len(entries) != 0 {
		t.Errorf("Rejected votes touched the tally: %v", entries)
	}
}

func TestCastVotePublishesToSubscribers(t *testing.T) {
	f := newVotingFixture(t)

	var got []models.TallyDelta
	sub := f.bus.Subscribe(f.poll.ID, func(d models.TallyDelta) { got = append(got, d) })
	defer f.bus.Unsubscribe(sub)

	w := f.castVote(t, f.poll.ID, f.poll.Options[0].ID, nil)
	testutil.AssertStatus(t, w, http.StatusCreated)

	if len(got) != 1 {
		t.Fatalf("Expected 1 delta, got %d", len(got))
	}
	if got[0].PollOptionID != f.poll.Options[0].ID || got[0].Votes != 1 {
		t.Errorf("Unexpected delta: %+v", got[0])
	}

	// A switch delivers the decrement and the increment, in order
	got = nil
	w2 := f.castVote(t, f.poll.ID, f.poll.Options[1].ID, sessionCookie(w))
	testutil.AssertStatus(t, w2, http.StatusCreated)

	if len(got) != 2 {
		t.Fatalf("Expected 2 deltas for a switch, got %d", len(got))
	}
	if got[0].PollOptionID != f.poll.Options[0].ID || got[0].Votes != 0 {
		t.Errorf("First delta should be the decrement, got %+v", got[0])
	}
	if got[1].PollOptionID != f.poll.Options[1].ID || got[1].Votes != 1 {
		t.Errorf("Second delta should be the increment, got %+v", got[1])
	}
}
