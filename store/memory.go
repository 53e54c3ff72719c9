// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package store

import (
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/danielhkuo/livepoll/models"
)

// MemoryStore is an in-memory Ledger with the same uniqueness
// semantics as SQLStore. Used by tests; also handy for local runs
// without a database.
type MemoryStore struct {
	mu    sync.Mutex
	polls map[string]models.Poll
	votes map[string]models.Vote // vote id -> vote
}

func NewMemoryStore() *MemoryStore {
	return &MemoryStore{
		polls: make(map[string]models.Poll),
		votes: make(map[string]models.Vote),
	}
}

func (s *MemoryStore) CreatePoll(title string, optionTitles []string) (models.Poll, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	poll := models.Poll{
		ID:        uuid.NewString(),
		Title:     title,
		CreatedAt: time.Now(),
	}
	for _, optTitle := range optionTitles {
		poll.Options = append(poll.Options, models.PollOption{
			ID:     uuid.NewString(),
			PollID: poll.ID,
			Title:  optTitle,
		})
	}
	s.polls[poll.ID] = poll
	return poll, nil
}

func (s *MemoryStore) GetPoll(pollID string) (models.Poll, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	poll, ok := s.polls[pollID]
	if !ok {
		return models.Poll{}, ErrNotFound
	}
	return poll, nil
}

func (s *MemoryStore) FindVote(sessionID, pollID string) (models.Vote, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	for _, vote := range s.votes {
		if vote.SessionID == sessionID && vote.PollID == pollID {
			return vote, nil
		}
	}
	return models.Vote{}, ErrNotFound
}

func (s *MemoryStore) CreateVote(sessionID, pollID, pollOptionID string) (models.Vote, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	for _, vote := range s.votes {
		if vote.SessionID == sessionID && vote.PollID == pollID {
			return models.Vote{}, ErrConflict
		}
	}

	vote := models.Vote{
		ID:           uuid.NewString(),
		SessionID:    sessionID,
		PollID:       pollID,
		PollOptionID: pollOptionID,
		CreatedAt:    time.Now(),
	}
	s.votes[vote.ID] = vote
	return vote, nil
}

func (s *MemoryStore) DeleteVote(voteID string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	delete(s.votes, voteID)
	return nil
}

func (s *MemoryStore) VoteCounts() ([]OptionVotes, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	byOption := make(map[[2]string]int)
	for _, vote := range s.votes {
		byOption[[2]string{vote.PollID, vote.PollOptionID}]++
	}

	var counts []OptionVotes
	for key, n := range byOption {
		counts = append(counts, OptionVotes{
			PollID:       key[0],
			PollOptionID: key[1],
			Votes:        n,
		})
	}
	return counts, nil
}

// VoteCount reports the number of stored votes for a poll. Test helper.
func (s *MemoryStore) VoteCount(pollID string) int {
	s.mu.Lock()
	defer s.mu.Unlock()

	n := 0
	for _, vote := range s.votes {
		if vote.PollID == pollID {
			n++
		}
	}
	return n
}
