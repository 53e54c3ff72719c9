// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package store

import (
	"database/sql"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/danielhkuo/livepoll/models"
)

// SQLStore is the database-backed Ledger. Works against both the
// postgres and sqlite drivers; placeholders use the $N form, which
// both accept.
type SQLStore struct {
	db *sql.DB
}

func NewSQLStore(db *sql.DB) *SQLStore {
	return &SQLStore{db: db}
}

func (s *SQLStore) CreatePoll(title string, optionTitles []string) (models.Poll, error) {
	poll := models.Poll{
		ID:        uuid.NewString(),
		Title:     title,
		CreatedAt: time.Now(),
	}

	tx, err := s.db.Begin()
	if err != nil {
		return models.Poll{}, fmt.Errorf("begin transaction: %w", err)
	}
	defer tx.Rollback()

	_, err = tx.Exec(`
		INSERT INTO poll (id, title, created_at)
		VALUES ($1, $2, $3)
	`, poll.ID, poll.Title, poll.CreatedAt)
	if err != nil {
		return models.Poll{}, fmt.Errorf("insert poll: %w", err)
	}

	for _, optTitle := range optionTitles {
		opt := models.PollOption{
			ID:     uuid.NewString(),
			PollID: poll.ID,
			Title:  optTitle,
		}
		_, err = tx.Exec(`
			INSERT INTO poll_option (id, poll_id, title, position)
			VALUES ($1, $2, $3, $4)
		`, opt.ID, opt.PollID, opt.Title, len(poll.Options))
		if err != nil {
			return models.Poll{}, fmt.Errorf("insert option: %w", err)
		}
		poll.Options = append(poll.Options, opt)
	}

	if err := tx.Commit(); err != nil {
		return models.Poll{}, fmt.Errorf("commit poll: %w", err)
	}

	return poll, nil
}

func (s *SQLStore) GetPoll(pollID string) (models.Poll, error) {
	var poll models.Poll
	err := s.db.QueryRow(`
		SELECT id, title, created_at
		FROM poll
		WHERE id = $1
	`, pollID).Scan(&poll.ID, &poll.Title, &poll.CreatedAt)

	if err == sql.ErrNoRows {
		return models.Poll{}, ErrNotFound
	}
	if err != nil {
		return models.Poll{}, fmt.Errorf("query poll: %w", err)
	}

	rows, err := s.db.Query(`
		SELECT id, poll_id, title
		FROM poll_option
		WHERE poll_id = $1
		ORDER BY position
	`, poll.ID)
	if err != nil {
		return models.Poll{}, fmt.Errorf("query options: %w", err)
	}
	defer rows.Close()

	for rows.Next() {
		var opt models.PollOption
		if err := rows.Scan(&opt.ID, &opt.PollID, &opt.Title); err != nil {
			return models.Poll{}, fmt.Errorf("scan option: %w", err)
		}
		poll.Options = append(poll.Options, opt)
	}
	if err := rows.Err(); err != nil {
		return models.Poll{}, fmt.Errorf("iterate options: %w", err)
	}

	return poll, nil
}

func (s *SQLStore) FindVote(sessionID, pollID string) (models.Vote, error) {
	var vote models.Vote
	err := s.db.QueryRow(`
		SELECT id, session_id, poll_id, poll_option_id, created_at
		FROM vote
		WHERE session_id = $1 AND poll_id = $2
	`, sessionID, pollID).Scan(
		&vote.ID, &vote.SessionID, &vote.PollID, &vote.PollOptionID, &vote.CreatedAt,
	)

	if err == sql.ErrNoRows {
		return models.Vote{}, ErrNotFound
	}
	if err != nil {
		return models.Vote{}, fmt.Errorf("query vote: %w", err)
	}

	return vote, nil
}

func (s *SQLStore) CreateVote(sessionID, pollID, pollOptionID string) (models.Vote, error) {
	vote := models.Vote{
		ID:           uuid.NewString(),
		SessionID:    sessionID,
		PollID:       pollID,
		PollOptionID: pollOptionID,
		CreatedAt:    time.Now(),
	}

	_, err := s.db.Exec(`
		INSERT INTO vote (id, session_id, poll_id, poll_option_id, created_at)
		VALUES ($1, $2, $3, $4, $5)
	`, vote.ID, vote.SessionID, vote.PollID, vote.PollOptionID, vote.CreatedAt)

	if err != nil {
		if isUniqueViolation(err) {
			return models.Vote{}, ErrConflict
		}
		return models.Vote{}, fmt.Errorf("insert vote: %w", err)
	}

	return vote, nil
}

func (s *SQLStore) DeleteVote(voteID string) error {
	_, err := s.db.Exec(`DELETE FROM vote WHERE id = $1`, voteID)
	if err != nil {
		return fmt.Errorf("delete vote: %w", err)
	}
	return nil
}

func (s *SQLStore) VoteCounts() ([]OptionVotes, error) {
	rows, err := s.db.Query(`
		SELECT poll_id, poll_option_id, COUNT(*)
		FROM vote
		GROUP BY poll_id, poll_option_id
	`)
	if err != nil {
		return nil, fmt.Errorf("query vote counts: %w", err)
	}
	defer rows.Close()

	var counts []OptionVotes
	for rows.Next() {
		var c OptionVotes
		if err := rows.Scan(&c.PollID, &c.PollOptionID, &c.Votes); err != nil {
			return nil, fmt.Errorf("scan vote count: %w", err)
		}
		counts = append(counts, c)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate vote counts: %w", err)
	}

	return counts, nil
}

// isUniqueViolation recognizes duplicate-key errors from both drivers
// (pq reports "duplicate key value violates unique constraint", the
// sqlite driver "UNIQUE constraint failed").
func isUniqueViolation(err error) bool {
	msg := err.Error()
	return strings.Contains(msg, "duplicate key value violates unique constraint") ||
		strings.Contains(msg, "UNIQUE constraint failed")
}
