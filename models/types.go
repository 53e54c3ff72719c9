package models

import "time"

// Request types

type CreatePollRequest struct {
	Title   string   `json:"title"`
	Options []string `json:"options"`
}

// option the session is voting for; the poll comes from the URL path
type VoteRequest struct {
	PollOptionID string `json:"pollOptionId"`
}

// Response types

type CreatePollResponse struct {
	PollID string `json:"pollId"`
}

type PollDetailResponse struct {
	Poll PollDetail `json:"poll"`
}

type PollDetail struct {
	ID      string        `json:"id"`
	Title   string        `json:"title"`
	Options []OptionScore `json:"options"`
}

type OptionScore struct {
	ID    string `json:"id"`
	Title string `json:"title"`
	Score int    `json:"score"`
}

// Domain types

type Poll struct {
	ID        string       `json:"id"`
	Title     string       `json:"title"`
	Options   []PollOption `json:"options"`
	CreatedAt time.Time    `json:"created_at"`
}

type PollOption struct {
	ID     string `json:"id"`
	PollID string `json:"poll_id"`
	Title  string `json:"title"`
}

type Vote struct {
	ID           string    `json:"id"`
	SessionID    string    `json:"-"` // Never expose in JSON
	PollID       string    `json:"poll_id"`
	PollOptionID string    `json:"poll_option_id"`
	CreatedAt    time.Time `json:"created_at"`
}

// TallyDelta is published on the bus after every committed counter
// change. Votes is the option's new absolute count, not the applied
// delta.
type TallyDelta struct {
	PollOptionID string `json:"pollOptionId"`
	Votes        int    `json:"votes"`
}

// Error response

type ErrorResponse struct {
	Error   string `json:"error"`
	Message string `json:"message,omitempty"`
}
