// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package pubsub

import (
	"log/slog"
	"sync"

	"github.com/danielhkuo/livepoll/models"
)

// Listener receives one tally delta per committed counter change on
// the subscribed poll.
type Listener func(models.TallyDelta)

// Subscription is the handle returned by Subscribe; pass it to
// Unsubscribe when the consumer goes away.
type Subscription struct {
	pollID string
	id     uint64
	fn     Listener

	// mu serializes delivery against Unsubscribe so the listener is
	// never invoked after Unsubscribe has returned
	mu     sync.Mutex
	closed bool
}

// Bus is the in-process tally event hub. Listeners are registered per
// poll and invoked synchronously, in registration order, on the
// publisher's goroutine. The bus holds no durable state; restart
// drops all subscriptions.
type Bus struct {
	mu     sync.Mutex
	nextID uint64
	subs   map[string][]*Subscription // poll id -> ordered listeners
}

func NewBus() *Bus {
	return &Bus{
		subs: make(map[string][]*Subscription),
	}
}

// Subscribe registers a listener for the poll's deltas.
func (b *Bus) Subscribe(pollID string, fn Listener) *Subscription {
	b.mu.Lock()
	defer b.mu.Unlock()

	b.nextID++
	sub := &Subscription{pollID: pollID, id: b.nextID, fn: fn}
	b.subs[pollID] = append(b.subs[pollID], sub)
	return sub
}

// Unsubscribe removes a listener. Once it returns the listener will
// not be invoked again, even by a Publish already in flight. Safe to
// call more than once.
func (b *Bus) Unsubscribe(sub *Subscription) {
	if sub == nil {
		return
	}

	b.mu.Lock()
	subs := b.subs[sub.pollID]
	for i, s := range subs {
		if s.id == sub.id {
			b.subs[sub.pollID] = append(subs[:i], subs[i+1:]...)
			break
		}
	}
	if len(b.subs[sub.pollID]) == 0 {
		delete(b.subs, sub.pollID)
	}
	b.mu.Unlock()

	// Waits out any delivery that snapshotted this subscription before
	// it left the registry
	sub.mu.Lock()
	sub.closed = true
	sub.mu.Unlock()
}

// Publish delivers the delta to every listener currently subscribed to
// the poll. Publishing to a poll with no subscribers is a no-op. A
// panicking listener is logged and skipped; it never prevents delivery
// to the rest.
func (b *Bus) Publish(pollID string, delta models.TallyDelta) {
	b.mu.Lock()
	subs := make([]*Subscription, len(b.subs[pollID]))
	copy(subs, b.subs[pollID])
	b.mu.Unlock()

	for _, sub := range subs {
		deliver(sub, delta)
	}
}

func deliver(sub *Subscription, delta models.TallyDelta) {
	sub.mu.Lock()
	defer sub.mu.Unlock()
	if sub.closed {
		return
	}

	defer func() {
		if r := recover(); r != nil {
			slog.Error("tally listener panicked", "poll_id", sub.pollID, "panic", r)
		}
	}()
	sub.fn(delta)
}

// Count reports the number of listeners subscribed to the poll.
func (b *Bus) Count(pollID string) int {
	b.mu.Lock()
	defer b.mu.Unlock()
	return len(b.subs[pollID])
}
