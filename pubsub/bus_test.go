// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package pubsub

import (
	"sync"
	"sync/atomic"
	"testing"

	"github.com/danielhkuo/livepoll/models"
)

func TestPublishDeliversInRegistrationOrder(t *testing.T) {
	bus := NewBus()

	var order []string
	bus.Subscribe("poll-1", func(models.TallyDelta) { order = append(order, "first") })
	bus.Subscribe("poll-1", func(models.TallyDelta) { order = append(order, "second") })
	bus.Subscribe("poll-1", func(models.TallyDelta) { order = append(order, "third") })

	bus.Publish("poll-1", models.TallyDelta{PollOptionID: "opt-a", Votes: 1})

	want := []string{"first", "second", "third"}
	if len(order) != len(want) {
		t.Fatalf("Expected %d deliveries, got %d", len(want), len(order))
	}
	for i := range want {
		if order[i] != want[i] {
			t.Errorf("Delivery %d: expected %s, got %s", i, want[i], order[i])
		}
	}
}

func TestPublishOnlyReachesSubscribedPoll(t *testing.T) {
	bus := NewBus()

	var got []models.TallyDelta
	bus.Subscribe("poll-1", func(d models.TallyDelta) { got = append(got, d) })
	bus.Subscribe("poll-2", func(models.TallyDelta) { t.Error("poll-2 listener should not fire") })

	bus.Publish("poll-1", models.TallyDelta{PollOptionID: "opt-a", Votes: 1})

	if len(got) != 1 {
		t.Fatalf("Expected 1 delivery, got %d", len(got))
	}
	if got[0].PollOptionID != "opt-a" || got[0].Votes != 1 {
		t.Errorf("Unexpected delta: %+v", got[0])
	}
}

func TestPublishWithNoSubscribersIsNoop(t *testing.T) {
	bus := NewBus()

	// Must not panic or block
	bus.Publish("poll-1", models.TallyDelta{PollOptionID: "opt-a", Votes: 1})
}

func TestPanickingListenerDoesNotStarveOthers(t *testing.T) {
	bus := NewBus()

	delivered := 0
	bus.Subscribe("poll-1", func(models.TallyDelta) { panic("boom") })
	bus.Subscribe("poll-1", func(models.TallyDelta) { delivered++ })

	bus.Publish("poll-1", models.TallyDelta{PollOptionID: "opt-a", Votes: 1})

	if delivered != 1 {
		t.Errorf("Listener after the panicking one was starved: delivered=%d", delivered)
	}
}

func TestUnsubscribe(t *testing.T) {
	bus := NewBus()

	delivered := 0
	sub := bus.Subscribe("poll-1", func(models.TallyDelta) { delivered++ })
	bus.Subscribe("poll-1", func(models.TallyDelta) {})

	if got := bus.Count("poll-1"); got != 2 {
		t.Fatalf("Expected 2 subscribers, got %d", got)
	}

	bus.Unsubscribe(sub)

	if got := bus.Count("poll-1"); got != 1 {
		t.Errorf("Expected 1 subscriber after unsubscribe, got %d", got)
	}

	bus.Publish("poll-1", models.TallyDelta{PollOptionID: "opt-a", Votes: 1})
	if delivered != 0 {
		t.Errorf("Unsubscribed listener still received %d deliveries", delivered)
	}

	// Double unsubscribe is safe
	bus.Unsubscribe(sub)
	bus.Unsubscribe(nil)
}

// Unsubscribe must wait out a delivery that already snapshotted the
// subscription; the listener never fires once Unsubscribe has returned
func TestUnsubscribeWaitsForInFlightDelivery(t *testing.T) {
	bus := NewBus()

	entered := make(chan struct{})
	release := make(chan struct{})
	var unsubscribed atomic.Bool

	sub := bus.Subscribe("poll-1", func(models.TallyDelta) {
		if unsubscribed.Load() {
			t.Error("Listener invoked after Unsubscribe returned")
		}
		select {
		case entered <- struct{}{}:
			<-release
		default:
		}
	})

	published := make(chan struct{})
	go func() {
		bus.Publish("poll-1", models.TallyDelta{PollOptionID: "opt-a", Votes: 1})
		close(published)
	}()

	// The publish is now mid-delivery inside the listener
	<-entered

	go close(release)
	bus.Unsubscribe(sub)
	unsubscribed.Store(true)

	<-published
	bus.Publish("poll-1", models.TallyDelta{PollOptionID: "opt-a", Votes: 2})
}

// TestConcurrentSubscribePublish exercises the bus from many
// goroutines at once; run with -race
func TestConcurrentSubscribePublish(t *testing.T) {
	bus := NewBus()

	var wg sync.WaitGroup
	for i := 0; i < 10; i++ {
		wg.Add(2)
		go func() {
			defer wg.Done()
			sub := bus.Subscribe("poll-1", func(models.TallyDelta) {})
			bus.Unsubscribe(sub)
		}()
		go func() {
			defer wg.Done()
			bus.Publish("poll-1", models.TallyDelta{PollOptionID: "opt-a", Votes: 1})
		}()
	}
	wg.Wait()
}
