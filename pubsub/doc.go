// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

/*
Package pubsub fans tally deltas out to the live result streams.

# Delivery Model

Publish runs on the caller's goroutine and invokes every listener
registered for the poll, in registration order, after the
corresponding counter write has committed. Listeners must therefore
return quickly; the websocket stream decouples slow peers with a
buffered channel on its side rather than blocking here.

A panic inside one listener is recovered and logged so the remaining
listeners still receive the delta.

# Lifecycle

The bus is created once in main and injected into the coordinator and
the stream handler. Subscriptions are bound to a connection and
released on teardown; nothing survives a restart.
*/
package pubsub
