package websocket

import (
	"testing"
	"time"
)

func waitFor(t *testing.T, cond func() bool) {
	t.Helper()
	deadline := time.Now().Add(2 * time.Second)
	for time.Now().Before(deadline) {
		if cond() {
			return
		}
		time.Sleep(5 * time.Millisecond)
	}
	t.Fatal("condition not reached in time")
}

func TestHubBroadcastEvictsStalledClient(t *testing.T) {
	hub := NewHub()
	go hub.Run()

	healthy := &Client{hub: hub, send: make(chan []byte, 8), userID: 1, username: "healthy"}
	// No buffer and no reader, so the first broadcast stalls it
	stalled := &Client{hub: hub, send: make(chan []byte), userID: 2, username: "stalled"}

	hub.register <- healthy
	hub.register <- stalled
	waitFor(t, func() bool { return hub.GetConnectedUserCount() == 2 })

	hub.broadcast <- []byte(`{"type":"heroes_synced"}`)

	waitFor(t, func() bool { return !hub.IsUserConnected(2) })
	if !hub.IsUserConnected(1) {
		t.Error("expected healthy client to stay connected")
	}
	if hub.GetConnectedUserCount() != 1 {
		t.Errorf("expected 1 connected user, got %d", hub.GetConnectedUserCount())
	}

	select {
	case msg := <-healthy.send:
		if len(msg) == 0 {
			t.Error("expected a non-empty broadcast message")
		}
	case <-time.After(time.Second):
		t.Error("healthy client never received the broadcast")
	}

	// Eviction closes the stalled client's send channel
	select {
	case _, open := <-stalled.send:
		if open {
			t.Error("expected stalled client's send channel to be closed")
		}
	case <-time.After(time.Second):
		t.Error("stalled client's send channel was not closed")
	}
}

func TestHubSendToUserEvictsStalledClient(t *testing.T) {
	hub := NewHub()
	go hub.Run()

	stalled := &Client{hub: hub, send: make(chan []byte), userID: 7, username: "stalled"}
	hub.register <- stalled
	waitFor(t, func() bool { return hub.IsUserConnected(7) })

	hub.NotifyMMRUpdated(7, &MMRPayload{MMR: 3000, Rank: "Legend", Change: 25})

	waitFor(t, func() bool { return !hub.IsUserConnected(7) })
	if hub.GetConnectedUserCount() != 0 {
		t.Errorf("expected no connected users, got %d", hub.GetConnectedUserCount())
	}
}

func TestHubUnregisterIsIdempotent(t *testing.T) {
	hub := NewHub()
	go hub.Run()

	client := &Client{hub: hub, send: make(chan []byte, 1), userID: 3, username: "tester"}
	hub.register <- client
	waitFor(t, func() bool { return hub.IsUserConnected(3) })

	hub.unregister <- client
	hub.unregister <- client
	waitFor(t, func() bool { return !hub.IsUserConnected(3) })
}
