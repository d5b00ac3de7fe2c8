package display

import (
	"encoding/json"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/Stieges/hallenfussball-pwa-sub008/repos/livematch"
)

func newTestClient(hub *Hub, room string) *client {
	return &client{
		hub:  hub,
		send: make(chan []byte, 4),
		room: room,
	}
}

func registered(t *testing.T, hub *Hub, room string, want int) {
	t.Helper()
	require.Eventually(t, func() bool {
		hub.mu.RLock()
		defer hub.mu.RUnlock()
		return len(hub.rooms[room]) == want
	}, time.Second, 5*time.Millisecond)
}

func receive(t *testing.T, ch chan []byte) []byte {
	t.Helper()
	select {
	case frame := <-ch:
		return frame
	case <-time.After(time.Second):
		t.Fatal("expected a frame, got none")
		return nil
	}
}

func TestHubBroadcastsOnlyToRoom(t *testing.T) {
	hub := NewHub()
	go hub.Run()

	winterCup := newTestClient(hub, "winter-cup")
	summerCup := newTestClient(hub, "summer-cup")
	hub.register <- winterCup
	hub.register <- summerCup
	registered(t, hub, "winter-cup", 1)
	registered(t, hub, "summer-cup", 1)

	hub.BroadcastMatch("winter-cup", &livematch.LiveMatch{
		ID:           "match-1",
		TournamentID: "winter-cup",
		HomeScore:    2,
		AwayScore:    1,
	})

	var frame struct {
		Type    string `json:"type"`
		Payload struct {
			ID        string `json:"id"`
			HomeScore int    `json:"homeScore"`
		} `json:"payload"`
	}
	require.NoError(t, json.Unmarshal(receive(t, winterCup.send), &frame))
	require.Equal(t, MessageMatchUpdated, frame.Type)
	require.Equal(t, "match-1", frame.Payload.ID)
	require.Equal(t, 2, frame.Payload.HomeScore)

	select {
	case <-summerCup.send:
		t.Fatal("frame leaked into another room")
	case <-time.After(50 * time.Millisecond):
	}
}

func TestHubUnregisterClosesClient(t *testing.T) {
	hub := NewHub()
	go hub.Run()

	c := newTestClient(hub, "winter-cup")
	hub.register <- c
	registered(t, hub, "winter-cup", 1)

	hub.unregister <- c
	registered(t, hub, "winter-cup", 0)

	_, open := <-c.send
	require.False(t, open)

	// A broadcast after the room emptied must not panic or block.
	hub.BroadcastMatch("winter-cup", &livematch.LiveMatch{ID: "match-1"})
}

func TestHubDropsFramesForSlowConsumers(t *testing.T) {
	hub := NewHub()
	go hub.Run()

	slow := &client{hub: hub, send: make(chan []byte, 1), room: "winter-cup"}
	hub.register <- slow
	registered(t, hub, "winter-cup", 1)

	for i := 0; i < 5; i++ {
		hub.BroadcastMatch("winter-cup", &livematch.LiveMatch{ID: "match-1", HomeScore: i})
	}

	// The buffer holds one frame; the rest were dropped without blocking.
	receive(t, slow.send)
	select {
	case <-slow.send:
		t.Fatal("expected the remaining frames to be dropped")
	case <-time.After(50 * time.Millisecond):
	}
}
