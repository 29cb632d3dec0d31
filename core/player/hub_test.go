package player

import (
	"encoding/json"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func startHub(t *testing.T) *Hub {
	t.Helper()
	hub := NewHub()
	go hub.Run()
	t.Cleanup(hub.Stop)
	return hub
}

func waitForConnections(t *testing.T, hub *Hub, userID int64, want int) {
	t.Helper()
	deadline := time.Now().Add(time.Second)
	for time.Now().Before(deadline) {
		if hub.ConnectionCount(userID) == want {
			return
		}
		time.Sleep(time.Millisecond)
	}
	t.Fatalf("user %d never reached %d connections", userID, want)
}

func TestHubNotifyNowPlaying(t *testing.T) {
	hub := startHub(t)

	client := &Client{Hub: hub, Send: make(chan []byte, 8), UserID: 1}
	hub.Register(client)
	waitForConnections(t, hub, 1, 1)

	hub.NotifyNowPlaying(1, NowPlayingData{
		TrackID:    "music_1",
		PreviewURL: "http://x/1.mp3",
		Tags:       []string{"Electronic"},
	})

	select {
	case payload := <-client.Send:
		var msg WSMessage
		require.NoError(t, json.Unmarshal(payload, &msg))
		assert.Equal(t, MsgTypeNowPlaying, msg.Type)
		assert.Equal(t, int64(1), msg.UserID)

		var data NowPlayingData
		require.NoError(t, json.Unmarshal(msg.Data, &data))
		assert.Equal(t, "music_1", data.TrackID)
		assert.Equal(t, []string{"Electronic"}, data.Tags)
	case <-time.After(time.Second):
		t.Fatal("no message delivered")
	}
}

func TestHubOnlyTargetUserReceives(t *testing.T) {
	hub := startHub(t)

	alice := &Client{Hub: hub, Send: make(chan []byte, 8), UserID: 1}
	bob := &Client{Hub: hub, Send: make(chan []byte, 8), UserID: 2}
	hub.Register(alice)
	hub.Register(bob)
	waitForConnections(t, hub, 1, 1)
	waitForConnections(t, hub, 2, 1)

	hub.NotifyNowPlaying(1, NowPlayingData{TrackID: "music_1"})

	select {
	case <-alice.Send:
	case <-time.After(time.Second):
		t.Fatal("target user got nothing")
	}
	select {
	case <-bob.Send:
		t.Fatal("other user must not receive the event")
	case <-time.After(50 * time.Millisecond):
	}
}

func TestHubUnregisterClosesSend(t *testing.T) {
	hub := startHub(t)

	client := &Client{Hub: hub, Send: make(chan []byte, 8), UserID: 1}
	hub.Register(client)
	waitForConnections(t, hub, 1, 1)

	hub.Unregister(client)
	waitForConnections(t, hub, 1, 0)

	_, open := <-client.Send
	assert.False(t, open, "send channel must be closed on unregister")
}

func TestHubSlowConsumerDoesNotStallLoop(t *testing.T) {
	hub := startHub(t)

	slow := &Client{Hub: hub, Send: make(chan []byte, 1), UserID: 1}
	hub.Register(slow)
	waitForConnections(t, hub, 1, 1)

	// First event fills the one-slot queue, second one overflows it and
	// must drop the connection without wedging the hub loop.
	hub.NotifyNowPlaying(1, NowPlayingData{TrackID: "music_1"})
	hub.NotifyNowPlaying(1, NowPlayingData{TrackID: "music_2"})
	waitForConnections(t, hub, 1, 0)

	registered := make(chan struct{})
	go func() {
		hub.Register(&Client{Hub: hub, Send: make(chan []byte, 8), UserID: 2})
		close(registered)
	}()
	select {
	case <-registered:
	case <-time.After(2 * time.Second):
		t.Fatal("register blocked after a slow consumer was dropped")
	}
	waitForConnections(t, hub, 2, 1)
}

func TestHubMultipleConnectionsPerUser(t *testing.T) {
	hub := startHub(t)

	first := &Client{Hub: hub, Send: make(chan []byte, 8), UserID: 1}
	second := &Client{Hub: hub, Send: make(chan []byte, 8), UserID: 1}
	hub.Register(first)
	hub.Register(second)
	waitForConnections(t, hub, 1, 2)

	hub.NotifyNowPlaying(1, NowPlayingData{TrackID: "music_1"})

	for _, c := range []*Client{first, second} {
		select {
		case <-c.Send:
		case <-time.After(time.Second):
			t.Fatal("every connection of the user should receive the event")
		}
	}
}
