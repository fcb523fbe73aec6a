package sse

import (
	"testing"
	"time"

	"github.com/wordrush/wordrush/internal/testutil"
)

func TestFormatSSEMessage(t *testing.T) {
	tests := []struct {
		name      string
		eventName string
		data      string
		expected  string
	}{
		{
			name:      "single line data",
			eventName: "room_updated",
			data:      `{"id":"room-1"}`,
			expected:  "event: room_updated\ndata: {\"id\":\"room-1\"}\n\n",
		},
		{
			name:      "multi-line data",
			eventName: "chat_message",
			data:      "line1\nline2",
			expected:  "event: chat_message\ndata: line1\ndata: line2\n\n",
		},
		{
			name:      "empty data",
			eventName: "ping",
			data:      "",
			expected:  "event: ping\ndata: \n\n",
		},
		{
			name:      "data with carriage returns",
			eventName: "test",
			data:      "line1\r\nline2",
			expected:  "event: test\ndata: line1\ndata: line2\n\n",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			result := formatSSEMessage(tt.eventName, tt.data)
			if string(result) != tt.expected {
				t.Errorf("formatSSEMessage(%q, %q)\ngot:  %q\nwant: %q",
					tt.eventName, tt.data, string(result), tt.expected)
			}
		})
	}
}

func TestHub_RegisterAndBroadcast(t *testing.T) {
	hub := NewHub("room-1", testutil.NopLogger())
	go hub.Run()
	defer hub.Close()

	client := NewClient(hub, "player-1")
	hub.Register(client)

	// Give the hub time to process registration
	time.Sleep(10 * time.Millisecond)

	if hub.ClientCount() != 1 {
		t.Errorf("ClientCount() = %d, want 1", hub.ClientCount())
	}

	hub.BroadcastEvent("room_updated", `{"id":"room-1"}`)

	select {
	case msg := <-client.send:
		want := "event: room_updated\ndata: {\"id\":\"room-1\"}\n\n"
		if string(msg) != want {
			t.Errorf("received %q, want %q", string(msg), want)
		}
	case <-time.After(time.Second):
		t.Fatal("timed out waiting for broadcast")
	}
}

func TestHub_BroadcastReachesAllClients(t *testing.T) {
	hub := NewHub("room-1", testutil.NopLogger())
	go hub.Run()
	defer hub.Close()

	clients := []*Client{
		NewClient(hub, "player-1"),
		NewClient(hub, "player-2"),
		NewClient(hub, "player-3"),
	}
	for _, c := range clients {
		hub.Register(c)
	}
	time.Sleep(10 * time.Millisecond)

	hub.Broadcast([]byte("event: test\ndata: x\n\n"))

	for _, c := range clients {
		select {
		case <-c.send:
		case <-time.After(time.Second):
			t.Fatalf("client %s never received the broadcast", c.playerID)
		}
	}
}

func TestHub_UnregisterClosesSendChannel(t *testing.T) {
	hub := NewHub("room-1", testutil.NopLogger())
	go hub.Run()
	defer hub.Close()

	client := NewClient(hub, "player-1")
	hub.Register(client)
	time.Sleep(10 * time.Millisecond)

	hub.Unregister(client)
	time.Sleep(10 * time.Millisecond)

	if hub.ClientCount() != 0 {
		t.Errorf("ClientCount() = %d, want 0", hub.ClientCount())
	}

	select {
	case _, ok := <-client.send:
		if ok {
			t.Error("expected send channel to be closed")
		}
	case <-time.After(time.Second):
		t.Fatal("send channel was not closed")
	}
}

func TestHub_CloseDisconnectsClients(t *testing.T) {
	hub := NewHub("room-1", testutil.NopLogger())
	go hub.Run()

	client := NewClient(hub, "player-1")
	hub.Register(client)
	time.Sleep(10 * time.Millisecond)

	hub.Close()
	time.Sleep(10 * time.Millisecond)

	select {
	case _, ok := <-client.send:
		if ok {
			t.Error("expected send channel to be closed")
		}
	case <-time.After(time.Second):
		t.Fatal("send channel was not closed")
	}
}

func TestHubManager_GetOrCreateHub(t *testing.T) {
	m := NewHubManager(testutil.NopLogger())

	hub1 := m.GetOrCreateHub("room-1")
	hub2 := m.GetOrCreateHub("room-1")
	if hub1 != hub2 {
		t.Error("expected the same hub for the same room")
	}

	other := m.GetOrCreateHub("room-2")
	if other == hub1 {
		t.Error("expected a distinct hub per room")
	}

	m.RemoveHub("room-1")
	m.RemoveHub("room-2")
}

func TestHubManager_GetHubMissing(t *testing.T) {
	m := NewHubManager(testutil.NopLogger())
	if m.GetHub("nope") != nil {
		t.Error("expected nil for unknown room")
	}
}

func TestHubManager_CleanupEmptyHubs(t *testing.T) {
	m := NewHubManager(testutil.NopLogger())

	m.GetOrCreateHub("room-1")
	time.Sleep(10 * time.Millisecond)

	m.CleanupEmptyHubs()

	if m.GetHub("room-1") != nil {
		t.Error("expected empty hub to be removed")
	}
}
