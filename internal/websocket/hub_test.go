package websocket

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/gorilla/websocket"
)

func TestTopicOf(t *testing.T) {
	tests := map[string]string{
		"import.completed": "import",
		"event.created":    "event",
		"ping":             "ping",
		"":                 "",
	}
	for action, want := range tests {
		if got := TopicOf(action); got != want {
			t.Errorf("TopicOf(%q) = %q, want %q", action, got, want)
		}
	}
}

// dial starts a server that registers every connection with hub under topic.
func dial(t *testing.T, hub *Hub, topic string) *websocket.Conn {
	t.Helper()
	upgrader := websocket.Upgrader{}
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		conn, err := upgrader.Upgrade(w, r, nil)
		if err != nil {
			t.Errorf("upgrade failed: %v", err)
			return
		}
		client := NewClient(hub, conn, topic, "u-1")
		hub.Register <- client
		go client.WritePump()
		go client.ReadPump(func(c *Client, msg []byte) {
			var m Message
			if json.Unmarshal(msg, &m) == nil && m.Action == ActionPing {
				hub.Reply(c, NewPongMessage())
			}
		})
	}))
	t.Cleanup(srv.Close)

	conn, _, err := websocket.DefaultDialer.Dial("ws"+strings.TrimPrefix(srv.URL, "http"), nil)
	if err != nil {
		t.Fatalf("dial failed: %v", err)
	}
	t.Cleanup(func() { conn.Close() })
	return conn
}

func readMessage(t *testing.T, conn *websocket.Conn) Message {
	t.Helper()
	conn.SetReadDeadline(time.Now().Add(2 * time.Second))
	var msg Message
	if err := conn.ReadJSON(&msg); err != nil {
		t.Fatalf("read failed: %v", err)
	}
	return msg
}

func TestHub_PublishAndPing(t *testing.T) {
	hub := NewHub()
	go hub.Run()
	defer hub.Stop()

	all := dial(t, hub, "")
	imports := dial(t, hub, "import")

	// Registration happens on the server goroutine; a ping round trip confirms it.
	all.WriteJSON(Message{Action: ActionPing})
	if msg := readMessage(t, all); msg.Action != ActionPong {
		t.Fatalf("expected pong, got %q", msg.Action)
	}
	imports.WriteJSON(Message{Action: ActionPing})
	if msg := readMessage(t, imports); msg.Action != ActionPong {
		t.Fatalf("expected pong, got %q", msg.Action)
	}

	hub.Publish(Message{Action: "event.created", Payload: map[string]string{"id": "e-1"}})
	hub.Publish(Message{Action: "import.completed", Payload: map[string]string{"id": "i-1"}})

	if msg := readMessage(t, all); msg.Action != "event.created" {
		t.Errorf("expected event.created first, got %q", msg.Action)
	}
	if msg := readMessage(t, all); msg.Action != "import.completed" {
		t.Errorf("expected import.completed, got %q", msg.Action)
	}
	// The topic client skips event.created.
	if msg := readMessage(t, imports); msg.Action != "import.completed" {
		t.Errorf("expected import.completed, got %q", msg.Action)
	}
}
