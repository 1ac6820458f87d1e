package http

import (
	"context"
	"testing"
	"time"

	"github.com/gorilla/websocket"
)

func TestHostFeedStreamsResults(t *testing.T) {
	server, service := newTestServer(t)
	defer server.Close()

	u := "ws" + server.URL[len("http"):] + "/ws/host"
	conn, _, err := websocket.DefaultDialer.Dial(u, nil)
	if err != nil {
		t.Fatalf("dial: %v", err)
	}
	defer conn.Close()

	if err := service.PresentQuestion("Geography", 10); err != nil {
		t.Fatalf("present: %v", err)
	}
	if _, err := service.AttemptClaim(context.Background(), "Alpha", "Alice", 0); err != nil {
		t.Fatalf("claim: %v", err)
	}

	msgType, payload := readFeed(conn, t)
	if msgType != "result" {
		t.Fatalf("expected result first, got %s", msgType)
	}
	if payload["team"] != "Alpha" || payload["correct"] != true {
		t.Fatalf("unexpected result payload %+v", payload)
	}

	msgType, _ = readFeed(conn, t)
	if msgType != "scoreboard" {
		t.Fatalf("expected scoreboard after result, got %s", msgType)
	}
}

func readFeed(conn *websocket.Conn, t *testing.T) (string, map[string]any) {
	t.Helper()
	var msg struct {
		Type    string `json:"type"`
		Payload any    `json:"payload"`
	}
	_ = conn.SetReadDeadline(time.Now().Add(5 * time.Second))
	if err := conn.ReadJSON(&msg); err != nil {
		t.Fatalf("read json: %v", err)
	}
	payload, _ := msg.Payload.(map[string]any)
	return msg.Type, payload
}
