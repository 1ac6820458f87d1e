package http

import (
	"log"
	"net/http"

	"buzzer-board-service/internal/app"
	"github.com/gorilla/websocket"
)

// HostFeed streams resolved-claim results and scoreboard updates to the host
// display over a websocket. Players never connect here; they poll.
type HostFeed struct {
	service  *app.GameService
	upgrader websocket.Upgrader
}

func NewHostFeed(service *app.GameService) *HostFeed {
	return &HostFeed{
		service: service,
		upgrader: websocket.Upgrader{
			ReadBufferSize:  1024,
			WriteBufferSize: 1024,
			CheckOrigin:     func(r *http.Request) bool { return true },
		},
	}
}

type feedMessage struct {
	Type    string `json:"type"`
	Payload any    `json:"payload"`
}

// ServeWS upgrades the connection and forwards every resolved claim,
// each followed by the scoreboard it produced.
func (f *HostFeed) ServeWS(w http.ResponseWriter, r *http.Request) {
	updates, cancel, err := f.service.Subscribe()
	if err != nil {
		http.Error(w, err.Error(), rejectionStatus(err))
		return
	}

	conn, err := f.upgrader.Upgrade(w, r, nil)
	if err != nil {
		cancel()
		log.Printf("host feed upgrade failed: %v", err)
		return
	}
	defer conn.Close()
	defer cancel()

	// Reader exists only to observe the close handshake.
	closed := make(chan struct{})
	go func() {
		defer close(closed)
		for {
			if _, _, err := conn.ReadMessage(); err != nil {
				return
			}
		}
	}()

	for {
		select {
		case result, ok := <-updates:
			if !ok {
				return
			}
			if err := conn.WriteJSON(feedMessage{Type: "result", Payload: result}); err != nil {
				log.Printf("host feed write error: %v", err)
				return
			}
			if err := conn.WriteJSON(feedMessage{Type: "scoreboard", Payload: f.service.Leaderboard()}); err != nil {
				log.Printf("host feed write error: %v", err)
				return
			}
		case <-closed:
			return
		}
	}
}
