package handler

import (
	"log/slog"
	"net/http"
	"slices"
	"time"

	"github.com/gorilla/websocket"
)

const (
	eventsWriteWait  = 10 * time.Second
	eventsPongWait   = 60 * time.Second
	eventsPingPeriod = eventsPongWait * 9 / 10
)

// ChangeEvent is one message on the /events stream: the storage key that
// changed. Clients refetch whatever view depends on it.
type ChangeEvent struct {
	Key string `json:"key"`
}

func (s *Server) upgrader() websocket.Upgrader {
	return websocket.Upgrader{
		CheckOrigin: func(r *http.Request) bool {
			origin := r.Header.Get("Origin")
			if origin == "" || len(s.allowedOrigins) == 0 {
				return true
			}
			return slices.Contains(s.allowedOrigins, origin)
		},
	}
}

// Events handles GET /events. The connection is upgraded to a websocket and
// receives a ChangeEvent for every store write until the client disconnects.
// Inbound messages are ignored.
func (s *Server) Events(w http.ResponseWriter, r *http.Request) {
	up := s.upgrader()
	conn, err := up.Upgrade(w, r, nil)
	if err != nil {
		// Upgrade has already written the error response.
		return
	}
	defer conn.Close()

	sub := s.svc.Changes.Subscribe()
	defer s.svc.Changes.Unsubscribe(sub)

	// The read loop only drains control frames and notices disconnects.
	closed := make(chan struct{})
	conn.SetReadLimit(512)
	//nolint:errcheck
	conn.SetReadDeadline(time.Now().Add(eventsPongWait))
	conn.SetPongHandler(func(string) error {
		return conn.SetReadDeadline(time.Now().Add(eventsPongWait))
	})
	go func() {
		defer close(closed)
		for {
			if _, _, err := conn.ReadMessage(); err != nil {
				return
			}
		}
	}()

	ping := time.NewTicker(eventsPingPeriod)
	defer ping.Stop()
	for {
		select {
		case <-closed:
			return
		case <-r.Context().Done():
			return
		case c, ok := <-sub.C:
			if !ok {
				return
			}
			//nolint:errcheck
			conn.SetWriteDeadline(time.Now().Add(eventsWriteWait))
			if err := conn.WriteJSON(ChangeEvent{Key: c.Key}); err != nil {
				slog.DebugContext(r.Context(), "events client write failed", "error", err)
				return
			}
		case <-ping.C:
			//nolint:errcheck
			conn.SetWriteDeadline(time.Now().Add(eventsWriteWait))
			if err := conn.WriteMessage(websocket.PingMessage, nil); err != nil {
				return
			}
		}
	}
}
