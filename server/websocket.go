package server

import (
	"net/http"
	"net/url"
	"sync"

	"github.com/gorilla/websocket"
	"github.com/inkdash/inkdash/commands"
	"github.com/inkdash/inkdash/utils"
)

type wsConnection struct {
	conn    *websocket.Conn
	writeMu sync.Mutex
}

func newUpgrader(enableCORS bool) *websocket.Upgrader {
	upgrader := websocket.Upgrader{
		ReadBufferSize:  1024,
		WriteBufferSize: 1024,
	}

	if enableCORS {
		upgrader.CheckOrigin = func(r *http.Request) bool {
			return true
		}
	} else {
		upgrader.CheckOrigin = isSameOrigin
	}

	return &upgrader
}

func isSameOrigin(r *http.Request) bool {
	origin := r.Header.Get("Origin")
	if origin == "" {
		return true
	}

	originURL, err := url.Parse(origin)
	if err != nil {
		return false
	}

	return originURL.Host == r.Host
}

// handleEvents streams dashboard events to the client until it
// disconnects. Each event carries a unique id so clients can dedupe
// after reconnects.
func (s *Server) handleEvents(w http.ResponseWriter, r *http.Request) {
	dash := commands.GetDashboard()
	if dash == nil {
		http.Error(w, "dashboard is not running", http.StatusServiceUnavailable)
		return
	}

	conn, err := newUpgrader(s.enableCORS).Upgrade(w, r, nil)
	if err != nil {
		utils.Warn("WebSocket upgrade failed: %v", err)
		return
	}
	defer conn.Close()

	wsConn := &wsConnection{conn: conn}

	subID, events := dash.Subscribe()
	defer dash.Unsubscribe(subID)
	utils.Verbose("event subscriber %s connected from %s", subID, r.RemoteAddr)

	// drain the reader so close frames are processed
	done := make(chan struct{})
	go func() {
		defer close(done)
		for {
			if _, _, err := conn.ReadMessage(); err != nil {
				return
			}
		}
	}()

	for {
		select {
		case <-done:
			utils.Verbose("event subscriber %s disconnected", subID)
			return
		case ev, ok := <-events:
			if !ok {
				return
			}
			if err := wsConn.sendJSON(ev); err != nil {
				utils.Verbose("event subscriber %s write failed: %v", subID, err)
				return
			}
		}
	}
}

func (wsc *wsConnection) sendJSON(v interface{}) error {
	wsc.writeMu.Lock()
	defer wsc.writeMu.Unlock()
	return wsc.conn.WriteJSON(v)
}
