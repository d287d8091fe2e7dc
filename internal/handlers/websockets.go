package handlers

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/gorilla/websocket"
)

const (
	writeWait  = 10 * time.Second
	pongWait   = 60 * time.Second
	pingPeriod = (pongWait * 9) / 10
	maxMsgSize = 1 << 12 // 4 KB

	msgSnapshot = "snapshot"
	msgLaunched = "launched"
)

type wsEnvelope struct {
	Type  string      `json:"type"`
	Data  interface{} `json:"data,omitempty"`
	Error string      `json:"error,omitempty"`
}

type launchedPayload struct {
	Target string `json:"target"`
}

var upgrader = websocket.Upgrader{
	CheckOrigin: func(r *http.Request) bool { return true },
}

// wsConnect streams countdown snapshots until the client leaves or the
// engine stops. The first snapshot with isOver is followed by one
// "launched" message.
func (h *Handler) wsConnect(c *gin.Context) {
	conn, err := upgrader.Upgrade(c.Writer, c.Request, nil)
	if err != nil {
		h.log.Errorw("ws_upgrade_failed", "err", err)
		return
	}
	defer func() { _ = conn.Close() }()

	conn.SetReadLimit(maxMsgSize)
	_ = conn.SetReadDeadline(time.Now().Add(pongWait))
	conn.SetPongHandler(func(string) error {
		return conn.SetReadDeadline(time.Now().Add(pongWait))
	})

	done := make(chan struct{})
	go h.startReader(conn, done)

	sub := h.services.Countdown.Subscribe(h.streamBuffer)
	defer h.services.Countdown.Unsubscribe(sub)

	ping := time.NewTicker(pingPeriod)
	defer ping.Stop()

	launched := false
	for {
		select {
		case <-done:
			return
		case <-c.Request.Context().Done():
			return
		case <-ping.C:
			_ = conn.SetWriteDeadline(time.Now().Add(writeWait))
			if err := conn.WriteMessage(websocket.PingMessage, nil); err != nil {
				h.log.Infow("ws_ping_failed", "err", err)
				return
			}
		case snap, ok := <-sub:
			if !ok {
				h.closeStream(conn, "countdown stopped")
				return
			}
			if err := h.writeEnvelope(conn, wsEnvelope{Type: msgSnapshot, Data: snap}); err != nil {
				h.log.Infow("ws_write_failed", "err", err)
				return
			}
			if snap.IsOver && !launched {
				launched = true
				if err := h.sendLaunched(conn); err != nil {
					h.log.Infow("ws_write_failed", "err", err)
					return
				}
			}
		}
	}
}

func (h *Handler) sendLaunched(conn *websocket.Conn) error {
	target := h.services.Countdown.Target().Format(time.RFC3339)
	return h.writeEnvelope(conn, wsEnvelope{Type: msgLaunched, Data: launchedPayload{Target: target}})
}

func (h *Handler) writeEnvelope(conn *websocket.Conn, env wsEnvelope) error {
	_ = conn.SetWriteDeadline(time.Now().Add(writeWait))
	return conn.WriteJSON(env)
}

func (h *Handler) closeStream(conn *websocket.Conn, reason string) {
	msg := websocket.FormatCloseMessage(websocket.CloseGoingAway, reason)
	_ = conn.WriteControl(websocket.CloseMessage, msg, time.Now().Add(writeWait))
}

// startReader drains incoming frames so control frames are handled and a
// disconnect is noticed.
func (h *Handler) startReader(conn *websocket.Conn, done chan<- struct{}) {
	defer close(done)
	for {
		if _, _, err := conn.ReadMessage(); err != nil {
			h.log.Debugw("ws_read_closed", "err", err)
			return
		}
	}
}
