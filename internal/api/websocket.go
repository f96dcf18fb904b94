package api

import (
	"context"
	"encoding/json"
	"log/slog"
	"net/http"
	"sync"
	"time"

	"restaupilot/internal/assistant"

	"github.com/gin-gonic/gin"
	"github.com/gorilla/websocket"
)

const (
	writeWait  = 10 * time.Second
	pongWait   = 60 * time.Second
	pingPeriod = 30 * time.Second
	maxMessage = 8 * 1024
)

// WebSocket upgrader configuration
var upgrader = websocket.Upgrader{
	ReadBufferSize:  1024,
	WriteBufferSize: 1024,
	CheckOrigin: func(r *http.Request) bool {
		return true // tokens, not origins, gate the stream
	},
}

// chatConn maintains one assistant chat stream.
type chatConn struct {
	conn         *websocket.Conn
	send         chan []byte
	assistant    *assistant.Assistant
	restaurantID uint

	ctx    context.Context
	cancel context.CancelFunc
	once   sync.Once
}

// AssistantStream upgrades to a websocket carrying assistant messages.
func (a *DashboardAPI) AssistantStream(c *gin.Context) {
	conn, err := upgrader.Upgrade(c.Writer, c.Request, nil)
	if err != nil {
		slog.Warn("websocket upgrade failed", "error", err)
		return
	}

	ctx, cancel := context.WithCancel(context.Background())
	cc := &chatConn{
		conn:         conn,
		send:         make(chan []byte, 16),
		assistant:    a.Assistant,
		restaurantID: restaurantFrom(c).ID,
		ctx:          ctx,
		cancel:       cancel,
	}
	a.Monitor.Inc("assistant_streams")

	// Start the read and write pumps
	go cc.writePump()
	go cc.readPump()
}

func (c *chatConn) close() {
	c.once.Do(func() {
		c.cancel()
		c.conn.Close()
	})
}

// readPump answers messages in arrival order until the client goes away.
func (c *chatConn) readPump() {
	defer func() {
		close(c.send)
		c.close()
	}()

	c.conn.SetReadLimit(maxMessage)
	c.conn.SetReadDeadline(time.Now().Add(pongWait))
	c.conn.SetPongHandler(func(string) error {
		return c.conn.SetReadDeadline(time.Now().Add(pongWait))
	})

	for {
		_, message, err := c.conn.ReadMessage()
		if err != nil {
			if websocket.IsUnexpectedCloseError(err, websocket.CloseGoingAway, websocket.CloseAbnormalClosure) {
				slog.Warn("websocket read failed", "error", err)
			}
			return
		}
		if !c.handleMessage(message) {
			return
		}
	}
}

// handleMessage reports false once the connection is shutting down.
func (c *chatConn) handleMessage(message []byte) bool {
	var req messageRequest
	if err := json.Unmarshal(message, &req); err != nil {
		return c.enqueue(map[string]interface{}{"success": false, "error": "message must be JSON"})
	}

	reply, err := c.assistant.Handle(c.ctx, c.restaurantID, req.Message)
	if err != nil {
		if c.ctx.Err() != nil {
			return false
		}
		return c.enqueue(map[string]interface{}{"success": false, "error": err.Error()})
	}
	return c.enqueue(reply)
}

func (c *chatConn) enqueue(v interface{}) bool {
	data, err := json.Marshal(v)
	if err != nil {
		slog.Error("marshal websocket reply", "error", err)
		return true
	}
	select {
	case c.send <- data:
		return true
	case <-c.ctx.Done():
		return false
	}
}

// writePump pumps replies to the connection and keeps it alive with pings.
func (c *chatConn) writePump() {
	ticker := time.NewTicker(pingPeriod)
	defer func() {
		ticker.Stop()
		c.close()
	}()

	for {
		select {
		case message, ok := <-c.send:
			c.conn.SetWriteDeadline(time.Now().Add(writeWait))
			if !ok {
				c.conn.WriteMessage(websocket.CloseMessage, []byte{})
				return
			}
			if err := c.conn.WriteMessage(websocket.TextMessage, message); err != nil {
				return
			}
		case <-ticker.C:
			c.conn.SetWriteDeadline(time.Now().Add(writeWait))
			if err := c.conn.WriteMessage(websocket.PingMessage, nil); err != nil {
				return
			}
		}
	}
}
