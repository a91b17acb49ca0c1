package gateway

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"time"

	"github.com/gorilla/websocket"

	"galbubble/pkg/game/bubble"
)

const (
	pongWait   = 60 * time.Second
	pingPeriod = 30 * time.Second
	writeWait  = 10 * time.Second
)

var upgrader = websocket.Upgrader{
	ReadBufferSize:  4096,
	WriteBufferSize: 4096,
	CheckOrigin: func(r *http.Request) bool {
		return true
	},
}

type frame struct {
	kind int
	data []byte
}

// Connection is one WebSocket client. Each text frame carries a JSON request;
// the reply is a binary PNG frame or a text frame {"error": "..."}.
type Connection struct {
	ID      string
	conn    *websocket.Conn
	send    chan frame
	done    chan struct{}
	gateway *Gateway
}

// HandleWebSocket upgrades the request and starts the connection pumps.
func (g *Gateway) HandleWebSocket(w http.ResponseWriter, r *http.Request) {
	conn, err := upgrader.Upgrade(w, r, nil)
	if err != nil {
		g.logger.Printf("[Gateway] Upgrade error: %v", err)
		return
	}

	g.mu.Lock()
	g.nextConnID++
	c := &Connection{
		ID:      fmt.Sprintf("conn_%d", g.nextConnID),
		conn:    conn,
		send:    make(chan frame, 16),
		done:    make(chan struct{}),
		gateway: g,
	}
	g.connections[c.ID] = c
	total := len(g.connections)
	g.mu.Unlock()

	g.logger.Printf("[Gateway] Client connected: %s, total: %d", c.ID, total)

	go c.readPump()
	go c.writePump()
}

func (c *Connection) readPump() {
	defer func() {
		c.gateway.removeConnection(c)
		close(c.send)
	}()

	c.conn.SetReadLimit(c.gateway.maxBytes)
	c.conn.SetReadDeadline(time.Now().Add(pongWait))
	c.conn.SetPongHandler(func(string) error {
		c.conn.SetReadDeadline(time.Now().Add(pongWait))
		return nil
	})

	for {
		messageType, message, err := c.conn.ReadMessage()
		if err != nil {
			if websocket.IsUnexpectedCloseError(err, websocket.CloseGoingAway, websocket.CloseNormalClosure, websocket.CloseAbnormalClosure) {
				c.gateway.logger.Printf("[Gateway] Read error: %v", err)
			}
			return
		}
		if messageType != websocket.TextMessage {
			c.sendError("expected a JSON text frame")
			continue
		}
		c.handleMessage(message)
	}
}

func (c *Connection) handleMessage(data []byte) {
	var req bubble.Request
	if err := json.Unmarshal(data, &req); err != nil {
		c.sendError("invalid request: " + err.Error())
		return
	}

	png, err := c.gateway.Render(context.Background(), req)
	if err != nil {
		c.gateway.logger.Printf("[Gateway] %s render failed: %v", c.ID, err)
		c.sendError(err.Error())
		return
	}
	c.enqueue(frame{kind: websocket.BinaryMessage, data: png})
}

func (c *Connection) sendError(msg string) {
	data, _ := json.Marshal(map[string]string{"error": msg})
	c.enqueue(frame{kind: websocket.TextMessage, data: data})
}

// enqueue hands f to the writer unless the writer has already gone away.
func (c *Connection) enqueue(f frame) {
	select {
	case c.send <- f:
	case <-c.done:
	}
}

func (c *Connection) writePump() {
	ticker := time.NewTicker(pingPeriod)
	defer func() {
		ticker.Stop()
		close(c.done)
		c.conn.Close()
	}()

	for {
		select {
		case f, ok := <-c.send:
			c.conn.SetWriteDeadline(time.Now().Add(writeWait))
			if !ok {
				c.conn.WriteMessage(websocket.CloseMessage, []byte{})
				return
			}
			if err := c.conn.WriteMessage(f.kind, f.data); err != nil {
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

func (g *Gateway) removeConnection(c *Connection) {
	g.mu.Lock()
	defer g.mu.Unlock()
	delete(g.connections, c.ID)
	g.logger.Printf("[Gateway] Client disconnected: %s, total: %d", c.ID, len(g.connections))
}
