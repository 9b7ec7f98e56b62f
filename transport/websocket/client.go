package websocket

import (
	"encoding/json"
	"log"
	"time"

	"github.com/gorilla/websocket"
)

const (
	// Time allowed to write a message to the peer.
	writeWait = 10 * time.Second

	// Time allowed to read the next pong message from the peer.
	pongWait = 60 * time.Second

	// Send pings to peer with this period. Must be less than pongWait.
	pingPeriod = (pongWait * 9) / 10

	// Maximum message size allowed from peer.
	maxMessageSize = 512
)

// Command is the inbound wire envelope. Type selects the command; the other
// fields carry its arguments.
type Command struct {
	Type         string `json:"type"`
	Room         string `json:"room,omitempty"`
	PlayerName   string `json:"playerName,omitempty"`
	Number       int    `json:"number,omitempty"`
	ConnectionID string `json:"connectionId,omitempty"`
	Grid         int    `json:"grid,omitempty"`
	RowInGrid    int    `json:"rowInGrid,omitempty"`
}

// Client is one websocket connection. room is guarded by the hub's mutex.
type Client struct {
	hub  *Hub
	conn *websocket.Conn
	send chan []byte
	id   string
	room string
	role string
}

// ID returns the connection identity minted at upgrade time.
func (c *Client) ID() string {
	return c.id
}

// enqueue puts an outbound message on the client's send queue. A full queue
// drops the message rather than blocking the sender; a client that slow is
// about to fail its ping deadline anyway.
func (c *Client) enqueue(data []byte) {
	select {
	case c.send <- data:
	default:
		log.Printf("Connection %s send queue full, dropping message", c.id)
	}
}

// readPump pumps commands from the websocket connection into the hub.
func (c *Client) readPump() {
	defer func() {
		c.hub.unregister <- c
		c.conn.Close()
	}()

	c.conn.SetReadLimit(maxMessageSize)
	c.conn.SetReadDeadline(time.Now().Add(pongWait))
	c.conn.SetPongHandler(func(string) error {
		c.conn.SetReadDeadline(time.Now().Add(pongWait))
		return nil
	})

	for {
		_, data, err := c.conn.ReadMessage()
		if err != nil {
			if websocket.IsUnexpectedCloseError(err, websocket.CloseGoingAway, websocket.CloseNormalClosure, websocket.CloseAbnormalClosure) {
				log.Printf("WebSocket error on %s: %v", c.id, err)
			}
			break
		}

		var cmd Command
		if err := json.Unmarshal(data, &cmd); err != nil {
			c.hub.ToClient(c.id, errorEvent("malformed command: "+err.Error()))
			continue
		}
		c.hub.handleCommand(c, cmd)
	}
}

// writePump pumps messages from the send queue to the websocket connection,
// one frame per event, and keeps the connection alive with pings.
func (c *Client) writePump() {
	ticker := time.NewTicker(pingPeriod)
	defer func() {
		ticker.Stop()
		c.conn.Close()
	}()

	for {
		select {
		case message, ok := <-c.send:
			c.conn.SetWriteDeadline(time.Now().Add(writeWait))
			if !ok {
				// The hub closed the channel.
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
