package websocket

import (
	"context"
	"encoding/json"
	"log"
	"net/http"
	"sync"

	"github.com/google/uuid"
	"github.com/gorilla/websocket"

	"github.com/masterbraila/BingoOnline/game/service"
)

// RoleAdmin marks a connection permitted to invoke admin commands. The role
// is declared by the client at upgrade time (?role=admin); the coordinator
// performs no further authentication.
const RoleAdmin = "admin"

// Hub maintains the set of active connections and routes outbound events to
// one connection, one room, or everyone.
type Hub struct {
	service     service.BingoService
	defaultRoom string

	mu      sync.RWMutex
	clients map[string]*Client // by connection ID

	register   chan *Client
	unregister chan *Client

	upgrader websocket.Upgrader
}

// NewHub creates a websocket hub. allowedOrigins restricts upgrades; empty
// allows any origin. The service is attached separately because service and
// hub reference each other.
func NewHub(defaultRoom string, allowedOrigins []string) *Hub {
	return &Hub{
		defaultRoom: defaultRoom,
		clients:     make(map[string]*Client),
		register:    make(chan *Client),
		unregister:  make(chan *Client),
		upgrader: websocket.Upgrader{
			ReadBufferSize:  1024,
			WriteBufferSize: 1024,
			CheckOrigin:     originChecker(allowedOrigins),
		},
	}
}

// SetService attaches the session authority. Must be called before Run.
func (h *Hub) SetService(svc service.BingoService) {
	h.service = svc
}

func originChecker(allowed []string) func(r *http.Request) bool {
	if len(allowed) == 0 {
		return func(r *http.Request) bool { return true }
	}
	set := make(map[string]bool, len(allowed))
	for _, o := range allowed {
		set[o] = true
	}
	return func(r *http.Request) bool {
		return set[r.Header.Get("Origin")]
	}
}

// Run starts the hub's registration loop.
func (h *Hub) Run() {
	for {
		select {
		case client := <-h.register:
			h.addClient(client)
			h.service.SyncConnection(context.Background(), client.id)

		case client := <-h.unregister:
			if h.removeClient(client) {
				h.service.DisconnectPlayer(context.Background(), client.id)
			}
		}
	}
}

func (h *Hub) addClient(client *Client) {
	h.mu.Lock()
	h.clients[client.id] = client
	total := len(h.clients)
	h.mu.Unlock()

	log.Printf("Connection %s registered (role=%s, total: %d)", client.id, client.role, total)
}

// removeClient reports whether the client was still registered, so the
// unregister path runs the disconnect logic exactly once.
func (h *Hub) removeClient(client *Client) bool {
	h.mu.Lock()
	defer h.mu.Unlock()

	if _, ok := h.clients[client.id]; !ok {
		return false
	}
	delete(h.clients, client.id)
	close(client.send)

	log.Printf("Connection %s unregistered (remaining: %d)", client.id, len(h.clients))
	return true
}

// setRoom records a client's room membership for room-scoped fan-out.
func (h *Hub) setRoom(client *Client, room string) {
	h.mu.Lock()
	client.room = room
	h.mu.Unlock()
}

// ServeWS upgrades an HTTP request to a websocket connection, mints the
// connection identity, and starts the read/write pumps.
func (h *Hub) ServeWS(w http.ResponseWriter, r *http.Request) {
	conn, err := h.upgrader.Upgrade(w, r, nil)
	if err != nil {
		log.Printf("WebSocket upgrade failed: %v", err)
		return
	}

	client := &Client{
		hub:  h,
		conn: conn,
		send: make(chan []byte, 256),
		id:   uuid.NewString(),
		room: h.defaultRoom,
		role: r.URL.Query().Get("role"),
	}

	go client.writePump()
	go client.readPump()

	h.register <- client
}

// ToClient sends an event to a single connection. Unknown or departed
// connections are dropped silently.
func (h *Hub) ToClient(connID string, event service.Event) {
	data, err := json.Marshal(event)
	if err != nil {
		log.Printf("Failed to marshal %s event: %v", event.Type, err)
		return
	}

	// Enqueue under the read lock: removeClient closes the send channel
	// under the write lock, so a stale reference must never be used after
	// the lock is released.
	h.mu.RLock()
	defer h.mu.RUnlock()
	if client, ok := h.clients[connID]; ok {
		client.enqueue(data)
	}
}

// ToRoom sends an event to every connection in a room.
func (h *Hub) ToRoom(room string, event service.Event) {
	data, err := json.Marshal(event)
	if err != nil {
		log.Printf("Failed to marshal %s event: %v", event.Type, err)
		return
	}

	h.mu.RLock()
	defer h.mu.RUnlock()
	for _, client := range h.clients {
		if client.room == room {
			client.enqueue(data)
		}
	}
}

// ToAll sends an event to every connection.
func (h *Hub) ToAll(event service.Event) {
	data, err := json.Marshal(event)
	if err != nil {
		log.Printf("Failed to marshal %s event: %v", event.Type, err)
		return
	}

	h.mu.RLock()
	defer h.mu.RUnlock()
	for _, client := range h.clients {
		client.enqueue(data)
	}
}

// ClientCount returns the number of registered connections.
func (h *Hub) ClientCount() int {
	h.mu.RLock()
	defer h.mu.RUnlock()
	return len(h.clients)
}

// handleCommand routes one inbound command. Admin commands are gated on the
// connection's declared role here; the service trusts its callers.
func (h *Hub) handleCommand(c *Client, cmd Command) {
	ctx := context.Background()

	switch cmd.Type {
	case "JoinGame":
		room := cmd.Room
		if room == "" {
			room = h.defaultRoom
		}
		h.setRoom(c, room)
		h.service.JoinGame(ctx, c.id, room, cmd.PlayerName)

	case "SendNumber":
		h.service.SendNumber(ctx, cmd.Room, cmd.PlayerName, cmd.Number)

	case "CallBingo":
		h.service.CallBingo(ctx, cmd.Room, cmd.PlayerName)

	case "LineWin":
		h.service.LineWin(ctx, cmd.Grid, cmd.RowInGrid, cmd.PlayerName)

	case "FullHouseWin":
		h.service.FullHouseWin(ctx, cmd.Grid, cmd.PlayerName)

	case "DisconnectPlayer":
		h.service.DisconnectPlayer(ctx, c.id)

	case "CallNumber":
		if !h.requireAdmin(c, cmd.Type) {
			return
		}
		// Exhaustion is reported to the caller by the service; nothing else
		// to do here.
		_, _ = h.service.CallNumber(ctx, c.id)

	case "NewGame":
		if !h.requireAdmin(c, cmd.Type) {
			return
		}
		h.service.NewGame(ctx)

	case "ResetCalledNumbers":
		if !h.requireAdmin(c, cmd.Type) {
			return
		}
		h.service.ResetCalledNumbers(ctx)

	case "GenerateAndSendTicket":
		if !h.requireAdmin(c, cmd.Type) {
			return
		}
		_ = h.service.GenerateAndSendTicket(ctx, c.id, cmd.ConnectionID)

	case "GetUserTicket":
		if !h.requireAdmin(c, cmd.Type) {
			return
		}
		t, _ := h.service.GetUserTicket(ctx, cmd.ConnectionID)
		h.ToClient(c.id, service.Event{
			Type: service.EventUserTicket,
			Data: service.UserTicket{ConnectionID: cmd.ConnectionID, Ticket: t},
		})

	case "GetConnectedUsers":
		if !h.requireAdmin(c, cmd.Type) {
			return
		}
		users := h.service.GetConnectedUsers(ctx)
		h.ToClient(c.id, service.Event{Type: service.EventUserListUpdated, Data: users})

	default:
		h.ToClient(c.id, errorEvent("unknown command: "+cmd.Type))
	}
}

func (h *Hub) requireAdmin(c *Client, cmdType string) bool {
	if c.role == RoleAdmin {
		return true
	}
	log.Printf("Connection %s attempted admin command %s without admin role", c.id, cmdType)
	h.ToClient(c.id, errorEvent(cmdType+" requires the admin role"))
	return false
}

func errorEvent(msg string) service.Event {
	return service.Event{Type: service.EventError, Data: msg}
}
