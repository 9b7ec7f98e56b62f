// Package websocket is the client-facing transport for Bingo Online.
//
// The websocket package implements:
//   - One persistent connection per player or admin
//   - JSON commands inbound, JSON events outbound
//   - Connection registration and lifecycle via a central Hub
//   - Event fan-out to one connection, one room, or everyone
//   - Admin command gating on the connection's declared role
//
// The Hub implements service.Notifier, so the session authority emits
// events without knowing about websockets.
//
// Message Protocol:
//
// Commands are JSON objects with a type tag:
//
//	{"type": "JoinGame", "room": "main", "playerName": "Alice"}
//	{"type": "CallNumber"}
//
// Events wrap a type tag and payload:
//
//	{"event": "NumberCalled", "data": 42}
//
// Roles:
//
// A connection declares its role at upgrade time (?role=admin). Admin-only
// commands from other connections are rejected with an Error event; the
// coordinator performs no further authentication.
//
// Usage:
//
//	hub := websocket.NewHub("main", nil)
//	hub.SetService(svc)
//	go hub.Run()
//	http.HandleFunc("/ws", hub.ServeWS)
//
// Connection Lifecycle:
//
// 1. Client connects, the hub mints a connection ID
// 2. The service syncs called numbers and the user list to the client
// 3. Client sends commands, receives events
// 4. Disconnection removes the participant and rebroadcasts the user list
//
// Concurrency:
//
// Fan-out holds the hub's read lock while enqueueing, and each client's
// send channel is closed only under the write lock, so sends never race a
// disconnect. A full send buffer drops that message for that client instead
// of blocking the sender.
package websocket
