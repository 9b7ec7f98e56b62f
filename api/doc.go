// Package api exposes the coordinator's admin and query surface over REST.
//
// The api package implements:
//   - User and ticket queries
//   - Number calling and round control
//   - Win announcements
//   - The WebSocket upgrade route and a health check
//
// Every handler goes through the same BingoService as the websocket
// commands, so side-effect events still reach connected clients.
//
// Endpoints:
//
// Users and Tickets:
//   - GET  /api/users - connected users
//   - GET  /api/users/{id}/ticket - a user's current ticket (null if none)
//   - POST /api/users/{id}/ticket - generate and send a ticket
//
// Numbers and Rounds:
//   - GET  /api/numbers - called numbers and remaining count
//   - POST /api/numbers/call - call the next number
//   - POST /api/numbers/reset - reset the called set
//   - POST /api/game/new - start a new game
//
// Wins:
//   - POST /api/wins/line - announce a line win
//   - POST /api/wins/fullhouse - announce a full house win
//
// Other:
//   - GET /api/health - health check
//   - GET /ws - WebSocket upgrade
//
// Request/Response Format:
//
// All endpoints accept and return JSON. Errors are returned as JSON with an
// appropriate HTTP status code:
//
//	{
//	  "error": "no numbers left to call"
//	}
//
// Usage:
//
//	server := api.NewServer(svc, hub)
//	http.ListenAndServe(addr, server)
package api
