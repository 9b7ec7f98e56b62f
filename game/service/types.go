package service

import "github.com/masterbraila/BingoOnline/game/ticket"

// EventType names one outbound event. The set is closed: every event the
// coordinator can emit is enumerated here.
type EventType string

const (
	EventPlayerJoined           EventType = "PlayerJoined"
	EventUserListUpdated        EventType = "UserListUpdated"
	EventNumberCalled           EventType = "NumberCalled"
	EventNoNumbersLeft          EventType = "NoNumbersLeft"
	EventNewGameStarted         EventType = "NewGameStarted"
	EventCalledNumbersReset     EventType = "CalledNumbersReset"
	EventCalledNumbersSync      EventType = "CalledNumbersSync"
	EventReceiveTicket          EventType = "ReceiveTicket"
	EventTicketGeneratedAndSent EventType = "TicketGeneratedAndSent"
	EventTicketGenerationFailed EventType = "TicketGenerationFailed"
	EventReceiveNumber          EventType = "ReceiveNumber"
	EventBingoCalled            EventType = "BingoCalled"
	EventLineWinAnnounced       EventType = "LineWinAnnounced"
	EventFullHouseWinAnnounced  EventType = "FullHouseWinAnnounced"

	// EventUserTicket answers an admin's GetUserTicket query with a
	// UserTicket payload.
	EventUserTicket EventType = "UserTicket"

	// EventError is transport-local: the hub uses it to report a rejected or
	// malformed command back to the offending connection.
	EventError EventType = "Error"
)

// Event is one outbound message. Data carries the typed payload for the
// event kind, or nil for signal-only events.
type Event struct {
	Type EventType   `json:"event"`
	Data interface{} `json:"data,omitempty"`
}

// UserInfo is the wire shape of one participant in user-list payloads.
type UserInfo struct {
	ConnectionID string `json:"connectionId"`
	PlayerName   string `json:"playerName"`
}

// ReceiveNumberPayload carries a player-sent number to its room.
type ReceiveNumberPayload struct {
	PlayerName string `json:"playerName"`
	Number     int    `json:"number"`
}

// LineWinPayload announces a claimed line win. Grid identifies which of the
// 5 sub-tickets (0-4), RowInGrid the row within it (0-2).
type LineWinPayload struct {
	Grid       int    `json:"grid"`
	RowInGrid  int    `json:"rowInGrid"`
	PlayerName string `json:"playerName"`
}

// FullHouseWinPayload announces a claimed full-house win on one sub-ticket.
type FullHouseWinPayload struct {
	Grid       int    `json:"grid"`
	PlayerName string `json:"playerName"`
}

// UserTicket pairs a connection with its stored ticket for admin queries.
// Ticket is nil when none has been issued.
type UserTicket struct {
	ConnectionID string         `json:"connectionId"`
	Ticket       *ticket.Ticket `json:"ticket"`
}

// Notifier is the outbound half of the transport: the service pushes events
// through it to one connection, one room, or everyone. Implementations must
// preserve the order of events pushed from a single command and must drop
// unicasts to departed connections silently.
type Notifier interface {
	ToClient(connID string, event Event)
	ToRoom(room string, event Event)
	ToAll(event Event)
}
