package service

import (
	"context"

	"github.com/masterbraila/BingoOnline/game/ticket"
)

// TicketGenerator produces tickets for GenerateAndSendTicket. It is
// satisfied by *ticket.Generator.
type TicketGenerator interface {
	Generate() (*ticket.Ticket, error)
}

// BingoService is the session authority: every inbound command, from any
// transport, maps to exactly one method here. Implementations serialize all
// state mutation and emit the resulting events through the Notifier.
//
// Role enforcement is a transport concern. Admin-only methods trust that the
// transport only routed them for connections permitted to invoke them.
type BingoService interface {
	// Player commands
	JoinGame(ctx context.Context, connID, room, playerName string)
	DisconnectPlayer(ctx context.Context, connID string)
	SendNumber(ctx context.Context, room, playerName string, number int)
	CallBingo(ctx context.Context, room, playerName string)
	LineWin(ctx context.Context, grid, rowInGrid int, playerName string)
	FullHouseWin(ctx context.Context, grid int, playerName string)

	// Admin commands. callerID identifies the connection that issued the
	// command for caller-only notifications; it may be empty for transports
	// with no persistent connection (REST), in which case those unicasts are
	// skipped and the error return carries the outcome instead.
	CallNumber(ctx context.Context, callerID string) (int, error)
	NewGame(ctx context.Context)
	ResetCalledNumbers(ctx context.Context)
	GenerateAndSendTicket(ctx context.Context, callerID, targetID string) error

	// Admin queries
	GetUserTicket(ctx context.Context, connID string) (*ticket.Ticket, bool)
	GetConnectedUsers(ctx context.Context) []UserInfo
	CalledNumbers(ctx context.Context) []int

	// SyncConnection is invoked by the transport when a connection is
	// registered: the new client receives the current called-number state and
	// everyone receives a refreshed user list.
	SyncConnection(ctx context.Context, connID string)
}
