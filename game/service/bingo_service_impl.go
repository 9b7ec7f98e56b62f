package service

import (
	"context"
	"fmt"
	"log"
	"sync"

	"github.com/masterbraila/BingoOnline/game/caller"
	"github.com/masterbraila/BingoOnline/game/registry"
	"github.com/masterbraila/BingoOnline/game/ticket"
)

// DefaultRoom is used when a join command does not name a room.
const DefaultRoom = "default"

// Options tunes a BingoService.
type Options struct {
	// DefaultRoom overrides the room used when a join names none.
	DefaultRoom string
}

// bingoServiceImpl implements BingoService. One coarse mutex serializes all
// mutation of the registry and the caller; events are collected under the
// lock and emitted after it is released, so fan-out never blocks commands
// issued by other connections.
type bingoServiceImpl struct {
	mu          sync.Mutex
	registry    *registry.Registry
	caller      *caller.Caller
	generator   TicketGenerator
	notifier    Notifier
	defaultRoom string
}

// NewBingoService creates the session authority over the given state
// holders. The notifier is the transport's outbound side.
func NewBingoService(reg *registry.Registry, numberCaller *caller.Caller, gen TicketGenerator, notifier Notifier, opts Options) BingoService {
	room := opts.DefaultRoom
	if room == "" {
		room = DefaultRoom
	}
	return &bingoServiceImpl{
		registry:    reg,
		caller:      numberCaller,
		generator:   gen,
		notifier:    notifier,
		defaultRoom: room,
	}
}

// outbound is one event with its routing, queued under the lock and emitted
// after release in order.
type outbound struct {
	connID string // unicast target, or
	room   string // room target, or broadcast when both are empty
	event  Event
}

func (s *bingoServiceImpl) emit(events []outbound) {
	for _, o := range events {
		switch {
		case o.connID != "":
			s.notifier.ToClient(o.connID, o.event)
		case o.room != "":
			s.notifier.ToRoom(o.room, o.event)
		default:
			s.notifier.ToAll(o.event)
		}
	}
}

// userList must be called with s.mu held.
func (s *bingoServiceImpl) userList() []UserInfo {
	participants := s.registry.List()
	out := make([]UserInfo, 0, len(participants))
	for _, p := range participants {
		out = append(out, UserInfo{ConnectionID: p.ConnectionID, PlayerName: p.PlayerName})
	}
	return out
}

// JoinGame registers the participant and announces it: PlayerJoined to the
// room, a refreshed user list to everyone.
func (s *bingoServiceImpl) JoinGame(ctx context.Context, connID, room, playerName string) {
	if room == "" {
		room = s.defaultRoom
	}

	s.mu.Lock()
	s.registry.Join(connID, room, playerName)
	users := s.userList()
	s.mu.Unlock()

	log.Printf("Player %q joined room %q (conn %s, %d connected)", playerName, room, connID, len(users))

	s.emit([]outbound{
		{room: room, event: Event{Type: EventPlayerJoined, Data: playerName}},
		{event: Event{Type: EventUserListUpdated, Data: users}},
	})
}

// DisconnectPlayer removes the participant and its ticket and refreshes the
// user list for everyone. Unknown connections are a no-op apart from the
// list refresh.
func (s *bingoServiceImpl) DisconnectPlayer(ctx context.Context, connID string) {
	s.mu.Lock()
	s.registry.Leave(connID)
	users := s.userList()
	s.mu.Unlock()

	s.emit([]outbound{
		{event: Event{Type: EventUserListUpdated, Data: users}},
	})
}

// SendNumber relays a player-sent number to the player's room. No state
// changes.
func (s *bingoServiceImpl) SendNumber(ctx context.Context, room, playerName string, number int) {
	if room == "" {
		room = s.defaultRoom
	}
	s.emit([]outbound{
		{room: room, event: Event{Type: EventReceiveNumber, Data: ReceiveNumberPayload{PlayerName: playerName, Number: number}}},
	})
}

// CallBingo relays a bingo shout to the room. No state changes.
func (s *bingoServiceImpl) CallBingo(ctx context.Context, room, playerName string) {
	if room == "" {
		room = s.defaultRoom
	}
	s.emit([]outbound{
		{room: room, event: Event{Type: EventBingoCalled, Data: playerName}},
	})
}

// LineWin broadcasts a line-win announcement to all clients. Announcements
// are pure: no state is consulted or mutated.
func (s *bingoServiceImpl) LineWin(ctx context.Context, grid, rowInGrid int, playerName string) {
	s.emit([]outbound{
		{event: Event{Type: EventLineWinAnnounced, Data: LineWinPayload{Grid: grid, RowInGrid: rowInGrid, PlayerName: playerName}}},
	})
}

// FullHouseWin broadcasts a full-house announcement to all clients.
func (s *bingoServiceImpl) FullHouseWin(ctx context.Context, grid int, playerName string) {
	s.emit([]outbound{
		{event: Event{Type: EventFullHouseWinAnnounced, Data: FullHouseWinPayload{Grid: grid, PlayerName: playerName}}},
	})
}

// CallNumber draws the next number and broadcasts it. When the round is
// exhausted only the requesting admin is notified; the round stays exhausted
// until NewGame or ResetCalledNumbers.
func (s *bingoServiceImpl) CallNumber(ctx context.Context, callerID string) (int, error) {
	s.mu.Lock()
	n, err := s.caller.CallNext()
	s.mu.Unlock()

	if err != nil {
		if callerID != "" {
			s.emit([]outbound{
				{connID: callerID, event: Event{Type: EventNoNumbersLeft}},
			})
		}
		return 0, err
	}

	s.emit([]outbound{
		{event: Event{Type: EventNumberCalled, Data: n}},
	})
	return n, nil
}

// NewGame clears the called numbers and tells every client to discard its
// round-local state. Issued tickets are kept.
func (s *bingoServiceImpl) NewGame(ctx context.Context) {
	s.mu.Lock()
	s.caller.Reset()
	s.mu.Unlock()

	log.Printf("New game started")

	s.emit([]outbound{
		{event: Event{Type: EventNewGameStarted}},
	})
}

// ResetCalledNumbers clears the called numbers only; clients keep their
// tickets and any confirmation state.
func (s *bingoServiceImpl) ResetCalledNumbers(ctx context.Context) {
	s.mu.Lock()
	s.caller.Reset()
	s.mu.Unlock()

	s.emit([]outbound{
		{event: Event{Type: EventCalledNumbersReset}},
	})
}

// GenerateAndSendTicket generates a fresh ticket for the target connection,
// stores it, unicasts it to the target, and confirms to the requesting
// admin. On generation failure only the admin is notified and no state
// changes. A target that disconnected mid-command still gets the unicast
// attempt; the transport drops it.
func (s *bingoServiceImpl) GenerateAndSendTicket(ctx context.Context, callerID, targetID string) error {
	t, err := s.generator.Generate()
	if err != nil {
		log.Printf("Ticket generation failed for %s: %v", targetID, err)
		if callerID != "" {
			s.emit([]outbound{
				{connID: callerID, event: Event{Type: EventTicketGenerationFailed, Data: "Failed to generate a valid ticket after several attempts."}},
			})
		}
		return err
	}

	s.mu.Lock()
	s.registry.SetTicket(targetID, t)
	targetName := targetID
	if p, ok := s.registry.Get(targetID); ok {
		targetName = p.PlayerName
	}
	s.mu.Unlock()

	events := []outbound{
		{connID: targetID, event: Event{Type: EventReceiveTicket, Data: t}},
	}
	if callerID != "" {
		events = append(events, outbound{
			connID: callerID,
			event:  Event{Type: EventTicketGeneratedAndSent, Data: fmt.Sprintf("Ticket generated successfully for user %s", targetName)},
		})
	}
	s.emit(events)
	return nil
}

// GetUserTicket returns the stored ticket for a connection. Absence is a
// normal empty result.
func (s *bingoServiceImpl) GetUserTicket(ctx context.Context, connID string) (*ticket.Ticket, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.registry.GetTicket(connID)
}

// GetConnectedUsers returns a snapshot of current participants.
func (s *bingoServiceImpl) GetConnectedUsers(ctx context.Context) []UserInfo {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.userList()
}

// CalledNumbers returns the numbers called so far this round, ascending.
func (s *bingoServiceImpl) CalledNumbers(ctx context.Context) []int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.caller.Called()
}

// SyncConnection brings a newly registered connection up to date and
// refreshes the user list for everyone.
func (s *bingoServiceImpl) SyncConnection(ctx context.Context, connID string) {
	s.mu.Lock()
	called := s.caller.Called()
	users := s.userList()
	s.mu.Unlock()

	s.emit([]outbound{
		{connID: connID, event: Event{Type: EventCalledNumbersSync, Data: called}},
		{event: Event{Type: EventUserListUpdated, Data: users}},
	})
}
