// Package service is the session authority for Bingo Online.
//
// The service package implements:
//   - The BingoService interface: one method per inbound command (join,
//     disconnect, relays, wins, number calling, round resets, ticket
//     dealing, queries, connection sync)
//   - The Event union: every outbound event type with its typed payload
//   - The Notifier interface: the transport seam for unicast, room, and
//     broadcast fan-out
//   - The TicketGenerator interface: the seam over ticket generation
//
// State and Ordering:
//
// One coarse mutex serializes all mutation of the registry and the number
// caller. Events produced by a call are queued while the lock is held and
// emitted through the Notifier after it is released, so the events of one
// command are delivered in order and never interleave with another
// command's state changes.
//
// Usage:
//
//	svc := service.NewBingoService(reg, numberCaller, gen, notifier, service.Options{})
//	svc.JoinGame(ctx, connID, "room", "Alice")
//	n, err := svc.CallNumber(ctx, adminConnID)
//
// The Notifier is typically the websocket hub; tests substitute a recording
// implementation.
package service
