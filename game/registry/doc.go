// Package registry tracks connected participants, their room membership, and
// the most recent ticket issued to each of them.
//
// The registry package implements:
//   - Join as an upsert: a rejoin updates name and room but keeps the
//     original join time and any issued ticket
//   - Leave as an idempotent removal that drops the ticket too
//   - Ordered snapshots (join time, then connection ID) for user lists
//   - SetTicket refusing participants that are not present
//
// All state is in-memory and dies with the process.
//
// Usage:
//
//	reg := registry.NewRegistry()
//	reg.Join("conn-1", "room", "Alice")
//	reg.SetTicket("conn-1", t)
//	for _, p := range reg.List() {
//		fmt.Println(p.PlayerName)
//	}
//
// Concurrency:
//
// Registry is safe for concurrent use; every method takes the internal
// mutex.
package registry
