// Package caller tracks which bingo numbers have been drawn in the current
// round and draws fresh ones uniformly at random.
//
// The caller package implements:
//   - Uniform draws over the uncalled remainder of 1-90
//   - ErrNoNumbersLeft once all 90 numbers are out
//   - Reset for starting a new round
//   - Ascending snapshots of the called set
//
// Usage:
//
//	c := caller.New()
//	n, err := c.CallNext()
//	if errors.Is(err, caller.ErrNoNumbersLeft) {
//		c.Reset()
//	}
//
// Concurrency:
//
// Caller performs no internal locking. The service owns one instance and
// serializes access under its own mutex.
package caller
