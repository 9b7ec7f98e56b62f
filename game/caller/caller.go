package caller

import (
	"errors"
	"math/rand"
	"sort"
	"time"
)

// Numbers are drawn from the inclusive range [MinNumber, MaxNumber].
const (
	MinNumber = 1
	MaxNumber = 90
)

// ErrNoNumbersLeft is returned by CallNext once all 90 numbers have been
// drawn since the last reset. It is recoverable: Reset clears the round.
var ErrNoNumbersLeft = errors.New("no numbers left to call")

// Caller holds the set of called numbers for one round. It performs no
// locking of its own; the owning service serializes access.
type Caller struct {
	called map[int]bool
	rng    *rand.Rand
}

// New creates a caller with an empty called set.
func New() *Caller {
	return NewWithSource(rand.NewSource(time.Now().UnixNano()))
}

// NewWithSource creates a caller with an explicit random source, used by
// tests that need reproducible draws.
func NewWithSource(src rand.Source) *Caller {
	return &Caller{
		called: make(map[int]bool),
		rng:    rand.New(src),
	}
}

// CallNext draws a uniformly random uncalled number, records it, and returns
// it. Every number returned since the last reset is distinct.
func (c *Caller) CallNext() (int, error) {
	available := make([]int, 0, MaxNumber-len(c.called))
	for n := MinNumber; n <= MaxNumber; n++ {
		if !c.called[n] {
			available = append(available, n)
		}
	}
	if len(available) == 0 {
		return 0, ErrNoNumbersLeft
	}

	n := available[c.rng.Intn(len(available))]
	c.called[n] = true
	return n, nil
}

// Reset clears the called set. Calling it on an already-empty caller is a
// no-op.
func (c *Caller) Reset() {
	c.called = make(map[int]bool)
}

// Called returns the called numbers in ascending order.
func (c *Caller) Called() []int {
	out := make([]int, 0, len(c.called))
	for n := range c.called {
		out = append(out, n)
	}
	sort.Ints(out)
	return out
}

// Remaining returns how many numbers are still uncalled this round.
func (c *Caller) Remaining() int {
	return MaxNumber - MinNumber + 1 - len(c.called)
}
