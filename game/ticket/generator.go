package ticket

import (
	"errors"
	"math/rand"
	"sync"
	"time"
)

// ErrGenerationFailed is returned when the mask search exhausts its retry
// budget without producing a valid layout. With the standard layout the
// search space is always satisfiable, so hitting this in practice would
// indicate a bug rather than bad luck.
var ErrGenerationFailed = errors.New("failed to generate a valid ticket")

// DefaultMaxAttempts bounds the number of full generation attempts before
// Generate gives up.
const DefaultMaxAttempts = 10

// Generator produces valid tickets. It holds no state beyond its random
// source, which is guarded by a mutex so a single Generator may be shared
// across connection handlers.
type Generator struct {
	mu          sync.Mutex
	rng         *rand.Rand
	maxAttempts int
}

// NewGenerator creates a generator seeded from the current time.
func NewGenerator() *Generator {
	return NewGeneratorWithSource(rand.NewSource(time.Now().UnixNano()))
}

// NewGeneratorWithSource creates a generator with an explicit random source,
// used by tests that need reproducible output.
func NewGeneratorWithSource(src rand.Source) *Generator {
	return &Generator{
		rng:         rand.New(src),
		maxAttempts: DefaultMaxAttempts,
	}
}

// SetMaxAttempts overrides the retry budget. Values below 1 are ignored.
func (g *Generator) SetMaxAttempts(n int) {
	if n < 1 {
		return
	}
	g.mu.Lock()
	g.maxAttempts = n
	g.mu.Unlock()
}

// Generate produces one valid ticket in two phases: a randomized
// backtracking search over the fill mask, then a shuffled assignment of each
// column's numbers to the masked cells.
func (g *Generator) Generate() (*Ticket, error) {
	g.mu.Lock()
	defer g.mu.Unlock()

	for attempt := 0; attempt < g.maxAttempts; attempt++ {
		var mask [TotalRows][Columns]bool
		var rowCounts [TotalRows]int
		var colCounts [Columns]int

		if !g.fillMask(&mask, &rowCounts, &colCounts, 0, 0) {
			continue
		}
		return g.fillNumbers(&mask), nil
	}

	return nil, ErrGenerationFailed
}

// fillMask is a depth-first search over cells in row-major order. At each
// cell it tries "filled" and "empty" in random order, pruning on the per-row
// cap of 5 and the per-column total. When the last column of a row is placed
// the row must hold exactly 5 numbers or the branch is rejected.
func (g *Generator) fillMask(mask *[TotalRows][Columns]bool, rowCounts *[TotalRows]int, colCounts *[Columns]int, row, col int) bool {
	if row == TotalRows {
		return true
	}

	nextRow := row
	nextCol := col + 1
	if nextCol == Columns {
		nextRow = row + 1
		nextCol = 0
	}

	options := [2]bool{true, false}
	if g.rng.Intn(2) == 0 {
		options[0], options[1] = options[1], options[0]
	}

	for _, filled := range options {
		if filled {
			if rowCounts[row] >= NumbersPerRow || colCounts[col] >= colCaps[col] {
				continue
			}
			mask[row][col] = true
			rowCounts[row]++
			colCounts[col]++
		} else {
			mask[row][col] = false
		}

		if col == Columns-1 && rowCounts[row] != NumbersPerRow {
			// Row is complete but short of 5 numbers; reject this branch.
			if filled {
				mask[row][col] = false
				rowCounts[row]--
				colCounts[col]--
			}
			continue
		}

		if g.fillMask(mask, rowCounts, colCounts, nextRow, nextCol) {
			return true
		}

		if filled {
			mask[row][col] = false
			rowCounts[row]--
			colCounts[col]--
		}
	}

	return false
}

// fillNumbers assigns each column's shuffled numeric range to that column's
// masked cells in top-to-bottom order. Ranges are disjoint and each pool is
// at least as large as the column's fill count, so uniqueness is guaranteed
// by construction.
func (g *Generator) fillNumbers(mask *[TotalRows][Columns]bool) *Ticket {
	t := &Ticket{Numbers: make([][]*int, TotalRows)}
	for r := range t.Numbers {
		t.Numbers[r] = make([]*int, Columns)
	}

	for c := 0; c < Columns; c++ {
		pool := make([]int, 0, colMax[c]-colMin[c]+1)
		for n := colMin[c]; n <= colMax[c]; n++ {
			pool = append(pool, n)
		}
		g.rng.Shuffle(len(pool), func(i, j int) {
			pool[i], pool[j] = pool[j], pool[i]
		})

		next := 0
		for r := 0; r < TotalRows; r++ {
			if !mask[r][c] {
				continue
			}
			n := pool[next]
			next++
			t.Numbers[r][c] = &n
		}
	}

	return t
}
