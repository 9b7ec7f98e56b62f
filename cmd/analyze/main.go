// Command analyze prints quick, human-readable statistics about ticket
// generation: per-column fill distribution over a batch of generated
// tickets, validation failures (there should be none), and timing.
package main

import (
	"flag"
	"fmt"
	"os"
	"time"

	"github.com/masterbraila/BingoOnline/game/ticket"
)

// batchStats accumulates per-column fill statistics over a batch.
type batchStats struct {
	Count     int
	Invalid   int
	Elapsed   time.Duration
	ColTotals [ticket.Columns]int
	ColMin    [ticket.Columns]int
	ColMax    [ticket.Columns]int
}

// analyzeBatch generates count tickets and accumulates fill statistics.
func analyzeBatch(gen *ticket.Generator, count int) (*batchStats, error) {
	stats := &batchStats{Count: count}
	for c := range stats.ColMin {
		stats.ColMin[c] = ticket.TotalRows + 1
	}

	start := time.Now()
	for i := 0; i < count; i++ {
		t, err := gen.Generate()
		if err != nil {
			return nil, fmt.Errorf("generation %d failed: %w", i, err)
		}
		if err := t.Validate(); err != nil {
			stats.Invalid++
			fmt.Fprintf(os.Stderr, "ticket %d invalid: %v\n", i, err)
			continue
		}

		for c := 0; c < ticket.Columns; c++ {
			filled := 0
			for r := 0; r < ticket.TotalRows; r++ {
				if _, ok := t.NumberAt(r, c); ok {
					filled++
				}
			}
			stats.ColTotals[c] += filled
			if filled < stats.ColMin[c] {
				stats.ColMin[c] = filled
			}
			if filled > stats.ColMax[c] {
				stats.ColMax[c] = filled
			}
		}
	}
	stats.Elapsed = time.Since(start)
	return stats, nil
}

func printStats(stats *batchStats) {
	fmt.Printf("Generated %d tickets in %s (%.1f µs/ticket)\n",
		stats.Count, stats.Elapsed.Round(time.Millisecond),
		float64(stats.Elapsed.Microseconds())/float64(stats.Count))
	fmt.Printf("Invalid tickets: %d\n\n", stats.Invalid)

	fmt.Println("Column fill distribution (avg / min / max / cap):")
	for c := 0; c < ticket.Columns; c++ {
		min, max := ticket.ColumnRange(c)
		fmt.Printf("  col %d [%2d-%2d]: %5.2f / %d / %d / %d\n",
			c, min, max,
			float64(stats.ColTotals[c])/float64(stats.Count),
			stats.ColMin[c], stats.ColMax[c], ticket.ColumnCap(c))
	}
}

func main() {
	count := flag.Int("n", 1000, "number of tickets to generate")
	flag.Parse()

	if *count < 1 {
		fmt.Fprintln(os.Stderr, "ticket count must be positive")
		os.Exit(1)
	}

	stats, err := analyzeBatch(ticket.NewGenerator(), *count)
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}

	printStats(stats)
}
