// Command validate checks ticket JSON files against the structural ticket
// invariants:
//   - 15 rows of 9 cells
//   - exactly 5 numbers per row
//   - per-column fill caps (9, 10x7, 11)
//   - numbers inside their column's range, unique across the ticket
//
// Each argument is a file containing either a single ticket object or an
// array of tickets, as produced by the /api/users/{id}/ticket endpoint or a
// simulator dump. With no arguments it self-checks a freshly generated
// batch.
package main

import (
	"encoding/json"
	"flag"
	"fmt"
	"os"
	"path/filepath"

	"github.com/masterbraila/BingoOnline/game/ticket"
)

// ValidationResult captures the outcome of validating a single file.
type ValidationResult struct {
	File    string
	Tickets int
	Valid   bool
	Errors  []string
}

func main() {
	selfCheck := flag.Int("generate", 100, "with no file arguments, generate and validate this many tickets")
	flag.Parse()

	if flag.NArg() == 0 {
		os.Exit(runSelfCheck(*selfCheck))
	}

	failed := 0
	for _, path := range flag.Args() {
		result := validateFile(path)
		printResult(result)
		if !result.Valid {
			failed++
		}
	}

	if failed > 0 {
		fmt.Printf("\n%d of %d files failed validation\n", failed, flag.NArg())
		os.Exit(1)
	}
	fmt.Printf("\nAll %d files valid\n", flag.NArg())
}

// validateFile loads and validates a single ticket JSON file.
func validateFile(path string) ValidationResult {
	result := ValidationResult{
		File:  filepath.Base(path),
		Valid: true,
	}

	data, err := os.ReadFile(path)
	if err != nil {
		result.Valid = false
		result.Errors = append(result.Errors, fmt.Sprintf("failed to read file: %v", err))
		return result
	}

	tickets, err := decodeTickets(data)
	if err != nil {
		result.Valid = false
		result.Errors = append(result.Errors, err.Error())
		return result
	}

	result.Tickets = len(tickets)
	for i, t := range tickets {
		if err := t.Validate(); err != nil {
			result.Valid = false
			result.Errors = append(result.Errors, fmt.Sprintf("ticket %d: %v", i, err))
		}
	}
	return result
}

// decodeTickets accepts a single ticket object or an array of tickets.
func decodeTickets(data []byte) ([]*ticket.Ticket, error) {
	var many []*ticket.Ticket
	if err := json.Unmarshal(data, &many); err == nil {
		return many, nil
	}

	var one ticket.Ticket
	if err := json.Unmarshal(data, &one); err != nil {
		return nil, fmt.Errorf("not a ticket or ticket array: %v", err)
	}
	return []*ticket.Ticket{&one}, nil
}

func printResult(result ValidationResult) {
	if result.Valid {
		fmt.Printf("✓ %s (%d tickets)\n", result.File, result.Tickets)
		return
	}
	fmt.Printf("✗ %s\n", result.File)
	for _, e := range result.Errors {
		fmt.Printf("    %s\n", e)
	}
}

// runSelfCheck generates n tickets and validates each one.
func runSelfCheck(n int) int {
	fmt.Printf("No files given; generating and validating %d tickets\n", n)

	gen := ticket.NewGenerator()
	failures := 0
	for i := 0; i < n; i++ {
		t, err := gen.Generate()
		if err != nil {
			fmt.Printf("✗ generation %d failed: %v\n", i, err)
			failures++
			continue
		}
		if err := t.Validate(); err != nil {
			fmt.Printf("✗ ticket %d invalid: %v\n", i, err)
			failures++
		}
	}

	if failures > 0 {
		fmt.Printf("%d of %d tickets failed\n", failures, n)
		return 1
	}
	fmt.Printf("All %d tickets valid\n", n)
	return 0
}
