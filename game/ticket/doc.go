// Package ticket implements 90-ball bingo tickets and their generation.
//
// The ticket package implements:
//   - The Ticket type: a 15x9 strip of 5 stacked 3x9 sub-tickets
//   - Structural validation of all ticket invariants
//   - Randomized ticket generation with bounded retries
//
// Ticket Layout:
//
// A ticket has 15 rows of 9 columns. Each row carries exactly 5 numbers and
// 4 blanks. Column c holds numbers from its fixed range (column 0 is 1-9,
// columns 1-7 are 10c..10c+9, column 8 is 80-90) with at most its cap of
// filled cells across the ticket (9 for column 0, 10 for columns 1-7, 11 for
// column 8). Every number on a ticket is unique. Cells are *int: nil means
// blank.
//
// Generation:
//
// The generator first searches for a fill mask satisfying the row and column
// constraints by randomized backtracking, then assigns shuffled numbers from
// each column's pool to the masked cells. The search is exhaustive per
// attempt, so a handful of attempts (DefaultMaxAttempts) always suffices in
// practice; ErrGenerationFailed is returned if they do not.
//
// Usage:
//
//	gen := ticket.NewGenerator()
//	t, err := gen.Generate()
//	if err != nil {
//		log.Fatal(err)
//	}
//	if err := t.Validate(); err != nil {
//		log.Fatal(err)
//	}
//
// Concurrency:
//
// Generator is safe for concurrent use. Ticket values are plain data and
// should not be mutated while shared.
package ticket
