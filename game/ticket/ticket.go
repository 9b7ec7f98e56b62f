package ticket

import "fmt"

// Ticket layout constants. A ticket is a strip of 5 sub-tickets of 3 rows
// each, giving 15 rows by 9 columns. Every row carries exactly 5 numbers,
// and the 90 numbers 1..90 are spread across the strip without repetition.
const (
	SubTickets       = 5
	RowsPerSubTicket = 3
	TotalRows        = SubTickets * RowsPerSubTicket
	Columns          = 9
	NumbersPerRow    = 5
)

// Per-column numeric ranges and fill caps across the 15 rows. Column 0
// holds [1,9], columns 1-7 hold [10c, 10c+9], column 8 holds [80,90]. Each
// cap equals the size of the column's numeric range, so the number phase can
// never run out of values for a column.
var (
	colMin  = [Columns]int{1, 10, 20, 30, 40, 50, 60, 70, 80}
	colMax  = [Columns]int{9, 19, 29, 39, 49, 59, 69, 79, 90}
	colCaps = [Columns]int{9, 10, 10, 10, 10, 10, 10, 10, 11}
)

// ColumnRange returns the inclusive numeric range for a column.
func ColumnRange(col int) (min, max int) {
	return colMin[col], colMax[col]
}

// ColumnCap returns the maximum total count of numbers a column may hold
// across all 15 rows.
func ColumnCap(col int) int {
	return colCaps[col]
}

// Ticket is a full 15x9 strip. Numbers[r][c] is nil for an empty cell.
// Tickets are never mutated after generation; marking is a client concern.
type Ticket struct {
	Numbers [][]*int `json:"numbers"`
}

// NumberAt returns the number at a cell, or false for an empty cell.
func (t *Ticket) NumberAt(row, col int) (int, bool) {
	if row < 0 || row >= len(t.Numbers) || col < 0 || col >= len(t.Numbers[row]) {
		return 0, false
	}
	if t.Numbers[row][col] == nil {
		return 0, false
	}
	return *t.Numbers[row][col], true
}

// All returns every number on the ticket in row-major order.
func (t *Ticket) All() []int {
	var out []int
	for _, row := range t.Numbers {
		for _, cell := range row {
			if cell != nil {
				out = append(out, *cell)
			}
		}
	}
	return out
}

// Validate checks every structural invariant of a ticket: shape, exactly 5
// numbers per row, per-column fill caps, per-column numeric ranges, and
// global uniqueness. It returns nil for a valid ticket.
func (t *Ticket) Validate() error {
	if len(t.Numbers) != TotalRows {
		return fmt.Errorf("ticket has %d rows, want %d", len(t.Numbers), TotalRows)
	}

	seen := make(map[int]bool)
	var colCounts [Columns]int

	for r, row := range t.Numbers {
		if len(row) != Columns {
			return fmt.Errorf("row %d has %d columns, want %d", r, len(row), Columns)
		}
		filled := 0
		for c, cell := range row {
			if cell == nil {
				continue
			}
			n := *cell
			filled++
			colCounts[c]++
			if n < colMin[c] || n > colMax[c] {
				return fmt.Errorf("row %d col %d: number %d outside range [%d,%d]", r, c, n, colMin[c], colMax[c])
			}
			if seen[n] {
				return fmt.Errorf("number %d appears more than once", n)
			}
			seen[n] = true
		}
		if filled != NumbersPerRow {
			return fmt.Errorf("row %d has %d numbers, want %d", r, filled, NumbersPerRow)
		}
	}

	for c, count := range colCounts {
		if count > colCaps[c] {
			return fmt.Errorf("column %d has %d numbers, cap is %d", c, count, colCaps[c])
		}
	}

	return nil
}
