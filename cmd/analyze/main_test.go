package main

import (
	"math/rand"
	"testing"

	"github.com/masterbraila/BingoOnline/game/ticket"
)

func TestAnalyzeBatch(t *testing.T) {
	gen := ticket.NewGeneratorWithSource(rand.NewSource(1))

	stats, err := analyzeBatch(gen, 50)
	if err != nil {
		t.Fatalf("Failed to analyze batch: %v", err)
	}

	if stats.Count != 50 {
		t.Errorf("Expected count 50, got %d", stats.Count)
	}
	if stats.Invalid != 0 {
		t.Errorf("Expected 0 invalid tickets, got %d", stats.Invalid)
	}

	// Every ticket carries 75 numbers, so per-column totals must sum to
	// 75 per ticket.
	total := 0
	for c := 0; c < ticket.Columns; c++ {
		total += stats.ColTotals[c]
	}
	if total != 50*ticket.TotalRows*ticket.NumbersPerRow {
		t.Errorf("Expected %d numbers in total, got %d", 50*ticket.TotalRows*ticket.NumbersPerRow, total)
	}

	for c := 0; c < ticket.Columns; c++ {
		if stats.ColMin[c] < 0 || stats.ColMin[c] > ticket.TotalRows {
			t.Errorf("Column %d: min fill %d out of range", c, stats.ColMin[c])
		}
		if stats.ColMax[c] > ticket.ColumnCap(c) {
			t.Errorf("Column %d: max fill %d above cap %d", c, stats.ColMax[c], ticket.ColumnCap(c))
		}
		if stats.ColMin[c] > stats.ColMax[c] {
			t.Errorf("Column %d: min %d greater than max %d", c, stats.ColMin[c], stats.ColMax[c])
		}
	}
}

func TestAnalyzeBatchSmall(t *testing.T) {
	stats, err := analyzeBatch(ticket.NewGenerator(), 1)
	if err != nil {
		t.Fatalf("Failed to analyze batch: %v", err)
	}
	if stats.Count != 1 {
		t.Errorf("Expected count 1, got %d", stats.Count)
	}
}
