package main

import (
	"encoding/json"
	"os"
	"path/filepath"
	"testing"

	"github.com/masterbraila/BingoOnline/game/ticket"
)

func writeTicketFile(t *testing.T, name string, content interface{}) string {
	t.Helper()
	data, err := json.Marshal(content)
	if err != nil {
		t.Fatalf("Failed to marshal test data: %v", err)
	}
	path := filepath.Join(t.TempDir(), name)
	if err := os.WriteFile(path, data, 0644); err != nil {
		t.Fatalf("Failed to write test file: %v", err)
	}
	return path
}

func generateTicket(t *testing.T) *ticket.Ticket {
	t.Helper()
	tk, err := ticket.NewGenerator().Generate()
	if err != nil {
		t.Fatalf("Failed to generate ticket: %v", err)
	}
	return tk
}

func TestValidateFileSingleTicket(t *testing.T) {
	path := writeTicketFile(t, "one.json", generateTicket(t))

	result := validateFile(path)
	if !result.Valid {
		t.Errorf("Expected valid result, got errors: %v", result.Errors)
	}
	if result.Tickets != 1 {
		t.Errorf("Expected 1 ticket, got %d", result.Tickets)
	}
}

func TestValidateFileTicketArray(t *testing.T) {
	tickets := []*ticket.Ticket{generateTicket(t), generateTicket(t), generateTicket(t)}
	path := writeTicketFile(t, "many.json", tickets)

	result := validateFile(path)
	if !result.Valid {
		t.Errorf("Expected valid result, got errors: %v", result.Errors)
	}
	if result.Tickets != 3 {
		t.Errorf("Expected 3 tickets, got %d", result.Tickets)
	}
}

func TestValidateFileInvalidTicket(t *testing.T) {
	tk := generateTicket(t)
	// Break uniqueness: copy one number over another.
	var first *int
	for r := range tk.Numbers {
		if tk.Numbers[r][4] != nil {
			if first == nil {
				first = tk.Numbers[r][4]
			} else {
				*tk.Numbers[r][4] = *first
				break
			}
		}
	}
	path := writeTicketFile(t, "broken.json", tk)

	result := validateFile(path)
	if result.Valid {
		t.Error("Expected invalid result for ticket with duplicate number")
	}
	if len(result.Errors) == 0 {
		t.Error("Expected at least one error message")
	}
}

func TestValidateFileMissing(t *testing.T) {
	result := validateFile(filepath.Join(t.TempDir(), "nope.json"))
	if result.Valid {
		t.Error("Expected invalid result for missing file")
	}
}

func TestValidateFileNotJSON(t *testing.T) {
	path := filepath.Join(t.TempDir(), "garbage.json")
	if err := os.WriteFile(path, []byte("{not json"), 0644); err != nil {
		t.Fatalf("Failed to write test file: %v", err)
	}

	result := validateFile(path)
	if result.Valid {
		t.Error("Expected invalid result for malformed JSON")
	}
}

func TestDecodeTickets(t *testing.T) {
	one, err := json.Marshal(generateTicket(t))
	if err != nil {
		t.Fatalf("Failed to marshal ticket: %v", err)
	}
	tickets, err := decodeTickets(one)
	if err != nil {
		t.Fatalf("Failed to decode single ticket: %v", err)
	}
	if len(tickets) != 1 {
		t.Errorf("Expected 1 ticket, got %d", len(tickets))
	}

	many, err := json.Marshal([]*ticket.Ticket{generateTicket(t), generateTicket(t)})
	if err != nil {
		t.Fatalf("Failed to marshal tickets: %v", err)
	}
	tickets, err = decodeTickets(many)
	if err != nil {
		t.Fatalf("Failed to decode ticket array: %v", err)
	}
	if len(tickets) != 2 {
		t.Errorf("Expected 2 tickets, got %d", len(tickets))
	}

	if _, err := decodeTickets([]byte(`"strip"`)); err == nil {
		t.Error("Expected error for non-ticket JSON")
	}
}

func TestRunSelfCheck(t *testing.T) {
	if code := runSelfCheck(5); code != 0 {
		t.Errorf("Expected self-check to pass, got exit code %d", code)
	}
}
