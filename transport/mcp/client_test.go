package mcp

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/mark3labs/mcp-go/mcp"

	"github.com/masterbraila/BingoOnline/game/service"
	"github.com/masterbraila/BingoOnline/game/ticket"
)

func TestNewClient(t *testing.T) {
	baseURL := "http://localhost:8080"
	client := NewClient(baseURL)

	if client == nil {
		t.Fatal("Expected client to be created")
	}
	if client.baseURL != baseURL {
		t.Errorf("Expected baseURL %s, got %s", baseURL, client.baseURL)
	}
	if client.httpClient == nil {
		t.Error("Expected HTTP client to be initialized")
	}
	if client.mcpServer == nil {
		t.Error("Expected MCP server to be initialized")
	}
}

func TestClient_apiCall(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		json.NewEncoder(w).Encode(map[string]int{"number": 42})
	}))
	defer server.Close()

	client := NewClient(server.URL)

	var response map[string]int
	if err := client.apiCall("POST", "/api/numbers/call", nil, &response); err != nil {
		t.Fatalf("apiCall failed: %v", err)
	}
	if response["number"] != 42 {
		t.Errorf("Expected number 42, got %d", response["number"])
	}
}

func TestClient_apiCall_Error(t *testing.T) {
	client := NewClient("http://invalid-url-that-does-not-exist:9999")

	if err := client.apiCall("GET", "/api/users", nil, nil); err == nil {
		t.Error("Expected error for invalid URL")
	}
}

func TestClient_apiCall_HTTPError(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusConflict)
		json.NewEncoder(w).Encode(map[string]string{"error": "no numbers left to call"})
	}))
	defer server.Close()

	client := NewClient(server.URL)

	err := client.apiCall("POST", "/api/numbers/call", nil, nil)
	if err == nil {
		t.Fatal("Expected error for HTTP 409 response")
	}
	if !strings.Contains(err.Error(), "no numbers left") {
		t.Errorf("Expected API error message to surface, got: %v", err)
	}
}

func textContent(t *testing.T, result *mcp.CallToolResult) string {
	t.Helper()
	if result == nil || len(result.Content) == 0 {
		t.Fatal("Expected result with content")
	}
	tc, ok := result.Content[0].(mcp.TextContent)
	if !ok {
		t.Fatalf("Expected text content, got %T", result.Content[0])
	}
	return tc.Text
}

func TestClient_handleListUsers(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.Method != "GET" || r.URL.Path != "/api/users" {
			t.Errorf("Expected GET /api/users, got %s %s", r.Method, r.URL.Path)
		}
		json.NewEncoder(w).Encode(map[string]interface{}{
			"count": 2,
			"users": []service.UserInfo{
				{ConnectionID: "conn-1", PlayerName: "Alice"},
				{ConnectionID: "conn-2", PlayerName: "Bob"},
			},
		})
	}))
	defer server.Close()

	client := NewClient(server.URL)
	request := mcp.CallToolRequest{
		Params: mcp.CallToolParams{Name: "list_users", Arguments: map[string]interface{}{}},
	}

	result, err := client.handleListUsers(context.Background(), request)
	if err != nil {
		t.Fatalf("handleListUsers failed: %v", err)
	}

	text := textContent(t, result)
	if !strings.Contains(text, "Alice") || !strings.Contains(text, "conn-2") {
		t.Errorf("Expected both players in output, got: %s", text)
	}
}

func TestClient_handleListUsers_Empty(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		json.NewEncoder(w).Encode(map[string]interface{}{"count": 0, "users": []service.UserInfo{}})
	}))
	defer server.Close()

	client := NewClient(server.URL)
	request := mcp.CallToolRequest{
		Params: mcp.CallToolParams{Name: "list_users", Arguments: map[string]interface{}{}},
	}

	result, err := client.handleListUsers(context.Background(), request)
	if err != nil {
		t.Fatalf("handleListUsers failed: %v", err)
	}
	if text := textContent(t, result); !strings.Contains(text, "No players connected") {
		t.Errorf("Expected empty-list message, got: %s", text)
	}
}

func TestClient_handleCallNumber(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.Method != "POST" || r.URL.Path != "/api/numbers/call" {
			t.Errorf("Expected POST /api/numbers/call, got %s %s", r.Method, r.URL.Path)
		}
		json.NewEncoder(w).Encode(map[string]int{"number": 17})
	}))
	defer server.Close()

	client := NewClient(server.URL)
	request := mcp.CallToolRequest{
		Params: mcp.CallToolParams{Name: "call_number", Arguments: map[string]interface{}{}},
	}

	result, err := client.handleCallNumber(context.Background(), request)
	if err != nil {
		t.Fatalf("handleCallNumber failed: %v", err)
	}
	if text := textContent(t, result); !strings.Contains(text, "17") {
		t.Errorf("Expected called number in output, got: %s", text)
	}
}

func TestClient_handleGetUserTicket(t *testing.T) {
	tk, err := ticket.NewGenerator().Generate()
	if err != nil {
		t.Fatalf("Failed to generate ticket: %v", err)
	}

	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/api/users/conn-1/ticket" {
			t.Errorf("Unexpected path %s", r.URL.Path)
		}
		json.NewEncoder(w).Encode(service.UserTicket{ConnectionID: "conn-1", Ticket: tk})
	}))
	defer server.Close()

	client := NewClient(server.URL)
	request := mcp.CallToolRequest{
		Params: mcp.CallToolParams{
			Name:      "get_user_ticket",
			Arguments: map[string]interface{}{"connection_id": "conn-1"},
		},
	}

	result, err := client.handleGetUserTicket(context.Background(), request)
	if err != nil {
		t.Fatalf("handleGetUserTicket failed: %v", err)
	}

	text := textContent(t, result)
	if !strings.Contains(text, "--") {
		t.Errorf("Expected empty cells rendered as --, got: %s", text)
	}
	if got := renderTicket(tk); text != got {
		t.Errorf("Expected handler to render the stored ticket")
	}
}

func TestClient_handleAnnounceLineWin(t *testing.T) {
	var received map[string]interface{}
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.Method != "POST" || r.URL.Path != "/api/wins/line" {
			t.Errorf("Expected POST /api/wins/line, got %s %s", r.Method, r.URL.Path)
		}
		json.NewDecoder(r.Body).Decode(&received)
		json.NewEncoder(w).Encode(map[string]string{"message": "Line win announced"})
	}))
	defer server.Close()

	client := NewClient(server.URL)
	request := mcp.CallToolRequest{
		Params: mcp.CallToolParams{
			Name: "announce_line_win",
			Arguments: map[string]interface{}{
				"grid": float64(2), "row_in_grid": float64(1), "player_name": "Alice",
			},
		},
	}

	result, err := client.handleAnnounceLineWin(context.Background(), request)
	if err != nil {
		t.Fatalf("handleAnnounceLineWin failed: %v", err)
	}
	if text := textContent(t, result); !strings.Contains(text, "Alice") {
		t.Errorf("Expected player name in confirmation, got: %s", text)
	}
	if received["grid"] != float64(2) || received["rowInGrid"] != float64(1) {
		t.Errorf("Unexpected forwarded body: %v", received)
	}
}

func TestRenderTicket(t *testing.T) {
	tk, err := ticket.NewGenerator().Generate()
	if err != nil {
		t.Fatalf("Failed to generate ticket: %v", err)
	}

	out := renderTicket(tk)

	lines := strings.Split(strings.TrimRight(out, "\n"), "\n")
	// 15 rows plus 4 blank separators between the 5 sub-tickets.
	if len(lines) != ticket.TotalRows+ticket.SubTickets-1 {
		t.Errorf("Expected %d lines, got %d:\n%s", ticket.TotalRows+ticket.SubTickets-1, len(lines), out)
	}
	if !strings.Contains(out, "--") {
		t.Error("Expected empty cells rendered as --")
	}
}
