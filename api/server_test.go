package api

import (
	"bytes"
	"context"
	"encoding/json"
	"math/rand"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/masterbraila/BingoOnline/game/caller"
	"github.com/masterbraila/BingoOnline/game/registry"
	"github.com/masterbraila/BingoOnline/game/service"
	"github.com/masterbraila/BingoOnline/game/ticket"
	"github.com/masterbraila/BingoOnline/transport/websocket"
)

// newTestServer wires a real service behind the REST surface. The hub is
// attached but not run; REST handlers only read its client count and the
// service's fan-out to zero clients is a no-op.
func newTestServer(t *testing.T) (*Server, service.BingoService) {
	t.Helper()

	hub := websocket.NewHub("default", nil)
	svc := service.NewBingoService(
		registry.NewRegistry(),
		caller.NewWithSource(rand.NewSource(1)),
		ticket.NewGeneratorWithSource(rand.NewSource(1)),
		hub,
		service.Options{},
	)
	hub.SetService(svc)

	return NewServer(svc, hub), svc
}

func doRequest(t *testing.T, s *Server, method, path string, body interface{}) *httptest.ResponseRecorder {
	t.Helper()

	var reqBody *bytes.Buffer
	if body != nil {
		data, err := json.Marshal(body)
		if err != nil {
			t.Fatalf("Failed to marshal request body: %v", err)
		}
		reqBody = bytes.NewBuffer(data)
	} else {
		reqBody = bytes.NewBuffer(nil)
	}

	req := httptest.NewRequest(method, path, reqBody)
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	rec := httptest.NewRecorder()
	s.ServeHTTP(rec, req)
	return rec
}

func decodeBody(t *testing.T, rec *httptest.ResponseRecorder, out interface{}) {
	t.Helper()
	if err := json.Unmarshal(rec.Body.Bytes(), out); err != nil {
		t.Fatalf("Failed to decode response %q: %v", rec.Body.String(), err)
	}
}

func TestGetConnectedUsersEmpty(t *testing.T) {
	s, _ := newTestServer(t)

	rec := doRequest(t, s, "GET", "/api/users", nil)
	if rec.Code != http.StatusOK {
		t.Fatalf("Expected 200, got %d", rec.Code)
	}

	var resp struct {
		Count int                `json:"count"`
		Users []service.UserInfo `json:"users"`
	}
	decodeBody(t, rec, &resp)
	if resp.Count != 0 || len(resp.Users) != 0 {
		t.Errorf("Expected empty user list, got %+v", resp)
	}
}

func TestGetConnectedUsers(t *testing.T) {
	s, svc := newTestServer(t)

	svc.JoinGame(context.Background(), "conn-1", "default", "Alice")

	rec := doRequest(t, s, "GET", "/api/users", nil)
	var resp struct {
		Count int                `json:"count"`
		Users []service.UserInfo `json:"users"`
	}
	decodeBody(t, rec, &resp)
	if resp.Count != 1 || resp.Users[0].PlayerName != "Alice" {
		t.Errorf("Expected Alice in the list, got %+v", resp)
	}
}

func TestCallNumberAndCalledNumbers(t *testing.T) {
	s, _ := newTestServer(t)

	rec := doRequest(t, s, "POST", "/api/numbers/call", nil)
	if rec.Code != http.StatusOK {
		t.Fatalf("Expected 200, got %d: %s", rec.Code, rec.Body.String())
	}
	var callResp struct {
		Number int `json:"number"`
	}
	decodeBody(t, rec, &callResp)
	if callResp.Number < caller.MinNumber || callResp.Number > caller.MaxNumber {
		t.Errorf("Called number %d out of range", callResp.Number)
	}

	rec = doRequest(t, s, "GET", "/api/numbers", nil)
	var listResp struct {
		Called    []int `json:"called"`
		Remaining int   `json:"remaining"`
	}
	decodeBody(t, rec, &listResp)
	if len(listResp.Called) != 1 || listResp.Called[0] != callResp.Number {
		t.Errorf("Expected called list [%d], got %v", callResp.Number, listResp.Called)
	}
	if listResp.Remaining != 89 {
		t.Errorf("Expected 89 remaining, got %d", listResp.Remaining)
	}
}

func TestCallNumberExhaustedReturnsConflict(t *testing.T) {
	s, _ := newTestServer(t)

	for i := 0; i < caller.MaxNumber; i++ {
		rec := doRequest(t, s, "POST", "/api/numbers/call", nil)
		if rec.Code != http.StatusOK {
			t.Fatalf("Call %d: expected 200, got %d", i, rec.Code)
		}
	}

	rec := doRequest(t, s, "POST", "/api/numbers/call", nil)
	if rec.Code != http.StatusConflict {
		t.Errorf("Expected 409 when the round is exhausted, got %d", rec.Code)
	}
}

func TestResetAndNewGame(t *testing.T) {
	s, _ := newTestServer(t)

	doRequest(t, s, "POST", "/api/numbers/call", nil)
	rec := doRequest(t, s, "POST", "/api/numbers/reset", nil)
	if rec.Code != http.StatusOK {
		t.Fatalf("Expected 200 for reset, got %d", rec.Code)
	}

	rec = doRequest(t, s, "GET", "/api/numbers", nil)
	var listResp struct {
		Called []int `json:"called"`
	}
	decodeBody(t, rec, &listResp)
	if len(listResp.Called) != 0 {
		t.Errorf("Expected no called numbers after reset, got %v", listResp.Called)
	}

	doRequest(t, s, "POST", "/api/numbers/call", nil)
	rec = doRequest(t, s, "POST", "/api/game/new", nil)
	if rec.Code != http.StatusOK {
		t.Fatalf("Expected 200 for new game, got %d", rec.Code)
	}
	rec = doRequest(t, s, "GET", "/api/numbers", nil)
	decodeBody(t, rec, &listResp)
	if len(listResp.Called) != 0 {
		t.Errorf("Expected no called numbers after new game, got %v", listResp.Called)
	}
}

func TestTicketLifecycle(t *testing.T) {
	s, svc := newTestServer(t)

	svc.JoinGame(context.Background(), "conn-1", "default", "Alice")

	// No ticket yet: still 200, with a null ticket.
	rec := doRequest(t, s, "GET", "/api/users/conn-1/ticket", nil)
	if rec.Code != http.StatusOK {
		t.Fatalf("Expected 200, got %d", rec.Code)
	}
	var before service.UserTicket
	decodeBody(t, rec, &before)
	if before.Ticket != nil {
		t.Error("Expected no ticket before generation")
	}

	rec = doRequest(t, s, "POST", "/api/users/conn-1/ticket", nil)
	if rec.Code != http.StatusOK {
		t.Fatalf("Expected 200 for generation, got %d: %s", rec.Code, rec.Body.String())
	}

	rec = doRequest(t, s, "GET", "/api/users/conn-1/ticket", nil)
	var after service.UserTicket
	decodeBody(t, rec, &after)
	if after.Ticket == nil {
		t.Fatal("Expected a ticket after generation")
	}
	if err := after.Ticket.Validate(); err != nil {
		t.Errorf("Stored ticket is invalid: %v", err)
	}
}

func TestWinAnnouncementValidation(t *testing.T) {
	s, _ := newTestServer(t)

	rec := doRequest(t, s, "POST", "/api/wins/line", map[string]interface{}{
		"grid": 2, "rowInGrid": 1, "playerName": "Alice",
	})
	if rec.Code != http.StatusOK {
		t.Errorf("Expected 200 for valid line win, got %d: %s", rec.Code, rec.Body.String())
	}

	rec = doRequest(t, s, "POST", "/api/wins/line", map[string]interface{}{
		"grid": 7, "rowInGrid": 1, "playerName": "Alice",
	})
	if rec.Code != http.StatusBadRequest {
		t.Errorf("Expected 400 for out-of-range grid, got %d", rec.Code)
	}

	rec = doRequest(t, s, "POST", "/api/wins/fullhouse", map[string]interface{}{
		"grid": 4, "playerName": "Bob",
	})
	if rec.Code != http.StatusOK {
		t.Errorf("Expected 200 for valid full house, got %d", rec.Code)
	}

	rec = doRequest(t, s, "POST", "/api/wins/fullhouse", map[string]interface{}{
		"grid": -1, "playerName": "Bob",
	})
	if rec.Code != http.StatusBadRequest {
		t.Errorf("Expected 400 for negative grid, got %d", rec.Code)
	}
}

func TestHealth(t *testing.T) {
	s, _ := newTestServer(t)

	rec := doRequest(t, s, "GET", "/api/health", nil)
	if rec.Code != http.StatusOK {
		t.Fatalf("Expected 200, got %d", rec.Code)
	}

	var resp struct {
		Status      string `json:"status"`
		Connections int    `json:"connections"`
	}
	decodeBody(t, rec, &resp)
	if resp.Status != "healthy" {
		t.Errorf("Expected healthy status, got %q", resp.Status)
	}
	if resp.Connections != 0 {
		t.Errorf("Expected 0 connections, got %d", resp.Connections)
	}
}

func TestUnknownRoute(t *testing.T) {
	s, _ := newTestServer(t)

	rec := doRequest(t, s, "GET", "/api/nope", nil)
	if rec.Code != http.StatusNotFound {
		t.Errorf("Expected 404, got %d", rec.Code)
	}
}
