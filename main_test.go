package main

import (
	"encoding/json"
	"net/http/httptest"
	"os"
	"path/filepath"
	"testing"
)

func TestConstants(t *testing.T) {
	if Version == "" {
		t.Error("Version should not be empty")
	}
	if AppName == "" {
		t.Error("AppName should not be empty")
	}

	expectedVersion := "1.0.0"
	if Version != expectedVersion {
		t.Errorf("Expected version %s, got %s", expectedVersion, Version)
	}

	expectedAppName := "Bingo Online Server"
	if AppName != expectedAppName {
		t.Errorf("Expected app name %s, got %s", expectedAppName, AppName)
	}
}

func TestBuildServerWithDefaults(t *testing.T) {
	// A missing config file falls back to defaults.
	apiServer, err := buildServer(filepath.Join(t.TempDir(), "missing.json"))
	if err != nil {
		t.Fatalf("Failed to build server: %v", err)
	}
	if apiServer == nil {
		t.Fatal("Expected server to be non-nil")
	}

	// The built handler serves the health endpoint.
	rec := httptest.NewRecorder()
	req := httptest.NewRequest("GET", "/api/health", nil)
	apiServer.ServeHTTP(rec, req)

	if rec.Code != 200 {
		t.Fatalf("Expected 200 from health endpoint, got %d", rec.Code)
	}
	var resp struct {
		Status string `json:"status"`
	}
	if err := json.Unmarshal(rec.Body.Bytes(), &resp); err != nil {
		t.Fatalf("Failed to decode health response: %v", err)
	}
	if resp.Status != "healthy" {
		t.Errorf("Expected healthy status, got %q", resp.Status)
	}
}

func TestBuildServerWithConfigFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "server.json")
	data := `{"default_room": "hall-a", "ticket_max_attempts": 5}`
	if err := os.WriteFile(path, []byte(data), 0644); err != nil {
		t.Fatalf("Failed to write config file: %v", err)
	}

	if _, err := buildServer(path); err != nil {
		t.Fatalf("Failed to build server from config file: %v", err)
	}
}

func TestBuildServerInvalidConfig(t *testing.T) {
	path := filepath.Join(t.TempDir(), "server.json")
	if err := os.WriteFile(path, []byte(`{"ticket_max_attempts": -1}`), 0644); err != nil {
		t.Fatalf("Failed to write config file: %v", err)
	}

	if _, err := buildServer(path); err == nil {
		t.Error("Expected error for invalid config file")
	}
}

// Note: main(), runServerCommand(), runStdioMCPCommand(), and
// runNgrokTunnel() start servers and block; they are exercised by running
// the binary, not by unit tests.
