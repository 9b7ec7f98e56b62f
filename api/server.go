package api

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/gorilla/mux"

	"github.com/masterbraila/BingoOnline/game/caller"
	"github.com/masterbraila/BingoOnline/game/service"
	"github.com/masterbraila/BingoOnline/transport/websocket"
)

// Server represents the REST API server
type Server struct {
	service service.BingoService
	hub     *websocket.Hub
	router  *mux.Router
}

// NewServer creates a new API server
func NewServer(bingoService service.BingoService, hub *websocket.Hub) *Server {
	s := &Server{
		service: bingoService,
		hub:     hub,
		router:  mux.NewRouter(),
	}

	s.setupRoutes()
	return s
}

// setupRoutes configures all API routes
func (s *Server) setupRoutes() {
	api := s.router.PathPrefix("/api").Subrouter()

	// Participant queries
	api.HandleFunc("/users", s.handleGetConnectedUsers).Methods("GET")
	api.HandleFunc("/users/{id}/ticket", s.handleGetUserTicket).Methods("GET")
	api.HandleFunc("/users/{id}/ticket", s.handleGenerateTicket).Methods("POST")

	// Number calling
	api.HandleFunc("/numbers", s.handleGetCalledNumbers).Methods("GET")
	api.HandleFunc("/numbers/call", s.handleCallNumber).Methods("POST")
	api.HandleFunc("/numbers/reset", s.handleResetCalledNumbers).Methods("POST")

	// Game lifecycle and announcements
	api.HandleFunc("/game/new", s.handleNewGame).Methods("POST")
	api.HandleFunc("/wins/line", s.handleLineWin).Methods("POST")
	api.HandleFunc("/wins/fullhouse", s.handleFullHouseWin).Methods("POST")

	api.HandleFunc("/health", s.handleHealth).Methods("GET")

	// WebSocket
	s.router.HandleFunc("/ws", s.handleWebSocket)
}

// ServeHTTP implements http.Handler
func (s *Server) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	s.router.ServeHTTP(w, r)
}

// Response helpers
func respondJSON(w http.ResponseWriter, status int, data interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(data)
}

func respondError(w http.ResponseWriter, status int, message string) {
	respondJSON(w, status, map[string]string{"error": message})
}

func (s *Server) handleGetConnectedUsers(w http.ResponseWriter, r *http.Request) {
	users := s.service.GetConnectedUsers(r.Context())

	respondJSON(w, http.StatusOK, map[string]interface{}{
		"count": len(users),
		"users": users,
	})
}

// handleGetUserTicket returns the stored ticket for a connection. A missing
// ticket is a normal empty result, not an error.
func (s *Server) handleGetUserTicket(w http.ResponseWriter, r *http.Request) {
	connID := mux.Vars(r)["id"]

	t, _ := s.service.GetUserTicket(r.Context(), connID)
	respondJSON(w, http.StatusOK, service.UserTicket{ConnectionID: connID, Ticket: t})
}

func (s *Server) handleGenerateTicket(w http.ResponseWriter, r *http.Request) {
	connID := mux.Vars(r)["id"]

	if err := s.service.GenerateAndSendTicket(r.Context(), "", connID); err != nil {
		respondError(w, http.StatusInternalServerError, err.Error())
		return
	}

	respondJSON(w, http.StatusOK, map[string]string{
		"message":       "Ticket generated and sent",
		"connection_id": connID,
	})
}

func (s *Server) handleGetCalledNumbers(w http.ResponseWriter, r *http.Request) {
	called := s.service.CalledNumbers(r.Context())

	respondJSON(w, http.StatusOK, map[string]interface{}{
		"called":    called,
		"remaining": caller.MaxNumber - caller.MinNumber + 1 - len(called),
	})
}

func (s *Server) handleCallNumber(w http.ResponseWriter, r *http.Request) {
	n, err := s.service.CallNumber(r.Context(), "")
	if err != nil {
		if errors.Is(err, caller.ErrNoNumbersLeft) {
			respondError(w, http.StatusConflict, err.Error())
			return
		}
		respondError(w, http.StatusInternalServerError, err.Error())
		return
	}

	respondJSON(w, http.StatusOK, map[string]int{"number": n})
}

func (s *Server) handleResetCalledNumbers(w http.ResponseWriter, r *http.Request) {
	s.service.ResetCalledNumbers(r.Context())
	respondJSON(w, http.StatusOK, map[string]string{"message": "Called numbers reset"})
}

func (s *Server) handleNewGame(w http.ResponseWriter, r *http.Request) {
	s.service.NewGame(r.Context())
	respondJSON(w, http.StatusOK, map[string]string{"message": "New game started"})
}

type lineWinRequest struct {
	Grid       int    `json:"grid"`
	RowInGrid  int    `json:"rowInGrid"`
	PlayerName string `json:"playerName"`
}

func (s *Server) handleLineWin(w http.ResponseWriter, r *http.Request) {
	var req lineWinRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondError(w, http.StatusBadRequest, "invalid request body")
		return
	}
	if req.Grid < 0 || req.Grid > 4 || req.RowInGrid < 0 || req.RowInGrid > 2 {
		respondError(w, http.StatusBadRequest, "grid must be 0-4 and rowInGrid 0-2")
		return
	}

	s.service.LineWin(r.Context(), req.Grid, req.RowInGrid, req.PlayerName)
	respondJSON(w, http.StatusOK, map[string]string{"message": "Line win announced"})
}

type fullHouseWinRequest struct {
	Grid       int    `json:"grid"`
	PlayerName string `json:"playerName"`
}

func (s *Server) handleFullHouseWin(w http.ResponseWriter, r *http.Request) {
	var req fullHouseWinRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondError(w, http.StatusBadRequest, "invalid request body")
		return
	}
	if req.Grid < 0 || req.Grid > 4 {
		respondError(w, http.StatusBadRequest, "grid must be 0-4")
		return
	}

	s.service.FullHouseWin(r.Context(), req.Grid, req.PlayerName)
	respondJSON(w, http.StatusOK, map[string]string{"message": "Full house win announced"})
}

// Health check
func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	respondJSON(w, http.StatusOK, map[string]interface{}{
		"status":      "healthy",
		"connections": s.hub.ClientCount(),
	})
}

// WebSocket Handler
func (s *Server) handleWebSocket(w http.ResponseWriter, r *http.Request) {
	s.hub.ServeWS(w, r)
}
