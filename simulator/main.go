// Command simulator plays a complete bingo game against a running server:
// it connects N players over WebSocket, has the admin deal tickets over the
// REST API, then calls numbers until a player completes a sub-ticket,
// claiming line and full-house wins along the way. Useful as an end-to-end
// smoke test of the coordinator.
package main

import (
	"bytes"
	"encoding/json"
	"flag"
	"fmt"
	"io"
	"log"
	"net/http"
	"net/url"
	"strings"
	"sync"
	"time"

	"github.com/gorilla/websocket"

	"github.com/masterbraila/BingoOnline/game/ticket"
)

type serverEvent struct {
	Event string          `json:"event"`
	Data  json.RawMessage `json:"data"`
}

type userInfo struct {
	ConnectionID string `json:"connectionId"`
	PlayerName   string `json:"playerName"`
}

// player is one simulated participant: a websocket connection, its ticket,
// and the numbers it has seen called.
type player struct {
	name string
	conn *websocket.Conn

	mu            sync.Mutex
	ticket        *ticket.Ticket
	called        map[int]bool
	linesClaimed  map[string]bool
	fullHouseWon  bool
}

func dialPlayer(baseURL, name string) (*player, error) {
	u, err := url.Parse(baseURL)
	if err != nil {
		return nil, err
	}
	scheme := "ws"
	if u.Scheme == "https" {
		scheme = "wss"
	}
	wsURL := fmt.Sprintf("%s://%s/ws", scheme, u.Host)

	conn, _, err := websocket.DefaultDialer.Dial(wsURL, nil)
	if err != nil {
		return nil, fmt.Errorf("dial %s: %w", wsURL, err)
	}

	p := &player{
		name:         name,
		conn:         conn,
		called:       make(map[int]bool),
		linesClaimed: make(map[string]bool),
	}

	join := map[string]interface{}{"type": "JoinGame", "room": "default", "playerName": name}
	if err := conn.WriteJSON(join); err != nil {
		conn.Close()
		return nil, fmt.Errorf("join as %s: %w", name, err)
	}

	go p.listen()
	return p, nil
}

// listen consumes server events and updates the player's view of the game.
// Win claims go back over the same websocket connection.
func (p *player) listen() {
	for {
		var ev serverEvent
		if err := p.conn.ReadJSON(&ev); err != nil {
			return
		}

		switch ev.Event {
		case "ReceiveTicket":
			var t ticket.Ticket
			if err := json.Unmarshal(ev.Data, &t); err != nil {
				log.Printf("[%s] bad ticket payload: %v", p.name, err)
				continue
			}
			p.mu.Lock()
			p.ticket = &t
			p.called = make(map[int]bool)
			p.linesClaimed = make(map[string]bool)
			p.mu.Unlock()
			log.Printf("[%s] received ticket", p.name)

		case "NumberCalled":
			var n int
			if err := json.Unmarshal(ev.Data, &n); err != nil {
				continue
			}
			p.markNumber(n)

		case "NewGameStarted":
			p.mu.Lock()
			p.called = make(map[int]bool)
			p.linesClaimed = make(map[string]bool)
			p.mu.Unlock()

		case "CalledNumbersReset":
			p.mu.Lock()
			p.called = make(map[int]bool)
			p.mu.Unlock()

		case "LineWinAnnounced", "FullHouseWinAnnounced", "BingoCalled":
			log.Printf("[%s] saw %s: %s", p.name, ev.Event, strings.TrimSpace(string(ev.Data)))
		}
	}
}

// markNumber records a called number and claims any newly completed line or
// sub-ticket.
func (p *player) markNumber(n int) {
	p.mu.Lock()
	defer p.mu.Unlock()

	p.called[n] = true
	if p.ticket == nil {
		return
	}

	for grid := 0; grid < ticket.SubTickets; grid++ {
		gridComplete := true
		for row := 0; row < ticket.RowsPerSubTicket; row++ {
			r := grid*ticket.RowsPerSubTicket + row
			rowComplete := true
			for c := 0; c < ticket.Columns; c++ {
				num, ok := p.ticket.NumberAt(r, c)
				if ok && !p.called[num] {
					rowComplete = false
				}
			}
			if !rowComplete {
				gridComplete = false
				continue
			}

			key := fmt.Sprintf("%d/%d", grid, row)
			if !p.linesClaimed[key] {
				p.linesClaimed[key] = true
				p.send(map[string]interface{}{
					"type": "LineWin", "grid": grid, "rowInGrid": row, "playerName": p.name,
				})
				log.Printf("[%s] claimed line win (grid %d, row %d)", p.name, grid, row)
			}
		}

		if gridComplete && !p.fullHouseWon {
			p.fullHouseWon = true
			p.send(map[string]interface{}{
				"type": "FullHouseWin", "grid": grid, "playerName": p.name,
			})
			p.send(map[string]interface{}{
				"type": "CallBingo", "room": "default", "playerName": p.name,
			})
			log.Printf("[%s] claimed FULL HOUSE on grid %d", p.name, grid)
		}
	}
}

func (p *player) send(cmd map[string]interface{}) {
	if err := p.conn.WriteJSON(cmd); err != nil {
		log.Printf("[%s] write failed: %v", p.name, err)
	}
}

func (p *player) hasTicket() bool {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.ticket != nil
}

func (p *player) won() bool {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.fullHouseWon
}

// admin drives the game through the REST API.
type admin struct {
	baseURL string
	client  *http.Client
}

func (a *admin) call(method, path string, body interface{}, result interface{}) error {
	var reqBody io.Reader
	if body != nil {
		data, err := json.Marshal(body)
		if err != nil {
			return err
		}
		reqBody = bytes.NewBuffer(data)
	}

	req, err := http.NewRequest(method, a.baseURL+path, reqBody)
	if err != nil {
		return err
	}
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}

	resp, err := a.client.Do(req)
	if err != nil {
		return err
	}
	defer resp.Body.Close()

	data, _ := io.ReadAll(resp.Body)
	if resp.StatusCode >= 400 {
		return fmt.Errorf("%s %s: %s - %s", method, path, resp.Status, string(data))
	}
	if result != nil {
		return json.Unmarshal(data, result)
	}
	return nil
}

func (a *admin) listUsers() ([]userInfo, error) {
	var response struct {
		Count int        `json:"count"`
		Users []userInfo `json:"users"`
	}
	if err := a.call("GET", "/api/users", nil, &response); err != nil {
		return nil, err
	}
	return response.Users, nil
}

func main() {
	serverURL := flag.String("server", "http://localhost:8080", "Coordinator base URL")
	numPlayers := flag.Int("players", 4, "Number of simulated players")
	callDelay := flag.Duration("delay", 50*time.Millisecond, "Delay between number calls")
	flag.Parse()

	adm := &admin{baseURL: *serverURL, client: &http.Client{Timeout: 10 * time.Second}}

	// Fresh round.
	if err := adm.call("POST", "/api/game/new", nil, nil); err != nil {
		log.Fatalf("Failed to start new game: %v", err)
	}

	players := make([]*player, 0, *numPlayers)
	for i := 0; i < *numPlayers; i++ {
		p, err := dialPlayer(*serverURL, fmt.Sprintf("bot-%d", i+1))
		if err != nil {
			log.Fatalf("Failed to connect player: %v", err)
		}
		defer p.conn.Close()
		players = append(players, p)
	}

	// Wait for all joins to land, then deal tickets by connection ID.
	users := waitForUsers(adm, *numPlayers)
	for _, u := range users {
		if err := adm.call("POST", "/api/users/"+u.ConnectionID+"/ticket", nil, nil); err != nil {
			log.Fatalf("Failed to deal ticket to %s: %v", u.PlayerName, err)
		}
	}
	waitFor(func() bool {
		for _, p := range players {
			if !p.hasTicket() {
				return false
			}
		}
		return true
	}, 5*time.Second, "players to receive tickets")

	log.Printf("Dealt tickets to %d players, calling numbers...", len(players))

	// Call numbers until someone completes a sub-ticket or the round runs out.
	calls := 0
	for {
		var response struct {
			Number int `json:"number"`
		}
		err := adm.call("POST", "/api/numbers/call", nil, &response)
		if err != nil {
			log.Printf("Round exhausted after %d calls: %v", calls, err)
			break
		}
		calls++

		time.Sleep(*callDelay)

		winner := ""
		for _, p := range players {
			if p.won() {
				winner = p.name
				break
			}
		}
		if winner != "" {
			log.Printf("%s completed a full house after %d calls", winner, calls)
			break
		}
	}

	log.Printf("Game over: %d numbers called", calls)
}

func waitForUsers(adm *admin, want int) []userInfo {
	deadline := time.Now().Add(5 * time.Second)
	for time.Now().Before(deadline) {
		users, err := adm.listUsers()
		if err == nil && len(users) >= want {
			return users
		}
		time.Sleep(100 * time.Millisecond)
	}
	log.Fatalf("Timed out waiting for %d players to join", want)
	return nil
}

func waitFor(cond func() bool, timeout time.Duration, what string) {
	deadline := time.Now().Add(timeout)
	for time.Now().Before(deadline) {
		if cond() {
			return
		}
		time.Sleep(50 * time.Millisecond)
	}
	log.Fatalf("Timed out waiting for %s", what)
}
