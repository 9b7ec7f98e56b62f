package mcp

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"github.com/mark3labs/mcp-go/mcp"
	"github.com/mark3labs/mcp-go/server"

	"github.com/masterbraila/BingoOnline/game/service"
	"github.com/masterbraila/BingoOnline/game/ticket"
)

// Client is a thin MCP client that proxies to the REST API
type Client struct {
	baseURL    string
	httpClient *http.Client
	mcpServer  *server.MCPServer
}

// NewClient creates a new MCP client that calls the REST API
func NewClient(baseURL string) *Client {
	c := &Client{
		baseURL: baseURL,
		httpClient: &http.Client{
			Timeout: 10 * time.Second,
		},
	}

	c.initMCPServer()
	return c
}

// initMCPServer initializes the MCP server with all tools
func (c *Client) initMCPServer() {
	c.mcpServer = server.NewMCPServer(
		"Bingo Online Coordinator",
		"1.0.0",
		server.WithToolCapabilities(true),
		server.WithInstructions(`Bingo Online Coordinator - MCP Interface

This is a thin client that proxies all requests to the REST API server.

You act as the bingo caller (admin). Players connect over WebSocket, join a
room, and wait for tickets. Your job:

1. list_users - see who is connected
2. generate_ticket - deal a ticket to a player (by connection ID)
3. call_number - draw the next number (broadcast to everyone)
4. called_numbers - review what has been drawn this round
5. announce_line_win / announce_full_house_win - relay verified win claims
6. new_game - start a fresh round (players discard round-local state)
7. reset_called_numbers - clear the board without starting a new game

Numbers run 1-90 with no repeats within a round; call_number reports when
the round is exhausted. Tickets are 15x9 strips (5 sub-grids of 3 rows),
5 numbers per row.`),
	)

	// Register all tools
	c.registerTools()
}

// registerTools registers all MCP tools
func (c *Client) registerTools() {
	c.mcpServer.AddTool(mcp.Tool{
		Name:        "list_users",
		Description: "List all connected players with their connection IDs",
		InputSchema: mcp.ToolInputSchema{
			Type:       "object",
			Properties: map[string]interface{}{},
		},
	}, c.handleListUsers)

	c.mcpServer.AddTool(mcp.Tool{
		Name:        "get_user_ticket",
		Description: "Get the ticket currently issued to a player",
		InputSchema: mcp.ToolInputSchema{
			Type: "object",
			Properties: map[string]interface{}{
				"connection_id": map[string]interface{}{
					"type":        "string",
					"description": "Connection ID of the player",
				},
			},
			Required: []string{"connection_id"},
		},
	}, c.handleGetUserTicket)

	c.mcpServer.AddTool(mcp.Tool{
		Name:        "generate_ticket",
		Description: "Generate a fresh ticket and send it to a player",
		InputSchema: mcp.ToolInputSchema{
			Type: "object",
			Properties: map[string]interface{}{
				"connection_id": map[string]interface{}{
					"type":        "string",
					"description": "Connection ID of the player to receive the ticket",
				},
			},
			Required: []string{"connection_id"},
		},
	}, c.handleGenerateTicket)

	c.mcpServer.AddTool(mcp.Tool{
		Name:        "call_number",
		Description: "Draw the next random number and broadcast it to all players",
		InputSchema: mcp.ToolInputSchema{
			Type:       "object",
			Properties: map[string]interface{}{},
		},
	}, c.handleCallNumber)

	c.mcpServer.AddTool(mcp.Tool{
		Name:        "called_numbers",
		Description: "List the numbers called so far this round",
		InputSchema: mcp.ToolInputSchema{
			Type:       "object",
			Properties: map[string]interface{}{},
		},
	}, c.handleCalledNumbers)

	c.mcpServer.AddTool(mcp.Tool{
		Name:        "reset_called_numbers",
		Description: "Clear the called numbers without starting a new game",
		InputSchema: mcp.ToolInputSchema{
			Type:       "object",
			Properties: map[string]interface{}{},
		},
	}, c.handleResetCalledNumbers)

	c.mcpServer.AddTool(mcp.Tool{
		Name:        "new_game",
		Description: "Start a new game: called numbers are cleared and all players discard round-local state",
		InputSchema: mcp.ToolInputSchema{
			Type:       "object",
			Properties: map[string]interface{}{},
		},
	}, c.handleNewGame)

	c.mcpServer.AddTool(mcp.Tool{
		Name:        "announce_line_win",
		Description: "Announce a verified line win to all players",
		InputSchema: mcp.ToolInputSchema{
			Type: "object",
			Properties: map[string]interface{}{
				"grid": map[string]interface{}{
					"type":        "number",
					"description": "Sub-ticket index, 0-4",
				},
				"row_in_grid": map[string]interface{}{
					"type":        "number",
					"description": "Row within the sub-ticket, 0-2",
				},
				"player_name": map[string]interface{}{
					"type":        "string",
					"description": "Name of the winning player",
				},
			},
			Required: []string{"grid", "row_in_grid", "player_name"},
		},
	}, c.handleAnnounceLineWin)

	c.mcpServer.AddTool(mcp.Tool{
		Name:        "announce_full_house_win",
		Description: "Announce a verified full house win to all players",
		InputSchema: mcp.ToolInputSchema{
			Type: "object",
			Properties: map[string]interface{}{
				"grid": map[string]interface{}{
					"type":        "number",
					"description": "Sub-ticket index, 0-4",
				},
				"player_name": map[string]interface{}{
					"type":        "string",
					"description": "Name of the winning player",
				},
			},
			Required: []string{"grid", "player_name"},
		},
	}, c.handleAnnounceFullHouseWin)
}

// GetMCPServer returns the underlying MCP server for stdio or HTTP serving.
func (c *Client) GetMCPServer() *server.MCPServer {
	return c.mcpServer
}

// apiCall performs an HTTP request against the REST API and decodes the
// JSON response into result when non-nil.
func (c *Client) apiCall(method, path string, body interface{}, result interface{}) error {
	url := c.baseURL + path

	var reqBody io.Reader
	if body != nil {
		data, err := json.Marshal(body)
		if err != nil {
			return err
		}
		reqBody = bytes.NewBuffer(data)
	}

	req, err := http.NewRequest(method, url, reqBody)
	if err != nil {
		return err
	}

	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return err
	}
	defer resp.Body.Close()

	if resp.StatusCode >= 400 {
		var errResp map[string]string
		json.NewDecoder(resp.Body).Decode(&errResp)
		if msg, ok := errResp["error"]; ok {
			return fmt.Errorf("%s", msg)
		}
		return fmt.Errorf("API error: %d", resp.StatusCode)
	}

	if result != nil {
		return json.NewDecoder(resp.Body).Decode(result)
	}

	return nil
}

// Tool handlers

func (c *Client) handleListUsers(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	var response struct {
		Count int                `json:"count"`
		Users []service.UserInfo `json:"users"`
	}

	err := c.apiCall("GET", "/api/users", nil, &response)
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}

	if response.Count == 0 {
		return mcp.NewToolResultText("No players connected."), nil
	}

	var sb strings.Builder
	fmt.Fprintf(&sb, "Connected players (%d):\n", response.Count)
	for _, u := range response.Users {
		fmt.Fprintf(&sb, "- %s (connection: %s)\n", u.PlayerName, u.ConnectionID)
	}
	return mcp.NewToolResultText(sb.String()), nil
}

func (c *Client) handleGetUserTicket(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	args, _ := request.Params.Arguments.(map[string]interface{})
	connID, _ := args["connection_id"].(string)

	var response service.UserTicket
	err := c.apiCall("GET", "/api/users/"+connID+"/ticket", nil, &response)
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}

	if response.Ticket == nil {
		return mcp.NewToolResultText(fmt.Sprintf("No ticket issued to connection %s.", connID)), nil
	}

	return mcp.NewToolResultText(renderTicket(response.Ticket)), nil
}

func (c *Client) handleGenerateTicket(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	args, _ := request.Params.Arguments.(map[string]interface{})
	connID, _ := args["connection_id"].(string)

	var response map[string]string
	err := c.apiCall("POST", "/api/users/"+connID+"/ticket", nil, &response)
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}

	return mcp.NewToolResultText(fmt.Sprintf("Ticket generated and sent to connection %s.", connID)), nil
}

func (c *Client) handleCallNumber(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	var response struct {
		Number int `json:"number"`
	}

	err := c.apiCall("POST", "/api/numbers/call", nil, &response)
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}

	return mcp.NewToolResultText(fmt.Sprintf("Called number: %d", response.Number)), nil
}

func (c *Client) handleCalledNumbers(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	var response struct {
		Called    []int `json:"called"`
		Remaining int   `json:"remaining"`
	}

	err := c.apiCall("GET", "/api/numbers", nil, &response)
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}

	if len(response.Called) == 0 {
		return mcp.NewToolResultText("No numbers called yet this round."), nil
	}

	parts := make([]string, len(response.Called))
	for i, n := range response.Called {
		parts[i] = fmt.Sprintf("%d", n)
	}
	return mcp.NewToolResultText(fmt.Sprintf("Called (%d, %d remaining): %s",
		len(response.Called), response.Remaining, strings.Join(parts, ", "))), nil
}

func (c *Client) handleResetCalledNumbers(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	err := c.apiCall("POST", "/api/numbers/reset", nil, nil)
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}

	return mcp.NewToolResultText("Called numbers reset."), nil
}

func (c *Client) handleNewGame(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	err := c.apiCall("POST", "/api/game/new", nil, nil)
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}

	return mcp.NewToolResultText("New game started."), nil
}

func (c *Client) handleAnnounceLineWin(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	args, _ := request.Params.Arguments.(map[string]interface{})
	gridArg, _ := args["grid"].(float64)
	rowArg, _ := args["row_in_grid"].(float64)
	grid := int(gridArg)
	rowInGrid := int(rowArg)
	playerName, _ := args["player_name"].(string)

	body := map[string]interface{}{
		"grid":       grid,
		"rowInGrid":  rowInGrid,
		"playerName": playerName,
	}
	if err := c.apiCall("POST", "/api/wins/line", body, nil); err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}

	return mcp.NewToolResultText(fmt.Sprintf("Line win announced for %s (grid %d, row %d).", playerName, grid, rowInGrid)), nil
}

func (c *Client) handleAnnounceFullHouseWin(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	args, _ := request.Params.Arguments.(map[string]interface{})
	gridArg, _ := args["grid"].(float64)
	grid := int(gridArg)
	playerName, _ := args["player_name"].(string)

	body := map[string]interface{}{
		"grid":       grid,
		"playerName": playerName,
	}
	if err := c.apiCall("POST", "/api/wins/fullhouse", body, nil); err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}

	return mcp.NewToolResultText(fmt.Sprintf("Full house win announced for %s (grid %d).", playerName, grid)), nil
}

// renderTicket formats a ticket as a text grid, one sub-ticket block at a
// time, with "--" for empty cells.
func renderTicket(t *ticket.Ticket) string {
	var sb strings.Builder
	for r := 0; r < len(t.Numbers); r++ {
		if r > 0 && r%ticket.RowsPerSubTicket == 0 {
			sb.WriteString("\n")
		}
		for c := 0; c < len(t.Numbers[r]); c++ {
			if n, ok := t.NumberAt(r, c); ok {
				fmt.Fprintf(&sb, "%2d ", n)
			} else {
				sb.WriteString("-- ")
			}
		}
		sb.WriteString("\n")
	}
	return sb.String()
}
