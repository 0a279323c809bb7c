package mcp

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"sort"
	"strings"
	"time"

	"github.com/mark3labs/mcp-go/mcp"
	"github.com/mark3labs/mcp-go/server"
	"github.com/wricardo/circuit-lab/circuit/engine"
	"github.com/wricardo/circuit-lab/circuit/service"
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
		"Circuit Lab",
		"1.0.0",
		server.WithToolCapabilities(true),
		server.WithInstructions(`Circuit Lab - MCP Interface

This is a thin client that proxies all requests to the REST API server.

LAB OBJECTIVE:
Build electrical circuits on a grid to complete the lab's challenges. Place
components, wire their terminals together, and close switches until the target
components light up.

AVAILABLE TOOLS:
- circuit_state: Get current circuit state (components, wires, powered set)
- place_component: Place a component on the grid (position snaps to the grid)
- move_component: Move an existing component
- toggle_switch: Open or close a switch
- connect_wire: Connect two component terminals with a wire
- disconnect_wire: Remove a wire
- remove_component: Remove a component (its wires are removed too)
- hit_terminal: Find which terminal, if any, is near a point
- challenges: List challenges and their pass/fail status
- solve_challenge: Search switch positions that satisfy a challenge
- reset_circuit: Reset to the lab's starting circuit
- action_history: View past actions
- create_session: Create new lab session
- get_session: Get session details
- list_sessions: List all active sessions
- list_configs: List available lab configurations
- lab_instructions: Get comprehensive lab instructions and rules

NOTE: A circuit conducts only when a closed loop runs from a battery's pos
terminal back to its neg terminal. Dangling wires carry no power.`),
	)

	// Register all tools
	c.registerTools()
}

// registerTools registers all MCP tools
func (c *Client) registerTools() {
	// Session management
	c.mcpServer.AddTool(mcp.Tool{
		Name:        "create_session",
		Description: "Create a new lab session with optional config selection",
		InputSchema: mcp.ToolInputSchema{
			Type: "object",
			Properties: map[string]interface{}{
				"config_name": map[string]interface{}{
					"type":        "string",
					"description": "Name of the lab config to use (optional)",
				},
			},
		},
	}, c.handleCreateSession)

	c.mcpServer.AddTool(mcp.Tool{
		Name:        "list_sessions",
		Description: "List all active lab sessions",
		InputSchema: mcp.ToolInputSchema{
			Type:       "object",
			Properties: map[string]interface{}{},
		},
	}, c.handleListSessions)

	c.mcpServer.AddTool(mcp.Tool{
		Name:        "get_session",
		Description: "Get details of a specific session",
		InputSchema: mcp.ToolInputSchema{
			Type: "object",
			Properties: map[string]interface{}{
				"session_id": map[string]interface{}{
					"type":        "string",
					"description": "Session ID to retrieve",
				},
			},
			Required: []string{"session_id"},
		},
	}, c.handleGetSession)

	// Circuit operations
	c.mcpServer.AddTool(mcp.Tool{
		Name:        "circuit_state",
		Description: "Get the current circuit state",
		InputSchema: mcp.ToolInputSchema{
			Type: "object",
			Properties: map[string]interface{}{
				"session_id": map[string]interface{}{
					"type":        "string",
					"description": "Session ID",
				},
			},
			Required: []string{"session_id"},
		},
	}, c.handleCircuitState)

	c.mcpServer.AddTool(mcp.Tool{
		Name:        "place_component",
		Description: "Place a new component on the grid. The position snaps to the nearest grid point.",
		InputSchema: mcp.ToolInputSchema{
			Type: "object",
			Properties: map[string]interface{}{
				"session_id": map[string]interface{}{
					"type":        "string",
					"description": "Session ID",
				},
				"type": map[string]interface{}{
					"type":        "string",
					"enum":        []string{"battery", "bulb", "switch", "motor", "buzzer", "wire_node"},
					"description": "Component type to place",
				},
				"x": map[string]interface{}{
					"type":        "number",
					"description": "X coordinate of the component's top-left corner",
				},
				"y": map[string]interface{}{
					"type":        "number",
					"description": "Y coordinate of the component's top-left corner",
				},
			},
			Required: []string{"session_id", "type", "x", "y"},
		},
	}, c.handlePlaceComponent)

	c.mcpServer.AddTool(mcp.Tool{
		Name:        "move_component",
		Description: "Move an existing component to a new position (snaps to the grid, wires follow)",
		InputSchema: mcp.ToolInputSchema{
			Type: "object",
			Properties: map[string]interface{}{
				"session_id": map[string]interface{}{
					"type":        "string",
					"description": "Session ID",
				},
				"component_id": map[string]interface{}{
					"type":        "integer",
					"description": "ID of the component to move",
				},
				"x": map[string]interface{}{
					"type":        "number",
					"description": "New X coordinate",
				},
				"y": map[string]interface{}{
					"type":        "number",
					"description": "New Y coordinate",
				},
			},
			Required: []string{"session_id", "component_id", "x", "y"},
		},
	}, c.handleMoveComponent)

	c.mcpServer.AddTool(mcp.Tool{
		Name:        "toggle_switch",
		Description: "Toggle a switch between open and closed",
		InputSchema: mcp.ToolInputSchema{
			Type: "object",
			Properties: map[string]interface{}{
				"session_id": map[string]interface{}{
					"type":        "string",
					"description": "Session ID",
				},
				"component_id": map[string]interface{}{
					"type":        "integer",
					"description": "ID of the switch to toggle",
				},
			},
			Required: []string{"session_id", "component_id"},
		},
	}, c.handleToggleSwitch)

	c.mcpServer.AddTool(mcp.Tool{
		Name:        "connect_wire",
		Description: "Connect two component terminals with a wire. Terminals are battery: neg/pos, two-terminal components: left/right, wire_node: a/b/c/d.",
		InputSchema: mcp.ToolInputSchema{
			Type: "object",
			Properties: map[string]interface{}{
				"session_id": map[string]interface{}{
					"type":        "string",
					"description": "Session ID",
				},
				"from_component": map[string]interface{}{
					"type":        "integer",
					"description": "ID of the first component",
				},
				"from_terminal": map[string]interface{}{
					"type":        "string",
					"description": "Terminal name on the first component",
				},
				"to_component": map[string]interface{}{
					"type":        "integer",
					"description": "ID of the second component",
				},
				"to_terminal": map[string]interface{}{
					"type":        "string",
					"description": "Terminal name on the second component",
				},
			},
			Required: []string{"session_id", "from_component", "from_terminal", "to_component", "to_terminal"},
		},
	}, c.handleConnectWire)

	c.mcpServer.AddTool(mcp.Tool{
		Name:        "disconnect_wire",
		Description: "Remove a wire from the circuit",
		InputSchema: mcp.ToolInputSchema{
			Type: "object",
			Properties: map[string]interface{}{
				"session_id": map[string]interface{}{
					"type":        "string",
					"description": "Session ID",
				},
				"wire_id": map[string]interface{}{
					"type":        "integer",
					"description": "ID of the wire to remove",
				},
			},
			Required: []string{"session_id", "wire_id"},
		},
	}, c.handleDisconnectWire)

	c.mcpServer.AddTool(mcp.Tool{
		Name:        "remove_component",
		Description: "Remove a component from the circuit. All wires touching it are removed too.",
		InputSchema: mcp.ToolInputSchema{
			Type: "object",
			Properties: map[string]interface{}{
				"session_id": map[string]interface{}{
					"type":        "string",
					"description": "Session ID",
				},
				"component_id": map[string]interface{}{
					"type":        "integer",
					"description": "ID of the component to remove",
				},
			},
			Required: []string{"session_id", "component_id"},
		},
	}, c.handleRemoveComponent)

	c.mcpServer.AddTool(mcp.Tool{
		Name:        "hit_terminal",
		Description: "Find which terminal, if any, lies near the given point. Useful for checking where a wire would attach.",
		InputSchema: mcp.ToolInputSchema{
			Type: "object",
			Properties: map[string]interface{}{
				"session_id": map[string]interface{}{
					"type":        "string",
					"description": "Session ID",
				},
				"x": map[string]interface{}{
					"type":        "number",
					"description": "X coordinate to test",
				},
				"y": map[string]interface{}{
					"type":        "number",
					"description": "Y coordinate to test",
				},
			},
			Required: []string{"session_id", "x", "y"},
		},
	}, c.handleHitTerminal)

	c.mcpServer.AddTool(mcp.Tool{
		Name:        "challenges",
		Description: "List the lab's challenges and whether each currently passes",
		InputSchema: mcp.ToolInputSchema{
			Type: "object",
			Properties: map[string]interface{}{
				"session_id": map[string]interface{}{
					"type":        "string",
					"description": "Session ID",
				},
			},
			Required: []string{"session_id"},
		},
	}, c.handleChallenges)

	c.mcpServer.AddTool(mcp.Tool{
		Name:        "solve_challenge",
		Description: "Search over switch open/closed assignments for one that satisfies a challenge. Does not modify the circuit.",
		InputSchema: mcp.ToolInputSchema{
			Type: "object",
			Properties: map[string]interface{}{
				"session_id": map[string]interface{}{
					"type":        "string",
					"description": "Session ID",
				},
				"challenge_id": map[string]interface{}{
					"type":        "string",
					"description": "ID of the challenge to solve",
				},
			},
			Required: []string{"session_id", "challenge_id"},
		},
	}, c.handleSolveChallenge)

	c.mcpServer.AddTool(mcp.Tool{
		Name:        "reset_circuit",
		Description: "Reset the circuit to the lab's starting layout",
		InputSchema: mcp.ToolInputSchema{
			Type: "object",
			Properties: map[string]interface{}{
				"session_id": map[string]interface{}{
					"type":        "string",
					"description": "Session ID",
				},
			},
			Required: []string{"session_id"},
		},
	}, c.handleReset)

	c.mcpServer.AddTool(mcp.Tool{
		Name:        "action_history",
		Description: "Get the action history for a session",
		InputSchema: mcp.ToolInputSchema{
			Type: "object",
			Properties: map[string]interface{}{
				"session_id": map[string]interface{}{
					"type":        "string",
					"description": "Session ID",
				},
				"page": map[string]interface{}{
					"type":        "integer",
					"description": "Page number",
				},
				"limit": map[string]interface{}{
					"type":        "integer",
					"description": "Items per page",
				},
			},
			Required: []string{"session_id"},
		},
	}, c.handleActionHistory)

	c.mcpServer.AddTool(mcp.Tool{
		Name:        "list_configs",
		Description: "List available lab configurations",
		InputSchema: mcp.ToolInputSchema{
			Type:       "object",
			Properties: map[string]interface{}{},
		},
	}, c.handleListConfigs)

	c.mcpServer.AddTool(mcp.Tool{
		Name:        "lab_instructions",
		Description: "Get comprehensive lab instructions and rules",
		InputSchema: mcp.ToolInputSchema{
			Type:       "object",
			Properties: map[string]interface{}{},
		},
	}, c.handleLabInstructions)
}

// GetMCPServer returns the underlying MCP server for serving
func (c *Client) GetMCPServer() *server.MCPServer {
	return c.mcpServer
}

// Helper methods for API calls

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

func (c *Client) handleCreateSession(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	args := request.Params.Arguments.(map[string]interface{})
	configName, _ := args["config_name"].(string)

	body := map[string]string{}
	if configName != "" {
		body["config_name"] = configName
	}

	var session service.SessionInfo
	err := c.apiCall("POST", "/api/sessions", body, &session)
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}

	result := fmt.Sprintf("Created session: %s\nConfig: %s\n", session.ID, session.ConfigName)
	return mcp.NewToolResultText(result), nil
}

func (c *Client) handleListSessions(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	var response struct {
		Count    int                   `json:"count"`
		Sessions []service.SessionInfo `json:"sessions"`
	}

	err := c.apiCall("GET", "/api/sessions", nil, &response)
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}

	result := fmt.Sprintf("Active Sessions (%d):\n\n", response.Count)
	for _, s := range response.Sessions {
		result += fmt.Sprintf("- %s (Config: %s, Created: %s)\n",
			s.ID, s.ConfigName, s.CreatedAt.Format("15:04:05"))
	}

	return mcp.NewToolResultText(result), nil
}

func (c *Client) handleGetSession(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	args := request.Params.Arguments.(map[string]interface{})
	sessionID, _ := args["session_id"].(string)

	var session service.SessionInfo
	err := c.apiCall("GET", fmt.Sprintf("/api/sessions/%s", sessionID), nil, &session)
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}

	result := formatSessionInfo(&session)
	return mcp.NewToolResultText(result), nil
}

func (c *Client) handleCircuitState(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	args := request.Params.Arguments.(map[string]interface{})
	sessionID, _ := args["session_id"].(string)

	var state engine.CircuitState
	err := c.apiCall("GET", fmt.Sprintf("/api/sessions/%s/state", sessionID), nil, &state)
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}

	result := formatCircuitState(&state)
	return mcp.NewToolResultText(result), nil
}

func (c *Client) handlePlaceComponent(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	args := request.Params.Arguments.(map[string]interface{})
	sessionID, _ := args["session_id"].(string)
	componentType, _ := args["type"].(string)
	x, _ := args["x"].(float64)
	y, _ := args["y"].(float64)

	body := map[string]interface{}{
		"type": componentType,
		"x":    x,
		"y":    y,
	}

	var result service.MutationResult
	err := c.apiCall("POST", fmt.Sprintf("/api/sessions/%s/components", sessionID), body, &result)
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}

	response := formatMutationResult(&result)
	return mcp.NewToolResultText(response), nil
}

func (c *Client) handleMoveComponent(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	args := request.Params.Arguments.(map[string]interface{})
	sessionID, _ := args["session_id"].(string)
	componentID := intArg(args, "component_id")
	x, _ := args["x"].(float64)
	y, _ := args["y"].(float64)

	body := map[string]interface{}{
		"x": x,
		"y": y,
	}

	var result service.MutationResult
	err := c.apiCall("POST", fmt.Sprintf("/api/sessions/%s/components/%d/move", sessionID, componentID), body, &result)
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}

	response := formatMutationResult(&result)
	return mcp.NewToolResultText(response), nil
}

func (c *Client) handleToggleSwitch(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	args := request.Params.Arguments.(map[string]interface{})
	sessionID, _ := args["session_id"].(string)
	componentID := intArg(args, "component_id")

	var result service.MutationResult
	err := c.apiCall("POST", fmt.Sprintf("/api/sessions/%s/components/%d/toggle", sessionID, componentID), nil, &result)
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}

	response := formatMutationResult(&result)
	return mcp.NewToolResultText(response), nil
}

func (c *Client) handleConnectWire(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	args := request.Params.Arguments.(map[string]interface{})
	sessionID, _ := args["session_id"].(string)
	fromComponent := intArg(args, "from_component")
	fromTerminal, _ := args["from_terminal"].(string)
	toComponent := intArg(args, "to_component")
	toTerminal, _ := args["to_terminal"].(string)

	body := map[string]interface{}{
		"from": map[string]interface{}{
			"component_id": fromComponent,
			"terminal":     fromTerminal,
		},
		"to": map[string]interface{}{
			"component_id": toComponent,
			"terminal":     toTerminal,
		},
	}

	var result service.MutationResult
	err := c.apiCall("POST", fmt.Sprintf("/api/sessions/%s/wires", sessionID), body, &result)
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}

	response := formatMutationResult(&result)
	return mcp.NewToolResultText(response), nil
}

func (c *Client) handleDisconnectWire(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	args := request.Params.Arguments.(map[string]interface{})
	sessionID, _ := args["session_id"].(string)
	wireID := intArg(args, "wire_id")

	var result service.MutationResult
	err := c.apiCall("DELETE", fmt.Sprintf("/api/sessions/%s/wires/%d", sessionID, wireID), nil, &result)
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}

	response := formatMutationResult(&result)
	return mcp.NewToolResultText(response), nil
}

func (c *Client) handleRemoveComponent(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	args := request.Params.Arguments.(map[string]interface{})
	sessionID, _ := args["session_id"].(string)
	componentID := intArg(args, "component_id")

	var result service.MutationResult
	err := c.apiCall("DELETE", fmt.Sprintf("/api/sessions/%s/components/%d", sessionID, componentID), nil, &result)
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}

	response := formatMutationResult(&result)
	return mcp.NewToolResultText(response), nil
}

func (c *Client) handleHitTerminal(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	args := request.Params.Arguments.(map[string]interface{})
	sessionID, _ := args["session_id"].(string)
	x, _ := args["x"].(float64)
	y, _ := args["y"].(float64)

	var hit service.HitResult
	err := c.apiCall("GET", fmt.Sprintf("/api/sessions/%s/hit-terminal?x=%g&y=%g", sessionID, x, y), nil, &hit)
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}

	if !hit.Hit {
		return mcp.NewToolResultText(fmt.Sprintf("No terminal within reach of (%g, %g)", x, y)), nil
	}

	result := fmt.Sprintf("Terminal hit at (%g, %g):\nComponent: %d\nTerminal: %s",
		x, y, hit.Terminal.ComponentID, hit.Terminal.Terminal)
	if hit.Position != nil {
		result += fmt.Sprintf("\nTerminal position: (%g, %g)", hit.Position.X, hit.Position.Y)
	}
	return mcp.NewToolResultText(result), nil
}

func (c *Client) handleChallenges(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	args := request.Params.Arguments.(map[string]interface{})
	sessionID, _ := args["session_id"].(string)

	var statuses []engine.ChallengeStatus
	err := c.apiCall("GET", fmt.Sprintf("/api/sessions/%s/challenges", sessionID), nil, &statuses)
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}

	result := formatChallenges(statuses)
	return mcp.NewToolResultText(result), nil
}

func (c *Client) handleSolveChallenge(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	args := request.Params.Arguments.(map[string]interface{})
	sessionID, _ := args["session_id"].(string)
	challengeID, _ := args["challenge_id"].(string)

	var solve service.SolveResult
	err := c.apiCall("POST", fmt.Sprintf("/api/sessions/%s/challenges/%s/solve", sessionID, challengeID), nil, &solve)
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}

	result := formatSolveResult(&solve)
	return mcp.NewToolResultText(result), nil
}

func (c *Client) handleReset(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	args := request.Params.Arguments.(map[string]interface{})
	sessionID, _ := args["session_id"].(string)

	var state engine.CircuitState
	err := c.apiCall("POST", fmt.Sprintf("/api/sessions/%s/reset", sessionID), nil, &state)
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}

	result := fmt.Sprintf("Circuit reset to starting layout\n\n%s", formatCircuitState(&state))
	return mcp.NewToolResultText(result), nil
}

func (c *Client) handleActionHistory(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	args := request.Params.Arguments.(map[string]interface{})
	sessionID, _ := args["session_id"].(string)

	params := "?"
	if page, ok := args["page"].(float64); ok {
		params += fmt.Sprintf("page=%d&", int(page))
	}
	if limit, ok := args["limit"].(float64); ok {
		params += fmt.Sprintf("limit=%d&", int(limit))
	}

	var history service.HistoryResponse
	err := c.apiCall("GET", fmt.Sprintf("/api/sessions/%s/history%s", sessionID, params), nil, &history)
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}

	result := formatHistory(&history)
	return mcp.NewToolResultText(result), nil
}

func (c *Client) handleListConfigs(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	var configs []service.ConfigInfo
	err := c.apiCall("GET", "/api/configs", nil, &configs)
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}

	result := "Available Configurations:\n\n"
	for _, config := range configs {
		result += fmt.Sprintf("• %s\n  %s\n  Challenges: %d, Starting components: %d\n\n",
			config.Name, config.Description, config.Challenges, config.Starting)
	}

	return mcp.NewToolResultText(result), nil
}

func (c *Client) handleLabInstructions(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	instructions := `🔌 Circuit Lab - Complete Instructions

LAB OBJECTIVE:
Build working electrical circuits on a grid until every challenge in the lab
passes. A challenge typically asks for a component, or several, to be powered.

COMPONENT TYPES AND TERMINALS:
• battery   - terminals: neg, pos. The power source. Current flows out of pos
  and must return to neg of the SAME battery for the loop to conduct.
• bulb      - terminals: left, right. Lights up when powered.
• switch    - terminals: left, right. Conducts only when closed. Use
  toggle_switch to open/close it.
• motor     - terminals: left, right. Spins when powered.
• buzzer    - terminals: left, right. Sounds when powered.
• wire_node - terminals: a, b, c, d. A junction: all four terminals are
  internally connected. Use it to branch a circuit.

CIRCUIT RULES:
1. Power flows from a battery's pos terminal through wires and components
   back to that battery's neg terminal. Only complete loops conduct.
2. A battery never conducts internally from neg to pos: the loop must run
   through the external circuit.
3. Open switches break the loop. Closed switches conduct.
4. Wires attached to nothing (dangling branches) carry no power but do not
   break the rest of the circuit.
5. Each battery powers its own loop. Circuits with several batteries are
   evaluated per battery and the powered sets are combined.

GRID AND PLACEMENT:
• Positions snap to a fixed grid; pass any coordinates and the engine rounds
  to the nearest grid point.
• Each component occupies a 2x1 bounding box with terminals on its edges.
• hit_terminal tells you which terminal is near a point - useful before
  connecting wires by coordinates.

BUILDING A SIMPLE CIRCUIT:
1. place_component battery, then place_component bulb
2. connect_wire from the battery's pos to the bulb's left
3. connect_wire from the bulb's right to the battery's neg
4. The bulb's component ID now appears in the powered set

COMMON MISTAKES:
- ❌ Wiring pos directly to neg of the same battery (short circuit loop
  that powers nothing useful)
- ❌ Forgetting the return wire back to neg - a one-way path never conducts
- ❌ Leaving a switch open and expecting the loop to conduct
- ❌ Connecting a terminal to itself (rejected as a self loop)
- ❌ Adding the same wire twice (rejected as a duplicate, in either direction)

CHALLENGES:
- Use the challenges tool to see what each lab asks for and what currently
  passes.
- solve_challenge searches switch open/closed combinations for one that
  satisfies a challenge without changing your circuit. If it reports
  unsolvable, the circuit itself needs rewiring, not just different switch
  positions.

PALETTE LIMITS:
- Some labs limit how many components of each type you may place. Placing
  beyond the limit is rejected. remove_component frees the slot again.

SESSION MANAGEMENT:
- Multiple lab sessions can run simultaneously
- Each session has a unique 4-character ID
- Sessions maintain independent circuit state and configuration
- reset_circuit restores the lab's starting layout but keeps the history

Good luck in the lab! 🔋💡`

	return mcp.NewToolResultText(instructions), nil
}

// intArg reads an integer tool argument, which arrives as a JSON number.
func intArg(args map[string]interface{}, key string) int {
	if v, ok := args[key].(float64); ok {
		return int(v)
	}
	return 0
}

// Formatting helpers

func formatSessionInfo(session *service.SessionInfo) string {
	return fmt.Sprintf("Session: %s\nConfig: %s\nCreated: %s\n\n%s",
		session.ID, session.ConfigName,
		session.CreatedAt.Format("2006-01-02 15:04:05"),
		formatCircuitState(session.CircuitState))
}

func formatCircuitState(state *engine.CircuitState) string {
	if state == nil {
		return "No circuit state available"
	}

	powered := make(map[int]bool, len(state.Powered))
	for _, id := range state.Powered {
		powered[id] = true
	}

	var result strings.Builder
	result.WriteString(fmt.Sprintf("Config: %s | Components: %d | Wires: %d | Powered: %d | Actions: %d\n\n",
		state.ConfigName, len(state.Components), len(state.Wires), len(state.Powered), state.TotalActions))

	if len(state.Components) == 0 {
		result.WriteString("(empty circuit)\n")
	} else {
		result.WriteString("Components:\n")
		components := make([]engine.Component, len(state.Components))
		copy(components, state.Components)
		sort.Slice(components, func(i, j int) bool { return components[i].ID < components[j].ID })
		for _, comp := range components {
			marker := " "
			if powered[comp.ID] {
				marker = "⚡"
			}
			line := fmt.Sprintf("%s #%d %s at (%g, %g)", marker, comp.ID, comp.Type, comp.X, comp.Y)
			if comp.Type.HasState() {
				if comp.State {
					line += " [closed]"
				} else {
					line += " [open]"
				}
			}
			result.WriteString(line + "\n")
		}
	}

	if len(state.Wires) > 0 {
		result.WriteString("\nWires:\n")
		for _, wire := range state.Wires {
			result.WriteString(fmt.Sprintf("  #%d  %d.%s ↔ %d.%s\n",
				wire.ID, wire.From.ComponentID, wire.From.Terminal, wire.To.ComponentID, wire.To.Terminal))
		}
	}

	if state.Message != "" {
		result.WriteString(fmt.Sprintf("\nMessage: %s", state.Message))
	}

	return result.String()
}

func formatMutationResult(result *service.MutationResult) string {
	response := ""
	if result.Success {
		response = "✓ Action successful\n"
	} else {
		response = "✗ Action failed\n"
	}

	if result.Component != nil {
		c := result.Component
		response += fmt.Sprintf("Component: #%d %s at (%g, %g)\n", c.ID, c.Type, c.X, c.Y)
	}
	if result.Wire != nil {
		w := result.Wire
		response += fmt.Sprintf("Wire: #%d  %d.%s ↔ %d.%s\n",
			w.ID, w.From.ComponentID, w.From.Terminal, w.To.ComponentID, w.To.Terminal)
	}
	if result.Message != "" {
		response += fmt.Sprintf("Message: %s\n", result.Message)
	}

	if len(result.Events) > 0 {
		response += "Events:\n"
		for _, event := range result.Events {
			response += fmt.Sprintf("- %s: %s\n", event.Type, event.Message)
		}
	}

	if len(result.Challenges) > 0 {
		response += "\n" + formatChallenges(result.Challenges)
	}

	response += "\n" + formatCircuitState(result.CircuitState)
	return response
}

func formatChallenges(statuses []engine.ChallengeStatus) string {
	if len(statuses) == 0 {
		return "This lab has no challenges."
	}

	passed := 0
	var b strings.Builder
	for _, s := range statuses {
		mark := "✗"
		if s.Passed {
			mark = "✓"
			passed++
		}
		b.WriteString(fmt.Sprintf("%s %s — %s\n", mark, s.Title, s.Description))
	}

	header := fmt.Sprintf("Challenges (%d/%d passed):\n", passed, len(statuses))
	return header + b.String()
}

func formatSolveResult(solve *service.SolveResult) string {
	if !solve.Solvable {
		msg := solve.Message
		if msg == "" {
			msg = "No switch assignment satisfies this challenge. The circuit needs rewiring."
		}
		return fmt.Sprintf("Challenge %q: unsolvable (%d assignments tried)\n%s",
			solve.ChallengeID, solve.Tried, msg)
	}

	var b strings.Builder
	b.WriteString(fmt.Sprintf("Challenge %q: solvable (%d assignments tried)\n", solve.ChallengeID, solve.Tried))
	if len(solve.Switches) == 0 {
		b.WriteString("The circuit already satisfies it without touching any switch.\n")
		return b.String()
	}

	ids := make([]int, 0, len(solve.Switches))
	for id := range solve.Switches {
		ids = append(ids, id)
	}
	sort.Ints(ids)

	b.WriteString("Switch positions:\n")
	for _, id := range ids {
		pos := "open"
		if solve.Switches[id] {
			pos = "closed"
		}
		b.WriteString(fmt.Sprintf("- switch #%d: %s\n", id, pos))
	}
	return b.String()
}

func formatHistory(history *service.HistoryResponse) string {
	result := fmt.Sprintf("Action History (Page %d/%d) — Total: %d\n\n",
		history.Page, history.TotalPages, history.TotalActions)

	if len(history.Actions) == 0 {
		return result + "(no actions on this page)"
	}

	for _, action := range history.Actions {
		status := "✓"
		if !action.Success {
			status = "✗"
		}
		line := fmt.Sprintf("%d. %s %s", action.ActionNumber, action.Action, status)
		if action.Detail != "" {
			line += " — " + action.Detail
		}
		result += line + "\n"
	}

	return result
}
