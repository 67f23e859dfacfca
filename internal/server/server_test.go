package server

import (
	"bufio"
	"bytes"
	"encoding/json"
	"io"
	"log/slog"
	"strings"
	"testing"

	"github.com/airi103/nerine/internal/config"
)

func newTestServer(t *testing.T) *Server {
	t.Helper()
	cfg := config.Default()
	cfg.Seed = 7
	cfg.HasSeed = true
	return New(cfg, slog.New(slog.NewTextHandler(io.Discard, nil)))
}

func TestNew(t *testing.T) {
	s := New(nil, nil)
	if s == nil {
		t.Fatal("New() returned nil")
	}
	if s.cache == nil {
		t.Fatal("New() did not initialize cache")
	}
	if s.sampler == nil {
		t.Fatal("New() did not initialize sampler")
	}
	if s.cfg == nil || s.logger == nil {
		t.Fatal("New() should default config and logger")
	}
	if s.swatches.Len() != 0 {
		t.Errorf("new server palette should be empty, got %d", s.swatches.Len())
	}
}

func TestMCPRequest_Unmarshal(t *testing.T) {
	tests := []struct {
		name       string
		json       string
		wantID     interface{}
		wantMethod string
	}{
		{
			"string id",
			`{"jsonrpc":"2.0","id":"test-1","method":"tools/list"}`,
			"test-1",
			"tools/list",
		},
		{
			"number id",
			`{"jsonrpc":"2.0","id":42,"method":"ping"}`,
			float64(42), // JSON numbers decode as float64
			"ping",
		},
		{
			"null id",
			`{"jsonrpc":"2.0","id":null,"method":"initialize"}`,
			nil,
			"initialize",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var req MCPRequest
			if err := json.Unmarshal([]byte(tt.json), &req); err != nil {
				t.Fatalf("Failed to unmarshal: %v", err)
			}

			if req.ID != tt.wantID {
				t.Errorf("ID: got %v (%T), want %v (%T)", req.ID, req.ID, tt.wantID, tt.wantID)
			}
			if req.Method != tt.wantMethod {
				t.Errorf("Method: got %s, want %s", req.Method, tt.wantMethod)
			}
		})
	}
}

func TestMCPResponse_WithError(t *testing.T) {
	resp := MCPResponse{
		JSONRPC: "2.0",
		ID:      1,
		Error: &MCPError{
			Code:    -32601,
			Message: "Method not found",
		},
	}

	data, err := json.Marshal(resp)
	if err != nil {
		t.Fatalf("Failed to marshal: %v", err)
	}
	if strings.Contains(string(data), `"result"`) {
		t.Errorf("error response should omit result: %s", data)
	}

	var decoded MCPResponse
	if err := json.Unmarshal(data, &decoded); err != nil {
		t.Fatalf("Failed to unmarshal: %v", err)
	}
	if decoded.Error == nil {
		t.Fatal("Error should not be nil")
	}
	if decoded.Error.Code != -32601 {
		t.Errorf("Error.Code: got %d, want -32601", decoded.Error.Code)
	}
}

func TestHandleRequest_Initialize(t *testing.T) {
	s := newTestServer(t)
	req := &MCPRequest{
		JSONRPC: "2.0",
		ID:      1,
		Method:  "initialize",
	}

	resp := s.handleRequest(req)

	if resp == nil {
		t.Fatal("handleRequest returned nil")
	}
	if resp.Error != nil {
		t.Fatalf("Unexpected error: %v", resp.Error)
	}
	if resp.ID != 1 {
		t.Errorf("ID: got %v, want 1", resp.ID)
	}

	result, ok := resp.Result.(map[string]interface{})
	if !ok {
		t.Fatal("Result should be a map")
	}
	if result["protocolVersion"] != "2024-11-05" {
		t.Errorf("protocolVersion: got %v", result["protocolVersion"])
	}

	serverInfo, ok := result["serverInfo"].(map[string]interface{})
	if !ok {
		t.Fatal("serverInfo should be a map")
	}
	if serverInfo["name"] != "nerine" {
		t.Errorf("serverInfo.name: got %v", serverInfo["name"])
	}
}

func TestHandleRequest_Ping(t *testing.T) {
	s := newTestServer(t)
	resp := s.handleRequest(&MCPRequest{JSONRPC: "2.0", ID: "ping-1", Method: "ping"})

	if resp == nil {
		t.Fatal("handleRequest returned nil")
	}
	if resp.Error != nil {
		t.Fatalf("Unexpected error: %v", resp.Error)
	}
	if resp.ID != "ping-1" {
		t.Errorf("ID: got %v, want ping-1", resp.ID)
	}
}

func TestHandleRequest_ToolsList(t *testing.T) {
	s := newTestServer(t)
	resp := s.handleRequest(&MCPRequest{JSONRPC: "2.0", ID: 1, Method: "tools/list"})

	if resp.Error != nil {
		t.Fatalf("Unexpected error: %v", resp.Error)
	}
	result, ok := resp.Result.(map[string]interface{})
	if !ok {
		t.Fatal("Result should be a map")
	}
	toolsList, ok := result["tools"].([]Tool)
	if !ok {
		t.Fatal("tools should be a slice of Tool")
	}
	if len(toolsList) != len(GetToolDefinitions()) {
		t.Errorf("got %d tools, want %d", len(toolsList), len(GetToolDefinitions()))
	}
}

func TestHandleRequest_NotificationsInitialized(t *testing.T) {
	s := newTestServer(t)
	resp := s.handleRequest(&MCPRequest{JSONRPC: "2.0", Method: "notifications/initialized"})

	if resp != nil {
		t.Error("notifications/initialized should return nil response")
	}
}

func TestHandleRequest_MethodNotFound(t *testing.T) {
	s := newTestServer(t)
	resp := s.handleRequest(&MCPRequest{JSONRPC: "2.0", ID: 1, Method: "nonexistent/method"})

	if resp == nil {
		t.Fatal("handleRequest returned nil")
	}
	if resp.Error == nil {
		t.Fatal("Expected error for unknown method")
	}
	if resp.Error.Code != -32601 {
		t.Errorf("Error code: got %d, want -32601", resp.Error.Code)
	}
}

func decodeLines(t *testing.T, out *bytes.Buffer) []MCPResponse {
	t.Helper()
	var resps []MCPResponse
	scanner := bufio.NewScanner(out)
	for scanner.Scan() {
		var resp MCPResponse
		if err := json.Unmarshal(scanner.Bytes(), &resp); err != nil {
			t.Fatalf("response line is not JSON: %v: %s", err, scanner.Text())
		}
		resps = append(resps, resp)
	}
	return resps
}

func TestServe(t *testing.T) {
	s := newTestServer(t)
	in := strings.Join([]string{
		`{"jsonrpc":"2.0","id":1,"method":"initialize"}`,
		`{"jsonrpc":"2.0","method":"notifications/initialized"}`,
		``,
		`{"jsonrpc":"2.0","id":2,"method":"tools/call","params":{"name":"color_convert","arguments":{"hex":"#ff8000"}}}`,
		`{"jsonrpc":"2.0","id":3,"method":"ping"}`,
	}, "\n")

	var out bytes.Buffer
	if err := s.Serve(strings.NewReader(in), &out); err != nil {
		t.Fatalf("Serve failed: %v", err)
	}

	resps := decodeLines(t, &out)
	if len(resps) != 3 {
		t.Fatalf("got %d responses, want 3", len(resps))
	}

	wantIDs := []float64{1, 2, 3}
	for i, resp := range resps {
		if resp.ID != wantIDs[i] {
			t.Errorf("response %d: ID got %v, want %v", i, resp.ID, wantIDs[i])
		}
		if resp.Error != nil {
			t.Errorf("response %d: unexpected error %+v", i, resp.Error)
		}
	}

	if !strings.Contains(out.String(), "#FF8000") {
		t.Errorf("color_convert result missing hex: %s", out.String())
	}
}

func TestServe_ParseError(t *testing.T) {
	s := newTestServer(t)
	in := "not json\n" + `{"jsonrpc":"2.0","id":9,"method":"ping"}` + "\n"

	var out bytes.Buffer
	if err := s.Serve(strings.NewReader(in), &out); err != nil {
		t.Fatalf("Serve failed: %v", err)
	}

	resps := decodeLines(t, &out)
	if len(resps) != 2 {
		t.Fatalf("got %d responses, want 2", len(resps))
	}
	if resps[0].Error == nil || resps[0].Error.Code != -32700 {
		t.Errorf("first response should be a parse error, got %+v", resps[0].Error)
	}
	if resps[0].ID != nil {
		t.Errorf("parse error ID: got %v, want nil", resps[0].ID)
	}
	if resps[1].Error != nil || resps[1].ID != float64(9) {
		t.Errorf("server should keep serving after a parse error, got %+v", resps[1])
	}
}
