// Package brightdata wraps the Bright Data MCP scraping service behind
// a uniform request/response contract: product search, detail-page
// scrape and review-page scrape. The wire protocol is JSON-RPC over
// HTTP with a session handshake; responses arrive either as plain JSON
// or as a text/event-stream carrying one data: frame.
package brightdata

import (
	"bufio"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
	"sync/atomic"
	"time"

	"go.uber.org/zap"
)

type rpcRequest struct {
	JSONRPC string `json:"jsonrpc"`
	ID      int64  `json:"id,omitempty"`
	Method  string `json:"method"`
	Params  any    `json:"params,omitempty"`
}

type rpcResponse struct {
	JSONRPC string     `json:"jsonrpc"`
	ID      int64      `json:"id"`
	Result  *rpcResult `json:"result,omitempty"`
	Error   *rpcError  `json:"error,omitempty"`
}

type rpcResult struct {
	Content []rpcContent `json:"content"`
	IsError bool         `json:"isError,omitempty"`
}

type rpcContent struct {
	Type string `json:"type"`
	Text string `json:"text"`
}

type rpcError struct {
	Code    int    `json:"code"`
	Message string `json:"message"`
}

// Client is the scrape client. It holds the session manager and a
// request id counter; all tool calls go through callTool.
type Client struct {
	endpoint string
	token    string
	client   *http.Client
	sessions *SessionManager
	nextID   atomic.Int64
}

// NewClient creates a scrape client against the given MCP endpoint.
func NewClient(endpoint, token string) *Client {
	httpClient := &http.Client{Timeout: 120 * time.Second}
	return &Client{
		endpoint: endpoint,
		token:    token,
		client:   httpClient,
		sessions: NewSessionManager(endpoint, token, httpClient),
	}
}

// callTool issues a tools/call request and returns the text content of
// the result. On a 404 the session is treated as expired: it is
// invalidated and the call retried exactly once with a fresh session.
func (c *Client) callTool(ctx context.Context, tool string, args map[string]any) (string, error) {
	text, retryable, err := c.callToolOnce(ctx, tool, args)
	if err != nil && retryable {
		zap.L().Warn("mcp session expired, renegotiating", zap.String("tool", tool))
		text, _, err = c.callToolOnce(ctx, tool, args)
	}
	return text, err
}

func (c *Client) callToolOnce(ctx context.Context, tool string, args map[string]any) (text string, sessionExpired bool, err error) {
	session, err := c.sessions.Session(ctx)
	if err != nil {
		return "", false, err
	}

	payload := rpcRequest{
		JSONRPC: "2.0",
		ID:      c.nextID.Add(1),
		Method:  "tools/call",
		Params:  map[string]any{"name": tool, "arguments": args},
	}
	resp, err := c.sessions.post(ctx, payload, session)
	if err != nil {
		return "", false, fmt.Errorf("mcp tools/call %s: %v", tool, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode == http.StatusNotFound {
		io.Copy(io.Discard, resp.Body)
		c.sessions.Invalidate(session)
		return "", true, fmt.Errorf("mcp session expired")
	}
	if resp.StatusCode != http.StatusOK {
		body, _ := io.ReadAll(resp.Body)
		return "", false, fmt.Errorf("mcp tools/call %s failed (%d): %s", tool, resp.StatusCode, strings.TrimSpace(string(body)))
	}

	envelope, err := decodeEnvelope(resp)
	if err != nil {
		return "", false, fmt.Errorf("mcp tools/call %s: %v", tool, err)
	}
	if envelope.Error != nil {
		return "", false, fmt.Errorf("mcp tool error [%d]: %s", envelope.Error.Code, envelope.Error.Message)
	}
	if envelope.Result == nil {
		return "", false, fmt.Errorf("mcp tools/call %s returned no result", tool)
	}
	for _, content := range envelope.Result.Content {
		if content.Type == "text" {
			return content.Text, false, nil
		}
	}
	return "", false, nil
}

// decodeEnvelope reads a JSON-RPC envelope from either a plain JSON
// body or a text/event-stream whose data: frame carries the envelope.
func decodeEnvelope(resp *http.Response) (*rpcResponse, error) {
	contentType := resp.Header.Get("Content-Type")
	if !strings.HasPrefix(contentType, "text/event-stream") {
		var envelope rpcResponse
		if err := json.NewDecoder(resp.Body).Decode(&envelope); err != nil {
			return nil, fmt.Errorf("decoding response: %v", err)
		}
		return &envelope, nil
	}

	scanner := bufio.NewScanner(resp.Body)
	scanner.Buffer(make([]byte, 0, 64*1024), 16*1024*1024)
	for scanner.Scan() {
		line := strings.TrimSpace(scanner.Text())
		if !strings.HasPrefix(line, "data:") {
			continue
		}
		frame := strings.TrimSpace(strings.TrimPrefix(line, "data:"))
		if frame == "" {
			continue
		}
		var envelope rpcResponse
		if err := json.Unmarshal([]byte(frame), &envelope); err != nil {
			continue
		}
		if envelope.Result != nil || envelope.Error != nil {
			return &envelope, nil
		}
	}
	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("reading event stream: %v", err)
	}
	return nil, fmt.Errorf("event stream ended without a json-rpc frame")
}
