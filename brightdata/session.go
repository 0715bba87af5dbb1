package brightdata

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"sync"

	"go.uber.org/zap"
)

const sessionHeader = "Mcp-Session-Id"

// SessionManager owns the remote MCP session id: lazy initialization
// via the initialize handshake and invalidate-and-recreate-once
// semantics when the service reports the session expired. Safe for
// concurrent use; concurrent renewals are idempotent from the caller's
// perspective.
type SessionManager struct {
	endpoint string
	token    string
	client   *http.Client

	mu      sync.Mutex
	session string
}

// NewSessionManager creates a session manager for the given MCP
// endpoint and API token.
func NewSessionManager(endpoint, token string, client *http.Client) *SessionManager {
	if client == nil {
		client = http.DefaultClient
	}
	return &SessionManager{endpoint: endpoint, token: token, client: client}
}

// Session returns the current session id, negotiating one if none is
// held.
func (m *SessionManager) Session(ctx context.Context) (string, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.session != "" {
		return m.session, nil
	}

	session, err := m.handshake(ctx)
	if err != nil {
		return "", err
	}
	m.session = session
	return session, nil
}

// Invalidate drops the given session id so the next call negotiates a
// fresh one. A stale id (already replaced by a concurrent renewal) is
// ignored.
func (m *SessionManager) Invalidate(session string) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.session == session {
		m.session = ""
	}
}

// handshake runs the initialize request, captures the session id from
// the response header and sends the notifications/initialized
// follow-up.
func (m *SessionManager) handshake(ctx context.Context) (string, error) {
	if m.token == "" {
		return "", fmt.Errorf("bright data api token is not set")
	}

	initReq := rpcRequest{
		JSONRPC: "2.0",
		ID:      1,
		Method:  "initialize",
		Params: map[string]any{
			"protocolVersion": "2025-03-26",
			"capabilities":    map[string]any{},
			"clientInfo":      map[string]any{"name": "argus", "version": "1.0.0"},
		},
	}
	resp, err := m.post(ctx, initReq, "")
	if err != nil {
		return "", fmt.Errorf("mcp initialize failed: %v", err)
	}
	defer resp.Body.Close()
	io.Copy(io.Discard, resp.Body)

	if resp.StatusCode != http.StatusOK {
		return "", fmt.Errorf("mcp initialize failed with status %d", resp.StatusCode)
	}
	session := resp.Header.Get(sessionHeader)
	if session == "" {
		return "", fmt.Errorf("mcp initialize response carries no %s header", sessionHeader)
	}

	initialized := rpcRequest{JSONRPC: "2.0", Method: "notifications/initialized"}
	noteResp, err := m.post(ctx, initialized, session)
	if err != nil {
		return "", fmt.Errorf("mcp initialized notification failed: %v", err)
	}
	defer noteResp.Body.Close()
	io.Copy(io.Discard, noteResp.Body)

	zap.L().Debug("negotiated mcp session", zap.String("session", session))
	return session, nil
}

// post sends one JSON-RPC payload, attaching the session header when a
// session id is supplied.
func (m *SessionManager) post(ctx context.Context, payload rpcRequest, session string) (*http.Response, error) {
	body, err := json.Marshal(payload)
	if err != nil {
		return nil, err
	}
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, m.endpoint+"?token="+m.token, bytes.NewReader(body))
	if err != nil {
		return nil, err
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Accept", "application/json, text/event-stream")
	if session != "" {
		req.Header.Set(sessionHeader, session)
	}
	return m.client.Do(req)
}
