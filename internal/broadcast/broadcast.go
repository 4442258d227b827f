// Package broadcast sends fire-and-forget progress events to the
// auxiliary backend service. It is deliberately thin: a single POST with
// no retry.
package broadcast

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"time"

	"leadforge-worker/internal/logging"
)

// Message types recognized by the backend's /internal/broadcast endpoint.
const (
	TypeAuditProgress = "audit-progress"
	TypeAuditComplete = "audit-complete"
	TypeStatsChanged  = "stats-changed"
)

type envelope struct {
	UserID  string  `json:"userId"`
	Message message `json:"message"`
}

type message struct {
	Type      string      `json:"type"`
	Data      interface{} `json:"data"`
	Timestamp *string     `json:"timestamp,omitempty"`
}

// Client posts broadcast events to the configured backend URL.
type Client struct {
	backendURL string
	httpClient *http.Client
}

// New builds a broadcast Client targeting backendURL.
func New(backendURL string) *Client {
	return &Client{
		backendURL: backendURL,
		httpClient: &http.Client{Timeout: 10 * time.Second},
	}
}

// AuditProgress reports that one lead finished processing.
func (c *Client) AuditProgress(ctx context.Context, userID, leadID string) {
	c.send(ctx, userID, message{
		Type: TypeAuditProgress,
		Data: map[string]string{"leadId": leadID, "status": "completed"},
	})
}

// AuditComplete reports that a batch finished processing.
func (c *Client) AuditComplete(ctx context.Context, userID, sessionID string, processed, total int) {
	c.send(ctx, userID, message{
		Type: TypeAuditComplete,
		Data: map[string]interface{}{
			"sessionId":      sessionID,
			"processedLeads": processed,
			"totalLeads":     total,
		},
	})
}

// StatsChanged reports that aggregate stats changed as a result of an
// audit session completing.
func (c *Client) StatsChanged(ctx context.Context, userID, sessionID string) {
	ts := time.Now().Format(time.RFC3339)
	c.send(ctx, userID, message{
		Type:      TypeStatsChanged,
		Data:      map[string]string{"reason": "audit-completed", "auditSessionId": sessionID},
		Timestamp: &ts,
	})
}

// send issues the POST and logs, rather than returns, any failure;
// broadcast failures never abort the job.
func (c *Client) send(ctx context.Context, userID string, msg message) {
	body, err := json.Marshal(envelope{UserID: userID, Message: msg})
	if err != nil {
		logging.GetGlobalLogger().Warn("broadcast: failed to marshal message", map[string]interface{}{"error": err.Error()})
		return
	}

	url := fmt.Sprintf("%s/internal/broadcast", c.backendURL)
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, url, bytes.NewReader(body))
	if err != nil {
		logging.GetGlobalLogger().Warn("broadcast: failed to build request", map[string]interface{}{"error": err.Error()})
		return
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		logging.GetGlobalLogger().Warn("broadcast: request failed", map[string]interface{}{"error": err.Error(), "type": msg.Type})
		return
	}
	defer resp.Body.Close()

	if resp.StatusCode >= 300 {
		logging.GetGlobalLogger().Warn("broadcast: non-2xx response", map[string]interface{}{"status": resp.StatusCode, "type": msg.Type})
	}
}
