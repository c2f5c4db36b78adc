package ai

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"
)

// RequestError is a non-2xx answer from the /api/ai endpoint as seen by a client.
type RequestError struct {
	Status  int
	Message string
}

func (e *RequestError) Error() string {
	msg := e.Message
	if msg == "" {
		msg = "Request failed"
	}
	return fmt.Sprintf("AI error (%d): %s", e.Status, msg)
}

// ProxyClient calls a running journal server's POST /api/ai endpoint, so the
// CLI can ask for guidance without holding the model API key itself.
type ProxyClient struct {
	endpoint string
	http     *http.Client
}

// NewProxyClient returns a client for the server at baseURL.
func NewProxyClient(baseURL string, hc *http.Client) *ProxyClient {
	if hc == nil {
		hc = &http.Client{Timeout: 90 * time.Second}
	}
	return &ProxyClient{endpoint: strings.TrimRight(baseURL, "/") + "/api/ai", http: hc}
}

// Run posts req and decodes the answer.
func (c *ProxyClient) Run(ctx context.Context, req Request) (Result, error) {
	body, err := json.Marshal(req)
	if err != nil {
		return Result{}, fmt.Errorf("ai.ProxyClient.Run: encode: %w", err)
	}

	httpReq, err := http.NewRequestWithContext(ctx, http.MethodPost, c.endpoint, bytes.NewReader(body))
	if err != nil {
		return Result{}, fmt.Errorf("ai.ProxyClient.Run: %w", err)
	}
	httpReq.Header.Set("Content-Type", "application/json")

	resp, err := c.http.Do(httpReq)
	if err != nil {
		return Result{}, fmt.Errorf("ai.ProxyClient.Run: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		msg, _ := io.ReadAll(resp.Body)
		return Result{}, &RequestError{Status: resp.StatusCode, Message: string(msg)}
	}

	var out Result
	if err := json.NewDecoder(resp.Body).Decode(&out); err != nil {
		return Result{}, fmt.Errorf("ai.ProxyClient.Run: decode: %w", err)
	}
	return out, nil
}
