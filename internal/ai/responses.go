package ai

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"
)

// DefaultModel is used when no model is configured.
const DefaultModel = "gpt-5-mini"

// ErrMissingAPIKey means the server has no model API key configured.
var ErrMissingAPIKey = errors.New("missing OPENAI_API_KEY")

// UpstreamError carries a non-2xx answer from the model endpoint verbatim.
type UpstreamError struct {
	StatusCode int
	Body       string
}

func (e *UpstreamError) Error() string {
	return fmt.Sprintf("model endpoint returned %d: %s", e.StatusCode, e.Body)
}

// Completer sends one system+user exchange to a model and returns its text.
type Completer interface {
	Complete(ctx context.Context, system, user string) (string, error)
}

// ResponsesClient talks to an OpenAI Responses-compatible endpoint.
type ResponsesClient struct {
	baseURL    string
	apiKey     string
	model      string
	http       *http.Client
	extractors []Extractor
}

// ResponsesOptions configures a ResponsesClient.
type ResponsesOptions struct {
	BaseURL    string
	APIKey     string
	Model      string
	HTTPClient *http.Client
	// Extractors override DefaultExtractors.
	Extractors []Extractor
}

// NewResponsesClient returns a client for opts. A missing API key is not an
// error here; Complete reports ErrMissingAPIKey so the health endpoint can
// still describe the configuration.
func NewResponsesClient(opts ResponsesOptions) *ResponsesClient {
	c := &ResponsesClient{
		baseURL:    strings.TrimRight(opts.BaseURL, "/"),
		apiKey:     opts.APIKey,
		model:      opts.Model,
		http:       opts.HTTPClient,
		extractors: opts.Extractors,
	}
	if c.baseURL == "" {
		c.baseURL = "https://api.openai.com"
	}
	if c.model == "" {
		c.model = DefaultModel
	}
	if c.http == nil {
		c.http = &http.Client{Timeout: 60 * time.Second}
	}
	if len(c.extractors) == 0 {
		c.extractors = DefaultExtractors
	}
	return c
}

// HasKey reports whether an API key is configured.
func (c *ResponsesClient) HasKey() bool { return c.apiKey != "" }

// Model returns the configured model name.
func (c *ResponsesClient) Model() string { return c.model }

type inputMessage struct {
	Role    string `json:"role"`
	Content string `json:"content"`
}

type responsesRequest struct {
	Model string         `json:"model"`
	Input []inputMessage `json:"input"`
}

// Complete implements Completer.
func (c *ResponsesClient) Complete(ctx context.Context, system, user string) (string, error) {
	if c.apiKey == "" {
		return "", ErrMissingAPIKey
	}

	body, err := json.Marshal(responsesRequest{
		Model: c.model,
		Input: []inputMessage{
			{Role: "system", Content: system},
			{Role: "user", Content: user},
		},
	})
	if err != nil {
		return "", fmt.Errorf("ai.ResponsesClient.Complete: encode: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+"/v1/responses", bytes.NewReader(body))
	if err != nil {
		return "", fmt.Errorf("ai.ResponsesClient.Complete: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Authorization", "Bearer "+c.apiKey)

	resp, err := c.http.Do(req)
	if err != nil {
		return "", fmt.Errorf("ai.ResponsesClient.Complete: %w", err)
	}
	defer resp.Body.Close()

	raw, err := io.ReadAll(resp.Body)
	if err != nil {
		return "", fmt.Errorf("ai.ResponsesClient.Complete: read: %w", err)
	}
	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return "", &UpstreamError{StatusCode: resp.StatusCode, Body: string(raw)}
	}
	if !json.Valid(raw) {
		return "", fmt.Errorf("ai.ResponsesClient.Complete: response is not JSON")
	}

	return Extract(raw, c.extractors...), nil
}
