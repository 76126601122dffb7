// Package ollama provides an HTTP client for the Ollama API: a health and
// model check for "doctor", and non-streaming generation for the http backend.
package ollama

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

const _defaultTimeout = 10 * time.Second

// ErrUnreachable indicates the Ollama server could not be reached (connection refused, timeout, or 5xx).
var ErrUnreachable = errors.New("ollama server unreachable")

// ErrBadRequest indicates the server rejected a generate request (4xx), usually an unknown model.
var ErrBadRequest = errors.New("ollama rejected the request")

// Client calls the Ollama API. Zero value is not valid; use NewClient.
type Client struct {
	baseURL    string
	httpClient *http.Client
}

// CheckResult is the result of a health/model check.
type CheckResult struct {
	Reachable    bool     // Server responded with 200.
	ModelPresent bool     // Requested model name appears in the tags list.
	ModelNames   []string // All model names from /api/tags (for diagnostics).
}

// GenerateOptions are the model options sent with /api/generate. Zero fields are omitted.
type GenerateOptions struct {
	Temperature float64 `json:"temperature,omitempty"`
	NumCtx      int     `json:"num_ctx,omitempty"`
}

// GenerateResult is the decoded non-streaming /api/generate response.
type GenerateResult struct {
	Model           string `json:"model"`
	Response        string `json:"response"`
	Done            bool   `json:"done"`
	PromptEvalCount int    `json:"prompt_eval_count"`
	EvalCount       int    `json:"eval_count"`
	TotalDuration   int64  `json:"total_duration"` // nanoseconds
}

// NewClient builds an Ollama client. baseURL is the API root (e.g. http://localhost:11434).
// If httpClient is nil, a default client with a 10s timeout is used.
func NewClient(baseURL string, httpClient *http.Client) *Client {
	if httpClient == nil {
		httpClient = &http.Client{Timeout: _defaultTimeout}
	}
	baseURL = strings.TrimSuffix(baseURL, "/")
	return &Client{baseURL: baseURL, httpClient: httpClient}
}

type tagsResponse struct {
	Models []struct {
		Name string `json:"name"`
	} `json:"models"`
}

// Check verifies the server is reachable and whether the given model is present.
// It GETs /api/tags and parses the response. On connection/HTTP error returns ErrUnreachable (via %w).
// A model given without a tag also matches its ":latest" entry.
func (c *Client) Check(ctx context.Context, model string) (*CheckResult, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.baseURL+"/api/tags", nil)
	if err != nil {
		return nil, fmt.Errorf("ollama tags request: %w", err)
	}
	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("ollama tags: %w", errors.Join(ErrUnreachable, err))
	}
	defer resp.Body.Close()
	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("ollama tags: %w: HTTP %d", ErrUnreachable, resp.StatusCode)
	}
	var body tagsResponse
	if err := json.NewDecoder(resp.Body).Decode(&body); err != nil {
		return nil, fmt.Errorf("ollama tags: parse response: %w", err)
	}
	names := make([]string, 0, len(body.Models))
	present := false
	for _, m := range body.Models {
		names = append(names, m.Name)
		if m.Name == model || (!strings.Contains(model, ":") && m.Name == model+":latest") {
			present = true
		}
	}
	return &CheckResult{
		Reachable:    true,
		ModelPresent: present,
		ModelNames:   names,
	}, nil
}

type generateRequest struct {
	Model   string           `json:"model"`
	Prompt  string           `json:"prompt"`
	Stream  bool             `json:"stream"`
	Options *GenerateOptions `json:"options,omitempty"`
}

type errorResponse struct {
	Error string `json:"error"`
}

// Generate POSTs a single non-streaming prompt to /api/generate. 4xx responses
// wrap ErrBadRequest with the server's error text; transport errors and 5xx
// wrap ErrUnreachable. opts may be nil.
func (c *Client) Generate(ctx context.Context, model, prompt string, opts *GenerateOptions) (*GenerateResult, error) {
	payload, err := json.Marshal(generateRequest{Model: model, Prompt: prompt, Stream: false, Options: opts})
	if err != nil {
		return nil, fmt.Errorf("ollama generate: encode request: %w", err)
	}
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+"/api/generate", bytes.NewReader(payload))
	if err != nil {
		return nil, fmt.Errorf("ollama generate request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")
	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("ollama generate: %w", errors.Join(ErrUnreachable, err))
	}
	defer resp.Body.Close()
	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("ollama generate: read response: %w", err)
	}
	switch {
	case resp.StatusCode >= 500:
		return nil, fmt.Errorf("ollama generate: %w: HTTP %d", ErrUnreachable, resp.StatusCode)
	case resp.StatusCode >= 400:
		var e errorResponse
		if json.Unmarshal(body, &e) == nil && e.Error != "" {
			return nil, fmt.Errorf("ollama generate: %w: %s", ErrBadRequest, e.Error)
		}
		return nil, fmt.Errorf("ollama generate: %w: HTTP %d", ErrBadRequest, resp.StatusCode)
	}
	var res GenerateResult
	if err := json.Unmarshal(body, &res); err != nil {
		return nil, fmt.Errorf("ollama generate: parse response: %w", err)
	}
	return &res, nil
}

// Generator adapts Client to the single-prompt text-in/text-out contract used
// by commit message generation.
type Generator struct {
	Client  *Client
	Model   string
	Options *GenerateOptions
}

// Generate returns the trimmed model response with invalid UTF-8 replaced.
func (g *Generator) Generate(ctx context.Context, prompt string) (string, error) {
	if g == nil || g.Client == nil {
		return "", errors.New("ollama: nil client")
	}
	res, err := g.Client.Generate(ctx, g.Model, prompt, g.Options)
	if err != nil {
		return "", err
	}
	return strings.TrimSpace(strings.ToValidUTF8(res.Response, "\uFFFD")), nil
}
