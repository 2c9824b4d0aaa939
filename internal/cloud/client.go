// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package cloud

import (
	"bytes"
	"context"
	"crypto/tls"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log"
	"net"
	"net/http"
	"strings"
	"time"

	"github.com/earthwatch/earthgpt-tui/internal/config"
	"github.com/earthwatch/earthgpt-tui/internal/model"
	"github.com/earthwatch/earthgpt-tui/internal/normalize"
)

// Configuration constants for the inference API.
const (
	// DefaultBaseURL is the base URL for the OpenRouter API.
	DefaultBaseURL = "https://openrouter.ai/api/v1"

	// DefaultTimeout bounds each inference request.
	DefaultTimeout = 60 * time.Second

	// DefaultMaxTokens is the output-length bound sent with requests.
	DefaultMaxTokens = 4000

	// MaxResponseSize is the maximum allowed response body size.
	// SECURITY: Response size limit prevents memory exhaustion.
	MaxResponseSize = 10 * 1024 * 1024
)

// PERFORMANCE: Connection pooling reduces TCP handshake overhead.
// Shared HTTP client for all inference requests; per-request deadlines
// come from the context.
var sharedHTTPClient = &http.Client{
	Transport: &http.Transport{
		MaxIdleConns:        100,
		MaxIdleConnsPerHost: 10,
		IdleConnTimeout:     90 * time.Second,
		TLSHandshakeTimeout: 10 * time.Second,
		TLSClientConfig: &tls.Config{
			MinVersion: tls.VersionTLS12,
		},
	},
}

// =============================================================================
// REQUEST / RESPONSE TYPES
// =============================================================================

// contentPart is one element of a multi-part message content (text plus
// image attachment).
type contentPart struct {
	Type     string    `json:"type"`
	Text     string    `json:"text,omitempty"`
	ImageURL *imageURL `json:"image_url,omitempty"`
}

type imageURL struct {
	URL string `json:"url"`
}

// apiMessage is one message in the request body. Content is either a
// plain string or, when an image is attached, a []contentPart.
type apiMessage struct {
	Role    string `json:"role"`
	Content any    `json:"content"`
}

// chatRequest is the body of a chat completions request.
type chatRequest struct {
	Model     string       `json:"model"`
	Messages  []apiMessage `json:"messages"`
	MaxTokens int          `json:"max_tokens"`
}

// apiErrorResponse is the error envelope some rejections carry.
type apiErrorResponse struct {
	Error struct {
		Code    string `json:"code"`
		Message string `json:"message"`
	} `json:"error"`
}

// =============================================================================
// CLIENT
// =============================================================================

// Client talks to the OpenRouter chat completions endpoint.
type Client struct {
	apiKey     string
	baseURL    string
	model      string
	maxTokens  int
	timeout    time.Duration
	siteURL    string
	siteName   string
	chunk      bool
	chunkSize  int
	httpClient *http.Client
}

// New creates a client from the application configuration.
func New(cfg *config.Config) *Client {
	return &Client{
		apiKey:     strings.TrimSpace(cfg.APIKey),
		baseURL:    strings.TrimSuffix(cfg.APIBaseURL, "/"),
		model:      cfg.Model,
		maxTokens:  cfg.MaxTokens,
		timeout:    time.Duration(cfg.RequestTimeoutSecs) * time.Second,
		siteURL:    cfg.SiteURL,
		siteName:   cfg.SiteName,
		chunk:      cfg.ChunkResponses,
		chunkSize:  cfg.ChunkSize,
		httpClient: sharedHTTPClient,
	}
}

// WithBaseURL sets a custom base URL for the API.
func (c *Client) WithBaseURL(url string) *Client {
	c.baseURL = strings.TrimSuffix(url, "/")
	return c
}

// WithHTTPClient sets a custom HTTP client (used by tests).
func (c *Client) WithHTTPClient(hc *http.Client) *Client {
	c.httpClient = hc
	return c
}

// IsConfigured reports whether a bearer credential is present.
func (c *Client) IsConfigured() bool {
	return c.apiKey != ""
}

// Model returns the configured model identifier.
func (c *Client) Model() string {
	return c.model
}

// =============================================================================
// SEND
// =============================================================================

// Send submits the conversation history plus a new question (and the
// optionally attached image) and returns the assistant's reply text.
//
// The credential is checked before any network attempt. There is no
// retry; every failure returns a *SendError whose message is the fixed
// user-facing explanation for that failure mode.
func (c *Client) Send(ctx context.Context, history []*model.Message, question string, image string) (string, error) {
	if !c.IsConfigured() {
		return "", errMissingKey()
	}

	body, err := json.Marshal(c.buildRequest(history, question, image))
	if err != nil {
		return "", &SendError{Kind: KindRequest, Text: "Error preparing the API request: " + err.Error()}
	}

	ctx, cancel := context.WithTimeout(ctx, c.timeout)
	defer cancel()

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+"/chat/completions", bytes.NewReader(body))
	if err != nil {
		return "", &SendError{Kind: KindRequest, Text: "Error preparing the API request: " + err.Error()}
	}
	c.setHeaders(req)

	log.Printf("API Request: %s %s", req.Method, req.URL.Path)
	start := time.Now()
	resp, err := c.httpClient.Do(req)
	if err != nil {
		return "", mapTransportError(err)
	}
	defer resp.Body.Close()
	log.Printf("API Response: %d (%v)", resp.StatusCode, time.Since(start))

	respBody, err := readResponse(resp)
	if err != nil {
		return "", &SendError{Kind: KindRequest, Text: err.Error()}
	}

	if resp.StatusCode != http.StatusOK {
		return "", mapStatusError(resp.StatusCode, respBody)
	}

	text, err := normalize.ExtractText(respBody)
	if err != nil {
		// Structured remote errors and shape errors already carry their
		// user-facing explanation.
		return "", err
	}

	if c.chunk {
		text = normalize.Chunk(text, c.chunkSize)
	}
	return text, nil
}

// buildRequest assembles the request body: the full history followed by
// the new question. Messages carrying an image become two-part content.
func (c *Client) buildRequest(history []*model.Message, question string, image string) chatRequest {
	messages := make([]apiMessage, 0, len(history)+1)
	for _, msg := range history {
		messages = append(messages, toAPIMessage(msg.Role.String(), msg.Content, msg.Image))
	}
	messages = append(messages, toAPIMessage(model.RoleUser.String(), question, image))

	return chatRequest{
		Model:     c.model,
		Messages:  messages,
		MaxTokens: c.maxTokens,
	}
}

// toAPIMessage converts one turn into the wire format.
func toAPIMessage(role, content, image string) apiMessage {
	if image == "" {
		return apiMessage{Role: role, Content: content}
	}
	return apiMessage{
		Role: role,
		Content: []contentPart{
			{Type: "text", Text: content},
			{Type: "image_url", ImageURL: &imageURL{URL: image}},
		},
	}
}

// setHeaders sets the required headers for the inference API.
// SECURITY: The credential is sent only in the Authorization header and
// never logged.
func (c *Client) setHeaders(req *http.Request) {
	req.Header.Set("Authorization", "Bearer "+c.apiKey)
	req.Header.Set("Content-Type", "application/json")
	if c.siteURL != "" {
		req.Header.Set("HTTP-Referer", c.siteURL)
	}
	if c.siteName != "" {
		req.Header.Set("X-Title", c.siteName)
	}
}

// readResponse reads the response body with a size limit.
//
// SECURITY: Response size limit prevents memory exhaustion.
func readResponse(resp *http.Response) ([]byte, error) {
	limited := io.LimitReader(resp.Body, MaxResponseSize)
	body, err := io.ReadAll(limited)
	if err != nil {
		return nil, fmt.Errorf("failed to read response: %w", err)
	}
	if int64(len(body)) == MaxResponseSize {
		return nil, fmt.Errorf("response exceeded maximum size of %d bytes", MaxResponseSize)
	}
	return body, nil
}

// mapTransportError maps a failed connection attempt to its fixed
// explanation, distinguishing "client appears offline" from generic
// unreachability.
func mapTransportError(err error) *SendError {
	if isOffline(err) {
		return &SendError{Kind: KindOffline, Text: offlineText}
	}
	return &SendError{Kind: KindConnection, Text: connectionErrorText}
}

// isOffline reports whether the error indicates the client itself has
// no connectivity (DNS resolution failure or unreachable network),
// rather than the remote server misbehaving.
func isOffline(err error) bool {
	var dnsErr *net.DNSError
	if errors.As(err, &dnsErr) {
		return true
	}
	s := err.Error()
	return strings.Contains(s, "network is unreachable") ||
		strings.Contains(s, "no route to host")
}
