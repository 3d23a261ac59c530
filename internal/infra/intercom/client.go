package intercom

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
)

// DefaultBaseURL is the Intercom REST API root
const DefaultBaseURL = "https://api.intercom.io"

// Part types and message types used by the conversations API
const (
	PartTypeNote       = "note"
	MessageTypeComment = "comment"
	MessageTypeNote    = "note"
	ReplyTypeAdmin     = "admin"
)

// Conversation is the subset of a conversation object this service reads
type Conversation struct {
	Type              string            `json:"type"`
	ID                string            `json:"id"`
	ConversationParts ConversationParts `json:"conversation_parts"`
}

// ConversationParts is the list wrapper returned with a conversation
type ConversationParts struct {
	Type       string             `json:"type"`
	Parts      []ConversationPart `json:"conversation_parts"`
	TotalCount int                `json:"total_count"`
}

// ConversationPart is one message, note or event in a conversation
type ConversationPart struct {
	Type      string `json:"type"`
	ID        string `json:"id"`
	PartType  string `json:"part_type"`
	Body      string `json:"body"`
	CreatedAt int64  `json:"created_at"`
}

// ReplyRequest is the body of POST /conversations/{id}/reply
type ReplyRequest struct {
	Type        string `json:"type"`
	AdminID     string `json:"admin_id"`
	MessageType string `json:"message_type"`
	Body        string `json:"body"`
}

// APIError is returned for non-2xx responses
type APIError struct {
	StatusCode int
	Body       string
}

func (e *APIError) Error() string {
	return fmt.Sprintf("intercom api error: status %d: %s", e.StatusCode, e.Body)
}

// Client is the Intercom API client.
// It is safe for concurrent use and holds no per-request state.
type Client struct {
	baseURL     string
	appID       string
	apiKey      string
	accessToken string
	httpClient  *http.Client
}

// Option configures a Client
type Option func(*Client)

// WithBaseURL overrides the API root
func WithBaseURL(baseURL string) Option {
	return func(c *Client) {
		if baseURL != "" {
			c.baseURL = strings.TrimRight(baseURL, "/")
		}
	}
}

// WithAccessToken authenticates with a bearer token instead of app id / api key
func WithAccessToken(token string) Option {
	return func(c *Client) {
		c.accessToken = token
	}
}

// WithHTTPClient sets the underlying HTTP client
func WithHTTPClient(hc *http.Client) Option {
	return func(c *Client) {
		if hc != nil {
			c.httpClient = hc
		}
	}
}

// NewClient creates a new Intercom client using app id / api key basic auth
func NewClient(appID, apiKey string, opts ...Option) *Client {
	c := &Client{
		baseURL:    DefaultBaseURL,
		appID:      appID,
		apiKey:     apiKey,
		httpClient: &http.Client{},
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// FindConversation fetches a conversation with its parts
func (c *Client) FindConversation(ctx context.Context, id string) (*Conversation, error) {
	var conv Conversation
	if err := c.do(ctx, http.MethodGet, "/conversations/"+url.PathEscape(id), nil, &conv); err != nil {
		return nil, fmt.Errorf("find conversation %s: %w", id, err)
	}
	return &conv, nil
}

// ReplyToConversation posts a reply to a conversation
func (c *Client) ReplyToConversation(ctx context.Context, id string, req ReplyRequest) error {
	if err := c.do(ctx, http.MethodPost, "/conversations/"+url.PathEscape(id)+"/reply", req, nil); err != nil {
		return fmt.Errorf("reply to conversation %s: %w", id, err)
	}
	return nil
}

func (c *Client) do(ctx context.Context, method, path string, in, out interface{}) error {
	var body io.Reader
	if in != nil {
		data, err := json.Marshal(in)
		if err != nil {
			return fmt.Errorf("marshal request: %w", err)
		}
		body = bytes.NewReader(data)
	}

	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, body)
	if err != nil {
		return fmt.Errorf("create request: %w", err)
	}
	req.Header.Set("Accept", "application/json")
	if in != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if c.accessToken != "" {
		req.Header.Set("Authorization", "Bearer "+c.accessToken)
	} else {
		req.SetBasicAuth(c.appID, c.apiKey)
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("send request: %w", err)
	}
	defer resp.Body.Close()

	respBody, err := io.ReadAll(resp.Body)
	if err != nil {
		return fmt.Errorf("read response: %w", err)
	}

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return &APIError{StatusCode: resp.StatusCode, Body: strings.TrimSpace(string(respBody))}
	}

	if out != nil {
		if err := json.Unmarshal(respBody, out); err != nil {
			return fmt.Errorf("decode response: %w", err)
		}
	}
	return nil
}
