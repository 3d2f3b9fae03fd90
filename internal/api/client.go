package api

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"github.com/funnytutor6/tutor-fe-sub002/domain"
)

// Client issues JSON requests against the marketplace backend. One
// exported method per backend operation; every method is a thin wrapper
// that returns the decoded response body.
type Client struct {
	baseURL    string
	httpClient *http.Client
	sessions   domain.SessionStore
}

// New creates a backend client. The session store supplies the bearer
// token for authenticated calls; pass nil for a purely anonymous client.
func New(baseURL string, sessions domain.SessionStore) *Client {
	return &Client{
		baseURL:    strings.TrimRight(baseURL, "/"),
		httpClient: &http.Client{Timeout: 30 * time.Second},
		sessions:   sessions,
	}
}

// WithHTTPClient overrides the underlying *http.Client. Used by tests
// and by callers that need custom transport settings.
func (c *Client) WithHTTPClient(hc *http.Client) *Client {
	c.httpClient = hc
	return c
}

// APIError is a server rejection carrying the decoded error body. The
// requires-verification fields are populated when the backend signals
// the OTP branch inside an error response (the login path does this).
type APIError struct {
	StatusCode              int
	Message                 string
	RequiresOTPVerification bool
	UserID                  string
	PhoneNumber             string
	UserType                string
	CooldownSeconds         int
}

func (e *APIError) Error() string {
	if e.Message != "" {
		return e.Message
	}
	return fmt.Sprintf("request failed with status %d", e.StatusCode)
}

// errorBody is the backend's error envelope.
type errorBody struct {
	Success                 bool   `json:"success"`
	Message                 string `json:"message"`
	Error                   string `json:"error"`
	RequiresOTPVerification bool   `json:"requiresOTPVerification"`
	UserID                  string `json:"userId"`
	PhoneNumber             string `json:"phoneNumber"`
	UserType                string `json:"userType"`
	CooldownSeconds         int    `json:"cooldownSeconds"`
}

func (c *Client) doJSON(ctx context.Context, method, path string, body, out any) error {
	var reqBody io.Reader
	if body != nil {
		raw, err := json.Marshal(body)
		if err != nil {
			return fmt.Errorf("failed to encode request body: %w", err)
		}
		reqBody = bytes.NewReader(raw)
	}

	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, reqBody)
	if err != nil {
		return fmt.Errorf("failed to build request: %w", err)
	}
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	c.authorize(req)

	return c.send(req, out)
}

// send executes a prepared request and decodes the response into out.
// Non-2xx responses come back as *APIError with the decoded error body.
func (c *Client) send(req *http.Request, out any) error {
	resp, err := c.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("request failed: %w", err)
	}
	defer resp.Body.Close()

	raw, err := io.ReadAll(resp.Body)
	if err != nil {
		return fmt.Errorf("failed to read response body: %w", err)
	}

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return decodeAPIError(resp.StatusCode, raw)
	}

	if out == nil || len(raw) == 0 {
		return nil
	}
	if err := json.Unmarshal(raw, out); err != nil {
		return fmt.Errorf("failed to decode response body: %w", err)
	}
	return nil
}

func (c *Client) authorize(req *http.Request) {
	if c.sessions == nil {
		return
	}
	if s, ok := c.sessions.Current(); ok && s.Token != "" {
		req.Header.Set("Authorization", "Bearer "+s.Token)
	}
}

func decodeAPIError(status int, raw []byte) *APIError {
	var body errorBody
	// Best effort: an undecodable body still yields a usable APIError.
	_ = json.Unmarshal(raw, &body)

	msg := body.Message
	if msg == "" {
		msg = body.Error
	}
	return &APIError{
		StatusCode:              status,
		Message:                 msg,
		RequiresOTPVerification: body.RequiresOTPVerification,
		UserID:                  body.UserID,
		PhoneNumber:             body.PhoneNumber,
		UserType:                body.UserType,
		CooldownSeconds:         body.CooldownSeconds,
	}
}
