// Package notifier delivers viewer links to case recipients through the
// hosted send-case-link mail function.
package notifier

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"time"
)

// Client invokes the mail function over HTTP.
type Client struct {
	endpoint   string
	token      string
	httpClient *http.Client
}

// New creates a Client for the given mail function endpoint. The token, if
// non-empty, is sent as a bearer credential. Calls are bounded by a timeout
// so a stuck mail backend fails the request instead of hanging it.
func New(endpoint, token string) *Client {
	return &Client{
		endpoint: endpoint,
		token:    token,
		httpClient: &http.Client{
			Timeout: 10 * time.Second,
		},
	}
}

// SendCaseLink asks the mail function to email the viewer link to the
// recipient. A non-2xx response is an error.
func (c *Client) SendCaseLink(ctx context.Context, email, link string) error {
	if c.endpoint == "" {
		return fmt.Errorf("mail endpoint is not configured")
	}

	body, err := json.Marshal(map[string]string{
		"email": email,
		"link":  link,
	})
	if err != nil {
		return fmt.Errorf("marshal mail payload: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.endpoint, bytes.NewReader(body))
	if err != nil {
		return fmt.Errorf("build mail request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")
	if c.token != "" {
		req.Header.Set("Authorization", "Bearer "+c.token)
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("invoke mail function: %w", err)
	}
	defer func() { _ = resp.Body.Close() }()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return fmt.Errorf("mail function returned status %d", resp.StatusCode)
	}
	return nil
}
