package profile

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"time"
)

// DateLayout is the wire format of a date of birth.
const DateLayout = "2006-01-02"

var (
	ErrInvalidURL      = errors.New("invalid login URL")
	ErrInvalidResponse = errors.New("invalid response from login service")
)

// HTTPError is returned when the login service answers with a non-2xx status.
type HTTPError struct {
	StatusCode int
}

func (e *HTTPError) Error() string {
	return fmt.Sprintf("login service returned status %d", e.StatusCode)
}

// Client logs a child in against the remote profile service.
type Client struct {
	URL        string
	HTTPClient *http.Client
}

// NewClient returns a Client posting to url with the given timeout.
func NewClient(url string, timeout time.Duration) *Client {
	return &Client{URL: url, HTTPClient: &http.Client{Timeout: timeout}}
}

// Login exchanges a short id and date of birth for the child's profile.
func (c *Client) Login(ctx context.Context, shortID string, dateOfBirth time.Time) (*LoginResponse, error) {
	if c.URL == "" {
		return nil, ErrInvalidURL
	}

	body, err := json.Marshal(LoginRequest{ShortID: shortID, DateOfBirth: dateOfBirth.Format(DateLayout)})
	if err != nil {
		return nil, fmt.Errorf("encoding login request: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.URL, bytes.NewReader(body))
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidURL, err)
	}
	req.Header.Set("Content-Type", "application/json")

	hc := c.HTTPClient
	if hc == nil {
		hc = http.DefaultClient
	}
	resp, err := hc.Do(req)
	if err != nil {
		return nil, fmt.Errorf("login request: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return nil, &HTTPError{StatusCode: resp.StatusCode}
	}

	var out LoginResponse
	if err := json.NewDecoder(resp.Body).Decode(&out); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidResponse, err)
	}
	return &out, nil
}
