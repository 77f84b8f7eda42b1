// Package notifier delivers report messages to the Telegram Bot API.
package notifier

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
)

// DefaultAPIURL is the Telegram Bot API base URL.
const DefaultAPIURL = "https://api.telegram.org"

// maxErrorBody bounds how much of a failed response body is kept.
const maxErrorBody = 4096

// ErrTransport marks failures where no HTTP response was received.
var ErrTransport = errors.New("telegram: transport failure")

// APIError is returned when Telegram answers with a non-2xx status.
type APIError struct {
	StatusCode  int
	Description string
	Body        string
}

func (e *APIError) Error() string {
	if e.Description != "" {
		return fmt.Sprintf("telegram: HTTP %d: %s", e.StatusCode, e.Description)
	}
	return fmt.Sprintf("telegram: HTTP %d: %s", e.StatusCode, e.Body)
}

// TelegramNotifier sends HTML-formatted messages to one chat.
type TelegramNotifier struct {
	token  string
	chatID string
	apiURL string
	client *http.Client
}

// Option customizes a TelegramNotifier.
type Option func(*TelegramNotifier)

// WithAPIURL overrides the Bot API base URL.
func WithAPIURL(u string) Option {
	return func(n *TelegramNotifier) {
		if u != "" {
			n.apiURL = strings.TrimRight(u, "/")
		}
	}
}

// WithHTTPClient overrides the HTTP client.
func WithHTTPClient(c *http.Client) Option {
	return func(n *TelegramNotifier) {
		if c != nil {
			n.client = c
		}
	}
}

// NewTelegramNotifier creates a new instance of TelegramNotifier for the
// given bot token and destination chat.
func NewTelegramNotifier(token, chatID string, opts ...Option) *TelegramNotifier {
	n := &TelegramNotifier{
		token:  token,
		chatID: chatID,
		apiURL: DefaultAPIURL,
		client: &http.Client{},
	}
	for _, opt := range opts {
		opt(n)
	}
	return n
}

// Send posts message to the configured chat with HTML parse mode. It makes
// exactly one attempt and never retries.
func (n *TelegramNotifier) Send(ctx context.Context, message string) error {
	form := url.Values{
		"chat_id":    {n.chatID},
		"text":       {message},
		"parse_mode": {"HTML"},
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, n.endpoint(), strings.NewReader(form.Encode()))
	if err != nil {
		return fmt.Errorf("failed to create telegram request: %w", n.redact(err))
	}
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")

	resp, err := n.client.Do(req)
	if err != nil {
		return fmt.Errorf("%w: %w", ErrTransport, n.redact(err))
	}
	defer resp.Body.Close()

	if resp.StatusCode >= 200 && resp.StatusCode < 300 {
		_, _ = io.Copy(io.Discard, resp.Body)
		return nil
	}

	body, _ := io.ReadAll(io.LimitReader(resp.Body, maxErrorBody))
	apiErr := &APIError{
		StatusCode: resp.StatusCode,
		Body:       strings.TrimSpace(string(body)),
	}
	var payload struct {
		Description string `json:"description"`
	}
	if json.Unmarshal(body, &payload) == nil {
		apiErr.Description = payload.Description
	}
	return apiErr
}

func (n *TelegramNotifier) endpoint() string {
	return n.apiURL + "/bot" + n.token + "/sendMessage"
}

// redact strips the bot token from errors that embed the request URL.
func (n *TelegramNotifier) redact(err error) error {
	var urlErr *url.Error
	if n.token == "" || !errors.As(err, &urlErr) {
		return err
	}
	redacted := *urlErr
	redacted.URL = strings.ReplaceAll(redacted.URL, n.token, "<redacted>")
	return &redacted
}
