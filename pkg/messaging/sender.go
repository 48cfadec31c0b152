// Package messaging delivers replies to chat users through the messaging
// gateway's HTTP API.
package messaging

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"time"
)

// DefaultTimeout bounds a single gateway request.
const DefaultTimeout = 10 * time.Second

// maxErrorBody caps how much of a failed response is kept in the error.
const maxErrorBody = 512

var ErrEmptyDestination = errors.New("destination is required")

// Message is the gateway's send payload.
type Message struct {
	To   string `json:"to"`
	Text string `json:"text"`
}

// HTTPSender posts messages to the gateway.
type HTTPSender struct {
	url    string
	token  string
	client *http.Client
	logger *slog.Logger
}

// NewHTTPSender creates a sender for the gateway at url. A non-positive
// timeout falls back to DefaultTimeout.
func NewHTTPSender(url, token string, timeout time.Duration, logger *slog.Logger) *HTTPSender {
	if timeout <= 0 {
		timeout = DefaultTimeout
	}
	return &HTTPSender{
		url:   url,
		token: token,
		client: &http.Client{
			Timeout: timeout,
		},
		logger: logger,
	}
}

// Send delivers text to destination. Any non-2xx answer is an error.
func (s *HTTPSender) Send(ctx context.Context, destination, text string) error {
	if destination == "" {
		return ErrEmptyDestination
	}

	payload, err := json.Marshal(Message{To: destination, Text: text})
	if err != nil {
		return fmt.Errorf("failed to marshal message: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, s.url, bytes.NewReader(payload))
	if err != nil {
		return fmt.Errorf("failed to create gateway request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Accept", "application/json")
	if s.token != "" {
		req.Header.Set("Authorization", "Bearer "+s.token)
	}

	resp, err := s.client.Do(req)
	if err != nil {
		messagesSent.WithLabelValues(statusFailed).Inc()
		return fmt.Errorf("failed to send message: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		body, _ := io.ReadAll(io.LimitReader(resp.Body, maxErrorBody))
		messagesSent.WithLabelValues(statusFailed).Inc()
		s.logger.ErrorContext(ctx, "gateway rejected message",
			slog.Int("status", resp.StatusCode),
			slog.String("body", string(body)),
		)
		return &GatewayError{StatusCode: resp.StatusCode, Body: string(body)}
	}

	messagesSent.WithLabelValues(statusSent).Inc()
	s.logger.DebugContext(ctx, "message sent", slog.Int("length", len(text)))
	return nil
}

// GatewayError is a non-2xx gateway answer.
type GatewayError struct {
	StatusCode int
	Body       string
}

func (e *GatewayError) Error() string {
	return fmt.Sprintf("gateway returned status %d", e.StatusCode)
}
