// Package notify pushes plain-text messages to an ntfy-style topic.
package notify

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"strings"
)

var ErrEmptyMessage = errors.New("message cannot be empty")

// Send posts message as text/plain to endpoint.
func Send(ctx context.Context, client *http.Client, endpoint, message string) error {
	if message == "" {
		return ErrEmptyMessage
	}
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, endpoint, strings.NewReader(message))
	if err != nil {
		return fmt.Errorf("build notification: %w", err)
	}
	req.Header.Set("Content-Type", "text/plain")

	resp, err := client.Do(req)
	if err != nil {
		return fmt.Errorf("failed to send notification: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return fmt.Errorf("unexpected status code: %d", resp.StatusCode)
	}
	return nil
}

// Online is the message sent when a node starts.
func Online(node string) string {
	return fmt.Sprintf("%s is online", node)
}
