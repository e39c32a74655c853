// Package network checks that the node can reach the outside world.
package network

import (
	"context"
	"fmt"
	"net/http"
)

// CheckConnectivity issues a GET to url and expects 200.
func CheckConnectivity(ctx context.Context, client *http.Client, url string) error {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return fmt.Errorf("connectivity check: %w", err)
	}
	resp, err := client.Do(req)
	if err != nil {
		return fmt.Errorf("connectivity check failed: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return fmt.Errorf("connectivity check failed with status code: %d", resp.StatusCode)
	}
	return nil
}
