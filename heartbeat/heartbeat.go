// Package heartbeat checks the daemon in with a dead man's switch service.
package heartbeat

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/rs/zerolog"

	"arcology/logging"
)

var ErrStatus = errors.New("heartbeat rejected")

// Send posts one check-in carrying message as the m form field.
func Send(ctx context.Context, client *http.Client, endpoint, message string) error {
	form := url.Values{"m": {message}}
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, endpoint, strings.NewReader(form.Encode()))
	if err != nil {
		return fmt.Errorf("build heartbeat: %w", err)
	}
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")

	resp, err := client.Do(req)
	if err != nil {
		return fmt.Errorf("send heartbeat: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return fmt.Errorf("%w: status %d", ErrStatus, resp.StatusCode)
	}
	return nil
}

// Run sends a heartbeat immediately and then every interval until ctx ends.
// An empty endpoint disables it. Failures are logged and the loop carries on.
func Run(ctx context.Context, logger zerolog.Logger, client *http.Client, endpoint string, interval time.Duration, summary func() string) {
	logger = logging.For(logger, "Heartbeat")
	if endpoint == "" {
		logger.Info().Msg("No endpoint, heartbeat disabled")
		return
	}

	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	for {
		if err := Send(ctx, client, endpoint, summary()); err != nil {
			if ctx.Err() != nil {
				return
			}
			logger.Error().Err(err).Msg("Heartbeat failed")
		} else {
			logger.Debug().Msg("Heartbeat sent")
		}

		select {
		case <-ctx.Done():
			logger.Info().Msg("Heartbeat done")
			return
		case <-ticker.C:
		}
	}
}
