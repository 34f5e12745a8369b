package llm

import (
	"context"
	"fmt"
	"log/slog"
	"strings"
	"time"
)

// rateLimitDelays are the Extractor's fixed backoff steps: up to 3 retries
// at 2s, 4s, 8s, applied only when the provider signals a rate limit.
// Unlike internal/resilience/retry's jittered exponential backoff used
// elsewhere, the Extractor's call discipline is a fixed schedule tied to
// its own 3s inter-cluster pacing, not a general-purpose transient-fault
// policy.
var rateLimitDelays = []time.Duration{2 * time.Second, 4 * time.Second, 8 * time.Second}

// isRateLimited reports whether err signals an HTTP 429 from the
// provider. Both SDKs surface this as an error whose message contains the
// status, so a substring check stands in for a typed error check.
func isRateLimited(err error) bool {
	if err == nil {
		return false
	}
	msg := err.Error()
	return strings.Contains(msg, "429") || strings.Contains(strings.ToLower(msg), "rate limit")
}

// retryRateLimited runs fn, retrying only on rate-limit signals per
// rateLimitDelays. Any other error returns immediately.
func retryRateLimited(ctx context.Context, fn func() (string, error)) (string, error) {
	var lastErr error
	for attempt := 0; attempt <= len(rateLimitDelays); attempt++ {
		result, err := fn()
		if err == nil {
			return result, nil
		}
		lastErr = err
		if !isRateLimited(err) || attempt == len(rateLimitDelays) {
			return "", err
		}

		delay := rateLimitDelays[attempt]
		slog.Warn("extractor llm call rate limited, retrying",
			slog.Int("attempt", attempt+1),
			slog.Duration("delay", delay),
			slog.Any("error", err))

		select {
		case <-time.After(delay):
		case <-ctx.Done():
			return "", fmt.Errorf("retry aborted: %w", ctx.Err())
		}
	}
	return "", lastErr
}
