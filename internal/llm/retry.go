// Package llm - retry.go wraps generation calls with bounded retries.
package llm

import (
	"context"
	"fmt"
	"time"
)

const (
	// DefaultMaxAttempts bounds how many times a generation call is tried.
	DefaultMaxAttempts = 3
	// DefaultBaseDelay is the wait before the first retry; it doubles each
	// attempt after that.
	DefaultBaseDelay = 2 * time.Second
	// DefaultMaxDelay caps the backoff growth.
	DefaultMaxDelay = 30 * time.Second
)

// RetryPolicy controls backoff behavior for GenerateWithRetry.
type RetryPolicy struct {
	MaxAttempts int
	BaseDelay   time.Duration
	MaxDelay    time.Duration
}

// DefaultRetryPolicy returns the policy used across the pipeline.
func DefaultRetryPolicy() RetryPolicy {
	return RetryPolicy{
		MaxAttempts: DefaultMaxAttempts,
		BaseDelay:   DefaultBaseDelay,
		MaxDelay:    DefaultMaxDelay,
	}
}

// GenerateWithRetry calls client.GenerateContent, retrying transient failures
// with exponential backoff. Context cancellation aborts both the call and any
// pending backoff wait.
func GenerateWithRetry(ctx context.Context, client Client, prompt string, tier ModelTier, policy RetryPolicy) (string, error) {
	if policy.MaxAttempts < 1 {
		policy = DefaultRetryPolicy()
	}

	var lastErr error
	delay := policy.BaseDelay
	for attempt := 1; attempt <= policy.MaxAttempts; attempt++ {
		text, err := client.GenerateContent(ctx, prompt, tier)
		if err == nil {
			return text, nil
		}
		lastErr = err

		if attempt == policy.MaxAttempts {
			break
		}
		if err := sleepContext(ctx, delay); err != nil {
			return "", err
		}
		delay *= 2
		if policy.MaxDelay > 0 && delay > policy.MaxDelay {
			delay = policy.MaxDelay
		}
	}

	return "", fmt.Errorf("generation failed after %d attempts: %w", policy.MaxAttempts, lastErr)
}

func sleepContext(ctx context.Context, d time.Duration) error {
	timer := time.NewTimer(d)
	defer timer.Stop()
	select {
	case <-ctx.Done():
		return ctx.Err()
	case <-timer.C:
		return nil
	}
}
