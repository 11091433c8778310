// File: internal/services/gemini/retry.go
package gemini

import (
	"context"
	"errors"
	"time"
)

// RetryClient wraps a Client with bounded exponential backoff for transient
// upstream failures. Anything not marked retryable fails immediately; there
// is no wall-clock ceiling, only the attempt budget.
type RetryClient struct {
	client Client
	config *Config
	logger Logger

	// sleep is swappable in tests to observe the backoff schedule.
	sleep func(ctx context.Context, d time.Duration) error
}

func NewRetryClient(client Client, config *Config, logger Logger) *RetryClient {
	return &RetryClient{
		client: client,
		config: config,
		logger: logger,
		sleep:  sleepContext,
	}
}

func sleepContext(ctx context.Context, d time.Duration) error {
	select {
	case <-ctx.Done():
		return ctx.Err()
	case <-time.After(d):
		return nil
	}
}

func (r *RetryClient) GenerateContent(ctx context.Context, model string, req *GenerateContentRequest) (*GenerateContentResponse, error) {
	delay := r.config.InitialBackoff
	var lastErr error

	for attempt := 1; attempt <= r.config.MaxAttempts; attempt++ {
		resp, err := r.client.GenerateContent(ctx, model, req)
		if err == nil {
			if attempt > 1 {
				r.logger.Info("call succeeded after retry", "attempts", attempt)
			}
			return resp, nil
		}

		var gerr *GeminiError
		if !errors.As(err, &gerr) || !gerr.Retryable {
			return nil, err
		}

		lastErr = err
		if attempt < r.config.MaxAttempts {
			r.logger.Warn("transient upstream failure, retrying",
				"attempt", attempt, "max_attempts", r.config.MaxAttempts, "delay", delay.String())
			if serr := r.sleep(ctx, delay); serr != nil {
				return nil, NewNetworkError("retry", "canceled while waiting to retry", serr)
			}
			delay *= 2
		}
	}

	r.logger.Error("call failed after all attempts",
		"attempts", r.config.MaxAttempts, "error", lastErr)
	return nil, NewRetryExhaustedError("generate_content", r.config.MaxAttempts, lastErr)
}
