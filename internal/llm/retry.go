package llm

import (
	"context"
	"errors"
	"time"
)

// RetryPolicy controls exponential backoff between attempts
type RetryPolicy struct {
	MaxAttempts int
	BaseDelay   time.Duration
}

func DefaultRetryPolicy() RetryPolicy {
	return RetryPolicy{
		MaxAttempts: 3,
		BaseDelay:   2 * time.Second,
	}
}

type retryProvider struct {
	Provider
	policy RetryPolicy
}

// WithRetry wraps p so that transient failures are retried, doubling the
// delay after every attempt
func WithRetry(p Provider, policy RetryPolicy) Provider {
	if policy.MaxAttempts <= 1 {
		return p
	}
	return &retryProvider{Provider: p, policy: policy}
}

func (r *retryProvider) Complete(ctx context.Context, req *CompletionRequest) (*CompletionResponse, error) {
	delay := r.policy.BaseDelay
	var lastErr error

	for attempt := 1; attempt <= r.policy.MaxAttempts; attempt++ {
		resp, err := r.Provider.Complete(ctx, req)
		if err == nil {
			return resp, nil
		}
		lastErr = err

		if attempt == r.policy.MaxAttempts || !retryable(err) {
			break
		}

		select {
		case <-ctx.Done():
			return nil, ctx.Err()
		case <-time.After(delay):
		}
		delay *= 2
	}

	return nil, lastErr
}

func retryable(err error) bool {
	if errors.Is(err, context.Canceled) || errors.Is(err, context.DeadlineExceeded) {
		return false
	}
	if errors.Is(err, ErrNoContent) {
		return false
	}
	var apiErr *APIError
	if errors.As(err, &apiErr) {
		return apiErr.Retryable()
	}
	return true
}
