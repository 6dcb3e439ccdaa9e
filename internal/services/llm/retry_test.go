package llm

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/ternarybob/respondeo/internal/common"
	"golang.org/x/time/rate"
)

func TestIsRateLimitError(t *testing.T) {
	tests := []struct {
		name     string
		err      error
		expected bool
	}{
		{"nil error", nil, false},
		{"429 status", errors.New("Error 429, too many requests"), true},
		{"resource exhausted", errors.New("Status: RESOURCE_EXHAUSTED"), true},
		{"quota message", errors.New("quota exceeded for model"), true},
		{"anthropic rate limit", errors.New("rate_limit_error: requests per minute"), true},
		{"unrelated error", errors.New("connection refused"), false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, IsRateLimitError(tt.err))
		})
	}
}

func TestExtractRetryDelay(t *testing.T) {
	tests := []struct {
		name     string
		err      error
		expected time.Duration
	}{
		{"nil error", nil, 0},
		{"no delay in message", errors.New("Error 429"), 0},
		{
			"please retry format",
			errors.New("Error 429, Message: quota exceeded. Please retry in 45.387061394s., Status: RESOURCE_EXHAUSTED"),
			time.Duration(45.387061394 * float64(time.Second)),
		},
		{
			"retryDelay format",
			errors.New("retryDelay: 30s"),
			30 * time.Second,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, ExtractRetryDelay(tt.err))
		})
	}
}

func TestCalculateBackoff(t *testing.T) {
	config := &RetryConfig{
		MaxRetries:        3,
		InitialBackoff:    10 * time.Second,
		MaxBackoff:        90 * time.Second,
		BackoffMultiplier: 1.5,
	}

	// No API delay: exponential growth from InitialBackoff
	assert.Equal(t, 10*time.Second, config.CalculateBackoff(0, 0))
	assert.Equal(t, 15*time.Second, config.CalculateBackoff(1, 0))

	// API-provided delay takes precedence, with a buffer
	assert.Equal(t, 35*time.Second, config.CalculateBackoff(0, 30*time.Second))

	// Capped at MaxBackoff
	assert.Equal(t, 90*time.Second, config.CalculateBackoff(10, 60*time.Second))
}

func TestExecute_RetriesUntilSuccess(t *testing.T) {
	config := &RetryConfig{
		MaxRetries:        3,
		InitialBackoff:    time.Millisecond,
		MaxBackoff:        5 * time.Millisecond,
		BackoffMultiplier: 1.5,
	}
	limiter := rate.NewLimiter(rate.Inf, 1)

	calls := 0
	err := config.Execute(context.Background(), common.GetLogger(), limiter, "gemini", func() error {
		calls++
		if calls < 3 {
			return errors.New("Error 429, too many requests")
		}
		return nil
	})

	require.NoError(t, err)
	assert.Equal(t, 3, calls)
}

func TestExecute_ExhaustedRetriesAnnotatesError(t *testing.T) {
	config := &RetryConfig{
		MaxRetries:        2,
		InitialBackoff:    time.Millisecond,
		MaxBackoff:        5 * time.Millisecond,
		BackoffMultiplier: 1.5,
	}
	limiter := rate.NewLimiter(rate.Inf, 1)

	underlying := errors.New("Error 429, too many requests")
	calls := 0
	err := config.Execute(context.Background(), common.GetLogger(), limiter, "gemini", func() error {
		calls++
		return underlying
	})

	require.Error(t, err)
	assert.Equal(t, 3, calls)
	assert.ErrorIs(t, err, underlying)
	assert.Contains(t, err.Error(), "gemini")
}

func TestExecute_StopsWhenContextCancelled(t *testing.T) {
	config := NewDefaultRetryConfig()
	limiter := rate.NewLimiter(rate.Inf, 1)

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	err := config.Execute(ctx, common.GetLogger(), limiter, "claude", func() error {
		return errors.New("Error 429, too many requests")
	})

	require.Error(t, err)
	assert.ErrorIs(t, err, context.Canceled)
}
