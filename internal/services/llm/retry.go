package llm

import (
	"context"
	"fmt"
	"regexp"
	"strconv"
	"strings"
	"time"

	"github.com/ternarybob/arbor"
	"golang.org/x/time/rate"
)

// RetryConfig defines retry behaviour for provider rate-limit handling.
type RetryConfig struct {
	// MaxRetries is the maximum number of retry attempts
	MaxRetries int

	// InitialBackoff is the wait before the first retry
	InitialBackoff time.Duration

	// MaxBackoff caps the wait between retries
	MaxBackoff time.Duration

	// BackoffMultiplier is applied to the backoff on each retry
	BackoffMultiplier float64
}

// Default retry constants, sized for the Gemini quota window (~60s).
const (
	DefaultMaxRetries        = 3
	DefaultInitialBackoff    = 10 * time.Second
	DefaultMaxBackoff        = 90 * time.Second
	DefaultBackoffMultiplier = 1.5
)

// NewDefaultRetryConfig returns a RetryConfig with sensible defaults
func NewDefaultRetryConfig() *RetryConfig {
	return &RetryConfig{
		MaxRetries:        DefaultMaxRetries,
		InitialBackoff:    DefaultInitialBackoff,
		MaxBackoff:        DefaultMaxBackoff,
		BackoffMultiplier: DefaultBackoffMultiplier,
	}
}

// Execute runs call under the limiter with rate-limit-aware retries. Rate
// limit errors back off by CalculateBackoff, honouring any API-suggested
// delay; other errors get a short linear backoff. The final error is
// annotated with the provider label and attempt count.
func (c *RetryConfig) Execute(ctx context.Context, logger arbor.ILogger, limiter *rate.Limiter, label string, call func() error) error {
	var err error
	for attempt := 0; attempt <= c.MaxRetries; attempt++ {
		if waitErr := limiter.Wait(ctx); waitErr != nil {
			return waitErr
		}

		err = call()
		if err == nil {
			return nil
		}
		if attempt == c.MaxRetries {
			break
		}

		backoff := time.Duration(attempt+1) * 2 * time.Second
		if IsRateLimitError(err) {
			backoff = c.CalculateBackoff(attempt, ExtractRetryDelay(err))
		}

		logger.Warn().
			Str("provider", label).
			Int("attempt", attempt+1).
			Dur("backoff", backoff).
			Err(err).
			Msg("Retrying provider API call")

		select {
		case <-ctx.Done():
			return ctx.Err()
		case <-time.After(backoff):
		}
	}

	return fmt.Errorf("%s API call failed after %d retries: %w", label, c.MaxRetries, err)
}

// IsRateLimitError checks if an error is a provider rate-limit error.
// Matches 429 status codes and RESOURCE_EXHAUSTED errors.
func IsRateLimitError(err error) bool {
	if err == nil {
		return false
	}
	errStr := err.Error()
	return strings.Contains(errStr, "429") ||
		strings.Contains(errStr, "RESOURCE_EXHAUSTED") ||
		strings.Contains(errStr, "rate_limit") ||
		strings.Contains(errStr, "quota")
}

// retryDelayRegex matches "Please retry in Xs" or "retryDelay:Xs" patterns
var retryDelayRegex = regexp.MustCompile(`(?i)(?:Please retry in |retryDelay[:\s]+)(\d+(?:\.\d+)?)\s*s`)

// ExtractRetryDelay parses the API-suggested retry delay from an error
// message. Returns 0 if no delay is present.
func ExtractRetryDelay(err error) time.Duration {
	if err == nil {
		return 0
	}

	matches := retryDelayRegex.FindStringSubmatch(err.Error())
	if len(matches) < 2 {
		return 0
	}

	seconds, parseErr := strconv.ParseFloat(matches[1], 64)
	if parseErr != nil {
		return 0
	}

	return time.Duration(seconds * float64(time.Second))
}

// CalculateBackoff computes the backoff duration for a given attempt. If
// apiDelay > 0 (from ExtractRetryDelay), it is used as the base, otherwise
// InitialBackoff. The result is capped at MaxBackoff.
func (c *RetryConfig) CalculateBackoff(attempt int, apiDelay time.Duration) time.Duration {
	base := c.InitialBackoff
	if apiDelay > 0 {
		base = apiDelay + 5*time.Second
	}

	multiplier := 1.0
	for i := 0; i < attempt; i++ {
		multiplier *= c.BackoffMultiplier
	}

	backoff := time.Duration(float64(base) * multiplier)
	if backoff > c.MaxBackoff {
		backoff = c.MaxBackoff
	}

	return backoff
}
