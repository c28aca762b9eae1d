package db

import (
	"time" // Backoff delays

	"github.com/sirupsen/logrus" // Retry diagnostics
)

// Retry defaults: up to 3 additional attempts, 1s base delay
const (
	DefaultMaxRetries = 3
	DefaultBaseDelay  = time.Second
)

// sleep is replaceable in tests to observe backoff delays
var sleep = time.Sleep

// Retry executes fn, retrying transient connection failures with exponential
// backoff: baseDelay * 2^attempt between attempts. Non-transient failures and
// exhaustion propagate the last error unchanged.
// Known limitation: no jitter and no cap on the maximum backoff.
func Retry(fn func() error, maxRetries int, baseDelay time.Duration) error {
	var lastErr error
	for attempt := 0; attempt <= maxRetries; attempt++ {
		lastErr = fn()
		if lastErr == nil {
			return nil
		}
		// Don't retry if it's not a connection failure or we've exhausted retries
		if !IsTransient(lastErr) || attempt == maxRetries {
			return lastErr
		}
		// Wait before retrying (exponential backoff)
		wait := baseDelay * (1 << attempt)
		sleep(wait)
		logrus.WithFields(logrus.Fields{
			"attempt":     attempt + 1,
			"max_retries": maxRetries,
			"wait":        wait.String(),
			"error":       lastErr.Error(),
		}).Warn("Retrying database query")
	}
	return lastErr
}

// WithRetry executes fn with the default retry policy
func WithRetry(fn func() error) error {
	return Retry(fn, DefaultMaxRetries, DefaultBaseDelay)
}
