package cache

import (
	"context"
	"errors"
	"time"

	"github.com/matzehuels/cliquer/pkg/httputil"
)

// ErrNetwork marks failures talking to a remote cache.
var ErrNetwork = errors.New("network error")

// retryDelay is the wait before the first retry; it doubles on each attempt.
var retryDelay = 200 * time.Millisecond

// RetryableError marks an error that should trigger a retry.
type RetryableError = httputil.RetryableError

// Retryable wraps an error as a RetryableError.
func Retryable(err error) error { return httputil.Retryable(err) }

// IsRetryable checks if an error is wrapped with RetryableError.
func IsRetryable(err error) bool { return httputil.IsRetryable(err) }

// RetryWithBackoff runs fn up to 3 times with exponential backoff.
// Only errors wrapped with Retryable trigger a retry.
func RetryWithBackoff(ctx context.Context, fn func() error) error {
	return httputil.Retry(ctx, 3, retryDelay, fn)
}
