package retryx

import "time"

type retryOptions struct {
	retryCount      int
	initialInterval time.Duration
	maxInterval     time.Duration
	maxElapsedTime  time.Duration
	retryIf         func(error) bool
	onRetry         func(attempt int, err error)
}

type RetryOption func(*retryOptions)

func WithRetryCount(count int) RetryOption {
	return func(ro *retryOptions) {
		ro.retryCount = count
	}
}

func WithInterval(interval time.Duration) RetryOption {
	return func(ro *retryOptions) {
		ro.initialInterval = interval
	}
}

func WithMaxInterval(interval time.Duration) RetryOption {
	return func(ro *retryOptions) {
		ro.maxInterval = interval
	}
}

func WithMaxElapsedTime(d time.Duration) RetryOption {
	return func(ro *retryOptions) {
		ro.maxElapsedTime = d
	}
}

// WithRetryIf stops retrying as soon as the predicate returns false for an error.
func WithRetryIf(fn func(error) bool) RetryOption {
	return func(ro *retryOptions) {
		ro.retryIf = fn
	}
}

// WithOnRetry is called after every failed attempt that will be retried.
func WithOnRetry(fn func(attempt int, err error)) RetryOption {
	return func(ro *retryOptions) {
		ro.onRetry = fn
	}
}
