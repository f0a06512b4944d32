package retryx

import (
	"context"
	"time"

	"github.com/cenkalti/backoff"
)

const (
	DefaultInterval       = 500 * time.Millisecond
	DefaultMaxInterval    = 2 * time.Second
	DefaultMaxElapsedTime = 5 * time.Second
	DefaultMaxRetries     = 3
)

func newOptions(opts []RetryOption) *retryOptions {
	rOpts := &retryOptions{}
	for _, opt := range opts {
		opt(rOpts)
	}
	return rOpts
}

// ConstantRetry executes `fn` until it succeeds, waiting a constant interval between attempts.
//
// The interval defaults to `DefaultInterval` unless overridden by `WithInterval`.
func ConstantRetry(fn func() error, opts ...RetryOption) error {
	return ConstantRetryContext(context.Background(), fn, opts...)
}

func ConstantRetryContext(ctx context.Context, fn func() error, opts ...RetryOption) error {
	rOpts := newOptions(opts)

	duration := DefaultInterval
	if rOpts.initialInterval > 0 {
		duration = rOpts.initialInterval
	}

	bc := backoff.NewConstantBackOff(duration)
	bc.Reset()

	return retry(ctx, fn, bc, rOpts)
}

// ExponentialRetry executes `fn` with an exponential backoff strategy.
//
// The interval starts at `DefaultInterval` and grows up to `DefaultMaxInterval`,
// giving up after `DefaultMaxElapsedTime` or `DefaultMaxRetries` attempts.
// Each of these can be overridden through the matching option.
func ExponentialRetry(fn func() error, opts ...RetryOption) error {
	return ExponentialRetryContext(context.Background(), fn, opts...)
}

func ExponentialRetryContext(ctx context.Context, fn func() error, opts ...RetryOption) error {
	rOpts := newOptions(opts)

	bc := backoff.NewExponentialBackOff()
	bc.InitialInterval = DefaultInterval
	bc.MaxInterval = DefaultMaxInterval
	bc.MaxElapsedTime = DefaultMaxElapsedTime
	if rOpts.initialInterval > 0 {
		bc.InitialInterval = rOpts.initialInterval
	}
	if rOpts.maxInterval > 0 {
		bc.MaxInterval = rOpts.maxInterval
	}
	if rOpts.maxElapsedTime > 0 {
		bc.MaxElapsedTime = rOpts.maxElapsedTime
	}
	bc.Reset()

	return retry(ctx, fn, bc, rOpts)
}

func retry(ctx context.Context, fn func() error, bo backoff.BackOff, rOpts *retryOptions) error {
	maxRetryCount := DefaultMaxRetries
	if rOpts.retryCount > 0 {
		maxRetryCount = rOpts.retryCount
	}

	retries := 0
	return backoff.Retry(func() error {
		err := fn()
		if err == nil {
			return nil
		}

		if rOpts.retryIf != nil && !rOpts.retryIf(err) {
			return backoff.Permanent(err)
		}

		retries++
		if retries >= maxRetryCount {
			return backoff.Permanent(err)
		}

		if rOpts.onRetry != nil {
			rOpts.onRetry(retries, err)
		}

		return err
	}, backoff.WithContext(bo, ctx))
}
