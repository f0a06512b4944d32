package retryx

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/cenkalti/backoff"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var errUnauthorized = errors.New("unauthorized")

func TestRetry(t *testing.T) {
	tests := []struct {
		name          string
		fn            func() error
		opts          []RetryOption
		expectedCalls int
		expectedError error
	}{
		{
			name: "successful retry",
			fn: func() error {
				return nil
			},
			expectedCalls: 1,
		},
		{
			name: "retry with permanent error",
			fn: func() error {
				return backoff.Permanent(errors.New("permanent error"))
			},
			expectedCalls: 1,
			expectedError: errors.New("permanent error"),
		},
		{
			name: "retry with temporary error",
			fn: func() error {
				return errors.New("temporary error")
			},
			opts: []RetryOption{
				WithRetryCount(2),
				WithInterval(time.Millisecond),
			},
			expectedCalls: 2,
			expectedError: errors.New("temporary error"),
		},
		{
			name: "retry stops when the predicate rejects the error",
			fn: func() error {
				return errUnauthorized
			},
			opts: []RetryOption{
				WithRetryIf(func(err error) bool { return !errors.Is(err, errUnauthorized) }),
				WithInterval(time.Millisecond),
			},
			expectedCalls: 1,
			expectedError: errUnauthorized,
		},
	}

	for _, tt := range tests {
		t.Run("exponential "+tt.name, func(t *testing.T) {
			actualCalls := 0
			fn := func() error {
				actualCalls++
				return tt.fn()
			}
			err := ExponentialRetry(fn, tt.opts...)
			if tt.expectedError != nil {
				require.EqualError(t, err, tt.expectedError.Error())
			} else {
				require.NoError(t, err)
			}

			require.Equal(t, tt.expectedCalls, actualCalls)
		})

		t.Run("constant "+tt.name, func(t *testing.T) {
			actualCalls := 0
			fn := func() error {
				actualCalls++
				return tt.fn()
			}
			err := ConstantRetry(fn, append(tt.opts, WithInterval(time.Millisecond))...)
			if tt.expectedError != nil {
				require.EqualError(t, err, tt.expectedError.Error())
			} else {
				require.NoError(t, err)
			}

			require.Equal(t, tt.expectedCalls, actualCalls)
		})
	}
}

func TestRetryOnRetry(t *testing.T) {
	var attempts []int
	calls := 0
	err := ExponentialRetry(func() error {
		calls++
		if calls < 3 {
			return errors.New("not yet")
		}
		return nil
	}, WithInterval(time.Millisecond), WithRetryCount(5), WithOnRetry(func(attempt int, _ error) {
		attempts = append(attempts, attempt)
	}))

	require.NoError(t, err)
	assert.Equal(t, []int{1, 2}, attempts)
}

func TestRetryContextCancelled(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	calls := 0
	err := ConstantRetryContext(ctx, func() error {
		calls++
		return errors.New("boom")
	}, WithRetryCount(10), WithInterval(time.Millisecond))

	require.Error(t, err)
	assert.Equal(t, 1, calls)
}
