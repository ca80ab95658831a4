package retry_test

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/finaestampa/storefront/pkg/retry"
)

var errTransient = errors.New("transient")

func fastConfig(maxAttempts int, shouldRetry retry.ShouldRetry) retry.RetryConfig {
	return retry.RetryConfig{
		MaxAttempts: maxAttempts,
		Backoff:     retry.LinearBackoff(time.Millisecond),
		ShouldRetry: shouldRetry,
	}
}

func TestDoWithResultSucceedsAfterRetries(t *testing.T) {
	calls := 0
	got, err := retry.DoWithResult(
		context.Background(), fastConfig(3, nil),
		func() (string, error) {
			calls++
			if calls < 3 {
				return "", errTransient
			}
			return "ok", nil
		},
	)
	require.NoError(t, err)
	assert.Equal(t, "ok", got)
	assert.Equal(t, 3, calls)
}

func TestDoWithResultExhaustsAttempts(t *testing.T) {
	calls := 0
	_, err := retry.DoWithResult(
		context.Background(), fastConfig(3, nil),
		func() (int, error) {
			calls++
			return 0, errTransient
		},
	)
	assert.ErrorIs(t, err, errTransient)
	assert.Equal(t, 3, calls)
}

func TestDoWithResultNonRetryableErrorSurfaces(t *testing.T) {
	permanent := errors.New("permanent")
	calls := 0

	_, err := retry.DoWithResult(
		context.Background(),
		fastConfig(5, func(err error) bool { return !errors.Is(err, permanent) }),
		func() (int, error) {
			calls++
			return 0, permanent
		},
	)
	assert.ErrorIs(t, err, permanent,
		"a non-retryable error must not be swallowed")
	assert.Equal(t, 1, calls)
}

func TestDoCanceledContext(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	err := retry.Do(ctx, fastConfig(3, nil), func() error { return nil })
	assert.ErrorIs(t, err, context.Canceled)
}
