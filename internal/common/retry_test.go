package common

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestWithRetry(t *testing.T) {
	errFlaky := errors.New("flaky")
	errBad := errors.New("bad request")

	tests := []struct {
		wantErr   error
		name      string
		failures  int
		permanent bool
		wantCalls int
	}{
		{name: "first try", failures: 0, wantCalls: 1},
		{name: "recovers", failures: 2, wantCalls: 3},
		{name: "exhausted", failures: 5, wantCalls: 3, wantErr: ErrMaxRetries},
		{name: "permanent", failures: 5, permanent: true, wantCalls: 1, wantErr: errBad},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			calls := 0
			err := WithRetry(context.Background(), RetryOptions{MaxAttempts: 3, InitialDelay: time.Millisecond}, func(context.Context) error {
				calls++
				if calls > tt.failures {
					return nil
				}
				if tt.permanent {
					return Permanent(errBad)
				}
				return errFlaky
			})

			assert.Equal(t, tt.wantCalls, calls)
			if tt.wantErr == nil {
				require.NoError(t, err)
				return
			}
			require.ErrorIs(t, err, tt.wantErr)
			if !tt.permanent {
				assert.ErrorIs(t, err, errFlaky)
			}
		})
	}
}

func TestWithRetry_ContextCancelled(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	calls := 0

	err := WithRetry(ctx, RetryOptions{MaxAttempts: 5, InitialDelay: time.Hour}, func(context.Context) error {
		calls++
		cancel()
		return errors.New("down")
	})

	require.ErrorIs(t, err, context.Canceled)
	assert.Equal(t, 1, calls)
}

func TestPermanent_Nil(t *testing.T) {
	assert.NoError(t, Permanent(nil))
}
