package llm

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRateLimiter(t *testing.T) {
	t.Run("burst is available immediately", func(t *testing.T) {
		rl := newRateLimiter(10)
		ctx := context.Background()

		for i := 0; i < 10; i++ {
			require.NoError(t, rl.Wait(ctx))
		}
		assert.False(t, rl.Allow(), "bucket should be empty after the burst")
	})

	t.Run("context deadline", func(t *testing.T) {
		rl := newRateLimiter(1)
		require.NoError(t, rl.Wait(context.Background()))

		ctx, cancel := context.WithTimeout(context.Background(), 50*time.Millisecond)
		defer cancel()

		assert.Error(t, rl.Wait(ctx))
	})

	t.Run("default rate", func(t *testing.T) {
		rl := newRateLimiter(0)
		assert.Equal(t, defaultRequestsPerMinute, rl.Burst())
	})
}
