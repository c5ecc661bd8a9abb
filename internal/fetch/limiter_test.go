package fetch

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLimiterUnlimited(t *testing.T) {
	l := NewLimiter(0, 1)
	ctx, cancel := context.WithTimeout(context.Background(), time.Second)
	defer cancel()

	for i := 0; i < 50; i++ {
		require.NoError(t, l.Wait(ctx, "https://chem.example/a"))
	}
}

func TestLimiterBlocksPerDomain(t *testing.T) {
	l := NewLimiter(1, 1)

	// First token per domain is free.
	require.NoError(t, l.Wait(context.Background(), "https://a.example/x"))
	require.NoError(t, l.Wait(context.Background(), "https://b.example/x"))

	// A second request against the same domain must wait; with a canceled
	// context it errors instead.
	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	err := l.Wait(ctx, "https://a.example/y")
	assert.Error(t, err)
}

func TestLimiterUnparseableURLUsesSharedBucket(t *testing.T) {
	l := NewLimiter(1, 1)
	require.NoError(t, l.Wait(context.Background(), "::not-a-url::"))

	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	assert.Error(t, l.Wait(ctx, "%%also-bad%%"))
}
