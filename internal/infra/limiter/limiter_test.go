package limiter

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestAcquireRespectsConcurrency(t *testing.T) {
	l := New(1, 0)

	release, err := l.Acquire(context.Background())
	require.NoError(t, err)
	assert.Equal(t, 1, l.InFlight())

	_, ok := l.TryAcquire()
	assert.False(t, ok, "second slot must not be available")

	ctx, cancel := context.WithTimeout(context.Background(), 20*time.Millisecond)
	defer cancel()
	_, err = l.Acquire(ctx)
	assert.ErrorIs(t, err, context.DeadlineExceeded)

	release()
	release2, ok := l.TryAcquire()
	require.True(t, ok)
	release2()
	assert.Equal(t, 0, l.InFlight())
}
