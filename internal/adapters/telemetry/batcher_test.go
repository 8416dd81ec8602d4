package telemetry_test

import (
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.trai.ch/relo/internal/adapters/telemetry"
)

func TestLogBatcher_SizeLimitFlush(t *testing.T) {
	var mu sync.Mutex
	var flushed []byte
	bp := telemetry.NewLogBatcher(8, time.Hour, func(data []byte) {
		mu.Lock()
		defer mu.Unlock()
		flushed = append(flushed, data...)
	})
	defer func() { _ = bp.Close() }()

	_, err := bp.Write([]byte("12345678"))
	require.NoError(t, err)

	mu.Lock()
	defer mu.Unlock()
	assert.Equal(t, "12345678", string(flushed))
}

func TestLogBatcher_TimeLimitFlush(t *testing.T) {
	var mu sync.Mutex
	var flushed []byte
	bp := telemetry.NewLogBatcher(1<<20, 10*time.Millisecond, func(data []byte) {
		mu.Lock()
		defer mu.Unlock()
		flushed = append(flushed, data...)
	})
	defer func() { _ = bp.Close() }()

	_, err := bp.Write([]byte("tick"))
	require.NoError(t, err)

	assert.Eventually(t, func() bool {
		mu.Lock()
		defer mu.Unlock()
		return string(flushed) == "tick"
	}, time.Second, 5*time.Millisecond)
}

func TestLogBatcher_CloseFlushesAndRejectsWrites(t *testing.T) {
	var mu sync.Mutex
	var flushed []byte
	bp := telemetry.NewLogBatcher(1<<20, time.Hour, func(data []byte) {
		mu.Lock()
		defer mu.Unlock()
		flushed = append(flushed, data...)
	})

	_, err := bp.Write([]byte("pending"))
	require.NoError(t, err)
	require.NoError(t, bp.Close())

	mu.Lock()
	assert.Equal(t, "pending", string(flushed))
	mu.Unlock()

	_, err = bp.Write([]byte("after close"))
	assert.ErrorIs(t, err, telemetry.ErrBatcherClosed)

	// Close is idempotent.
	assert.NoError(t, bp.Close())
}
