package worker

import (
	"context"
	"sync"
	"sync/atomic"
	"testing"

	"github.com/stretchr/testify/assert"
	"go.uber.org/zap"
)

func TestRunnerDrainsQueueOnShutdown(t *testing.T) {
	r := NewRunner(context.Background(), 2, 16, zap.NewNop())

	var done atomic.Int32
	for i := 0; i < 10; i++ {
		assert.True(t, r.Submit(func(context.Context) { done.Add(1) }))
	}
	r.Shutdown()

	assert.Equal(t, int32(10), done.Load())
}

func TestRunnerDropsWhenFull(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	r := NewRunner(ctx, 1, 1, zap.NewNop())
	r.wg.Wait()

	assert.True(t, r.Submit(func(context.Context) {}))
	assert.False(t, r.Submit(func(context.Context) {}))
}

func TestRunnerRejectsAfterShutdown(t *testing.T) {
	r := NewRunner(context.Background(), 1, 4, zap.NewNop())
	r.Shutdown()

	assert.NotPanics(t, func() {
		assert.False(t, r.Submit(func(context.Context) {}))
	})
	assert.NotPanics(t, r.Shutdown)
}

func TestRunnerConcurrentSubmitAndShutdown(t *testing.T) {
	r := NewRunner(context.Background(), 2, 8, zap.NewNop())

	var wg sync.WaitGroup
	for i := 0; i < 8; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for j := 0; j < 50; j++ {
				r.Submit(func(context.Context) {})
			}
		}()
	}
	assert.NotPanics(t, r.Shutdown)
	wg.Wait()
}
