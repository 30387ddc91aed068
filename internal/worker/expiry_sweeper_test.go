package worker

import (
	"context"
	"errors"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"go.uber.org/zap"
)

type countingExpirer struct {
	calls     atomic.Int32
	batchSize atomic.Int32
	err       error
}

func (e *countingExpirer) ExpireStalePending(_ context.Context, batchSize int) (int, error) {
	e.calls.Add(1)
	e.batchSize.Store(int32(batchSize))
	return 1, e.err
}

func TestExpirySweeper_RunsUntilCancelled(t *testing.T) {
	expirer := &countingExpirer{}
	sweeper := NewExpirySweeper(expirer, 10*time.Millisecond, 25, zap.NewNop())

	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan struct{})
	go func() {
		sweeper.Run(ctx)
		close(done)
	}()

	assert.Eventually(t, func() bool { return expirer.calls.Load() >= 3 }, time.Second, 5*time.Millisecond)
	cancel()

	select {
	case <-done:
	case <-time.After(time.Second):
		t.Fatal("sweeper did not stop after cancellation")
	}
	assert.EqualValues(t, 25, expirer.batchSize.Load())
}

func TestExpirySweeper_KeepsGoingAfterFailure(t *testing.T) {
	expirer := &countingExpirer{err: errors.New("database unavailable")}
	sweeper := NewExpirySweeper(expirer, 10*time.Millisecond, 10, zap.NewNop())

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	go sweeper.Run(ctx)

	assert.Eventually(t, func() bool { return expirer.calls.Load() >= 2 }, time.Second, 5*time.Millisecond)
}
